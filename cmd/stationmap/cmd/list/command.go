// Package list provides the command that prints the stations CSV.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/stationmap/cmd/application"
	"github.com/agentstation/stationmap/internal/cmd/output"
	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/render"
	"github.com/agentstation/stationmap/pkg/stations"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		stationsCSV string
		groups      bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "inspect",
		Short:   "Print the stations of a stations CSV",
		Long: `List prints every station of the CSV written by fetch. With --groups it
prints the map layers instead: one row per organization and work area with
its color and the number of stations that have coordinates.`,
		Example: `  stationmap list
  stationmap list --groups --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := stations.ReadCSVFile(stationsCSV)
			if errors.IsNotFound(err) {
				return fmt.Errorf("%w\nhint: run 'stationmap fetch --output %s' first", err, stationsCSV)
			}
			if err != nil {
				return err
			}
			format := output.DetectFormat(app.OutputFormat())

			if groups {
				reg, err := app.Registry()
				if err != nil {
					return err
				}
				layers := render.BuildLayers(reg, stations.GroupBy(stations.WithCoordinates(records)))
				return output.Write(cmd.OutOrStdout(), string(format), layers, output.LayersToData(layers))
			}

			app.Logger().Debug().Int("stations", len(records)).Str("csv", stationsCSV).Msg("Listing stations")
			if records == nil {
				records = []stations.Station{}
			}
			return output.Write(cmd.OutOrStdout(), string(format), records,
				output.StationsToData(records, format == output.FormatWide))
		},
	}

	cmd.Flags().StringVar(&stationsCSV, "stations_csv", constants.DefaultStationsCSV, "CSV file with the stations")
	cmd.Flags().BoolVar(&groups, "groups", false, "print the map layers instead of the stations")

	return cmd
}
