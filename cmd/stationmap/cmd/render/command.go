// Package render provides the command that builds the static site.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/stationmap/cmd/application"
	"github.com/agentstation/stationmap/internal/cmd/output"
	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/errors"
	pkgrender "github.com/agentstation/stationmap/pkg/render"
)

// Summary is the machine-readable result of a render.
type Summary struct {
	Directory string            `json:"directory" yaml:"directory"`
	Files     []string          `json:"files" yaml:"files"`
	Markers   string            `json:"markers" yaml:"markers"`
	Stations  int               `json:"stations" yaml:"stations"`
	Dropped   int               `json:"dropped" yaml:"dropped"`
	Layers    []pkgrender.Layer `json:"layers" yaml:"layers"`
}

// NewCommand creates the render command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		stationsCSV   string
		outputDir     string
		baseDirectory string
		markers       string
		summary       bool
	)

	cmd := &cobra.Command{
		Use:     "render",
		GroupID: "core",
		Short:   "Generate the index, map and table pages from the stations CSV",
		Long: `Render reads the stations CSV, drops stations without coordinates and
writes index.html, map.html and table.html to <base_directory>/<output>.

The map holds one layer per organization and work area, toggled from the
layer control. --markers selects how stations are drawn:
  circle   small filled circles colored by organization (default)
  cluster  colored pins grouped into marker clusters`,
		Example: `  stationmap render
  stationmap render --stations_csv docs/stations.csv --base_directory docs --output maps --markers cluster`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			strategy, err := pkgrender.StrategyByName(markers)
			if err != nil {
				return err
			}
			reg, err := app.Registry()
			if err != nil {
				return err
			}

			r, err := pkgrender.New(reg,
				pkgrender.WithBaseDirectory(baseDirectory),
				pkgrender.WithOutput(outputDir),
				pkgrender.WithStrategy(strategy),
				pkgrender.WithSummary(summary),
				pkgrender.WithLogger(app.Logger()),
			)
			if err != nil {
				return err
			}

			result, err := r.Render(cmd.Context(), stationsCSV)
			if errors.IsNotFound(err) {
				return fmt.Errorf("%w\nhint: run 'stationmap fetch --output %s' first", err, stationsCSV)
			}
			if err != nil {
				return err
			}

			s := Summary{
				Directory: result.Directory,
				Files:     result.Files,
				Markers:   strategy.Name(),
				Stations:  result.Stations,
				Dropped:   result.Dropped,
				Layers:    result.Layers,
			}
			td := output.Data{
				Headers: []string{"Directory", "Files", "Stations", "Dropped", "Layers"},
				Rows: [][]string{{
					s.Directory,
					strings.Join(s.Files, "\n"),
					strconv.Itoa(s.Stations),
					strconv.Itoa(s.Dropped),
					strconv.Itoa(len(s.Layers)),
				}},
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), s, td)
		},
	}

	cmd.Flags().StringVar(&stationsCSV, "stations_csv", constants.DefaultStationsCSV, "CSV file with the stations")
	cmd.Flags().StringVar(&outputDir, "output", constants.DefaultRenderOutput, "output directory below the base directory")
	cmd.Flags().StringVar(&baseDirectory, "base_directory", constants.DefaultBaseDirectory, "base directory for the output files")
	cmd.Flags().StringVar(&markers, "markers", pkgrender.StrategyCircle,
		"marker strategy: "+strings.Join(pkgrender.StrategyNames(), ", "))
	cmd.Flags().BoolVar(&summary, "summary", false, "also write "+constants.SummaryFileName)

	return cmd
}
