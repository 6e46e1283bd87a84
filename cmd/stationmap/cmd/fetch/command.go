// Package fetch provides the command that downloads the stations CSV.
package fetch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/stationmap/cmd/application"
	"github.com/agentstation/stationmap/internal/cmd/output"
	"github.com/agentstation/stationmap/internal/transport"
	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/errors"
	pkgfetch "github.com/agentstation/stationmap/pkg/fetch"
)

// Summary is the machine-readable result of a fetch.
type Summary struct {
	Output   string   `json:"output" yaml:"output"`
	URL      string   `json:"url" yaml:"url"`
	Stations int      `json:"stations" yaml:"stations"`
	Unmapped []string `json:"unmapped_work_areas" yaml:"unmapped_work_areas"`
}

// NewCommand creates the fetch command.
func NewCommand(app application.Application, opts ...pkgfetch.Option) *cobra.Command {
	var (
		apiRoot     string
		credentials string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:     "fetch",
		GroupID: "core",
		Short:   "Download the reference stations into a CSV",
		Long: `Fetch requests every reference station from the EIMS sites view,
assigns each station the organization that owns its work area, sorts them by
organization, work area and name, and replaces the output CSV.

Credentials are taken from --credentials, then HAKAI_API_CREDENTIALS or the
credentials config key, then the cached ~/.hakai-api-auth file.`,
		Example: `  stationmap fetch
  stationmap fetch --api_root https://hecate.hakai.org/api --output docs/stations.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}

			if apiRoot == "" {
				apiRoot = app.APIRoot()
			}
			if credentials == "" {
				credentials = app.Credentials()
			}

			f := pkgfetch.New(append([]pkgfetch.Option{
				pkgfetch.WithAPIRoot(apiRoot),
				pkgfetch.WithCredentials(credentials),
				pkgfetch.WithCredentialsFile(app.CredentialsFile()),
				pkgfetch.WithOutput(outputPath),
				pkgfetch.WithRegistry(reg),
				pkgfetch.WithLogger(app.Logger()),
			}, opts...)...)

			result, err := f.Run(cmd.Context())
			if err != nil {
				return withHint(err, app.CredentialsFile())
			}

			summary := Summary{
				Output:   result.Path,
				URL:      f.URL(),
				Stations: len(result.Records),
				Unmapped: result.Unmapped,
			}
			if summary.Unmapped == nil {
				summary.Unmapped = []string{}
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), summary, summaryTable(summary))
		},
	}

	cmd.Flags().StringVar(&apiRoot, "api_root", "", "root URL of the API (default "+constants.DefaultAPIRoot+")")
	cmd.Flags().StringVar(&credentials, "credentials", "", "API token credentials")
	cmd.Flags().StringVar(&outputPath, "output", constants.DefaultStationsCSV, "output CSV file")

	return cmd
}

func summaryTable(s Summary) output.Data {
	unmapped := "-"
	if len(s.Unmapped) > 0 {
		unmapped = strings.Join(s.Unmapped, ", ")
	}
	return output.Data{
		Headers: []string{"Output", "Stations", "Unmapped Work Areas"},
		Rows:    [][]string{{s.Output, strconv.Itoa(s.Stations), unmapped}},
	}
}

// withHint appends the usual remedy to credential and availability failures.
func withHint(err error, credentialsFile string) error {
	switch {
	case errors.IsCredentialsError(err):
		if credentialsFile == "" {
			credentialsFile = transport.DefaultCredentialsPath()
		}
		return fmt.Errorf("%w\nhint: pass --credentials, set HAKAI_API_CREDENTIALS, or log in again to refresh %s", err, credentialsFile)
	case errors.IsUnavailable(err):
		return fmt.Errorf("%w\nhint: the stations API is unavailable, try again later", err)
	}
	return err
}
