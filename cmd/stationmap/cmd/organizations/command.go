// Package organizations provides the command that prints the registry.
package organizations

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stationmap/cmd/application"
	"github.com/agentstation/stationmap/internal/cmd/output"
)

// NewCommand creates the organizations command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "organizations",
		Aliases: []string{"orgs"},
		GroupID: "inspect",
		Short:   "Print the organization registry",
		Long: `Organizations prints every organization with its label, map color and the
work areas it owns. Use --registry to inspect a registry file instead of the
embedded one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			orgs := reg.Organizations()
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), orgs, output.OrganizationsToData(orgs))
		},
	}
}
