package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/importer"
)

var templateCmd = &cobra.Command{
	Use:   "template <kind>",
	Short: "Print a blank CSV template for an entity or relationship kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := importer.EntityTemplate(ecosystem.EntityKind(args[0]))
		if err != nil {
			out, err = importer.RelationshipTemplate(ecosystem.RelationshipKind(args[0]))
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
