package cmd

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CSV files into the graph store",
}

var importEntitiesCmd = &cobra.Command{
	Use:   "entities <kind> <file>",
	Short: "Import an entity CSV (e.g. Startup, Person, VC_Firm)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := ecosystem.EntityKind(args[0])
		if _, ok := ecosystem.EntityDescriptorFor(kind); !ok {
			return errors.Errorf("unknown entity kind: %s", args[0])
		}
		f, err := os.Open(args[1])
		if err != nil {
			return errors.Wrap(err, "open csv")
		}
		defer f.Close()

		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		report := importer.New(repo, log).ImportEntities(cmd.Context(), f, kind)
		return printReport(cmd, report)
	},
}

var importRelationshipsCmd = &cobra.Command{
	Use:   "relationships <kind> <file>",
	Short: "Import a relationship CSV (e.g. FOUNDED, INVESTS_IN)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := ecosystem.RelationshipKind(args[0])
		if _, ok := ecosystem.RelationshipDescriptorFor(kind); !ok {
			return errors.Errorf("unknown relationship kind: %s", args[0])
		}
		f, err := os.Open(args[1])
		if err != nil {
			return errors.Wrap(err, "open csv")
		}
		defer f.Close()

		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		report := importer.New(repo, log).ImportRelationships(cmd.Context(), f, kind)
		return printReport(cmd, report)
	},
}

func printReport(cmd *cobra.Command, report *importer.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	if report.Failed > 0 || (report.Total == 0 && len(report.Errors) > 0) {
		return errors.New("import finished with errors")
	}
	return nil
}

func init() {
	importCmd.AddCommand(importEntitiesCmd, importRelationshipsCmd)
	rootCmd.AddCommand(importCmd)
}
