package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/graph"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print node and relationship counts per entity kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		stats, err := repo.Stats(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove duplicate nodes, keeping the oldest per natural key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		neo, ok := repo.(*graph.Neo4jRepository)
		if !ok {
			return errors.New("clean requires the Neo4j store")
		}
		removed, err := neo.CleanDuplicates(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(removed)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd, cleanCmd)
}
