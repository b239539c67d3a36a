package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/graph"
)

var (
	log     = logrus.New()
	envFile string
	// useMemory switches to the in-process store for offline runs.
	useMemory bool
)

var rootCmd = &cobra.Command{
	Use:   "ecosystem",
	Short: "Italian tech ecosystem knowledge graph: scrape, import, serve.",
	Long: `Builds a knowledge graph of the Italian tech ecosystem (startups,
founders, VC firms and funds, institutions) by scraping public sources into
pipe-delimited CSV files and importing them into Neo4j with idempotent
upserts.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(envFile); err != nil {
			log.WithField("file", envFile).Debug("no env file loaded")
		}
		log.SetFormatter(&logrus.JSONFormatter{})
		if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
			log.SetLevel(level)
		}
	},
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to environment file")
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "use the in-memory store instead of Neo4j")
}

// openRepo connects to the configured store. The caller owns Close.
func openRepo() (graph.Repository, error) {
	if useMemory {
		return graph.NewMemoryRepository(log), nil
	}
	return graph.NewNeo4jRepository(graph.ConfigFromEnv(), log)
}
