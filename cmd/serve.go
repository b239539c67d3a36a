package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/dashboard"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard and import API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		srv := dashboard.NewServer(repo, log)
		log.WithField("addr", serveAddr).Info("Starting dashboard")
		return srv.ListenAndServe(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
