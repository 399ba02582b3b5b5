package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pu10c88/bank-statement-extractor/internal/api"
	"github.com/pu10c88/bank-statement-extractor/internal/config"
)

func newServeCommand() *cobra.Command {
	var (
		port        int
		verboseFlag bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP conversion API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verboseFlag)
			defer log.Sync() //nolint:errcheck

			h := &api.Handler{
				Keywords: config.DefaultKeywords(),
				Log:      log.Sugar(),
			}
			app := api.NewApp(h)
			log.Sugar().Infow("listening", "port", port)
			return app.Listen(fmt.Sprintf(":%d", port))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose logging")
	return cmd
}
