// internal/commands/serve.go
package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/holonet/internal/logging"
	"github.com/mwiater/holonet/internal/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd implements 'serve', which indexes swapi once and then serves the
// search pages until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the name index and serve the search web UI",
	Long:  `Fetches the configured number of people pages, builds the name index and serves the search pages and JSON API until SIGINT or SIGTERM.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := GetConfig()
		a, err := buildApp(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		srv, err := web.New(a.pipeline, a.names.Len())
		if err != nil {
			return err
		}
		logging.LogEvent("holonet serving %s (api=%s pages=%d timeout=%s)", cfg.Addr(), cfg.APIBase(), cfg.Pages, cfg.RequestTimeout())
		return srv.Run(ctx, cfg.Addr())
	},
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "address to bind")
	serveCmd.Flags().Int("port", 5000, "port to listen on")
	_ = viper.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
