package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	upsmonitor "github.com/JohnGooler/UPS-monitor/internal"
)

// The serve command launches a long-running, read-only HTTP surface over the
// same cache-or-query chain the one-shot commands use.
var serveCmd = &cobra.Command{
	Use: "serve",
	Example: `  // basic launch
  ups-monitor serve
  // bind a different endpoint
  ups-monitor serve -e 0.0.0.0:8710`,
	Short: "Launch a long-running web server exposing the current snapshot, e.g. for container use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := upsmonitor.ConfigFromViper()
		return upsmonitor.RunDaemon(viper.GetString("daemon.endpoint"), cfg.NewStore(), cfg.NewQuerier())
	},
}

func init() {
	serveCmd.Flags().StringP("endpoint", "e", "localhost:8710", "Set the endpoint for the daemon to listen on")
	checkBindFlagError(viper.BindPFlag("daemon.endpoint", serveCmd.Flags().Lookup("endpoint")))

	rootCmd.AddCommand(serveCmd)
}
