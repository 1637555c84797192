package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	upsmonitor "github.com/JohnGooler/UPS-monitor/internal"
)

// Forces a fresh device query regardless of cache freshness. Meant to be run
// from cron so interactive polls almost always hit a warm cache.
var updateCmd = &cobra.Command{
	Use:     "update-cache",
	Aliases: []string{"update_cache"},
	Example: `  // refresh the cache every minute from cron
  * * * * * ups-monitor update-cache`,
	Short: "Poll the UPS and refresh the snapshot cache.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := upsmonitor.ConfigFromViper()
		if err := upsmonitor.UpdateCache(cfg.NewStore(), cfg.NewQuerier()); err != nil {
			log.Warn().Err(err).Msg("cache update failed")
			fmt.Println("FAILED")
			return
		}
		fmt.Println("OK")
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
