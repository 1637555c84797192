package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JohnGooler/UPS-monitor/internal/version"
)

var versionCmd = &cobra.Command{
	Use: "version",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flag("long").Value.String() == "true" {
			fmt.Println(version.VersionInfo())
		} else {
			fmt.Println(version.Version)
		}
	},
}

func init() {
	versionCmd.Flags().Bool("long", false, "show commit and build time as well")
	rootCmd.AddCommand(versionCmd)
}
