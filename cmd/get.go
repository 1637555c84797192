package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	upsmonitor "github.com/JohnGooler/UPS-monitor/internal"
	"github.com/JohnGooler/UPS-monitor/internal/format"
)

var outputFormat = format.FORMAT_VALUE

var getCmd = &cobra.Command{
	Use: "get [key]",
	Example: `  // print one metric value (the bare form 'ups-monitor battery_charge' works too)
  ups-monitor get battery_charge
  // dump the whole snapshot
  ups-monitor get -F json`,
	Short: "Print one metric value, or the whole snapshot.",
	Long: "Prints a single metric value through the cache-or-query chain. Without a key\n" +
		"the whole snapshot is printed in the requested format (json or yaml).",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			printMetric(args[0])
			return
		}

		cfg := upsmonitor.ConfigFromViper()
		data := upsmonitor.CollectData(cfg.NewStore(), cfg.NewQuerier())
		if data == nil {
			fmt.Println("Error getting Data")
			return
		}
		outFormat := outputFormat
		if outFormat == format.FORMAT_VALUE {
			outFormat = format.FORMAT_JSON
		}
		b, err := format.Marshal(data, outFormat)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal snapshot")
			fmt.Println("Error getting Data")
			return
		}
		fmt.Println(string(b))
	},
}

// printMetric resolves one metric through the cache-or-query chain and prints
// its bare value. Missing data and missing keys are reported the same way,
// without changing the exit code; a broken poll must not break the poller's
// schedule.
func printMetric(key string) {
	cfg := upsmonitor.ConfigFromViper()
	value, ok := upsmonitor.GetMetric(cfg.NewStore(), cfg.NewQuerier(), key)
	if !ok {
		fmt.Println("Error getting Data")
		return
	}
	fmt.Println(value)
}

func init() {
	getCmd.Flags().VarP(&outputFormat, "format", "F", "Set the snapshot output format. (value|json|yaml)")
	rootCmd.AddCommand(getCmd)
}
