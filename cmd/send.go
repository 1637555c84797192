package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	upsmonitor "github.com/JohnGooler/UPS-monitor/internal"
)

var sendCmd = &cobra.Command{
	Use:     "send",
	Aliases: []string{"send_to_zabbix"},
	Example: `  // forward the current snapshot as Zabbix trapper items
  ups-monitor send -z 192.168.1.200 -H UPSMonitor`,
	Short: "Forward the current snapshot to a Zabbix server.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := upsmonitor.ConfigFromViper()
		data := upsmonitor.CollectData(cfg.NewStore(), cfg.NewQuerier())
		if data == nil {
			fmt.Println("No UPS data to send.")
			return
		}
		if err := cfg.NewSender().Send(cfg.Zabbix.Hostname, data); err != nil {
			fmt.Printf("Error sending to Zabbix: %v\n", err)
		}
	},
}

func init() {
	sendCmd.Flags().StringP("server", "z", "127.0.0.1", "Set the Zabbix server address")
	sendCmd.Flags().StringP("hostname", "H", "", "Set the monitored host name (defaults to the local hostname)")
	sendCmd.Flags().String("sender", "zabbix_sender", "Set the sender binary to invoke")

	checkBindFlagError(viper.BindPFlag("zabbix.server", sendCmd.Flags().Lookup("server")))
	checkBindFlagError(viper.BindPFlag("zabbix.hostname", sendCmd.Flags().Lookup("hostname")))
	checkBindFlagError(viper.BindPFlag("zabbix.sender", sendCmd.Flags().Lookup("sender")))

	rootCmd.AddCommand(sendCmd)
}
