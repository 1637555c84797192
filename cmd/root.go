// The cmd package implements the interface for the ups-monitor CLI. The files
// contained in this package only contain implementations for handling CLI
// arguments and passing them to functions within the internal API.
//
// Each CLI subcommand has a corresponding internal routine that implements
// the command's functionality:
//
//	cmd/update.go --> internal/collect.go ( upsmonitor.UpdateCache() )
//	cmd/send.go   --> internal/collect.go + internal/zabbix ( CollectData(), Sender )
//	cmd/get.go    --> internal/collect.go ( upsmonitor.GetMetric() )
//	cmd/serve.go  --> internal/daemon.go ( upsmonitor.RunDaemon() )
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// The root command doubles as the legacy dispatcher: `ups-monitor <key>`
// resolves any argument that is not a subcommand as a metric name, so item
// definitions written against the old single-argument poller keep working.
var rootCmd = &cobra.Command{
	Use:   "ups-monitor <key>",
	Short: "Megatec/Q1 UPS poller with Zabbix forwarding",
	Long: "Polls a Megatec/Q1-protocol UPS over a serial link, caches the parsed status\n" +
		"reply, and forwards metrics to a Zabbix server via zabbix_sender.",
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			if err := cmd.Usage(); err != nil {
				log.Error().Err(err).Msg("failed to print usage")
			}
			os.Exit(1)
		}
		printMetric(args[0])
	},
}

// This Execute() function is called from main to run the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitializeConfig)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Set the config file path")
	rootCmd.PersistentFlags().StringP("port", "p", "/dev/ttyUSB0", "Set the serial port of the UPS")
	rootCmd.PersistentFlags().IntP("baud", "b", 2400, "Set the serial baud rate")
	rootCmd.PersistentFlags().IntP("timeout", "t", 3, "Set the serial read timeout in seconds")
	rootCmd.PersistentFlags().String("cache", "/tmp/ups_cache.json", "Set the snapshot cache path")
	rootCmd.PersistentFlags().String("cache-backend", "file", "Set the cache backend (file|sqlite)")
	rootCmd.PersistentFlags().Int("ttl", 120, "Set the cache TTL in seconds")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Set to enable/disable verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Set to enable/disable debug messages")

	// bind viper config flags with cobra
	checkBindFlagError(viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")))
	checkBindFlagError(viper.BindPFlag("device.port", rootCmd.PersistentFlags().Lookup("port")))
	checkBindFlagError(viper.BindPFlag("device.baud", rootCmd.PersistentFlags().Lookup("baud")))
	checkBindFlagError(viper.BindPFlag("device.timeout", rootCmd.PersistentFlags().Lookup("timeout")))
	checkBindFlagError(viper.BindPFlag("cache.path", rootCmd.PersistentFlags().Lookup("cache")))
	checkBindFlagError(viper.BindPFlag("cache.backend", rootCmd.PersistentFlags().Lookup("cache-backend")))
	checkBindFlagError(viper.BindPFlag("cache.ttl", rootCmd.PersistentFlags().Lookup("ttl")))
	checkBindFlagError(viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")))
	checkBindFlagError(viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")))
}

func checkBindFlagError(err error) {
	if err != nil {
		log.Error().Err(err).Msg("failed to bind cobra/viper flag")
	}
}

// InitializeConfig() sets defaults, loads an optional config file and adjusts
// the log level. Flags and environment variables take precedence over config
// file values.
func InitializeConfig() {
	SetDefaults()
	viper.AutomaticEnv()
	if viper.IsSet("config") && viper.GetString("config") != "" {
		viper.SetConfigFile(viper.GetString("config"))
		if err := viper.ReadInConfig(); err != nil {
			log.Error().Err(err).Msg("failed to load config")
		}
	} else {
		config_dir := os.Getenv("XDG_CONFIG_HOME")
		if config_dir == "" {
			config_dir = "$HOME/.config"
		}
		viper.AddConfigPath(config_dir + "/ups-monitor")
		viper.SetConfigName("config")
		// A missing default config is fine; the defaults cover everything.
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				log.Error().Err(err).Msg("failed to load config")
			}
		}
	}

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if viper.GetBool("verbose") {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if viper.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// SetDefaults() resets all of the viper properties back to their
// default values, mirroring the reference deployment.
func SetDefaults() {
	viper.SetDefault("config", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("debug", false)
	viper.SetDefault("device.port", "/dev/ttyUSB0")
	viper.SetDefault("device.baud", 2400)
	viper.SetDefault("device.command", "Q1\r")
	viper.SetDefault("device.timeout", 3)
	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("cache.path", "/tmp/ups_cache.json")
	viper.SetDefault("cache.ttl", 120)
	viper.SetDefault("zabbix.server", "127.0.0.1")
	viper.SetDefault("zabbix.hostname", "")
	viper.SetDefault("zabbix.sender", "zabbix_sender")
	viper.SetDefault("battery.high", 208.00)
	viper.SetDefault("battery.low", 166.40)
	viper.SetDefault("daemon.endpoint", "localhost:8710")
}
