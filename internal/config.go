// Package upsmonitor implements the API routines behind the CLI commands.
// Each file pairs with a command in cmd/ (cmd/update.go -> UpdateCache(),
// cmd/send.go -> CollectData() + the sender, cmd/serve.go -> NewRouter()).
package upsmonitor

import (
	"time"

	"github.com/spf13/viper"

	"github.com/JohnGooler/UPS-monitor/internal/cache"
	"github.com/JohnGooler/UPS-monitor/internal/cache/sqlite"
	"github.com/JohnGooler/UPS-monitor/internal/device"
	"github.com/JohnGooler/UPS-monitor/internal/zabbix"
	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

// DeviceConfig holds the serial link settings for the monitored UPS.
type DeviceConfig struct {
	Port    string
	Baud    int
	Command string
	Timeout int // seconds
}

// CacheConfig selects and parameterizes the snapshot cache backend.
type CacheConfig struct {
	Backend string // "file" or "sqlite"
	Path    string
	TTL     int // seconds
}

// ZabbixConfig holds the forwarding target and the sender binary to invoke.
type ZabbixConfig struct {
	Server   string
	Hostname string
	Sender   string
}

// Config is handed to each component at construction so tests can inject
// fake transports, paths and TTLs instead of mutating globals.
type Config struct {
	Device  DeviceConfig
	Cache   CacheConfig
	Zabbix  ZabbixConfig
	Battery ups.Thresholds
}

// ConfigFromViper() builds a Config from the currently bound viper state
// (flags > env > config file > defaults).
func ConfigFromViper() *Config {
	return &Config{
		Device: DeviceConfig{
			Port:    viper.GetString("device.port"),
			Baud:    viper.GetInt("device.baud"),
			Command: viper.GetString("device.command"),
			Timeout: viper.GetInt("device.timeout"),
		},
		Cache: CacheConfig{
			Backend: viper.GetString("cache.backend"),
			Path:    viper.GetString("cache.path"),
			TTL:     viper.GetInt("cache.ttl"),
		},
		Zabbix: ZabbixConfig{
			Server:   viper.GetString("zabbix.server"),
			Hostname: viper.GetString("zabbix.hostname"),
			Sender:   viper.GetString("zabbix.sender"),
		},
		Battery: ups.Thresholds{
			High: viper.GetFloat64("battery.high"),
			Low:  viper.GetFloat64("battery.low"),
		},
	}
}

// NewStore returns the cache backend selected by the config.
func (c *Config) NewStore() cache.Store {
	ttl := time.Duration(c.Cache.TTL) * time.Second
	if c.Cache.Backend == "sqlite" {
		return sqlite.NewStore(c.Cache.Path, ttl)
	}
	return cache.NewFileStore(c.Cache.Path, ttl)
}

// NewQuerier returns the serial querier for the configured device.
func (c *Config) NewQuerier() device.Querier {
	return &device.SerialQuerier{
		Port:    c.Device.Port,
		Baud:    c.Device.Baud,
		Command: []byte(c.Device.Command),
		Timeout: time.Duration(c.Device.Timeout) * time.Second,
		Parser:  ups.Parser{Battery: c.Battery},
	}
}

// NewSender returns the zabbix_sender-backed forwarder.
func (c *Config) NewSender() zabbix.Sender {
	return &zabbix.ExecSender{
		Server:  c.Zabbix.Server,
		Command: c.Zabbix.Sender,
	}
}
