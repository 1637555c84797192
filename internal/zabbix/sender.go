// Package zabbix forwards a snapshot to a Zabbix server through the external
// zabbix_sender binary. Forwarding is fire-and-forget: failures are reported
// to the operator but never break the polling schedule.
package zabbix

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

// Sender transmits one snapshot batch to the monitoring backend.
type Sender interface {
	Send(hostname string, snap ups.Snapshot) error
}

// Compile-time interface check.
var _ Sender = (*ExecSender)(nil)

// ExecSender invokes zabbix_sender with an input file of one line per metric:
//
//	<hostname> <key> <value>
type ExecSender struct {
	Server  string
	Command string // sender binary, defaults to "zabbix_sender"

	// Dir is the directory for the scoped input file; empty means the
	// system temp directory. Tests point this at a throwaway directory to
	// verify cleanup.
	Dir string
}

func (s *ExecSender) Send(hostname string, snap ups.Snapshot) error {
	if hostname == "" {
		local, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("no hostname configured and none available locally: %w", err)
		}
		log.Warn().Str("hostname", local).Msg("no zabbix hostname configured, using local hostname")
		hostname = local
	}

	tmp, err := os.CreateTemp(s.Dir, "ups-monitor-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create sender input file: %w", err)
	}
	// The input file must not outlive the exchange, whatever happens below.
	defer os.Remove(tmp.Name())

	if err := writeBatch(tmp, hostname, snap); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close sender input file: %w", err)
	}

	command := s.Command
	if command == "" {
		command = "zabbix_sender"
	}
	cmd := exec.Command(command, "-z", s.Server, "-i", tmp.Name())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	fmt.Print(stdout.String())
	if err != nil {
		fmt.Print(stderr.String())
		return fmt.Errorf("sender failed: %w", err)
	}
	return nil
}

// writeBatch serializes every scalar-valued entry, in stable key order so
// reruns produce identical files.
func writeBatch(f *os.File, hostname string, snap ups.Snapshot) error {
	keys := make([]string, 0, len(snap))
	for key := range snap {
		if ups.IsScalar(snap[key]) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		line := fmt.Sprintf("%s %s %s\n", hostname, key, ups.FormatValue(snap[key]))
		if _, err := f.WriteString(line); err != nil {
			return fmt.Errorf("failed to write sender input file: %w", err)
		}
	}
	return nil
}
