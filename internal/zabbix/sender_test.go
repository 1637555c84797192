package zabbix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

func testSnapshot() ups.Snapshot {
	return ups.Snapshot{
		"input_voltage":  229.0,
		"battery_charge": 100.0,
		"utility_fail":   0.0,
	}
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}
	return entries
}

func TestSendRemovesInputFileOnSenderFailure(t *testing.T) {
	dir := t.TempDir()
	sender := &ExecSender{Server: "127.0.0.1", Command: "false", Dir: dir}

	if err := sender.Send("UPSMonitor", testSnapshot()); err == nil {
		t.Errorf("Expected an error from a failing sender")
	}
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Errorf("Expected input file to be removed, found %d files", len(entries))
	}
}

func TestSendRemovesInputFileOnMissingSender(t *testing.T) {
	dir := t.TempDir()
	sender := &ExecSender{
		Server:  "127.0.0.1",
		Command: filepath.Join(dir, "definitely-not-zabbix-sender"),
		Dir:     dir,
	}

	if err := sender.Send("UPSMonitor", testSnapshot()); err == nil {
		t.Errorf("Expected an error for a missing sender binary")
	}
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Errorf("Expected input file to be removed, found %d files", len(entries))
	}
}

func TestSendWritesOneLinePerMetric(t *testing.T) {
	dir := t.TempDir()
	// The fake sender echoes its input file ("-z <server> -i <file>" makes
	// the file $4), which lets the test inspect exactly what would be handed
	// to zabbix_sender.
	script := filepath.Join(t.TempDir(), "fake_sender.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\ncat \"$4\"\n"), 0755); err != nil {
		t.Fatalf("Failed to write fake sender: %v", err)
	}
	sender := &ExecSender{Server: "127.0.0.1", Command: script, Dir: dir}

	stdout := captureStdout(t, func() {
		if err := sender.Send("UPSMonitor", testSnapshot()); err != nil {
			t.Errorf("Failed to send: %v", err)
		}
	})

	expected := "UPSMonitor battery_charge 100\n" +
		"UPSMonitor input_voltage 229\n" +
		"UPSMonitor utility_fail 0\n"
	if stdout != expected {
		t.Errorf("Expected sender input:\n%s\ngot:\n%s", expected, stdout)
	}
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Errorf("Expected input file to be removed, found %d files", len(entries))
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close pipe: %v", err)
	}
	out := make([]byte, 0, 256)
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			break
		}
	}
	return string(out)
}
