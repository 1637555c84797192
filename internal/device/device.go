// Package device handles the request/response exchange with the UPS. The
// transport is abstracted behind the Querier interface so the collect layer
// and its tests never need real hardware.
package device

import (
	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

// Querier performs a single status query against the UPS. One call is one
// request/response exchange; there is no retry or reconnect loop behind it.
type Querier interface {
	Query() (ups.Snapshot, error)
}
