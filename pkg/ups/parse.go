package ups

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cznic/mathutil"
)

// Thresholds holds the battery string voltages that map to 0% and 100%
// charge. The defaults match a 16x 12V battery string.
type Thresholds struct {
	High float64
	Low  float64
}

// DefaultThresholds returns the reference deployment battery thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 208.00, Low: 166.40}
}

// Parser converts raw Q1 reply lines into snapshots. The zero value is not
// usable; construct with the battery thresholds for the monitored unit.
type Parser struct {
	Battery Thresholds
}

// Parse converts one reply line into a Snapshot. The line must start with '('
// and split into exactly 8 whitespace-separated fields after stripping the
// parentheses. Any malformed field makes the whole reply invalid; callers
// treat the error as "no data" rather than a fault.
func (p Parser) Parse(line string) (Snapshot, error) {
	if !strings.HasPrefix(line, "(") {
		return nil, fmt.Errorf("reply does not start with '(': %q", line)
	}
	parts := strings.Fields(strings.Trim(line, "()\r\n"))
	if len(parts) != 8 {
		return nil, fmt.Errorf("expected 8 fields in reply, got %d", len(parts))
	}

	inputVoltage, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("bad input voltage %q: %w", parts[0], err)
	}
	inputFault, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("bad input fault voltage %q: %w", parts[1], err)
	}
	outputVoltage, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("bad output voltage %q: %w", parts[2], err)
	}
	outputLoad, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("bad output load %q: %w", parts[3], err)
	}
	inputFreq, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return nil, fmt.Errorf("bad input frequency %q: %w", parts[4], err)
	}
	batteryVoltage, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return nil, fmt.Errorf("bad battery voltage %q: %w", parts[5], err)
	}
	temperature, err := strconv.ParseFloat(parts[6], 64)
	if err != nil {
		return nil, fmt.Errorf("bad temperature %q: %w", parts[6], err)
	}

	// The charge percentage uses the unrounded string voltage; only the
	// displayed battery_voltage_all field is rounded.
	batteryTotal := batteryVoltage * SeriesCellMultiplier
	charge := mathutil.Clamp(
		int(((batteryTotal-p.Battery.Low)/(p.Battery.High-p.Battery.Low))*100), 0, 100)

	snap := Snapshot{
		"input_voltage":          inputVoltage,
		"input_fault_voltage":    inputFault,
		"output_voltage":         outputVoltage,
		"output_current_percent": float64(outputLoad),
		"input_frequency":        inputFreq,
		"battery_voltage":        batteryVoltage,
		"battery_voltage_all":    math.Round(batteryTotal*100) / 100,
		"temperature":            temperature,
		"battery_charge":         float64(charge),
	}
	// A malformed status field contributes no flag keys at all.
	for name, bit := range ParseStatusBits(parts[7]) {
		snap[name] = float64(bit)
	}
	return snap, nil
}
