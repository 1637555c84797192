package device

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"

	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

// Compile-time interface check.
var _ Querier = (*SerialQuerier)(nil)

// SerialQuerier queries the UPS over a serial port. The port is opened for
// the duration of one exchange and closed before Query returns, so nothing
// holds the device across invocations.
type SerialQuerier struct {
	Port    string
	Baud    int
	Command []byte
	Timeout time.Duration
	Parser  ups.Parser
}

func (q *SerialQuerier) Query() (ups.Snapshot, error) {
	port, err := serial.Open(q.Port, &serial.Mode{BaudRate: q.Baud})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", q.Port, err)
	}
	defer func() {
		if err := port.Close(); err != nil {
			log.Warn().Err(err).Str("port", q.Port).Msg("failed to close serial port")
		}
	}()

	if err := port.SetReadTimeout(q.Timeout); err != nil {
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}
	if _, err := port.Write(q.Command); err != nil {
		return nil, fmt.Errorf("failed to write command: %w", err)
	}

	line, err := readLine(port)
	if err != nil {
		return nil, err
	}
	return q.Parser.Parse(line)
}

// readLine reads bytes until a newline or the port's read timeout. The port
// returns n=0 without an error on timeout, so a zero-byte read ends the line;
// invalid byte sequences are replaced rather than rejected.
func readLine(port serial.Port) (string, error) {
	var raw []byte
	buf := make([]byte, 1)
	for {
		n, err := port.Read(buf)
		if err != nil {
			return "", fmt.Errorf("failed to read reply: %w", err)
		}
		if n == 0 {
			if len(raw) == 0 {
				return "", fmt.Errorf("timed out waiting for reply")
			}
			break
		}
		if buf[0] == '\n' {
			break
		}
		raw = append(raw, buf[0])
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), "")), nil
}
