package device

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/abdidvp/inventario/internal/domain"
)

const waitDelay = 500 * time.Millisecond

// CommandSource implements domain.CodeSource by running an external reader
// program. Each non-blank line the program prints is one captured code.
type CommandSource struct {
	argv    []string
	timeout time.Duration
}

// New creates a CommandSource from device settings. A zero timeout waits
// for the program indefinitely.
func New(cfg domain.DeviceConfig) *CommandSource {
	argv := make([]string, len(cfg.Command))
	copy(argv, cfg.Command)
	return &CommandSource{argv: argv, timeout: cfg.Timeout}
}

// Capture runs the reader once and returns the codes it printed.
func (c *CommandSource) Capture(ctx context.Context) ([]string, error) {
	if len(c.argv) == 0 {
		return nil, domain.ErrNoDevice
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Stderr = &stderr
	// children of a killed reader may keep stdout open
	cmd.WaitDelay = waitDelay

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("running %s: timed out after %s", c.argv[0], c.timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", c.argv[0], err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", c.argv[0], err)
	}

	return parseCodes(out), nil
}

func parseCodes(out []byte) []string {
	var codes []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		codes = append(codes, line)
	}
	return codes
}
