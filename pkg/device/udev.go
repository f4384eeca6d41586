package device

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds a single device property query.
const DefaultProbeTimeout = 2 * time.Second

// waitDelay is how long to wait for output pipes after udevadm is killed.
// Grandchildren holding stdout would otherwise keep Output blocked.
const waitDelay = 100 * time.Millisecond

// PropertySource returns OS device properties for a device path.
type PropertySource interface {
	Properties(ctx context.Context, path string) (map[string]string, error)
}

// UdevadmSource reads device properties with `udevadm info -q property -n <path>`.
type UdevadmSource struct {
	// Command is the udevadm binary; empty means "udevadm" from PATH.
	Command string
	// Timeout bounds each invocation; zero means DefaultProbeTimeout.
	Timeout time.Duration
}

// Properties runs udevadm for path and parses its KEY=VALUE output.
func (u UdevadmSource) Properties(ctx context.Context, path string) (map[string]string, error) {
	command := u.Command
	if command == "" {
		command = "udevadm"
	}
	timeout := u.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, "info", "-q", "property", "-n", path)
	cmd.WaitDelay = waitDelay
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("udevadm %s: %w", path, ctx.Err())
		}
		return nil, fmt.Errorf("udevadm %s: %w", path, err)
	}
	return ParseProperties(out), nil
}

// ParseProperties parses KEY=VALUE lines. Lines without '=' are ignored and
// only the first '=' separates key from value.
func ParseProperties(out []byte) map[string]string {
	props := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		props[key] = strings.TrimRight(value, "\r")
	}
	return props
}

// propertyFields maps udev property keys to attribute fields.
var propertyFields = map[string]func(*Attributes) *string{
	"ID_VENDOR_ID":    func(a *Attributes) *string { return &a.VendorID },
	"ID_MODEL_ID":     func(a *Attributes) *string { return &a.ProductID },
	"ID_SERIAL_SHORT": func(a *Attributes) *string { return &a.Serial },
	"ID_VENDOR":       func(a *Attributes) *string { return &a.Manufacturer },
	"ID_MODEL":        func(a *Attributes) *string { return &a.Product },
}

// AttributesFromProperties extracts device attributes from udev properties.
func AttributesFromProperties(props map[string]string) Attributes {
	var a Attributes
	for key, field := range propertyFields {
		if v, ok := props[key]; ok {
			*field(&a) = v
		}
	}
	return a
}
