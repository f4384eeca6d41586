// Package robot holds the XLeRobot configuration and motor bus helpers.
package robot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gwillem/xlerobot/pkg/device"
)

// Serial numbers of the two bus adapters shipped with the reference build.
const (
	DefaultSerial1 = "5A7C116455" // so101 arm + head camera bus
	DefaultSerial2 = "5A7C118369" // so101 arm + base bus
)

// ErrPortUnresolved is returned when a bus is needed but its port is unknown.
var ErrPortUnresolved = errors.New("bus port unresolved")

// Config holds the robot configuration
type Config struct {
	Bus1 BusConfig `json:"bus1"`
	Bus2 BusConfig `json:"bus2"`
}

// BusConfig identifies one motor bus by the serial number of its adapter
type BusConfig struct {
	Serial string `json:"serial"`
	Port   string `json:"port,omitempty"`
}

// PortResolver maps adapter serial numbers to device paths.
type PortResolver interface {
	Resolve(ctx context.Context, serial1, serial2 string) device.Ports
}

// DefaultConfig returns a configuration with the default serial numbers
func DefaultConfig() *Config {
	return &Config{
		Bus1: BusConfig{Serial: DefaultSerial1},
		Bus2: BusConfig{Serial: DefaultSerial2},
	}
}

// ResolvePorts looks up both bus ports by serial number and stores them in
// the configuration. Ports are always replaced, since a port saved earlier
// may now belong to another device.
func (c *Config) ResolvePorts(ctx context.Context, r PortResolver) device.Ports {
	ports := r.Resolve(ctx, c.Bus1.Serial, c.Bus2.Serial)
	c.Bus1.Port = ports.Port1
	c.Bus2.Port = ports.Port2
	return ports
}

// RequirePort returns the bus port, or ErrPortUnresolved if it is unknown
func (b BusConfig) RequirePort() (string, error) {
	if b.Port == "" {
		return "", fmt.Errorf("serial %s: %w", b.Serial, ErrPortUnresolved)
	}
	return b.Port, nil
}

// LoadConfigFrom loads configuration from a specific file. Missing serial
// numbers fall back to the defaults.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Bus1.Serial == "" {
		cfg.Bus1.Serial = DefaultSerial1
	}
	if cfg.Bus2.Serial == "" {
		cfg.Bus2.Serial = DefaultSerial2
	}
	return cfg, nil
}

// LoadConfigOrDefault loads path, or returns the defaults if it does not exist
func LoadConfigOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfigFrom(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if a config file exists at path
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
