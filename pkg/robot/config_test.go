package robot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gwillem/xlerobot/pkg/device"
)

type fakeResolver struct {
	ports   device.Ports
	serials [2]string
}

func (f *fakeResolver) Resolve(ctx context.Context, serial1, serial2 string) device.Ports {
	f.serials = [2]string{serial1, serial2}
	return f.ports
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xlerobot.json")
	cfg := &Config{
		Bus1: BusConfig{Serial: "AAA111", Port: "/dev/ttyACM1"},
		Bus2: BusConfig{Serial: "BBB222"},
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	got, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom() error: %v", err)
	}
	if *got != *cfg {
		t.Errorf("LoadConfigFrom() = %+v, want %+v", got, cfg)
	}
}

func TestLoadConfigFrom_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xlerobot.json")
	if err := os.WriteFile(path, []byte(`{"bus1": {"serial": "AAA111"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom() error: %v", err)
	}
	if cfg.Bus1.Serial != "AAA111" {
		t.Errorf("Bus1.Serial = %q, want AAA111", cfg.Bus1.Serial)
	}
	if cfg.Bus2.Serial != DefaultSerial2 {
		t.Errorf("Bus2.Serial = %q, want %q", cfg.Bus2.Serial, DefaultSerial2)
	}
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xlerobot.json")
	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFrom(path); err == nil {
		t.Error("LoadConfigFrom() should fail on malformed JSON")
	}
}

func TestLoadConfigOrDefault(t *testing.T) {
	cfg, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfigOrDefault() error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("LoadConfigOrDefault() = %+v, want defaults", cfg)
	}
}

func TestConfig_ResolvePorts(t *testing.T) {
	r := &fakeResolver{ports: device.Ports{Port1: "/dev/ttyACM1"}}
	cfg := DefaultConfig()
	cfg.Bus2.Port = "/dev/ttyACM0" // stale

	ports := cfg.ResolvePorts(context.Background(), r)

	if r.serials != [2]string{DefaultSerial1, DefaultSerial2} {
		t.Errorf("resolver called with %v", r.serials)
	}
	if ports.Port1 != "/dev/ttyACM1" {
		t.Errorf("ResolvePorts().Port1 = %q", ports.Port1)
	}
	if cfg.Bus1.Port != "/dev/ttyACM1" || cfg.Bus2.Port != "" {
		t.Errorf("config ports = %q, %q; want /dev/ttyACM1 and unresolved", cfg.Bus1.Port, cfg.Bus2.Port)
	}
}

func TestBusConfig_RequirePort(t *testing.T) {
	port, err := BusConfig{Serial: "AAA111", Port: "/dev/ttyACM0"}.RequirePort()
	if err != nil || port != "/dev/ttyACM0" {
		t.Errorf("RequirePort() = %q, %v", port, err)
	}

	_, err = BusConfig{Serial: "AAA111"}.RequirePort()
	if !errors.Is(err, ErrPortUnresolved) {
		t.Errorf("RequirePort() error = %v, want ErrPortUnresolved", err)
	}
}

func TestConfigExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xlerobot.json")
	if ConfigExists(path) {
		t.Error("ConfigExists() = true before saving")
	}
	if err := DefaultConfig().SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	if !ConfigExists(path) {
		t.Error("ConfigExists() = false after saving")
	}
}
