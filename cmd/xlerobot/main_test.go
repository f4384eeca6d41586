package main

import (
	"reflect"
	"testing"

	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/xlerobot/pkg/device"
	"github.com/gwillem/xlerobot/pkg/robot"
)

func TestWithSerial(t *testing.T) {
	infos := []device.Info{
		{Path: "/dev/ttyACM0", Attributes: device.Attributes{Serial: "AAA111"}},
		{Path: "/dev/ttyACM1"},
		{Path: "/dev/ttyACM2", Attributes: device.Attributes{Serial: "BBB222"}},
		{Path: "/dev/ttyACM3", Attributes: device.Attributes{Serial: "AAA111"}},
	}

	var paths []string
	for _, info := range withSerial(infos) {
		paths = append(paths, info.Path)
	}
	want := []string{"/dev/ttyACM0", "/dev/ttyACM2"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("withSerial() paths = %v, want %v", paths, want)
	}
}

func TestBusLabel(t *testing.T) {
	cfg := &robot.Config{
		Bus1: robot.BusConfig{Serial: "AAA111"},
		Bus2: robot.BusConfig{Serial: "BBB222"},
	}

	tests := []struct {
		serial string
		want   string
	}{
		{"AAA111", "bus 1"},
		{"BBB222", "bus 2"},
		{"CCC333", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := busLabel(tt.serial, cfg); got != tt.want {
			t.Errorf("busLabel(%q) = %q, want %q", tt.serial, got, tt.want)
		}
	}
}

func TestUSBID(t *testing.T) {
	info := device.Info{Attributes: device.Attributes{VendorID: "1a86", ProductID: "55d3"}}
	if got := usbID(info); got != "1a86:55d3" {
		t.Errorf("usbID() = %q, want 1a86:55d3", got)
	}
	if got := usbID(device.Info{}); got != "" {
		t.Errorf("usbID() = %q, want empty", got)
	}
}

func TestFormatServos(t *testing.T) {
	servos := []feetech.FoundServo{{ID: 1}, {ID: 2}, {ID: 7}}
	if got, want := formatServos(servos), "3 servo(s), ids 1 2 7"; got != want {
		t.Errorf("formatServos() = %q, want %q", got, want)
	}
	if got := formatServos(nil); got != "no servos answered" {
		t.Errorf("formatServos(nil) = %q", got)
	}
}
