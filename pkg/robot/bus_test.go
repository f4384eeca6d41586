package robot

import (
	"context"
	"errors"
	"testing"
)

func TestScanBus_InvalidRange(t *testing.T) {
	tests := []struct {
		min, max int
	}{
		{-1, 6},
		{6, 1},
		{1, 254},
	}
	for _, tt := range tests {
		if _, err := ScanBus(context.Background(), "/dev/null", tt.min, tt.max); err == nil {
			t.Errorf("ScanBus(%d, %d) should fail", tt.min, tt.max)
		}
	}
}

func TestScanConfiguredBus_Unresolved(t *testing.T) {
	_, err := ScanConfiguredBus(context.Background(), BusConfig{Serial: "AAA111"})
	if !errors.Is(err, ErrPortUnresolved) {
		t.Errorf("ScanConfiguredBus() error = %v, want ErrPortUnresolved", err)
	}
}
