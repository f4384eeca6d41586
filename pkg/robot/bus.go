package robot

import (
	"context"
	"fmt"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

// Servo id range used by the XLeRobot buses: a 6-motor arm plus up to three
// head or base motors.
const (
	MinServoID = 1
	MaxServoID = 9
)

// ScanBus opens the motor bus on port and returns the servos with ids in
// [minID, maxID] that answer a ping.
func ScanBus(ctx context.Context, port string, minID, maxID int) ([]feetech.FoundServo, error) {
	if minID < 0 || maxID < minID || maxID > 253 {
		return nil, fmt.Errorf("invalid servo id range %d-%d", minID, maxID)
	}

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: 1_000_000,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus %s: %w", port, err)
	}
	defer bus.Close()

	servos, err := bus.Scan(ctx, minID, maxID)
	if err != nil {
		return nil, fmt.Errorf("scan bus %s: %w", port, err)
	}
	return servos, nil
}

// ScanConfiguredBus scans a configured bus, failing with ErrPortUnresolved
// when its port is unknown.
func ScanConfiguredBus(ctx context.Context, b BusConfig) ([]feetech.FoundServo, error) {
	port, err := b.RequirePort()
	if err != nil {
		return nil, err
	}
	return ScanBus(ctx, port, MinServoID, MaxServoID)
}
