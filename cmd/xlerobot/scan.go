package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/xlerobot/pkg/robot"
)

type ScanCommand struct {
	DeviceOptions `group:"Device Options"`

	Timeout time.Duration `long:"timeout" default:"5s" description:"Timeout of each bus scan"`
}

func (c *ScanCommand) Execute(args []string) error {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ports := cfg.ResolvePorts(context.Background(), c.resolver(logger))
	printPorts(cfg.Bus1.Serial, cfg.Bus2.Serial, ports)
	fmt.Println()

	var failed int
	for i, bus := range []robot.BusConfig{cfg.Bus1, cfg.Bus2} {
		ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
		servos, err := robot.ScanConfiguredBus(ctx, bus)
		cancel()

		if err != nil {
			failed++
			fmt.Printf("  Bus %d: %s\n", i+1, errorStyle.Render(err.Error()))
			continue
		}
		fmt.Printf("  Bus %d: %s\n", i+1, successStyle.Render(formatServos(servos)))
	}

	if failed > 0 {
		return fmt.Errorf("%d bus(es) could not be scanned", failed)
	}
	return nil
}

func formatServos(servos []feetech.FoundServo) string {
	if len(servos) == 0 {
		return "no servos answered"
	}
	s := fmt.Sprintf("%d servo(s), ids", len(servos))
	for _, servo := range servos {
		s += fmt.Sprintf(" %d", servo.ID)
	}
	return s
}
