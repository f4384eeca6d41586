package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gwillem/xlerobot/pkg/device"
)

type PortsCommand struct {
	DeviceOptions `group:"Device Options"`

	Serial1 string `long:"serial1" description:"Serial number of bus 1 (default from config)"`
	Serial2 string `long:"serial2" description:"Serial number of bus 2 (default from config)"`
	Save    bool   `long:"save" description:"Write the resolved ports to the config file"`
	JSON    bool   `long:"json" description:"Print the result as JSON"`
}

func (c *PortsCommand) Execute(args []string) error {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.Serial1 != "" {
		cfg.Bus1.Serial = c.Serial1
	}
	if c.Serial2 != "" {
		cfg.Bus2.Serial = c.Serial2
	}

	ports := cfg.ResolvePorts(context.Background(), c.resolver(logger))

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ports); err != nil {
			return err
		}
	} else {
		printPorts(cfg.Bus1.Serial, cfg.Bus2.Serial, ports)
	}

	if c.Save {
		if err := cfg.SaveTo(opts.Config); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		if !c.JSON {
			fmt.Printf("Configuration saved to %s\n", opts.Config)
		}
	}
	return nil
}

func printPorts(serial1, serial2 string, ports device.Ports) {
	fmt.Println(headerStyle.Render("XLeRobot buses"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━"))
	fmt.Printf("  Bus 1 %s: %s\n", dimStyle.Render("("+serial1+")"), portOrMissing(ports.Port1))
	fmt.Printf("  Bus 2 %s: %s\n", dimStyle.Render("("+serial2+")"), portOrMissing(ports.Port2))
	printAmbiguities(ports)
	if !ports.Resolved() {
		fmt.Println()
		fmt.Println("Make sure both bus adapters are plugged in, or run " + headerStyle.Render("xlerobot list") + " to see what is connected.")
	}
}
