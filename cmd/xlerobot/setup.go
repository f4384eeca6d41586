package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/gwillem/xlerobot/pkg/device"
	"github.com/gwillem/xlerobot/pkg/robot"
)

type SetupCommand struct {
	DeviceOptions `group:"Device Options"`
}

func (c *SetupCommand) Execute(args []string) error {
	logger := newLogger()
	defer logger.Sync()

	fmt.Println(headerStyle.Render("XLeRobot Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━"))
	fmt.Println()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if robot.ConfigExists(opts.Config) {
		fmt.Printf("Existing configuration found in %s\n", opts.Config)
		fmt.Printf("  Bus 1: %s\n", cfg.Bus1.Serial)
		fmt.Printf("  Bus 2: %s\n", cfg.Bus2.Serial)
		fmt.Println()
	}

	resolver := c.resolver(logger)

	fmt.Println("Scanning for serial devices...")
	fmt.Println()
	adapters := withSerial(resolver.Scan(context.Background()))
	if len(adapters) < 2 {
		fmt.Printf("Found %d bus adapter(s) with a serial number, need 2.\n", len(adapters))
		fmt.Println("Make sure both bus adapters are plugged in.")
		os.Exit(1)
	}

	fmt.Println(renderDevices(adapters, cfg))
	fmt.Println()

	serial1 := chooseAdapter("Which adapter is bus 1?", "Arm and head camera bus", adapters, "", cfg.Bus1.Serial)
	serial2 := chooseAdapter("Which adapter is bus 2?", "Arm and base bus", adapters, serial1, cfg.Bus2.Serial)

	cfg.Bus1.Serial = serial1
	cfg.Bus2.Serial = serial2
	ports := cfg.ResolvePorts(context.Background(), resolver)

	fmt.Println()
	printPorts(cfg.Bus1.Serial, cfg.Bus2.Serial, ports)

	if err := cfg.SaveTo(opts.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", opts.Config)
	return nil
}

// withSerial keeps devices that reported a serial number, one per serial.
func withSerial(infos []device.Info) []device.Info {
	var out []device.Info
	seen := make(map[string]bool)
	for _, info := range infos {
		if info.Serial == "" || seen[info.Serial] {
			continue
		}
		seen[info.Serial] = true
		out = append(out, info)
	}
	return out
}

func adapterLabel(info device.Info) string {
	label := fmt.Sprintf("%s  %s", info.Serial, dimStyle.Render(info.Path))
	if info.Product != "" {
		label += dimStyle.Render("  " + info.Product)
	}
	return label
}

// chooseAdapter asks the user to pick an adapter serial, excluding one that
// is already taken and preselecting current.
func chooseAdapter(title, description string, adapters []device.Info, exclude, current string) string {
	var options []huh.Option[string]
	for _, info := range adapters {
		if info.Serial == exclude {
			continue
		}
		options = append(options, huh.NewOption(adapterLabel(info), info.Serial).Selected(info.Serial == current))
	}

	var serial string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(description).
				Options(options...).
				Value(&serial),
		),
	)

	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	return serial
}
