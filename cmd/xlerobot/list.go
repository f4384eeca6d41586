package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/xlerobot/pkg/device"
	"github.com/gwillem/xlerobot/pkg/robot"
)

type ListCommand struct {
	DeviceOptions `group:"Device Options"`
}

func (c *ListCommand) Execute(args []string) error {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	infos := c.resolver(logger).Scan(context.Background())
	if len(infos) == 0 {
		fmt.Println("No candidate devices found.")
		return nil
	}

	fmt.Println(renderDevices(infos, cfg))
	return nil
}

func busLabel(serial string, cfg *robot.Config) string {
	switch serial {
	case "":
		return ""
	case cfg.Bus1.Serial:
		return "bus 1"
	case cfg.Bus2.Serial:
		return "bus 2"
	}
	return ""
}

func usbID(info device.Info) string {
	if info.VendorID == "" && info.ProductID == "" {
		return ""
	}
	return info.VendorID + ":" + info.ProductID
}

func renderDevices(infos []device.Info, cfg *robot.Config) string {
	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableCellStyle := lipgloss.NewStyle().Padding(0, 1)
	tableBusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	tableMissingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		exists := "yes"
		if !info.Exists {
			exists = "no"
		}
		rows = append(rows, []string{
			info.Path,
			exists,
			info.Serial,
			usbID(info),
			info.Manufacturer,
			info.Product,
			info.Description,
			busLabel(info.Serial, cfg),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Path", "Exists", "Serial", "USB ID", "Manufacturer", "Product", "Description", "Bus").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			switch col {
			case 1:
				if row >= 0 && row < len(infos) && !infos[row].Exists {
					return tableMissingStyle
				}
			case 7:
				return tableBusStyle
			}
			return tableCellStyle
		})

	return t.Render()
}
