package device

import (
	"fmt"
	"strconv"

	"go.bug.st/serial/enumerator"
)

// Port is one entry of the OS serial port list.
type Port struct {
	Device       string
	Description  string
	Manufacturer string
	Product      string
	SerialNumber string
	VID          int
	PID          int
}

// PortLister lists the serial ports known to the OS.
type PortLister interface {
	Ports() ([]Port, error)
}

// SerialPortLister lists ports with go.bug.st/serial. That library reports
// no manufacturer or description, so Manufacturer is always empty and
// Description repeats Product.
type SerialPortLister struct{}

// Ports returns the detailed port list. USB ids arrive as hex strings and are
// parsed; ids that do not parse are left as zero.
func (SerialPortLister) Ports() ([]Port, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}

	ports := make([]Port, 0, len(details))
	for _, d := range details {
		if p, ok := portFromDetails(d); ok {
			ports = append(ports, p)
		}
	}
	return ports, nil
}

func portFromDetails(d *enumerator.PortDetails) (Port, bool) {
	if d == nil || d.Name == "" {
		return Port{}, false
	}
	p := Port{
		Device:       d.Name,
		Description:  d.Product,
		Product:      d.Product,
		SerialNumber: d.SerialNumber,
	}
	if d.IsUSB {
		p.VID = parseUSBID(d.VID)
		p.PID = parseUSBID(d.PID)
	}
	return p, true
}

func parseUSBID(s string) int {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0
	}
	return int(v)
}

// formatUSBID renders a USB id as four lowercase hex digits; zero is unknown.
func formatUSBID(id int) string {
	if id == 0 {
		return ""
	}
	return fmt.Sprintf("%04x", id)
}

// attributesFromPorts returns the attributes of the port whose device path
// equals path exactly.
func attributesFromPorts(ports []Port, path string) (Attributes, bool) {
	for _, p := range ports {
		if p.Device != path {
			continue
		}
		return Attributes{
			VendorID:     formatUSBID(p.VID),
			ProductID:    formatUSBID(p.PID),
			Serial:       p.SerialNumber,
			Description:  p.Description,
			Manufacturer: p.Manufacturer,
			Product:      p.Product,
		}, true
	}
	return Attributes{}, false
}
