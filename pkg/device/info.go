// Package device finds the OS device paths of the robot's serial motor buses.
//
// Device paths such as /dev/ttyACM0 are assigned by the OS in plug order, so
// they change across reboots and re-plugging. The USB serial number of each
// bus adapter does not. A Resolver lists candidate paths, reads each
// candidate's serial number through two independent probes and matches them
// against the two serial numbers the caller knows.
package device

// Attributes is what is known about a device. An empty field means the
// value is unknown.
type Attributes struct {
	VendorID     string `json:"vendor_id,omitempty"`
	ProductID    string `json:"product_id,omitempty"`
	Serial       string `json:"serial,omitempty"`
	Description  string `json:"description,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Product      string `json:"product,omitempty"`
}

// Merge returns a copy of a where every empty field is filled from fallback.
// Fields already set in a always win.
func (a Attributes) Merge(fallback Attributes) Attributes {
	pick := func(v, fb string) string {
		if v != "" {
			return v
		}
		return fb
	}
	return Attributes{
		VendorID:     pick(a.VendorID, fallback.VendorID),
		ProductID:    pick(a.ProductID, fallback.ProductID),
		Serial:       pick(a.Serial, fallback.Serial),
		Description:  pick(a.Description, fallback.Description),
		Manufacturer: pick(a.Manufacturer, fallback.Manufacturer),
		Product:      pick(a.Product, fallback.Product),
	}
}

// Info describes one candidate device path.
type Info struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Attributes
}
