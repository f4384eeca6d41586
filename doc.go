// Package xlerobot finds the serial motor buses of a dual-bus XLeRobot.
//
// The two bus adapters enumerate as /dev/ttyACM* (or COM ports on Windows) in
// whatever order the OS sees them. Each adapter has a fixed USB serial number,
// so the robot configuration names its buses by serial number and the device
// paths are looked up at startup.
//
// # Installation
//
//	go install github.com/gwillem/xlerobot/cmd/xlerobot@latest
//
// # Usage
//
// Pick the two bus adapters once:
//
//	xlerobot setup
//
// Then resolve the current device paths:
//
//	xlerobot ports
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/xlerobot: CLI with ports, list, setup and scan commands
//   - pkg/device: device enumeration, probing and serial number resolution
//   - pkg/robot: configuration and motor bus checks
package xlerobot
