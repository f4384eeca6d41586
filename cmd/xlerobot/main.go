package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Config  string `long:"config" default:"xlerobot.json" description:"Configuration file"`
	Verbose bool   `short:"v" long:"verbose" description:"Log probe details"`

	Ports PortsCommand `command:"ports" description:"Resolve the device paths of both motor buses"`
	List  ListCommand  `command:"list" alias:"ls" description:"List candidate devices and their serial numbers"`
	Setup SetupCommand `command:"setup" description:"Choose the bus adapters and save the configuration"`
	Scan  ScanCommand  `command:"scan" description:"Resolve both buses and scan them for servos"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "XLeRobot - find the serial motor buses of a dual-bus XLeRobot"

	// flags.Default includes PrintErrors, so every error, including those
	// returned by a command's Execute, has already been written to stderr.
	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
