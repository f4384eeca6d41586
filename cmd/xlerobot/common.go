package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gwillem/xlerobot/pkg/device"
	"github.com/gwillem/xlerobot/pkg/robot"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// DeviceOptions control where candidate devices come from.
type DeviceOptions struct {
	Devices      []string      `long:"device" description:"Candidate device path, repeatable; disables pattern enumeration"`
	Patterns     []string      `long:"pattern" description:"Glob pattern for candidate paths, repeatable (default: /dev/ttyACM*, /COM*)"`
	ProbeTimeout time.Duration `long:"probe-timeout" default:"2s" description:"Timeout of each udevadm query"`
}

func (o DeviceOptions) resolver(logger *zap.SugaredLogger) *device.Resolver {
	var lister device.Lister = device.NewEnumerator()
	switch {
	case len(o.Devices) > 0:
		lister = device.StaticLister(o.Devices)
	case len(o.Patterns) > 0:
		lister = &device.Enumerator{Patterns: o.Patterns}
	}
	return device.NewResolver(
		device.WithLister(lister),
		device.WithPropertySource(device.UdevadmSource{Timeout: o.ProbeTimeout}),
		device.WithProbeTimeout(o.ProbeTimeout),
		device.WithLogger(logger),
	)
}

// newLogger logs to stderr at info level, or debug with --verbose.
func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if !opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func loadConfig() (*robot.Config, error) {
	return robot.LoadConfigOrDefault(opts.Config)
}

func portOrMissing(port string) string {
	if port == "" {
		return errorStyle.Render("(not found)")
	}
	return port
}

func printAmbiguities(ports device.Ports) {
	for _, a := range ports.Ambiguous {
		fmt.Println(warnStyle.Render(fmt.Sprintf("  warning: serial %s also reported by %s, using %s", a.Serial, a.Ignored, a.Kept)))
	}
}
