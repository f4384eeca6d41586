package device

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Ports holds the device paths resolved for the two target serials. An empty
// path means the target was not found.
type Ports struct {
	Port1 string `json:"port1"`
	Port2 string `json:"port2"`

	// Ambiguous lists targets reported by more than one device path.
	Ambiguous []Ambiguity `json:"ambiguous,omitempty"`
}

// Ambiguity records a serial number seen on a second path after it was
// already matched. The first path is kept.
type Ambiguity struct {
	Serial  string `json:"serial"`
	Kept    string `json:"kept"`
	Ignored string `json:"ignored"`
}

// Resolved reports whether both paths are known.
func (p Ports) Resolved() bool {
	return p.Port1 != "" && p.Port2 != ""
}

func (p Ports) String() string {
	return fmt.Sprintf("port1: %s port2: %s", orNone(p.Port1), orNone(p.Port2))
}

func (p Ports) clone() Ports {
	c := p
	c.Ambiguous = append([]Ambiguity(nil), p.Ambiguous...)
	return c
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}

// Resolver maps target serial numbers to device paths and remembers the
// answer for its own lifetime. Create one per process and share it.
type Resolver struct {
	lister  Lister
	props   PropertySource
	ports   PortLister
	timeout time.Duration
	logger  *zap.SugaredLogger

	group singleflight.Group

	mu      sync.Mutex
	targets [2]string
	cached  Ports
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLister sets where candidate paths come from.
func WithLister(l Lister) Option {
	return func(r *Resolver) { r.lister = l }
}

// WithPropertySource sets the system device-property probe.
func WithPropertySource(s PropertySource) Option {
	return func(r *Resolver) { r.props = s }
}

// WithPortLister sets the serial-port descriptor probe.
func WithPortLister(l PortLister) Option {
	return func(r *Resolver) { r.ports = l }
}

// WithProbeTimeout bounds each device-property query.
func WithProbeTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver returns a Resolver using glob enumeration, udevadm and the
// go.bug.st/serial port list unless overridden by opts. Without WithLogger,
// info and above go to stderr.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		lister:  NewEnumerator(),
		props:   UdevadmSource{},
		ports:   SerialPortLister{},
		timeout: DefaultProbeTimeout,
		logger:  defaultLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the device paths whose serial numbers equal serial1 and
// serial2. Once both are found the cached pair is returned without touching
// any device. A partial result is cached as well; calling again only searches
// for the missing path. Resolve never fails: a target that cannot be found
// gets an empty path.
func (r *Resolver) Resolve(ctx context.Context, serial1, serial2 string) Ports {
	targets := [2]string{serial1, serial2}

	if cached := r.lookup(targets); cached.Resolved() {
		return cached
	}

	// The shared pass must not end early because one of the callers gave up;
	// the per-query timeouts bound it instead.
	passCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(serial1+"\x00"+serial2, func() (any, error) {
		have := r.lookup(targets)
		if have.Resolved() {
			return have, nil
		}
		found := r.pass(passCtx, targets, have)
		r.logger.Infow("resolved bus ports", "port1", found.Port1, "port2", found.Port2)
		return r.store(targets, found), nil
	})

	select {
	case res := <-ch:
		return res.Val.(Ports).clone()
	case <-ctx.Done():
		return r.lookup(targets)
	}
}

// Cached returns the cached result without resolving.
func (r *Resolver) Cached() Ports {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cached.clone()
}

// Reset forgets the cached result.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = [2]string{}
	r.cached = Ports{}
}

// lookup returns the cache for targets, clearing it if it was filled for
// different targets.
func (r *Resolver) lookup(targets [2]string) Ports {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.targets != targets {
		r.targets = targets
		r.cached = Ports{}
	}
	return r.cached.clone()
}

// store merges found into the cache. Slots already filled are kept.
func (r *Resolver) store(targets [2]string, found Ports) Ports {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.targets != targets {
		// Someone asked for other serials while we were probing.
		return found
	}
	if r.cached.Port1 == "" {
		r.cached.Port1 = found.Port1
	}
	if r.cached.Port2 == "" {
		r.cached.Port2 = found.Port2
	}
	r.cached.Ambiguous = append(r.cached.Ambiguous, found.Ambiguous...)
	return r.cached.clone()
}

// pass runs one enumerate-and-match pass. Slots set in have are not
// re-evaluated.
func (r *Resolver) pass(ctx context.Context, targets [2]string, have Ports) Ports {
	found := Ports{Port1: have.Port1, Port2: have.Port2}
	slots := [2]*string{&found.Port1, &found.Port2}
	var known [2]bool
	for i := range slots {
		known[i] = *slots[i] != ""
	}

	candidates := r.lister.Candidates()
	r.logger.Debugw("enumerated candidates", "count", len(candidates), "paths", candidates)
	if len(candidates) == 0 {
		return found
	}
	ports := r.listPorts()

	for _, path := range candidates {
		info := r.describe(ctx, path, ports)
		if info.Serial == "" {
			continue
		}
		for i, target := range targets {
			if known[i] || target == "" || info.Serial != target {
				continue
			}
			switch *slots[i] {
			case "":
				*slots[i] = path
			case path:
			default:
				found.Ambiguous = append(found.Ambiguous, Ambiguity{
					Serial:  target,
					Kept:    *slots[i],
					Ignored: path,
				})
				r.logger.Warnw("serial number reported by more than one device",
					"serial", target, "kept", *slots[i], "ignored", path)
			}
		}
	}
	return found
}

// Describe returns the merged device information for one path.
func (r *Resolver) Describe(ctx context.Context, path string) Info {
	return r.describe(ctx, path, r.listPorts())
}

// Scan describes every candidate path in enumeration order.
func (r *Resolver) Scan(ctx context.Context) []Info {
	candidates := r.lister.Candidates()
	if len(candidates) == 0 {
		return nil
	}
	ports := r.listPorts()
	infos := make([]Info, 0, len(candidates))
	for _, path := range candidates {
		if ctx.Err() != nil {
			break
		}
		infos = append(infos, r.describe(ctx, path, ports))
	}
	return infos
}

func (r *Resolver) describe(ctx context.Context, path string, ports []Port) Info {
	info := Info{Path: path}
	if _, err := os.Stat(path); err == nil {
		info.Exists = true
	}

	fromProps, _ := r.probeProperties(ctx, path)
	fromPorts, ok := attributesFromPorts(ports, path)
	if !ok {
		r.logger.Debugw("no serial port descriptor", "path", path)
	}
	info.Attributes = fromProps.Merge(fromPorts)
	return info
}

func defaultLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// probeProperties queries the property source. Failures yield no data.
func (r *Resolver) probeProperties(ctx context.Context, path string) (Attributes, bool) {
	if r.props == nil {
		return Attributes{}, false
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	props, err := r.props.Properties(ctx, path)
	if err != nil {
		r.logger.Debugw("device property probe failed", "path", path, "error", err)
		return Attributes{}, false
	}
	return AttributesFromProperties(props), true
}

// listPorts fetches the serial port list once per pass. Failures yield no data.
func (r *Resolver) listPorts() []Port {
	if r.ports == nil {
		return nil
	}
	ports, err := r.ports.Ports()
	if err != nil {
		r.logger.Debugw("serial port probe failed", "error", err)
		return nil
	}
	return ports
}
