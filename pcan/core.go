package pcan

import (
	"errors"
	"sync"
	"time"

	"github.com/morgadow/gopcanbasic/config"
	"github.com/morgadow/gopcanbasic/pcaninfo"
	"github.com/morgadow/gopcanbasic/pcanfd"
	"github.com/morgadow/gopcanbasic/pcbtrace"
	"github.com/morgadow/gopcanbasic/pcblog"
	"github.com/omzlo/clog"
)

/* The Core holds every channel opened by a process together with the device directory and the API log. */

const (
	DefaultRefreshInterval = 100 * time.Millisecond // age of the device snapshot before it is rescanned
	DefaultCloseGrace      = 50 * time.Millisecond  // time given to pending transmissions when a channel is closed
	DefaultResetAttempts   = 3                      // attempts to reopen a device during a reset
)

// Core is a PCAN-Basic context. All methods are safe for concurrent use.
type Core struct {
	mu       sync.Mutex
	channels map[TPCANHandle]*channel

	dir    *directory
	opener pcanfd.Opener
	log    *pcblog.Logger

	closeGrace    time.Duration
	resetAttempts uint
	traceLocation string
	traceMaxSize  uint16

	now func() time.Time
}

// Option configures a Core created with NewCore.
type Option func(*Core)

// WithLister selects where devices are discovered, default is the sysfs class of the driver.
func WithLister(l pcaninfo.Lister) Option {
	return func(c *Core) { c.dir.lister = l }
}

// WithOpener selects how device nodes are opened, default is the character device driver.
func WithOpener(o pcanfd.Opener) Option {
	return func(c *Core) { c.opener = o }
}

func WithLogger(l *pcblog.Logger) Option {
	return func(c *Core) { c.log = l }
}

func WithRefreshInterval(d time.Duration) Option {
	return func(c *Core) { c.dir.ttl = d }
}

func WithCloseGrace(d time.Duration) Option {
	return func(c *Core) { c.closeGrace = d }
}

func WithResetAttempts(n uint) Option {
	return func(c *Core) {
		if n > 0 {
			c.resetAttempts = n
		}
	}
}

// WithTraceDefaults sets the directory and size limit of the traces of new channels.
func WithTraceDefaults(location string, maxSize uint16) Option {
	return func(c *Core) {
		c.traceLocation = location
		c.traceMaxSize = maxSize
	}
}

// Creates a new context without any channel
func NewCore(opts ...Option) *Core {
	c := &Core{
		channels:      make(map[TPCANHandle]*channel),
		dir:           newDirectory(pcaninfo.Sysfs{}, DefaultRefreshInterval),
		opener:        pcanfd.Chardev{},
		log:           pcblog.New(),
		closeGrace:    DefaultCloseGrace,
		resetAttempts: DefaultResetAttempts,
		traceLocation: pcbtrace.DefaultLocation,
		traceMaxSize:  pcbtrace.DefaultMaxSize,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCoreFromConfig creates a context from the library configuration, opts are applied last.
func NewCoreFromConfig(cfg *config.Configuration, opts ...Option) *Core {
	logger := pcblog.New()
	logger.SetLocation(cfg.APILogLocation)
	logger.SetConfig(cfg.APILogConfigure)
	logger.SetStatus(cfg.APILogStatus)

	base := []Option{
		WithLister(pcaninfo.Sysfs{Root: cfg.SysfsRoot}),
		WithLogger(logger),
		WithRefreshInterval(time.Duration(cfg.DeviceRefreshMs) * time.Millisecond),
		WithCloseGrace(time.Duration(cfg.CloseGraceMs) * time.Millisecond),
		WithResetAttempts(cfg.ResetAttempts),
		WithTraceDefaults(cfg.TraceLocation, cfg.TraceMaxSize),
	}
	return NewCore(append(base, opts...)...)
}

var (
	defaultCore *Core
	defaultOnce sync.Once
)

// Default returns the context used by the package level API functions. It is created on
// first use from the configuration file, if any.
func Default() *Core {
	defaultOnce.Do(func() {
		if err := config.Load(""); err != nil && !errors.Is(err, config.ErrNotFound) {
			clog.Warning("pcan: failed to load configuration: %s", err)
		}
		clog.SetLogLevel(config.Settings.Level())
		defaultCore = NewCoreFromConfig(&config.Settings)
	})
	return defaultCore
}

// Close releases every channel and the API log. The Core stays usable.
func (c *Core) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uninitializeAll()
	c.log.Close()
}

// Logger returns the API log of the context.
func (c *Core) Logger() *pcblog.Logger {
	return c.log
}
