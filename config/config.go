// Package config holds the library defaults, optionally read from a TOML file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/omzlo/clog"
)

const (
	DotFileName    = ".pcanbasic.conf"
	SystemFileName = "/etc/pcanbasic.conf"
)

var ErrNotFound = errors.New("config: no configuration file found")

type Configuration struct {
	LogLevel        string `toml:"log_level"`
	SysfsRoot       string `toml:"sysfs_root"`
	DeviceRefreshMs uint   `toml:"device_refresh_ms"`
	CloseGraceMs    uint   `toml:"close_grace_ms"`
	ResetAttempts   uint   `toml:"reset_attempts"`
	APILogLocation  string `toml:"api_log_location"`
	APILogStatus    bool   `toml:"api_log_status"`
	APILogConfigure uint32 `toml:"api_log_configure"`
	TraceLocation   string `toml:"trace_location"`
	TraceMaxSize    uint16 `toml:"trace_max_size"`
}

func Defaults() Configuration {
	return Configuration{
		LogLevel:        "warning",
		SysfsRoot:       "/sys/class/pcan",
		DeviceRefreshMs: 100,
		CloseGraceMs:    50,
		ResetAttempts:   3,
		APILogLocation:  ".",
		APILogStatus:    false,
		APILogConfigure: 0,
		TraceLocation:   ".",
		TraceMaxSize:    10,
	}
}

var Settings = Defaults()

// Locate returns fn when set, otherwise the first existing file among ~/.pcanbasic.conf and
// /etc/pcanbasic.conf.
func Locate(fn string) (string, error) {
	if fn != "" {
		return fn, nil
	}
	candidates := []string{SystemFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append([]string{filepath.Join(home, DotFileName)}, candidates...)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", ErrNotFound
}

// Decode reads a configuration file over the values already in c.
func Decode(fn string, c *Configuration) error {
	if _, err := toml.DecodeFile(fn, c); err != nil {
		return err
	}
	return nil
}

// Load updates Settings from the file found by Locate.
func Load(fn string) error {
	fn, err := Locate(fn)
	if err != nil {
		return err
	}
	if err := Decode(fn, &Settings); err != nil {
		return err
	}
	clog.DebugX("config: loaded '%s'", fn)
	return nil
}

var levels = map[string]clog.LogLevel{
	"debugxx": clog.DEBUGXX,
	"debugx":  clog.DEBUGX,
	"debug":   clog.DEBUG,
	"info":    clog.INFO,
	"warning": clog.WARNING,
	"error":   clog.ERROR,
}

// Level returns the diagnostic log level, WARNING for unknown names.
func (c *Configuration) Level() clog.LogLevel {
	if l, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return clog.WARNING
}
