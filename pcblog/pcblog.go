// Package pcblog writes the PCAN-Basic API log (PCANBasic.log).
//
// The file is opened lazily on the first write after logging was enabled, and closed when
// the location changes or the logger is closed.
package pcblog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	DefaultLocation = "."
	FileName        = "PCANBasic.log"
)

// Bits of the log configuration
const (
	FunctionDefault    uint32 = 0x00
	FunctionEntry      uint32 = 0x01
	FunctionParameters uint32 = 0x02
	FunctionLeave      uint32 = 0x04
	FunctionWrite      uint32 = 0x08
	FunctionRead       uint32 = 0x10
	FunctionAll        uint32 = 0xFFFF
)

var (
	openedBanner = []string{
		"«____________________________________»",
		"«           PCAN-Basic Log           »",
		"«____________________________________»",
	}
	closedBanner = []string{
		"«____________________________________»",
		"«            ############            »",
		"«____________________________________»",
	}
)

// Logger is an API log. The zero value is not usable, use New.
type Logger struct {
	mu       sync.Mutex
	location string
	enabled  bool
	flags    uint32
	f        *os.File

	now func() time.Time
}

func New() *Logger {
	return &Logger{location: DefaultLocation, flags: FunctionDefault, now: time.Now}
}

// Location returns the directory of the log file.
func (l *Logger) Location() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.location
}

// SetLocation changes the directory of the log file, "" restores the default. The current
// file is closed and the next write opens the new one.
func (l *Logger) SetLocation(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if dir == "" {
		dir = DefaultLocation
	}
	l.location = dir
	l.closeFile()
}

func (l *Logger) Status() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *Logger) SetStatus(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *Logger) Config() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flags
}

func (l *Logger) SetConfig(flags uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flags = flags
}

// Path returns the full path of the log file.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return filepath.Join(l.location, FileName)
}

// Close writes the closing banner and closes the file.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeFile()
}

func (l *Logger) closeFile() {
	if l.f == nil {
		return
	}
	for _, s := range closedBanner {
		l.writeLine(s)
	}
	l.f.Close()
	l.f = nil
}

func (l *Logger) check() {
	if !l.enabled || l.f != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(l.location, FileName), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return
	}
	l.f = f
	for _, s := range openedBanner {
		l.writeLine(s)
	}
}

func (l *Logger) writeLine(msg string) {
	if l.f == nil {
		return
	}
	fmt.Fprintf(l.f, "%s - %s\n", l.now().Format(time.ANSIC), msg)
}

// Write appends a text to the log, opening the file if logging is enabled.
func (l *Logger) Write(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.check()
	l.writeLine(msg)
}

func (l *Logger) writeIf(flag uint32, format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || l.flags&flag != flag {
		return
	}
	l.check()
	l.writeLine(fmt.Sprintf(format, a...))
}

func (l *Logger) WriteEntry(fn string) {
	l.writeIf(FunctionEntry, "ENTRY      '%s'", fn)
}

func (l *Logger) WriteParam(fn, params string) {
	l.writeIf(FunctionParameters, "PARAMETERS of %s: %s", fn, params)
}

func (l *Logger) WriteExit(fn string, status uint32) {
	l.writeIf(FunctionLeave, "EXIT       '%s' -   RESULT: 0x%02X", fn, status)
}

func (l *Logger) WriteException(fn string) {
	l.writeIf(0, "EXCEPTION FOUND IN '%s'", fn)
}

// WriteCANMsg logs a classic frame. direction is FunctionWrite or FunctionRead.
func (l *Logger) WriteCANMsg(channel uint16, direction uint32, id uint32, length uint8, data [8]byte) {
	dir := "IN"
	if direction == FunctionWrite {
		dir = "OUT"
	}
	l.writeIf(direction, "CHANNEL    0x%02X (%s) ID=0x%X Len=%d, Data=0x%02X 0x%02X 0x%02X 0x%02X 0x%02X 0x%02X 0x%02X 0x%02X",
		channel, dir, id, length, data[0], data[1], data[2], data[3], data[4], data[5], data[6], data[7])
}
