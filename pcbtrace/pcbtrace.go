// Package pcbtrace records the traffic of a channel into PCAN trace files (.trc, format 2.0).
package pcbtrace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/omzlo/clog"
)

// Bits of the trace configuration
const (
	FileSingle    uint32 = 0x00
	FileSegmented uint32 = 0x01
	FileDate      uint32 = 0x02
	FileTime      uint32 = 0x04
	FileOverwrite uint32 = 0x80
)

const (
	DefaultLocation = "."
	DefaultMaxSize  = 10  // MB
	MaxSizeAccepted = 100 // MB
	Version         = "2.0"
)

var ErrNotOpen = errors.New("pcbtrace: trace is not open")

// Record is one traced message.
type Record struct {
	ID     uint32
	Ext    bool
	RTR    bool
	FD     bool
	BRS    bool
	ESI    bool
	Status bool
	Error  bool
	Data   []byte
	Time   time.Time
	Rx     bool
}

// Tracer writes the trace files of one channel.
type Tracer struct {
	Directory string
	MaxSize   uint16 // MB per file
	Flags     uint32

	chname  string
	bitrate string
	path    string
	idx     int
	f       *os.File
	written int64
	count   uint32
	start   time.Time
	full    bool

	now func() time.Time
}

func New() *Tracer {
	return &Tracer{Directory: DefaultLocation, MaxSize: DefaultMaxSize, Flags: FileSingle, now: time.Now}
}

// Status reports whether a trace is being recorded.
func (t *Tracer) Status() bool {
	return t.f != nil
}

// Path returns the file being written, "" when closed.
func (t *Tracer) Path() string {
	if t.f == nil {
		return ""
	}
	return t.path
}

// Opens a new trace
// chname: channel name used in the file name, ex. PCAN_USBBUS1
// bitrate: bit rate description written in the header
func (t *Tracer) Open(chname, bitrate string) error {
	if t.f != nil {
		t.Close()
	}
	if t.MaxSize == 0 || t.MaxSize > MaxSizeAccepted {
		t.MaxSize = DefaultMaxSize
	}
	t.chname = chname
	t.bitrate = bitrate
	t.idx = 1
	t.count = 0
	t.full = false
	t.start = t.now()
	return t.openFile()
}

func (t *Tracer) fileName() string {
	var sb strings.Builder
	if t.Flags&FileDate != 0 {
		sb.WriteString(t.start.Format("20060102") + "_")
	}
	if t.Flags&FileTime != 0 {
		sb.WriteString(t.start.Format("150405") + "_")
	}
	sb.WriteString(t.chname)
	if t.Flags&FileSegmented != 0 {
		fmt.Fprintf(&sb, "_%d", t.idx)
	}
	sb.WriteString(".trc")
	return sb.String()
}

func (t *Tracer) openFile() error {
	dir := t.Directory
	if dir == "" {
		dir = DefaultLocation
	}
	path := filepath.Join(dir, t.fileName())

	flags := os.O_WRONLY | os.O_CREATE
	if t.Flags&FileOverwrite != 0 {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		clog.Warning("pcbtrace: failed to open trace file '%s': %s", path, err)
		return err
	}
	t.f = f
	t.path = path
	t.written = 0
	clog.Debug("pcbtrace: tracing into '%s'", path)
	return t.writeHeader()
}

// Close stops recording.
func (t *Tracer) Close() error {
	if t.f == nil {
		return nil
	}
	err := t.f.Close()
	t.f = nil
	return err
}

// oleDays is the OLE automation date of a time: days since 1899-12-30, local time.
func oleDays(ts time.Time) float64 {
	_, off := ts.Zone()
	return (float64(ts.UnixNano())/1e9+float64(off))/86400 + 25569
}

func (t *Tracer) writeHeader() error {
	lines := []string{
		";$FILEVERSION=" + Version,
		fmt.Sprintf(";$STARTTIME=%.10f", oleDays(t.start)),
		";$COLUMNS=N,O,T,I,d,l,D",
		";",
		";   " + t.path,
		";   Start time: " + t.start.Format("02/01/2006 15:04:05.000") + ".0",
		";   Generated by PCAN-Basic API",
		";-------------------------------------------------------------------------------",
		";   Connection                 Bit rate",
		fmt.Sprintf(";   %-26s %s", t.chname, t.bitrate),
		";-------------------------------------------------------------------------------",
		";   Message   Time    Type ID     Rx/Tx",
		";   Number    Offset  |    [hex]  |  Data Length",
		";   |         [ms]    |    |      |  |  Data [hex] ...",
		";   |         |       |    |      |  |  |",
		";---+-- ------+------ +- --+----- +- +- +- -- -- -- -- -- -- --",
	}
	for _, l := range lines {
		if err := t.writeRaw(l + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracer) writeRaw(s string) error {
	n, err := t.f.WriteString(s)
	t.written += int64(n)
	return err
}

func msgType(r *Record) string {
	switch {
	case r.Status:
		return "ST"
	case r.Error:
		return "ER"
	case r.RTR:
		return "RR"
	case r.FD && r.BRS && r.ESI:
		return "BI"
	case r.FD && r.BRS:
		return "FB"
	case r.FD && r.ESI:
		return "FE"
	case r.FD:
		return "FD"
	}
	return "DT"
}

// Line formats a record as a trace data line (without the line feed).
func (t *Tracer) Line(n uint32, r *Record) string {
	id := fmt.Sprintf("%04X", r.ID)
	if r.Ext {
		id = fmt.Sprintf("%08X", r.ID)
	}
	dir := "Tx"
	if r.Rx {
		dir = "Rx"
	}
	offset := float64(r.Time.Sub(t.start).Microseconds()) / 1000

	var sb strings.Builder
	fmt.Fprintf(&sb, "%7d %13.3f %s %8s %s %-2d", n, offset, msgType(r), id, dir, len(r.Data))
	if !r.RTR {
		for _, b := range r.Data {
			fmt.Fprintf(&sb, " %02X", b)
		}
	}
	return sb.String()
}

// WriteMsg appends a message. In segmented mode a full file is followed by the next
// segment. In single mode writing stops once the file is full.
func (t *Tracer) WriteMsg(r Record) error {
	if t.f == nil {
		return ErrNotOpen
	}
	if t.full {
		return nil
	}
	line := t.Line(t.count+1, &r) + "\n"

	if t.written+int64(len(line)) > int64(t.MaxSize)*1024*1024 {
		if t.Flags&FileSegmented == 0 {
			clog.Debug("pcbtrace: '%s' reached %d MB, tracing stopped", t.path, t.MaxSize)
			t.full = true
			return nil
		}
		t.f.Close()
		t.f = nil
		t.idx++
		if err := t.openFile(); err != nil {
			return err
		}
	}
	t.count++
	return t.writeRaw(line)
}

// Comment appends a comment line.
func (t *Tracer) Comment(text string) error {
	if t.f == nil {
		return ErrNotOpen
	}
	return t.writeRaw(";   " + text + "\n")
}
