package pcaninfo

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/omzlo/clog"
)

const (
	DefaultClassPath = "/sys/class/pcan"
	DefaultProcPath  = "/proc/pcan"

	legacyPrefix = "pcan_" // attribute prefix of drivers prior to 8.0
	ueventFile   = "uevent"
)

var ErrInvalidInfo = errors.New("pcaninfo: device has no class path or name")

// Sysfs reads devices from the driver class directory.
type Sysfs struct {
	Root     string // class directory, DefaultClassPath when empty
	ProcPath string // proc entry of legacy drivers, DefaultProcPath when empty
}

func (s Sysfs) root() string {
	if s.Root == "" {
		return DefaultClassPath
	}
	return s.Root
}

func (s Sysfs) proc() string {
	if s.ProcPath == "" {
		return DefaultProcPath
	}
	return s.ProcPath
}

// List returns every device of the class directory, sorted by name.
func (s Sysfs) List() ([]Info, error) {
	root := s.root()

	entries, err := os.ReadDir(root)
	if err != nil {
		clog.Warning("pcaninfo: failed to scan directory '%s': %s", root, err)
		return nil, err
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		// class attributes like "version" live next to the devices
		if e.Type().IsRegular() {
			continue
		}
		info := Info{Name: e.Name(), ClassPath: root}
		s.load(&info)
		infos = append(infos, info)
	}
	clog.DebugX("pcaninfo: found %d devices in '%s'", len(infos), root)
	return infos, nil
}

// Update reloads the attributes of a device previously returned by List.
func (s Sysfs) Update(info *Info) error {
	if info == nil || info.ClassPath == "" || info.Name == "" {
		return ErrInvalidInfo
	}
	s.load(info)
	return nil
}

func (s Sysfs) load(info *Info) {
	dir := filepath.Join(info.ClassPath, info.Name)
	clog.DebugXX("pcaninfo: scanning directory '%s'", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		clog.Warning("pcaninfo: failed to scan directory '%s': %s", dir, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() || e.Name() == ueventFile {
			continue
		}
		parseAttribute(info, dir, e.Name())
	}

	if info.HasEx(FlagExDevName) {
		info.Path = info.DevName
	} else {
		info.Path = "/dev/" + info.Name
	}
	info.Category = CategoryOf(info.HwType)
	info.AvailFlag |= FlagInitialized
	info.Updated = time.Now()
}

// DriverVersion returns the version of the loaded driver, or "" when no driver is found.
func (s Sysfs) DriverVersion() string {
	v, err := readFirstLine(filepath.Join(s.root(), "version"))
	if err == nil {
		return v
	}
	clog.Debug("pcaninfo: failed to read driver version: %s", err)
	if _, err := os.Stat(s.proc()); err == nil {
		return "prior to 8.0"
	}
	return ""
}

func readFirstLine(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(b), "\n")
	return line, nil
}

// parseUint reads the leading number of a value, honouring 0x and 0 prefixes.
func parseUint(s string) uint32 {
	s = strings.TrimSpace(s)
	if i := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' }); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

type attribute struct {
	flag   uint32
	flagEx uint32
	set    func(i *Info, value string)
}

func numAttr(flag, flagEx uint32, field func(i *Info) *uint32) attribute {
	return attribute{flag, flagEx, func(i *Info, v string) { *field(i) = parseUint(v) }}
}

func strAttr(flag, flagEx uint32, field func(i *Info) *string) attribute {
	return attribute{flag, flagEx, func(i *Info, v string) { *field(i) = v }}
}

var attributes = map[string]attribute{
	"adapter_name":      strAttr(FlagAdapterName, 0, func(i *Info) *string { return &i.AdapterName }),
	"adapter_number":    numAttr(FlagAdapterNb, 0, func(i *Info) *uint32 { return &i.AdapterNumber }),
	"adapter_version":   strAttr(FlagAdapterVersion, 0, func(i *Info) *string { return &i.AdapterVersion }),
	"base":              numAttr(FlagBase, 0, func(i *Info) *uint32 { return &i.Base }),
	"nom_bitrate":       numAttr(FlagNomBitrate, 0, func(i *Info) *uint32 { return &i.NomBitrate }),
	"nom_brp":           numAttr(0, FlagExNomBRP, func(i *Info) *uint32 { return &i.NomBRP }),
	"nom_sample_point":  numAttr(0, FlagExNomSamplePoint, func(i *Info) *uint32 { return &i.NomSamplePoint }),
	"nom_sjw":           numAttr(0, FlagExNomSJW, func(i *Info) *uint32 { return &i.NomSJW }),
	"nom_tseg1":         numAttr(0, FlagExNomTSEG1, func(i *Info) *uint32 { return &i.NomTSEG1 }),
	"nom_tseg2":         numAttr(0, FlagExNomTSEG2, func(i *Info) *uint32 { return &i.NomTSEG2 }),
	"nom_tq":            numAttr(0, FlagExNomTQ, func(i *Info) *uint32 { return &i.NomTQ }),
	"btr0btr1":          numAttr(FlagBTR0BTR1, 0, func(i *Info) *uint32 { return &i.BTR0BTR1 }),
	"bus_load":          numAttr(FlagBusLoad, 0, func(i *Info) *uint32 { return &i.BusLoad }),
	"bus_state":         numAttr(FlagBusState, 0, func(i *Info) *uint32 { return &i.BusState }),
	"clock":             numAttr(FlagClock, 0, func(i *Info) *uint32 { return &i.Clock }),
	"clk_drift":         numAttr(0, FlagExClkDrift, func(i *Info) *uint32 { return &i.ClkDrift }),
	"ctrlr_number":      numAttr(FlagCtrlNb, 0, func(i *Info) *uint32 { return &i.CtrlrNumber }),
	"data_bitrate":      numAttr(FlagDataBitrate, 0, func(i *Info) *uint32 { return &i.DataBitrate }),
	"data_brp":          numAttr(0, FlagExDataBRP, func(i *Info) *uint32 { return &i.DataBRP }),
	"data_sample_point": numAttr(0, FlagExDataSamplePoint, func(i *Info) *uint32 { return &i.DataSamplePoint }),
	"data_sjw":          numAttr(0, FlagExDataSJW, func(i *Info) *uint32 { return &i.DataSJW }),
	"data_tseg1":        numAttr(0, FlagExDataTSEG1, func(i *Info) *uint32 { return &i.DataTSEG1 }),
	"data_tseg2":        numAttr(0, FlagExDataTSEG2, func(i *Info) *uint32 { return &i.DataTSEG2 }),
	"data_tq":           numAttr(0, FlagExDataTQ, func(i *Info) *uint32 { return &i.DataTQ }),
	"dev":               strAttr(FlagDev, 0, func(i *Info) *string { return &i.Dev }),
	"dev_name":          strAttr(0, FlagExDevName, func(i *Info) *string { return &i.DevName }),
	"devid":             numAttr(FlagDevID, 0, func(i *Info) *uint32 { return &i.DevID }),
	"errors":            numAttr(FlagErrors, 0, func(i *Info) *uint32 { return &i.Errors }),
	"hwtype":            numAttr(FlagHwType, 0, func(i *Info) *uint32 { return &i.HwType }),
	"init_flags":        numAttr(0, FlagExInitFlags, func(i *Info) *uint32 { return &i.InitFlags }),
	"irq":               numAttr(FlagIRQ, 0, func(i *Info) *uint32 { return &i.IRQ }),
	"irqs":              numAttr(FlagIRQs, 0, func(i *Info) *uint32 { return &i.IRQs }),
	"mass_storage_mode": numAttr(0, FlagExMassStorageMode, func(i *Info) *uint32 { return &i.MassStorageMode }),
	"minor":             numAttr(FlagMinor, 0, func(i *Info) *uint32 { return &i.Minor }),
	"read":              numAttr(FlagRead, 0, func(i *Info) *uint32 { return &i.Read }),
	"rx_error_counter":  numAttr(FlagRxErr, 0, func(i *Info) *uint32 { return &i.RxErrorCounter }),
	"serial_number":     numAttr(FlagSN, 0, func(i *Info) *uint32 { return &i.SerialNumber }),
	"status":            numAttr(FlagStatus, 0, func(i *Info) *uint32 { return &i.Status }),
	"tx_error_counter":  numAttr(FlagTxErr, 0, func(i *Info) *uint32 { return &i.TxErrorCounter }),
	"type":              strAttr(FlagType, 0, func(i *Info) *string { return &i.Type }),
	"write":             numAttr(FlagWrite, 0, func(i *Info) *uint32 { return &i.Write }),
	"rx_fifo_ratio":     numAttr(FlagRxFifoRatio, 0, func(i *Info) *uint32 { return &i.RxFifoRatio }),
	"tx_fifo_ratio":     numAttr(FlagTxFifoRatio, 0, func(i *Info) *uint32 { return &i.TxFifoRatio }),
	"ts_fixed":          numAttr(0, FlagExTSFixed, func(i *Info) *uint32 { return &i.TSFixed }),
}

func init() {
	for _, name := range []string{"nom_bitrate", "clock", "data_bitrate", "dev", "devid", "hwtype", "minor"} {
		attributes[legacyPrefix+name] = attributes[name]
	}
}

func parseAttribute(info *Info, dir, name string) {
	attr, ok := attributes[name]
	if !ok {
		return
	}
	path := filepath.Join(dir, name)
	clog.DebugXX("pcaninfo: parsing file '%s'", path)

	line, err := readFirstLine(path)
	if err != nil {
		clog.Warning("pcaninfo: failed to open file '%s': %s", path, err)
		return
	}
	attr.set(info, line)
	info.AvailFlag |= attr.flag
	info.AvailFlagEx |= attr.flagEx
}
