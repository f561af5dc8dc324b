package pcaninfo

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/morgadow/gopcanbasic/pcanfd"
)

// PrettyUnit prints a value with its SI prefix, ex. 500000 gives "500 k".
func PrettyUnit(val uint32) string {
	fval := float64(val)
	unit := ""
	switch {
	case val >= 1000000:
		fval /= 1000000
		unit = "M"
	case val >= 1000:
		fval /= 1000
		unit = "k"
	}

	e := math.Floor(fval)
	if fval-e > 0 {
		return fmt.Sprintf("%.03f %s", fval, unit)
	}
	return fmt.Sprintf("%d %s", uint64(e), unit)
}

// PrettyBusState names a bus state.
func PrettyBusState(state uint32) string {
	switch state {
	case pcanfd.ErrorPassive:
		return "Passive"
	case pcanfd.ErrorWarning:
		return "Warning"
	case pcanfd.ErrorBusOff:
		return "BUS OFF"
	case pcanfd.ErrorActive:
		return "OK"
	}
	return "Closed / Unknown"
}

// BitrateString describes the bus speed, ex. "Nominal: 500 kBit/s (0x1c) (8 MHz)".
func BitrateString(info *Info) string {
	var sb strings.Builder
	if info.Has(FlagNomBitrate) && info.NomBitrate > 0 {
		fmt.Fprintf(&sb, "Nominal: %sBit/s", PrettyUnit(info.NomBitrate))
	}
	if info.Has(FlagBTR0BTR1) && info.BTR0BTR1 > 0 {
		fmt.Fprintf(&sb, " (0x%x)", info.BTR0BTR1)
	}
	if info.Has(FlagDataBitrate) && info.DataBitrate > 0 {
		fmt.Fprintf(&sb, ", Data: %sBit/s", PrettyUnit(info.DataBitrate))
	}
	if info.Has(FlagClock) {
		fmt.Fprintf(&sb, " (%sHz)", PrettyUnit(info.Clock))
	}
	return sb.String()
}

// BitrateInitString returns the FD init string matching the current bus timing, or "" when
// the clock is unknown.
func BitrateInitString(info *Info) string {
	if !info.Has(FlagClock) || info.Clock == 0 {
		return ""
	}
	return fmt.Sprintf("f_clock=%d,nom_brp=%d,nom_tseg1=%d,nom_tseg2=%d,nom_sjw=%d,data_brp=%d,data_tseg1=%d,data_tseg2=%d,data_sjw=%d,",
		info.Clock, info.NomBRP, info.NomTSEG1, info.NomTSEG2, info.NomSJW,
		info.DataBRP, info.DataTSEG1, info.DataTSEG2, info.DataSJW)
}

// group collects the lines of one report section
type group struct {
	w     io.Writer
	lines int
}

func (g *group) line(format string, a ...interface{}) {
	fmt.Fprintf(g.w, "  \t- "+format+"\n", a...)
	g.lines++
}

func (g *group) end() {
	if g.lines > 0 {
		fmt.Fprint(g.w, "  \t-----------------\n")
	}
	g.lines = 0
}

// Output writes the full report of a device.
func Output(w io.Writer, info *Info) {
	if info == nil {
		return
	}
	fmt.Fprintf(w, "  * %s: (%s/%s)\n", info.Name, info.ClassPath, info.Name)
	fmt.Fprintf(w, "  \t- file: %s\n", info.Path)

	g := &group{w: w}
	if info.Has(FlagDev) {
		g.line("dev: \"%s\"", info.Dev)
	}
	if info.HasEx(FlagExDevName) {
		g.line("dev_name: \"%s\"", info.DevName)
	}
	if info.Has(FlagMinor) {
		g.line("minor: %d", info.Minor)
	}
	if info.Has(FlagBase) {
		g.line("base: %d", info.Base)
	}
	if info.Has(FlagIRQ) {
		g.line("irq: %d", info.IRQ)
	}
	g.end()

	if info.Has(FlagAdapterName) {
		g.line("adapter_name: \"%s\"", info.AdapterName)
	}
	if info.Has(FlagAdapterNb) {
		g.line("adapter_number: %d", info.AdapterNumber)
	}
	if info.Has(FlagAdapterVersion) {
		g.line("adapter_version: \"%s\"", info.AdapterVersion)
	}
	if info.Has(FlagType) {
		g.line("type: \"%s\"", info.Type)
	}
	if info.Has(FlagHwType) {
		g.line("hwtype: %d", info.HwType)
	}
	if info.Has(FlagDevID) {
		g.line("devid: 0x%02x", info.DevID)
	}
	if info.Has(FlagSN) {
		g.line("serial_number: %d", info.SerialNumber)
	}
	if info.Has(FlagCtrlNb) {
		g.line("ctrlr_number: %d", info.CtrlrNumber)
	}
	if info.HasEx(FlagExMassStorageMode) {
		g.line("mass_storage_mode: %d", info.MassStorageMode)
	}
	g.end()

	if info.Has(FlagClock) {
		g.line("clock: %sHz", PrettyUnit(info.Clock))
	}
	if info.Has(FlagNomBitrate) {
		g.line("nom_bitrate: %sBit/s", PrettyUnit(info.NomBitrate))
	}
	if info.Has(FlagBTR0BTR1) {
		g.line("btr0btr1: 0x%x", info.BTR0BTR1)
	}
	if info.Has(FlagDataBitrate) {
		g.line("data_bitrate: %sBit/s", PrettyUnit(info.DataBitrate))
	}
	if info.HasEx(FlagExInitFlags) {
		g.line("init_flags: %d", info.InitFlags)
	}
	if info.HasEx(FlagExClkDrift) {
		g.line("clk_drift: %d", info.ClkDrift)
	}
	if info.HasEx(FlagExTSFixed) {
		g.line("ts_fixed: %d", info.TSFixed)
	}
	g.end()

	if info.HasEx(FlagExNomBRP) {
		g.line("nom_brp: %d", info.NomBRP)
	}
	if info.HasEx(FlagExNomSamplePoint) {
		g.line("nom_sample_point: %.02f%%", float64(info.NomSamplePoint)/100)
	}
	if info.HasEx(FlagExNomSJW) {
		g.line("nom_sjw: %d", info.NomSJW)
	}
	if info.HasEx(FlagExNomTSEG1) {
		g.line("nom_tseg1: %d", info.NomTSEG1)
	}
	if info.HasEx(FlagExNomTSEG2) {
		g.line("nom_tseg2: %d", info.NomTSEG2)
	}
	if info.HasEx(FlagExNomTQ) {
		g.line("nom_tq: %d", info.NomTQ)
	}
	if info.HasEx(FlagExDataBRP) {
		g.line("data_brp: %d", info.DataBRP)
	}
	if info.HasEx(FlagExDataSamplePoint) {
		g.line("data_sample_point: %.02f%%", float64(info.DataSamplePoint)/100)
	}
	if info.HasEx(FlagExDataSJW) {
		g.line("data_sjw: %d", info.DataSJW)
	}
	if info.HasEx(FlagExDataTSEG1) {
		g.line("data_tseg1: %d", info.DataTSEG1)
	}
	if info.HasEx(FlagExDataTSEG2) {
		g.line("data_tseg2: %d", info.DataTSEG2)
	}
	if info.HasEx(FlagExDataTQ) {
		g.line("data_tq: %d", info.DataTQ)
	}
	g.end()

	if info.Has(FlagBusState) {
		g.line("bus_state: %s (%d)", PrettyBusState(info.BusState), info.BusState)
	}
	if info.Has(FlagBusLoad) {
		g.line("bus_load: %d%%", info.BusLoad)
	}
	if info.Has(FlagRxErr) {
		g.line("rx_error_counter: %d", info.RxErrorCounter)
	}
	if info.Has(FlagTxErr) {
		g.line("tx_error_counter: %d", info.TxErrorCounter)
	}
	if info.Has(FlagRxFifoRatio) {
		g.line("rx_fifo_ratio: %d%%", info.RxFifoRatio)
	}
	if info.Has(FlagTxFifoRatio) {
		g.line("tx_fifo_ratio: %d%%", info.TxFifoRatio)
	}
	g.end()

	if info.Has(FlagIRQs) {
		g.line("irqs: %d", info.IRQs)
	}
	if info.Has(FlagStatus) {
		g.line("status: %d", info.Status)
	}
	if info.Has(FlagErrors) {
		g.line("errors: %d", info.Errors)
	}
	if info.Has(FlagRead) {
		g.line("read: %d", info.Read)
	}
	if info.Has(FlagWrite) {
		g.line("write: %d", info.Write)
	}
	g.end()
}

// Print writes the driver version followed by the report of every device.
func Print(w io.Writer, version string, infos []Info) {
	if version != "" {
		fmt.Fprintf(w, "PCAN driver version: %s\n\n", version)
	} else {
		fmt.Fprint(w, "PCAN driver not found\n\n")
	}
	fmt.Fprintf(w, "Found %d PCAN devices\n", len(infos))
	for i := range infos {
		Output(w, &infos[i])
		fmt.Fprintln(w)
	}
}
