package pcan

import (
	"strconv"
	"strings"
	"syscall"

	"github.com/morgadow/gopcanbasic/pcanfd"
	"github.com/omzlo/clog"
)

// Keys of a TPCANBitrateFD string
const (
	FD_PARAM_CLOCK_HZ   = "f_clock"
	FD_PARAM_CLOCK_MHZ  = "f_clock_mhz"
	FD_PARAM_NOM_BRP    = "nom_brp"
	FD_PARAM_NOM_TSEG1  = "nom_tseg1"
	FD_PARAM_NOM_TSEG2  = "nom_tseg2"
	FD_PARAM_NOM_SJW    = "nom_sjw"
	FD_PARAM_DATA_BRP   = "data_brp"
	FD_PARAM_DATA_TSEG1 = "data_tseg1"
	FD_PARAM_DATA_TSEG2 = "data_tseg2"
	FD_PARAM_DATA_SJW   = "data_sjw"
)

// clock of the SJA1000 based hardware the BTR0BTR1 codes are computed for
const btr0btr1ClockHz = 8000000

// parseFDInit reads a bit rate string like
// "f_clock_mhz=20, nom_brp=5, nom_tseg1=2, nom_tseg2=1, nom_sjw=1, data_brp=2, data_tseg1=3, data_tseg2=1, data_sjw=1".
// Unknown keys and malformed pairs are skipped.
func parseFDInit(s string) (pcanfd.Init, error) {
	var init pcanfd.Init
	if strings.TrimSpace(s) == "" {
		return init, syscall.EINVAL
	}
	clog.DebugX("pcan: parsing FD string '%s'", s)

	for _, pair := range strings.Split(s, ",") {
		key, val, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		n, err := strconv.ParseUint(val, 0, 32)
		if err != nil {
			clog.DebugX("pcan: ignoring value of '%s': %s", key, err)
			continue
		}
		v := uint32(n)

		switch key {
		case FD_PARAM_CLOCK_HZ:
			init.ClockHz = v
		case FD_PARAM_CLOCK_MHZ:
			init.ClockHz = v * 1000000
		case FD_PARAM_NOM_BRP:
			init.Nominal.BRP = v
		case FD_PARAM_NOM_TSEG1:
			init.Nominal.TSEG1 = v
		case FD_PARAM_NOM_TSEG2:
			init.Nominal.TSEG2 = v
		case FD_PARAM_NOM_SJW:
			init.Nominal.SJW = v
		case FD_PARAM_DATA_BRP:
			init.Data.BRP = v
		case FD_PARAM_DATA_TSEG1:
			init.Data.TSEG1 = v
		case FD_PARAM_DATA_TSEG2:
			init.Data.TSEG2 = v
		case FD_PARAM_DATA_SJW:
			init.Data.SJW = v
		}
	}
	deriveBitrate(&init.Nominal, init.ClockHz)
	deriveBitrate(&init.Data, init.ClockHz)
	return init, nil
}

// deriveBitrate computes the bit rate, time quantum (ns) and sample point (per 10000) of a
// phase when its timing is complete.
func deriveBitrate(bt *pcanfd.BitTiming, clockHz uint32) {
	bits := uint64(1 + bt.TSEG1 + bt.TSEG2)
	if clockHz == 0 || bt.BRP == 0 {
		return
	}
	bt.Bitrate = uint32(uint64(clockHz) / (uint64(bt.BRP) * bits))
	bt.BitrateReal = bt.Bitrate
	bt.TQ = uint32(uint64(bt.BRP) * 1000000000 / uint64(clockHz))
	bt.SamplePoint = uint32(uint64(1+bt.TSEG1) * 10000 / bits)
}

// btr0btr1ToInit converts a BTR0BTR1 code of a SJA1000 controller into a nominal bit timing.
func btr0btr1ToInit(code TPCANBaudrate) pcanfd.Init {
	btr0 := uint32(code >> 8)
	btr1 := uint32(code & 0xFF)

	init := pcanfd.Init{ClockHz: btr0btr1ClockHz}
	init.Nominal.BRP = (btr0 & 0x3F) + 1
	init.Nominal.SJW = ((btr0 >> 6) & 0x03) + 1
	init.Nominal.TSEG1 = (btr1 & 0x0F) + 1
	init.Nominal.TSEG2 = ((btr1 >> 4) & 0x07) + 1
	init.Nominal.TSAM = (btr1 >> 7) & 0x01
	deriveBitrate(&init.Nominal, init.ClockHz)
	return init
}

var baudrateNames = map[string]TPCANBaudrate{
	"1m":   PCAN_BAUD_1M,
	"800k": PCAN_BAUD_800K,
	"500k": PCAN_BAUD_500K,
	"250k": PCAN_BAUD_250K,
	"125k": PCAN_BAUD_125K,
	"100k": PCAN_BAUD_100K,
	"95k":  PCAN_BAUD_95K,
	"83k":  PCAN_BAUD_83K,
	"50k":  PCAN_BAUD_50K,
	"47k":  PCAN_BAUD_47K,
	"33k":  PCAN_BAUD_33K,
	"20k":  PCAN_BAUD_20K,
	"10k":  PCAN_BAUD_10K,
	"5k":   PCAN_BAUD_5K,
}

// ParseBaudrate reads a bit rate like "500k", "1M" or a raw BTR0BTR1 code like "0x001C".
func ParseBaudrate(s string) (TPCANBaudrate, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if b, ok := baudrateNames[s]; ok {
		return b, true
	}
	if strings.HasPrefix(s, "0x") {
		v, err := strconv.ParseUint(s[2:], 16, 16)
		if err == nil {
			return TPCANBaudrate(v), true
		}
	}
	return 0, false
}
