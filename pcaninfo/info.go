// Package pcaninfo discovers PCAN devices exposed by the driver in sysfs and reports what
// is known about them.
package pcaninfo

import "time"

// Category is the hardware family of a device. Values match the PCAN-Basic device kinds.
type Category uint8

const (
	CategoryNone    Category = 0
	CategoryPeakCAN Category = 1
	CategoryISA     Category = 2
	CategoryDNG     Category = 3
	CategoryPCI     Category = 4
	CategoryUSB     Category = 5
	CategoryPCC     Category = 6
	CategoryVirtual Category = 7
	CategoryLAN     Category = 8
)

var categoryNames = map[Category]string{
	CategoryNone:    "NONE",
	CategoryPeakCAN: "PEAKCAN",
	CategoryISA:     "ISA",
	CategoryDNG:     "DNG",
	CategoryPCI:     "PCI",
	CategoryUSB:     "USB",
	CategoryPCC:     "PCC",
	CategoryVirtual: "VIRTUAL",
	CategoryLAN:     "LAN",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// Driver hardware types found in the hwtype attribute
const (
	HwISA          uint32 = 1
	HwDongleSJA    uint32 = 5
	HwDongleSJAEPP uint32 = 6
	HwDonglePro    uint32 = 7
	HwDongleProEPP uint32 = 8
	HwISASJA       uint32 = 9
	HwPCI          uint32 = 10
	HwUSB          uint32 = 11
	HwPCCard       uint32 = 12
	HwUSBPro       uint32 = 13
	HwUSBProFD     uint32 = 17
	HwUSBFD        uint32 = 18
	HwPCIFD        uint32 = 19
	HwUSBX6        uint32 = 20
)

// CategoryOf returns the hardware family of a driver hardware type.
func CategoryOf(hwtype uint32) Category {
	switch hwtype {
	case HwISA, HwISASJA:
		return CategoryISA
	case HwDongleSJA, HwDongleSJAEPP, HwDonglePro, HwDongleProEPP:
		return CategoryDNG
	case HwPCI, HwPCIFD:
		return CategoryPCI
	case HwUSB, HwUSBPro, HwUSBProFD, HwUSBFD, HwUSBX6:
		return CategoryUSB
	case HwPCCard:
		return CategoryPCC
	}
	return CategoryNone
}

// Bits of Info.AvailFlag
const (
	FlagAdapterName uint32 = 1 << iota
	FlagAdapterNb
	FlagAdapterVersion
	FlagNomBitrate
	FlagBTR0BTR1
	FlagClock
	FlagCtrlNb
	FlagDataBitrate
	FlagDev
	FlagDevID
	FlagErrors
	FlagHwType
	FlagIRQs
	FlagMinor
	FlagRead
	FlagSN
	FlagStatus
	FlagType
	FlagWrite
	FlagBase
	FlagIRQ
	FlagBusLoad
	FlagBusState
	FlagRxErr
	FlagTxErr
	FlagRxFifoRatio
	FlagTxFifoRatio
	FlagInitialized
)

// Bits of Info.AvailFlagEx
const (
	FlagExClkDrift uint32 = 1 << iota
	FlagExDevName
	FlagExInitFlags
	FlagExMassStorageMode
	FlagExNomBRP
	FlagExNomSamplePoint
	FlagExNomSJW
	FlagExNomTSEG1
	FlagExNomTSEG2
	FlagExNomTQ
	FlagExDataBRP
	FlagExDataSamplePoint
	FlagExDataSJW
	FlagExDataTSEG1
	FlagExDataTSEG2
	FlagExDataTQ
	FlagExTSFixed
)

// Info is everything the driver publishes about one device (one CAN channel).
// A field is only meaningful when its bit is set in AvailFlag or AvailFlagEx.
type Info struct {
	Name      string // sysfs entry, ex. pcanusb32
	ClassPath string // sysfs class directory holding Name
	Path      string // device node to open
	Category  Category
	Updated   time.Time

	AvailFlag   uint32
	AvailFlagEx uint32

	AdapterName     string
	AdapterNumber   uint32
	AdapterVersion  string
	Base            uint32
	IRQ             uint32
	BTR0BTR1        uint32
	BusLoad         uint32
	BusState        uint32
	Clock           uint32
	ClkDrift        uint32
	CtrlrNumber     uint32
	Dev             string
	DevName         string
	DevID           uint32
	Errors          uint32
	HwType          uint32
	InitFlags       uint32
	IRQs            uint32
	MassStorageMode uint32
	Minor           uint32
	Read            uint32
	RxErrorCounter  uint32
	SerialNumber    uint32
	Status          uint32
	TxErrorCounter  uint32
	Type            string
	Write           uint32
	RxFifoRatio     uint32
	TxFifoRatio     uint32
	TSFixed         uint32

	NomBitrate     uint32
	NomBRP         uint32
	NomSamplePoint uint32
	NomSJW         uint32
	NomTSEG1       uint32
	NomTSEG2       uint32
	NomTQ          uint32

	DataBitrate     uint32
	DataBRP         uint32
	DataSamplePoint uint32
	DataSJW         uint32
	DataTSEG1       uint32
	DataTSEG2       uint32
	DataTQ          uint32
}

// Has reports whether every bit of flag is set in AvailFlag.
func (i *Info) Has(flag uint32) bool {
	return i.AvailFlag&flag == flag
}

// HasEx reports whether every bit of flag is set in AvailFlagEx.
func (i *Info) HasEx(flag uint32) bool {
	return i.AvailFlagEx&flag == flag
}

// Lister enumerates the devices of the system.
type Lister interface {
	List() ([]Info, error)
}

// Static is a fixed device list.
type Static []Info

func (s Static) List() ([]Info, error) {
	return append([]Info(nil), s...), nil
}
