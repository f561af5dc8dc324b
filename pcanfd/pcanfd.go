// Package pcanfd is the transport to the PEAK-System CAN character device driver.
//
// A Device is an opened channel of the driver (one /dev/pcan* node). Errors returned by a
// Device are syscall.Errno values, the same errno the driver reports.
package pcanfd

import (
	"encoding/binary"
	"time"
)

// Message types of a Msg
const (
	TypeNop    uint16 = 0
	TypeCAN20  uint16 = 1
	TypeCANFD  uint16 = 2
	TypeStatus uint16 = 3
	TypeError  uint16 = 4
)

// Message flags of a Msg
const (
	MsgStd         uint32 = 0x00000000
	MsgRTR         uint32 = 0x00000001
	MsgExt         uint32 = 0x00000002
	MsgSelf        uint32 = 0x00000004
	MsgSingleShot  uint32 = 0x00000008
	MsgBRS         uint32 = 0x00000010
	MsgESI         uint32 = 0x00000020
	MsgEcho        uint32 = 0x00000040
	MsgTimestamp   uint32 = 0x00000100
	MsgHWTimestamp uint32 = 0x00000200
	ErrMsgRx       uint32 = 0x00100000 // error frame was received (not generated by the controller on tx)
	ErrorBus       uint32 = 0x00800000 // status message reports a bus state change
)

// Status ids carried in Msg.ID of a TypeStatus message and in State.BusState
const (
	ErrorUnknown    uint32 = 0
	ErrorActive     uint32 = 1
	ErrorWarning    uint32 = 2
	ErrorPassive    uint32 = 3
	ErrorBusOff     uint32 = 4
	RxEmpty         uint32 = 5
	RxOverflow      uint32 = 6
	reserved1       uint32 = 7
	TxOverflow      uint32 = 8
	TxEmpty         uint32 = 9
	BusLoadReported uint32 = 10
)

// Identifier limits
const (
	MaxStdID uint32 = 0x7FF
	MaxExtID uint32 = 0x1FFFFFFF
)

// Init flags
const (
	InitListenOnly uint32 = 0x00000001
	InitTSFixed    uint32 = 0x00000002
)

// Bits of the OptAllowedMsgs option
const (
	AllowedMsgCAN    uint32 = 0x00000001
	AllowedMsgRTR    uint32 = 0x00000002
	AllowedMsgExt    uint32 = 0x00000004
	AllowedMsgStatus uint32 = 0x00000010
	AllowedMsgEcho   uint32 = 0x00000020
	AllowedMsgError  uint32 = 0x00000100
	AllowedMsgAll    uint32 = 0xFFFFFFFF
)

// Option is the name of a device option read with GetOption and written with SetOption.
type Option int32

const (
	OptChannelFeatures Option = iota
	OptDeviceID
	OptAvailableClocks
	OptBitTimingRange
	OptDBitTimingRange
	OptAllowedMsgs
	OptAccFilter11B
	OptAccFilter29B
	OptIFrameDelayUs
	OptHWTimestampMode
	OptDriverVersion
	OptFirmwareVersion
	OptIODigitalCfg
	OptIODigitalVal
	OptIODigitalSet
	OptIODigitalClr
	OptIOAnalogVal
)

// OpenFlag selects how a device node is opened.
type OpenFlag uint32

const (
	OpenNonBlocking OpenFlag = 1 << iota
	OpenListenOnly
)

// BitTiming describes one phase (nominal or data) of the bit timing.
type BitTiming struct {
	BRP         uint32
	TSEG1       uint32
	TSEG2       uint32
	SJW         uint32
	TSAM        uint32
	Bitrate     uint32
	SamplePoint uint32
	TQ          uint32
	BitrateReal uint32
}

// Init is the bus configuration applied to an opened device.
type Init struct {
	Flags   uint32
	ClockHz uint32
	Nominal BitTiming
	Data    BitTiming
}

// Msg is a frame, status or error message exchanged with a device.
type Msg struct {
	Type      uint16
	DataLen   uint16
	ID        uint32
	Flags     uint32
	Timestamp time.Time
	CtrlrData [4]byte
	Data      [64]byte
}

// Filter accepts messages with IDFrom <= id <= IDTo whose flags match MsgFlags.
type Filter struct {
	IDFrom   uint32
	IDTo     uint32
	MsgFlags uint32
}

// State is the runtime state of an opened device.
type State struct {
	VerMajor        uint16
	VerMinor        uint16
	VerSubminor     uint16
	InitTime        time.Time
	BusState        uint32
	DeviceID        uint32
	OpenCounter     uint32
	FiltersCounter  uint32
	HwType          uint16
	ChannelNumber   uint16
	CANStatus       uint16
	BusLoad         uint16
	TxMaxMsgs       uint32
	TxPendingMsgs   uint32
	RxMaxMsgs       uint32
	RxPendingMsgs   uint32
	TxFramesCounter uint32
	RxFramesCounter uint32
	TxErrorCounter  uint32
	RxErrorCounter  uint32
	HostTimeNs      uint64
	HWTimeNs        uint64
}

// Device is an opened channel of the driver.
type Device interface {
	// Fd returns the OS descriptor that becomes readable when a message is pending, or -1.
	Fd() int
	Close() error
	SendMsg(msg *Msg) error
	RecvMsg(msg *Msg) error
	GetState(st *State) error
	GetInit(init *Init) error
	SetInit(init *Init) error
	AddFilter(f Filter) error
	DelFilters() error
	GetFilters() ([]Filter, error)
	// GetOption copies the value of the option into buf and returns its size.
	GetOption(name Option, buf []byte) (int, error)
	SetOption(name Option, buf []byte) error
}

// Opener opens device nodes. A nil init opens the node without touching its configuration.
type Opener interface {
	Open(path string, init *Init, flags OpenFlag) (Device, error)
}

// GetOptionUint32 reads a 32-bit option.
func GetOptionUint32(d Device, name Option) (uint32, error) {
	var buf [4]byte
	if _, err := d.GetOption(name, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// SetOptionUint32 writes a 32-bit option.
func SetOptionUint32(d Device, name Option, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return d.SetOption(name, buf[:])
}

// GetDeviceID returns the user defined device number of the channel.
func GetDeviceID(d Device) (uint32, error) {
	return GetOptionUint32(d, OptDeviceID)
}

// SetDeviceID changes the user defined device number of the channel.
func SetDeviceID(d Device, id uint32) error {
	return SetOptionUint32(d, OptDeviceID, id)
}
