//go:build linux

package pcanfd

import (
	"time"
	"unsafe"

	"github.com/omzlo/clog"
	"golang.org/x/sys/unix"
)

/* Char device transport: every operation is an ioctl on the opened /dev/pcan* node. */

const ioctlMagic = 'z'

const (
	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, nr, size uintptr) uintptr {
	return dir<<30 | size<<16 | ioctlMagic<<8 | nr
}

// driver side layout of a message
type rawMsg struct {
	Type      uint16
	DataLen   uint16
	ID        uint32
	Flags     uint32
	Timestamp unix.Timeval
	CtrlrData [4]byte
	_         [4]byte // data is 8 bytes aligned
	Data      [64]byte
}

// driver side layout of the device state
type rawState struct {
	VerMajor        uint16
	VerMinor        uint16
	VerSubminor     uint16
	TvInit          unix.Timeval
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

type rawOption struct {
	Size  int32
	Name  int32
	Value unsafe.Pointer
}

var (
	reqSetInit    = ioc(iocWrite, 0x80, unsafe.Sizeof(Init{}))
	reqGetInit    = ioc(iocRead, 0x81, unsafe.Sizeof(Init{}))
	reqGetState   = ioc(iocRead, 0x82, unsafe.Sizeof(rawState{}))
	reqAddFilters = ioc(iocWrite, 0x83, 4)
	reqGetFilters = ioc(iocRead, 0x84, 4)
	reqSendMsg    = ioc(iocWrite, 0x85, unsafe.Sizeof(rawMsg{}))
	reqRecvMsg    = ioc(iocRead, 0x86, unsafe.Sizeof(rawMsg{}))
	reqGetOption  = ioc(iocRead|iocWrite, 0x8b, unsafe.Sizeof(rawOption{}))
	reqSetOption  = ioc(iocWrite, 0x8c, unsafe.Sizeof(rawOption{}))
)

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Chardev opens the driver device nodes.
type Chardev struct{}

// Opens a device node and optionally applies a bus configuration
// path: device node, ex. /dev/pcanusb32
// init: configuration to apply, nil keeps the current one
// flags: OpenNonBlocking and OpenListenOnly
func (Chardev) Open(path string, init *Init, flags OpenFlag) (Device, error) {
	oflags := unix.O_RDWR | unix.O_CLOEXEC
	if flags&OpenNonBlocking != 0 {
		oflags |= unix.O_NONBLOCK
	}

	fd, err := unix.Open(path, oflags, 0)
	if err != nil {
		clog.DebugX("pcanfd: open %s failed: %s", path, err)
		return nil, err
	}

	d := &chardev{fd: fd, path: path}
	if init != nil {
		in := *init
		if flags&OpenListenOnly != 0 {
			in.Flags |= InitListenOnly
		}
		if err := d.SetInit(&in); err != nil {
			unix.Close(fd)
			return nil, err
		}
	}
	clog.DebugX("pcanfd: opened %s (fd=%d)", path, fd)
	return d, nil
}

type chardev struct {
	fd   int
	path string
}

func (d *chardev) Fd() int {
	return d.fd
}

func (d *chardev) Close() error {
	if d.fd < 0 {
		return unix.EBADF
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}

func (d *chardev) SendMsg(msg *Msg) error {
	var raw rawMsg
	raw.Type = msg.Type
	raw.DataLen = msg.DataLen
	raw.ID = msg.ID
	raw.Flags = msg.Flags
	raw.CtrlrData = msg.CtrlrData
	raw.Data = msg.Data
	return ioctl(d.fd, reqSendMsg, unsafe.Pointer(&raw))
}

func (d *chardev) RecvMsg(msg *Msg) error {
	var raw rawMsg
	if err := ioctl(d.fd, reqRecvMsg, unsafe.Pointer(&raw)); err != nil {
		return err
	}
	*msg = Msg{
		Type:      raw.Type,
		DataLen:   raw.DataLen,
		ID:        raw.ID,
		Flags:     raw.Flags,
		Timestamp: time.Unix(int64(raw.Timestamp.Sec), int64(raw.Timestamp.Usec)*1000),
		CtrlrData: raw.CtrlrData,
		Data:      raw.Data,
	}
	return nil
}

func (d *chardev) GetState(st *State) error {
	var raw rawState
	if err := ioctl(d.fd, reqGetState, unsafe.Pointer(&raw)); err != nil {
		return err
	}
	*st = State{
		VerMajor:        raw.VerMajor,
		VerMinor:        raw.VerMinor,
		VerSubminor:     raw.VerSubminor,
		InitTime:        time.Unix(int64(raw.TvInit.Sec), int64(raw.TvInit.Usec)*1000),
		BusState:        raw.BusState,
		DeviceID:        raw.DeviceID,
		OpenCounter:     raw.OpenCounter,
		FiltersCounter:  raw.FiltersCounter,
		HwType:          raw.HwType,
		ChannelNumber:   raw.ChannelNumber,
		CANStatus:       raw.CANStatus,
		BusLoad:         raw.BusLoad,
		TxMaxMsgs:       raw.TxMaxMsgs,
		TxPendingMsgs:   raw.TxPendingMsgs,
		RxMaxMsgs:       raw.RxMaxMsgs,
		RxPendingMsgs:   raw.RxPendingMsgs,
		TxFramesCounter: raw.TxFramesCounter,
		RxFramesCounter: raw.RxFramesCounter,
		TxErrorCounter:  raw.TxErrorCounter,
		RxErrorCounter:  raw.RxErrorCounter,
		HostTimeNs:      raw.HostTimeNs,
		HWTimeNs:        raw.HWTimeNs,
	}
	return nil
}

func (d *chardev) GetInit(init *Init) error {
	return ioctl(d.fd, reqGetInit, unsafe.Pointer(init))
}

func (d *chardev) SetInit(init *Init) error {
	return ioctl(d.fd, reqSetInit, unsafe.Pointer(init))
}

func (d *chardev) AddFilter(f Filter) error {
	buf := []uint32{1, f.IDFrom, f.IDTo, f.MsgFlags}
	return ioctl(d.fd, reqAddFilters, unsafe.Pointer(&buf[0]))
}

// a filter list without entries removes every filter
func (d *chardev) DelFilters() error {
	return ioctl(d.fd, reqAddFilters, nil)
}

func (d *chardev) GetFilters() ([]Filter, error) {
	var st State
	if err := d.GetState(&st); err != nil {
		return nil, err
	}
	n := st.FiltersCounter
	if n == 0 {
		return nil, nil
	}

	buf := make([]uint32, 1+3*n)
	buf[0] = n
	if err := ioctl(d.fd, reqGetFilters, unsafe.Pointer(&buf[0])); err != nil {
		return nil, err
	}
	if buf[0] < n {
		n = buf[0]
	}
	filters := make([]Filter, n)
	for i := range filters {
		filters[i] = Filter{IDFrom: buf[1+3*i], IDTo: buf[2+3*i], MsgFlags: buf[3+3*i]}
	}
	return filters, nil
}

func (d *chardev) GetOption(name Option, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, unix.EINVAL
	}
	opt := rawOption{Size: int32(len(buf)), Name: int32(name), Value: unsafe.Pointer(&buf[0])}
	if err := ioctl(d.fd, reqGetOption, unsafe.Pointer(&opt)); err != nil {
		return 0, err
	}
	return int(opt.Size), nil
}

func (d *chardev) SetOption(name Option, buf []byte) error {
	if len(buf) == 0 {
		return unix.EINVAL
	}
	opt := rawOption{Size: int32(len(buf)), Name: int32(name), Value: unsafe.Pointer(&buf[0])}
	return ioctl(d.fd, reqSetOption, unsafe.Pointer(&opt))
}
