package pcan

import (
	"encoding/binary"
	"syscall"
	"testing"
	"time"

	"github.com/morgadow/gopcanbasic/pcanfd"
)

func TestReadClassic(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")

	if status, _, _ := c.Read(PCAN_USBBUS1); status != PCAN_ERROR_QRCVEMPTY {
		t.Errorf("Read of an empty queue = 0x%x", status)
	}
	if status, _, _ := c.Read(PCAN_USBBUS2); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("Read of an unknown handle = 0x%x", status)
	}

	at := time.Unix(1700000000, 123456000)
	port.Inject(pcanfd.Msg{Type: pcanfd.TypeCAN20, ID: 0x1ABCDE, Flags: pcanfd.MsgExt | pcanfd.MsgEcho,
		DataLen: 3, Data: [64]byte{1, 2, 3}, Timestamp: at})
	status, msg, ts := c.Read(PCAN_USBBUS1)
	if status != PCAN_ERROR_OK {
		t.Fatalf("Read = 0x%x", status)
	}
	if msg.ID != 0x1ABCDE || msg.DLC != 3 || msg.Data != [8]byte{1, 2, 3} {
		t.Errorf("message = %+v", msg)
	}
	if msg.MsgType != PCAN_MESSAGE_EXTENDED|PCAN_MESSAGE_ECHO {
		t.Errorf("type = 0x%02X", msg.MsgType)
	}
	if got, want := ts.Microseconds(), uint64(at.UnixNano()/1000); got != want {
		t.Errorf("timestamp = %d us, want %d", got, want)
	}
	if ts.Micros != 456 {
		t.Errorf("micros = %d, want 456", ts.Micros)
	}
}

func TestReadFD(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")

	m := pcanfd.Msg{Type: pcanfd.TypeCANFD, ID: 0x10, Flags: pcanfd.MsgBRS | pcanfd.MsgESI, DataLen: 20,
		Timestamp: time.Unix(10, 5000)}
	for i := 0; i < 20; i++ {
		m.Data[i] = byte(i)
	}
	port.Inject(m)

	status, msg, ts := c.ReadFD(PCAN_USBBUS1)
	if status != PCAN_ERROR_OK {
		t.Fatalf("ReadFD = 0x%x", status)
	}
	if msg.DLC != 11 || msg.Data[19] != 19 {
		t.Errorf("message = %+v", msg)
	}
	if msg.MsgType != PCAN_MESSAGE_FD|PCAN_MESSAGE_BRS|PCAN_MESSAGE_ESI {
		t.Errorf("type = 0x%02X", msg.MsgType)
	}
	if ts != 10000005 {
		t.Errorf("timestamp = %d, want 10000005", ts)
	}
}

func TestReceiveStatusOff(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")

	off := []byte{byte(PCAN_PARAMETER_OFF)}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_RECEIVE_STATUS, off); status != PCAN_ERROR_OK {
		t.Fatalf("set receive status = 0x%x", status)
	}
	port.Inject(pcanfd.Msg{Type: pcanfd.TypeCAN20, ID: 0x10, DataLen: 1})
	if status, _, _ := c.Read(PCAN_USBBUS1); status != PCAN_ERROR_QRCVEMPTY {
		t.Errorf("Read with reception off = 0x%x, want QRCVEMPTY", status)
	}
}

func TestReadStatusMessage(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")

	port.Inject(pcanfd.Msg{Type: pcanfd.TypeStatus, ID: pcanfd.ErrorPassive, Flags: pcanfd.ErrorBus})
	status, msg, _ := c.Read(PCAN_USBBUS1)
	if status != PCAN_ERROR_OK {
		t.Fatalf("Read = 0x%x", status)
	}
	if msg.MsgType != PCAN_MESSAGE_STATUS || msg.DLC != 4 {
		t.Errorf("message = %+v", msg)
	}
	if got := TPCANStatus(binary.BigEndian.Uint32(msg.Data[:4])); got != PCAN_ERROR_BUSHEAVY {
		t.Errorf("payload = 0x%x, want BUSHEAVY", got)
	}
}

func TestReadErrorFrame(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")

	on := []byte{byte(PCAN_PARAMETER_ON)}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_ALLOW_ERROR_FRAMES, on); status != PCAN_ERROR_OK {
		t.Fatalf("allow error frames = 0x%x", status)
	}
	port.Inject(pcanfd.Msg{Type: pcanfd.TypeError, ID: 3, Flags: pcanfd.ErrMsgRx,
		Data: [64]byte{0x55}, CtrlrData: [4]byte{0x10, 0x20}})
	status, msg, _ := c.Read(PCAN_USBBUS1)
	if status != PCAN_ERROR_OK {
		t.Fatalf("Read = 0x%x", status)
	}
	if msg.MsgType != PCAN_MESSAGE_ERRFRAME || msg.ID != 8 {
		t.Errorf("message = %+v", msg)
	}
	if msg.Data[0] != 1 || msg.Data[1] != 0x55 || msg.Data[2] != 0x10 || msg.Data[3] != 0x20 {
		t.Errorf("data = % X", msg.Data)
	}
}

func TestBusOffAutoReset(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")

	on := []byte{byte(PCAN_PARAMETER_ON)}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_BUSOFF_AUTORESET, on); status != PCAN_ERROR_OK {
		t.Fatalf("set auto reset = 0x%x", status)
	}

	port.Inject(pcanfd.Msg{Type: pcanfd.TypeStatus, ID: pcanfd.ErrorBusOff, Flags: pcanfd.ErrorBus})
	if status, _, _ := c.Read(PCAN_USBBUS1); status != PCAN_ERROR_BUSOFF {
		t.Errorf("Read of bus off = 0x%x, want BUSOFF", status)
	}
	if port.Opens() != 2 {
		t.Errorf("%d opens, want one reset", port.Opens())
	}
	if status, _, _ := c.Read(PCAN_USBBUS1); status != PCAN_ERROR_QRCVEMPTY {
		t.Errorf("Read after reset = 0x%x", status)
	}

	port.SetSendError(syscall.ENETDOWN)
	if status := c.Write(PCAN_USBBUS1, &TPCANMsg{ID: 1}); status != PCAN_ERROR_BUSOFF {
		t.Errorf("Write on bus off = 0x%x, want BUSOFF", status)
	}
	if port.Opens() != 3 {
		t.Errorf("%d opens, want a second reset", port.Opens())
	}
}

func TestBusOffWithoutAutoReset(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")

	port.Inject(pcanfd.Msg{Type: pcanfd.TypeStatus, ID: pcanfd.ErrorBusOff, Flags: pcanfd.ErrorBus})
	status, msg, _ := c.Read(PCAN_USBBUS1)
	if status != PCAN_ERROR_OK || msg.MsgType != PCAN_MESSAGE_STATUS {
		t.Errorf("Read = 0x%x %+v", status, msg)
	}
	if got := TPCANStatus(binary.BigEndian.Uint32(msg.Data[:4])); got != PCAN_ERROR_BUSOFF {
		t.Errorf("payload = 0x%x, want BUSOFF", got)
	}
	if port.Opens() != 1 {
		t.Errorf("%d opens, want no reset", port.Opens())
	}
}

func TestWrite(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	port := bus.Port("/dev/pcanusb32")

	if status := c.Write(PCAN_USBBUS1, &TPCANMsg{ID: 1}); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("Write on an unknown handle = 0x%x", status)
	}
	mustInitialize(t, c, PCAN_USBBUS1)

	if status := c.Write(PCAN_USBBUS1, nil); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("Write(nil) = 0x%x", status)
	}
	if status := c.Write(PCAN_USBBUS1, &TPCANMsg{ID: 1, DLC: 9}); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("Write with DLC 9 = 0x%x, want ILLPARAMVAL", status)
	}

	msg := TPCANMsg{ID: 0x12345, MsgType: PCAN_MESSAGE_EXTENDED | PCAN_MESSAGE_RTR, DLC: 2, Data: [8]byte{9, 8}}
	if status := c.Write(PCAN_USBBUS1, &msg); status != PCAN_ERROR_OK {
		t.Fatalf("Write = 0x%x", status)
	}
	fd := TPCANMsgFD{ID: 0x22, MsgType: PCAN_MESSAGE_FD | PCAN_MESSAGE_BRS, DLC: 13}
	fd.Data[31] = 0xEE
	if status := c.WriteFD(PCAN_USBBUS1, &fd); status != PCAN_ERROR_OK {
		t.Fatalf("WriteFD = 0x%x", status)
	}

	sent := port.Sent()
	if len(sent) != 2 {
		t.Fatalf("%d messages sent", len(sent))
	}
	if sent[0].Type != pcanfd.TypeCAN20 || sent[0].Flags != pcanfd.MsgExt|pcanfd.MsgRTR || sent[0].DataLen != 2 {
		t.Errorf("classic = %+v", sent[0])
	}
	if sent[1].Type != pcanfd.TypeCANFD || sent[1].Flags != pcanfd.MsgBRS || sent[1].DataLen != 32 || sent[1].Data[31] != 0xEE {
		t.Errorf("fd = %+v", sent[1])
	}

	port.SetSendError(syscall.EAGAIN)
	if status := c.Write(PCAN_USBBUS1, &msg); status != PCAN_ERROR_QXMTFULL {
		t.Errorf("Write on full queue = 0x%x, want QXMTFULL", status)
	}
}

func TestFilterMessages(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")

	if status := c.FilterMessages(PCAN_USBBUS2, 0, 1, PCAN_MODE_STANDARD); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("FilterMessages on an unknown handle = 0x%x", status)
	}
	if status := c.FilterMessages(PCAN_USBBUS1, 0x200, 0x300, PCAN_MODE_EXTENDED); status != PCAN_ERROR_OK {
		t.Fatalf("FilterMessages = 0x%x", status)
	}
	filters := port.Filters()
	if len(filters) != 1 || filters[0].IDFrom != 0x200 || filters[0].IDTo != 0x300 || filters[0].MsgFlags != pcanfd.MsgExt {
		t.Errorf("filters = %+v", filters)
	}

	var buf [1]byte
	if status := c.GetValue(PCAN_USBBUS1, PCAN_MESSAGE_FILTER, buf[:]); status != PCAN_ERROR_OK || TPCANParameterValue(buf[0]) != PCAN_FILTER_CUSTOM {
		t.Errorf("filter state = 0x%x %d, want CUSTOM", status, buf[0])
	}

	// an inverted range is passed as given and accepts nothing
	if status := c.SetValue(PCAN_USBBUS1, PCAN_MESSAGE_FILTER, []byte{byte(PCAN_FILTER_OPEN)}); status != PCAN_ERROR_OK {
		t.Fatalf("open filter = 0x%x", status)
	}
	if status := c.FilterMessages(PCAN_USBBUS1, 0x300, 0x200, PCAN_MODE_STANDARD); status != PCAN_ERROR_OK {
		t.Fatalf("FilterMessages = 0x%x", status)
	}
	filters = port.Filters()
	if len(filters) != 1 || filters[0].IDFrom != 0x300 || filters[0].IDTo != 0x200 {
		t.Errorf("filters = %+v", filters)
	}
	if status := c.GetValue(PCAN_USBBUS1, PCAN_MESSAGE_FILTER, buf[:]); status != PCAN_ERROR_OK || TPCANParameterValue(buf[0]) != PCAN_FILTER_CLOSE {
		t.Errorf("filter state = 0x%x %d, want CLOSE", status, buf[0])
	}
}

func TestTimestamps(t *testing.T) {
	at := time.Unix(5000000, 999999000)
	ts := classicTimestamp(at)
	if got, want := ts.Microseconds(), uint64(5000000999999); got != want {
		t.Errorf("classic = %d, want %d", got, want)
	}
	if ts.MillisOverflow != 1 {
		t.Errorf("overflow = %d, want 1", ts.MillisOverflow)
	}
	if got := fdTimestamp(at); got != 5000000999999 {
		t.Errorf("fd = %d", got)
	}
}
