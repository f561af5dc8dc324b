package pcan

import (
	"errors"
	"syscall"
	"testing"

	"github.com/morgadow/gopcanbasic/pcaninfo"
	"github.com/morgadow/gopcanbasic/pcanfd"
)

func newTestCore(t *testing.T, infos ...pcaninfo.Info) (*Core, *pcanfd.VirtualBus) {
	t.Helper()
	bus := pcanfd.NewVirtualBus()
	c := NewCore(
		WithLister(pcaninfo.Static(infos)),
		WithOpener(bus),
		WithCloseGrace(0),
		WithRefreshInterval(0),
		WithTraceDefaults(t.TempDir(), 10),
	)
	t.Cleanup(func() {
		c.Close()
		bus.Close()
	})
	return c, bus
}

func mustInitialize(t *testing.T, c *Core, handle TPCANHandle) {
	t.Helper()
	if status := c.Initialize(handle, PCAN_BAUD_500K, PCAN_DEFAULT_HW_TYPE, 0, 0); status != PCAN_ERROR_OK {
		t.Fatalf("Initialize(0x%X) = 0x%x", handle, status)
	}
}

func TestInitialize(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))

	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")
	if port.Opens() != 1 {
		t.Errorf("%d opens, want 1", port.Opens())
	}
	if got := port.Init().Nominal.Bitrate; got != 500000 {
		t.Errorf("bit rate = %d, want 500000", got)
	}

	if status := c.Initialize(PCAN_USBBUS1, PCAN_BAUD_500K, PCAN_DEFAULT_HW_TYPE, 0, 0); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("second Initialize = 0x%x, want INITIALIZE", status)
	}
	if status := c.Initialize(PCAN_USBBUS2, PCAN_BAUD_500K, PCAN_DEFAULT_HW_TYPE, 0, 0); status != PCAN_ERROR_NODRIVER {
		t.Errorf("Initialize of a missing device = 0x%x, want NODRIVER", status)
	}
	if _, ok := c.channels[PCAN_USBBUS2]; ok {
		t.Error("failed channel left in the registry")
	}
}

func TestInitializeBitrateAdapting(t *testing.T) {
	c, _ := newTestCore(t, usbDevice(0))

	on := []byte{byte(PCAN_PARAMETER_ON)}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_BITRATE_ADAPTING, on); status != PCAN_ERROR_OK {
		t.Fatalf("set bit rate adapting = 0x%x", status)
	}
	mustInitialize(t, c, PCAN_USBBUS1)

	if status := c.Initialize(PCAN_USBBUS1, PCAN_BAUD_1M, PCAN_DEFAULT_HW_TYPE, 0, 0); status != PCAN_ERROR_CAUTION {
		t.Errorf("Initialize with another bit rate = 0x%x, want CAUTION", status)
	}
	if status := c.Initialize(PCAN_USBBUS1, PCAN_BAUD_500K, PCAN_DEFAULT_HW_TYPE, 0, 0); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("Initialize with the same bit rate = 0x%x, want INITIALIZE", status)
	}
}

func TestInitializeDeviceInUse(t *testing.T) {
	dev := usbDevice(0)
	dev.BusState = pcanfd.ErrorActive
	c, _ := newTestCore(t, dev)

	if status := c.Initialize(PCAN_USBBUS1, PCAN_BAUD_1M, PCAN_DEFAULT_HW_TYPE, 0, 0); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("Initialize with another bit rate = 0x%x, want INITIALIZE", status)
	}
	if status := c.Initialize(PCAN_USBBUS1, PCAN_BAUD_500K, PCAN_DEFAULT_HW_TYPE, 0, 0); status != PCAN_ERROR_OK {
		t.Errorf("Initialize with the bus bit rate = 0x%x, want OK", status)
	}
}

func TestInitializeFD(t *testing.T) {
	fd := usbDevice(0)
	fd.AvailFlag |= pcaninfo.FlagDataBitrate
	c, bus := newTestCore(t, fd)

	if status := c.InitializeFD(PCAN_USBBUS1, ""); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("InitializeFD with empty string = 0x%x, want INITIALIZE", status)
	}
	bitrate := TPCANBitrateFD("f_clock_mhz=80, nom_brp=10, nom_tseg1=5, nom_tseg2=2, nom_sjw=1, data_brp=4, data_tseg1=7, data_tseg2=2, data_sjw=1")
	if status := c.InitializeFD(PCAN_USBBUS1, bitrate); status != PCAN_ERROR_OK {
		t.Fatalf("InitializeFD = 0x%x", status)
	}
	init := bus.Port("/dev/pcanusb32").Init()
	if init.Nominal.Bitrate != 1000000 || init.Data.Bitrate != 2000000 {
		t.Errorf("init = %+v", init)
	}

	var buf [4]byte
	if status := c.GetValue(PCAN_USBBUS1, PCAN_CHANNEL_FEATURES, buf[:]); status != PCAN_ERROR_OK {
		t.Fatalf("features = 0x%x", status)
	}
	if TPCANParameterValue(buf[0])&FEATURE_FD_CAPABLE == 0 {
		t.Error("FD channel not reported FD capable")
	}
}

func TestInitializeOpenFailure(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	bus.Port("/dev/pcanusb32").SetOpenError(syscall.EBUSY)

	if status := c.Initialize(PCAN_USBBUS1, PCAN_BAUD_500K, PCAN_DEFAULT_HW_TYPE, 0, 0); status != PCAN_ERROR_ILLOPERATION {
		t.Errorf("Initialize = 0x%x, want ILLOPERATION", status)
	}
	if len(c.channels) != 0 {
		t.Errorf("%d channels registered", len(c.channels))
	}
}

func TestUninitialize(t *testing.T) {
	c, _ := newTestCore(t, usbDevice(0), usbDevice(1))

	if status := c.Uninitialize(PCAN_USBBUS1); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("Uninitialize of an unknown handle = 0x%x, want INITIALIZE", status)
	}

	mustInitialize(t, c, PCAN_USBBUS1)
	mustInitialize(t, c, PCAN_USBBUS2)
	if status := c.Uninitialize(PCAN_USBBUS1); status != PCAN_ERROR_OK {
		t.Errorf("Uninitialize = 0x%x", status)
	}
	if status := c.Uninitialize(PCAN_USBBUS1); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("second Uninitialize = 0x%x, want INITIALIZE", status)
	}

	for i := 0; i < 2; i++ {
		if status := c.Uninitialize(PCAN_NONEBUS); status != PCAN_ERROR_OK {
			t.Errorf("Uninitialize(NONEBUS) #%d = 0x%x", i+1, status)
		}
	}
	if len(c.channels) != 0 {
		t.Errorf("%d channels left", len(c.channels))
	}
	mustInitialize(t, c, PCAN_USBBUS2)
}

func TestCloseGraceWaitsForTx(t *testing.T) {
	bus := pcanfd.NewVirtualBus()
	defer bus.Close()
	c := NewCore(WithLister(pcaninfo.Static{usbDevice(0)}), WithOpener(bus), WithCloseGrace(3*closePollInterval))
	defer c.Close()

	mustInitialize(t, c, PCAN_USBBUS1)
	bus.Port("/dev/pcanusb32").SetTxPending(1)
	if status := c.Uninitialize(PCAN_USBBUS1); status != PCAN_ERROR_OK {
		t.Errorf("Uninitialize with pending messages = 0x%x", status)
	}
	if c.getChannel(PCAN_USBBUS1, false) != nil {
		t.Error("channel still registered")
	}
}

func TestGetStatus(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))

	if status := c.GetStatus(PCAN_USBBUS1); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("GetStatus of an unknown handle = 0x%x", status)
	}
	mustInitialize(t, c, PCAN_USBBUS1)
	if status := c.GetStatus(PCAN_USBBUS1); status != PCAN_ERROR_OK {
		t.Errorf("GetStatus = 0x%x", status)
	}
	bus.Port("/dev/pcanusb32").SetBusState(pcanfd.ErrorPassive)
	if status := c.GetStatus(PCAN_USBBUS1); status != PCAN_ERROR_BUSHEAVY {
		t.Errorf("GetStatus = 0x%x, want BUSHEAVY", status)
	}
}

func TestReset(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	port := bus.Port("/dev/pcanusb32")

	if status := c.Reset(PCAN_USBBUS1); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("Reset of an unknown handle = 0x%x", status)
	}
	mustInitialize(t, c, PCAN_USBBUS1)
	port.Inject(pcanfd.Msg{Type: pcanfd.TypeCAN20, ID: 0x10, DataLen: 1})

	if status := c.Reset(PCAN_USBBUS1); status != PCAN_ERROR_OK {
		t.Fatalf("Reset = 0x%x", status)
	}
	if port.Opens() != 2 {
		t.Errorf("%d opens, want 2", port.Opens())
	}
	if got := port.Init().Nominal.Bitrate; got != 500000 {
		t.Errorf("bit rate after reset = %d", got)
	}

	port.SetOpenError(syscall.ENODEV)
	if status := c.Reset(PCAN_USBBUS1); status != PCAN_ERROR_ILLOPERATION {
		t.Errorf("Reset with failing open = 0x%x, want ILLOPERATION", status)
	}
	if status := c.GetStatus(PCAN_USBBUS1); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("GetStatus after failed reset = 0x%x, want INITIALIZE", status)
	}
}

func TestListenOnly(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	port := bus.Port("/dev/pcanusb32")

	on := []byte{byte(PCAN_PARAMETER_ON)}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_LISTEN_ONLY, on); status != PCAN_ERROR_OK {
		t.Fatalf("set listen only = 0x%x", status)
	}
	mustInitialize(t, c, PCAN_USBBUS1)
	if port.Init().Flags&pcanfd.InitListenOnly == 0 {
		t.Error("listen only not applied")
	}

	off := []byte{byte(PCAN_PARAMETER_OFF)}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_LISTEN_ONLY, off); status != PCAN_ERROR_OK {
		t.Fatalf("clear listen only = 0x%x", status)
	}
	if port.Init().Flags&pcanfd.InitListenOnly != 0 {
		t.Error("listen only still set after reset")
	}
	if port.Opens() != 2 {
		t.Errorf("%d opens, want 2", port.Opens())
	}
}

func TestLookUpChannel(t *testing.T) {
	c, _ := newTestCore(t, usbDevice(0), usbDevice(1), usbDevice(2))

	status, handle := c.LookUpChannel("devicetype=PCAN_USB, deviceid=2")
	if status != PCAN_ERROR_OK || handle != PCAN_USBBUS3 {
		t.Errorf("LookUpChannel = 0x%x 0x%X, want PCAN_USBBUS3", status, handle)
	}
	status, handle = c.LookUpChannel("controllernumber=1")
	if status != PCAN_ERROR_OK || handle != PCAN_USBBUS2 {
		t.Errorf("LookUpChannel = 0x%x 0x%X, want PCAN_USBBUS2", status, handle)
	}
	status, handle = c.LookUpChannel("devicetype=PCAN_PCI")
	if status != PCAN_ERROR_OK || handle != PCAN_NONEBUS {
		t.Errorf("LookUpChannel = 0x%x 0x%X, want NONEBUS", status, handle)
	}
	if status, _ := c.LookUpChannel("ipaddress=10.0.0.1"); status != PCAN_ERROR_NODRIVER {
		t.Errorf("LookUpChannel(ipaddress) = 0x%x, want NODRIVER", status)
	}
}

func TestBusWrapper(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))

	_, _, err := c.NewBus(PCAN_USBBUS2, PCAN_BAUD_500K, PCAN_DEFAULT_HW_TYPE, 0, 0)
	if !errors.Is(err, &StatusError{Status: PCAN_ERROR_NODRIVER}) {
		t.Errorf("NewBus of a missing device: %v", err)
	}

	status, b, err := c.NewBus(PCAN_USBBUS1, PCAN_BAUD_500K, PCAN_DEFAULT_HW_TYPE, 0, 0)
	if status != PCAN_ERROR_OK || err != nil {
		t.Fatalf("NewBus = 0x%x %v", status, err)
	}
	port := bus.Port("/dev/pcanusb32")

	status, msg, ts, err := b.Read()
	if status != PCAN_ERROR_QRCVEMPTY || msg != nil || ts != nil || err != nil {
		t.Errorf("Read of an empty queue = 0x%x %v %v %v", status, msg, ts, err)
	}

	if _, err := b.SetFilter(0x100, 0x1FF, PCAN_MODE_STANDARD); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	port.Inject(pcanfd.Msg{Type: pcanfd.TypeCAN20, ID: 0x080, DataLen: 1})
	port.Inject(pcanfd.Msg{Type: pcanfd.TypeCAN20, ID: 0x123, DataLen: 2, Data: [64]byte{0xAA, 0xBB}})

	status, msg, _, err = b.ReadWithTimeout(100)
	if status != PCAN_ERROR_OK || err != nil {
		t.Fatalf("ReadWithTimeout = 0x%x %v", status, err)
	}
	if msg.ID != 0x123 || msg.DLC != 2 || msg.Data[1] != 0xBB {
		t.Errorf("message = %+v", msg)
	}
	if status, msg, _, _ := b.ReadWithTimeout(5); status != PCAN_ERROR_QRCVEMPTY || msg != nil {
		t.Errorf("ReadWithTimeout on empty queue = 0x%x %v", status, msg)
	}

	if _, err := b.ResetFilter(); err != nil {
		t.Fatalf("ResetFilter: %v", err)
	}
	for i := 0; i < 3; i++ {
		port.Inject(pcanfd.Msg{Type: pcanfd.TypeCAN20, ID: uint32(i), DataLen: 0})
	}
	msgs, timestamps, err := b.ReadFullBuffer(2)
	if err != nil || len(msgs) != 2 || len(timestamps) != 2 {
		t.Errorf("ReadFullBuffer(2) = %d %d %v", len(msgs), len(timestamps), err)
	}
	msgs, _, _ = b.ReadFullBuffer(0)
	if len(msgs) != 1 {
		t.Errorf("ReadFullBuffer(0) = %d messages, want 1", len(msgs))
	}

	if _, err := b.Write(&TPCANMsg{ID: 0x42, DLC: 1, Data: [8]byte{7}}); err != nil {
		t.Errorf("Write: %v", err)
	}
	if sent := port.Sent(); len(sent) != 1 || sent[0].ID != 0x42 {
		t.Errorf("sent = %+v", sent)
	}

	status, cond, err := b.GetChannelCondition()
	if status != PCAN_ERROR_OK || err != nil || cond != CHANNEL_OCCUPIED {
		t.Errorf("GetChannelCondition = 0x%x %d %v", status, cond, err)
	}
	if _, err := b.Uninitialize(); err != nil {
		t.Errorf("Uninitialize: %v", err)
	}
	if _, err := b.GetStatus(); !errors.Is(err, &StatusError{Status: PCAN_ERROR_INITIALIZE}) {
		t.Errorf("GetStatus after Uninitialize: %v", err)
	}
}

func TestBusTrace(t *testing.T) {
	c, _ := newTestCore(t, usbDevice(0))
	_, b, err := c.NewBus(PCAN_USBBUS1, PCAN_BAUD_500K, PCAN_DEFAULT_HW_TYPE, 0, 0)
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}

	if status, _ := b.StartTrace("", MAX_TRACE_FILE_SIZE_ACCEPTED+1); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("StartTrace with a too large size = 0x%x", status)
	}
	dir := t.TempDir()
	if _, err := b.StartTrace(dir, 2); err != nil {
		t.Fatalf("StartTrace: %v", err)
	}
	status, val, _ := b.GetParameter(PCAN_TRACE_STATUS)
	if status != PCAN_ERROR_OK || val != PCAN_PARAMETER_ON {
		t.Errorf("trace status = 0x%x %d", status, val)
	}
	if status, _ := b.SetParameter(PCAN_TRACE_SIZE, 5); status != PCAN_ERROR_ILLOPERATION {
		t.Errorf("changing the size while tracing = 0x%x, want ILLOPERATION", status)
	}
	if _, err := b.Write(&TPCANMsg{ID: 0x42, DLC: 1}); err != nil {
		t.Errorf("Write: %v", err)
	}
	if _, err := b.StopTrace(); err != nil {
		t.Errorf("StopTrace: %v", err)
	}
	if _, val, _ := b.GetParameter(PCAN_TRACE_STATUS); val != PCAN_PARAMETER_OFF {
		t.Error("trace still running")
	}
}
