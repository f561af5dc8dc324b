package pcan

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/morgadow/gopcanbasic/pcaninfo"
	"github.com/morgadow/gopcanbasic/pcanfd"
	"github.com/morgadow/gopcanbasic/pcblog"
)

func TestGetValueBuffer(t *testing.T) {
	c, _ := newTestCore(t)

	short := []byte{0xAA, 0xBB}
	if status := c.GetValue(PCAN_NONEBUS, PCAN_API_VERSION, short); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("GetValue with a short buffer = 0x%x, want ILLPARAMVAL", status)
	}
	if !bytes.Equal(short, []byte{0xAA, 0xBB}) {
		t.Errorf("short buffer modified: % X", short)
	}

	buf := bytes.Repeat([]byte{0xFF}, 32)
	if status := c.GetValue(PCAN_NONEBUS, PCAN_API_VERSION, buf); status != PCAN_ERROR_OK {
		t.Fatalf("GetValue = 0x%x", status)
	}
	if got := cString(buf); got != "4.6.2.0" {
		t.Errorf("API version = %q", got)
	}
	if buf[len(buf)-1] != 0 {
		t.Error("buffer not zero filled")
	}

	if status := c.GetValue(PCAN_NONEBUS, 0xEE, buf); status != PCAN_ERROR_ILLPARAMTYPE {
		t.Errorf("unknown parameter = 0x%x, want ILLPARAMTYPE", status)
	}
	if status := c.SetValue(PCAN_NONEBUS, PCAN_API_VERSION, buf); status != PCAN_ERROR_ILLPARAMTYPE {
		t.Errorf("set of a read only parameter = 0x%x, want ILLPARAMTYPE", status)
	}
	if status := c.GetValue(PCAN_NONEBUS, PCAN_LOG_TEXT, buf); status != PCAN_ERROR_ILLPARAMTYPE {
		t.Errorf("get of a write only parameter = 0x%x, want ILLPARAMTYPE", status)
	}
	if status := c.SetValue(PCAN_NONEBUS, PCAN_LOG_STATUS, nil); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("set with an empty buffer = 0x%x, want ILLPARAMVAL", status)
	}
	if status := c.GetValue(PCAN_USBBUS1, PCAN_DEVICE_NUMBER, buf); status != PCAN_ERROR_INITIALIZE {
		t.Errorf("channel parameter without channel = 0x%x, want INITIALIZE", status)
	}
}

func TestSwitchParameters(t *testing.T) {
	c, _ := newTestCore(t)

	var buf [1]byte
	if status := c.GetValue(PCAN_USBBUS1, PCAN_RECEIVE_STATUS, buf[:]); status != PCAN_ERROR_OK || buf[0] != byte(PCAN_PARAMETER_ON) {
		t.Errorf("default receive status = 0x%x %d", status, buf[0])
	}
	if len(c.channels) != 0 {
		t.Error("reading a default created a channel")
	}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_LISTEN_ONLY, []byte{7}); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("listen only 7 = 0x%x, want ILLPARAMVAL", status)
	}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_LISTEN_ONLY, []byte{1}); status != PCAN_ERROR_OK {
		t.Fatalf("listen only = 0x%x", status)
	}
	if status := c.GetValue(PCAN_USBBUS1, PCAN_LISTEN_ONLY, buf[:]); status != PCAN_ERROR_OK || buf[0] != 1 {
		t.Errorf("listen only = 0x%x %d", status, buf[0])
	}
	if c.getChannel(PCAN_USBBUS1, false) == nil || c.getChannel(PCAN_USBBUS1, true) != nil {
		t.Error("pre-initialized channel not registered")
	}
}

func TestLogParameters(t *testing.T) {
	c, _ := newTestCore(t)
	dir := t.TempDir()

	if status := c.SetValue(PCAN_USBBUS1, PCAN_LOG_LOCATION, []byte(dir)); status != PCAN_ERROR_ILLCLIENT {
		t.Errorf("log location on a channel = 0x%x, want ILLCLIENT", status)
	}
	if status := c.SetValue(PCAN_NONEBUS, PCAN_LOG_LOCATION, append([]byte(dir), 0, 'x')); status != PCAN_ERROR_OK {
		t.Fatalf("log location = 0x%x", status)
	}
	if c.Logger().Location() != dir {
		t.Errorf("location = %q, want %q", c.Logger().Location(), dir)
	}

	on := make([]byte, 4)
	binary.LittleEndian.PutUint32(on, uint32(PCAN_PARAMETER_ON))
	if status := c.SetValue(PCAN_NONEBUS, PCAN_LOG_STATUS, on); status != PCAN_ERROR_OK {
		t.Fatalf("log status = 0x%x", status)
	}
	if status := c.SetValue(PCAN_NONEBUS, PCAN_LOG_STATUS, []byte{2}); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("log status 2 = 0x%x, want ILLPARAMVAL", status)
	}
	cfg := make([]byte, 4)
	binary.LittleEndian.PutUint32(cfg, pcblog.FunctionEntry|pcblog.FunctionLeave)
	if status := c.SetValue(PCAN_NONEBUS, PCAN_LOG_CONFIGURE, cfg); status != PCAN_ERROR_OK {
		t.Fatalf("log configure = 0x%x", status)
	}
	if status := c.SetValue(PCAN_NONEBUS, PCAN_LOG_TEXT, []byte("hello log\x00")); status != PCAN_ERROR_OK {
		t.Fatalf("log text = 0x%x", status)
	}
	c.Uninitialize(PCAN_USBBUS1)
	c.Logger().Close()

	data, err := os.ReadFile(filepath.Join(dir, pcblog.FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(data)
	for _, want := range []string{"hello log", "ENTRY      'CAN_Uninitialize'", "EXIT       'CAN_Uninitialize' -   RESULT: 0x4000000"} {
		if !strings.Contains(log, want) {
			t.Errorf("log does not contain %q:\n%s", want, log)
		}
	}
	if strings.Contains(log, "PARAMETERS of CAN_Uninitialize") {
		t.Error("parameters logged while not configured")
	}
}

func TestChannelParameters(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")
	port.SetChannelNumber(1)

	get32 := func(param TPCANParameter) uint32 {
		t.Helper()
		var buf [4]byte
		if status := c.GetValue(PCAN_USBBUS1, param, buf[:]); status != PCAN_ERROR_OK {
			t.Fatalf("GetValue(0x%02X) = 0x%x", param, status)
		}
		return binary.LittleEndian.Uint32(buf[:])
	}
	getString := func(param TPCANParameter) string {
		t.Helper()
		buf := make([]byte, MAX_LENGHT_STRING_BUFFER)
		if status := c.GetValue(PCAN_USBBUS1, param, buf); status != PCAN_ERROR_OK {
			t.Fatalf("GetValue(0x%02X) = 0x%x", param, status)
		}
		return cString(buf)
	}

	id := make([]byte, 4)
	binary.LittleEndian.PutUint32(id, 42)
	if status := c.SetValue(PCAN_USBBUS1, PCAN_DEVICE_NUMBER, id); status != PCAN_ERROR_OK {
		t.Fatalf("set device number = 0x%x", status)
	}
	if got := get32(PCAN_DEVICE_NUMBER); got != 42 {
		t.Errorf("device number = %d", got)
	}
	if got := get32(PCAN_CONTROLLER_NUMBER); got != 1 {
		t.Errorf("controller number = %d", got)
	}
	if got := get32(PCAN_BITRATE_INFO); got != uint32(PCAN_BAUD_500K) {
		t.Errorf("bit rate info = 0x%04X", got)
	}
	if got := get32(PCAN_BUSSPEED_NOMINAL); got != 500000 {
		t.Errorf("nominal bus speed = %d", got)
	}
	if got := get32(PCAN_CHANNEL_CONDITION); TPCANCHannelCondition(got) != CHANNEL_OCCUPIED {
		t.Errorf("condition = %d", got)
	}
	if got := get32(PCAN_RECEIVE_EVENT); int32(got) < 0 {
		t.Errorf("receive event = %d", int32(got))
	}
	if got := get32(PCAN_CHANNEL_FEATURES); TPCANParameterValue(got)&FEATURE_DELAY_CAPABLE == 0 {
		t.Errorf("features = 0x%x", got)
	}
	if got := getString(PCAN_CHANNEL_VERSION); got != "8.15.2" {
		t.Errorf("channel version = %q", got)
	}
	if got := getString(PCAN_HARDWARE_NAME); got != "PCAN-USB" {
		t.Errorf("hardware name = %q", got)
	}
	if got := getString(PCAN_FIRMWARE_VERSION); got != "8.15.2" {
		t.Errorf("firmware version = %q", got)
	}

	if status := c.SetValue(PCAN_USBBUS1, PCAN_RECEIVE_EVENT, id); status != PCAN_ERROR_ILLOPERATION {
		t.Errorf("set receive event = 0x%x, want ILLOPERATION", status)
	}
	var buf [4]byte
	if status := c.GetValue(PCAN_USBBUS1, PCAN_IP_ADDRESS, buf[:]); status != PCAN_ERROR_NODRIVER {
		t.Errorf("ip address = 0x%x, want NODRIVER", status)
	}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_CHANNEL_IDENTIFYING, []byte{1}); status != PCAN_ERROR_UNKNOWN {
		t.Errorf("identifying = 0x%x, want UNKNOWN", status)
	}

	if status := c.SetValue(PCAN_USBBUS1, PCAN_BUSOFF_AUTORESET, []byte{byte(PCAN_PARAMETER_ON)}); status != PCAN_ERROR_OK {
		t.Errorf("set bus off auto reset = 0x%x", status)
	}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_BUSOFF_AUTORESET, []byte{7}); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("set bus off auto reset to 7 = 0x%x, want ILLPARAMVAL", status)
	}
	if got := get32(PCAN_BUSOFF_AUTORESET) & 0xFF; TPCANParameterValue(got) != PCAN_PARAMETER_ON {
		t.Errorf("bus off auto reset = %d, want ON", got)
	}

	port.DropOption(pcanfd.OptIFrameDelayUs)
	if status := c.GetValue(PCAN_USBBUS1, PCAN_INTERFRAME_DELAY, buf[:]); status != PCAN_ERROR_ILLOPERATION {
		t.Errorf("unsupported option = 0x%x, want ILLOPERATION", status)
	}
	if got := get32(PCAN_CHANNEL_FEATURES); TPCANParameterValue(got)&FEATURE_DELAY_CAPABLE != 0 {
		t.Error("delay capability without the option")
	}
}

func TestMessageFilterParameter(t *testing.T) {
	c, bus := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	port := bus.Port("/dev/pcanusb32")

	var state [1]byte
	get := func() TPCANParameterValue {
		t.Helper()
		if status := c.GetValue(PCAN_USBBUS1, PCAN_MESSAGE_FILTER, state[:]); status != PCAN_ERROR_OK {
			t.Fatalf("GetValue = 0x%x", status)
		}
		return TPCANParameterValue(state[0])
	}

	if got := get(); got != PCAN_FILTER_OPEN {
		t.Errorf("initial state = %d, want OPEN", got)
	}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_MESSAGE_FILTER, []byte{byte(PCAN_FILTER_CLOSE)}); status != PCAN_ERROR_OK {
		t.Fatalf("close = 0x%x", status)
	}
	if got := get(); got != PCAN_FILTER_CLOSE {
		t.Errorf("state = %d, want CLOSE", got)
	}
	port.Inject(pcanfd.Msg{Type: pcanfd.TypeCAN20, ID: 0x10})
	if status, _, _ := c.Read(PCAN_USBBUS1); status != PCAN_ERROR_QRCVEMPTY {
		t.Errorf("Read through closed filter = 0x%x", status)
	}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_MESSAGE_FILTER, []byte{byte(PCAN_FILTER_CUSTOM)}); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("custom = 0x%x, want ILLPARAMVAL", status)
	}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_MESSAGE_FILTER, []byte{byte(PCAN_FILTER_OPEN)}); status != PCAN_ERROR_OK {
		t.Fatalf("open = 0x%x", status)
	}
	if len(port.Filters()) != 0 {
		t.Errorf("filters = %+v", port.Filters())
	}
}

func TestAttachedChannels(t *testing.T) {
	fd := usbDevice(1)
	fd.AvailFlag |= pcaninfo.FlagDataBitrate
	fd.Type = "PCAN-USB FD"
	c, _ := newTestCore(t, usbDevice(0), fd)
	mustInitialize(t, c, PCAN_USBBUS1)

	var count [4]byte
	if status := c.GetValue(PCAN_NONEBUS, PCAN_ATTACHED_CHANNELS_COUNT, count[:]); status != PCAN_ERROR_OK {
		t.Fatalf("count = 0x%x", status)
	}
	n := binary.LittleEndian.Uint32(count[:])
	if n != 2 {
		t.Fatalf("%d attached channels, want 2", n)
	}

	buf := make([]byte, int(n)*channelInformationSize)
	if status := c.GetValue(PCAN_NONEBUS, PCAN_ATTACHED_CHANNELS, buf[:channelInformationSize]); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("short buffer = 0x%x, want ILLPARAMVAL", status)
	}
	if status := c.GetValue(PCAN_NONEBUS, PCAN_ATTACHED_CHANNELS, buf); status != PCAN_ERROR_OK {
		t.Fatalf("channels = 0x%x", status)
	}

	var first, second TPCANChannelInformation
	first.unmarshal(buf)
	second.unmarshal(buf[channelInformationSize:])
	if first.Channel != PCAN_USBBUS1 || first.ChannelCondition != CHANNEL_OCCUPIED || first.Name() != "PCAN-USB" {
		t.Errorf("first = %+v", first)
	}
	if second.Channel != PCAN_USBBUS2 || second.ChannelCondition != CHANNEL_AVAILABLE || second.DeviceID != 1 {
		t.Errorf("second = %+v", second)
	}
	if second.DeviceType != TPCANDevice(pcaninfo.CategoryUSB) || second.DeviceFeatures&uint32(FEATURE_FD_CAPABLE) == 0 {
		t.Errorf("second = %+v", second)
	}
	if second.Name() != "PCAN-USB FD" {
		t.Errorf("name = %q", second.Name())
	}

	var cond [4]byte
	if status := c.GetValue(PCAN_USBBUS3, PCAN_CHANNEL_CONDITION, cond[:]); status != PCAN_ERROR_OK ||
		TPCANCHannelCondition(binary.LittleEndian.Uint32(cond[:])) != CHANNEL_UNAVAILABLE {
		t.Errorf("condition of a missing channel = 0x%x %v", status, cond)
	}
}

func TestTraceParameters(t *testing.T) {
	c, _ := newTestCore(t, usbDevice(0))
	mustInitialize(t, c, PCAN_USBBUS1)
	dir := t.TempDir()

	if status := c.SetValue(PCAN_USBBUS1, PCAN_TRACE_LOCATION, []byte(dir)); status != PCAN_ERROR_OK {
		t.Fatalf("trace location = 0x%x", status)
	}
	on := []byte{byte(PCAN_PARAMETER_ON), 0}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_TRACE_STATUS, on); status != PCAN_ERROR_OK {
		t.Fatalf("trace on = 0x%x", status)
	}
	if status := c.Write(PCAN_USBBUS1, &TPCANMsg{ID: 0x7FF, DLC: 1, Data: [8]byte{0x5A}}); status != PCAN_ERROR_OK {
		t.Fatalf("Write = 0x%x", status)
	}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_TRACE_CONFIGURE, []byte{1}); status != PCAN_ERROR_ILLOPERATION {
		t.Errorf("configure while tracing = 0x%x, want ILLOPERATION", status)
	}
	if status := c.SetValue(PCAN_USBBUS1, PCAN_TRACE_STATUS, []byte{0}); status != PCAN_ERROR_OK {
		t.Fatalf("trace off = 0x%x", status)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.trc"))
	if err != nil || len(files) != 1 {
		t.Fatalf("trace files = %v %v", files, err)
	}
	if !strings.HasSuffix(files[0], "PCAN_USBBUS1.trc") {
		t.Errorf("trace file = %s", files[0])
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !strings.Contains(string(data), "07FF") {
		t.Errorf("message not traced:\n%s", data)
	}

	if status := c.SetValue(PCAN_USBBUS1, PCAN_TRACE_LOCATION, []byte{0}); status != PCAN_ERROR_OK {
		t.Fatalf("reset trace location = 0x%x", status)
	}
	buf := make([]byte, MAX_LENGHT_STRING_BUFFER)
	c.GetValue(PCAN_USBBUS1, PCAN_TRACE_LOCATION, buf)
	if got := cString(buf); got != c.traceLocation {
		t.Errorf("trace location = %q, want %q", got, c.traceLocation)
	}
}
