package pcan

import (
	"fmt"
	"testing"
	"time"

	"github.com/morgadow/gopcanbasic/pcaninfo"
	"github.com/morgadow/gopcanbasic/pcanfd"
)

func usbDevice(n int) pcaninfo.Info {
	return pcaninfo.Info{
		Name:           fmt.Sprintf("pcanusb%d", 32+n),
		Path:           fmt.Sprintf("/dev/pcanusb%d", 32+n),
		Category:       pcaninfo.CategoryUSB,
		AvailFlag:      pcaninfo.FlagBTR0BTR1 | pcaninfo.FlagNomBitrate | pcaninfo.FlagDevID | pcaninfo.FlagCtrlNb,
		HwType:         pcaninfo.HwUSB,
		Type:           "PCAN-USB",
		AdapterVersion: "8.15.2",
		BTR0BTR1:       uint32(PCAN_BAUD_500K),
		NomBitrate:     500000,
		DevID:          uint32(n),
		CtrlrNumber:    uint32(n % 2),
	}
}

func TestHandleCoding(t *testing.T) {
	tests := []struct {
		handle   TPCANHandle
		category pcaninfo.Category
		index    int
		name     string
	}{
		{PCAN_USBBUS1, pcaninfo.CategoryUSB, 1, "PCAN_USBBUS1"},
		{PCAN_USBBUS8, pcaninfo.CategoryUSB, 8, "PCAN_USBBUS8"},
		{PCAN_USBBUS9, pcaninfo.CategoryUSB, 9, "PCAN_USBBUS9"},
		{PCAN_USBBUS16, pcaninfo.CategoryUSB, 16, "PCAN_USBBUS16"},
		{PCAN_PCIBUS1, pcaninfo.CategoryPCI, 1, "PCAN_PCIBUS1"},
		{PCAN_PCIBUS9, pcaninfo.CategoryPCI, 9, "PCAN_PCIBUS9"},
		{PCAN_ISABUS1, pcaninfo.CategoryISA, 1, "PCAN_ISABUS1"},
		{PCAN_ISABUS6, pcaninfo.CategoryISA, 6, "PCAN_ISABUS6"},
		{PCAN_DNGBUS1, pcaninfo.CategoryDNG, 1, "PCAN_DNGBUS1"},
		{PCAN_PCCBUS2, pcaninfo.CategoryPCC, 2, "PCAN_PCCBUS2"},
		{PCAN_LANBUS16, pcaninfo.CategoryLAN, 16, "PCAN_LANBUS16"},
		{PCAN_NONEBUS, pcaninfo.CategoryNone, 0, "PCAN_NONEBUS"},
	}
	for _, tt := range tests {
		category, index := decodeHandle(tt.handle)
		if category != tt.category || index != tt.index {
			t.Errorf("decodeHandle(0x%X) = %v %d, want %v %d", tt.handle, category, index, tt.category, tt.index)
		}
		if tt.index > 0 {
			if got := encodeHandle(tt.category, tt.index); got != tt.handle {
				t.Errorf("encodeHandle(%v, %d) = 0x%X, want 0x%X", tt.category, tt.index, got, tt.handle)
			}
		}
		if got := HandleName(tt.handle); got != tt.name {
			t.Errorf("HandleName(0x%X) = %q, want %q", tt.handle, got, tt.name)
		}
	}
	if got := encodeHandle(pcaninfo.CategoryUSB, 17); got != PCAN_NONEBUS {
		t.Errorf("encodeHandle(USB, 17) = 0x%X", got)
	}
	if category, _ := decodeHandle(PCAN_ISABUS7); category != pcaninfo.CategoryNone {
		t.Errorf("decodeHandle(PCAN_ISABUS7) = %v, want none", category)
	}
	if got := encodeHandle(pcaninfo.CategoryISA, 7); got != PCAN_NONEBUS {
		t.Errorf("encodeHandle(ISA, 7) = 0x%X", got)
	}
}

func TestDirectoryPositional(t *testing.T) {
	pci := pcaninfo.Info{Name: "pcanpcifd0", Path: "/dev/pcanpcifd0", Category: pcaninfo.CategoryPCI}
	isa := pcaninfo.Info{Name: "pcanisa0", Path: "/dev/pcanisa0", Category: pcaninfo.CategoryISA,
		HwType: pcaninfo.HwISASJA, Base: 0x300, IRQ: 10}
	d := newDirectory(pcaninfo.Static{usbDevice(0), pci, usbDevice(1), isa}, 0)

	info, ok := d.findDevice(PCAN_USBBUS2, PCAN_DEFAULT_HW_TYPE, 0, 0)
	if !ok || info.Name != "pcanusb33" {
		t.Errorf("PCAN_USBBUS2 = %q %v, want pcanusb33", info.Name, ok)
	}
	if _, ok := d.findDevice(PCAN_USBBUS3, PCAN_DEFAULT_HW_TYPE, 0, 0); ok {
		t.Error("PCAN_USBBUS3 found")
	}
	if info, ok := d.findDevice(PCAN_PCIBUS1, PCAN_DEFAULT_HW_TYPE, 0, 0); !ok || info.Path != pci.Path {
		t.Errorf("PCAN_PCIBUS1 = %q %v", info.Path, ok)
	}
	if _, ok := d.findDevice(PCAN_ISABUS1, PCAN_DEFAULT_HW_TYPE, 0x300, 10); ok {
		t.Error("ISA device found with wrong hardware type")
	}
	if info, ok := d.findDevice(PCAN_ISABUS1, TPCANType(pcaninfo.HwISASJA), 0x300, 10); !ok || info.Name != isa.Name {
		t.Errorf("PCAN_ISABUS1 = %q %v", info.Name, ok)
	}

	if got := d.handleForPath("/dev/pcanusb33"); got != PCAN_USBBUS2 {
		t.Errorf("handleForPath = 0x%X, want PCAN_USBBUS2", got)
	}
	if got := d.handleForPath("/dev/unknown"); got != PCAN_NONEBUS {
		t.Errorf("handleForPath(unknown) = 0x%X", got)
	}

	attached := d.attachedDevices()
	if len(attached) != 4 {
		t.Fatalf("%d attached devices, want 4", len(attached))
	}
	want := []TPCANHandle{PCAN_USBBUS1, PCAN_PCIBUS1, PCAN_USBBUS2, PCAN_ISABUS1}
	for i, a := range attached {
		if a.handle != want[i] {
			t.Errorf("attached[%d] = 0x%X, want 0x%X", i, a.handle, want[i])
		}
	}
}

type countingLister struct {
	infos pcaninfo.Static
	calls int
}

func (l *countingLister) List() ([]pcaninfo.Info, error) {
	l.calls++
	return l.infos.List()
}

func TestDirectoryRefresh(t *testing.T) {
	l := &countingLister{infos: pcaninfo.Static{usbDevice(0)}}
	d := newDirectory(l, time.Second)
	now := d.now()
	d.now = func() time.Time { return now }

	d.devices()
	d.devices()
	if l.calls != 1 {
		t.Errorf("%d scans, want 1", l.calls)
	}
	d.invalidate()
	d.devices()
	if l.calls != 2 {
		t.Errorf("%d scans after invalidate, want 2", l.calls)
	}

	info := usbDevice(0)
	info.BusState = 1
	if err := d.update(&info); err != nil {
		t.Fatalf("update: %v", err)
	}
	if info.BusState != 0 {
		t.Errorf("bus state not refreshed")
	}
	gone := pcaninfo.Info{Name: "pcanusb40", Path: "/dev/pcanusb40"}
	if err := d.update(&gone); err == nil {
		t.Error("update of a missing device succeeded")
	}
}

func TestClassifyFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []pcanfd.Filter
		want    TPCANParameterValue
	}{
		{"none", nil, PCAN_FILTER_OPEN},
		{"full standard", []pcanfd.Filter{{IDFrom: 0, IDTo: pcanfd.MaxStdID}}, PCAN_FILTER_OPEN},
		{"full extended", []pcanfd.Filter{{IDFrom: 0, IDTo: pcanfd.MaxExtID, MsgFlags: pcanfd.MsgExt}}, PCAN_FILTER_OPEN},
		{"closed", []pcanfd.Filter{{IDFrom: 1, IDTo: 0}}, PCAN_FILTER_CLOSE},
		{"range", []pcanfd.Filter{{IDFrom: 1, IDTo: 0}, {IDFrom: 0x100, IDTo: 0x1FF}}, PCAN_FILTER_CUSTOM},
		{"standard limit on extended", []pcanfd.Filter{{IDFrom: 0, IDTo: pcanfd.MaxStdID, MsgFlags: pcanfd.MsgExt}}, PCAN_FILTER_CUSTOM},
	}
	for _, tt := range tests {
		if got := classifyFilters(tt.filters); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}

	f := rangeFilter(0x200, 0x100, PCAN_MODE_EXTENDED)
	if f.IDFrom != 0x200 || f.IDTo != 0x100 || f.MsgFlags != pcanfd.MsgExt {
		t.Errorf("rangeFilter = %+v", f)
	}
}

func TestParseLookup(t *testing.T) {
	q, status := parseLookup("devicetype=PCAN_USB, deviceid=0x10, controllernumber=1")
	if status != PCAN_ERROR_OK {
		t.Fatalf("status = 0x%x", status)
	}
	if q.deviceType == nil || *q.deviceType != pcaninfo.CategoryUSB {
		t.Error("device type not parsed")
	}
	if q.deviceID == nil || *q.deviceID != 0x10 {
		t.Error("device id not parsed")
	}
	if q.controller == nil || *q.controller != 1 {
		t.Error("controller number not parsed")
	}

	if q, status := parseLookup("DeviceType=usb"); status != PCAN_ERROR_OK || *q.deviceType != pcaninfo.CategoryUSB {
		t.Errorf("short device type: 0x%x", status)
	}
	if q, status := parseLookup("devicetype=4"); status != PCAN_ERROR_OK || *q.deviceType != pcaninfo.CategoryPCI {
		t.Errorf("numeric device type: 0x%x", status)
	}

	tests := map[string]TPCANStatus{
		"":                      PCAN_ERROR_ILLPARAMVAL,
		"devicetype":            PCAN_ERROR_ILLPARAMVAL,
		"devicetype=PCAN_XYZ":   PCAN_ERROR_ILLPARAMVAL,
		"deviceid=ten":          PCAN_ERROR_ILLPARAMVAL,
		"color=red":             PCAN_ERROR_ILLPARAMVAL,
		"ipaddress=192.168.1.2": PCAN_ERROR_NODRIVER,
	}
	for params, want := range tests {
		if _, got := parseLookup(params); got != want {
			t.Errorf("parseLookup(%q) = 0x%x, want 0x%x", params, got, want)
		}
	}

	if got := lookupString("PCAN_USB", "", "1", ""); got != "devicetype=PCAN_USB, controllernumber=1" {
		t.Errorf("lookupString = %q", got)
	}
}

func TestParseHandle(t *testing.T) {
	tests := []struct {
		in   string
		want TPCANHandle
		ok   bool
	}{
		{"PCAN_USBBUS1", PCAN_USBBUS1, true},
		{"pcan_usbbus12", PCAN_USBBUS12, true},
		{"0x51", PCAN_USBBUS1, true},
		{"0x41", PCAN_PCIBUS1, true},
		{"PCAN_USBBUS17", PCAN_NONEBUS, false},
		{"0x00", PCAN_NONEBUS, false},
		{"usb", PCAN_NONEBUS, false},
	}
	for _, tt := range tests {
		got, ok := ParseHandle(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseHandle(%q) = 0x%X %v, want 0x%X %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	infos := []pcaninfo.Info{usbDevice(0), usbDevice(1)}
	if got := DeviceHandle(infos, "/dev/pcanusb33"); got != PCAN_USBBUS2 {
		t.Errorf("DeviceHandle = 0x%X, want PCAN_USBBUS2", got)
	}
}
