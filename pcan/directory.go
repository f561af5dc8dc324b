package pcan

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/morgadow/gopcanbasic/pcaninfo"
	"github.com/omzlo/clog"
)

// directory is a snapshot of the devices of the system, rescanned once it is older than ttl.
type directory struct {
	lister  pcaninfo.Lister
	ttl     time.Duration
	infos   []pcaninfo.Info
	scanned time.Time
	now     func() time.Time
}

func newDirectory(l pcaninfo.Lister, ttl time.Duration) *directory {
	return &directory{lister: l, ttl: ttl, now: time.Now}
}

// refresh rescans the devices when the snapshot is outdated
func (d *directory) refresh() {
	if !d.scanned.IsZero() && d.now().Sub(d.scanned) < d.ttl {
		return
	}
	infos, err := d.lister.List()
	if err != nil {
		clog.DebugX("pcan: device scan failed: %s", err)
		infos = nil
	}
	d.infos = infos
	d.scanned = d.now()
}

// invalidate forces a rescan on the next lookup.
func (d *directory) invalidate() {
	d.scanned = time.Time{}
}

// updater is implemented by listers able to re-read a single device
type updater interface {
	Update(info *pcaninfo.Info) error
}

// update re-reads the record of one device, ex. after its bit rate changed.
func (d *directory) update(info *pcaninfo.Info) error {
	if u, ok := d.lister.(updater); ok {
		return u.Update(info)
	}
	for _, fresh := range d.devices() {
		if fresh.Name == info.Name && fresh.Path == info.Path {
			*info = fresh
			return nil
		}
	}
	return fmt.Errorf("pcan: device '%s' vanished", info.Name)
}

func (d *directory) devices() []pcaninfo.Info {
	d.refresh()
	return d.infos
}

// first handle of each category and, for PCI and USB, of the channels 9 to 16
var handleRanges = []struct {
	category pcaninfo.Category
	first    TPCANHandle
	last     TPCANHandle
	offset   int // index of the first handle minus one
}{
	{pcaninfo.CategoryISA, PCAN_ISABUS1, PCAN_ISABUS6, 0},
	{pcaninfo.CategoryDNG, PCAN_DNGBUS1, PCAN_DNGBUS1, 0},
	{pcaninfo.CategoryPCI, PCAN_PCIBUS1, PCAN_PCIBUS8, 0},
	{pcaninfo.CategoryPCI, PCAN_PCIBUS9, PCAN_PCIBUS16, 8},
	{pcaninfo.CategoryUSB, PCAN_USBBUS1, PCAN_USBBUS8, 0},
	{pcaninfo.CategoryUSB, PCAN_USBBUS9, PCAN_USBBUS16, 8},
	{pcaninfo.CategoryPCC, PCAN_PCCBUS1, PCAN_PCCBUS2, 0},
	{pcaninfo.CategoryLAN, PCAN_LANBUS1, PCAN_LANBUS16, 0},
}

var handlePrefixes = map[pcaninfo.Category]string{
	pcaninfo.CategoryISA: "PCAN_ISABUS",
	pcaninfo.CategoryDNG: "PCAN_DNGBUS",
	pcaninfo.CategoryPCI: "PCAN_PCIBUS",
	pcaninfo.CategoryUSB: "PCAN_USBBUS",
	pcaninfo.CategoryPCC: "PCAN_PCCBUS",
	pcaninfo.CategoryLAN: "PCAN_LANBUS",
}

// decodeHandle returns the hardware category and the 1-based channel index of a handle.
func decodeHandle(handle TPCANHandle) (pcaninfo.Category, int) {
	for _, r := range handleRanges {
		if handle >= r.first && handle <= r.last {
			return r.category, int(handle-r.first) + 1 + r.offset
		}
	}
	return pcaninfo.CategoryNone, 0
}

// encodeHandle returns the handle of the index-th channel of a category, PCAN_NONEBUS when
// there is none.
func encodeHandle(category pcaninfo.Category, index int) TPCANHandle {
	for _, r := range handleRanges {
		if r.category != category {
			continue
		}
		n := index - r.offset - 1
		if n >= 0 && n <= int(r.last-r.first) {
			return r.first + TPCANHandle(n)
		}
	}
	return PCAN_NONEBUS
}

// categoryHandleName is the name of a handle constant, ex. PCAN_USBBUS3.
func categoryHandleName(category pcaninfo.Category, index int) string {
	prefix, ok := handlePrefixes[category]
	if !ok || index <= 0 {
		return "PCAN_NONEBUS"
	}
	return fmt.Sprintf("%s%d", prefix, index)
}

// HandleName returns the name of the constant of a handle.
func HandleName(handle TPCANHandle) string {
	return categoryHandleName(decodeHandle(handle))
}

// findDevice returns the device a handle refers to. ISA and dongle devices are matched on
// their hardware type, port and interrupt, other devices by their rank in their category.
func (d *directory) findDevice(handle TPCANHandle, hwtype TPCANType, base uint32, irq uint16) (pcaninfo.Info, bool) {
	category, index := decodeHandle(handle)
	if category == pcaninfo.CategoryNone {
		return pcaninfo.Info{}, false
	}

	n := 0
	for _, info := range d.devices() {
		if info.Category != category {
			continue
		}
		switch category {
		case pcaninfo.CategoryISA, pcaninfo.CategoryDNG:
			if info.HwType == uint32(hwtype) && info.Base == base && info.IRQ == uint32(irq) {
				return info, true
			}
		default:
			n++
			if n == index {
				return info, true
			}
		}
	}
	return pcaninfo.Info{}, false
}

// handleForPath returns the handle of the device opened through path.
func (d *directory) handleForPath(path string) TPCANHandle {
	counts := make(map[pcaninfo.Category]int)
	for _, info := range d.devices() {
		counts[info.Category]++
		if info.Path != path {
			continue
		}
		switch info.Category {
		case pcaninfo.CategoryNone, pcaninfo.CategoryPeakCAN, pcaninfo.CategoryVirtual:
			return PCAN_NONEBUS
		}
		return encodeHandle(info.Category, counts[info.Category])
	}
	return PCAN_NONEBUS
}

// attached is a device together with its handle
type attached struct {
	handle TPCANHandle
	info   pcaninfo.Info
}

// attachedDevices lists the devices that can be reached through a handle.
func (d *directory) attachedDevices() []attached {
	var list []attached
	counts := make(map[pcaninfo.Category]int)
	for _, info := range d.devices() {
		counts[info.Category]++
		if h := encodeHandle(info.Category, counts[info.Category]); h != PCAN_NONEBUS {
			list = append(list, attached{handle: h, info: info})
		}
	}
	return list
}

// ParseHandle reads a handle given by its constant name, ex. PCAN_USBBUS1, or its value,
// ex. 0x51.
func ParseHandle(s string) (TPCANHandle, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if v, err := strconv.ParseUint(s, 0, 16); err == nil {
		handle := TPCANHandle(v)
		if category, _ := decodeHandle(handle); category == pcaninfo.CategoryNone {
			return PCAN_NONEBUS, false
		}
		return handle, true
	}
	for _, r := range handleRanges {
		for h := r.first; h <= r.last; h++ {
			if HandleName(h) == s {
				return h, true
			}
		}
	}
	return PCAN_NONEBUS, false
}

// DeviceHandle returns the handle an application uses to open the device at path, infos
// being the devices of the system in scan order.
func DeviceHandle(infos []pcaninfo.Info, path string) TPCANHandle {
	d := newDirectory(pcaninfo.Static(infos), time.Hour)
	return d.handleForPath(path)
}
