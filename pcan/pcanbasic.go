package pcan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/morgadow/gopcanbasic/pcaninfo"
	"github.com/morgadow/gopcanbasic/pcanfd"
	"github.com/omzlo/clog"
)

/* PCAN-Basic API of a Core. Every call is written to the API log with its parameters and result. */

// logCall writes the entry and parameter lines of an API function and returns the function
// writing its exit line.
func (c *Core) logCall(fn string, format string, a ...interface{}) func(TPCANStatus) {
	c.log.WriteEntry(fn)
	c.log.WriteParam(fn, fmt.Sprintf(format, a...))
	return func(status TPCANStatus) {
		c.log.WriteExit(fn, uint32(status))
	}
}

// Initializes a PCAN Channel
// handle: The handle of a PCAN Channel
// btr0btr1: The speed for the communication (BTR0BTR1 code)
// hwType: Non-PnP: The type of hardware and operation mode
// ioPort: Non-PnP: The I/O address for the parallel port
// interrupt: Non-PnP: Interrupt number of the parallel port
func (c *Core) Initialize(handle TPCANHandle, btr0btr1 TPCANBaudrate, hwType TPCANType, ioPort uint32, interrupt uint16) (status TPCANStatus) {
	exit := c.logCall("CAN_Initialize", "Channel: 0x%02X, Btr0Btr1: %d, HwType: 0x%08X, IOPort: 0x%08X, Interrupt: 0x%08X",
		uint16(handle), uint16(btr0btr1), uint8(hwType), ioPort, interrupt)
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	ch, pre := c.channels[handle]
	if pre && ch.isOpen() {
		if ch.btr0btr1 != btr0btr1 && ch.bitrateAdapting == uint8(PCAN_PARAMETER_ON) {
			return PCAN_ERROR_CAUTION
		}
		return PCAN_ERROR_INITIALIZE
	}
	if !pre {
		ch = c.createChannel(handle, false)
	}

	info, ok := c.dir.findDevice(handle, hwType, ioPort, interrupt)
	if !ok {
		c.dropChannel(ch, pre)
		return PCAN_ERROR_NODRIVER
	}
	ch.btr0btr1 = btr0btr1
	ch.bitrateFD = ""
	ch.info = info

	status = PCAN_ERROR_OK
	if info.BusState != 0 {
		if ch.bitrateAdapting == uint8(PCAN_PARAMETER_ON) {
			status = PCAN_ERROR_CAUTION
		} else if info.BTR0BTR1 != uint32(btr0btr1) {
			c.dropChannel(ch, pre)
			return PCAN_ERROR_INITIALIZE
		}
	}

	init := btr0btr1ToInit(btr0btr1)
	return c.openChannel(ch, &init, status)
}

// Initializes a FD capable PCAN Channel
// handle: The handle of a PCAN Channel
// bitrateFD: The speed for the communication (FD bit rate string)
func (c *Core) InitializeFD(handle TPCANHandle, bitrateFD TPCANBitrateFD) (status TPCANStatus) {
	exit := c.logCall("CAN_InitializeFD", "Channel: 0x%02X, BitrateFD: {%s}", uint16(handle), string(bitrateFD))
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	ch, pre := c.channels[handle]
	if pre && ch.isOpen() {
		if ch.bitrateFD != bitrateFD && ch.bitrateAdapting == uint8(PCAN_PARAMETER_ON) {
			return PCAN_ERROR_CAUTION
		}
		return PCAN_ERROR_INITIALIZE
	}
	if !pre {
		ch = c.createChannel(handle, false)
	}

	info, ok := c.dir.findDevice(handle, PCAN_DEFAULT_HW_TYPE, PCAN_DEFAULT_IO_PORT, PCAN_DEFAULT_INTERRUPT)
	if !ok {
		c.dropChannel(ch, pre)
		return PCAN_ERROR_NODRIVER
	}
	init, err := parseFDInit(string(bitrateFD))
	if err != nil {
		clog.Debug("pcan: invalid FD bit rate '%s': %s", bitrateFD, err)
		c.dropChannel(ch, pre)
		return PCAN_ERROR_INITIALIZE
	}
	ch.bitrateFD = bitrateFD
	ch.info = info

	status = PCAN_ERROR_OK
	if info.BusState != 0 {
		if ch.bitrateAdapting == uint8(PCAN_PARAMETER_ON) {
			status = PCAN_ERROR_CAUTION
		} else if info.NomBitrate != init.Nominal.Bitrate || info.DataBitrate != init.Data.Bitrate {
			c.dropChannel(ch, pre)
			return PCAN_ERROR_INITIALIZE
		}
	}
	return c.openChannel(ch, &init, status)
}

// openChannel opens the device of a channel found in the directory and registers it. status
// is the result so far, OK or CAUTION.
func (c *Core) openChannel(ch *channel, init *pcanfd.Init, status TPCANStatus) TPCANStatus {
	ch.openFlags = pcanfd.OpenNonBlocking
	if ch.listenOnly == uint8(PCAN_PARAMETER_ON) {
		ch.openFlags |= pcanfd.OpenListenOnly
		init.Flags |= pcanfd.InitListenOnly
	}
	dev, err := c.opener.Open(ch.info.Path, init, ch.openFlags)
	if err != nil {
		clog.Warning("pcan: failed to open '%s': %s", ch.info.Path, err)
		c.dropChannel(ch, c.channels[ch.handle] == ch)
		return PCAN_ERROR_ILLOPERATION
	}
	ch.dev = dev
	c.channels[ch.handle] = ch

	if err := dev.DelFilters(); err != nil {
		clog.DebugX("pcan: failed to remove filters of '%s': %s", ch.info.Path, err)
	}
	if status == PCAN_ERROR_OK {
		c.dir.invalidate()
		if err := c.dir.update(&ch.info); err != nil {
			clog.DebugX("pcan: failed to refresh '%s': %s", ch.info.Name, err)
		}
	}
	clog.Debug("pcan: channel 0x%02X opened on '%s'", ch.handle, ch.info.Path)
	return status
}

// dropChannel forgets a channel that failed to initialize, registered tells whether it was
// in the registry.
func (c *Core) dropChannel(ch *channel, registered bool) {
	if registered {
		c.removeChannel(ch)
		return
	}
	c.releaseChannel(ch)
}

// Uninitializes a PCAN Channel, PCAN_NONEBUS uninitializes all channels
func (c *Core) Uninitialize(handle TPCANHandle) (status TPCANStatus) {
	exit := c.logCall("CAN_Uninitialize", "Channel: 0x%02X", uint16(handle))
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if handle == PCAN_NONEBUS {
		c.uninitializeAll()
		return PCAN_ERROR_OK
	}
	ch := c.getChannel(handle, false)
	if ch == nil {
		return PCAN_ERROR_INITIALIZE
	}
	c.removeChannel(ch)
	return PCAN_ERROR_OK
}

// Resets the receive and transmit queues of a PCAN Channel
func (c *Core) Reset(handle TPCANHandle) (status TPCANStatus) {
	exit := c.logCall("CAN_Reset", "Channel: 0x%02X", uint16(handle))
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.getChannel(handle, true)
	if ch == nil {
		return PCAN_ERROR_INITIALIZE
	}
	return c.resetChannel(ch)
}

// Gets the current bus status of a PCAN Channel
func (c *Core) GetStatus(handle TPCANHandle) (status TPCANStatus) {
	exit := c.logCall("CAN_GetStatus", "Channel: 0x%02X", uint16(handle))
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.getChannel(handle, true)
	if ch == nil {
		return PCAN_ERROR_INITIALIZE
	}
	var st pcanfd.State
	if err := ch.dev.GetState(&st); err != nil {
		return errnoStatus(err, ctxNone)
	}
	return busStateStatus(st.BusState)
}

// Reads a CAN message from the receive queue of a PCAN Channel
func (c *Core) Read(handle TPCANHandle) (status TPCANStatus, msg TPCANMsg, ts TPCANTimestamp) {
	exit := c.logCall("CAN_Read", "Channel: 0x%02X", uint16(handle))
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.getChannel(handle, true)
	if ch == nil {
		return PCAN_ERROR_INITIALIZE, msg, ts
	}
	status, fd, t := c.readCommon(ch)
	if status != PCAN_ERROR_OK {
		return status, msg, ts
	}
	return status, toClassic(&fd), classicTimestamp(t)
}

// Reads a CAN message from the receive queue of a FD capable PCAN Channel
func (c *Core) ReadFD(handle TPCANHandle) (status TPCANStatus, msg TPCANMsgFD, ts TPCANTimestampFD) {
	exit := c.logCall("CAN_ReadFD", "Channel: 0x%02X", uint16(handle))
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.getChannel(handle, true)
	if ch == nil {
		return PCAN_ERROR_INITIALIZE, msg, ts
	}
	status, msg, t := c.readCommon(ch)
	if status != PCAN_ERROR_OK {
		return status, TPCANMsgFD{}, ts
	}
	return status, msg, fdTimestamp(t)
}

// Transmits a CAN message
func (c *Core) Write(handle TPCANHandle, msg *TPCANMsg) (status TPCANStatus) {
	exit := c.logCall("CAN_Write", "Channel: 0x%02X, ID: 0x%08X, LEN: %d", uint16(handle), uint32(msgID(msg)), msgLen(msg))
	defer func() { exit(status) }()

	if msg == nil || msg.DLC > LENGTH_DATA_CAN_MESSAGE {
		return PCAN_ERROR_ILLPARAMVAL
	}
	fd := toFD(msg)
	return c.writeLocked(handle, &fd)
}

// Transmits a CAN message over a FD capable PCAN Channel
func (c *Core) WriteFD(handle TPCANHandle, msg *TPCANMsgFD) (status TPCANStatus) {
	exit := c.logCall("CAN_WriteFD", "Channel: 0x%02X", uint16(handle))
	defer func() { exit(status) }()

	if msg == nil {
		return PCAN_ERROR_ILLPARAMVAL
	}
	return c.writeLocked(handle, msg)
}

func (c *Core) writeLocked(handle TPCANHandle, msg *TPCANMsgFD) TPCANStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.getChannel(handle, true)
	if ch == nil {
		return PCAN_ERROR_INITIALIZE
	}
	return c.writeCommon(ch, msg)
}

func msgID(msg *TPCANMsg) TPCANMsgID {
	if msg == nil {
		return 0
	}
	return msg.ID
}

func msgLen(msg *TPCANMsg) uint8 {
	if msg == nil {
		return 0
	}
	return msg.DLC
}

// Adds a reception filter to a PCAN Channel
// fromID: The lowest CAN ID to be received
// toID: The highest CAN ID to be received
// mode: Message type, Standard (11-bit identifier) or Extended (29-bit identifier)
func (c *Core) FilterMessages(handle TPCANHandle, fromID TPCANMsgID, toID TPCANMsgID, mode TPCANMode) (status TPCANStatus) {
	exit := c.logCall("CAN_FilterMessages", "Channel: 0x%02X, FromID: 0x%08X, ToID: 0x%08X, Mode: 0x%08X",
		uint16(handle), uint32(fromID), uint32(toID), uint8(mode))
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.getChannel(handle, true)
	if ch == nil {
		return PCAN_ERROR_INITIALIZE
	}
	if err := ch.dev.AddFilter(rangeFilter(fromID, toID, mode)); err != nil {
		return errnoStatus(err, ctxNone)
	}
	return PCAN_ERROR_OK
}

// Retrieves a PCAN Channel value into buf
// Note: Parameters can be present or not according with the kind of Hardware (PCAN Channel) being used.
// If a parameter is not available, a PCAN_ERROR_ILLPARAMTYPE error will be returned
func (c *Core) GetValue(handle TPCANHandle, param TPCANParameter, buf []byte) (status TPCANStatus) {
	exit := c.logCall("CAN_GetValue", "Channel: 0x%02X, Parameter: 0x%08X, BufferLength: 0x%08X",
		uint16(handle), uint8(param), len(buf))
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getValue(handle, param, buf)
}

// Configures a PCAN Channel value from buf
func (c *Core) SetValue(handle TPCANHandle, param TPCANParameter, buf []byte) (status TPCANStatus) {
	exit := c.logCall("CAN_SetValue", "Channel: 0x%02X, Parameter: 0x%08X, BufferLength: 0x%08X",
		uint16(handle), uint8(param), len(buf))
	defer func() { exit(status) }()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setValue(handle, param, buf)
}

// Returns a descriptive text of a given TPCANStatus error code, in any desired language
// status: A TPCANStatus error code
// language: Indicates a 'Primary language ID'
func (c *Core) GetErrorText(status TPCANStatus, language TPCANLanguage) (result TPCANStatus, text string) {
	exit := c.logCall("CAN_GetErrorText", "Error: 0x%08X, Language: 0x%08X", uint32(status), uint16(language))
	defer func() { exit(result) }()

	return errorText(status, language)
}

// Finds the first PCAN Channel matching every given lookup parameter
// params: comma separated name=value pairs, ex. "devicetype=PCAN_USB, controllernumber=1"
// Note: PCAN_NONEBUS is returned with PCAN_ERROR_OK when no channel matches.
func (c *Core) LookUpChannel(params string) (status TPCANStatus, handle TPCANHandle) {
	exit := c.logCall("CAN_LookUpChannel", "Parameters: %s", params)
	defer func() { exit(status) }()

	q, status := parseLookup(params)
	if status != PCAN_ERROR_OK {
		return status, PCAN_NONEBUS
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.dir.attachedDevices() {
		if q.matches(&d.info) {
			return PCAN_ERROR_OK, d.handle
		}
	}
	return PCAN_ERROR_OK, PCAN_NONEBUS
}

// lookupQuery holds the criteria of LookUpChannel, nil fields match any device
type lookupQuery struct {
	deviceType *pcaninfo.Category
	deviceID   *uint32
	controller *uint32
}

var deviceTypeNames = map[string]pcaninfo.Category{
	"PCAN_ISA": pcaninfo.CategoryISA,
	"PCAN_DNG": pcaninfo.CategoryDNG,
	"PCAN_PCI": pcaninfo.CategoryPCI,
	"PCAN_USB": pcaninfo.CategoryUSB,
	"PCAN_PCC": pcaninfo.CategoryPCC,
	"PCAN_LAN": pcaninfo.CategoryLAN,
}

// parseLookup decodes the parameters of LookUpChannel.
func parseLookup(params string) (lookupQuery, TPCANStatus) {
	var q lookupQuery
	if strings.TrimSpace(params) == "" {
		return q, PCAN_ERROR_ILLPARAMVAL
	}

	for _, pair := range strings.Split(params, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			return q, PCAN_ERROR_ILLPARAMVAL
		}

		switch key {
		case LOOKUP_DEVICE_TYPE:
			cat, ok := parseDeviceType(value)
			if !ok {
				return q, PCAN_ERROR_ILLPARAMVAL
			}
			q.deviceType = &cat
		case LOOKUP_DEVICE_ID:
			v, err := strconv.ParseUint(value, 0, 32)
			if err != nil {
				return q, PCAN_ERROR_ILLPARAMVAL
			}
			id := uint32(v)
			q.deviceID = &id
		case LOOKUP_CONTROLLER_NUMBER:
			v, err := strconv.ParseUint(value, 0, 32)
			if err != nil {
				return q, PCAN_ERROR_ILLPARAMVAL
			}
			n := uint32(v)
			q.controller = &n
		case LOOKUP_IP_ADDRESS:
			// LAN devices are not handled by the driver
			return q, PCAN_ERROR_NODRIVER
		default:
			return q, PCAN_ERROR_ILLPARAMVAL
		}
	}
	return q, PCAN_ERROR_OK
}

// parseDeviceType accepts a device name (PCAN_USB, usb) or its TPCANDevice value
func parseDeviceType(s string) (pcaninfo.Category, bool) {
	if v, err := strconv.ParseUint(s, 0, 8); err == nil {
		return pcaninfo.Category(v), true
	}
	name := strings.ToUpper(s)
	if !strings.HasPrefix(name, "PCAN_") {
		name = "PCAN_" + name
	}
	cat, ok := deviceTypeNames[name]
	return cat, ok
}

func (q *lookupQuery) matches(info *pcaninfo.Info) bool {
	if q.deviceType != nil && info.Category != *q.deviceType {
		return false
	}
	if q.deviceID != nil && info.DevID != *q.deviceID {
		return false
	}
	if q.controller != nil && info.CtrlrNumber != *q.controller {
		return false
	}
	return true
}
