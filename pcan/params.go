package pcan

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/morgadow/gopcanbasic/pcaninfo"
	"github.com/morgadow/gopcanbasic/pcanfd"
	"github.com/omzlo/clog"
)

/* Dispatch of GetValue and SetValue over the parameter table. Parameters are encoded little endian. */

// channel requirement of a parameter
type paramNeeds int

const (
	needsNone paramNeeds = iota // usable with any handle, even without channel
	needsOpen                   // requires an initialized channel
)

// paramEntry describes how a parameter is read and written. A nil get or set makes the
// direction unsupported (PCAN_ERROR_ILLPARAMTYPE). size is the length of the value written by
// SetValue, 0 keeps the buffer as given (strings).
type paramEntry struct {
	needs paramNeeds
	size  int
	get   func(c *Core, handle TPCANHandle, ch *channel) (TPCANStatus, []byte)
	set   func(c *Core, handle TPCANHandle, ch *channel, value []byte) TPCANStatus
}

var paramTable map[TPCANParameter]paramEntry

func init() {
	paramTable = map[TPCANParameter]paramEntry{
		PCAN_API_VERSION: {needs: needsNone, get: getAPIVersion},

		PCAN_LISTEN_ONLY:      {needs: needsNone, size: 1, get: getSwitch(PCAN_LISTEN_ONLY), set: setSwitch(PCAN_LISTEN_ONLY)},
		PCAN_RECEIVE_STATUS:   {needs: needsNone, size: 1, get: getSwitch(PCAN_RECEIVE_STATUS), set: setSwitch(PCAN_RECEIVE_STATUS)},
		PCAN_BITRATE_ADAPTING: {needs: needsNone, size: 1, get: getSwitch(PCAN_BITRATE_ADAPTING), set: setSwitch(PCAN_BITRATE_ADAPTING)},

		PCAN_LOG_LOCATION:  {needs: needsNone, get: getLogLocation, set: setLogLocation},
		PCAN_LOG_STATUS:    {needs: needsNone, size: 4, get: getLogStatus, set: setLogStatus},
		PCAN_LOG_CONFIGURE: {needs: needsNone, size: 4, get: getLogConfigure, set: setLogConfigure},
		PCAN_LOG_TEXT:      {needs: needsNone, set: setLogText},

		PCAN_CHANNEL_CONDITION:   {needs: needsNone, get: getCondition},
		PCAN_CHANNEL_IDENTIFYING: {needs: needsNone, set: unknownParam},
		PCAN_CHANNEL_FEATURES:    {needs: needsNone, get: getFeatures},

		PCAN_ATTACHED_CHANNELS_COUNT: {needs: needsNone, get: getAttachedCount},
		PCAN_ATTACHED_CHANNELS:       {needs: needsNone, get: getAttached},

		PCAN_DEVICE_NUMBER:    {needs: needsOpen, size: 4, get: getDeviceNumber, set: setDeviceNumber},
		PCAN_5VOLTS_POWER:     {needs: needsOpen},
		PCAN_RECEIVE_EVENT:    {needs: needsOpen, size: 4, get: getReceiveEvent, set: illegalOperation},
		PCAN_MESSAGE_FILTER:   {needs: needsOpen, size: 1, get: getMessageFilter, set: setMessageFilter},
		PCAN_CHANNEL_VERSION:  {needs: needsOpen, get: getChannelVersion},
		PCAN_BUSOFF_AUTORESET: {needs: needsOpen, size: 1, get: getBusoffReset, set: setBusoffReset},

		PCAN_HARDWARE_NAME:     {needs: needsOpen, get: getHardwareName},
		PCAN_CONTROLLER_NUMBER: {needs: needsOpen, get: getControllerNumber},
		PCAN_FIRMWARE_VERSION:  {needs: needsOpen, get: getFirmwareVersion},

		PCAN_TRACE_LOCATION:  {needs: needsOpen, get: getTraceLocation, set: setTraceLocation},
		PCAN_TRACE_STATUS:    {needs: needsOpen, size: 2, get: getTraceStatus, set: setTraceStatus},
		PCAN_TRACE_SIZE:      {needs: needsOpen, size: 2, get: getTraceSize, set: setTraceSize},
		PCAN_TRACE_CONFIGURE: {needs: needsOpen, size: 4, get: getTraceConfigure, set: setTraceConfigure},

		PCAN_BITRATE_INFO:     {needs: needsOpen, get: getBitrateInfo},
		PCAN_BITRATE_INFO_FD:  {needs: needsOpen, get: getBitrateInfoFD},
		PCAN_BUSSPEED_NOMINAL: {needs: needsOpen, get: getBusSpeed(false)},
		PCAN_BUSSPEED_DATA:    {needs: needsOpen, get: getBusSpeed(true)},

		PCAN_IP_ADDRESS:         {needs: needsOpen, get: noDriver},
		PCAN_LAN_SERVICE_STATUS: {needs: needsOpen, get: noDriver},

		PCAN_ALLOW_STATUS_FRAMES: {needs: needsOpen, size: 1, get: getAllowed(pcanfd.AllowedMsgStatus), set: setAllowed(pcanfd.AllowedMsgStatus)},
		PCAN_ALLOW_RTR_FRAMES:    {needs: needsOpen, size: 1, get: getAllowed(pcanfd.AllowedMsgRTR), set: setAllowed(pcanfd.AllowedMsgRTR)},
		PCAN_ALLOW_ERROR_FRAMES:  {needs: needsOpen, size: 1, get: getAllowed(pcanfd.AllowedMsgError), set: setAllowed(pcanfd.AllowedMsgError)},
		PCAN_ALLOW_ECHO_FRAMES:   {needs: needsOpen, size: 1, get: getAllowed(pcanfd.AllowedMsgEcho), set: setAllowed(pcanfd.AllowedMsgEcho)},

		PCAN_INTERFRAME_DELAY:         {needs: needsOpen, size: 4, get: getOption(pcanfd.OptIFrameDelayUs, 4), set: setOption(pcanfd.OptIFrameDelayUs)},
		PCAN_ACCEPTANCE_FILTER_11BIT:  {needs: needsOpen, size: 8, get: getOption(pcanfd.OptAccFilter11B, 8), set: setOption(pcanfd.OptAccFilter11B)},
		PCAN_ACCEPTANCE_FILTER_29BIT:  {needs: needsOpen, size: 8, get: getOption(pcanfd.OptAccFilter29B, 8), set: setOption(pcanfd.OptAccFilter29B)},
		PCAN_IO_DIGITAL_CONFIGURATION: {needs: needsOpen, size: 4, get: getOption(pcanfd.OptIODigitalCfg, 4), set: setOption(pcanfd.OptIODigitalCfg)},
		PCAN_IO_DIGITAL_VALUE:         {needs: needsOpen, size: 4, get: getOption(pcanfd.OptIODigitalVal, 4), set: setOption(pcanfd.OptIODigitalVal)},
		PCAN_IO_DIGITAL_SET:           {needs: needsOpen, size: 4, set: setOption(pcanfd.OptIODigitalSet)},
		PCAN_IO_DIGITAL_CLEAR:         {needs: needsOpen, size: 4, set: setOption(pcanfd.OptIODigitalClr)},
		PCAN_IO_ANALOG_VALUE:          {needs: needsOpen, get: getOption(pcanfd.OptIOAnalogVal, 4)},
	}
}

// getValue reads a parameter into buf. buf is only modified on success.
func (c *Core) getValue(handle TPCANHandle, param TPCANParameter, buf []byte) TPCANStatus {
	entry, ok := paramTable[param]
	if !ok || entry.get == nil {
		return PCAN_ERROR_ILLPARAMTYPE
	}
	ch := c.getChannel(handle, entry.needs == needsOpen)
	if entry.needs == needsOpen && ch == nil {
		return PCAN_ERROR_INITIALIZE
	}

	status, value := entry.get(c, handle, ch)
	if status != PCAN_ERROR_OK {
		return status
	}
	if len(buf) < len(value) {
		return PCAN_ERROR_ILLPARAMVAL
	}
	for i := range buf {
		buf[i] = 0
	}
	copy(buf, value)
	return PCAN_ERROR_OK
}

// setValue writes a parameter from buf, truncated or zero padded to the size of the parameter.
func (c *Core) setValue(handle TPCANHandle, param TPCANParameter, buf []byte) TPCANStatus {
	entry, ok := paramTable[param]
	if !ok || entry.set == nil {
		return PCAN_ERROR_ILLPARAMTYPE
	}
	if len(buf) == 0 {
		return PCAN_ERROR_ILLPARAMVAL
	}
	ch := c.getChannel(handle, entry.needs == needsOpen)
	if entry.needs == needsOpen && ch == nil {
		return PCAN_ERROR_INITIALIZE
	}

	value := buf
	if entry.size > 0 {
		value = make([]byte, entry.size)
		copy(value, buf)
	}
	return entry.set(c, handle, ch, value)
}

func u8(v uint8) []byte {
	return []byte{v}
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// cString returns the text of a zero terminated buffer
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func isSwitch(v byte) bool {
	return v == byte(PCAN_PARAMETER_OFF) || v == byte(PCAN_PARAMETER_ON)
}

func unknownParam(*Core, TPCANHandle, *channel, []byte) TPCANStatus {
	return PCAN_ERROR_UNKNOWN
}

func illegalOperation(*Core, TPCANHandle, *channel, []byte) TPCANStatus {
	return PCAN_ERROR_ILLOPERATION
}

func noDriver(*Core, TPCANHandle, *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_NODRIVER, nil
}

func getAPIVersion(*Core, TPCANHandle, *channel) (TPCANStatus, []byte) {
	v := fmt.Sprintf("%d.%d.%d.%d", API_VERSION_MAJOR, API_VERSION_MINOR, API_VERSION_PATCH, API_VERSION_BUILD)
	return PCAN_ERROR_OK, []byte(v)
}

// switchField selects the ON/OFF setting of a channel matching a parameter
func switchField(ch *channel, param TPCANParameter) *uint8 {
	switch param {
	case PCAN_LISTEN_ONLY:
		return &ch.listenOnly
	case PCAN_RECEIVE_STATUS:
		return &ch.rcvStatus
	}
	return &ch.bitrateAdapting
}

func getSwitch(param TPCANParameter) func(*Core, TPCANHandle, *channel) (TPCANStatus, []byte) {
	return func(c *Core, handle TPCANHandle, ch *channel) (TPCANStatus, []byte) {
		if ch == nil {
			ch = c.createChannel(handle, false)
		}
		return PCAN_ERROR_OK, u8(*switchField(ch, param))
	}
}

// setSwitch stores a setting, creating a pre-initialized channel when the handle has none. A
// change of the listen-only mode of an initialized channel resets it.
func setSwitch(param TPCANParameter) func(*Core, TPCANHandle, *channel, []byte) TPCANStatus {
	return func(c *Core, handle TPCANHandle, ch *channel, value []byte) TPCANStatus {
		if !isSwitch(value[0]) {
			return PCAN_ERROR_ILLPARAMVAL
		}
		if ch == nil {
			ch = c.createChannel(handle, true)
		}
		*switchField(ch, param) = value[0]
		if param == PCAN_LISTEN_ONLY && ch.isOpen() {
			return c.resetChannel(ch)
		}
		return PCAN_ERROR_OK
	}
}

func getLogLocation(c *Core, _ TPCANHandle, _ *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, []byte(c.log.Location())
}

func setLogLocation(c *Core, handle TPCANHandle, _ *channel, value []byte) TPCANStatus {
	if handle != PCAN_NONEBUS {
		return PCAN_ERROR_ILLCLIENT
	}
	c.log.SetLocation(cString(value))
	return PCAN_ERROR_OK
}

func getLogStatus(c *Core, _ TPCANHandle, _ *channel) (TPCANStatus, []byte) {
	if c.log.Status() {
		return PCAN_ERROR_OK, u32(uint32(PCAN_PARAMETER_ON))
	}
	return PCAN_ERROR_OK, u32(uint32(PCAN_PARAMETER_OFF))
}

func setLogStatus(c *Core, handle TPCANHandle, _ *channel, value []byte) TPCANStatus {
	if handle != PCAN_NONEBUS {
		return PCAN_ERROR_ILLCLIENT
	}
	v := binary.LittleEndian.Uint32(value)
	if v > uint32(PCAN_PARAMETER_ON) {
		return PCAN_ERROR_ILLPARAMVAL
	}
	c.log.SetStatus(v == uint32(PCAN_PARAMETER_ON))
	return PCAN_ERROR_OK
}

func getLogConfigure(c *Core, _ TPCANHandle, _ *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u32(c.log.Config())
}

func setLogConfigure(c *Core, handle TPCANHandle, _ *channel, value []byte) TPCANStatus {
	if handle != PCAN_NONEBUS {
		return PCAN_ERROR_ILLCLIENT
	}
	c.log.SetConfig(binary.LittleEndian.Uint32(value))
	return PCAN_ERROR_OK
}

func setLogText(c *Core, handle TPCANHandle, _ *channel, value []byte) TPCANStatus {
	if handle != PCAN_NONEBUS {
		return PCAN_ERROR_ILLCLIENT
	}
	c.log.Write(cString(value))
	return PCAN_ERROR_OK
}

// condition tells whether a handle can be initialized. A channel that is only
// pre-initialized is looked up in the directory, another process may own it.
func (c *Core) condition(handle TPCANHandle) TPCANCHannelCondition {
	if ch := c.getChannel(handle, true); ch != nil {
		return CHANNEL_OCCUPIED
	}
	info, ok := c.dir.findDevice(handle, PCAN_DEFAULT_HW_TYPE, PCAN_DEFAULT_IO_PORT, PCAN_DEFAULT_INTERRUPT)
	if !ok {
		return CHANNEL_UNAVAILABLE
	}
	if info.BusState != 0 {
		return CHANNEL_OCCUPIED
	}
	return CHANNEL_AVAILABLE
}

// features returns the FEATURE_* capabilities of a handle.
func (c *Core) features(handle TPCANHandle) TPCANParameterValue {
	ch := c.getChannel(handle, true)
	var info pcaninfo.Info
	if ch != nil {
		info = ch.info
	} else {
		found, ok := c.dir.findDevice(handle, PCAN_DEFAULT_HW_TYPE, PCAN_DEFAULT_IO_PORT, PCAN_DEFAULT_INTERRUPT)
		if !ok {
			return 0
		}
		info = found
	}

	var value TPCANParameterValue
	if info.Has(pcaninfo.FlagDataBitrate) {
		value |= FEATURE_FD_CAPABLE
	}
	if ch != nil {
		if _, err := pcanfd.GetOptionUint32(ch.dev, pcanfd.OptIFrameDelayUs); err == nil {
			value |= FEATURE_DELAY_CAPABLE
		}
	}
	return value
}

func getCondition(c *Core, handle TPCANHandle, _ *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u32(uint32(c.condition(handle)))
}

func getFeatures(c *Core, handle TPCANHandle, _ *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u32(uint32(c.features(handle)))
}

func getAttachedCount(c *Core, _ TPCANHandle, _ *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u32(uint32(len(c.dir.attachedDevices())))
}

// attachedChannels describes every channel reachable through a handle.
func (c *Core) attachedChannels() []TPCANChannelInformation {
	devices := c.dir.attachedDevices()
	list := make([]TPCANChannelInformation, 0, len(devices))
	for _, d := range devices {
		ci := TPCANChannelInformation{
			Channel:          d.handle,
			DeviceType:       TPCANDevice(d.info.Category),
			ControllerNumber: uint8(d.info.CtrlrNumber),
			DeviceFeatures:   uint32(c.features(d.handle)),
			DeviceID:         d.info.DevID,
			ChannelCondition: c.condition(d.handle),
		}
		copy(ci.DeviceName[:MAX_LENGTH_HARDWARE_NAME-1], d.info.Type)
		list = append(list, ci)
	}
	return list
}

func getAttached(c *Core, _ TPCANHandle, _ *channel) (TPCANStatus, []byte) {
	list := c.attachedChannels()
	buf := make([]byte, len(list)*channelInformationSize)
	for i := range list {
		list[i].marshal(buf[i*channelInformationSize:])
	}
	return PCAN_ERROR_OK, buf
}

func getDeviceNumber(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	id, err := pcanfd.GetDeviceID(ch.dev)
	if err != nil {
		return errnoStatus(err, ctxNone), nil
	}
	return PCAN_ERROR_OK, u32(id)
}

func setDeviceNumber(_ *Core, _ TPCANHandle, ch *channel, value []byte) TPCANStatus {
	if err := pcanfd.SetDeviceID(ch.dev, binary.LittleEndian.Uint32(value)); err != nil {
		return errnoStatus(err, ctxNone)
	}
	return PCAN_ERROR_OK
}

func getReceiveEvent(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u32(uint32(int32(ch.dev.Fd())))
}

func getMessageFilter(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u8(uint8(filterState(ch.dev)))
}

func setMessageFilter(_ *Core, _ TPCANHandle, ch *channel, value []byte) TPCANStatus {
	v := TPCANParameterValue(value[0])
	if v != PCAN_FILTER_CLOSE && v != PCAN_FILTER_OPEN {
		return PCAN_ERROR_ILLPARAMVAL
	}
	if err := ch.dev.DelFilters(); err != nil {
		return errnoStatus(err, ctxNone)
	}
	if v == PCAN_FILTER_CLOSE {
		// an empty range blocks every identifier
		if err := ch.dev.AddFilter(pcanfd.Filter{IDFrom: 1, IDTo: 0}); err != nil {
			return errnoStatus(err, ctxNone)
		}
	}
	return PCAN_ERROR_OK
}

func getChannelVersion(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	var st pcanfd.State
	if err := ch.dev.GetState(&st); err != nil {
		return PCAN_ERROR_UNKNOWN, nil
	}
	return PCAN_ERROR_OK, []byte(fmt.Sprintf("%d.%d.%d", st.VerMajor, st.VerMinor, st.VerSubminor))
}

func getBusoffReset(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u8(ch.busoffReset)
}

func setBusoffReset(_ *Core, _ TPCANHandle, ch *channel, value []byte) TPCANStatus {
	if !isSwitch(value[0]) {
		return PCAN_ERROR_ILLPARAMVAL
	}
	ch.busoffReset = value[0]
	return PCAN_ERROR_OK
}

func getHardwareName(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	name := ch.info.Type
	if len(name) > MAX_LENGTH_HARDWARE_NAME-1 {
		name = name[:MAX_LENGTH_HARDWARE_NAME-1]
	}
	return PCAN_ERROR_OK, []byte(name)
}

func getControllerNumber(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	var st pcanfd.State
	if err := ch.dev.GetState(&st); err != nil {
		return errnoStatus(err, ctxNone), nil
	}
	return PCAN_ERROR_OK, u16(st.ChannelNumber)
}

// openTrace starts the trace of a channel, its header describes the configured bit rate.
func (c *Core) openTrace(ch *channel) TPCANStatus {
	bitrate := string(ch.bitrateFD)
	if !ch.isFD() {
		bitrate = pcaninfo.BitrateString(&ch.info)
		if bitrate == "" {
			bitrate = fmt.Sprintf("BTR0BTR1: 0x%04X", uint16(ch.btr0btr1))
		}
	}
	if err := ch.tracer.Open(HandleName(ch.handle), bitrate); err != nil {
		return PCAN_ERROR_ILLOPERATION
	}
	return PCAN_ERROR_OK
}

func getTraceLocation(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, []byte(ch.tracer.Directory)
}

func setTraceLocation(c *Core, _ TPCANHandle, ch *channel, value []byte) TPCANStatus {
	dir := cString(value)
	if dir == "" {
		dir = c.traceLocation
	}
	ch.tracer.Directory = dir
	if ch.tracer.Status() {
		return c.openTrace(ch)
	}
	return PCAN_ERROR_OK
}

func getTraceStatus(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	if ch.tracer.Status() {
		return PCAN_ERROR_OK, u16(uint16(PCAN_PARAMETER_ON))
	}
	return PCAN_ERROR_OK, u16(uint16(PCAN_PARAMETER_OFF))
}

func setTraceStatus(c *Core, _ TPCANHandle, ch *channel, value []byte) TPCANStatus {
	if binary.LittleEndian.Uint16(value) == uint16(PCAN_PARAMETER_ON) {
		return c.openTrace(ch)
	}
	if err := ch.tracer.Close(); err != nil {
		clog.Warning("pcan: failed to close trace of channel 0x%02X: %s", ch.handle, err)
	}
	return PCAN_ERROR_OK
}

func getTraceSize(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u16(ch.tracer.MaxSize)
}

func setTraceSize(_ *Core, _ TPCANHandle, ch *channel, value []byte) TPCANStatus {
	if ch.tracer.Status() {
		return PCAN_ERROR_ILLOPERATION
	}
	ch.tracer.MaxSize = binary.LittleEndian.Uint16(value)
	return PCAN_ERROR_OK
}

func getTraceConfigure(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u32(ch.tracer.Flags)
}

func setTraceConfigure(_ *Core, _ TPCANHandle, ch *channel, value []byte) TPCANStatus {
	if ch.tracer.Status() {
		return PCAN_ERROR_ILLOPERATION
	}
	ch.tracer.Flags = binary.LittleEndian.Uint32(value)
	return PCAN_ERROR_OK
}

func getBitrateInfo(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, u16(uint16(ch.info.BTR0BTR1))
}

func getBitrateInfoFD(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, []byte(ch.bitrateFD)
}

func getBusSpeed(data bool) func(*Core, TPCANHandle, *channel) (TPCANStatus, []byte) {
	return func(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
		if data {
			return PCAN_ERROR_OK, u32(ch.info.DataBitrate)
		}
		return PCAN_ERROR_OK, u32(ch.info.NomBitrate)
	}
}

func getAllowed(bit uint32) func(*Core, TPCANHandle, *channel) (TPCANStatus, []byte) {
	return func(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
		allowed, err := pcanfd.GetOptionUint32(ch.dev, pcanfd.OptAllowedMsgs)
		if err != nil {
			return errnoStatus(err, ctxNone), nil
		}
		if allowed&bit != 0 {
			return PCAN_ERROR_OK, u8(uint8(PCAN_PARAMETER_ON))
		}
		return PCAN_ERROR_OK, u8(uint8(PCAN_PARAMETER_OFF))
	}
}

func setAllowed(bit uint32) func(*Core, TPCANHandle, *channel, []byte) TPCANStatus {
	return func(_ *Core, _ TPCANHandle, ch *channel, value []byte) TPCANStatus {
		if !isSwitch(value[0]) {
			return PCAN_ERROR_ILLPARAMVAL
		}
		allowed, err := pcanfd.GetOptionUint32(ch.dev, pcanfd.OptAllowedMsgs)
		if err != nil {
			return errnoStatus(err, ctxNone)
		}
		if value[0] == byte(PCAN_PARAMETER_ON) {
			allowed |= bit
		} else {
			allowed &^= bit
		}
		if err := pcanfd.SetOptionUint32(ch.dev, pcanfd.OptAllowedMsgs, allowed); err != nil {
			return errnoStatus(err, ctxNone)
		}
		return PCAN_ERROR_OK
	}
}

// getOption reads a raw device option of size bytes
func getOption(name pcanfd.Option, size int) func(*Core, TPCANHandle, *channel) (TPCANStatus, []byte) {
	return func(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
		buf := make([]byte, size)
		if _, err := ch.dev.GetOption(name, buf); err != nil {
			return errnoStatus(err, ctxNone), nil
		}
		return PCAN_ERROR_OK, buf
	}
}

func setOption(name pcanfd.Option) func(*Core, TPCANHandle, *channel, []byte) TPCANStatus {
	return func(_ *Core, _ TPCANHandle, ch *channel, value []byte) TPCANStatus {
		if err := ch.dev.SetOption(name, value); err != nil {
			return errnoStatus(err, ctxNone)
		}
		return PCAN_ERROR_OK
	}
}

func getFirmwareVersion(_ *Core, _ TPCANHandle, ch *channel) (TPCANStatus, []byte) {
	return PCAN_ERROR_OK, []byte(ch.info.AdapterVersion)
}
