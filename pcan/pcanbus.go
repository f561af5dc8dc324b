package pcan

import (
	"encoding/binary"
	"fmt"
	"time"
)

/* Object oriented access to a channel. A bus is created by one of the Initialize functions and
forwards every call to the context it was created on. */

// PCAN Bus interface
type TPCANBus struct {
	Handle    TPCANHandle
	Baudrate  TPCANBaudrate // only set if not a FD channel
	HWType    TPCANType     // only for non plug´n´play devices
	IOPort    uint32        // only for non plug´n´play devices
	Interrupt uint16        // only for non plug´n´play devices
	core      *Core
}

// PCAN Bus interface for CANFD channels
type TPCANBusFD struct {
	Handle    TPCANHandle
	BitrateFD TPCANBitrateFD // only set if a FD channel
	core      *Core
}

// interval between two reads of ReadWithTimeout when the channel has no receive event
const readPollInterval = 250 * time.Microsecond

// Initializes a basic plugNplay PCAN Channel
// handle: The handle of a PCAN Channel
// baudRate: The speed for the communication (BTR0BTR1 code)
func InitializeBasic(handle TPCANHandle, baudRate TPCANBaudrate) (TPCANStatus, *TPCANBus, error) {
	return Default().NewBus(handle, baudRate, PCAN_DEFAULT_HW_TYPE, PCAN_DEFAULT_IO_PORT, PCAN_DEFAULT_INTERRUPT)
}

// Initializes a advanced PCAN Channel
// handle: The handle of a PCAN Channel
// baudRate: The speed for the communication (BTR0BTR1 code)
// hwType: Non-PnP: The type of hardware and operation mode
// ioPort: Non-PnP: The I/O address for the parallel port
// interrupt: Non-PnP: Interrupt number of the parallel port
func Initialize(handle TPCANHandle, baudRate TPCANBaudrate, hwType TPCANType, ioPort uint32, interrupt uint16) (TPCANStatus, *TPCANBus, error) {
	return Default().NewBus(handle, baudRate, hwType, ioPort, interrupt)
}

// Initializes a FD capable PCAN Channel
// handle: The handle of a PCAN Channel
// bitRateFD: The speed for the communication (FD bit rate string)
// Note:
// Bit rate string must follow the following construction rules:
//   - parameter and values must be separated by '='
//   - Couples of Parameter/value must be separated by ','
//   - Following Parameter must be filled out: f_clock, data_brp, data_sjw, data_tseg1, data_tseg2,
//     nom_brp, nom_sjw, nom_tseg1, nom_tseg2.
//   - Following Parameters are optional (not used yet): data_ssp_offset, nom_sam
//   - Example: f_clock=80000000,nom_brp=10,nom_tseg1=5,nom_tseg2=2,nom_sjw=1,data_brp=4,data_tseg1=7,data_tseg2=2,data_sjw=1
func InitializeFD(handle TPCANHandle, bitRateFD TPCANBitrateFD) (TPCANStatus, *TPCANBusFD, error) {
	return Default().NewBusFD(handle, bitRateFD)
}

// NewBus initializes a channel of the context and returns its bus. PCAN_ERROR_CAUTION still
// returns a usable bus.
func (c *Core) NewBus(handle TPCANHandle, baudRate TPCANBaudrate, hwType TPCANType, ioPort uint32, interrupt uint16) (TPCANStatus, *TPCANBus, error) {
	status := c.Initialize(handle, baudRate, hwType, ioPort, interrupt)
	if status != PCAN_ERROR_OK && status != PCAN_ERROR_CAUTION {
		return status, nil, statusErr(status)
	}

	bus := TPCANBus{
		Handle:    handle,
		Baudrate:  baudRate,
		HWType:    hwType,
		IOPort:    ioPort,
		Interrupt: interrupt,
		core:      c}

	return status, &bus, nil
}

// NewBusFD initializes a FD channel of the context and returns its bus.
func (c *Core) NewBusFD(handle TPCANHandle, bitRateFD TPCANBitrateFD) (TPCANStatus, *TPCANBusFD, error) {
	status := c.InitializeFD(handle, bitRateFD)
	if status != PCAN_ERROR_OK && status != PCAN_ERROR_CAUTION {
		return status, nil, statusErr(status)
	}
	return status, &TPCANBusFD{Handle: handle, BitrateFD: bitRateFD, core: c}, nil
}

func (p *TPCANBus) ctx() *Core {
	if p.core == nil {
		return Default()
	}
	return p.core
}

// Uninitializes the PCAN Channel
func (p *TPCANBus) Uninitialize() (TPCANStatus, error) {
	status := p.ctx().Uninitialize(p.Handle)
	return status, apiErr(status)
}

// Resets the receive and transmit queues of the PCAN Channel
func (p *TPCANBus) Reset() (TPCANStatus, error) {
	status := p.ctx().Reset(p.Handle)
	return status, apiErr(status)
}

// Gets the current status of a PCAN Channel
func (p *TPCANBus) GetStatus() (TPCANStatus, error) {
	status := p.ctx().GetStatus(p.Handle)
	return status, apiErr(status)
}

// Reads a CAN message from the receive queue of a PCAN Channel
// Note: Does return nil if receive buffer is empty
func (p *TPCANBus) Read() (TPCANStatus, *TPCANMsg, *TPCANTimestamp, error) {
	status, msg, timestamp := p.ctx().Read(p.Handle)
	if status != PCAN_ERROR_OK {
		return status, nil, nil, apiErr(status)
	}
	return status, &msg, &timestamp, nil
}

// Reads a CAN message from the receive queue of a PCAN Channel with an timeout and only returns a valid messsage
// Note: Does return nil if receive buffer is empty or no message is read during timeout
// timeout: Timeout for receiving message from CAN bus in milliseconds (if set below zero, no timeout is set)
func (p *TPCANBus) ReadWithTimeout(timeout int) (TPCANStatus, *TPCANMsg, *TPCANTimestamp, error) {
	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(time.Duration(timeout) * time.Millisecond)
	}

	// the receive event lets the wait end as soon as a message arrives
	fd := -1
	if val, err := p.getValue32(PCAN_RECEIVE_EVENT); err == nil {
		fd = int(int32(val))
	}

	for {
		status, msg, timestamp, err := p.Read()
		if status != PCAN_ERROR_QRCVEMPTY {
			return status, msg, timestamp, err
		}

		wait := time.Duration(-1)
		if !deadline.IsZero() {
			wait = time.Until(deadline)
			if wait <= 0 {
				return status, nil, nil, nil
			}
		}
		if fd < 0 || !waitReceive(fd, wait) {
			if wait < 0 || wait > readPollInterval {
				wait = readPollInterval
			}
			time.Sleep(wait)
		}
	}
}

// Reads from device buffer until it has no more messages stored with an optional message limit
// If limit is set to zero, no limit will will be used
func (p *TPCANBus) ReadFullBuffer(limit int) ([]TPCANMsg, []TPCANTimestamp, error) {
	var msgs []TPCANMsg
	var timestamps []TPCANTimestamp

	// read until buffer empty is returned
	for {
		status, msg, timestamp, err := p.Read()
		if status == PCAN_ERROR_QRCVEMPTY {
			return msgs, timestamps, nil
		}
		if err != nil {
			return msgs, timestamps, err
		}
		msgs = append(msgs, *msg)
		timestamps = append(timestamps, *timestamp)
		if limit != 0 && len(msgs) >= limit {
			return msgs, timestamps, nil
		}
	}
}

// Transmits a CAN message
// msg: A Message struct with the message to be sent
func (p *TPCANBus) Write(msg *TPCANMsg) (TPCANStatus, error) {
	status := p.ctx().Write(p.Handle, msg)
	return status, apiErr(status)
}

// Configures the reception filter. The first filter of a channel closes it for every other
// message, further calls widen it.
// fromID: The lowest CAN ID to be received
// toID: The highest CAN ID to be received
// mode: Message type, Standard (11-bit identifier) or Extended (29-bit identifier)
func (p *TPCANBus) SetFilter(fromID TPCANMsgID, toID TPCANMsgID, mode TPCANMode) (TPCANStatus, error) {
	status, state, err := p.GetParameter(PCAN_MESSAGE_FILTER)
	if status != PCAN_ERROR_OK {
		return status, err
	}
	if state == PCAN_FILTER_OPEN {
		if status, err := p.SetParameter(PCAN_MESSAGE_FILTER, PCAN_FILTER_CLOSE); status != PCAN_ERROR_OK {
			return status, err
		}
	}
	status = p.ctx().FilterMessages(p.Handle, fromID, toID, mode)
	return status, apiErr(status)
}

// Resets message filter set by SetFilter() function
func (p *TPCANBus) ResetFilter() (TPCANStatus, error) {
	return p.SetParameter(PCAN_MESSAGE_FILTER, PCAN_FILTER_OPEN)
}

// Retrieves a PCAN Channel value using a defined parameter value type
// param: The TPCANParameter parameter to get
// Note: Parameters can be present or not according with the kind of Hardware (PCAN Channel) being used.
// If a parameter is not available, a PCAN_ERROR_ILLPARAMTYPE error will be returned
func (p *TPCANBus) GetParameter(param TPCANParameter) (TPCANStatus, TPCANParameterValue, error) {
	var buf [4]byte
	status, err := p.GetValue(param, buf[:])
	return status, TPCANParameterValue(binary.LittleEndian.Uint32(buf[:])), err
}

// Configures a PCAN Channel value using a defined parameter value type
// param: The TPCANParameter parameter to set
// value: Value of parameter
// Note: Parameters can be present or not according with the kind of Hardware (PCAN Channel) being used.
// If a parameter is not available, a PCAN_ERROR_ILLPARAMTYPE error will be returned
func (p *TPCANBus) SetParameter(param TPCANParameter, val TPCANParameterValue) (TPCANStatus, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(val))
	return p.SetValue(param, buf[:])
}

func (p *TPCANBus) getValue32(param TPCANParameter) (uint32, error) {
	status, val, err := p.GetParameter(param)
	if status != PCAN_ERROR_OK {
		return 0, statusErr(status)
	}
	return uint32(val), err
}

// Retrieves a PCAN Channel value
// param: The TPCANParameter parameter to get
// buffer: receives the value, it must be large enough for it
// Note: Parameters can be present or not according with the kind of Hardware (PCAN Channel) being used.
// If a parameter is not available, a PCAN_ERROR_ILLPARAMTYPE error will be returned
func (p *TPCANBus) GetValue(param TPCANParameter, buffer []byte) (TPCANStatus, error) {
	status := p.ctx().GetValue(p.Handle, param, buffer)
	return status, apiErr(status)
}

// Configures a PCAN Channel value.
// param: The TPCANParameter parameter to set
// buffer: Value of parameter
// Note: Parameters can be present or not according with the kind of Hardware (PCAN Channel) being used.
// If a parameter is not available, a PCAN_ERROR_ILLPARAMTYPE error will be returned
func (p *TPCANBus) SetValue(param TPCANParameter, buffer []byte) (TPCANStatus, error) {
	status := p.ctx().SetValue(p.Handle, param, buffer)
	return status, apiErr(status)
}

func onOff(on bool) TPCANParameterValue {
	if on {
		return PCAN_PARAMETER_ON
	}
	return PCAN_PARAMETER_OFF
}

// Allows or forbids receiving of status frames
// allowStatusFrames: Allows status frames if set to true
func (p *TPCANBus) SetAllowStatusFrames(allowStatusFrames bool) (TPCANStatus, error) {
	return p.SetParameter(PCAN_ALLOW_STATUS_FRAMES, onOff(allowStatusFrames))
}

// Allows or forbids receiving of remote transmission request frames frames
// allowRTRFrames: Allows remote transmission request frames if set to true
func (p *TPCANBus) SetAllowRTRFrames(allowRTRFrames bool) (TPCANStatus, error) {
	return p.SetParameter(PCAN_ALLOW_RTR_FRAMES, onOff(allowRTRFrames))
}

// Allows or forbids receiving of error frames
// allowErrorFrames: Allows error frames if set to true
func (p *TPCANBus) SetAllowErrorFrames(allowErrorFrames bool) (TPCANStatus, error) {
	return p.SetParameter(PCAN_ALLOW_ERROR_FRAMES, onOff(allowErrorFrames))
}

// Allows or forbids receiving of echo frames
// allowEchoFrames: Allows echo frames if set to true
func (p *TPCANBus) SetAllowEchoFrames(allowEchoFrames bool) (TPCANStatus, error) {
	return p.SetParameter(PCAN_ALLOW_ECHO_FRAMES, onOff(allowEchoFrames))
}

// Turn on or off flashing of the device's LED for physical identification purposes
// Note: not supported by the driver, PCAN_ERROR_UNKNOWN is returned
func (p *TPCANBus) SetLEDState(ledState bool) (TPCANStatus, error) {
	return p.SetParameter(PCAN_CHANNEL_IDENTIFYING, onOff(ledState))
}

// Returns the channel condition as a level for availablity
func (p *TPCANBus) GetChannelCondition() (TPCANStatus, TPCANCHannelCondition, error) {
	state, val, err := p.GetParameter(PCAN_CHANNEL_CONDITION)
	return state, TPCANCHannelCondition(val), err
}

// Starts recording a trace on given path with a max file size in MB
// maxFileSize: trace file is splitted in files with this maximum size of file in MB; set to zero to have a single file of the default size (max is 100 MB)
// Note: A trace file only gets filled if the Read() and Write() functions are called!
func (p *TPCANBus) StartTrace(filePath string, maxFileSize uint32) (TPCANStatus, error) {
	if maxFileSize > MAX_TRACE_FILE_SIZE_ACCEPTED {
		return PCAN_ERROR_ILLPARAMVAL, fmt.Errorf("maximum size of a trace file is %v MB", MAX_TRACE_FILE_SIZE_ACCEPTED)
	}

	// configure trace configuration (only file size is set, the other options are always used)
	cfg := TRACE_FILE_DATE | TRACE_FILE_TIME | TRACE_FILE_OVERWRITE
	if maxFileSize > 0 {
		cfg |= TRACE_FILE_SEGMENTED
	} else {
		cfg |= TRACE_FILE_SINGLE
	}
	state, err := p.SetParameter(PCAN_TRACE_CONFIGURE, cfg)
	if err != nil || state != PCAN_ERROR_OK {
		return state, err
	}
	if maxFileSize > 0 {
		state, err := p.SetParameter(PCAN_TRACE_SIZE, TPCANParameterValue(maxFileSize))
		if err != nil || state != PCAN_ERROR_OK {
			return state, err
		}
	}

	// configure trace file path
	if len(filePath) >= MAX_LENGHT_STRING_BUFFER {
		return PCAN_ERROR_ILLPARAMVAL, fmt.Errorf("filepath exceeds max length of %v", MAX_LENGHT_STRING_BUFFER)
	}
	if filePath != "" {
		state, err = p.SetValue(PCAN_TRACE_LOCATION, []byte(filePath))
		if err != nil || state != PCAN_ERROR_OK {
			return state, err
		}
	}

	// start tracing
	return p.SetParameter(PCAN_TRACE_STATUS, PCAN_PARAMETER_ON)
}

// Stops recording currently running trace
func (p *TPCANBus) StopTrace() (TPCANStatus, error) {
	return p.SetParameter(PCAN_TRACE_STATUS, PCAN_PARAMETER_OFF)
}

func (p *TPCANBusFD) ctx() *Core {
	if p.core == nil {
		return Default()
	}
	return p.core
}

// Bus returns the channel of a FD bus for the calls shared with classic channels (filters, parameters, status...).
func (p *TPCANBusFD) Bus() *TPCANBus {
	return &TPCANBus{Handle: p.Handle, core: p.core}
}

// Uninitializes the PCAN Channel
func (p *TPCANBusFD) Uninitialize() (TPCANStatus, error) {
	return p.Bus().Uninitialize()
}

// Reads a CAN message from the receive queue of a FD capable PCAN Channel
// Note: Does return nil if receive buffer is empty
func (p *TPCANBusFD) ReadFD() (TPCANStatus, *TPCANMsgFD, *TPCANTimestampFD, error) {
	status, msg, timestamp := p.ctx().ReadFD(p.Handle)
	if status != PCAN_ERROR_OK {
		return status, nil, nil, apiErr(status)
	}
	return status, &msg, &timestamp, nil
}

// Transmits a CAN message over a FD capable PCAN Channel
// msg: A MessageFD struct with the message to be sent
func (p *TPCANBusFD) WriteFD(msg *TPCANMsgFD) (TPCANStatus, error) {
	status := p.ctx().WriteFD(p.Handle, msg)
	return status, apiErr(status)
}

// Uninitializes all PCAN Channels initialized by CAN_Initialize
func ShutdownAllHandles() (TPCANStatus, error) {
	return APIUninitialize(PCAN_NONEBUS)
}

// Gets the amount of PCAN channels attached to the system
func AttachedChannelsCount() (TPCANStatus, uint32, error) {
	var buf [4]byte
	status, err := APIGetValue(PCAN_NONEBUS, PCAN_ATTACHED_CHANNELS_COUNT, buf[:])
	return status, binary.LittleEndian.Uint32(buf[:]), err
}

// Returns list of all existing PCAN channels on a system in a single call, regardless of their current availability
func AttachedChannels() ([]TPCANHandle, error) {
	posChannels := [...]TPCANHandle{PCAN_USBBUS1, PCAN_USBBUS2, PCAN_USBBUS3, PCAN_USBBUS4,
		PCAN_USBBUS5, PCAN_USBBUS6, PCAN_USBBUS7, PCAN_USBBUS8,
		PCAN_USBBUS9, PCAN_USBBUS10, PCAN_USBBUS11, PCAN_USBBUS12,
		PCAN_USBBUS13, PCAN_USBBUS14, PCAN_USBBUS15, PCAN_USBBUS16}
	attachedChannels := []TPCANHandle{}

	// iterate through channels and check for every channel if available
	for i := range posChannels {
		bus := TPCANBus{Handle: posChannels[i]}
		state, cond, err := bus.GetChannelCondition()
		if state != PCAN_ERROR_OK || err != nil {
			return nil, err
		}
		if cond == CHANNEL_AVAILABLE || cond == CHANNEL_OCCUPIED || cond == CHANNEL_PCANVIEW {
			attachedChannels = append(attachedChannels, posChannels[i])
		}
	}

	return attachedChannels, nil
}

// Returns the description of every PCAN channel attached to the system, regardless of its current availability
func AttachedChannels_Extended() ([]TPCANChannelInformation, error) {
	status, count, err := AttachedChannelsCount()
	if err != nil || status != PCAN_ERROR_OK || count == 0 {
		return nil, err
	}

	buf := make([]byte, int(count)*channelInformationSize)
	status, err = APIGetValue(PCAN_NONEBUS, PCAN_ATTACHED_CHANNELS, buf)
	if err != nil {
		// a device appeared between both calls
		return nil, err
	}

	list := make([]TPCANChannelInformation, count)
	for i := range list {
		list[i].unmarshal(buf[i*channelInformationSize:])
	}
	return list, nil
}

// Returns a descriptive text of a given TPCANStatus error code, in any desired language
// status: A TPCANStatus error code
// language: Indicates a 'Primary language ID'
func GetErrorText(status TPCANStatus, language TPCANLanguage) (TPCANStatus, string, error) {
	return APIGetErrorText(status, language)
}

// Finds a PCAN-Basic Channel that matches with the given parameters, empty parameters are ignored
func LookUpChannel(deviceType string, deviceID string, controllerNumber string, ipAddress string) (TPCANStatus, TPCANHandle, error) {
	return APILookUpChannel(deviceType, deviceID, controllerNumber, ipAddress)
}
