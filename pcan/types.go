package pcan

import (
	"bytes"
	"encoding/binary"
)

// Represents a PCAN message
type TPCANMsg struct {
	ID      TPCANMsgID                    // 11/29-bit message identifier
	MsgType TPCANMessageType              // Type of the message
	DLC     uint8                         // Data Length Code of the message (0..8)
	Data    [LENGTH_DATA_CAN_MESSAGE]byte // Data of the message (DATA[0]..DATA[7])
}

// Represents a timestamp of a received PCAN message
// Total Microseconds = micros + (1000ULL * millis) + (0x100000000ULL * 1000ULL * millis_overflow)
type TPCANTimestamp struct {
	Millis         uint32 // Base-value: milliseconds: 0.. 2^32-1
	MillisOverflow uint16 // Roll-arounds of millis
	Micros         uint16 // Microseconds: 0..999
}

// Microseconds returns the total amount of microseconds of the timestamp
func (t TPCANTimestamp) Microseconds() uint64 {
	return uint64(t.Micros) + 1000*uint64(t.Millis) + 0x100000000*1000*uint64(t.MillisOverflow)
}

// Represents a PCAN message from a FD capable hardware
type TPCANMsgFD struct {
	ID      TPCANMsgID                      // 11/29-bit message identifier
	MsgType TPCANMessageType                // Type of the message
	DLC     uint8                           // Data Length Code of the message (0..15)
	Data    [LENGTH_DATA_CANFD_MESSAGE]byte // Data of the message (DATA[0]..DATA[63])
}

// Describes an available PCAN channel
type TPCANChannelInformation struct {
	Channel          TPCANHandle                    // PCAN channel handle
	DeviceType       TPCANDevice                    // Kind of PCAN device
	ControllerNumber uint8                          // CAN-Controller number
	DeviceFeatures   uint32                         // Device capabilities flag (see FEATURE_*)
	DeviceName       [MAX_LENGTH_HARDWARE_NAME]byte // Device name
	DeviceID         uint32                         // Device number
	ChannelCondition TPCANCHannelCondition          // Availability status of a PCAN-Channel
}

// size of one TPCANChannelInformation record in a PCAN_ATTACHED_CHANNELS buffer
const channelInformationSize = 52

// Returns the device name without its terminating zeros
func (ci *TPCANChannelInformation) Name() string {
	if i := bytes.IndexByte(ci.DeviceName[:], 0); i >= 0 {
		return string(ci.DeviceName[:i])
	}
	return string(ci.DeviceName[:])
}

// encodes the record with the PCANBasic.h layout (packed little endian, name padded to 4 bytes)
func (ci *TPCANChannelInformation) marshal(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:], uint16(ci.Channel))
	buf[2] = byte(ci.DeviceType)
	buf[3] = ci.ControllerNumber
	binary.LittleEndian.PutUint32(buf[4:], ci.DeviceFeatures)
	copy(buf[8:8+MAX_LENGTH_HARDWARE_NAME], ci.DeviceName[:])
	binary.LittleEndian.PutUint32(buf[44:], ci.DeviceID)
	binary.LittleEndian.PutUint32(buf[48:], uint32(ci.ChannelCondition))
}

func (ci *TPCANChannelInformation) unmarshal(buf []byte) {
	ci.Channel = TPCANHandle(binary.LittleEndian.Uint16(buf[0:]))
	ci.DeviceType = TPCANDevice(buf[2])
	ci.ControllerNumber = buf[3]
	ci.DeviceFeatures = binary.LittleEndian.Uint32(buf[4:])
	copy(ci.DeviceName[:], buf[8:8+MAX_LENGTH_HARDWARE_NAME])
	ci.DeviceID = binary.LittleEndian.Uint32(buf[44:])
	ci.ChannelCondition = TPCANCHannelCondition(binary.LittleEndian.Uint32(buf[48:]))
}
