package pcan

import (
	"strings"
)

/* Package level PCAN-Basic calls, forwarded to the default context returned by Default(). The
returned error is nil when the status is PCAN_ERROR_OK or PCAN_ERROR_QRCVEMPTY, a *StatusError
otherwise. */

func apiErr(status TPCANStatus) error {
	if status == PCAN_ERROR_QRCVEMPTY {
		return nil
	}
	return statusErr(status)
}

// API call to initializes a basic plugNplay PCAN Channel
// handle: The handle of a PCAN Channel
// baudRate: The speed for the communication (BTR0BTR1 code)
func APIInitializeBasic(handle TPCANHandle, baudRate TPCANBaudrate) (TPCANStatus, error) {
	return APIInitialize(handle, baudRate, PCAN_DEFAULT_HW_TYPE, PCAN_DEFAULT_IO_PORT, PCAN_DEFAULT_INTERRUPT)
}

// API call to initializes a advanced PCAN Channel
// handle: The handle of a PCAN Channel
// baudRate: The speed for the communication (BTR0BTR1 code)
// hwType: Non-PnP: The type of hardware and operation mode
// ioPort: Non-PnP: The I/O address for the parallel port
// interrupt: Non-PnP: Interrupt number of the parallel port
func APIInitialize(handle TPCANHandle, baudRate TPCANBaudrate, hwType TPCANType, ioPort uint32, interrupt uint16) (TPCANStatus, error) {
	status := Default().Initialize(handle, baudRate, hwType, ioPort, interrupt)
	return status, apiErr(status)
}

// API call to initializes a FD capable PCAN Channel
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
func APIInitializeFD(handle TPCANHandle, bitRateFD TPCANBitrateFD) (TPCANStatus, error) {
	status := Default().InitializeFD(handle, bitRateFD)
	return status, apiErr(status)
}

// API call to uninitializes PCAN Channels initialized by CAN_Initialize
func APIUninitialize(handle TPCANHandle) (TPCANStatus, error) {
	status := Default().Uninitialize(handle)
	return status, apiErr(status)
}

// API call to reset the receive and transmit queues of the PCAN Channel
func APIReset(handle TPCANHandle) (TPCANStatus, error) {
	status := Default().Reset(handle)
	return status, apiErr(status)
}

// API call to get the current status of a PCAN Channel
func APIGetStatus(handle TPCANHandle) (TPCANStatus, error) {
	status := Default().GetStatus(handle)
	return status, apiErr(status)
}

// API call to read a CAN message from the receive queue of a PCAN Channel
func APIRead(handle TPCANHandle) (TPCANStatus, TPCANMsg, TPCANTimestamp, error) {
	status, msg, timestamp := Default().Read(handle)
	return status, msg, timestamp, apiErr(status)
}

// API call to read a CAN message from the receive queue of a FD capable PCAN Channel
func APIReadFD(handle TPCANHandle) (TPCANStatus, TPCANMsgFD, TPCANTimestampFD, error) {
	status, msg, timestamp := Default().ReadFD(handle)
	return status, msg, timestamp, apiErr(status)
}

// API call to transmits a CAN message
// msg: A Message struct with the message to be sent
func APIWrite(handle TPCANHandle, msg *TPCANMsg) (TPCANStatus, error) {
	status := Default().Write(handle, msg)
	return status, apiErr(status)
}

// API call to transmit a CAN message over a FD capable PCAN Channel
// msg: A MessageFD struct with the message to be sent
func APIWriteFD(handle TPCANHandle, msg *TPCANMsgFD) (TPCANStatus, error) {
	status := Default().WriteFD(handle, msg)
	return status, apiErr(status)
}

// API call to retrieve a PCAN Channel value
// param: The TPCANParameter parameter to get
// buffer: receives the value, it is left untouched on failure
// Note: Parameters can be present or not according with the kind of Hardware (PCAN Channel) being used.
// If a parameter is not available, a PCAN_ERROR_ILLPARAMTYPE error will be returned
func APIGetValue(handle TPCANHandle, param TPCANParameter, buffer []byte) (TPCANStatus, error) {
	status := Default().GetValue(handle, param, buffer)
	return status, apiErr(status)
}

// API call to configure a PCAN Channel value.
// handle: The handle of a PCAN Channel
// param: The TPCANParameter parameter to set
// buffer: Value of parameter
// Note: Parameters can be present or not according with the kind of Hardware (PCAN Channel) being used.
// If a parameter is not available, a PCAN_ERROR_ILLPARAMTYPE error will be returned
func APISetValue(handle TPCANHandle, param TPCANParameter, buffer []byte) (TPCANStatus, error) {
	status := Default().SetValue(handle, param, buffer)
	return status, apiErr(status)
}

// API call to configure the reception filter
// fromID: The lowest CAN ID to be received
// toID: The highest CAN ID to be received
// mode: Message type, Standard (11-bit identifier) or Extended (29-bit identifier)
func APISetFilter(handle TPCANHandle, fromID TPCANMsgID, toID TPCANMsgID, mode TPCANMode) (TPCANStatus, error) {
	status := Default().FilterMessages(handle, fromID, toID, mode)
	return status, apiErr(status)
}

// API call to return a descriptive text of a given TPCANStatus error code, in any desired language
// status: A TPCANStatus error code
// language: Indicates a 'Primary language ID'
func APIGetErrorText(status TPCANStatus, language TPCANLanguage) (TPCANStatus, string, error) {
	result, text := Default().GetErrorText(status, language)
	return result, text, apiErr(result)
}

// API call to find a PCAN-Basic Channel that matches with the given parameters
// Empty parameters are not used for the search.
func APILookUpChannel(deviceType string, deviceID string, controllerNumber string, ipAddress string) (TPCANStatus, TPCANHandle, error) {
	status, handle := Default().LookUpChannel(lookupString(deviceType, deviceID, controllerNumber, ipAddress))
	return status, handle, apiErr(status)
}

// lookupString merges the search parameters into the "name=value, ..." form of LookUpChannel
func lookupString(deviceType string, deviceID string, controllerNumber string, ipAddress string) string {
	var pairs []string
	add := func(key, value string) {
		if value != "" {
			pairs = append(pairs, key+"="+value)
		}
	}
	add(LOOKUP_DEVICE_TYPE, deviceType)
	add(LOOKUP_DEVICE_ID, deviceID)
	add(LOOKUP_CONTROLLER_NUMBER, controllerNumber)
	add(LOOKUP_IP_ADDRESS, ipAddress)
	return strings.Join(pairs, ", ")
}
