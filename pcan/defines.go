package pcan

/* PCAN-Basic vocabulary: handles, status codes, parameters and values. */

type TPCANHandle uint16
type TPCANStatus uint32
type TPCANParameter uint8
type TPCANParameterValue uint32
type TPCANDevice uint8
type TPCANMessageType uint8
type TPCANType uint8
type TPCANMode uint8
type TPCANBaudrate uint16
type TPCANLanguage uint16
type TPCANMsgID uint32
type TPCANCHannelCondition uint32
type TPCANBitrateFD string
type TPCANTimestampFD uint64

// API version reported by PCAN_API_VERSION
const (
	API_VERSION_MAJOR = 4
	API_VERSION_MINOR = 6
	API_VERSION_PATCH = 2
	API_VERSION_BUILD = 0
)

// Currently defined and supported PCAN channels
const (
	PCAN_NONEBUS TPCANHandle = 0x00 // Undefined/default value for a PCAN bus

	PCAN_ISABUS1 TPCANHandle = 0x21 // PCAN-ISA interface, channel 1
	PCAN_ISABUS2 TPCANHandle = 0x22
	PCAN_ISABUS3 TPCANHandle = 0x23
	PCAN_ISABUS4 TPCANHandle = 0x24
	PCAN_ISABUS5 TPCANHandle = 0x25
	PCAN_ISABUS6 TPCANHandle = 0x26
	PCAN_ISABUS7 TPCANHandle = 0x27
	PCAN_ISABUS8 TPCANHandle = 0x28

	PCAN_DNGBUS1 TPCANHandle = 0x31 // PCAN-Dongle/LPT interface, channel 1

	PCAN_PCIBUS1  TPCANHandle = 0x41 // PCAN-PCI interface, channel 1
	PCAN_PCIBUS2  TPCANHandle = 0x42
	PCAN_PCIBUS3  TPCANHandle = 0x43
	PCAN_PCIBUS4  TPCANHandle = 0x44
	PCAN_PCIBUS5  TPCANHandle = 0x45
	PCAN_PCIBUS6  TPCANHandle = 0x46
	PCAN_PCIBUS7  TPCANHandle = 0x47
	PCAN_PCIBUS8  TPCANHandle = 0x48
	PCAN_PCIBUS9  TPCANHandle = 0x409
	PCAN_PCIBUS10 TPCANHandle = 0x40A
	PCAN_PCIBUS11 TPCANHandle = 0x40B
	PCAN_PCIBUS12 TPCANHandle = 0x40C
	PCAN_PCIBUS13 TPCANHandle = 0x40D
	PCAN_PCIBUS14 TPCANHandle = 0x40E
	PCAN_PCIBUS15 TPCANHandle = 0x40F
	PCAN_PCIBUS16 TPCANHandle = 0x410

	PCAN_USBBUS1  TPCANHandle = 0x51 // PCAN-USB interface, channel 1
	PCAN_USBBUS2  TPCANHandle = 0x52
	PCAN_USBBUS3  TPCANHandle = 0x53
	PCAN_USBBUS4  TPCANHandle = 0x54
	PCAN_USBBUS5  TPCANHandle = 0x55
	PCAN_USBBUS6  TPCANHandle = 0x56
	PCAN_USBBUS7  TPCANHandle = 0x57
	PCAN_USBBUS8  TPCANHandle = 0x58
	PCAN_USBBUS9  TPCANHandle = 0x509
	PCAN_USBBUS10 TPCANHandle = 0x50A
	PCAN_USBBUS11 TPCANHandle = 0x50B
	PCAN_USBBUS12 TPCANHandle = 0x50C
	PCAN_USBBUS13 TPCANHandle = 0x50D
	PCAN_USBBUS14 TPCANHandle = 0x50E
	PCAN_USBBUS15 TPCANHandle = 0x50F
	PCAN_USBBUS16 TPCANHandle = 0x510

	PCAN_PCCBUS1 TPCANHandle = 0x61 // PCAN-PC Card interface, channel 1
	PCAN_PCCBUS2 TPCANHandle = 0x62

	PCAN_LANBUS1  TPCANHandle = 0x801 // PCAN-LAN interface, channel 1
	PCAN_LANBUS2  TPCANHandle = 0x802
	PCAN_LANBUS3  TPCANHandle = 0x803
	PCAN_LANBUS4  TPCANHandle = 0x804
	PCAN_LANBUS5  TPCANHandle = 0x805
	PCAN_LANBUS6  TPCANHandle = 0x806
	PCAN_LANBUS7  TPCANHandle = 0x807
	PCAN_LANBUS8  TPCANHandle = 0x808
	PCAN_LANBUS9  TPCANHandle = 0x809
	PCAN_LANBUS10 TPCANHandle = 0x80A
	PCAN_LANBUS11 TPCANHandle = 0x80B
	PCAN_LANBUS12 TPCANHandle = 0x80C
	PCAN_LANBUS13 TPCANHandle = 0x80D
	PCAN_LANBUS14 TPCANHandle = 0x80E
	PCAN_LANBUS15 TPCANHandle = 0x80F
	PCAN_LANBUS16 TPCANHandle = 0x810
)

// Represent the PCAN error and status codes
const (
	PCAN_ERROR_OK           TPCANStatus = 0x00000 // No error
	PCAN_ERROR_XMTFULL      TPCANStatus = 0x00001 // Transmit buffer in CAN controller is full
	PCAN_ERROR_OVERRUN      TPCANStatus = 0x00002 // CAN controller was read too late
	PCAN_ERROR_BUSLIGHT     TPCANStatus = 0x00004 // Bus error: an error counter reached the 'light' limit
	PCAN_ERROR_BUSHEAVY     TPCANStatus = 0x00008 // Bus error: an error counter reached the 'heavy' limit
	PCAN_ERROR_BUSWARNING   TPCANStatus = PCAN_ERROR_BUSHEAVY
	PCAN_ERROR_BUSPASSIVE   TPCANStatus = 0x40000 // Bus error: the CAN controller is error passive
	PCAN_ERROR_BUSOFF       TPCANStatus = 0x00010 // Bus error: the CAN controller is in bus-off state
	PCAN_ERROR_ANYBUSERR    TPCANStatus = PCAN_ERROR_BUSWARNING | PCAN_ERROR_BUSLIGHT | PCAN_ERROR_BUSHEAVY | PCAN_ERROR_BUSOFF | PCAN_ERROR_BUSPASSIVE
	PCAN_ERROR_QRCVEMPTY    TPCANStatus = 0x00020 // Receive queue is empty
	PCAN_ERROR_QOVERRUN     TPCANStatus = 0x00040 // Receive queue was read too late
	PCAN_ERROR_QXMTFULL     TPCANStatus = 0x00080 // Transmit queue is full
	PCAN_ERROR_REGTEST      TPCANStatus = 0x00100 // Test of the CAN controller hardware registers failed (no hardware found)
	PCAN_ERROR_NODRIVER     TPCANStatus = 0x00200 // Driver not loaded
	PCAN_ERROR_HWINUSE      TPCANStatus = 0x00400 // Hardware already in use by a Net
	PCAN_ERROR_NETINUSE     TPCANStatus = 0x00800 // A Client is already connected to the Net
	PCAN_ERROR_ILLHW        TPCANStatus = 0x01400 // Hardware handle is invalid
	PCAN_ERROR_ILLNET       TPCANStatus = 0x01800 // Net handle is invalid
	PCAN_ERROR_ILLCLIENT    TPCANStatus = 0x01C00 // Client handle is invalid
	PCAN_ERROR_ILLHANDLE    TPCANStatus = PCAN_ERROR_ILLHW | PCAN_ERROR_ILLNET | PCAN_ERROR_ILLCLIENT
	PCAN_ERROR_RESOURCE     TPCANStatus = 0x02000 // Resource (FIFO, Client, timeout) cannot be created
	PCAN_ERROR_ILLPARAMTYPE TPCANStatus = 0x04000 // Invalid parameter
	PCAN_ERROR_ILLPARAMVAL  TPCANStatus = 0x08000 // Invalid parameter value
	PCAN_ERROR_UNKNOWN      TPCANStatus = 0x10000 // Unknown error
	PCAN_ERROR_ILLDATA      TPCANStatus = 0x20000 // Invalid data, function, or action
	PCAN_ERROR_ILLMODE      TPCANStatus = 0x80000 // Driver object state is wrong for the attempted operation
	PCAN_ERROR_CAUTION      TPCANStatus = 0x2000000 // An operation was successfully carried out, however, irregularities were registered
	PCAN_ERROR_INITIALIZE   TPCANStatus = 0x4000000 // Channel is not initialized
	PCAN_ERROR_ILLOPERATION TPCANStatus = 0x8000000 // Invalid operation
)

// PCAN devices
const (
	PCAN_NONE    TPCANDevice = 0x00 // Undefined, unknown or not selected PCAN device value
	PCAN_PEAKCAN TPCANDevice = 0x01 // PCAN Non-PnP devices. NOT USED WITHIN PCAN-Basic API
	PCAN_ISA     TPCANDevice = 0x02 // PCAN-ISA, PCAN-PC/104, and PCAN-PC/104-Plus
	PCAN_DNG     TPCANDevice = 0x03 // PCAN-Dongle
	PCAN_PCI     TPCANDevice = 0x04 // PCAN-PCI, PCAN-cPCI, PCAN-miniPCI, and PCAN-PCI Express
	PCAN_USB     TPCANDevice = 0x05 // PCAN-USB and PCAN-USB Pro
	PCAN_PCC     TPCANDevice = 0x06 // PCAN-PC Card
	PCAN_VIRTUAL TPCANDevice = 0x07 // PCAN Virtual hardware. NOT USED WITHIN PCAN-Basic API
	PCAN_LAN     TPCANDevice = 0x08 // PCAN Gateway devices
)

// PCAN parameters
const (
	PCAN_DEVICE_NUMBER            TPCANParameter = 0x01 // Device identifier parameter
	PCAN_5VOLTS_POWER             TPCANParameter = 0x02 // 5-Volt power parameter
	PCAN_RECEIVE_EVENT            TPCANParameter = 0x03 // PCAN receive event handler parameter
	PCAN_MESSAGE_FILTER           TPCANParameter = 0x04 // PCAN message filter parameter
	PCAN_API_VERSION              TPCANParameter = 0x05 // PCAN-Basic API version parameter
	PCAN_CHANNEL_VERSION          TPCANParameter = 0x06 // PCAN device channel version parameter
	PCAN_BUSOFF_AUTORESET         TPCANParameter = 0x07 // PCAN Reset-On-Busoff parameter
	PCAN_LISTEN_ONLY              TPCANParameter = 0x08 // PCAN Listen-Only parameter
	PCAN_LOG_LOCATION             TPCANParameter = 0x09 // Directory path for log files
	PCAN_LOG_STATUS               TPCANParameter = 0x0A // Debug-Log activation status
	PCAN_LOG_CONFIGURE            TPCANParameter = 0x0B // Configuration of the debugged information (LOG_FUNCTION_***)
	PCAN_LOG_TEXT                 TPCANParameter = 0x0C // Custom insertion of text into the log file
	PCAN_CHANNEL_CONDITION        TPCANParameter = 0x0D // Availability status of a PCAN-Channel
	PCAN_HARDWARE_NAME            TPCANParameter = 0x0E // PCAN hardware name parameter
	PCAN_RECEIVE_STATUS           TPCANParameter = 0x0F // Message reception status of a PCAN-Channel
	PCAN_CONTROLLER_NUMBER        TPCANParameter = 0x10 // CAN-Controller number of a PCAN-Channel
	PCAN_TRACE_LOCATION           TPCANParameter = 0x11 // Directory path for PCAN trace files
	PCAN_TRACE_STATUS             TPCANParameter = 0x12 // CAN tracing activation status
	PCAN_TRACE_SIZE               TPCANParameter = 0x13 // Configuration of the maximum file size of a CAN trace
	PCAN_TRACE_CONFIGURE          TPCANParameter = 0x14 // Configuration of the trace file storing mode (TRACE_FILE_***)
	PCAN_CHANNEL_IDENTIFYING      TPCANParameter = 0x15 // Physical identification of a USB based PCAN-Channel by blinking its associated LED
	PCAN_CHANNEL_FEATURES         TPCANParameter = 0x16 // Capabilities of a PCAN device (FEATURE_***)
	PCAN_BITRATE_ADAPTING         TPCANParameter = 0x17 // Using of an existing bit rate (PCAN-View connected to a channel)
	PCAN_BITRATE_INFO             TPCANParameter = 0x18 // Configured bit rate as Btr0Btr1 value
	PCAN_BITRATE_INFO_FD          TPCANParameter = 0x19 // Configured bit rate as TPCANBitrateFD string
	PCAN_BUSSPEED_NOMINAL         TPCANParameter = 0x1A // Configured nominal CAN Bus speed as Bits per seconds
	PCAN_BUSSPEED_DATA            TPCANParameter = 0x1B // Configured CAN data speed as Bits per seconds
	PCAN_IP_ADDRESS               TPCANParameter = 0x1C // Remote address of a LAN channel as string in IPv4 format
	PCAN_LAN_SERVICE_STATUS       TPCANParameter = 0x1D // Status of the Virtual PCAN-Gateway Service
	PCAN_ALLOW_STATUS_FRAMES      TPCANParameter = 0x1E // Status messages reception status within a PCAN-Channel
	PCAN_ALLOW_RTR_FRAMES         TPCANParameter = 0x1F // RTR messages reception status within a PCAN-Channel
	PCAN_ALLOW_ERROR_FRAMES       TPCANParameter = 0x20 // Error messages reception status within a PCAN-Channel
	PCAN_INTERFRAME_DELAY         TPCANParameter = 0x21 // Delay, in microseconds, between sending frames
	PCAN_ACCEPTANCE_FILTER_11BIT  TPCANParameter = 0x22 // Filter over code and mask patterns for 11-Bit messages
	PCAN_ACCEPTANCE_FILTER_29BIT  TPCANParameter = 0x23 // Filter over code and mask patterns for 29-Bit messages
	PCAN_IO_DIGITAL_CONFIGURATION TPCANParameter = 0x24 // Output mode of 32 digital I/O pin of a PCAN-USB Chip. 1: Output-Active 0 : Output Inactive
	PCAN_IO_DIGITAL_VALUE         TPCANParameter = 0x25 // Value assigned to a 32 digital I/O pins of a PCAN-USB Chip
	PCAN_IO_DIGITAL_SET           TPCANParameter = 0x26 // Value assigned to a 32 digital I/O pins of a PCAN-USB Chip - Multiple digital I/O pins to 1 = High
	PCAN_IO_DIGITAL_CLEAR         TPCANParameter = 0x27 // Clear multiple digital I/O pins to 0
	PCAN_IO_ANALOG_VALUE          TPCANParameter = 0x28 // Get value of a single analog input pin
	PCAN_FIRMWARE_VERSION         TPCANParameter = 0x29 // Get the version of the firmware used by the device associated with a PCAN-Channel
	PCAN_ATTACHED_CHANNELS_COUNT  TPCANParameter = 0x2A // Get the amount of PCAN channels attached to a system
	PCAN_ATTACHED_CHANNELS        TPCANParameter = 0x2B // Get information about PCAN channels attached to a system
	PCAN_ALLOW_ECHO_FRAMES        TPCANParameter = 0x2C // Echo messages reception status within a PCAN-Channel
	PCAN_DEVICE_PART_NUMBER       TPCANParameter = 0x2D // Get the part number associated to a device
)

// PCAN parameter values
const (
	PCAN_PARAMETER_OFF       TPCANParameterValue = 0x00 // The PCAN parameter is not set (inactive)
	PCAN_PARAMETER_ON        TPCANParameterValue = 0x01 // The PCAN parameter is set (active)
	PCAN_FILTER_CLOSE        TPCANParameterValue = 0x00 // The PCAN filter is closed. No messages will be received
	PCAN_FILTER_OPEN         TPCANParameterValue = 0x01 // The PCAN filter is fully opened. All messages will be received
	PCAN_FILTER_CUSTOM       TPCANParameterValue = 0x02 // The PCAN filter is custom configured. Only registered messages will be received
	PCAN_CHANNEL_UNAVAILABLE TPCANParameterValue = 0x00 // The PCAN-Channel handle is illegal, or its associated hardware is not available
	PCAN_CHANNEL_AVAILABLE   TPCANParameterValue = 0x01 // The PCAN-Channel handle is available to be connected (PnP Hardware: it means furthermore that the hardware is plugged-in)
	PCAN_CHANNEL_OCCUPIED    TPCANParameterValue = 0x02 // The PCAN-Channel handle is valid, and is already being used
	PCAN_CHANNEL_PCANVIEW    TPCANParameterValue = PCAN_CHANNEL_AVAILABLE | PCAN_CHANNEL_OCCUPIED

	LOG_FUNCTION_DEFAULT    TPCANParameterValue = 0x00   // Logs system exceptions / errors
	LOG_FUNCTION_ENTRY      TPCANParameterValue = 0x01   // Logs the entries to the PCAN-Basic API functions
	LOG_FUNCTION_PARAMETERS TPCANParameterValue = 0x02   // Logs the parameters passed to the PCAN-Basic API functions
	LOG_FUNCTION_LEAVE      TPCANParameterValue = 0x04   // Logs the exits from the PCAN-Basic API functions
	LOG_FUNCTION_WRITE      TPCANParameterValue = 0x08   // Logs the CAN messages passed to the CAN_Write function
	LOG_FUNCTION_READ       TPCANParameterValue = 0x10   // Logs the CAN messages received within the CAN_Read function
	LOG_FUNCTION_ALL        TPCANParameterValue = 0xFFFF // Logs all possible information within the PCAN-Basic API functions

	TRACE_FILE_SINGLE     TPCANParameterValue = 0x00 // A single file is written until it size reaches PAN_TRACE_SIZE
	TRACE_FILE_SEGMENTED  TPCANParameterValue = 0x01 // Traced data is distributed in several files with size PAN_TRACE_SIZE
	TRACE_FILE_DATE       TPCANParameterValue = 0x02 // Includes the date into the name of the trace file
	TRACE_FILE_TIME       TPCANParameterValue = 0x04 // Includes the start time into the name of the trace file
	TRACE_FILE_OVERWRITE  TPCANParameterValue = 0x80 // Causes the overwriting of available traces (same name)
	TRACE_FILE_DATA_LENGTH TPCANParameterValue = 0x100 // Causes using the data length column ('l') instead of the DLC column ('L') in the trace file

	FEATURE_FD_CAPABLE    TPCANParameterValue = 0x01 // Device supports flexible data-rate (CAN-FD)
	FEATURE_DELAY_CAPABLE TPCANParameterValue = 0x02 // Device supports a delay between sending frames (FPGA based USB devices)
	FEATURE_IO_CAPABLE    TPCANParameterValue = 0x04 // Device supports I/O functionality for electronic circuits (USB-Chip devices)

	SERVICE_STATUS_STOPPED TPCANParameterValue = 0x01 // The service is not running
	SERVICE_STATUS_RUNNING TPCANParameterValue = 0x04 // The service is running
)

// Channel conditions
const (
	CHANNEL_UNAVAILABLE TPCANCHannelCondition = TPCANCHannelCondition(PCAN_CHANNEL_UNAVAILABLE)
	CHANNEL_AVAILABLE   TPCANCHannelCondition = TPCANCHannelCondition(PCAN_CHANNEL_AVAILABLE)
	CHANNEL_OCCUPIED    TPCANCHannelCondition = TPCANCHannelCondition(PCAN_CHANNEL_OCCUPIED)
	CHANNEL_PCANVIEW    TPCANCHannelCondition = TPCANCHannelCondition(PCAN_CHANNEL_PCANVIEW)
)

// PCAN message types
const (
	PCAN_MESSAGE_STANDARD TPCANMessageType = 0x00 // The PCAN message is a CAN Standard Frame (11-bit identifier)
	PCAN_MESSAGE_RTR      TPCANMessageType = 0x01 // The PCAN message is a CAN Remote-Transfer-Request Frame
	PCAN_MESSAGE_EXTENDED TPCANMessageType = 0x02 // The PCAN message is a CAN Extended Frame (29-bit identifier)
	PCAN_MESSAGE_FD       TPCANMessageType = 0x04 // The PCAN message represents a FD frame in terms of CiA Specs
	PCAN_MESSAGE_BRS      TPCANMessageType = 0x08 // The PCAN message represents a FD bit rate switch (CAN data at a higher bit rate)
	PCAN_MESSAGE_ESI      TPCANMessageType = 0x10 // The PCAN message represents a FD error state indicator(CAN FD transmitter was error active)
	PCAN_MESSAGE_ECHO     TPCANMessageType = 0x20 // The PCAN message represents an echo CAN Frame
	PCAN_MESSAGE_ERRFRAME TPCANMessageType = 0x40 // The PCAN message represents an error frame
	PCAN_MESSAGE_STATUS   TPCANMessageType = 0x80 // The PCAN message represents a PCAN status message
)

// Frame Type / Initialization Mode
const (
	PCAN_MODE_STANDARD TPCANMode = TPCANMode(PCAN_MESSAGE_STANDARD)
	PCAN_MODE_EXTENDED TPCANMode = TPCANMode(PCAN_MESSAGE_EXTENDED)
)

// Baud rate codes = BTR0/BTR1 register values for the CAN controller.
// You can define your own Baud rate with the BTROBTR1 register.
// Take a look at www.peak-system.com for our free software "BAUDTOOL"
// to calculate the BTROBTR1 register for every bit rate and sample point.
const (
	PCAN_BAUD_1M   TPCANBaudrate = 0x0014 //   1 MBit/s
	PCAN_BAUD_800K TPCANBaudrate = 0x0016 // 800 kBit/s
	PCAN_BAUD_500K TPCANBaudrate = 0x001C // 500 kBit/s
	PCAN_BAUD_250K TPCANBaudrate = 0x011C // 250 kBit/s
	PCAN_BAUD_125K TPCANBaudrate = 0x031C // 125 kBit/s
	PCAN_BAUD_100K TPCANBaudrate = 0x432F // 100 kBit/s
	PCAN_BAUD_95K  TPCANBaudrate = 0xC34E //  95,238 kBit/s
	PCAN_BAUD_83K  TPCANBaudrate = 0x852B //  83,333 kBit/s
	PCAN_BAUD_50K  TPCANBaudrate = 0x472F //  50 kBit/s
	PCAN_BAUD_47K  TPCANBaudrate = 0x1414 //  47,619 kBit/s
	PCAN_BAUD_33K  TPCANBaudrate = 0x8B2F //  33,333 kBit/s
	PCAN_BAUD_20K  TPCANBaudrate = 0x532F //  20 kBit/s
	PCAN_BAUD_10K  TPCANBaudrate = 0x672F //  10 kBit/s
	PCAN_BAUD_5K   TPCANBaudrate = 0x7F7F //   5 kBit/s
)

// Type of PCAN (Non-PnP) hardware
const (
	PCAN_TYPE_ISA         TPCANType = 0x01 // PCAN-ISA 82C200
	PCAN_TYPE_ISA_SJA     TPCANType = 0x09 // PCAN-ISA SJA1000
	PCAN_TYPE_ISA_PHYTEC  TPCANType = 0x04 // PHYTEC ISA
	PCAN_TYPE_DNG         TPCANType = 0x02 // PCAN-Dongle 82C200
	PCAN_TYPE_DNG_EPP     TPCANType = 0x03 // PCAN-Dongle EPP 82C200
	PCAN_TYPE_DNG_SJA     TPCANType = 0x05 // PCAN-Dongle SJA1000
	PCAN_TYPE_DNG_SJA_EPP TPCANType = 0x06 // PCAN-Dongle EPP SJA1000
)

// Default values of the Non-PnP initialization parameters
const (
	PCAN_DEFAULT_HW_TYPE   TPCANType = 0
	PCAN_DEFAULT_IO_PORT   uint32    = 0
	PCAN_DEFAULT_INTERRUPT uint16    = 0
)

// Primary language ids of GetErrorText
const (
	LANG_NEUTRAL TPCANLanguage = 0x00
	LANG_GERMAN  TPCANLanguage = 0x07
	LANG_ENGLISH TPCANLanguage = 0x09
	LANG_SPANISH TPCANLanguage = 0x0A
	LANG_FRENCH  TPCANLanguage = 0x0C
	LANG_ITALIAN TPCANLanguage = 0x10
)

// Keys of the LookUpChannel parameter string
const (
	LOOKUP_DEVICE_TYPE       = "devicetype"       // Lookup channel by Device type (see PCAN devices e.g. PCAN_USB)
	LOOKUP_DEVICE_ID         = "deviceid"         // Lookup channel by device id
	LOOKUP_CONTROLLER_NUMBER = "controllernumber" // Lookup channel by CAN controller 0-based index
	LOOKUP_IP_ADDRESS        = "ipaddress"        // Lookup channel by IP address (LAN channels only)
)

// Message and buffer sizes
const (
	LENGTH_DATA_CAN_MESSAGE      = 8
	LENGTH_DATA_CANFD_MESSAGE    = 64
	MAX_LENGTH_HARDWARE_NAME     = 33  // Maximum length of the name of a device: 32 characters + terminator
	MAX_LENGTH_VERSION_STRING    = 256 // Maximum length of a version string: 255 characters + terminator
	MAX_LENGHT_STRING_BUFFER     = 256 // Maximum length of any string exchanged with GetValue/SetValue
	MAX_TRACE_FILE_SIZE_ACCEPTED = 100 // Maximum size of a trace file in MB
)
