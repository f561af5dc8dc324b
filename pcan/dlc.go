package pcan

var dlcLengths = [16]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 20, 24, 32, 48, 64}

// dlcToLen returns the payload length of a data length code; codes above 15 only use their
// low nibble.
func dlcToLen(dlc uint8) int {
	return dlcLengths[dlc&0x0F]
}

// lenToDLC returns the smallest code whose payload holds n bytes.
func lenToDLC(n int) uint8 {
	switch {
	case n <= 8:
		if n < 0 {
			return 0
		}
		return uint8(n)
	case n <= 12:
		return 9
	case n <= 16:
		return 10
	case n <= 20:
		return 11
	case n <= 24:
		return 12
	case n <= 32:
		return 13
	case n <= 48:
		return 14
	}
	return 15
}

// Len returns the number of data bytes of the message.
func (m *TPCANMsgFD) Len() int {
	return dlcToLen(m.DLC)
}
