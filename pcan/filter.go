package pcan

import (
	"github.com/morgadow/gopcanbasic/pcanfd"
)

// classifyFilters tells whether a filter list lets everything (open), nothing (close) or only
// some identifiers (custom) through. The driver accepts a message when any filter matches, an
// empty list accepts all.
func classifyFilters(filters []pcanfd.Filter) TPCANParameterValue {
	if len(filters) == 0 {
		return PCAN_FILTER_OPEN
	}
	closed := true
	for _, f := range filters {
		if f.IDFrom == 0 {
			last := pcanfd.MaxStdID
			if f.MsgFlags&pcanfd.MsgExt != 0 {
				last = pcanfd.MaxExtID
			}
			if f.IDTo == last {
				return PCAN_FILTER_OPEN
			}
		}
		if f.IDFrom <= f.IDTo {
			closed = false
		}
	}
	if closed {
		return PCAN_FILTER_CLOSE
	}
	return PCAN_FILTER_CUSTOM
}

// filterState reads the installed filters of a device and classifies them.
func filterState(dev pcanfd.Device) TPCANParameterValue {
	filters, err := dev.GetFilters()
	if err != nil {
		return PCAN_FILTER_CLOSE
	}
	return classifyFilters(filters)
}

// rangeFilter builds the filter installed by FilterMessages. The bounds are kept as given, a
// range with from > to matches nothing.
func rangeFilter(from, to TPCANMsgID, mode TPCANMode) pcanfd.Filter {
	f := pcanfd.Filter{IDFrom: uint32(from), IDTo: uint32(to), MsgFlags: pcanfd.MsgStd}
	if mode == PCAN_MODE_EXTENDED {
		f.MsgFlags = pcanfd.MsgExt
	}
	return f
}
