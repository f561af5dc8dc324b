package pcan

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/morgadow/gopcanbasic/pcanfd"
	"github.com/omzlo/clog"
)

// context of a transport call, changes the meaning of EAGAIN
type callContext int

const (
	ctxNone callContext = iota
	ctxRead
	ctxWrite
)

// errnoStatus translates an error of the transport into a PCAN status.
func errnoStatus(err error, ctx callContext) TPCANStatus {
	if err == nil {
		return PCAN_ERROR_OK
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		clog.Warning("pcan: unhandled error '%s'", err)
		return PCAN_ERROR_UNKNOWN
	}

	switch errno {
	case syscall.EAGAIN:
		switch ctx {
		case ctxRead:
			return PCAN_ERROR_QRCVEMPTY
		case ctxWrite:
			return PCAN_ERROR_QXMTFULL
		}
		return PCAN_ERROR_CAUTION
	case syscall.EBADF:
		return PCAN_ERROR_ILLHW
	case syscall.ENETDOWN:
		return PCAN_ERROR_BUSOFF
	case syscall.EBADMSG, syscall.EINVAL:
		return PCAN_ERROR_ILLPARAMVAL
	case syscall.EOPNOTSUPP:
		return PCAN_ERROR_ILLOPERATION
	}
	clog.Warning("pcan: unhandled errno (%d / 0x%x)", int(errno), int(errno))
	return PCAN_ERROR_UNKNOWN
}

// busStateStatus converts the bus state of a device into the status returned by GetStatus.
func busStateStatus(state uint32) TPCANStatus {
	switch state {
	case pcanfd.ErrorWarning:
		return PCAN_ERROR_BUSLIGHT
	case pcanfd.ErrorPassive:
		return PCAN_ERROR_BUSHEAVY
	case pcanfd.ErrorBusOff:
		return PCAN_ERROR_BUSOFF
	}
	return PCAN_ERROR_OK
}

// statusPayload is the status code reported in the data of a PCAN_MESSAGE_STATUS message.
func statusPayload(id uint32) TPCANStatus {
	switch id {
	case pcanfd.ErrorActive:
		return PCAN_ERROR_OK
	case pcanfd.ErrorWarning:
		return PCAN_ERROR_BUSLIGHT
	case pcanfd.ErrorPassive:
		return PCAN_ERROR_BUSHEAVY
	case pcanfd.ErrorBusOff:
		return PCAN_ERROR_BUSOFF
	case pcanfd.RxEmpty:
		return PCAN_ERROR_QRCVEMPTY
	case pcanfd.RxOverflow:
		return PCAN_ERROR_OVERRUN
	case pcanfd.TxOverflow:
		return PCAN_ERROR_QXMTFULL
	}
	return PCAN_ERROR_RESOURCE
}

// StatusError is a PCAN status other than PCAN_ERROR_OK reported as a Go error.
type StatusError struct {
	Status TPCANStatus
	Text   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pcan: %s (0x%x)", e.Text, uint32(e.Status))
}

// Is matches another *StatusError with the same status.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	return ok && t.Status == e.Status
}

// statusErr returns nil for PCAN_ERROR_OK, a *StatusError otherwise
func statusErr(status TPCANStatus) error {
	if status == PCAN_ERROR_OK {
		return nil
	}
	_, text := errorText(status, LANG_ENGLISH)
	return &StatusError{Status: status, Text: text}
}
