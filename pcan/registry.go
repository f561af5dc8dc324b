package pcan

import (
	"errors"
	"time"

	"github.com/avast/retry-go"
	"github.com/morgadow/gopcanbasic/pcaninfo"
	"github.com/morgadow/gopcanbasic/pcanfd"
	"github.com/morgadow/gopcanbasic/pcbtrace"
	"github.com/omzlo/clog"
)

const closePollInterval = 5 * time.Millisecond

var errTxPending = errors.New("pcan: transmit queue not empty")

// channel is the state kept for a handle. A channel without device is pre-initialized: it
// only stores settings for the next Initialize.
type channel struct {
	handle    TPCANHandle
	btr0btr1  TPCANBaudrate
	bitrateFD TPCANBitrateFD
	dev       pcanfd.Device
	openFlags pcanfd.OpenFlag

	bitrateAdapting uint8
	busoffReset     uint8
	listenOnly      uint8
	rcvStatus       uint8

	info   pcaninfo.Info
	tracer *pcbtrace.Tracer
}

func (ch *channel) isOpen() bool {
	return ch.dev != nil
}

func (ch *channel) isFD() bool {
	return ch.bitrateFD != ""
}

// getChannel returns the channel of a handle, nil when unknown or when open is requested and
// the channel is only pre-initialized.
func (c *Core) getChannel(handle TPCANHandle, open bool) *channel {
	ch, ok := c.channels[handle]
	if !ok || (open && !ch.isOpen()) {
		return nil
	}
	return ch
}

// createChannel builds the state of a handle with the default settings, register adds it to
// the registry right away.
func (c *Core) createChannel(handle TPCANHandle, register bool) *channel {
	tracer := pcbtrace.New()
	tracer.Directory = c.traceLocation
	tracer.MaxSize = c.traceMaxSize

	ch := &channel{
		handle:          handle,
		bitrateAdapting: uint8(PCAN_PARAMETER_OFF),
		busoffReset:     uint8(PCAN_PARAMETER_OFF),
		listenOnly:      uint8(PCAN_PARAMETER_OFF),
		rcvStatus:       uint8(PCAN_PARAMETER_ON),
		tracer:          tracer,
	}
	if register {
		c.channels[handle] = ch
	}
	return ch
}

// removeChannel drops a channel from the registry and releases it.
func (c *Core) removeChannel(ch *channel) {
	if c.channels[ch.handle] == ch {
		delete(c.channels, ch.handle)
	}
	c.releaseChannel(ch)
}

func (c *Core) releaseChannel(ch *channel) {
	c.closeDevice(ch)
	if err := ch.tracer.Close(); err != nil {
		clog.Warning("pcan: failed to close trace of channel 0x%02X: %s", ch.handle, err)
	}
	ch.info = pcaninfo.Info{}
}

// closeDevice closes the device of a channel, giving pending transmissions some time to leave.
func (c *Core) closeDevice(ch *channel) {
	if ch.dev == nil {
		return
	}
	if c.closeGrace > 0 {
		attempts := uint(c.closeGrace / closePollInterval)
		if attempts == 0 {
			attempts = 1
		}
		err := retry.Do(func() error {
			var st pcanfd.State
			if err := ch.dev.GetState(&st); err != nil {
				return err
			}
			if st.TxPendingMsgs > 0 {
				return errTxPending
			}
			return nil
		},
			retry.Attempts(attempts),
			retry.Delay(closePollInterval),
			retry.DelayType(retry.FixedDelay),
			retry.RetryIf(func(err error) bool { return errors.Is(err, errTxPending) }),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			clog.Debug("pcan: closing channel 0x%02X: %s", ch.handle, err)
		}
	}
	if err := ch.dev.Close(); err != nil {
		clog.Warning("pcan: failed to close channel 0x%02X: %s", ch.handle, err)
	}
	ch.dev = nil
}

// uninitializeAll releases every channel, calling it twice is harmless.
func (c *Core) uninitializeAll() {
	for handle, ch := range c.channels {
		delete(c.channels, handle)
		c.releaseChannel(ch)
	}
}
