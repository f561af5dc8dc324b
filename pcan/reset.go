package pcan

import (
	"time"

	"github.com/avast/retry-go"
	"github.com/morgadow/gopcanbasic/pcanfd"
	"github.com/omzlo/clog"
)

const resetRetryDelay = 10 * time.Millisecond

// resetChannel closes and reopens the device of a channel, which flushes its queues, and
// restores the bus configuration. On failure the channel may be left closed.
func (c *Core) resetChannel(ch *channel) TPCANStatus {
	var init pcanfd.Init
	if err := ch.dev.GetInit(&init); err != nil {
		clog.Debug("pcan: failed to read configuration of channel 0x%02X: %s", ch.handle, err)
	}
	if ch.listenOnly == uint8(PCAN_PARAMETER_ON) {
		init.Flags |= pcanfd.InitListenOnly
	} else {
		init.Flags &^= pcanfd.InitListenOnly
	}

	if err := ch.dev.Close(); err != nil {
		clog.Debug("pcan: closing channel 0x%02X for reset: %s", ch.handle, err)
	}
	ch.dev = nil

	var dev pcanfd.Device
	err := retry.Do(func() error {
		d, err := c.opener.Open(ch.info.Path, nil, pcanfd.OpenNonBlocking)
		if err != nil {
			return err
		}
		dev = d
		return nil
	},
		retry.Attempts(c.resetAttempts),
		retry.Delay(resetRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.OnRetry(func(n uint, err error) {
			clog.DebugX("pcan: reopening '%s' (attempt %d): %s", ch.info.Path, n+1, err)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		clog.Warning("pcan: failed to reopen '%s': %s", ch.info.Path, err)
		return PCAN_ERROR_ILLOPERATION
	}
	ch.dev = dev

	if err := dev.SetInit(&init); err != nil {
		clog.Warning("pcan: failed to restore configuration of '%s': %s", ch.info.Path, err)
		return PCAN_ERROR_ILLOPERATION
	}
	return PCAN_ERROR_OK
}
