package pcan

import (
	"encoding/binary"
	"time"

	"github.com/morgadow/gopcanbasic/pcanfd"
	"github.com/morgadow/gopcanbasic/pcbtrace"
	"github.com/morgadow/gopcanbasic/pcblog"
	"github.com/omzlo/clog"
)

/* Conversion of the messages exchanged with the driver into PCAN-Basic messages and back. */

// readCommon receives one message of an open channel together with its reception time.
func (c *Core) readCommon(ch *channel) (TPCANStatus, TPCANMsgFD, time.Time) {
	var out TPCANMsgFD
	var m pcanfd.Msg

	if err := ch.dev.RecvMsg(&m); err != nil {
		return errnoStatus(err, ctxRead), out, time.Time{}
	}
	if ch.rcvStatus == uint8(PCAN_PARAMETER_OFF) {
		return PCAN_ERROR_QRCVEMPTY, out, time.Time{}
	}

	n := int(m.DataLen)
	if n > LENGTH_DATA_CANFD_MESSAGE {
		clog.Warning("pcan: received malformed CAN message (data_len=%d)", n)
		n = LENGTH_DATA_CANFD_MESSAGE
	}
	out.ID = TPCANMsgID(m.ID)
	out.DLC = lenToDLC(n)

	switch m.Type {
	case pcanfd.TypeCANFD:
		out.MsgType |= PCAN_MESSAGE_FD
		fallthrough
	case pcanfd.TypeCAN20:
		copy(out.Data[:], m.Data[:n])
		if m.Flags&pcanfd.MsgExt != 0 {
			out.MsgType |= PCAN_MESSAGE_EXTENDED
		}
		if m.Flags&pcanfd.MsgRTR != 0 {
			out.MsgType |= PCAN_MESSAGE_RTR
		}
		if m.Flags&pcanfd.MsgBRS != 0 {
			out.MsgType |= PCAN_MESSAGE_BRS
		}
		if m.Flags&pcanfd.MsgESI != 0 {
			out.MsgType |= PCAN_MESSAGE_ESI
		}
		if m.Flags&(pcanfd.MsgEcho|pcanfd.MsgSelf) != 0 {
			out.MsgType |= PCAN_MESSAGE_ECHO
		}

	case pcanfd.TypeStatus:
		if ch.busoffReset == uint8(PCAN_PARAMETER_ON) && m.Flags&pcanfd.ErrorBus != 0 && m.ID == pcanfd.ErrorBusOff {
			c.autoReset(ch)
			return PCAN_ERROR_BUSOFF, TPCANMsgFD{}, time.Time{}
		}
		out.MsgType = PCAN_MESSAGE_STATUS
		out.DLC = 4
		binary.BigEndian.PutUint32(out.Data[0:4], uint32(statusPayload(m.ID)))

	case pcanfd.TypeError:
		out.ID = TPCANMsgID(1) << m.ID
		out.MsgType = PCAN_MESSAGE_ERRFRAME
		if m.Flags&pcanfd.ErrMsgRx != 0 {
			out.Data[0] = 1
		}
		out.Data[1] = m.Data[0]
		out.Data[2] = m.CtrlrData[0]
		out.Data[3] = m.CtrlrData[1]
	}

	ts := m.Timestamp
	if ts.IsZero() {
		ts = c.now()
	}
	clog.DebugXX("pcan: read message ID=0x%04x TYPE=0x%02x FLAGS=0x%02x", m.ID, m.Type, m.Flags)
	c.traceMsg(ch, &out, ts, true)
	c.logMsg(ch, &out, pcblog.FunctionRead)
	return PCAN_ERROR_OK, out, ts
}

// writeCommon sends a message over an open channel.
func (c *Core) writeCommon(ch *channel, msg *TPCANMsgFD) TPCANStatus {
	n := dlcToLen(msg.DLC)
	m := pcanfd.Msg{ID: uint32(msg.ID), DataLen: uint16(n), Type: pcanfd.TypeCAN20, Flags: pcanfd.MsgStd}
	copy(m.Data[:n], msg.Data[:n])

	if msg.MsgType&PCAN_MESSAGE_FD != 0 {
		m.Type = pcanfd.TypeCANFD
	}
	if msg.MsgType&PCAN_MESSAGE_EXTENDED != 0 {
		m.Flags = pcanfd.MsgExt
	}
	if msg.MsgType&PCAN_MESSAGE_RTR != 0 {
		m.Flags |= pcanfd.MsgRTR
	}
	if msg.MsgType&PCAN_MESSAGE_BRS != 0 {
		m.Flags |= pcanfd.MsgBRS
	}

	clog.DebugXX("pcan: writing message ID=0x%04x TYPE=0x%02x FLAGS=0x%02x", m.ID, m.Type, m.Flags)
	if err := ch.dev.SendMsg(&m); err != nil {
		status := errnoStatus(err, ctxWrite)
		if status == PCAN_ERROR_BUSOFF && ch.busoffReset == uint8(PCAN_PARAMETER_ON) {
			c.autoReset(ch)
		}
		return status
	}
	c.traceMsg(ch, msg, c.now(), false)
	c.logMsg(ch, msg, pcblog.FunctionWrite)
	return PCAN_ERROR_OK
}

// autoReset restarts a channel that went bus off. Its result only shows in the diagnostic log.
func (c *Core) autoReset(ch *channel) {
	status := c.resetChannel(ch)
	if status != PCAN_ERROR_OK {
		clog.Warning("pcan: automatic reset of channel 0x%02X after bus off failed (0x%x)", ch.handle, uint32(status))
	} else {
		clog.Info("pcan: channel 0x%02X reset after bus off", ch.handle)
	}
	if ch.tracer.Status() {
		ch.tracer.Comment("bus off: channel reset")
	}
}

func (c *Core) traceMsg(ch *channel, msg *TPCANMsgFD, ts time.Time, rx bool) {
	if !ch.tracer.Status() {
		return
	}
	rec := pcbtrace.Record{
		ID:     uint32(msg.ID),
		Ext:    msg.MsgType&PCAN_MESSAGE_EXTENDED != 0,
		RTR:    msg.MsgType&PCAN_MESSAGE_RTR != 0,
		FD:     msg.MsgType&PCAN_MESSAGE_FD != 0,
		BRS:    msg.MsgType&PCAN_MESSAGE_BRS != 0,
		ESI:    msg.MsgType&PCAN_MESSAGE_ESI != 0,
		Status: msg.MsgType&PCAN_MESSAGE_STATUS != 0,
		Error:  msg.MsgType&PCAN_MESSAGE_ERRFRAME != 0,
		Data:   msg.Data[:dlcToLen(msg.DLC)],
		Time:   ts,
		Rx:     rx,
	}
	if err := ch.tracer.WriteMsg(rec); err != nil {
		clog.Warning("pcan: failed to trace message of channel 0x%02X: %s", ch.handle, err)
	}
}

func (c *Core) logMsg(ch *channel, msg *TPCANMsgFD, direction uint32) {
	var data [LENGTH_DATA_CAN_MESSAGE]byte
	copy(data[:], msg.Data[:])
	c.log.WriteCANMsg(uint16(ch.handle), direction, uint32(msg.ID), uint8(dlcToLen(msg.DLC)), data)
}

// classicTimestamp splits the time of a message into the fields of a TPCANTimestamp.
func classicTimestamp(t time.Time) TPCANTimestamp {
	usec := uint64(t.Nanosecond() / 1000)
	millis := uint64(t.Unix())*1000 + usec/1000

	ts := TPCANTimestamp{Millis: uint32(millis), Micros: uint16(usec % 1000)}
	ts.MillisOverflow = uint16((millis - uint64(ts.Millis)) >> 32)
	return ts
}

// fdTimestamp is the time of a message in microseconds.
func fdTimestamp(t time.Time) TPCANTimestampFD {
	return TPCANTimestampFD(uint64(t.Unix())*1000000 + uint64(t.Nanosecond()/1000))
}

// toClassic keeps the first 8 bytes of a message read by readCommon.
func toClassic(msg *TPCANMsgFD) TPCANMsg {
	out := TPCANMsg{ID: msg.ID, MsgType: msg.MsgType, DLC: msg.DLC}
	copy(out.Data[:], msg.Data[:LENGTH_DATA_CAN_MESSAGE])
	return out
}

// toFD widens a classic message.
func toFD(msg *TPCANMsg) TPCANMsgFD {
	out := TPCANMsgFD{ID: msg.ID, MsgType: msg.MsgType, DLC: msg.DLC}
	copy(out.Data[:], msg.Data[:])
	return out
}
