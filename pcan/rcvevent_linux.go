package pcan

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/omzlo/clog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const maxRcvEvents = 0x99 // number of channels a dispatcher can watch

// bytes written to the wake pipe of the worker
const (
	wakeRefresh byte = 'r'
	wakeQuit    byte = 'q'
)

type rcvEvent struct {
	handle TPCANHandle
	fd     int
}

// RcvEventDispatcher waits for the receive events of a set of channels and calls its callback
// with the handle of every channel having messages pending. The callback runs on the worker
// goroutine and is expected to empty the receive queue of the channel.
type RcvEventDispatcher struct {
	core     *Core
	callback func(TPCANHandle)

	mu      sync.Mutex
	events  [maxRcvEvents]rcvEvent
	count   int
	running bool
	wake    [2]int
	group   *errgroup.Group
}

// NewRcvEventDispatcher creates a dispatcher for the channels of a context, nil selects Default().
func NewRcvEventDispatcher(c *Core, callback func(TPCANHandle)) *RcvEventDispatcher {
	if c == nil {
		c = Default()
	}
	return &RcvEventDispatcher{core: c, callback: callback}
}

// Register adds an initialized channel to the dispatcher. The worker is started with the
// first registration.
func (d *RcvEventDispatcher) Register(handle TPCANHandle) (TPCANStatus, error) {
	var buf [4]byte
	if status := d.core.GetValue(handle, PCAN_RECEIVE_EVENT, buf[:]); status != PCAN_ERROR_OK {
		return status, statusErr(status)
	}
	fd := int(int32(binary.LittleEndian.Uint32(buf[:])))

	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexLocked(handle); i >= 0 {
		d.events[i].fd = fd
		d.signalLocked(wakeRefresh)
		return PCAN_ERROR_OK, nil
	}
	if d.count == maxRcvEvents {
		return PCAN_ERROR_RESOURCE, fmt.Errorf("pcan: no more than %d receive events can be watched", maxRcvEvents)
	}
	d.events[d.count] = rcvEvent{handle: handle, fd: fd}
	d.count++

	if d.running {
		d.signalLocked(wakeRefresh)
		return PCAN_ERROR_OK, nil
	}
	if err := d.startLocked(); err != nil {
		d.count--
		return PCAN_ERROR_RESOURCE, err
	}
	return PCAN_ERROR_OK, nil
}

// Unregister removes a channel from the dispatcher. The worker ends once no channel is left.
func (d *RcvEventDispatcher) Unregister(handle TPCANHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.removeLocked(handle) {
		d.signalLocked(wakeRefresh)
	}
}

// Registered tells if a channel is watched.
func (d *RcvEventDispatcher) Registered(handle TPCANHandle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.indexLocked(handle) >= 0
}

// Stop removes every channel and waits for the worker to end. It must not be called from the
// callback.
func (d *RcvEventDispatcher) Stop() error {
	d.mu.Lock()
	d.count = 0
	g := d.group
	if d.running {
		d.signalLocked(wakeQuit)
	}
	d.mu.Unlock()

	if g == nil {
		return nil
	}
	return g.Wait()
}

func (d *RcvEventDispatcher) indexLocked(handle TPCANHandle) int {
	for i := 0; i < d.count; i++ {
		if d.events[i].handle == handle {
			return i
		}
	}
	return -1
}

func (d *RcvEventDispatcher) removeLocked(handle TPCANHandle) bool {
	i := d.indexLocked(handle)
	if i < 0 {
		return false
	}
	copy(d.events[i:d.count], d.events[i+1:d.count])
	d.count--
	d.events[d.count] = rcvEvent{}
	return true
}

func (d *RcvEventDispatcher) signalLocked(b byte) {
	if !d.running {
		return
	}
	if _, err := unix.Write(d.wake[1], []byte{b}); err != nil && err != unix.EAGAIN {
		clog.Warning("pcan: failed to wake receive event worker: %s", err)
	}
}

func (d *RcvEventDispatcher) startLocked() error {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return fmt.Errorf("pcan: receive event wake pipe: %w", err)
	}
	d.wake = p
	d.running = true
	d.group = new(errgroup.Group)
	d.group.Go(func() error { return d.run(p) })
	clog.DebugX("pcan: receive event worker started")
	return nil
}

// shutdownLocked is called by the worker when it ends
func (d *RcvEventDispatcher) shutdownLocked(wake [2]int) {
	unix.Close(wake[0])
	unix.Close(wake[1])
	d.running = false
	clog.DebugX("pcan: receive event worker stopped")
}

func (d *RcvEventDispatcher) run(wake [2]int) error {
	var fds []unix.PollFd
	var handles []TPCANHandle

	for {
		d.mu.Lock()
		if d.count == 0 {
			d.shutdownLocked(wake)
			d.mu.Unlock()
			return nil
		}
		fds = append(fds[:0], unix.PollFd{Fd: int32(wake[0]), Events: unix.POLLIN})
		handles = handles[:0]
		for _, ev := range d.events[:d.count] {
			fds = append(fds, unix.PollFd{Fd: int32(ev.fd), Events: unix.POLLIN})
			handles = append(handles, ev.handle)
		}
		d.mu.Unlock()

		n, err := unix.Poll(fds, -1)
		if err == unix.EINTR || n == 0 {
			continue
		}
		if err != nil {
			d.mu.Lock()
			d.shutdownLocked(wake)
			d.mu.Unlock()
			return fmt.Errorf("pcan: receive event poll: %w", err)
		}

		if fds[0].Revents&unix.POLLIN != 0 && drainWake(wake[0]) {
			d.mu.Lock()
			d.shutdownLocked(wake)
			d.mu.Unlock()
			return nil
		}

		for i, pfd := range fds[1:] {
			switch {
			case pfd.Revents&(unix.POLLNVAL|unix.POLLERR) != 0:
				clog.Warning("pcan: receive event of %s failed, channel removed", HandleName(handles[i]))
				d.mu.Lock()
				d.removeLocked(handles[i])
				d.mu.Unlock()
			case pfd.Revents&unix.POLLIN != 0:
				d.callback(handles[i])
			}
		}
	}
}

// drainWake empties the wake pipe and tells if a quit request was read.
func drainWake(fd int) bool {
	var b [16]byte
	quit := false
	for {
		n, err := unix.Read(fd, b[:])
		if n <= 0 || err != nil {
			return quit
		}
		for _, c := range b[:n] {
			if c == wakeQuit {
				quit = true
			}
		}
	}
}

// waitReceive blocks until fd is readable or timeout elapses, a negative timeout waits
// forever. It returns false when fd cannot be waited for.
func waitReceive(fd int, timeout time.Duration) bool {
	ms := -1
	if timeout >= 0 {
		ms = int((timeout + time.Millisecond - 1) / time.Millisecond)
	}
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		return err == unix.EINTR
	}
	return n == 0 || fds[0].Revents&unix.POLLNVAL == 0
}
