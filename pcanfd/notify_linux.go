//go:build linux

package pcanfd

import "golang.org/x/sys/unix"

// notifier is a non-blocking pipe whose read end is readable while a virtual port has
// pending messages.
type notifier struct {
	r, w int
}

func newNotifier() *notifier {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil
	}
	return &notifier{r: p[0], w: p[1]}
}

func (n *notifier) fd() int {
	if n == nil {
		return -1
	}
	return n.r
}

func (n *notifier) signal() {
	if n == nil {
		return
	}
	unix.Write(n.w, []byte{1})
}

func (n *notifier) drain() {
	if n == nil {
		return
	}
	var b [64]byte
	for {
		k, err := unix.Read(n.r, b[:])
		if k <= 0 || err != nil {
			return
		}
	}
}

func (n *notifier) close() {
	if n == nil {
		return
	}
	unix.Close(n.r)
	unix.Close(n.w)
}
