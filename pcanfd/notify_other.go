//go:build !linux

package pcanfd

type notifier struct{}

func newNotifier() *notifier { return nil }

func (n *notifier) fd() int { return -1 }
func (n *notifier) signal() {}
func (n *notifier) drain()  {}
func (n *notifier) close()  {}
