package pcanfd

import (
	"encoding/binary"
	"sync"
	"syscall"
	"time"
)

// VirtualBus is an in-memory Opener. Every device path is backed by a VirtualPort that
// survives close and reopen, the way a driver channel does.
type VirtualBus struct {
	mu    sync.Mutex
	ports map[string]*VirtualPort
}

func NewVirtualBus() *VirtualBus {
	return &VirtualBus{ports: make(map[string]*VirtualPort)}
}

// Port returns the port behind path, creating it on first use.
func (b *VirtualBus) Port(path string) *VirtualPort {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.ports[path]
	if !ok {
		p = newVirtualPort(path)
		b.ports[path] = p
	}
	return p
}

func (b *VirtualBus) Open(path string, init *Init, flags OpenFlag) (Device, error) {
	return b.Port(path).open(init, flags)
}

// Close releases the readiness descriptors of every port.
func (b *VirtualBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.ports {
		p.notify.close()
	}
}

// VirtualPort is the driver side of a virtual channel.
type VirtualPort struct {
	mu      sync.Mutex
	path    string
	init    Init
	state   State
	filters []Filter
	options map[Option][]byte
	rx      []Msg
	tx      []Msg
	opens   int
	notify  *notifier

	openErr error
	sendErr error
	recvErr error
}

func newVirtualPort(path string) *VirtualPort {
	p := &VirtualPort{
		path:    path,
		options: make(map[Option][]byte),
		notify:  newNotifier(),
	}
	p.state = State{
		VerMajor:    8,
		VerMinor:    15,
		VerSubminor: 2,
		TxMaxMsgs:   500,
		RxMaxMsgs:   500,
	}
	p.options[OptDeviceID] = make([]byte, 4)
	p.options[OptAllowedMsgs] = u32(AllowedMsgCAN | AllowedMsgRTR | AllowedMsgExt | AllowedMsgStatus)
	p.options[OptIFrameDelayUs] = make([]byte, 4)
	p.options[OptAccFilter11B] = make([]byte, 8)
	p.options[OptAccFilter29B] = make([]byte, 8)
	p.options[OptIODigitalCfg] = make([]byte, 4)
	p.options[OptIODigitalVal] = make([]byte, 4)
	p.options[OptIODigitalSet] = make([]byte, 4)
	p.options[OptIODigitalClr] = make([]byte, 4)
	p.options[OptIOAnalogVal] = make([]byte, 4)
	return p
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func (p *VirtualPort) open(init *Init, flags OpenFlag) (Device, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.openErr != nil {
		return nil, p.openErr
	}
	p.opens++
	p.state.OpenCounter++
	if init != nil {
		p.init = *init
		if flags&OpenListenOnly != 0 {
			p.init.Flags |= InitListenOnly
		}
		p.applyInit()
	}
	return &virtualDevice{port: p}, nil
}

func (p *VirtualPort) applyInit() {
	p.state.InitTime = time.Now()
	p.state.BusState = ErrorActive
}

// Inject queues a message for reception. Messages rejected by the installed filters or the
// allowed message kinds are dropped.
func (p *VirtualPort) Inject(msg Msg) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.accepts(&msg) {
		return
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	p.rx = append(p.rx, msg)
	p.state.RxPendingMsgs = uint32(len(p.rx))
	p.notify.signal()
}

func (p *VirtualPort) accepts(msg *Msg) bool {
	allowed := binary.LittleEndian.Uint32(p.options[OptAllowedMsgs])
	switch msg.Type {
	case TypeStatus:
		return allowed&AllowedMsgStatus != 0
	case TypeError:
		return allowed&AllowedMsgError != 0
	}
	if msg.Flags&MsgRTR != 0 && allowed&AllowedMsgRTR == 0 {
		return false
	}
	if len(p.filters) == 0 {
		return true
	}
	for _, f := range p.filters {
		if msg.ID >= f.IDFrom && msg.ID <= f.IDTo && msg.Flags&MsgExt == f.MsgFlags&MsgExt {
			return true
		}
	}
	return false
}

// Sent returns a copy of the messages written to the port.
func (p *VirtualPort) Sent() []Msg {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Msg(nil), p.tx...)
}

// Opens returns how many times the port was opened.
func (p *VirtualPort) Opens() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opens
}

func (p *VirtualPort) Init() Init {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.init
}

func (p *VirtualPort) Filters() []Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Filter(nil), p.filters...)
}

// Option returns the raw value of an option, nil when unsupported.
func (p *VirtualPort) Option(name Option) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.options[name]...)
}

// DropOption makes the option unsupported (EOPNOTSUPP).
func (p *VirtualPort) DropOption(name Option) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.options, name)
}

func (p *VirtualPort) SetBusState(s uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.BusState = s
}

func (p *VirtualPort) SetTxPending(n uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.TxPendingMsgs = n
}

func (p *VirtualPort) SetChannelNumber(n uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ChannelNumber = n
}

// SetOpenError makes every following open fail with err (nil clears it).
func (p *VirtualPort) SetOpenError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openErr = err
}

// SetSendError makes every following send fail with err (nil clears it).
func (p *VirtualPort) SetSendError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sendErr = err
}

// SetRecvError makes every following receive fail with err (nil clears it).
func (p *VirtualPort) SetRecvError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recvErr = err
}

type virtualDevice struct {
	port   *VirtualPort
	closed bool
}

func (d *virtualDevice) lock() (*VirtualPort, error) {
	d.port.mu.Lock()
	if d.closed {
		d.port.mu.Unlock()
		return nil, syscall.EBADF
	}
	return d.port, nil
}

func (d *virtualDevice) Fd() int {
	p, err := d.lock()
	if err != nil {
		return -1
	}
	defer p.mu.Unlock()
	return p.notify.fd()
}

func (d *virtualDevice) Close() error {
	p, err := d.lock()
	if err != nil {
		return err
	}
	defer p.mu.Unlock()
	d.closed = true
	p.state.OpenCounter--
	return nil
}

func (d *virtualDevice) SendMsg(msg *Msg) error {
	p, err := d.lock()
	if err != nil {
		return err
	}
	defer p.mu.Unlock()

	if p.sendErr != nil {
		return p.sendErr
	}
	if p.state.BusState == ErrorBusOff {
		return syscall.ENETDOWN
	}
	if p.init.Flags&InitListenOnly != 0 {
		return syscall.EOPNOTSUPP
	}
	m := *msg
	m.Timestamp = time.Now()
	p.tx = append(p.tx, m)
	p.state.TxFramesCounter++
	return nil
}

func (d *virtualDevice) RecvMsg(msg *Msg) error {
	p, err := d.lock()
	if err != nil {
		return err
	}
	defer p.mu.Unlock()

	if p.recvErr != nil {
		return p.recvErr
	}
	if len(p.rx) == 0 {
		return syscall.EAGAIN
	}
	*msg = p.rx[0]
	p.rx = p.rx[1:]
	p.state.RxPendingMsgs = uint32(len(p.rx))
	p.state.RxFramesCounter++
	if len(p.rx) == 0 {
		p.notify.drain()
	}
	return nil
}

func (d *virtualDevice) GetState(st *State) error {
	p, err := d.lock()
	if err != nil {
		return err
	}
	defer p.mu.Unlock()

	*st = p.state
	st.FiltersCounter = uint32(len(p.filters))
	if v, ok := p.options[OptDeviceID]; ok {
		st.DeviceID = binary.LittleEndian.Uint32(v)
	}
	return nil
}

func (d *virtualDevice) GetInit(init *Init) error {
	p, err := d.lock()
	if err != nil {
		return err
	}
	defer p.mu.Unlock()
	*init = p.init
	return nil
}

func (d *virtualDevice) SetInit(init *Init) error {
	p, err := d.lock()
	if err != nil {
		return err
	}
	defer p.mu.Unlock()
	p.init = *init
	p.applyInit()
	return nil
}

func (d *virtualDevice) AddFilter(f Filter) error {
	p, err := d.lock()
	if err != nil {
		return err
	}
	defer p.mu.Unlock()
	p.filters = append(p.filters, f)
	return nil
}

func (d *virtualDevice) DelFilters() error {
	p, err := d.lock()
	if err != nil {
		return err
	}
	defer p.mu.Unlock()
	p.filters = nil
	return nil
}

func (d *virtualDevice) GetFilters() ([]Filter, error) {
	p, err := d.lock()
	if err != nil {
		return nil, err
	}
	defer p.mu.Unlock()
	return append([]Filter(nil), p.filters...), nil
}

func (d *virtualDevice) GetOption(name Option, buf []byte) (int, error) {
	p, err := d.lock()
	if err != nil {
		return 0, err
	}
	defer p.mu.Unlock()

	v, ok := p.options[name]
	if !ok {
		return 0, syscall.EOPNOTSUPP
	}
	if len(buf) < len(v) {
		return 0, syscall.EINVAL
	}
	return copy(buf, v), nil
}

func (d *virtualDevice) SetOption(name Option, buf []byte) error {
	p, err := d.lock()
	if err != nil {
		return err
	}
	defer p.mu.Unlock()

	v, ok := p.options[name]
	if !ok {
		return syscall.EOPNOTSUPP
	}
	if len(buf) < len(v) {
		return syscall.EINVAL
	}
	copy(v, buf)
	return nil
}
