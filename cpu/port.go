package cpu

// PORT_CAPACITY is the number of values that may be in flight in each
// direction of a connected port pair before the writer blocks.
const PORT_CAPACITY = 1

// Port is one directional endpoint of a core.
//
// The zero value is a disconnected port. Both channels of a disconnected
// port are nil, and a nil channel never becomes ready, so any Read or Write
// on it parks the calling goroutine forever.
type Port struct {
	inbound  <-chan Value
	outbound chan<- Value
}

// Connect pairs two disconnected ports with a capacity-1 channel in each
// direction. Nothing is changed if either port is already connected.
func Connect(a, b *Port) (err error) {
	if a.Connected() || b.Connected() {
		err = ErrPortConnected
		return
	}

	ab := make(chan Value, PORT_CAPACITY)
	ba := make(chan Value, PORT_CAPACITY)

	a.outbound, b.inbound = ab, ab
	b.outbound, a.inbound = ba, ba

	return
}

// Connected returns true once the port has been paired with a neighbour.
func (p *Port) Connected() bool {
	return p.outbound != nil
}

// Write sends a value to the neighbour, blocking while the previous value
// has not been consumed.
func (p *Port) Write(value Value) {
	p.outbound <- value
}

// Read receives the next value from the neighbour, blocking until one
// is available.
func (p *Port) Read() Value {
	return <-p.inbound
}
