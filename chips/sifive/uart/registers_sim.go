//go:build !sifive

package uart

// Host shim: a simulated register block with the same accessor surface as
// the volatile overlay built under the sifive tag, so the driver and its
// tests build with no hardware imports.
//
// The TX FIFO is modelled with a configurable depth. The full flag reads as
// occupancy == depth, and the transmit watermark pends while occupancy is
// below the trigger count programmed in txctrl, matching the hardware. The
// receive side always reads empty.

// Registers simulates the UART register block on the host.
type Registers struct {
	txctrl uint32
	rxctrl uint32
	ie     uint32
	div    uint32

	fifo  []byte
	depth int
	sent  []byte

	autoDrain    bool
	forcePending bool

	writes  int
	dropped int
}

// NewSimRegisters returns a simulated register block whose TX FIFO holds
// fifoDepth bytes.
func NewSimRegisters(fifoDepth int) *Registers {
	return &Registers{depth: fifoDepth}
}

func (r *Registers) writeTxData(b byte) {
	r.writes++
	if len(r.fifo) == r.depth {
		// Hardware drops writes to a full FIFO.
		r.dropped++
		return
	}
	r.fifo = append(r.fifo, b)
}

func (r *Registers) txFull() bool {
	if len(r.fifo) < r.depth {
		return false
	}
	if r.autoDrain {
		// Model the shifter removing a byte between consecutive polls: the
		// caller sees full once, then finds room on the re-check.
		r.DrainTx(1)
	}
	return true
}

func (r *Registers) writeTxCtrl(v uint32) {
	r.writes++
	r.txctrl = v
}

func (r *Registers) writeDiv(divisor uint32) {
	r.writes++
	r.div = divisor & divMask
}

func (r *Registers) enableTxWatermark() {
	r.writes++
	r.ie |= irqTxWatermark
}

func (r *Registers) disableTxWatermark() {
	r.writes++
	r.ie &^= irqTxWatermark
}

func (r *Registers) pending() uint32 {
	var p uint32
	if r.forcePending {
		p |= irqTxWatermark
	}
	trigger := int((r.txctrl & txctrlCountMask) >> txctrlCountPos)
	if len(r.fifo) < trigger {
		p |= irqTxWatermark
	}
	return p
}

// --- simulation controls, used by tests and cmd/uartsim ---

// DrainTx removes up to n bytes from the TX FIFO, as the shifter would, and
// returns how many were removed. Drained bytes are appended to Sent.
func (r *Registers) DrainTx(n int) int {
	if n > len(r.fifo) {
		n = len(r.fifo)
	}
	r.sent = append(r.sent, r.fifo[:n]...)
	r.fifo = r.fifo[n:]
	return n
}

// SetAutoDrain makes the FIFO free one byte every time the full flag is
// polled while full, so busy-wait loops always make progress.
func (r *Registers) SetAutoDrain(on bool) { r.autoDrain = on }

// RaiseTxWatermark forces the transmit watermark pending flag regardless of
// FIFO state, to simulate a spurious interrupt.
func (r *Registers) RaiseTxWatermark() { r.forcePending = true }

// TxQueued returns the current TX FIFO occupancy.
func (r *Registers) TxQueued() int { return len(r.fifo) }

// Sent returns every byte drained from the TX FIFO so far, in order.
func (r *Registers) Sent() []byte { return r.sent }

// Writes returns the total number of register writes observed.
func (r *Registers) Writes() int { return r.writes }

// Dropped returns the number of txdata writes issued while the FIFO was
// full. A correct driver never causes these.
func (r *Registers) Dropped() int { return r.dropped }

// Regs is a raw snapshot of the simulated register values.
type Regs struct {
	TxCtrl uint32
	RxCtrl uint32
	IE     uint32
	IP     uint32
	Div    uint32
}

// Snapshot captures the simulated registers for inspection.
func (r *Registers) Snapshot() Regs {
	return Regs{
		TxCtrl: r.txctrl,
		RxCtrl: r.rxctrl,
		IE:     r.ie,
		IP:     r.pending(),
		Div:    r.div,
	}
}
