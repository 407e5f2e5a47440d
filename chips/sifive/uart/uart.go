// Package uart drives the SiFive memory-mapped UART. Transmission is
// buffer-oriented and interrupt-driven: TransmitBuffer seeds the hardware
// FIFO, arms the transmit watermark interrupt and returns immediately; the
// interrupt handler refills the FIFO until the whole buffer has been handed
// to the hardware, then returns buffer ownership through the registered
// client. TransmitSync is a blocking fallback that polls the FIFO-full flag
// and never touches the interrupt machinery. The receive path is not
// implemented on this peripheral driver.
//
// Invariants (TX path):
//   - The buffer slot is occupied exactly while a transmit is in flight.
//   - 0 <= cursor <= length between initiation and completion.
//   - The watermark interrupt is enabled exactly while a transmit is in flight.
//
// Only one transmit may be in flight at a time, and TransmitSync must not
// overlap an asynchronous transmit: both paths share txctrl and the FIFO.
// The driver has no internal locking beyond a short masked section around
// installing the in-flight transfer.
package uart

import (
	"tinygo.org/x/drivers"

	hil "github.com/ntninja/tock/hil/uart"
)

var (
	_ hil.Configurer  = (*UART)(nil)
	_ hil.Transmitter = (*UART)(nil)
	_ hil.Receiver    = (*UART)(nil)
	_ drivers.UART    = (*UART)(nil)
)

// IOFPin selects a pin's hardware function. It is implemented by the GPIO
// driver; this package only needs pins switched to the UART's IOF0 function.
type IOFPin interface {
	SelectIOF0()
}

// UART is the driver state for one physical UART instance.
type UART struct {
	regs           *Registers
	clockFrequency uint32

	// Non-owning client references; the caller manages their lifetime.
	txClient hil.TransmitClient
	rxClient hil.ReceiveClient

	stopBits hil.StopBits

	// In-flight transmit. buf is non-nil exactly while a transmit is in
	// progress; cursor is the index of the next byte to hand to the FIFO.
	// Written by the foreground on initiation, by the interrupt handler
	// afterwards.
	buf    []byte
	length int
	cursor int
}

// New returns a driver over the register block at regs, clocked at
// clockFrequency Hz. One UART value exists per physical peripheral and
// lives for the lifetime of the system.
func New(regs *Registers, clockFrequency uint32) *UART {
	return &UART{regs: regs, clockFrequency: clockFrequency}
}

// InitializeGPIOPins routes the peripheral's TX and RX signals onto the
// physical pins. Must be called once before first use.
func (u *UART) InitializeGPIOPins(tx, rx IOFPin) {
	tx.SelectIOF0()
	rx.SelectIOF0()
}

// setBaudRate programs div with clock/baud - 1 (floor): the hardware
// generates f_baud = f_clk / (div + 1).
func (u *UART) setBaudRate(baudRate uint32) {
	u.regs.writeDiv(u.clockFrequency/baudRate - 1)
}

// txControlWord composes a txctrl value with the transmitter enabled and a
// watermark trigger count of one, so the interrupt fires once the FIFO has
// fully drained.
func txControlWord(stopBits hil.StopBits) uint32 {
	v := txctrlEnable | 1<<txctrlCountPos
	if stopBits == hil.StopBitsTwo {
		v |= txctrlNstop
	}
	return v
}

// Configure applies line settings. Parity and hardware flow control are not
// supported by this peripheral; requesting either fails without touching any
// register. Must not be called while a transmit is in flight.
func (u *UART) Configure(params hil.Parameters) error {
	if params.Parity != hil.ParityNone {
		return hil.ErrUnsupported
	}
	if params.HWFlowControl {
		return hil.ErrUnsupported
	}

	u.setBaudRate(params.BaudRate)

	// The stop bit count lives in txctrl, which is rewritten on every
	// transmit start, so only record it here.
	u.stopBits = params.StopBits

	return nil
}

// HandleInterrupt services a pending UART interrupt. The kernel's trap
// handler calls it with the peripheral's interrupt claimed.
func (u *UART) HandleInterrupt() {
	// One snapshot of the pending flags; deciding on a register that can
	// change mid-handler would be racy.
	pending := u.regs.pending()

	if pending&irqTxWatermark == 0 {
		// The receiver is never enabled, so receive watermarks do not occur.
		return
	}

	if u.cursor == u.length {
		// Every byte is in the hardware FIFO. Shut the transmitter down and
		// hand the buffer back. A spurious watermark with no in-flight
		// transfer or no registered client lands here too and is tolerated:
		// the missing step is skipped.
		u.regs.writeTxCtrl(0)
		u.regs.disableTxWatermark()

		if u.txClient != nil && u.buf != nil {
			buf := u.buf
			u.buf = nil
			u.txClient.TransmittedBuffer(buf, u.length, nil)
		}
		return
	}

	// More to send: refill until the FIFO pushes back, leaving the watermark
	// armed for the next drain.
	if u.buf != nil {
		for u.cursor < u.length {
			u.regs.writeTxData(u.buf[u.cursor])
			u.cursor++
			if u.regs.txFull() {
				break
			}
		}
	}
}

// TransmitSync writes p through the FIFO, busy-waiting on the full flag
// before each byte. It programs one stop bit unconditionally, issues no
// callback and never touches the interrupt machinery; it returns once the
// last byte is in the FIFO, not when it is on the wire.
func (u *UART) TransmitSync(p []byte) {
	u.regs.writeTxCtrl(txControlWord(hil.StopBitsOne))
	for _, b := range p {
		for u.regs.txFull() {
		}
		u.regs.writeTxData(b)
	}
}

// SetTransmitClient registers the completion client for TransmitBuffer,
// replacing any previous one.
func (u *UART) SetTransmitClient(client hil.TransmitClient) {
	u.txClient = client
}

// TransmitBuffer starts an asynchronous transmit of tx[:n]. On success the
// driver owns tx until the client callback returns it; completion is always
// signalled from the interrupt handler, even when the whole buffer fits into
// the FIFO here. On error tx is handed straight back and nothing is
// retained. TransmitBuffer performs a bounded amount of register I/O and
// never blocks.
func (u *UART) TransmitBuffer(tx []byte, n int) ([]byte, error) {
	if n == 0 {
		return tx, hil.ErrSize
	}

	// Arm the watermark first so the drain after our fill is observed.
	u.regs.enableTxWatermark()

	// Initial fill: push until the FIFO reports full or the buffer is done.
	cursor := 0
	for cursor < n {
		u.regs.writeTxData(tx[cursor])
		cursor++
		if u.regs.txFull() {
			break
		}
	}

	// Install the in-flight transfer atomically with respect to the handler,
	// which must not observe a half-written slot.
	mask := interruptsDisable()
	u.buf = tx
	u.length = n
	u.cursor = cursor
	interruptsRestore(mask)

	u.regs.writeTxCtrl(txControlWord(u.stopBits))

	return nil, nil
}

// TransmitAbort is not supported: once started, a transmit runs to
// completion.
func (u *UART) TransmitAbort() error {
	return hil.ErrFailed
}

// TransmitWord is not supported: this peripheral is buffer-oriented.
func (u *UART) TransmitWord(word uint32) error {
	return hil.ErrFailed
}

// SetReceiveClient registers the receive completion client, replacing any
// previous one. No receive operation ever completes on this driver.
func (u *UART) SetReceiveClient(client hil.ReceiveClient) {
	u.rxClient = client
}

// ReceiveBuffer is not implemented; rx is handed straight back unmodified.
func (u *UART) ReceiveBuffer(rx []byte, n int) ([]byte, error) {
	return rx, hil.ErrFailed
}

// ReceiveAbort is not implemented.
func (u *UART) ReceiveAbort() error {
	return hil.ErrFailed
}

// ReceiveWord is not implemented.
func (u *UART) ReceiveWord() error {
	return hil.ErrFailed
}

// --- drivers.UART conformance ---

// Write satisfies drivers.UART as a blocking console writer over the
// synchronous path. It must not be used while an asynchronous transmit is in
// flight.
func (u *UART) Write(p []byte) (int, error) {
	u.TransmitSync(p)
	return len(p), nil
}

// Read satisfies drivers.UART; the receive path is not implemented, so it
// reports the receive stub's failure without touching p.
func (u *UART) Read(p []byte) (int, error) {
	return 0, hil.ErrFailed
}

// ReadByte reports the receive stub's failure, like Read.
func (u *UART) ReadByte() (byte, error) {
	return 0, hil.ErrFailed
}

// Buffered satisfies drivers.UART; there is no receive buffering.
func (u *UART) Buffered() int {
	return 0
}
