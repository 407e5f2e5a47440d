// Package uart defines the hardware-independent interface layer for serial
// peripherals: configuration parameters, the buffer-oriented transmit and
// receive operations, and the client interfaces completion is delivered
// through. Chip drivers implement these interfaces; capsules and boards
// consume them without knowing the underlying peripheral.
package uart

import "errors"

var (
	// ErrUnsupported is returned by Configure for settings the peripheral
	// cannot provide (parity other than none, hardware flow control).
	ErrUnsupported = errors.New("uart: setting not supported")

	// ErrSize is returned for a zero-length transmit request.
	ErrSize = errors.New("uart: invalid transfer size")

	// ErrFailed is the general failure result for operations a driver does
	// not implement (abort, word transfer, the whole receive path here).
	ErrFailed = errors.New("uart: operation failed")
)

// Parity describes the parity bit setting of a serial line.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

// StopBits describes how many stop bits terminate each frame.
type StopBits uint8

const (
	StopBitsOne StopBits = iota
	StopBitsTwo
)

// Parameters holds the line settings requested through Configure.
type Parameters struct {
	BaudRate      uint32
	Parity        Parity
	StopBits      StopBits
	HWFlowControl bool
}

// TransmitClient receives the completion callback for a buffer transmit.
// The driver holds a non-owning reference to at most one client; the
// client's lifetime is the caller's responsibility.
type TransmitClient interface {
	// TransmittedBuffer returns ownership of the buffer passed to
	// TransmitBuffer, together with the number of bytes handed to the
	// hardware and the transfer result.
	TransmittedBuffer(buf []byte, n int, err error)
}

// ReceiveClient receives the completion callback for a buffer receive.
type ReceiveClient interface {
	ReceivedBuffer(buf []byte, n int, err error)
}

// Configurer applies line settings while no transfer is in flight.
type Configurer interface {
	Configure(params Parameters) error
}

// Transmitter is the asynchronous transmit contract. TransmitBuffer takes
// ownership of tx until the client callback returns it; on error the buffer
// is handed straight back as the first return value and nothing is retained.
type Transmitter interface {
	SetTransmitClient(client TransmitClient)
	TransmitBuffer(tx []byte, n int) ([]byte, error)
	TransmitAbort() error
	TransmitWord(word uint32) error
}

// Receiver is the receive-side counterpart of Transmitter.
type Receiver interface {
	SetReceiveClient(client ReceiveClient)
	ReceiveBuffer(rx []byte, n int) ([]byte, error)
	ReceiveAbort() error
	ReceiveWord() error
}
