//go:build sifive

package uart

import (
	"runtime/volatile"
	"unsafe"
)

// Registers is a typed overlay on the UART's memory-mapped register block.
// Field order matches the hardware layout in registers.go exactly.
type Registers struct {
	txdata volatile.Register32
	rxdata volatile.Register32
	txctrl volatile.Register32
	rxctrl volatile.Register32
	ie     volatile.Register32
	ip     volatile.Register32
	div    volatile.Register32
}

// RegistersAt overlays a register block on the peripheral at base
// (0x10013000 for UART0 on the FE310).
func RegistersAt(base uintptr) *Registers {
	return (*Registers)(unsafe.Pointer(base))
}

func (r *Registers) writeTxData(b byte) { r.txdata.Set(uint32(b)) }

func (r *Registers) txFull() bool { return r.txdata.HasBits(txdataFull) }

func (r *Registers) writeTxCtrl(v uint32) { r.txctrl.Set(v) }

func (r *Registers) writeDiv(divisor uint32) { r.div.Set(divisor & divMask) }

func (r *Registers) enableTxWatermark() { r.ie.SetBits(irqTxWatermark) }

func (r *Registers) disableTxWatermark() { r.ie.ClearBits(irqTxWatermark) }

func (r *Registers) pending() uint32 { return r.ip.Get() }
