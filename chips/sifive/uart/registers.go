package uart

// Register block layout. Seven 32-bit registers at fixed, contiguous
// offsets; the bit positions below are the hardware contract and must never
// be reordered or resized.
//
//	0x00 txdata  transmit data
//	0x04 rxdata  receive data
//	0x08 txctrl  transmit control
//	0x0c rxctrl  receive control
//	0x10 ie      interrupt enable
//	0x14 ip      interrupt pending
//	0x18 div     baud rate divisor
const (
	// txdata: bit 31 reads back the FIFO-full flag, bits 0-7 hold the byte
	// to send.
	txdataFull     uint32 = 1 << 31
	txdataDataMask uint32 = 0xff

	// rxdata: bit 31 is the FIFO-empty flag, bits 0-7 the received byte.
	rxdataEmpty    uint32 = 1 << 31
	rxdataDataMask uint32 = 0xff

	// txctrl: bits 16-18 set the FIFO watermark trigger count, bit 1 selects
	// two stop bits, bit 0 enables the transmitter.
	txctrlCountPos         = 16
	txctrlCountMask uint32 = 0x7 << txctrlCountPos
	txctrlNstop     uint32 = 1 << 1
	txctrlEnable    uint32 = 1 << 0

	// rxctrl: bits 16-18 trigger count, bit 0 enables the receiver.
	rxctrlCountPos         = 16
	rxctrlCountMask uint32 = 0x7 << rxctrlCountPos
	rxctrlEnable    uint32 = 1 << 0

	// ie/ip share one bit layout: bit 1 receive watermark, bit 0 transmit
	// watermark.
	irqRxWatermark uint32 = 1 << 1
	irqTxWatermark uint32 = 1 << 0

	// div: bits 0-15 hold the integer baud divisor.
	divMask uint32 = 0xffff
)
