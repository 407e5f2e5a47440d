//go:build sifive

package uart

import "runtime/interrupt"

// Short critical sections around in-flight transfer state: the watermark
// interrupt can preempt the foreground at any point.

func interruptsDisable() interrupt.State { return interrupt.Disable() }

func interruptsRestore(state interrupt.State) { interrupt.Restore(state) }
