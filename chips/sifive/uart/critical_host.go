//go:build !sifive

package uart

// On the host the simulated interrupt handler runs inline on the calling
// goroutine, so masking is a no-op.

type interruptState struct{}

func interruptsDisable() interruptState { return interruptState{} }

func interruptsRestore(interruptState) {}
