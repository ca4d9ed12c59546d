package evm

import (
	"fmt"
)

// ExitKind tells how a run ended.
type ExitKind int

const (
	ExitStop   ExitKind = iota // STOP or the end of the code
	ExitReturn                 // RETURN with output data
	ExitRevert                 // REVERT, INVALID or an illegal jump
)

func (k ExitKind) String() string {
	switch k {
	case ExitStop:
		return "Stop"
	case ExitReturn:
		return "Return"
	case ExitRevert:
		return "Revert"
	}
	return fmt.Sprintf("ExitKind(%d)", int(k))
}

// Outcome is the result of a run that completed. A revert is a completed run:
// the contract chose to abort.
type Outcome struct {
	Kind ExitKind
	Data []byte
}

func stopped() *Outcome {
	return &Outcome{Kind: ExitStop}
}

func returned(data []byte) *Outcome {
	return &Outcome{Kind: ExitReturn, Data: data}
}

func reverted(data []byte) *Outcome {
	return &Outcome{Kind: ExitRevert, Data: data}
}

// Reverted reports whether the run ended with a revert.
func (o *Outcome) Reverted() bool {
	return o.Kind == ExitRevert
}

func (o *Outcome) String() string {
	if o.Kind == ExitStop {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s(0x%x)", o.Kind, o.Data)
}
