package driver

import "time"

// PhaseStatus reports whether a phase or unit started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a phase (or a unit inside it) has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
	// PhaseFail marks a unit or phase that finished with errors.
	PhaseFail
)

// PhaseEvent describes a phase boundary. Unit is empty for whole-phase
// events.
type PhaseEvent struct {
	Project string
	Name    string // load, lower, merge, emit, write
	Unit    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events. It may be called from several
// goroutines at once.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) emit(ev PhaseEvent) {
	if o != nil {
		o(ev)
	}
}
