package diag

// Severity orders diagnostics; Bag.HasErrors and Sort compare by it.
type Severity uint8

const (
	// SevInfo carries OBS timings and counters, never a failure.
	SevInfo Severity = iota
	// SevWarning is reserved for renderers and external reporters: the
	// sharpc pipeline has no warnings and never downgrades an error.
	SevWarning
	// SevError fails the project; see Code.MemberScoped for what still emits.
	SevError
)

// String is the label printed by diagfmt ("sharpc: ERROR IO6001: ...").
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
