// Package enrich defines the shared result type for best-effort enrichment
// steps. Absence (no URL, nothing found) and failure (fetch or parse error)
// are distinct outcomes so logs and metrics can tell them apart; neither ever
// aborts the submission being enriched.
package enrich

// Status classifies the outcome of one enrichment attempt.
type Status int

// Enrichment outcomes.
const (
	StatusFound Status = iota
	StatusAbsent
	StatusFailed
)

// String returns the lowercase label used in logs and metrics.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusAbsent:
		return "absent"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result carries an enrichment value together with its outcome. Err is set
// only when Status is StatusFailed.
type Result[T any] struct {
	Value  *T
	Status Status
	Err    error
}

// Found wraps a successfully produced value.
func Found[T any](v *T) Result[T] {
	return Result[T]{Value: v, Status: StatusFound}
}

// Absent marks an enrichment that had nothing to do or nothing to return.
func Absent[T any]() Result[T] {
	return Result[T]{Status: StatusAbsent}
}

// Failed records the error that stopped the enrichment.
func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: err}
}
