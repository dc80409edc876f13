package domain

// ModelKind is the discriminant a child model reports about itself.
// Covergroups dispatch on it when children are registered.
type ModelKind int

const (
	KindUnknown    ModelKind = iota
	KindCoverpoint           // Single coverage axis partitioned into bins
	KindCross                // Cartesian combination of coverpoint bins
)

func (k ModelKind) String() string {
	switch k {
	case KindCoverpoint:
		return "coverpoint"
	case KindCross:
		return "cross"
	default:
		return "unknown"
	}
}
