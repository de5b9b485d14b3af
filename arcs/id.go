package arcs

import "fmt"

// ID references an arc together with a traversal direction. Non-negative
// values walk the arc start-to-end; negative values hold the complement of
// the arc index (^i == -i-1) and walk it end-to-start. This lets two adjacent
// rings share one stored boundary in opposite windings.
type ID int

// Fwd references arc i in its stored direction.
func Fwd(i int) ID { return ID(i) }

// Rev references arc i end-to-start.
func Rev(i int) ID { return ID(^i) }

// Unsigned returns the index of the referenced arc.
func (id ID) Unsigned() int {
	if id < 0 {
		return int(^id)
	}
	return int(id)
}

func (id ID) IsReversed() bool {
	return id < 0
}

// Reverse flips the traversal direction.
func (id ID) Reverse() ID {
	return ^id
}

func (id ID) String() string {
	if id < 0 {
		return fmt.Sprintf("~%d", int(^id))
	}
	return fmt.Sprintf("%d", int(id))
}

// IDs converts raw signed integers, as stored in TopoJSON, into arc
// references.
func IDs(raw []int) []ID {
	out := make([]ID, len(raw))
	for i, v := range raw {
		out[i] = ID(v)
	}
	return out
}
