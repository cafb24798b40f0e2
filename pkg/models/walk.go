package models

// Termination records why a RandomWalk stopped.
type Termination uint8

const (
	// Stepping marks a walk that is still being sampled.
	// A stored walk never carries it.
	Stepping Termination = iota

	// MaxLength: the walk reached the maximum step count.
	MaxLength

	// NoViableEdge: the last node had no strictly positive outgoing edge.
	NoViableEdge

	// RestartFired: the per-step restart probability fired.
	RestartFired
)

// RandomWalk is one stochastic path seeded at an ego node, e.g. {0,5,77,2}.
// Once terminated it is immutable; it is the unit of caching and invalidation.
type RandomWalk struct {
	Nodes []NodeID
	Stop  Termination
}

// Ego returns the starting node of the walk.
func (walk *RandomWalk) Ego() NodeID {
	if walk == nil || len(walk.Nodes) == 0 {
		return Absent
	}
	return walk.Nodes[0]
}

// Visits returns whether the walk passes through nodeID.
func (walk *RandomWalk) Visits(nodeID NodeID) bool {
	if walk == nil {
		return false
	}
	for _, ID := range walk.Nodes {
		if ID == nodeID {
			return true
		}
	}
	return false
}

// UsedEdge returns whether the walk contains the hop source --> target.
// Walks can revisit nodes, so every consecutive pair is checked.
func (walk *RandomWalk) UsedEdge(source, target NodeID) bool {
	if walk == nil {
		return false
	}
	for i := 0; i < len(walk.Nodes)-1; i++ {
		if walk.Nodes[i] == source && walk.Nodes[i+1] == target {
			return true
		}
	}
	return false
}

// Validate returns the appropriate error if the walk is nil, empty,
// or not yet terminated.
func (walk *RandomWalk) Validate() error {
	if walk == nil {
		return ErrNilWalkPointer
	}
	if len(walk.Nodes) == 0 {
		return ErrEmptyWalk
	}
	if walk.Stop == Stepping {
		return ErrWalkNotTerminated
	}
	return nil
}
