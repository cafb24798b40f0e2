/*
The models package defines the fundamental types used across the module:
node identifiers, edge weights, random walks, and the error taxonomy.

Every failure in the module is one of the sentinel errors defined here,
so callers can switch on them with errors.Is.
*/
package models

import "math"

// NodeID is the identifier of a node in the trust graph.
type NodeID uint32

// Absent is the sentinel for "no node". It never identifies a real node and
// must not be accepted where a concrete node is required.
const Absent NodeID = math.MaxUint32

// IsPresent returns whether the NodeID identifies a concrete node.
func (id NodeID) IsPresent() bool {
	return id != Absent
}

// Weight is the signed weight of a directed edge. A positive weight expresses
// trust, a negative weight expresses distrust; the magnitude is the relative
// strength. A zero weight carries no transition mass.
type Weight float64
