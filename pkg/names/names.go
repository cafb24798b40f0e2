/*
The names package is the caller-facing identifier layer. The engine consumes
abstract NodeIDs only; this registry maps the human-readable names used at
the boundary to stable, densely assigned NodeIDs and back.
*/
package names

import (
	"strconv"

	"github.com/vertex-lab/meritrank/pkg/models"
)

// Registry assigns stable NodeIDs to external string names.
// IDs are assigned sequentially from zero and never reused.
type Registry struct {
	ids   map[string]models.NodeID
	names []string // position i holds the name of NodeID(i)
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		ids: make(map[string]models.NodeID),
	}
}

// Resolve returns the NodeID of name, assigning the next free ID if the
// name was never seen before.
func (r *Registry) Resolve(name string) models.NodeID {
	if nodeID, exists := r.ids[name]; exists {
		return nodeID
	}

	nodeID := models.NodeID(len(r.names))
	r.ids[name] = nodeID
	r.names = append(r.names, name)
	return nodeID
}

// Lookup returns the NodeID of name, or ErrNodeDoesNotExist if it was
// never assigned.
func (r *Registry) Lookup(name string) (models.NodeID, error) {
	nodeID, exists := r.ids[name]
	if !exists {
		return models.Absent, models.ErrNodeDoesNotExist
	}
	return nodeID, nil
}

// NameOf returns the name assigned to nodeID.
func (r *Registry) NameOf(nodeID models.NodeID) (string, error) {
	if !nodeID.IsPresent() {
		return "", models.ErrInvalidNode
	}
	if int(nodeID) >= len(r.names) {
		return "", models.ErrNodeDoesNotExist
	}
	return r.names[nodeID], nil
}

// Size returns the number of assigned names.
func (r *Registry) Size() int {
	return len(r.names)
}

/*
ParseNodeID parses an external decimal identifier into a NodeID.
Malformed input fails with ErrNodeIDParse; the well-formed value reserved
as the Absent sentinel fails with ErrInvalidNode.
*/
func ParseNodeID(s string) (models.NodeID, error) {
	value, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return models.Absent, models.ErrNodeIDParse
	}

	nodeID := models.NodeID(value)
	if !nodeID.IsPresent() {
		return models.Absent, models.ErrInvalidNode
	}
	return nodeID, nil
}
