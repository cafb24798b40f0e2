/*
The graph package implements the in-memory signed weighted digraph that is
the single source of truth for topology. Mutation through AddNode, AddEdge,
RemoveEdge and Clear is the only way topology changes.

The graph knows nothing about walks; the meritrank package pairs every
mutation with the corresponding cache invalidation.
*/
package graph

import (
	"errors"
	"sort"

	"github.com/vertex-lab/meritrank/pkg/models"
)

// Edge is a point-in-time snapshot of one directed edge.
type Edge struct {
	Source models.NodeID
	Target models.NodeID
	Weight models.Weight
}

// Graph holds the node set and, per node, its outgoing edges target --> weight.
// Every edge's endpoints are members of the node set.
type Graph struct {
	nodes map[models.NodeID]map[models.NodeID]models.Weight
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[models.NodeID]map[models.NodeID]models.Weight),
	}
}

// NewFromEdges returns a Graph containing the specified edges and their endpoints.
func NewFromEdges(edges []Edge) (*Graph, error) {
	g := New()
	for _, edge := range edges {
		if err := g.AddEdge(edge.Source, edge.Target, edge.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddNode adds nodeID to the node set. It is idempotent, and a no-op for Absent.
func (g *Graph) AddNode(nodeID models.NodeID) {
	if !nodeID.IsPresent() {
		return
	}
	if _, exists := g.nodes[nodeID]; !exists {
		g.nodes[nodeID] = make(map[models.NodeID]models.Weight)
	}
}

/*
AddEdge inserts the edge source --> target, or overwrites its weight if the
ordered pair already exists (there are no multi-edges). Missing endpoints are
added to the node set.
*/
func (g *Graph) AddEdge(source, target models.NodeID, weight models.Weight) error {
	if !source.IsPresent() || !target.IsPresent() {
		return models.ErrInvalidNode
	}
	if source == target {
		return models.ErrSelfReferenceNotAllowed
	}

	g.AddNode(source)
	g.AddNode(target)
	g.nodes[source][target] = weight
	return nil
}

// RemoveEdge removes the edge source --> target if present. The endpoints
// stay in the node set.
func (g *Graph) RemoveEdge(source, target models.NodeID) {
	if successors, exists := g.nodes[source]; exists {
		delete(successors, target)
	}
}

// EdgeWeight returns the weight of the edge source --> target and whether it exists.
func (g *Graph) EdgeWeight(source, target models.NodeID) (models.Weight, bool) {
	successors, exists := g.nodes[source]
	if !exists {
		return 0, false
	}
	weight, exists := successors[target]
	return weight, exists
}

// ContainsNode returns whether nodeID is in the node set.
func (g *Graph) ContainsNode(nodeID models.NodeID) bool {
	_, exists := g.nodes[nodeID]
	return exists
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// OutDegree returns the number of outgoing edges of nodeID, whatever their sign.
func (g *Graph) OutDegree(nodeID models.NodeID) int {
	return len(g.nodes[nodeID])
}

// Nodes returns the node set as a slice, sorted in ascending order.
func (g *Graph) Nodes() []models.NodeID {
	nodeIDs := make([]models.NodeID, 0, len(g.nodes))
	for nodeID := range g.nodes {
		nodeIDs = append(nodeIDs, nodeID)
	}

	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })
	return nodeIDs
}

// Edges returns a point-in-time snapshot of all edges, sorted by (source, target).
func (g *Graph) Edges() []Edge {
	edges := []Edge{}
	for _, source := range g.Nodes() {
		for _, target := range sortedKeys(g.nodes[source]) {
			edges = append(edges, Edge{Source: source, Target: target, Weight: g.nodes[source][target]})
		}
	}
	return edges
}

/*
ViableSuccessors returns the targets and weights of the strictly positive
outgoing edges of nodeID, sorted by target. These are the sampler's
transition candidates; the weights are unnormalized propensities.
*/
func (g *Graph) ViableSuccessors(nodeID models.NodeID) ([]models.NodeID, []models.Weight, error) {
	return g.successors(nodeID, func(w models.Weight) bool { return w > 0 })
}

/*
NegativeSuccessors returns the targets and weights of the negative outgoing
edges of nodeID, sorted by target. The sampler never follows them; they feed
the distrust penalty at aggregation time.
*/
func (g *Graph) NegativeSuccessors(nodeID models.NodeID) ([]models.NodeID, []models.Weight, error) {
	return g.successors(nodeID, func(w models.Weight) bool { return w < 0 })
}

func (g *Graph) successors(nodeID models.NodeID, keep func(models.Weight) bool) ([]models.NodeID, []models.Weight, error) {
	successors, exists := g.nodes[nodeID]
	if !exists {
		return nil, nil, models.ErrNodeDoesNotExist
	}

	// sorted iteration keeps the sampler reproducible under a seeded rng
	targets := []models.NodeID{}
	weights := []models.Weight{}
	for _, target := range sortedKeys(successors) {
		if keep(successors[target]) {
			targets = append(targets, target)
			weights = append(weights, successors[target])
		}
	}
	return targets, weights, nil
}

// Clear drops all nodes and edges.
func (g *Graph) Clear() {
	g.nodes = make(map[models.NodeID]map[models.NodeID]models.Weight)
}

func sortedKeys(m map[models.NodeID]models.Weight) []models.NodeID {
	keys := make([]models.NodeID, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

//---------------------------------ERROR-CODES---------------------------------

var ErrNilGraphPointer = errors.New("nil graph pointer")
