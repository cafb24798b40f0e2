/*
The meritrank package implements personalized trust scores over a signed
weighted digraph, approximated with cached Monte-Carlo random walks.

A MeritRank instance owns exactly one Graph and one walk Storage for its
entire lifetime. It has no internal concurrency and no hidden global state:
every operation runs to completion on the calling goroutine, and the caller
must not interleave operations on the same instance.

Usage: mutate the graph through AddEdge/RemoveEdge (each mutation invalidates
exactly the cached walks that used the mutated edge), top up the walk cache
with Calculate, then read the scores with GetRanks.
*/
package meritrank

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/vertex-lab/meritrank/pkg/graph"
	"github.com/vertex-lab/meritrank/pkg/models"
	"github.com/vertex-lab/meritrank/pkg/walks"
)

const (
	// DefaultAlpha is the per-step probability of continuing a walk.
	DefaultAlpha = 0.85

	// DefaultMaxLength caps the number of nodes in a single walk. At the
	// default alpha a walk practically never gets there; it is a pure
	// safety bound.
	DefaultMaxLength = 100
)

// Score pairs a node with its normalized trust score from the ego's perspective.
type Score struct {
	Node  models.NodeID
	Value float64
}

// MeritRank owns the graph and the walk cache, and exposes the operations
// of the engine. Create it with New; mutate it through its methods only.
type MeritRank struct {
	graph   *graph.Graph
	storage *walks.Storage
	rng     *rand.Rand
}

// New creates a MeritRank instance that takes ownership of g.
// This is the only constructor.
func New(g *graph.Graph) (*MeritRank, error) {
	if g == nil {
		return nil, graph.ErrNilGraphPointer
	}

	storage, err := walks.NewStorage(DefaultAlpha, DefaultMaxLength)
	if err != nil {
		return nil, err
	}

	return &MeritRank{
		graph:   g,
		storage: storage,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// NodeCount returns the number of nodes in the graph.
func (mr *MeritRank) NodeCount() int {
	return mr.graph.NodeCount()
}

// Edges returns a point-in-time snapshot of the graph's edges.
func (mr *MeritRank) Edges() []graph.Edge {
	return mr.graph.Edges()
}

// AddNode adds nodeID to the graph. It is idempotent.
func (mr *MeritRank) AddNode(nodeID models.NodeID) {
	mr.graph.AddNode(nodeID)
}

/*
AddEdge inserts the edge source --> target or overwrites its weight.
Every cached walk that used that exact hop is invalidated first: a walk is
valid only as long as every edge it traversed is unchanged.
*/
func (mr *MeritRank) AddEdge(source, target models.NodeID, weight models.Weight) error {
	if !source.IsPresent() || !target.IsPresent() {
		return models.ErrInvalidNode
	}
	if source == target {
		return models.ErrSelfReferenceNotAllowed
	}

	mr.storage.Invalidate(source, target)
	return mr.graph.AddEdge(source, target, weight)
}

// RemoveEdge removes the edge source --> target if present, invalidating
// every cached walk that used it. Removing an absent edge is a no-op.
func (mr *MeritRank) RemoveEdge(source, target models.NodeID) {
	mr.storage.Invalidate(source, target)
	mr.graph.RemoveEdge(source, target)
}

/*
Calculate ensures the cache holds at least `iterations` valid walks seeded
at ego, sampling the deficit from the current graph. Its only effect is on
the cache; calling it again with an equal or smaller `iterations` and no
intervening mutation is a no-op.
*/
func (mr *MeritRank) Calculate(ego models.NodeID, iterations int) error {
	if !ego.IsPresent() {
		return models.ErrInvalidNode
	}
	if !mr.graph.ContainsNode(ego) {
		return models.ErrNodeDoesNotExist
	}

	return mr.storage.TopUp(mr.graph, ego, iterations, mr.rng)
}

/*
GetRanks aggregates the cached walks of ego into scores, ordered by
descending score with ties broken by ascending NodeID. If limit is positive
the result is truncated to that many entries.

A node's base score is its visit frequency across the cached walks,
normalized by the total visit count, so the scores sum to at most 1.0.
The ego itself is excluded from the output; its visits stay in the
denominator.

Distrust: the ego (at strength 1) and every scored node (at its own
frequency) spread a penalty along their negative out-edges, proportionally
to |weight|; the final score is max(0, frequency - penalty). Nodes that are
only reached by distrust appear with score 0.

GetRanks fails with ErrNoPathExists when no valid walks exist for ego.
*/
func (mr *MeritRank) GetRanks(ego models.NodeID, limit int) ([]Score, error) {
	if !ego.IsPresent() {
		return nil, models.ErrInvalidNode
	}
	if !mr.graph.ContainsNode(ego) {
		return nil, models.ErrNodeDoesNotExist
	}

	walksFor := mr.storage.WalksFor(ego)
	if len(walksFor) == 0 {
		return nil, models.ErrNoPathExists
	}

	frequencies := countAndNormalize(walksFor, ego)
	penalties := mr.distrustPenalties(ego, frequencies)

	scores := make([]Score, 0, len(frequencies)+len(penalties))
	for _, nodeID := range scoredNodes(frequencies, penalties, ego) {
		value := frequencies[nodeID] - penalties[nodeID]
		if value < 0 {
			value = 0
		}
		scores = append(scores, Score{Node: nodeID, Value: value})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Value != scores[j].Value {
			return scores[i].Value > scores[j].Value
		}
		return scores[i].Node < scores[j].Node
	})

	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// Clear drops all nodes, edges, and cached walks.
func (mr *MeritRank) Clear() {
	mr.graph.Clear()
	mr.storage.Clear()
}

// countAndNormalize computes the visit frequency of each node across the
// walks, excluding ego from the result but not from the total.
func countAndNormalize(walksFor []*models.RandomWalk, ego models.NodeID) map[models.NodeID]float64 {

	visits := make(map[models.NodeID]int)
	totalVisits := 0
	for _, walk := range walksFor {
		for _, nodeID := range walk.Nodes {
			visits[nodeID]++
			totalVisits++
		}
	}

	frequencies := make(map[models.NodeID]float64, len(visits))
	for nodeID, count := range visits {
		if nodeID == ego {
			continue
		}
		frequencies[nodeID] = float64(count) / float64(totalVisits)
	}
	return frequencies
}

/*
distrustPenalties accumulates, for every target of a negative edge, the
penalty mass pushed by the ego and by each scored node. A node's mass equals
its frequency (the ego's equals 1) and is split across its negative
out-edges proportionally to |weight|.

Iteration is in ascending NodeID order so repeated calls accumulate
floating-point sums identically.
*/
func (mr *MeritRank) distrustPenalties(ego models.NodeID,
	frequencies map[models.NodeID]float64) map[models.NodeID]float64 {

	penalties := make(map[models.NodeID]float64)

	spread := func(nodeID models.NodeID, strength float64) {
		targets, weights, err := mr.graph.NegativeSuccessors(nodeID)
		if err != nil || len(targets) == 0 {
			return
		}

		var totalAbs float64
		for _, weight := range weights {
			if w := math.Abs(float64(weight)); !math.IsInf(w, 1) && !math.IsNaN(w) {
				totalAbs += w
			}
		}
		if totalAbs <= 0 {
			return
		}

		for i, target := range targets {
			w := math.Abs(float64(weights[i]))
			if math.IsInf(w, 1) || math.IsNaN(w) {
				continue
			}
			penalties[target] += strength * w / totalAbs
		}
	}

	spread(ego, 1.0)

	sorted := make([]models.NodeID, 0, len(frequencies))
	for nodeID := range frequencies {
		sorted = append(sorted, nodeID)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, nodeID := range sorted {
		spread(nodeID, frequencies[nodeID])
	}
	return penalties
}

// scoredNodes returns the union of frequency and penalty keys, minus ego,
// in ascending order.
func scoredNodes(frequencies, penalties map[models.NodeID]float64, ego models.NodeID) []models.NodeID {

	seen := make(map[models.NodeID]struct{}, len(frequencies)+len(penalties))
	nodes := make([]models.NodeID, 0, len(frequencies)+len(penalties))

	for nodeID := range frequencies {
		seen[nodeID] = struct{}{}
		nodes = append(nodes, nodeID)
	}
	for nodeID := range penalties {
		if _, ok := seen[nodeID]; ok || nodeID == ego {
			continue
		}
		nodes = append(nodes, nodeID)
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}
