/*
The walks package implements the random walk sampler and the walk Storage.

The Storage owns the corpus of sampled walks, organized so that a graph
mutation touching node N costs time proportional to the number of stored
walks passing through N, not the size of the whole corpus. This is achieved
with the pass-through index WalksVisiting, the reverse mapping from each
node to the set of walks that visit it.
*/
package walks

import (
	"errors"
	"math/rand"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vertex-lab/meritrank/pkg/graph"
	"github.com/vertex-lab/meritrank/pkg/models"
)

// WalkSet is a set of pointers to RandomWalks.
type WalkSet = mapset.Set[*models.RandomWalk]

/*
Storage caches terminated walks per ego node.

FIELDS
------

	> WalksByEgo: map[models.NodeID][]*models.RandomWalk
	Associates each ego with the walks currently seeded at it. These are the
	walks that Calculate tops up and GetRanks aggregates.

	> WalksVisiting: map[models.NodeID]WalkSet
	The pass-through index: associates each node with the set of walks that
	visit it, whoever their ego is. A walk is added once per distinct node
	it visits.

The two structures are always updated together: no walk exists uncounted in
the index, and no index entry references a walk that is not stored.
*/
type Storage struct {
	WalksByEgo    map[models.NodeID][]*models.RandomWalk
	WalksVisiting map[models.NodeID]WalkSet

	alpha     float64
	maxLength int
}

// NewStorage creates an empty Storage with the specified dampening factor
// alpha (the per-step probability of continuing a walk) and walk length cap.
func NewStorage(alpha float64, maxLength int) (*Storage, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, ErrInvalidAlpha
	}
	if maxLength <= 0 {
		return nil, ErrInvalidMaxLength
	}

	return &Storage{
		WalksByEgo:    make(map[models.NodeID][]*models.RandomWalk),
		WalksVisiting: make(map[models.NodeID]WalkSet),
		alpha:         alpha,
		maxLength:     maxLength,
	}, nil
}

// Alpha returns the dampening factor used by the sampler.
func (s *Storage) Alpha() float64 {
	return s.alpha
}

// WalksFor returns the currently valid walks seeded at ego.
// The returned slice is owned by the Storage and must not be mutated.
func (s *Storage) WalksFor(ego models.NodeID) []*models.RandomWalk {
	if s == nil {
		return nil
	}
	return s.WalksByEgo[ego]
}

// VisitingCount returns the number of stored walks that visit nodeID.
func (s *Storage) VisitingCount(nodeID models.NodeID) int {
	if s == nil {
		return 0
	}

	walkSet, exists := s.WalksVisiting[nodeID]
	if !exists {
		return 0
	}
	return walkSet.Cardinality()
}

// addWalk stores a terminated walk under its ego and indexes it under every
// distinct node it visits.
func (s *Storage) addWalk(walk *models.RandomWalk) error {
	if err := walk.Validate(); err != nil {
		return err
	}

	ego := walk.Ego()
	s.WalksByEgo[ego] = append(s.WalksByEgo[ego], walk)

	for _, nodeID := range distinctNodes(walk) {
		if _, exists := s.WalksVisiting[nodeID]; !exists {
			s.WalksVisiting[nodeID] = mapset.NewSet[*models.RandomWalk]()
		}
		s.WalksVisiting[nodeID].Add(walk)
	}

	return nil
}

// removeWalk removes the walk from the forward store and from the index
// entry of every node it visits, in the same operation.
func (s *Storage) removeWalk(walk *models.RandomWalk) {
	ego := walk.Ego()

	if i := slices.Index(s.WalksByEgo[ego], walk); i != -1 {
		s.WalksByEgo[ego] = slices.Delete(s.WalksByEgo[ego], i, i+1)
	}
	if len(s.WalksByEgo[ego]) == 0 {
		delete(s.WalksByEgo, ego)
	}

	for _, nodeID := range distinctNodes(walk) {
		walkSet, exists := s.WalksVisiting[nodeID]
		if !exists {
			continue
		}

		walkSet.Remove(walk)
		if walkSet.Cardinality() == 0 {
			delete(s.WalksVisiting, nodeID)
		}
	}
}

/*
Invalidate removes every stored walk that used the hop source --> target,
whatever its ego. Walks that merely pass through the endpoints without using
that exact transition remain valid.

The affected walks are located through the pass-through index, so the cost
is proportional to the number of walks visiting source.
*/
func (s *Storage) Invalidate(source, target models.NodeID) {
	if s == nil {
		return
	}

	walkSet, exists := s.WalksVisiting[source]
	if !exists {
		return
	}

	// ToSlice: the set cannot be mutated while iterating it
	for _, walk := range walkSet.ToSlice() {
		if walk.UsedEdge(source, target) {
			s.removeWalk(walk)
		}
	}
}

/*
TopUp brings the number of valid walks for ego up to `iterations`, sampling
the deficit from the current graph. It is a no-op when enough walks are
already cached.

TopUp is all-or-nothing: if any sample fails, the Storage is left exactly as
it was before the call. An ego with no outgoing edges stores nothing; its
stale walks, if any, are dropped.
*/
func (s *Storage) TopUp(g *graph.Graph, ego models.NodeID, iterations int, rng *rand.Rand) error {
	if s == nil {
		return ErrNilStoragePointer
	}

	if !g.ContainsNode(ego) {
		return models.ErrNodeDoesNotExist
	}

	// nothing to walk on: an isolated ego holds no walks at all
	if g.OutDegree(ego) == 0 {
		s.DropWalks(ego)
		return nil
	}

	deficit := iterations - len(s.WalksByEgo[ego])
	if deficit <= 0 {
		return nil
	}

	newWalks := make([]*models.RandomWalk, 0, deficit)
	for i := 0; i < deficit; i++ {
		walk, err := generateWalk(g, ego, s.alpha, s.maxLength, rng)
		if err != nil {
			return err
		}
		newWalks = append(newWalks, walk)
	}

	for _, walk := range newWalks {
		if err := s.addWalk(walk); err != nil {
			return err
		}
	}
	return nil
}

// DropWalks removes all walks seeded at ego.
func (s *Storage) DropWalks(ego models.NodeID) {
	if s == nil {
		return
	}

	walks := slices.Clone(s.WalksByEgo[ego])
	for _, walk := range walks {
		s.removeWalk(walk)
	}
}

// Clear drops all walks and index entries.
func (s *Storage) Clear() {
	if s == nil {
		return
	}
	s.WalksByEgo = make(map[models.NodeID][]*models.RandomWalk)
	s.WalksVisiting = make(map[models.NodeID]WalkSet)
}

// distinctNodes returns the nodes visited by the walk, without repetitions,
// in first-visit order.
func distinctNodes(walk *models.RandomWalk) []models.NodeID {
	seen := make(map[models.NodeID]struct{}, len(walk.Nodes))
	nodes := make([]models.NodeID, 0, len(walk.Nodes))

	for _, nodeID := range walk.Nodes {
		if _, ok := seen[nodeID]; ok {
			continue
		}
		seen[nodeID] = struct{}{}
		nodes = append(nodes, nodeID)
	}
	return nodes
}

//---------------------------------ERROR-CODES---------------------------------

var ErrInvalidAlpha = errors.New("alpha should be a number between 0 and 1 (excluded)")
var ErrInvalidMaxLength = errors.New("maxLength should be greater than zero")
var ErrNilStoragePointer = errors.New("nil walk storage pointer")
