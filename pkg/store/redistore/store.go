/*
The redistore package persists the edge list of the trust graph in Redis.
It is an external collaborator of the engine: the core never performs I/O,
so a caller (see cmd/meritrank) saves edges here as they arrive and rebuilds
the in-memory Graph snapshot on startup with LoadGraph.
*/
package redistore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/meritrank/pkg/graph"
	"github.com/vertex-lab/meritrank/pkg/models"
	"github.com/vertex-lab/meritrank/pkg/names"
)

// EdgeStore persists edges in the Redis hash KeyEdges(), one field per
// ordered pair, so re-saving a pair overwrites its weight like the Graph does.
type EdgeStore struct {
	client *redis.Client
}

// NewEdgeStore creates an EdgeStore using the provided Redis client.
func NewEdgeStore(cl *redis.Client) (*EdgeStore, error) {
	if cl == nil {
		return nil, ErrNilClientPointer
	}
	return &EdgeStore{client: cl}, nil
}

// SaveEdge writes or overwrites the edge source --> target with the specified weight.
func (ES *EdgeStore) SaveEdge(ctx context.Context, source, target models.NodeID, weight models.Weight) error {
	if !source.IsPresent() || !target.IsPresent() {
		return models.ErrInvalidNode
	}
	if source == target {
		return models.ErrSelfReferenceNotAllowed
	}

	return ES.client.HSet(ctx, KeyEdges(), edgeField(source, target), float64(weight)).Err()
}

// DeleteEdge removes the edge source --> target. Deleting an absent edge is a no-op.
func (ES *EdgeStore) DeleteEdge(ctx context.Context, source, target models.NodeID) error {
	return ES.client.HDel(ctx, KeyEdges(), edgeField(source, target)).Err()
}

// Edges returns a snapshot of all persisted edges, sorted by (source, target).
func (ES *EdgeStore) Edges(ctx context.Context) ([]graph.Edge, error) {
	fields, err := ES.client.HGetAll(ctx, KeyEdges()).Result()
	if err != nil {
		return nil, err
	}

	edges := make([]graph.Edge, 0, len(fields))
	for field, value := range fields {
		source, target, err := ParseEdgeField(field)
		if err != nil {
			return nil, err
		}

		weight, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed weight %q for edge %s: %w", value, field, err)
		}

		edges = append(edges, graph.Edge{Source: source, Target: target, Weight: models.Weight(weight)})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges, nil
}

// LoadGraph rebuilds an in-memory Graph snapshot from the persisted edges.
func (ES *EdgeStore) LoadGraph(ctx context.Context) (*graph.Graph, error) {
	edges, err := ES.Edges(ctx)
	if err != nil {
		return nil, err
	}
	return graph.NewFromEdges(edges)
}

// Flush drops all persisted edges.
func (ES *EdgeStore) Flush(ctx context.Context) error {
	return ES.client.Del(ctx, KeyEdges()).Err()
}

// KeyEdges returns the Redis key of the edges hash.
func KeyEdges() string {
	return "edges"
}

// edgeField formats the hash field of the edge source --> target, e.g. "11:42".
func edgeField(source, target models.NodeID) string {
	return fmt.Sprintf("%d:%d", source, target)
}

// ParseEdgeField parses a hash field back into its endpoints.
// Malformed fields fail with ErrNodeIDParse.
func ParseEdgeField(field string) (models.NodeID, models.NodeID, error) {
	sourceStr, targetStr, found := strings.Cut(field, ":")
	if !found {
		return models.Absent, models.Absent, models.ErrNodeIDParse
	}

	source, err := names.ParseNodeID(sourceStr)
	if err != nil {
		return models.Absent, models.Absent, err
	}

	target, err := names.ParseNodeID(targetStr)
	if err != nil {
		return models.Absent, models.Absent, err
	}

	return source, target, nil
}

//---------------------------------ERROR-CODES---------------------------------

var ErrNilClientPointer = errors.New("nil redis client pointer")
