package redistore

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/meritrank/pkg/graph"
	"github.com/vertex-lab/meritrank/pkg/models"
	"github.com/vertex-lab/meritrank/pkg/utils/redisutils"
)

// SetupStore returns an EdgeStore on the test instance, skipping the test
// when Redis is not reachable.
func SetupStore(t *testing.T) (*EdgeStore, *redis.Client) {
	t.Helper()

	cl := redisutils.SetupTestClient()
	if err := cl.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis test instance not reachable: %v", err)
	}
	redisutils.CleanupRedis(cl)

	store, err := NewEdgeStore(cl)
	if err != nil {
		t.Fatalf("NewEdgeStore(): expected nil, got %v", err)
	}
	return store, cl
}

func TestNewEdgeStore(t *testing.T) {
	if _, err := NewEdgeStore(nil); !errors.Is(err, ErrNilClientPointer) {
		t.Errorf("NewEdgeStore(): expected %v, got %v", ErrNilClientPointer, err)
	}
}

func TestParseEdgeField(t *testing.T) {
	testCases := []struct {
		name           string
		field          string
		expectedSource models.NodeID
		expectedTarget models.NodeID
		expectedError  error
	}{
		{
			name:           "valid",
			field:          "11:42",
			expectedSource: 11,
			expectedTarget: 42,
			expectedError:  nil,
		},
		{
			name:           "no separator",
			field:          "1142",
			expectedSource: models.Absent,
			expectedTarget: models.Absent,
			expectedError:  models.ErrNodeIDParse,
		},
		{
			name:           "malformed source",
			field:          "a:42",
			expectedSource: models.Absent,
			expectedTarget: models.Absent,
			expectedError:  models.ErrNodeIDParse,
		},
		{
			name:           "malformed target",
			field:          "11:",
			expectedSource: models.Absent,
			expectedTarget: models.Absent,
			expectedError:  models.ErrNodeIDParse,
		},
		{
			name:           "reserved sentinel value",
			field:          "11:4294967295",
			expectedSource: models.Absent,
			expectedTarget: models.Absent,
			expectedError:  models.ErrInvalidNode,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			source, target, err := ParseEdgeField(test.field)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("ParseEdgeField(%q): expected %v, got %v", test.field, test.expectedError, err)
			}

			if source != test.expectedSource || target != test.expectedTarget {
				t.Errorf("ParseEdgeField(%q): expected (%d, %d), got (%d, %d)",
					test.field, test.expectedSource, test.expectedTarget, source, target)
			}
		})
	}
}

func TestSaveEdge(t *testing.T) {
	testCases := []struct {
		name          string
		source        models.NodeID
		target        models.NodeID
		weight        models.Weight
		expectedError error
	}{
		{
			name:          "self reference",
			source:        0,
			target:        0,
			weight:        1.0,
			expectedError: models.ErrSelfReferenceNotAllowed,
		},
		{
			name:          "absent sentinel",
			source:        models.Absent,
			target:        1,
			weight:        1.0,
			expectedError: models.ErrInvalidNode,
		},
		{
			name:          "valid",
			source:        0,
			target:        1,
			weight:        -2.5,
			expectedError: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			store, cl := SetupStore(t)
			defer redisutils.CleanupRedis(cl)
			ctx := context.Background()

			err := store.SaveEdge(ctx, test.source, test.target, test.weight)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("SaveEdge(): expected %v, got %v", test.expectedError, err)
			}

			if err != nil {
				return
			}

			edges, err := store.Edges(ctx)
			if err != nil {
				t.Fatalf("Edges(): expected nil, got %v", err)
			}

			expected := []graph.Edge{{Source: test.source, Target: test.target, Weight: test.weight}}
			if !reflect.DeepEqual(edges, expected) {
				t.Errorf("Edges(): expected %v, got %v", expected, edges)
			}
		})
	}
}

func TestSaveEdgeOverwrites(t *testing.T) {
	store, cl := SetupStore(t)
	defer redisutils.CleanupRedis(cl)
	ctx := context.Background()

	if err := store.SaveEdge(ctx, 0, 1, 1.0); err != nil {
		t.Fatalf("SaveEdge(): expected nil, got %v", err)
	}
	if err := store.SaveEdge(ctx, 0, 1, -2.0); err != nil {
		t.Fatalf("SaveEdge(): expected nil, got %v", err)
	}

	edges, err := store.Edges(ctx)
	if err != nil {
		t.Fatalf("Edges(): expected nil, got %v", err)
	}

	expected := []graph.Edge{{Source: 0, Target: 1, Weight: -2.0}}
	if !reflect.DeepEqual(edges, expected) {
		t.Errorf("Edges(): expected %v, got %v", expected, edges)
	}
}

func TestDeleteEdge(t *testing.T) {
	store, cl := SetupStore(t)
	defer redisutils.CleanupRedis(cl)
	ctx := context.Background()

	if err := store.SaveEdge(ctx, 0, 1, 1.0); err != nil {
		t.Fatalf("SaveEdge(): expected nil, got %v", err)
	}

	// deleting an absent edge is a no-op
	if err := store.DeleteEdge(ctx, 1, 0); err != nil {
		t.Fatalf("DeleteEdge(): expected nil, got %v", err)
	}

	if err := store.DeleteEdge(ctx, 0, 1); err != nil {
		t.Fatalf("DeleteEdge(): expected nil, got %v", err)
	}

	edges, err := store.Edges(ctx)
	if err != nil {
		t.Fatalf("Edges(): expected nil, got %v", err)
	}

	if len(edges) != 0 {
		t.Errorf("Edges(): expected 0 edges, got %v", edges)
	}
}

func TestLoadGraph(t *testing.T) {
	store, cl := SetupStore(t)
	defer redisutils.CleanupRedis(cl)
	ctx := context.Background()

	saved := []graph.Edge{
		{Source: 1, Target: 0, Weight: -1.0},
		{Source: 0, Target: 2, Weight: 0.5},
		{Source: 0, Target: 1, Weight: 1.0},
	}
	for _, edge := range saved {
		if err := store.SaveEdge(ctx, edge.Source, edge.Target, edge.Weight); err != nil {
			t.Fatalf("SaveEdge(): expected nil, got %v", err)
		}
	}

	g, err := store.LoadGraph(ctx)
	if err != nil {
		t.Fatalf("LoadGraph(): expected nil, got %v", err)
	}

	expected := []graph.Edge{
		{Source: 0, Target: 1, Weight: 1.0},
		{Source: 0, Target: 2, Weight: 0.5},
		{Source: 1, Target: 0, Weight: -1.0},
	}
	if !reflect.DeepEqual(g.Edges(), expected) {
		t.Errorf("LoadGraph(): expected %v, got %v", expected, g.Edges())
	}
}

func TestFlush(t *testing.T) {
	store, cl := SetupStore(t)
	defer redisutils.CleanupRedis(cl)
	ctx := context.Background()

	if err := store.SaveEdge(ctx, 0, 1, 1.0); err != nil {
		t.Fatalf("SaveEdge(): expected nil, got %v", err)
	}

	if err := store.Flush(ctx); err != nil {
		t.Fatalf("Flush(): expected nil, got %v", err)
	}

	edges, err := store.Edges(ctx)
	if err != nil {
		t.Fatalf("Edges(): expected nil, got %v", err)
	}

	if len(edges) != 0 {
		t.Errorf("Flush(): expected 0 edges, got %v", edges)
	}
}
