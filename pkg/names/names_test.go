package names

import (
	"errors"
	"testing"

	"github.com/vertex-lab/meritrank/pkg/models"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	// sequential assignment from zero
	if nodeID := r.Resolve("alice"); nodeID != 0 {
		t.Errorf("Resolve(alice): expected 0, got %d", nodeID)
	}
	if nodeID := r.Resolve("bob"); nodeID != 1 {
		t.Errorf("Resolve(bob): expected 1, got %d", nodeID)
	}

	// resolving again returns the same ID
	if nodeID := r.Resolve("alice"); nodeID != 0 {
		t.Errorf("Resolve(alice): expected 0, got %d", nodeID)
	}

	if r.Size() != 2 {
		t.Errorf("Size(): expected 2, got %d", r.Size())
	}

	nodeID, err := r.Lookup("bob")
	if err != nil || nodeID != 1 {
		t.Errorf("Lookup(bob): expected 1, got %d (error %v)", nodeID, err)
	}

	if _, err := r.Lookup("carol"); !errors.Is(err, models.ErrNodeDoesNotExist) {
		t.Errorf("Lookup(carol): expected %v, got %v", models.ErrNodeDoesNotExist, err)
	}

	name, err := r.NameOf(0)
	if err != nil || name != "alice" {
		t.Errorf("NameOf(0): expected alice, got %q (error %v)", name, err)
	}
}

func TestNameOfErrors(t *testing.T) {
	r := NewRegistry()
	r.Resolve("alice")

	testCases := []struct {
		name          string
		nodeID        models.NodeID
		expectedError error
	}{
		{
			name:          "absent sentinel",
			nodeID:        models.Absent,
			expectedError: models.ErrInvalidNode,
		},
		{
			name:          "never assigned",
			nodeID:        1,
			expectedError: models.ErrNodeDoesNotExist,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if _, err := r.NameOf(test.nodeID); !errors.Is(err, test.expectedError) {
				t.Errorf("NameOf(%d): expected %v, got %v", test.nodeID, test.expectedError, err)
			}
		})
	}
}

func TestParseNodeID(t *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedNodeID models.NodeID
		expectedError  error
	}{
		{
			name:           "valid",
			input:          "42",
			expectedNodeID: 42,
			expectedError:  nil,
		},
		{
			name:           "zero",
			input:          "0",
			expectedNodeID: 0,
			expectedError:  nil,
		},
		{
			name:           "not a number",
			input:          "alice",
			expectedNodeID: models.Absent,
			expectedError:  models.ErrNodeIDParse,
		},
		{
			name:           "negative",
			input:          "-1",
			expectedNodeID: models.Absent,
			expectedError:  models.ErrNodeIDParse,
		},
		{
			name:           "overflows uint32",
			input:          "4294967296",
			expectedNodeID: models.Absent,
			expectedError:  models.ErrNodeIDParse,
		},
		{
			name:           "the reserved sentinel value",
			input:          "4294967295",
			expectedNodeID: models.Absent,
			expectedError:  models.ErrInvalidNode,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			nodeID, err := ParseNodeID(test.input)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("ParseNodeID(%q): expected %v, got %v", test.input, test.expectedError, err)
			}

			if nodeID != test.expectedNodeID {
				t.Errorf("ParseNodeID(%q): expected %d, got %d", test.input, test.expectedNodeID, nodeID)
			}
		})
	}
}
