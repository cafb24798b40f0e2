package walks

import (
	"math/rand"

	"github.com/vertex-lab/meritrank/pkg/graph"
	"github.com/vertex-lab/meritrank/pkg/models"
)

/*
generateWalk samples one walk from the specified starting node.

At each step the next node is chosen among the strictly positive outgoing
edges of the current node, with probability proportional to weight.
The walk terminates when:

- the maximum length is reached (models.MaxLength)

- the current node has no viable outgoing edge (models.NoViableEdge)

- the per-step restart fires, with probability 1-alpha (models.RestartFired)

Negative edges are never followed; they are accounted for at aggregation
time by the meritrank package.

# REFERENCES

[1] B. Bahmani, A. Chowdhury, A. Goel; "Fast Incremental and Personalized PageRank"
URL: http://snap.stanford.edu/class/cs224w-readings/bahmani10pagerank.pdf
*/
func generateWalk(g *graph.Graph, start models.NodeID,
	alpha float64, maxLength int, rng *rand.Rand) (*models.RandomWalk, error) {

	if !start.IsPresent() {
		return nil, models.ErrInvalidNode
	}

	if !g.ContainsNode(start) {
		return nil, models.ErrNodeDoesNotExist
	}

	currentNodeID := start
	nodes := []models.NodeID{currentNodeID}

	for {
		if len(nodes) >= maxLength {
			return &models.RandomWalk{Nodes: nodes, Stop: models.MaxLength}, nil
		}

		// restart with probability 1-alpha
		if rng.Float64() > alpha {
			return &models.RandomWalk{Nodes: nodes, Stop: models.RestartFired}, nil
		}

		successors, weights, err := g.ViableSuccessors(currentNodeID)
		if err != nil {
			return nil, err
		}

		if len(successors) == 0 {
			return &models.RandomWalk{Nodes: nodes, Stop: models.NoViableEdge}, nil
		}

		index, err := WeightedChoice(weights, rng)
		if err != nil {
			return nil, err
		}

		currentNodeID = successors[index]
		nodes = append(nodes, currentNodeID)
	}
}
