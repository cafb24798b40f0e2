/*
The meritrank binary loads the persisted trust graph from Redis, computes
the personalized ranks of the configured ego, prints them, and optionally
renders them to an HTML chart.

Configuration is read from the environment (and .env): REDIS_ADDRESS, EGO,
ITERATIONS, LIMIT, CHART_FILE, LOGS.
*/
package main

import (
	"context"
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vertex-lab/meritrank/pkg/graph"
	"github.com/vertex-lab/meritrank/pkg/meritrank"
	"github.com/vertex-lab/meritrank/pkg/store/redistore"
	"github.com/vertex-lab/meritrank/pkg/utils/redisutils"
	"github.com/vertex-lab/meritrank/pkg/vis"
)

func main() {
	fmt.Println("------------------------")
	fmt.Println("MeritRank is running")
	fmt.Println("------------------------")

	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	defer config.CloseLogs()
	config.Print()

	ctx := context.Background()
	cl := redisutils.SetupClient(config.RedisAddress)
	defer cl.Close()

	ES, err := redistore.NewEdgeStore(cl)
	if err != nil {
		panic(err)
	}

	edges, err := ES.Edges(ctx)
	if err != nil {
		config.Log.Error("failed to load edges: %v", err)
		panic(err)
	}

	// build the graph, streaming progress to stdout
	g := graph.New()
	edgeCounter := xsync.NewCounter()
	for _, edge := range edges {
		if err := g.AddEdge(edge.Source, edge.Target, edge.Weight); err != nil {
			config.Log.Warn("skipping edge %d --> %d: %v", edge.Source, edge.Target, err)
			continue
		}

		edgeCounter.Inc()
		fmt.Printf("\rEdges loaded: %d", edgeCounter.Value())
	}
	fmt.Println()
	config.Log.Info("graph loaded: %d nodes, %d edges", g.NodeCount(), edgeCounter.Value())

	mr, err := meritrank.New(g)
	if err != nil {
		panic(err)
	}

	if err := mr.Calculate(config.Ego, config.Iterations); err != nil {
		config.Log.Error("calculate failed for ego %d: %v", config.Ego, err)
		panic(err)
	}

	scores, err := mr.GetRanks(config.Ego, config.Limit)
	if err != nil {
		config.Log.Error("get ranks failed for ego %d: %v", config.Ego, err)
		panic(err)
	}

	for _, score := range scores {
		fmt.Printf("%d: %f\n", score.Node, score.Value)
	}

	if config.ChartFile != "" {
		title := fmt.Sprintf("trust ranks of ego %d", config.Ego)
		if err := vis.RenderScoresToFile(config.ChartFile, scores, title, nil); err != nil {
			config.Log.Error("failed to render chart: %v", err)
			panic(err)
		}
		config.Log.Info("chart written to %v", config.ChartFile)
	}
}
