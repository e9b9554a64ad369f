// Package pkg provides the core libraries for valvepath.
//
// # Overview
//
// valvepath reads a description of valves joined by one-way tunnels and
// finds the walk that releases the most pressure within a time budget. The
// pkg directory is organized into three areas:
//
//  1. Domain: [valve], [network], [route], [score]
//  2. Orchestration: [pipeline], with [cache] and [graph] for persistence
//  3. Surfaces and support: [server], [render], [config], [metrics],
//     [observability], [errors], [buildinfo]
//
// # Architecture
//
// The data flow through a solve:
//
//	text records
//	     ↓
//	[valve] parse lines into records
//	     ↓
//	[network] build the directed graph, mark the entry
//	     ↓
//	[route] build entry → x → y walks for every ordered pair of useful valves
//	     ↓
//	[score] simulate each walk, keep the best
//
// [pipeline.Runner] runs these stages, caching the network and the solution
// through [cache.Cache].
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, input, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Solution.Score)
//
// [valve]: github.com/matzehuels/valvepath/pkg/valve
// [network]: github.com/matzehuels/valvepath/pkg/network
// [route]: github.com/matzehuels/valvepath/pkg/route
// [score]: github.com/matzehuels/valvepath/pkg/score
// [pipeline]: github.com/matzehuels/valvepath/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/valvepath/pkg/pipeline.Runner
// [cache]: github.com/matzehuels/valvepath/pkg/cache
// [cache.Cache]: github.com/matzehuels/valvepath/pkg/cache.Cache
// [graph]: github.com/matzehuels/valvepath/pkg/graph
// [server]: github.com/matzehuels/valvepath/pkg/server
// [render]: github.com/matzehuels/valvepath/pkg/render
// [config]: github.com/matzehuels/valvepath/pkg/config
// [metrics]: github.com/matzehuels/valvepath/pkg/metrics
// [observability]: github.com/matzehuels/valvepath/pkg/observability
// [errors]: github.com/matzehuels/valvepath/pkg/errors
// [buildinfo]: github.com/matzehuels/valvepath/pkg/buildinfo
package pkg
