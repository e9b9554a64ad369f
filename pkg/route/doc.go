// Package route composes candidate walks through a valve network.
//
// A candidate visits two useful valves (rate > 0) in order: it follows the
// shortest path from the entry to the first waypoint and then the shortest
// path from there to the second. [Generate] builds one candidate per ordered
// pair of distinct useful valves:
//
//	set, err := route.Generate(ctx, n)
//	for _, c := range set.Candidates {
//	    fmt.Println(c.Path)
//	}
//
// Pairs with a leg that has no path are reported in Set.Skipped as
// [UnreachableError] values instead of failing the run.
//
// Only two waypoints are considered, so the best candidate may release less
// pressure than the best unrestricted valve-opening order.
package route
