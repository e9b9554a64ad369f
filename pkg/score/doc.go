// Package score simulates candidate walks against a time budget and selects
// the best one.
//
// # Accounting
//
// A walk starts on its first valve with the full budget. Standing on that
// valve is free: unlike a literal one-minute charge per position, only
// stepping onto each following valve costs a minute. Once a step leaves no
// time, nothing further counts. Opening costs one more minute and is done the first time
// a valve with a positive rate appears in the path, releasing rate times the
// minutes left. Revisits cost only the step.
//
// With the default budget of 30, the walk AA → BB with BB at rate 13
// releases 13 × 28 = 364.
//
// # Selection
//
// [Best] and [Rank] evaluate candidates in parallel using an errgroup bounded
// by [Options].Workers. Scores are merged by index, so ties always resolve to
// the earliest candidate.
package score
