// Package valve parses valve records and defines the immutable [Valve] value.
//
// # Record Grammar
//
// Each input line describes one valve and the tunnels leaving it:
//
//	Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
//	Valve HH has flow rate=22; tunnel leads to valve GG
//
// Both singular and plural forms of the tunnel clause are accepted. A line
// that does not match yields a [FormatError] carrying the line number.
//
// # Two-Phase Construction
//
// Parsing fills mutable [Record] values owned by a [Parser]. A valve
// mentioned only as a tunnel target exists as a stub record with no rate.
// [Record.Valve] turns a finished record into a [Valve] and reports
// [UnsetRateError] if the rate was never assigned:
//
//	p := valve.NewParser()
//	if err := p.Parse(ctx, r); err != nil {
//	    return err // *valve.FormatError
//	}
//	for _, rec := range p.Records() {
//	    v, err := rec.Valve()
//	    ...
//	}
//
// Parser state lives in the Parser value, never in package globals.
package valve
