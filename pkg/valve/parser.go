package valve

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	flowClauseRe   = regexp.MustCompile(`^Valve ([A-Za-z0-9_]+) has flow rate=(\S*)$`)
	tunnelClauseRe = regexp.MustCompile(`^tunnels? leads? to valves? (.+)$`)
	valveIDRe      = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Parser accumulates records from valve lines.
//
// A Parser is owned by its caller and scoped to one input: create one with
// [NewParser], feed it lines, then hand [Parser.Records] to the network
// builder and drop it. Parsers share no state, so independent inputs can be
// parsed side by side. A single Parser is not safe for concurrent use.
type Parser struct {
	records map[string]*Record
	order   []string
}

// NewParser returns an empty parser.
func NewParser() *Parser {
	return &Parser{records: make(map[string]*Record)}
}

// Parse reads r line by line until EOF. Blank lines are skipped.
// The first malformed line aborts parsing with a [FormatError] naming it.
func (p *Parser) Parse(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.ParseLine(lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read records: %w", err)
	}
	return nil
}

// ParseLine applies one record line. lineNo is only used in error messages.
//
// The subject gets its rate; every listed neighbour gets a stub record if it
// has not been seen yet, and a tunnel subject → neighbour is recorded. The
// line is validated in full before any state changes, so a failing line
// leaves the parser untouched.
func (p *Parser) ParseLine(lineNo int, line string) error {
	text := strings.TrimSpace(line)
	fail := func(format string, args ...any) error {
		return &FormatError{Line: lineNo, Text: line, Reason: fmt.Sprintf(format, args...)}
	}

	head, tail, ok := strings.Cut(text, ";")
	if !ok {
		return fail("missing tunnel clause")
	}

	flow := flowClauseRe.FindStringSubmatch(strings.TrimSpace(head))
	if flow == nil {
		return fail("malformed flow-rate clause")
	}
	id := flow[1]
	rate, err := strconv.Atoi(flow[2])
	if err != nil {
		return fail("invalid flow rate %q", flow[2])
	}
	if rate < 0 {
		return fail("negative flow rate %d", rate)
	}

	tunnel := tunnelClauseRe.FindStringSubmatch(strings.TrimSpace(tail))
	if tunnel == nil {
		return fail("malformed tunnel clause")
	}
	var targets []string
	for _, raw := range strings.Split(tunnel[1], ",") {
		to := strings.TrimSpace(raw)
		if !valveIDRe.MatchString(to) {
			return fail("invalid tunnel target %q", to)
		}
		targets = append(targets, to)
	}

	subject := p.record(id)
	if subject.rateSet {
		return fail("flow rate of %s already assigned", id)
	}
	subject.rate = rate
	subject.rateSet = true
	for _, to := range targets {
		p.record(to)
		subject.addTunnel(to)
	}
	return nil
}

// Records returns every record in first-mention order.
func (p *Parser) Records() []*Record {
	out := make([]*Record, len(p.order))
	for i, id := range p.order {
		out[i] = p.records[id]
	}
	return out
}

// Record returns the record for id, if it was mentioned.
func (p *Parser) Record(id string) (*Record, bool) {
	r, ok := p.records[id]
	return r, ok
}

// Len returns the number of distinct identifiers seen so far.
func (p *Parser) Len() int { return len(p.order) }

func (p *Parser) record(id string) *Record {
	if r, ok := p.records[id]; ok {
		return r
	}
	r := newRecord(id)
	p.records[id] = r
	p.order = append(p.order, id)
	return r
}

// Read parses all of r with a fresh parser and returns its records.
func Read(ctx context.Context, r io.Reader) ([]*Record, error) {
	p := NewParser()
	if err := p.Parse(ctx, r); err != nil {
		return nil, err
	}
	return p.Records(), nil
}
