// Package pipeline runs the valve pressure solve end to end.
//
// The pipeline has four stages:
//
//  1. Parse: read valve records from text
//  2. Build: assemble the directed network and mark the entry valve
//  3. Generate: compose one candidate walk per ordered pair of useful valves
//  4. Score: simulate every candidate within the budget and keep the best
//
// Both the CLI and the HTTP server drive it through a [Runner], which adds
// caching of the built network and of the final [Solution].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{Budget: 30})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Solution.Score)
//
// The stage functions [Parse], [Build], [Generate] and [Score] can also be
// called on their own.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/score"
	"github.com/matzehuels/valvepath/pkg/valve"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultEntry is the valve every walk starts at.
	DefaultEntry = network.DefaultEntry

	// DefaultBudget is the number of minutes available to a walk.
	DefaultBudget = score.DefaultBudget

	// MaxBudget bounds the budget accepted from users.
	MaxBudget = 10000

	// MaxTop bounds the number of ranked candidates returned.
	MaxTop = 1000
)

// validate is a singleton validator instance.
var validate = validator.New()

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a solve.
// This struct supports JSON serialization for API requests.
type Options struct {
	Entry   string `json:"entry,omitempty" validate:"omitempty,max=64"`
	Budget  int    `json:"budget,omitempty" validate:"gte=0,lte=10000"`
	Workers int    `json:"workers,omitempty" validate:"gte=0,lte=1024"`
	Top     int    `json:"top,omitempty" validate:"gte=0,lte=1000"` // Ranked candidates to keep; 0 keeps only the best
	Refresh bool   `json:"refresh,omitempty"`                       // Ignore cached entries and recompute

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" validate:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks field ranges and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
// Validation failures carry [pkgerrors.ErrCodeInvalidInput].
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := validate.Struct(o); err != nil {
		return formatValidationError(err)
	}
	o.SetDefaults()
	if err := pkgerrors.ValidateValveID(o.Entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "entry")
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Entry == "" {
		o.Entry = DefaultEntry
	}
	if o.Budget == 0 {
		o.Budget = DefaultBudget
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ScoreOptions returns the options for package score.
func (o *Options) ScoreOptions() score.Options {
	return score.Options{Budget: o.Budget, Workers: o.Workers}
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "invalid options")
	}
	e := verrs[0]
	field := e.Field()
	switch e.Tag() {
	case "gte", "min":
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "%s: must be at least %s", field, e.Param())
	case "lte", "max":
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "%s: must not exceed %s", field, e.Param())
	default:
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "%s: validation failed (%s)", field, e.Tag())
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Network is the built valve network.
	Network *network.Network

	// NetworkHash is the content hash of the network's JSON form.
	NetworkHash string

	// Solution is the scored outcome.
	Solution *Solution

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Solution is the serializable outcome of the generate and score stages.
// It is what the result cache stores and what the API returns.
type Solution struct {
	Score      int             `json:"score"`
	Best       Ranked          `json:"best"`
	Openings   []score.Opening `json:"openings"`
	Ranked     []Ranked        `json:"ranked,omitempty"`
	Skipped    []Pair          `json:"skipped,omitempty"`
	Useful     []valve.Valve   `json:"useful"`
	Candidates int             `json:"candidates"`
	Budget     int             `json:"budget"`
}

// Ranked is one scored candidate.
type Ranked struct {
	Index int      `json:"index"`
	From  string   `json:"from"`
	To    string   `json:"to"`
	Path  []string `json:"path"`
	Score int      `json:"score"`
}

// Pair is the missing leg of a skipped candidate.
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Valves       int           `json:"valves"`
	Tunnels      int           `json:"tunnels"`
	Useful       int           `json:"useful"`
	Candidates   int           `json:"candidates"`
	Skipped      int           `json:"skipped"`
	ParseTime    time.Duration `json:"parse_ns"`
	BuildTime    time.Duration `json:"build_ns"`
	GenerateTime time.Duration `json:"generate_ns"`
	ScoreTime    time.Duration `json:"score_ns"`
}

// Total returns the summed stage durations.
func (s Stats) Total() time.Duration {
	return s.ParseTime + s.BuildTime + s.GenerateTime + s.ScoreTime
}

// CacheInfo tracks cache hits for each cached item.
type CacheInfo struct {
	NetworkHit bool `json:"network_hit"` // Whether the network came from cache
	ResultHit  bool `json:"result_hit"`  // Whether the solution came from cache
}

func (c CacheInfo) String() string {
	return fmt.Sprintf("network=%t result=%t", c.NetworkHit, c.ResultHit)
}
