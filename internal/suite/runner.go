package suite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/valentin001-77/jsonpath"
	"github.com/valentin001-77/jsonpath/internal/ratelimit"
)

// CaseResult is the outcome of one case across all iterations. Failures
// holds one message per violated expectation, recorded on the first
// iteration that violates it.
type CaseResult struct {
	Name     string   `json:"name"`
	Query    string   `json:"query"`
	Matches  int      `json:"matches"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

// Report summarizes a suite run, tagged with a unique run ID.
type Report struct {
	RunID      string        `json:"run_id"`
	Document   string        `json:"document,omitempty"`
	Iterations int           `json:"iterations"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration_ns"`
	Results    []CaseResult  `json:"results"`
}

// Runner evaluates suites. Queries compile once per run and are reused
// across iterations.
type Runner struct {
	limiter *ratelimit.Limiter
}

func NewRunner(limiter *ratelimit.Limiter) *Runner {
	if limiter == nil {
		limiter = ratelimit.New(0)
	}
	return &Runner{limiter: limiter}
}

// Run compiles every case, then evaluates the suite against document for
// the given number of iterations, pacing them through the limiter. A syntax
// error in any case query aborts the run before evaluation starts.
func (r *Runner) Run(ctx context.Context, s *Suite, document any, iterations int) (*Report, error) {
	if iterations < 1 {
		iterations = 1
	}

	compiled := make([]*jsonpath.Query, len(s.Cases))
	for i, c := range s.Cases {
		q, err := jsonpath.Parse(c.Query)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
		compiled[i] = q
	}

	report := &Report{
		RunID:      uuid.New().String(),
		Document:   s.Document,
		Iterations: iterations,
		Results:    make([]CaseResult, len(s.Cases)),
	}
	for i, c := range s.Cases {
		report.Results[i] = CaseResult{Name: c.Name, Query: c.Query, Passed: true}
	}

	started := time.Now()
	for iteration := 0; iteration < iterations; iteration++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("suite interrupted: %w", err)
		}

		for i := range s.Cases {
			result := &report.Results[i]
			nodes, err := compiled[i].Select(document)
			if err != nil {
				result.fail(fmt.Sprintf("evaluation failed: %v", err))
				continue
			}
			result.Matches = len(nodes)
			checkCase(&s.Cases[i], nodes, result)
		}
	}
	report.Duration = time.Since(started)

	for _, result := range report.Results {
		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	return report, nil
}

func checkCase(c *Case, nodes jsonpath.Nodelist, result *CaseResult) {
	if c.Count != nil && len(nodes) != *c.Count {
		result.fail(fmt.Sprintf("expected %d matches, got %d", *c.Count, len(nodes)))
	}

	if c.Values != nil {
		values := nodes.Values()
		if len(values) != len(c.Values) {
			result.fail(fmt.Sprintf("expected %d values, got %d", len(c.Values), len(values)))
		} else {
			for i, want := range c.Values {
				if !jsonpath.Equal(values[i], want) {
					result.fail(fmt.Sprintf("value %d: got %v, want %v", i, values[i], want))
				}
			}
		}
	}

	if c.Paths != nil {
		paths := nodes.Paths()
		if len(paths) != len(c.Paths) {
			result.fail(fmt.Sprintf("expected %d paths, got %d", len(c.Paths), len(paths)))
		} else {
			for i, want := range c.Paths {
				if paths[i] != want {
					result.fail(fmt.Sprintf("path %d: got %s, want %s", i, paths[i], want))
				}
			}
		}
	}
}

// fail records a failure message once per distinct expectation violation.
func (r *CaseResult) fail(message string) {
	r.Passed = false
	for _, existing := range r.Failures {
		if existing == message {
			return
		}
	}
	r.Failures = append(r.Failures, message)
}
