package cinematerial

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultConcurrency is the number of lookups SearchMany runs at once
	DefaultConcurrency = 5
	// MaxConcurrency caps the concurrency accepted by SearchMany
	MaxConcurrency = 20
)

// Outcome is the result of one query of a batch
type Outcome struct {
	Query  Query
	Label  string
	Result *Result
	Err    error
}

// Error implements the error interface for failed outcomes
func (o Outcome) Error() string {
	return fmt.Sprintf("lookup %s failed: %v", o.Label, o.Err)
}

// BatchResult contains the outcomes of a SearchMany call in input order
type BatchResult struct {
	Outcomes []Outcome
}

// Succeeded returns the outcomes that produced a result
func (b BatchResult) Succeeded() []Outcome {
	var out []Outcome
	for _, o := range b.Outcomes {
		if o.Err == nil {
			out = append(out, o)
		}
	}
	return out
}

// Failed returns the outcomes that ended with an error
func (b BatchResult) Failed() []Outcome {
	var out []Outcome
	for _, o := range b.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// SearchMany runs the queries against api with at most limit lookups in
// flight. A failing query does not stop the others.
func SearchMany(ctx context.Context, api API, queries []Query, limit int) BatchResult {
	result := BatchResult{Outcomes: make([]Outcome, len(queries))}
	if len(queries) == 0 {
		return result
	}

	if limit <= 0 {
		limit = DefaultConcurrency
	}
	limit = min(limit, MaxConcurrency)

	var g errgroup.Group
	g.SetLimit(limit)

	for i, q := range queries {
		g.Go(func() error {
			res, err := api.Search(ctx, q)
			// each goroutine owns its slot
			result.Outcomes[i] = Outcome{
				Query:  q,
				Label:  q.Label(),
				Result: res,
				Err:    err,
			}
			return nil
		})
	}

	_ = g.Wait()
	return result
}
