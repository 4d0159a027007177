package cinematerial

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAPI implements API for testing
type mockAPI struct {
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	fail        map[int]error
}

func (m *mockAPI) Search(ctx context.Context, q Query) (*Result, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		cur := m.maxInFlight.Load()
		if n <= cur || m.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if err, ok := m.fail[q.MovieID]; ok {
		return nil, err
	}
	return &Result{IMDbID: FormatIMDbID(q.MovieID), Posters: []Poster{}}, nil
}

func (m *mockAPI) RequestFor(q Query) (*Request, error) {
	return nil, errors.New("not implemented")
}

func TestSearchMany(t *testing.T) {
	errMissing := errors.New("not found")
	api := &mockAPI{fail: map[int]error{3: errMissing}}

	queries := make([]Query, 0, 10)
	for id := 1; id <= 10; id++ {
		queries = append(queries, Query{MovieID: id})
	}

	batch := SearchMany(context.Background(), api, queries, 2)

	require.Len(t, batch.Outcomes, 10)
	for i, o := range batch.Outcomes {
		assert.Equal(t, queries[i], o.Query)
		assert.Equal(t, FormatIMDbID(i+1), o.Label)
	}

	assert.Len(t, batch.Succeeded(), 9)
	failed := batch.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, 3, failed[0].Query.MovieID)
	assert.ErrorIs(t, failed[0].Err, errMissing)
	assert.Contains(t, failed[0].Error(), "tt3")

	assert.LessOrEqual(t, api.maxInFlight.Load(), int32(2))
}

func TestSearchMany_Empty(t *testing.T) {
	batch := SearchMany(context.Background(), &mockAPI{}, nil, 0)
	assert.Empty(t, batch.Outcomes)
	assert.Empty(t, batch.Succeeded())
	assert.Empty(t, batch.Failed())
}

func TestSearchMany_URLLabel(t *testing.T) {
	api := &mockAPI{}
	batch := SearchMany(context.Background(), api, []Query{{URL: "http://www.imdb.com/title/tt0133093/"}}, 0)
	require.Len(t, batch.Outcomes, 1)
	assert.Equal(t, "http://www.imdb.com/title/tt0133093/", batch.Outcomes[0].Label)
}
