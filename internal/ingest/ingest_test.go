package ingest

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/mabry1985/albion-killbot/internal/battle"
	"github.com/mabry1985/albion-killbot/internal/feed"
	logpkg "github.com/mabry1985/albion-killbot/pkg/log"
)

type fakeFeed struct {
	// pages maps offset to the page served there
	pages map[int][]battle.Battle
	// failures maps offset to the number of transport failures to serve
	// before succeeding
	failures map[int]int
	calls    []int
}

func (f *fakeFeed) FetchPage(ctx context.Context, offset, limit int) ([]battle.Battle, error) {
	f.calls = append(f.calls, offset)
	if n := f.failures[offset]; n > 0 {
		f.failures[offset] = n - 1
		return nil, &feed.TransportError{Offset: offset, Err: errors.New("boom")}
	}
	return f.pages[offset], nil
}

type fakeStore struct {
	latest   int64
	inserted []battle.Battle
	pruned   int
}

func (s *fakeStore) LatestID(ctx context.Context) (int64, error) { return s.latest, nil }

func (s *fakeStore) InsertNew(ctx context.Context, battles []battle.Battle) (int, error) {
	s.inserted = append(s.inserted, battles...)
	return len(battles), nil
}

func (s *fakeStore) PruneBelowNewestRead(ctx context.Context) (int, error) { return s.pruned, nil }

func testLogger() logpkg.Logger { return logpkg.New(logpkg.WithWriter(io.Discard)) }

func page(ids ...int64) []battle.Battle {
	out := make([]battle.Battle, len(ids))
	for i, id := range ids {
		out[i] = battle.Battle{ID: id, TotalFame: 1}
	}
	return out
}

func ids(battles []battle.Battle) []int64 {
	out := make([]int64, len(battles))
	for i, b := range battles {
		out[i] = b.ID
	}
	return out
}

func TestSyncStopsAtBoundaryOldestFirst(t *testing.T) {
	// feed serves [M+3, M+2, M+1, M, M-1] newest-first in one page
	f := &fakeFeed{pages: map[int][]battle.Battle{0: page(103, 102, 101, 100, 99)}}
	s := &fakeStore{latest: 100}
	c := New(f, s, Options{PageSize: 5}, testLogger(), nil)

	rep, err := c.Sync(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	want := []int64{101, 102, 103}
	got := ids(s.inserted)
	if len(got) != len(want) || got[0] != 101 || got[1] != 102 || got[2] != 103 {
		t.Fatalf("accepted = %v, want %v", got, want)
	}
	if rep.Pages != 1 || rep.Fetched != 3 || rep.Inserted != 3 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if len(f.calls) != 1 {
		t.Fatalf("boundary found in page but fetched %d pages", len(f.calls))
	}
}

func TestSyncPagesUntilBoundary(t *testing.T) {
	f := &fakeFeed{pages: map[int][]battle.Battle{
		0: page(106, 105, 104),
		3: page(103, 102, 101),
		6: page(100, 99, 98),
	}}
	s := &fakeStore{latest: 100}
	c := New(f, s, Options{PageSize: 3}, testLogger(), nil)

	if _, err := c.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	got := ids(s.inserted)
	if len(got) != 6 {
		t.Fatalf("accepted = %v", got)
	}
	for i, want := range []int64{101, 102, 103, 104, 105, 106} {
		if got[i] != want {
			t.Fatalf("accepted = %v, want oldest-first 101..106", got)
		}
	}
}

func TestSyncOffsetBound(t *testing.T) {
	// every page is entirely above the mark; the controller must stop at the
	// offset bound and return a non-error result
	f := &fakeFeed{pages: map[int][]battle.Battle{}}
	next := int64(1000)
	for off := 0; off < 100; off += 10 {
		f.pages[off] = page(next, next-1, next-2, next-3, next-4, next-5, next-6, next-7, next-8, next-9)
		next -= 10
	}
	s := &fakeStore{latest: 1} // mark below everything served
	c := New(f, s, Options{PageSize: 10, MaxOffset: 30}, testLogger(), nil)

	rep, err := c.Sync(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if rep.Pages != 3 {
		t.Fatalf("expected 3 pages (offsets 0,10,20), got %d: calls %v", rep.Pages, f.calls)
	}
	if rep.Fetched != 30 {
		t.Fatalf("fetched = %d", rep.Fetched)
	}
}

func TestSyncRetriesSameOffset(t *testing.T) {
	f := &fakeFeed{
		pages:    map[int][]battle.Battle{0: page(102, 101, 100)},
		failures: map[int]int{0: 2},
	}
	s := &fakeStore{latest: 100}
	c := New(f, s, Options{PageSize: 3, RetryBackoff: time.Millisecond}, testLogger(), nil)

	if _, err := c.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(f.calls) != 3 || f.calls[0] != 0 || f.calls[1] != 0 || f.calls[2] != 0 {
		t.Fatalf("expected 3 calls at offset 0, got %v", f.calls)
	}
	if got := ids(s.inserted); len(got) != 2 || got[0] != 101 || got[1] != 102 {
		t.Fatalf("accepted = %v", got)
	}
}

func TestSyncRetryBudgetExhausted(t *testing.T) {
	f := &fakeFeed{failures: map[int]int{0: 100}}
	s := &fakeStore{}
	c := New(f, s, Options{PageSize: 3, RetryBackoff: time.Millisecond, MaxRetries: 2}, testLogger(), nil)

	_, err := c.Sync(context.Background())
	var te *feed.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error after retry budget, got %v", err)
	}
	if len(f.calls) != 2 {
		t.Fatalf("expected 2 attempts, got %v", f.calls)
	}
}

func TestSyncEmptyPageStops(t *testing.T) {
	f := &fakeFeed{pages: map[int][]battle.Battle{0: nil}}
	s := &fakeStore{}
	c := New(f, s, Options{PageSize: 10}, testLogger(), nil)

	rep, err := c.Sync(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if rep.Fetched != 0 || rep.Pages != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestSyncContextCancelDuringBackoff(t *testing.T) {
	f := &fakeFeed{failures: map[int]int{0: 100}}
	s := &fakeStore{}
	c := New(f, s, Options{PageSize: 3, RetryBackoff: time.Hour}, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if _, err := c.Sync(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
