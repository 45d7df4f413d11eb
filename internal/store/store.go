package store

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"

	"github.com/mabry1985/albion-killbot/internal/battle"
	pebblestore "github.com/mabry1985/albion-killbot/internal/storage/pebble"
	logpkg "github.com/mabry1985/albion-killbot/pkg/log"
)

// Store persists battle records with read-state tracking and retention
// pruning. All mutations are idempotent so repeated cycles (including a
// restart mid-cycle) converge to the same state.
type Store struct {
	db     *pebblestore.DB
	logger logpkg.Logger
}

// New creates a Store over the given database.
func New(db *pebblestore.DB, logger logpkg.Logger) *Store {
	return &Store{db: db, logger: logger.With(logpkg.Component("store"))}
}

// LatestID returns the maximum stored battle id, or 0 when the store is
// empty. This is the ingestion high-water mark.
func (s *Store) LatestID(ctx context.Context) (int64, error) {
	low, high := bounds(battlePrefix)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return 0, err
	}
	defer iter.Close()
	if !iter.Last() {
		return 0, nil
	}
	return idFromKey(iter.Key()), nil
}

// InsertNew inserts battles that are not yet present, marking them unread.
// Existing records are never overwritten. Returns the number of records
// actually inserted. A failed commit is logged and reported as zero inserts;
// it never propagates (the next cycle re-fetches the same battles).
func (s *Store) InsertNew(ctx context.Context, battles []battle.Battle) (int, error) {
	if len(battles) == 0 {
		return 0, nil
	}
	b := s.db.NewBatch()
	defer b.Close()

	inserted := 0
	seen := make(map[int64]struct{}, len(battles))
	for _, bt := range battles {
		if _, dup := seen[bt.ID]; dup {
			continue
		}
		seen[bt.ID] = struct{}{}
		ok, err := s.db.Has(keyBattle(bt.ID))
		if err != nil {
			s.logger.Error("insert existence check failed", logpkg.Int64("id", bt.ID), logpkg.Err(err))
			continue
		}
		if ok {
			continue
		}
		bt.Read = false
		val, err := battle.Encode(bt)
		if err != nil {
			s.logger.Error("encode battle failed", logpkg.Int64("id", bt.ID), logpkg.Err(err))
			continue
		}
		if err := b.Set(keyBattle(bt.ID), val, nil); err != nil {
			s.logger.Error("batch set failed", logpkg.Int64("id", bt.ID), logpkg.Err(err))
			continue
		}
		if err := b.Set(keyUnread(bt.ID), nil, nil); err != nil {
			s.logger.Error("batch set failed", logpkg.Int64("id", bt.ID), logpkg.Err(err))
			continue
		}
		inserted++
	}
	if inserted == 0 {
		return 0, nil
	}
	if err := s.db.CommitBatch(b); err != nil {
		s.logger.Error("insert commit failed", logpkg.Int("battles", inserted), logpkg.Err(err))
		return 0, nil
	}
	return inserted, nil
}

// Unread returns up to limit unread battles, oldest-first.
func (s *Store) Unread(ctx context.Context, limit int) ([]battle.Battle, error) {
	if limit <= 0 {
		return nil, nil
	}
	low, high := bounds(unreadPrefix)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []battle.Battle
	for ok := iter.First(); ok && len(out) < limit; ok = iter.Next() {
		id := idFromKey(iter.Key())
		val, err := s.db.Get(keyBattle(id))
		if err != nil {
			if errors.Is(err, pebblestore.ErrNotFound) {
				// dangling index entry; skip
				continue
			}
			return nil, err
		}
		bt, err := battle.Decode(val)
		if err != nil {
			s.logger.Error("decode stored battle failed", logpkg.Int64("id", id), logpkg.Err(err))
			continue
		}
		out = append(out, bt)
	}
	return out, nil
}

// MarkRead flags the given battles as read. Already-read battles are
// untouched. Returns the number of battles whose state changed. A failed
// commit is logged and reported as zero modifications.
func (s *Store) MarkRead(ctx context.Context, battles []battle.Battle) (int, error) {
	if len(battles) == 0 {
		return 0, nil
	}
	b := s.db.NewBatch()
	defer b.Close()

	modified := 0
	for _, bt := range battles {
		unread, err := s.db.Has(keyUnread(bt.ID))
		if err != nil {
			s.logger.Error("mark-read check failed", logpkg.Int64("id", bt.ID), logpkg.Err(err))
			continue
		}
		if !unread {
			continue
		}
		bt.Read = true
		val, err := battle.Encode(bt)
		if err != nil {
			s.logger.Error("encode battle failed", logpkg.Int64("id", bt.ID), logpkg.Err(err))
			continue
		}
		if err := b.Set(keyBattle(bt.ID), val, nil); err != nil {
			s.logger.Error("batch set failed", logpkg.Int64("id", bt.ID), logpkg.Err(err))
			continue
		}
		if err := b.Delete(keyUnread(bt.ID), nil); err != nil {
			s.logger.Error("batch delete failed", logpkg.Int64("id", bt.ID), logpkg.Err(err))
			continue
		}
		if err := b.Set(keyRead(bt.ID), nil, nil); err != nil {
			s.logger.Error("batch set failed", logpkg.Int64("id", bt.ID), logpkg.Err(err))
			continue
		}
		modified++
	}
	if modified == 0 {
		return 0, nil
	}
	if err := s.db.CommitBatch(b); err != nil {
		s.logger.Error("mark-read commit failed", logpkg.Int("battles", modified), logpkg.Err(err))
		return 0, nil
	}
	return modified, nil
}

// PruneBelowNewestRead deletes every battle strictly older than the newest
// read battle. Anything below that boundary has already been considered for
// notification, so retention stays bounded by the unread backlog plus one
// read marker. When nothing is read yet this is a no-op: an old unread
// battle may still be pending delivery.
func (s *Store) PruneBelowNewestRead(ctx context.Context) (int, error) {
	low, high := bounds(readPrefix)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return 0, err
	}
	if !iter.Last() {
		iter.Close()
		return 0, nil
	}
	boundary := idFromKey(iter.Key())
	iter.Close()

	deleted, err := s.countBattlesBelow(boundary)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, nil
	}

	b := s.db.NewBatch()
	defer b.Close()
	for _, prefix := range [][]byte{battlePrefix, unreadPrefix, readPrefix} {
		lo, _ := bounds(prefix)
		hi := appendBE8(append([]byte(nil), prefix...), uint64(boundary))
		if err := b.DeleteRange(lo, hi, nil); err != nil {
			return 0, err
		}
	}
	if err := s.db.CommitBatch(b); err != nil {
		s.logger.Error("prune commit failed", logpkg.Int64("boundary", boundary), logpkg.Err(err))
		return 0, nil
	}
	return deleted, nil
}

func (s *Store) countBattlesBelow(boundary int64) (int, error) {
	low, _ := bounds(battlePrefix)
	high := appendBE8(append([]byte(nil), battlePrefix...), uint64(boundary))
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return 0, err
	}
	defer iter.Close()
	n := 0
	for ok := iter.First(); ok; ok = iter.Next() {
		n++
	}
	return n, nil
}

// Stats summarizes store contents for the admin surface.
type Stats struct {
	Battles  int   `json:"battles"`
	Unread   int   `json:"unread"`
	LatestID int64 `json:"latestId"`
}

// CollectStats counts records and indexes.
func (s *Store) CollectStats(ctx context.Context) (Stats, error) {
	var st Stats
	for _, c := range []struct {
		prefix []byte
		dst    *int
	}{
		{battlePrefix, &st.Battles},
		{unreadPrefix, &st.Unread},
	} {
		low, high := bounds(c.prefix)
		iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
		if err != nil {
			return Stats{}, err
		}
		for ok := iter.First(); ok; ok = iter.Next() {
			*c.dst++
		}
		iter.Close()
	}
	latest, err := s.LatestID(ctx)
	if err != nil {
		return Stats{}, err
	}
	st.LatestID = latest
	return st, nil
}
