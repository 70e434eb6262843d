// Package records keeps per-level best times and unlock flags in memory and
// writes them through to a persistence backend.
package records

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/escape/internal/config"
	"github.com/vovakirdan/escape/internal/game"
)

// Backend persists records and unlocks.
type Backend interface {
	LoadRecords() (map[int]game.Record, error)
	SaveRecord(levelID int, r game.Record) error
	LoadUnlocked() ([]int, error)
	SaveUnlocked(levelIDs ...int) error
}

// CompletionLog is implemented by backends that keep a history of finished runs.
type CompletionLog interface {
	SaveCompletion(levelID, tenths int) error
}

// Keeper implements game.RecordKeeper. Level 1 is always unlocked.
type Keeper struct {
	backend    Backend
	levelCount int
	records    map[int]game.Record
	unlocked   map[int]bool
	logger     *log.Logger
}

var _ game.RecordKeeper = (*Keeper)(nil)

// Open loads state from backend. Unreadable data is logged and replaced by
// empty state rather than failing. A nil backend keeps everything in memory.
func Open(backend Backend, levelCount int, logger *log.Logger) *Keeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	k := &Keeper{
		backend:    backend,
		levelCount: levelCount,
		records:    make(map[int]game.Record),
		unlocked:   map[int]bool{1: true},
		logger:     logger,
	}
	if backend == nil {
		return k
	}

	recs, err := backend.LoadRecords()
	if err != nil {
		logger.Warn("record store unreadable, starting with no records", "error", err)
	} else {
		for id, r := range recs {
			if id < 1 || (levelCount > 0 && id > levelCount) {
				logger.Debug("ignoring record for unknown level", "level", id)
				continue
			}
			if err := ValidHolder(r.Holder); err != nil || r.Tenths < 0 {
				logger.Warn("ignoring corrupt record", "level", id, "holder", r.Holder, "tenths", r.Tenths)
				continue
			}
			k.records[id] = r
		}
	}

	ids, err := backend.LoadUnlocked()
	if err != nil {
		logger.Warn("unlock store unreadable, only level 1 is unlocked", "error", err)
	} else {
		for _, id := range ids {
			k.unlocked[id] = true
		}
	}
	return k
}

// LevelCount returns the number of levels the keeper tracks.
func (k *Keeper) LevelCount() int { return k.levelCount }

// Record returns the best time for a level.
func (k *Keeper) Record(levelID int) (game.Record, bool) {
	r, ok := k.records[levelID]
	return r, ok
}

// Records returns a copy of every record.
func (k *Keeper) Records() map[int]game.Record {
	out := make(map[int]game.Record, len(k.records))
	for id, r := range k.records {
		out[id] = r
	}
	return out
}

// UpdateRecord overwrites the record for a level unconditionally.
func (k *Keeper) UpdateRecord(levelID int, r game.Record) error {
	if err := ValidHolder(r.Holder); err != nil {
		return err
	}
	k.records[levelID] = r
	if k.backend == nil {
		return nil
	}
	if err := k.backend.SaveRecord(levelID, r); err != nil {
		return fmt.Errorf("records: cannot persist record for level %d: %w", levelID, err)
	}
	return nil
}

// IsUnlocked reports whether a level may be started.
func (k *Keeper) IsUnlocked(levelID int) bool {
	return levelID == 1 || k.unlocked[levelID]
}

// Unlock marks one level as playable.
func (k *Keeper) Unlock(levelID int) error {
	if k.unlocked[levelID] {
		return nil
	}
	k.unlocked[levelID] = true
	return k.persistUnlocked(levelID)
}

// UnlockAll marks every level as playable. Calling it again is a no-op.
func (k *Keeper) UnlockAll() error {
	var ids []int
	for id := 1; id <= k.levelCount; id++ {
		if !k.unlocked[id] {
			k.unlocked[id] = true
			ids = append(ids, id)
		}
	}
	return k.persistUnlocked(ids...)
}

// Unlocked returns the unlocked level ids in ascending order.
func (k *Keeper) Unlocked() []int {
	ids := make([]int, 0, len(k.unlocked))
	for id, ok := range k.unlocked {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// LogCompletion forwards a finished run to the backend history, if it keeps one.
func (k *Keeper) LogCompletion(levelID, tenths int) error {
	hist, ok := k.backend.(CompletionLog)
	if !ok {
		return nil
	}
	if err := hist.SaveCompletion(levelID, tenths); err != nil {
		return fmt.Errorf("records: cannot log completion: %w", err)
	}
	return nil
}

// Import overwrites records with the given set, level by level.
func (k *Keeper) Import(recs map[int]game.Record) (int, error) {
	ids := make([]int, 0, len(recs))
	for id := range recs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	n := 0
	for _, id := range ids {
		if err := k.UpdateRecord(id, recs[id]); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (k *Keeper) persistUnlocked(ids ...int) error {
	if k.backend == nil || len(ids) == 0 {
		return nil
	}
	if err := k.backend.SaveUnlocked(ids...); err != nil {
		return fmt.Errorf("records: cannot persist unlocks: %w", err)
	}
	return nil
}

// MaxHolderLen is the longest accepted holder name.
const MaxHolderLen = config.HolderLimit

// ValidHolder checks a holder name: 1 to MaxHolderLen characters, no whitespace.
func ValidHolder(name string) error {
	return game.ValidateHolder(name, MaxHolderLen)
}
