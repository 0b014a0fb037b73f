// Package history keeps the list of recently opened directories.
package history

import (
	"fmt"
	"path/filepath"

	"slidey/internal/logging"
)

// DefaultCapacity is how many directories are remembered.
const DefaultCapacity = 5

// Store persists the list between runs.
type Store interface {
	LoadStrings(key string) ([]string, error)
	SaveStrings(key string, list []string) error
}

// RecentDirectories is a most-recent-first list of directories with no
// duplicates, bounded by capacity.
type RecentDirectories struct {
	entries  []string
	capacity int
	key      string
	store    Store
	logger   logging.LoggerFunc
}

// NewRecentDirectories loads the list saved under key. A nil store keeps
// the list in memory only. A store that cannot be read yields an empty list.
// Capacity below 1 means DefaultCapacity.
func NewRecentDirectories(store Store, key string, capacity int, logger logging.LoggerFunc) *RecentDirectories {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = func(string) {}
	}
	rd := &RecentDirectories{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
		key:      key,
		store:    store,
		logger:   logger,
	}
	if store == nil {
		return rd
	}
	saved, err := store.LoadStrings(key)
	if err != nil {
		logger(fmt.Sprintf("Could not load recent directories, starting empty: %v", err))
		return rd
	}
	for i := len(saved) - 1; i >= 0; i-- {
		if saved[i] != "" {
			rd.push(saved[i])
		}
	}
	return rd
}

// push moves path to the front, dropping any older copy and whatever falls
// off the end.
func (rd *RecentDirectories) push(path string) {
	path = filepath.Clean(path)
	kept := make([]string, 0, rd.capacity)
	kept = append(kept, path)
	for _, p := range rd.entries {
		if p != path && len(kept) < rd.capacity {
			kept = append(kept, p)
		}
	}
	rd.entries = kept
}

// Add records path as the most recent directory and persists the list.
func (rd *RecentDirectories) Add(path string) error {
	if path == "" {
		return fmt.Errorf("directory path cannot be empty")
	}
	rd.push(path)
	return rd.save()
}

// List returns a copy of the entries, most recent first.
func (rd *RecentDirectories) List() []string {
	out := make([]string, len(rd.entries))
	copy(out, rd.entries)
	return out
}

// Clear forgets every entry and persists the empty list.
func (rd *RecentDirectories) Clear() error {
	rd.entries = rd.entries[:0]
	return rd.save()
}

func (rd *RecentDirectories) save() error {
	if rd.store == nil {
		return nil
	}
	if err := rd.store.SaveStrings(rd.key, rd.List()); err != nil {
		return fmt.Errorf("saving recent directories: %w", err)
	}
	return nil
}
