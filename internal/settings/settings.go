// Package settings persists small pieces of application state in a BoltDB
// database kept in the user's configuration directory.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"slidey/internal/logging"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileName     = "slidey_settings.db"
	appName        = "slidey"
	SettingsBucket = "Settings"

	// RecentDirectoriesKey holds the JSON list of recently opened directories.
	RecentDirectoriesKey = "RecentDirectories"
)

// DB is the settings database.
type DB struct {
	db     *bolt.DB
	path   string
	logger logging.LoggerFunc
}

// DefaultDir is <UserConfigDir>/slidey.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// Open creates or opens the settings database in dir. An empty dir means
// DefaultDir. The directory is created when missing.
func Open(dir string, logger logging.LoggerFunc) (*DB, error) {
	if logger == nil {
		logger = func(string) {}
	}
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	logger(fmt.Sprintf("Using settings database at: %s", dbPath))

	db, err := bolt.Open(dbPath, 0600, nil) // user read/write only
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(SettingsBucket)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", SettingsBucket, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db, path: dbPath, logger: logger}, nil
}

// Path is the database file location.
func (s *DB) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *DB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func encodeList(list []string) ([]byte, error) {
	return json.Marshal(list)
}

func decodeList(data []byte) ([]string, error) {
	var list []string
	if data == nil { // key not written yet
		return []string{}, nil
	}
	err := json.Unmarshal(data, &list)
	return list, err
}

// LoadStrings returns the list stored under key, or an empty list if the
// key was never written.
func (s *DB) LoadStrings(key string) ([]string, error) {
	var list []string
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(SettingsBucket))
		if bucket == nil {
			return errors.New("settings bucket missing")
		}
		var err error
		list, err = decodeList(bucket.Get([]byte(key)))
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// SaveStrings replaces the list stored under key. Saving an empty list
// deletes the key.
func (s *DB) SaveStrings(key string, list []string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(SettingsBucket))
		if bucket == nil {
			return errors.New("settings bucket missing")
		}
		if len(list) == 0 {
			if err := bucket.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
			return nil
		}
		data, err := encodeList(list)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		if err := bucket.Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to put %s: %w", key, err)
		}
		return nil
	})
}
