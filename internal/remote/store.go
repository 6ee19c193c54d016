package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store keeps the server side snapshots, one per user, under
// "snapshots/<user>" keys.
type Store struct {
	db *badger.DB
}

func NewStore(db *badger.DB) *Store {
	return &Store{
		db: db,
	}
}

func snapshotKey(userID string) []byte {
	return []byte(fmt.Sprintf("snapshots/%s", userID))
}

func (s *Store) Get(_ context.Context, userID string) (*Snapshot, error) {
	var snap Snapshot
	if err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &snap)
		})
	}); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &snap, nil
}

func (s *Store) Put(_ context.Context, userID string, snap *Snapshot) error {
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(snap)
		if err != nil {
			return err
		}
		if err := txn.Set(snapshotKey(userID), data); err != nil {
			return fmt.Errorf("put snapshot: %w", err)
		}
		return nil
	})
}

// Users lists the users that have a snapshot.
func (s *Store) Users(_ context.Context) ([]string, error) {
	var users []string
	if err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte("snapshots/")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			users = append(users, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return users, nil
}
