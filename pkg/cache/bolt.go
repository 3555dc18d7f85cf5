package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.etcd.io/bbolt"

	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
)

var boltBucket = []byte("entries")

// BoltCache stores entries in a single bbolt database file. bbolt holds an
// exclusive file lock, so only one process may open the file at a time.
type BoltCache struct {
	db *bbolt.DB
}

// NewBoltCache opens (or creates) the database at path.
func NewBoltCache(path string) (*BoltCache, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{
		Timeout:      time.Second,
		NoGrowSync:   bbolt.DefaultOptions.NoGrowSync,
		FreelistType: bbolt.DefaultOptions.FreelistType,
	})
	if err != nil {
		return nil, bwerrors.Wrap(bwerrors.ErrCodeCacheUnavailable, err, "open %s", path)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltCache{db: db}, nil
}

// Get retrieves a value. Expired entries are removed lazily.
func (c *BoltCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e entry
	found := false
	err := c.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(boltBucket).Get([]byte(key))
		if raw == nil {
			return nil
		}
		// raw is only valid inside the transaction; Unmarshal copies it.
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, false, boltError(err)
	}
	if !found {
		return nil, false, nil
	}
	if e.expired() {
		_ = c.Delete(ctx, key)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores a value.
func (c *BoltCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	raw, err := json.Marshal(newEntry(data, ttl))
	if err != nil {
		return err
	}
	return boltError(c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), raw)
	}))
}

// Delete removes a value.
func (c *BoltCache) Delete(ctx context.Context, key string) error {
	return boltError(c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	}))
}

// Clear drops and recreates the bucket.
func (c *BoltCache) Clear(ctx context.Context) (int, error) {
	removed := 0
	err := c.db.Update(func(tx *bbolt.Tx) error {
		removed = tx.Bucket(boltBucket).Stats().KeyN
		if err := tx.DeleteBucket(boltBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(boltBucket)
		return err
	})
	if err != nil {
		return 0, boltError(err)
	}
	return removed, nil
}

// Close closes the database file.
func (c *BoltCache) Close() error {
	return c.db.Close()
}

func boltError(err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return ErrClosed
	}
	return err
}

var (
	_ Cache   = (*BoltCache)(nil)
	_ Clearer = (*BoltCache)(nil)
)
