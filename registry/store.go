package registry

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var validatorsBucket = []byte("validators")

// Store persists a registry's keys in a bolt database.
//
// Records are keyed by the 8-byte big-endian validator index and hold the
// key's canonical bytes, so iteration order is index order.
type Store struct {
	db   *bolt.DB
	path string
}

// OpenStore opens (creating if needed) the store at path.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(validatorsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise store %s: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the filesystem path of the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored records with the keys in r. Records at indexes
// past r's length are removed.
func (s *Store) Save(r *Registry) error {
	keys := r.Keys()
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(validatorsBucket)
		for i, k := range keys {
			v := k.Serialize()
			if err := b.Put(indexKey(i), v[:]); err != nil {
				return fmt.Errorf("failed to store key %d: %w", i, err)
			}
		}

		// Collect first; deleting under a live cursor skips entries.
		var stale [][]byte
		c := b.Cursor()
		for k, _ := c.Seek(indexKey(len(keys))); k != nil; k, _ = c.Next() {
			stale = append(stale, append([]byte(nil), k...))
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return fmt.Errorf("failed to remove record %d: %w", binary.BigEndian.Uint64(k), err)
			}
		}
		return nil
	})
}

// Len returns the number of stored records.
func (s *Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(validatorsBucket).Stats().KeyN
		return nil
	})
	return n, err
}

// Put writes a single raw record. It does not validate data; Load does.
func (s *Store) Put(index int, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(validatorsBucket).Put(indexKey(index), data)
	})
}

// Load decodes every record through r's untrusted decode path and adds it
// to r. With skipInvalid a malformed record is counted and skipped;
// otherwise the load stops at the first malformed record. Errors that are
// not decode failures, such as ErrFull, always stop the load.
// Returns the number of records added.
func (s *Store) Load(r *Registry, skipInvalid bool) (int, error) {
	loaded := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(validatorsBucket).ForEach(func(k, v []byte) error {
			_, added, err := r.AddBytes(v)
			if err != nil {
				if skipInvalid && IsMalformed(err) {
					return nil
				}
				return fmt.Errorf("record %d: %w", binary.BigEndian.Uint64(k), err)
			}
			if added {
				loaded++
			}
			return nil
		})
	})
	return loaded, err
}

func indexKey(i int) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(i))
	return k[:]
}
