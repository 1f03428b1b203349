package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/foxowl-ops/digital-twin/internal/store"
)

const (
	recordsBucketName = "transactions" // seq -> json-encoded record, in append order
	idsBucketName     = "ids"          // transaction_id -> seq, uniqueness index
)

// Store is a bbolt-backed transaction log, selectable as an alternative to
// the SQLite backend. Records are keyed by a monotonic sequence number so a
// bucket cursor walks them in insertion order.
type Store struct {
	db *bbolt.DB
}

// New creates or opens the database file and its buckets.
func New(fileName string) (*Store, error) {
	db, err := bbolt.Open(fileName, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("New: opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{recordsBucketName, idsBucketName} {
			if _, e := tx.CreateBucketIfNotExists([]byte(name)); e != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, e)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("New: creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Append implements store.Store. Bolt serializes Update transactions, which
// gives the single-writer guarantee for free.
func (s *Store) Append(ctx context.Context, rec *store.Record) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		ids := tx.Bucket([]byte(idsBucketName))
		if ids.Get([]byte(rec.TransactionID)) != nil {
			return &store.DuplicateIDError{TransactionID: rec.TransactionID}
		}

		records := tx.Bucket([]byte(recordsBucketName))
		seq, err := records.NextSequence()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshalling record %s: %w", rec.TransactionID, err)
		}

		key := itob(seq)
		if err := records.Put(key, data); err != nil {
			return fmt.Errorf("putting record %s: %w", rec.TransactionID, err)
		}
		return ids.Put([]byte(rec.TransactionID), key)
	})
	if err != nil {
		var dup *store.DuplicateIDError
		if errors.As(err, &dup) {
			return dup
		}
		return &store.PersistenceError{Op: "bolt append", Err: err}
	}
	return nil
}

// ListAll implements store.Store.
func (s *Store) ListAll(ctx context.Context) ([]*store.Record, error) {
	var records []*store.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(recordsBucketName))
		return bkt.ForEach(func(k, v []byte) error {
			var rec store.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshalling record at seq %d: %w", btoi(k), err)
			}
			records = append(records, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, &store.PersistenceError{Op: "bolt list", Err: err}
	}

	return records, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

var _ store.Store = (*Store)(nil)
