package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/cjliu2003/writersroom-sub009/internal/client/storage"
	"github.com/cjliu2003/writersroom-sub009/internal/models"
)

// Queue keys are the bucket's monotonically increasing sequence number,
// big-endian encoded, so a cursor walk yields strict FIFO enqueue order.
// The PendingSave ID (= op_id) lives inside the JSON value.

// Enqueue appends a pending save to the tail of the queue
func (s *Storage) Enqueue(ctx context.Context, save *models.PendingSave) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}

		data, err := json.Marshal(save)
		if err != nil {
			return fmt.Errorf("failed to marshal pending save: %w", err)
		}

		if err := bucket.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("failed to enqueue pending save: %w", err)
		}

		return nil
	})
}

// List returns pending saves for one document in FIFO enqueue order
func (s *Storage) List(ctx context.Context, documentID string) ([]*models.PendingSave, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var saves []*models.PendingSave

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var save models.PendingSave
			if err := json.Unmarshal(v, &save); err != nil {
				return fmt.Errorf("failed to unmarshal pending save: %w", err)
			}

			if save.DocumentID == documentID {
				saves = append(saves, &save)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list pending saves: %w", err)
	}

	return saves, nil
}

// Update rewrites a queued save in place, located by its ID
func (s *Storage) Update(ctx context.Context, save *models.PendingSave) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrPendingSaveNotFound
		}

		key, err := findKey(bucket, save.ID)
		if err != nil {
			return err
		}

		data, err := json.Marshal(save)
		if err != nil {
			return fmt.Errorf("failed to marshal pending save: %w", err)
		}

		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to update pending save: %w", err)
		}

		return nil
	})
}

// Remove deletes one queued save by its ID
func (s *Storage) Remove(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrPendingSaveNotFound
		}

		key, err := findKey(bucket, id)
		if err != nil {
			return err
		}

		if err := bucket.Delete(key); err != nil {
			return fmt.Errorf("failed to remove pending save: %w", err)
		}

		return nil
	})
}

// RemoveForDocument deletes every queued save for one document
func (s *Storage) RemoveForDocument(ctx context.Context, documentID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		// Collect keys first: deleting while ForEach iterates is
		// undefined in bbolt.
		var keys [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var save models.PendingSave
			if err := json.Unmarshal(v, &save); err != nil {
				return fmt.Errorf("failed to unmarshal pending save: %w", err)
			}
			if save.DocumentID == documentID {
				key := make([]byte, len(k))
				copy(key, k)
				keys = append(keys, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range keys {
			if err := bucket.Delete(key); err != nil {
				return fmt.Errorf("failed to remove pending save: %w", err)
			}
		}

		return nil
	})
}

// seqKey encodes a bucket sequence number as a sortable big-endian key
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// findKey locates the bucket key holding the pending save with the given ID
func findKey(bucket *bbolt.Bucket, id string) ([]byte, error) {
	var found []byte

	err := bucket.ForEach(func(k, v []byte) error {
		if found != nil {
			return nil
		}
		var save models.PendingSave
		if err := json.Unmarshal(v, &save); err != nil {
			return fmt.Errorf("failed to unmarshal pending save: %w", err)
		}
		if save.ID == id {
			found = make([]byte, len(k))
			copy(found, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, storage.ErrPendingSaveNotFound
	}
	return found, nil
}
