package badger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/candorlabs/expertscope/core"
	"github.com/candorlabs/expertscope/storage"
	"github.com/dgraph-io/badger/v4"
)

// InterviewRepository implements storage.InterviewRepository for BadgerDB.
type InterviewRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.InterviewRepository = (*InterviewRepository)(nil)

// NewInterviewRepository creates a new InterviewRepository.
func NewInterviewRepository(backend *Backend) (*InterviewRepository, error) {
	idSeq, err := backend.GetSequence(interviewRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &InterviewRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *InterviewRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *InterviewRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddInterviewRecords adds one or more interview records to storage.
func (r *InterviewRepository) AddInterviewRecords(ctx context.Context, records ...*core.InterviewRecord) ([]*core.InterviewRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				record.Id = core.ID(nextID)
			} else {
				// An overwrite through an explicit ID would strand the old
				// date and meeting index entries.
				existing, err := r.readInterviewRecord(tx, makeInterviewKey(record.Id))
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("%w: interview record %d", storage.ErrDuplicateKey, record.Id)
				}
			}

			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			record.UpdatedAt = record.InsertedAt

			key := makeInterviewKey(record.Id)
			value := storage.MarshalInterviewRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			dateKey := makeInterviewDateKey(record.Timestamp, record.Id)
			if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}

			if record.MeetingId != 0 {
				meetingKey := makeInterviewMeetingKey(record.MeetingId, record.Id)
				if err := tx.Set(meetingKey, storage.MarshalID(record.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// DeleteInterviewRecords removes interview records by their IDs.
func (r *InterviewRepository) DeleteInterviewRecords(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeInterviewKey(id)

			record, err := r.readInterviewRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			dateKey := makeInterviewDateKey(record.Timestamp, record.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			if record.MeetingId != 0 {
				meetingKey := makeInterviewMeetingKey(record.MeetingId, record.Id)
				if err := tx.Delete(meetingKey); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetInterviewRecord retrieves a single interview record by ID.
func (r *InterviewRepository) GetInterviewRecord(ctx context.Context, id core.ID) (*core.InterviewRecord, error) {
	var result *core.InterviewRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeInterviewKey(id)
		var err error
		result, err = r.readInterviewRecord(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetInterviewRecords retrieves multiple interview records by their IDs.
func (r *InterviewRepository) GetInterviewRecords(ctx context.Context, ids ...core.ID) ([]*core.InterviewRecord, error) {
	var result []*core.InterviewRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeInterviewKey(id)
			record, err := r.readInterviewRecord(tx, key)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// SearchTopic walks the date index newest-first and keeps records whose
// question or answer contains any topic token. Filter conditions apply
// conjunctively on top of the token match.
func (r *InterviewRepository) SearchTopic(ctx context.Context, topic string, filter storage.InterviewFilter, limit int) ([]*core.InterviewRecord, error) {
	tokens := topicTokens(topic)
	if len(tokens) == 0 {
		return nil, storage.ErrInvalidQuery
	}
	limit = clampLimit(limit)

	var results []*core.InterviewRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		startKey := makePartialInterviewDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(interviewDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readInterviewRecord(tx, makeInterviewKey(recordID))
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}

			if !matchesTokens(record, tokens) {
				continue
			}
			if !matchesFilter(record, filter) {
				continue
			}
			results = append(results, record)
		}
		return nil
	}, false)

	return results, err
}

// GetByMeeting retrieves every interview record belonging to a meeting,
// ordered by timestamp ascending.
func (r *InterviewRepository) GetByMeeting(ctx context.Context, meetingID core.ID) ([]*core.InterviewRecord, error) {
	var results []*core.InterviewRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialInterviewMeetingKey(meetingID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readInterviewRecord(tx, makeInterviewKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.InterviewRecord) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return results, nil
}

// GetRecentInterviewRecords retrieves the N most recent interview records,
// ordered by timestamp descending.
func (r *InterviewRepository) GetRecentInterviewRecords(ctx context.Context, limit int) ([]*core.InterviewRecord, error) {
	limit = clampLimit(limit)

	var results []*core.InterviewRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		startKey := makePartialInterviewDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(interviewDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readInterviewRecord(tx, makeInterviewKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// topicTokens splits a normalized topic into lowercase match tokens.
func topicTokens(topic string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(topic)) {
		if field != "" {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// matchesTokens reports whether any token appears in the question or answer,
// case-insensitively.
func matchesTokens(record *core.InterviewRecord, tokens []string) bool {
	question := strings.ToLower(record.Question)
	answer := strings.ToLower(record.Answer)
	for _, token := range tokens {
		if strings.Contains(question, token) || strings.Contains(answer, token) {
			return true
		}
	}
	return false
}

// matchesFilter applies the conjunctive filter conditions. Zero values skip
// the corresponding condition.
func matchesFilter(record *core.InterviewRecord, filter storage.InterviewFilter) bool {
	if filter.ExpertName != "" &&
		!strings.Contains(strings.ToLower(record.ExpertName), strings.ToLower(filter.ExpertName)) {
		return false
	}
	if !filter.From.IsZero() && record.Timestamp.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && !record.Timestamp.Before(filter.To) {
		return false
	}
	if filter.MinCredibility > 0 {
		if record.Credibility == nil || *record.Credibility < filter.MinCredibility {
			return false
		}
	}
	if filter.MinConsensus > 0 {
		if record.Consensus == nil || *record.Consensus < filter.MinConsensus {
			return false
		}
	}
	return true
}

// readInterviewRecord reads an interview record from the transaction.
func (r *InterviewRepository) readInterviewRecord(tx *badger.Txn, key []byte) (*core.InterviewRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.InterviewRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalInterviewRecord(val)
		return unmarshalErr
	})
	return record, err
}
