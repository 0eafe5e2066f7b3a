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

// Match scoring weights. A current-position company hit outweighs any
// historical one; historical hits decay with years since the position ended.
const (
	currentCompanyWeight    = 50.0
	historicalCompanyWeight = 30.0
	roleKeywordWeight       = 10.0
	activeProfileBonus      = 2.0
)

const (
	defaultSearchLimit = 25
	maxSearchLimit     = 200
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) (*ProfileRepository, error) {
	idSeq, err := backend.GetSequence(profileIDSeq)
	if err != nil {
		return nil, err
	}

	return &ProfileRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ProfileRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ProfileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddProfiles adds one or more profile records to storage.
func (r *ProfileRepository) AddProfiles(ctx context.Context, records ...*core.ProfileRecord) ([]*core.ProfileRecord, error) {
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
				// Explicit IDs must not clobber stored records; that is
				// UpdateProfiles' job.
				existing, err := r.readProfile(tx, makeProfileKey(record.Id))
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("%w: profile %d", storage.ErrDuplicateKey, record.Id)
				}
			}

			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			record.UpdatedAt = record.InsertedAt

			key := makeProfileKey(record.Id)
			value := storage.MarshalProfileRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateProfiles updates existing profile records.
func (r *ProfileRepository) UpdateProfiles(ctx context.Context, records ...*core.ProfileRecord) ([]*core.ProfileRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeProfileKey(record.Id)

			old, err := r.readProfile(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			record.UpdatedAt = time.Now().UTC()

			value := storage.MarshalProfileRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// DeleteProfiles removes profile records by their IDs.
func (r *ProfileRepository) DeleteProfiles(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeProfileKey(id)

			record, err := r.readProfile(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves a single profile record by ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, id core.ID) (*core.ProfileRecord, error) {
	var result *core.ProfileRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(id)
		var err error
		result, err = r.readProfile(tx, key)
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

// GetProfiles retrieves multiple profile records by their IDs.
func (r *ProfileRepository) GetProfiles(ctx context.Context, ids ...core.ID) ([]*core.ProfileRecord, error) {
	var result []*core.ProfileRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeProfileKey(id)
			record, err := r.readProfile(tx, key)
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

// SearchRanked scans all profiles, scores each against the criteria, and
// returns the non-zero scorers ordered by score descending.
func (r *ProfileRepository) SearchRanked(ctx context.Context, companies, roleKeywords []string, status core.EmploymentStatus, limit int) ([]*core.ProfileMatch, error) {
	if len(companies) == 0 && len(roleKeywords) == 0 {
		return nil, storage.ErrInvalidQuery
	}
	limit = clampLimit(limit)
	now := time.Now().UTC()

	var results []*core.ProfileMatch
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profileRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.ProfileRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalProfileRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}

			score, ok := scoreProfile(record, companies, roleKeywords, status, now)
			if !ok || score <= 0 {
				continue
			}
			results = append(results, &core.ProfileMatch{
				Record: record,
				Score:  score,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.ProfileMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		// Stable ordering for equal scores.
		if a.Record.Id < b.Record.Id {
			return -1
		}
		if a.Record.Id > b.Record.Id {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// scoreProfile computes the match score for one profile. The boolean result
// is false when the employment-status filter excludes the profile outright.
func scoreProfile(record *core.ProfileRecord, companies, roleKeywords []string, status core.EmploymentStatus, now time.Time) (float64, bool) {
	var score float64
	var currentHit, formerHit bool

	for _, company := range companies {
		needle := strings.ToLower(strings.TrimSpace(company))
		if needle == "" {
			continue
		}
		if companyMatches(record.CurrentCompany, needle) {
			currentHit = true
			score += currentCompanyWeight
		}
		for _, emp := range record.History {
			if companyMatches(emp.Company, needle) {
				formerHit = true
				score += historicalCompanyWeight * recencyDecay(emp.End, now)
				break
			}
		}
	}

	// The status filter only applies when the criteria name companies.
	if len(companies) > 0 {
		switch status {
		case core.EmploymentCurrent:
			if !currentHit {
				return 0, false
			}
		case core.EmploymentFormer:
			if currentHit || !formerHit {
				return 0, false
			}
		}
	}

	for _, keyword := range roleKeywords {
		needle := strings.ToLower(strings.TrimSpace(keyword))
		if needle == "" {
			continue
		}
		if strings.Contains(strings.ToLower(record.CurrentTitle), needle) {
			score += roleKeywordWeight
			continue
		}
		for _, emp := range record.History {
			if strings.Contains(strings.ToLower(emp.Title), needle) {
				score += roleKeywordWeight
				break
			}
		}
	}

	if score > 0 && record.Active {
		score += activeProfileBonus
	}
	return score, true
}

// companyMatches reports whether a stored company name matches a lowercase
// criteria company, in either containment direction ("Google" matches
// "Google LLC" and vice versa).
func companyMatches(stored, needle string) bool {
	haystack := strings.ToLower(strings.TrimSpace(stored))
	if haystack == "" {
		return false
	}
	return strings.Contains(haystack, needle) || strings.Contains(needle, haystack)
}

// recencyDecay scales a historical company hit by how long ago the position
// ended: a role finished last year counts almost fully, one from a decade
// ago contributes little.
func recencyDecay(end, now time.Time) float64 {
	if end.IsZero() || end.After(now) {
		return 1.0
	}
	years := now.Sub(end).Hours() / (24 * 365)
	return 1.0 / (1.0 + years)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

// readProfile reads a profile record from the transaction.
func (r *ProfileRepository) readProfile(tx *badger.Txn, key []byte) (*core.ProfileRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ProfileRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalProfileRecord(val)
		return unmarshalErr
	})
	return record, err
}
