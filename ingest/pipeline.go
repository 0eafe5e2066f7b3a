package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/candorlabs/expertscope/core"
	"github.com/candorlabs/expertscope/storage"
	"github.com/panjf2000/ants/v2"
)

const defaultBatchSize = 64

// Pipeline loads profile and interview records into storage. Records are
// validated up front, split into batches, and written concurrently on a
// worker pool. Invalid records are logged and skipped rather than failing
// the whole load.
type Pipeline struct {
	profiles   storage.ProfileRepository
	interviews storage.InterviewRepository
	pool       *ants.Pool
	batchSize  int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many records each pool task writes in one call.
// Default is 64.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = defaultBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new load pipeline.
func NewPipeline(
	profiles storage.ProfileRepository,
	interviews storage.InterviewRepository,
	opts ...Option,
) (*Pipeline, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if interviews == nil {
		return nil, ErrInterviewRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		profiles:   profiles,
		interviews: interviews,
		pool:       pool,
		batchSize:  defaultBatchSize,
		logger:     slog.Default().With("component", "ingest"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// LoadProfiles validates and stores profile records. Returns the number of
// records stored. Invalid records are skipped; the first storage error, if
// any, is returned after all batches finish.
func (p *Pipeline) LoadProfiles(ctx context.Context, records []*core.ProfileRecord) (int, error) {
	if len(records) == 0 {
		return 0, ErrNoRecords
	}

	valid := make([]*core.ProfileRecord, 0, len(records))
	for i, record := range records {
		// A nil record fails validation, so it must not be dereferenced here.
		if err := core.ValidateProfileRecord(record); err != nil {
			p.logger.Warn("skipping invalid profile record", "index", i, "err", err)
			continue
		}
		valid = append(valid, record)
	}

	return p.runBatches(len(valid), func(start, end int) error {
		_, err := p.profiles.AddProfiles(ctx, valid[start:end]...)
		return err
	})
}

// LoadInterviews validates and stores interview records. Returns the number
// of records stored. Invalid records are skipped; the first storage error,
// if any, is returned after all batches finish.
func (p *Pipeline) LoadInterviews(ctx context.Context, records []*core.InterviewRecord) (int, error) {
	if len(records) == 0 {
		return 0, ErrNoRecords
	}

	valid := make([]*core.InterviewRecord, 0, len(records))
	for i, record := range records {
		if err := core.ValidateInterviewRecord(record); err != nil {
			p.logger.Warn("skipping invalid interview record", "index", i, "err", err)
			continue
		}
		valid = append(valid, record)
	}

	return p.runBatches(len(valid), func(start, end int) error {
		_, err := p.interviews.AddInterviewRecords(ctx, valid[start:end]...)
		return err
	})
}

// runBatches writes [0,n) in batchSize slices on the pool and waits for all
// of them. Returns the count written and the first error encountered.
func (p *Pipeline) runBatches(n int, write func(start, end int) error) (int, error) {
	if n == 0 {
		return 0, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		loaded   int
	)

	for start := 0; start < n; start += p.batchSize {
		end := start + p.batchSize
		if end > n {
			end = n
		}

		wg.Add(1)
		batchStart, batchEnd := start, end
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := write(batchStart, batchEnd); err != nil {
				p.logger.Error("batch write failed", "start", batchStart, "end", batchEnd, "err", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			mu.Lock()
			loaded += batchEnd - batchStart
			mu.Unlock()
		})
		if err != nil {
			// Submit only fails when the pool is released; run inline.
			wg.Done()
			if writeErr := write(batchStart, batchEnd); writeErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = writeErr
				}
				mu.Unlock()
			} else {
				mu.Lock()
				loaded += batchEnd - batchStart
				mu.Unlock()
			}
		}
	}

	wg.Wait()
	return loaded, firstErr
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
