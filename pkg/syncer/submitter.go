package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/defeedco/orbit-producthunt/pkg/lib"
	"github.com/defeedco/orbit-producthunt/pkg/sources/activities/types"
	"github.com/rs/zerolog"
)

type activityStore interface {
	Add(ctx context.Context, record types.Record) error
}

// Stats is the outcome of one submission run.
type Stats struct {
	Added      int     `json:"added"`
	Duplicates int     `json:"duplicates"`
	Errors     []error `json:"-"`
}

// String renders the tally as reported to the user.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Added %d activities to your Orbit workspace.", s.Added)
	if s.Duplicates > 0 {
		fmt.Fprintf(&b, " Your activity list had %d duplicates which were not imported.", s.Duplicates)
	}
	if len(s.Errors) > 0 {
		fmt.Fprintf(&b, " %d activities failed.", len(s.Errors))
	}
	return b.String()
}

// Submitter creates activities one at a time and tallies the outcome.
type Submitter struct {
	store  activityStore
	logger *zerolog.Logger
}

func NewSubmitter(logger *zerolog.Logger, store activityStore) *Submitter {
	return &Submitter{
		store:  store,
		logger: logger,
	}
}

// Submit sends records sequentially, in order.
// Duplicates and per-record failures are tallied and never stop the batch.
// An error is returned only when the submitter is not usable or ctx is done,
// together with the stats collected so far.
func (s *Submitter) Submit(ctx context.Context, records []types.Record) (Stats, error) {
	stats := Stats{Errors: []error{}}

	if len(records) == 0 {
		return stats, nil
	}

	if s.store == nil {
		return stats, errors.New("submitter has no activity store")
	}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("submit activities: %w", err)
		}

		err := s.store.Add(ctx, record)
		switch {
		case err == nil:
			stats.Added++
			s.logger.Debug().
				Str("key", record.Key()).
				Msg("Activity added")
		case lib.IsDuplicate(err):
			stats.Duplicates++
			s.logger.Debug().
				Str("key", record.Key()).
				Msg("Activity already exists")
		default:
			stats.Errors = append(stats.Errors, &lib.SubmissionError{Key: record.Key(), Err: err})
			s.logger.Warn().
				Err(err).
				Str("key", record.Key()).
				Int("index", i).
				Msg("Failed to add activity")
		}
	}

	return stats, nil
}
