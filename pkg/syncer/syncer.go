package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/defeedco/orbit-producthunt/pkg/lib"
	"github.com/defeedco/orbit-producthunt/pkg/lib/log"
	"github.com/defeedco/orbit-producthunt/pkg/sources"
	"github.com/defeedco/orbit-producthunt/pkg/sources/activities"
	"github.com/defeedco/orbit-producthunt/pkg/sources/activities/types"
	"github.com/defeedco/orbit-producthunt/pkg/sources/producthunt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Workflow string

const (
	WorkflowProducts Workflow = "products"
	WorkflowVotes    Workflow = "votes"
	WorkflowComments Workflow = "comments"
)

type productSource interface {
	Products(ctx context.Context, userID string) ([]producthunt.Product, error)
	Votes(ctx context.Context, postID string) ([]*producthunt.Vote, error)
	Comments(ctx context.Context, postID string) ([]*producthunt.Comment, error)
}

type Request struct {
	Workflow  Workflow `validate:"required,oneof=products votes comments"`
	UserID    string   `validate:"required_if=Workflow products"`
	ProductID string   `validate:"required_unless=Workflow products"`
	// Hours is the trailing window, 0 means sources.DefaultWindowHours.
	Hours float64 `validate:"gte=0"`
	// DryRun maps the records without submitting them.
	DryRun bool
}

type Result struct {
	RunID    string
	Workflow Workflow
	DryRun   bool
	Products []producthunt.Product
	// Fetched is the number of upstream items before the time window was applied.
	Fetched int
	Records []types.Record
	Stats   Stats
}

// Syncer runs one workflow per call, fetch, filter, map then submit.
type Syncer struct {
	source    productSource
	submitter *Submitter
	logger    *zerolog.Logger
	now       func() time.Time
}

func NewSyncer(logger *zerolog.Logger, source productSource, submitter *Submitter) *Syncer {
	return &Syncer{
		source:    source,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Syncer) Run(ctx context.Context, req Request) (*Result, error) {
	if err := lib.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}

	runID := uuid.NewString()
	logger := log.WithRun(s.logger, runID, string(req.Workflow))

	hours := req.Hours
	if hours == 0 {
		hours = sources.DefaultWindowHours
	}

	result := &Result{
		RunID:    runID,
		Workflow: req.Workflow,
		DryRun:   req.DryRun,
	}

	switch req.Workflow {
	case WorkflowProducts:
		products, err := s.source.Products(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("get products: %w", err)
		}
		result.Products = products

		logger.Info().
			Str("user_id", req.UserID).
			Int("products", len(products)).
			Msg("Listed products")

		return result, nil
	case WorkflowVotes:
		votes, err := s.source.Votes(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get votes: %w", err)
		}
		result.Fetched = len(votes)
		result.Records = activities.FromVotes(sources.FilterWindow(votes, hours, s.now()))
	case WorkflowComments:
		comments, err := s.source.Comments(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get comments: %w", err)
		}
		result.Fetched = len(comments)
		result.Records = activities.FromComments(sources.FilterWindow(comments, hours, s.now()))
	}

	logger.Info().
		Str("product_id", req.ProductID).
		Float64("hours", hours).
		Int("fetched", result.Fetched).
		Int("in_window", len(result.Records)).
		Msg("Prepared activities")

	if req.DryRun {
		return result, nil
	}

	stats, err := s.submitter.Submit(ctx, result.Records)
	result.Stats = stats
	if err != nil {
		return result, fmt.Errorf("submit activities: %w", err)
	}

	logger.Info().
		Int("added", stats.Added).
		Int("duplicates", stats.Duplicates).
		Int("errors", len(stats.Errors)).
		Msg("Submitted activities")

	return result, nil
}

// Watch runs the request now and then again after every jittered interval until ctx is done.
// The wait starts when a run ends. Every run is independent, a failed run is reported
// and the next one is awaited.
func (s *Syncer) Watch(ctx context.Context, req Request, every time.Duration, report func(*Result, error)) error {
	if req.Workflow == WorkflowProducts {
		return fmt.Errorf("workflow %s cannot be watched", req.Workflow)
	}

	for {
		report(s.Run(ctx, req))

		if ctx.Err() != nil {
			return nil
		}

		wait := lib.JitteredInterval(every)
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			s.logger.Debug().
				Str("workflow", string(req.Workflow)).
				Dur("waited", wait).
				Msg("Polling source")
		}
	}
}
