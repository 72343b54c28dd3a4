package orbit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/defeedco/orbit-producthunt/pkg/lib"
	"github.com/defeedco/orbit-producthunt/pkg/sources/activities/types"
	"github.com/rs/zerolog"
)

// ActivityRepository writes activities to an Orbit workspace.
type ActivityRepository struct {
	httpClient  lib.RequestDoer
	baseURL     string
	workspaceID string
	apiKey      string
	logger      *zerolog.Logger
}

func NewActivityRepository(cfg *Config, logger *zerolog.Logger) *ActivityRepository {
	return NewActivityRepositoryWithDoer(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

func NewActivityRepositoryWithDoer(cfg *Config, doer lib.RequestDoer, logger *zerolog.Logger) *ActivityRepository {
	return &ActivityRepository{
		httpClient:  doer,
		baseURL:     strings.TrimRight(cfg.APIURL, "/"),
		workspaceID: cfg.WorkspaceID,
		apiKey:      cfg.APIKey,
		logger:      logger,
	}
}

// Add creates a single activity.
// It returns a *lib.DuplicateActivityError when the workspace already has an activity with the same key.
func (r *ActivityRepository) Add(ctx context.Context, record types.Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/activities", r.baseURL, url.PathEscape(r.workspaceID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.apiKey))
	req.Header.Set("User-Agent", lib.UserAgent)

	r.logger.Trace().
		Str("key", record.Key()).
		Str("url", endpoint).
		Msg("Orbit request")

	_, err = lib.DecodeJSON[json.RawMessage](r.httpClient, req)
	if err == nil {
		return nil
	}

	var statusErr *lib.StatusError
	if errors.As(err, &statusErr) {
		if reasons, ok := duplicateKeyReasons(statusErr); ok {
			return &lib.DuplicateActivityError{Key: record.Key(), Reasons: reasons}
		}
	}

	return err
}

// errorResponse is the validation error shape, e.g. {"errors":{"key":["has already been taken"]}}.
type errorResponse struct {
	Errors map[string]json.RawMessage `json:"errors"`
}

func duplicateKeyReasons(statusErr *lib.StatusError) ([]string, bool) {
	if statusErr.StatusCode < 400 || statusErr.StatusCode > 499 {
		return nil, false
	}

	var res errorResponse
	if err := json.Unmarshal(statusErr.Body, &res); err != nil {
		return nil, false
	}

	raw, ok := res.Errors["key"]
	if !ok {
		return nil, false
	}

	var reasons []string
	if err := json.Unmarshal(raw, &reasons); err == nil {
		return reasons, true
	}

	var reason string
	if err := json.Unmarshal(raw, &reason); err == nil {
		return []string{reason}, true
	}

	return nil, true
}
