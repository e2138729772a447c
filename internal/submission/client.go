// Package submission posts finished document bundles to the external
// submission endpoint. Submission failure is a distinct, non-fatal category:
// the built container is never mutated or discarded because of it.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	r4 "github.com/hcxlabs/go-labdoc/internal/fhir/r4"
	"github.com/hcxlabs/go-labdoc/pkg/circuitbreaker"
)

// Error reports a failed submission attempt. The caller keeps the container
// and subject id for diagnostics or a later retry.
type Error struct {
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("submission rejected with status %d", e.StatusCode)
	}
	return "submission failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Request is the exact payload the endpoint accepts.
type Request struct {
	Container json.RawMessage `json:"container"`
	SubjectID string          `json:"subjectId"`
}

// Client submits bundles through a circuit breaker. No retries: a failure is
// logged and reported, nothing more.
type Client struct {
	endpoint string
	hc       *http.Client
	breaker  *circuitbreaker.Breaker
	logger   *zap.Logger
}

// NewClient creates a submission client.
func NewClient(endpoint string, breaker *circuitbreaker.Breaker, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: 30 * time.Second},
		breaker:  breaker,
		logger:   logger,
	}
}

// Submit posts {container, subjectId}. It returns *Error on any failure.
func (c *Client) Submit(ctx context.Context, container *r4.Bundle, subjectID string) error {
	raw, err := json.Marshal(container)
	if err != nil {
		return &Error{Err: fmt.Errorf("marshal container: %w", err)}
	}
	return c.SubmitRaw(ctx, raw, subjectID)
}

// SubmitRaw posts an already-marshalled container; the relay uses this for
// retained containers.
func (c *Client) SubmitRaw(ctx context.Context, container []byte, subjectID string) error {
	body, err := json.Marshal(Request{Container: container, SubjectID: subjectID})
	if err != nil {
		return &Error{Err: fmt.Errorf("marshal request: %w", err)}
	}
	do := func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &Error{StatusCode: resp.StatusCode}
		}
		return nil, nil
	}

	if c.breaker != nil {
		_, err = c.breaker.Execute(do)
	} else {
		_, err = do()
	}
	if err == nil {
		return nil
	}

	c.logger.Error("submission failed",
		zap.String("subject_id", subjectID),
		zap.Bool("circuit_rejection", circuitbreaker.IsRejection(err)),
		zap.Error(err),
	)
	var serr *Error
	if errors.As(err, &serr) {
		return serr
	}
	return &Error{Err: err}
}
