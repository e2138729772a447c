// Package events publishes the audit trail of document builds and
// submissions to a Kafka-compatible broker. Publishing is fire-and-forget
// from the engine's point of view: an audit failure never affects a build.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// TopicDocumentAudit carries one record per build/submission outcome.
const TopicDocumentAudit = "labdoc.audit"

// Audit event types.
const (
	EventDocumentBuilt     = "document.built"
	EventDocumentSubmitted = "document.submitted"
	EventSubmissionFailed  = "document.submission_failed"
)

// Envelope is the audit record payload.
type Envelope struct {
	Type      string `json:"type"`
	BundleID  string `json:"bundleId"`
	SubjectID string `json:"subjectId"`
	Detail    string `json:"detail,omitempty"`
	At        string `json:"at"`
}

// Producer publishes audit events.
type Producer struct {
	client *kgo.Client
	logger *zap.Logger
}

// NewProducer connects to the brokers and ensures the audit topic exists.
func NewProducer(ctx context.Context, brokers []string, logger *zap.Logger) (*Producer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerLinger(50*time.Millisecond),
		kgo.RequiredAcks(kgo.LeaderAck()),
		kgo.DisableIdempotentWrite(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, logger); err != nil {
		client.Close()
		return nil, err
	}
	return &Producer{client: client, logger: logger}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, logger *zap.Logger) error {
	admin := kadm.NewClient(client)
	configs := map[string]*string{
		"retention.ms":   ptr("2592000000"), // 30 days
		"cleanup.policy": ptr("delete"),
	}
	resp, err := admin.CreateTopics(ctx, 3, 1, configs, TopicDocumentAudit)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	for _, r := range resp {
		if r.Err != nil && r.Err.Error() != "TOPIC_ALREADY_EXISTS" {
			logger.Warn("audit topic create", zap.String("topic", r.Topic), zap.Error(r.Err))
		}
	}
	return nil
}

func ptr(s string) *string { return &s }

// Publish emits one audit event, keyed by subject id.
func (p *Producer) Publish(ctx context.Context, eventType, bundleID, subjectID, detail string) {
	payload, err := json.Marshal(Envelope{
		Type:      eventType,
		BundleID:  bundleID,
		SubjectID: subjectID,
		Detail:    detail,
		At:        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.logger.Error("marshal audit event", zap.Error(err))
		return
	}

	record := &kgo.Record{Topic: TopicDocumentAudit, Key: []byte(subjectID), Value: payload}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("audit publish failed",
				zap.String("type", eventType),
				zap.String("bundle_id", bundleID),
				zap.Error(err))
		}
	})
}

// Close flushes and closes the producer.
func (p *Producer) Close(ctx context.Context) {
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("audit flush failed", zap.Error(err))
	}
	p.client.Close()
}
