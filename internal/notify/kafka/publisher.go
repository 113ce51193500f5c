// Package kafka publishes reminder messages to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"mandate/internal/notify"
	"mandate/internal/platform/config"
)

// Publisher produces one record per reminder, keyed by user so a user's
// reminders stay ordered within a partition.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger zerolog.Logger
}

// New connects to the configured brokers. When cfg.EnsureTopic is set the
// topic is created if missing.
func New(ctx context.Context, cfg config.KafkaConfig, logger zerolog.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka: ping brokers: %w", err)
	}

	p := &Publisher{client: client, topic: cfg.Topic, logger: logger}
	if cfg.EnsureTopic {
		if err := p.ensureTopic(ctx, cfg.Partitions, cfg.ReplicationFactor); err != nil {
			client.Close()
			return nil, err
		}
	}
	return p, nil
}

func (p *Publisher) ensureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopic(ctx, partitions, replication, nil, p.topic)
	if err != nil {
		return fmt.Errorf("kafka: create topic %s: %w", p.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("kafka: create topic %s: %w", p.topic, resp.Err)
	}
	p.logger.Debug().Str("topic", p.topic).Msg("kafka topic ready")
	return nil
}

func (p *Publisher) Send(ctx context.Context, msg notify.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("kafka: marshal message: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(msg.UserID.String()),
		Value: body,
		Headers: []kgo.RecordHeader{
			{Key: "template", Value: []byte(msg.Template)},
			{Key: "org_id", Value: []byte(msg.OrgID.String())},
			{Key: "idempotency_key", Value: []byte(msg.IdempotencyKey())},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce: %w", err)
	}
	return nil
}

func (p *Publisher) Close() {
	p.client.Close()
}
