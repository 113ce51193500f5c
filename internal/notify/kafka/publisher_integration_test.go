//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"mandate/internal/notify"
	"mandate/internal/platform/config"
	id "mandate/pkg/domain"
	"mandate/pkg/testutil/containers"
)

type PublisherIntegrationSuite struct {
	suite.Suite
	brokers []string
}

func TestPublisherIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PublisherIntegrationSuite))
}

func (s *PublisherIntegrationSuite) SetupSuite() {
	rp := containers.GetManager().GetRedpanda(s.T())
	s.brokers = []string{rp.Broker}
}

func (s *PublisherIntegrationSuite) TestSendProducesKeyedRecord() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "reminders-" + uuid.NewString()[:8]
	pub, err := New(ctx, config.KafkaConfig{
		Brokers:           s.brokers,
		Topic:             topic,
		Partitions:        1,
		ReplicationFactor: 1,
		EnsureTopic:       true,
	}, zerolog.Nop())
	s.Require().NoError(err)
	defer pub.Close()

	msg := notify.Message{
		Template:     notify.TemplateOverdueReminder,
		OrgID:        id.OrgID(uuid.New()),
		UserID:       id.UserID(uuid.New()),
		ObligationID: id.NewObligationID(),
		Data:         notify.ReminderData{UserName: "Ada", CourseName: "Security Basics", DaysOverdue: 3},
		SentAt:       time.Now().UTC().Truncate(time.Second),
	}
	s.Require().NoError(pub.Send(ctx, msg))

	s.Run("ensuring an existing topic is not an error", func() {
		again, err := New(ctx, config.KafkaConfig{
			Brokers: s.brokers, Topic: topic, Partitions: 1, ReplicationFactor: 1, EnsureTopic: true,
		}, zerolog.Nop())
		s.Require().NoError(err)
		again.Close()
	})

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().Len(records, 1)
	s.Equal(msg.UserID.String(), string(records[0].Key))

	var got notify.Message
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(msg.ObligationID, got.ObligationID)
	s.Equal(3, got.Data.DaysOverdue)
}
