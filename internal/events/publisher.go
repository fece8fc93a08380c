package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// Topics published by the ledger
const (
	TopicTransactionRecorded = "transaction.recorded"
	TopicBalanceChanged      = "balance.changed"
)

// TransactionRecorded is emitted after a ledger mutation commits
type TransactionRecorded struct {
	TransactionID string          `json:"transaction_id"`
	UID           string          `json:"uid"`
	AccountID     string          `json:"account_id"`
	ToAccountID   string          `json:"to_account_id,omitempty"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// BalanceChanged is emitted per participant adjusted by reconciliation
type BalanceChanged struct {
	UID           string          `json:"uid"`
	ParticipantID string          `json:"participant_id"`
	IsCard        bool            `json:"is_card"`
	Delta         decimal.Decimal `json:"delta"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// Publisher pushes change events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// KafkaPublisher writes events to Kafka
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: data,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
