package notifications

import (
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/swasthikkulal/parking-backend/pkg/logger"
)

// KafkaProducerConfig contains configuration for the session event producer
type KafkaProducerConfig struct {
	Brokers      []string
	Topic        string
	RetryMax     int
	TimeoutMs    int
	RequiredAcks sarama.RequiredAcks
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:      []string{"localhost:9092"},
		Topic:        "parking.session-events",
		RetryMax:     3,
		TimeoutMs:    10000,
		RequiredAcks: sarama.WaitForLocal,
	}
}

// SessionEventProducer publishes session lifecycle events to Kafka. Publishing
// is best-effort and never blocks or fails a booking request.
type SessionEventProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger
}

// NewSessionEventProducer creates a Kafka-backed session event producer
func NewSessionEventProducer(config *KafkaProducerConfig, log *logger.Logger) (*SessionEventProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond

	// Hash partitioner keeps one slot's events on one partition.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &SessionEventProducer{
		producer: producer,
		config:   config,
		log:      log,
	}, nil
}

// PublishSessionEvent sends one lifecycle event in the background.
func (p *SessionEventProducer) PublishSessionEvent(eventType, token, slotNumber string, amount float64) {
	event := &SessionEvent{
		Type:       eventType,
		Token:      token,
		SlotNumber: slotNumber,
		Amount:     amount,
		At:         time.Now(),
	}

	go func() {
		payload, err := event.ToJSON()
		if err != nil {
			p.log.WithError(err).Error("failed to marshal session event")
			return
		}

		message := &sarama.ProducerMessage{
			Topic: p.config.Topic,
			Key:   sarama.StringEncoder(slotNumber),
			Value: sarama.ByteEncoder(payload),
			Headers: []sarama.RecordHeader{
				{Key: []byte("event_type"), Value: []byte(eventType)},
				{Key: []byte("producer"), Value: []byte("parking-backend")},
			},
			Timestamp: event.At,
		}

		if _, _, err := p.producer.SendMessage(message); err != nil {
			p.log.WithError(err).WithFields(map[string]interface{}{
				"event_type": eventType,
				"token":      token,
			}).Error("failed to publish session event")
		}
	}()
}

// Close closes the Kafka producer
func (p *SessionEventProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}
