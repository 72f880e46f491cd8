package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/decision"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/mitchellh/mapstructure"
)

const (
	ExporterName = "kafka"

	flushTimeout = 5 * time.Second
)

var errNoProducer = errors.New("kafka producer is not initialized")

// Config is decoded from the exporter's settings block.
type Config struct {
	Host  string `mapstructure:"host"`
	Port  string `mapstructure:"port"`
	Topic string `mapstructure:"topic"`
}

func (c Config) bootstrapServers() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Exporter publishes decision events to a topic, keyed by identity so one
// submitter's decisions stay on one partition.
type Exporter struct {
	cfg      Config
	producer *kafka.Producer
}

func NewKafkaExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) Name() string {
	return ExporterName
}

func (e *Exporter) ValidateConfig(settings map[string]interface{}) error {
	_, err := parseSettings(settings)
	return err
}

func (e *Exporter) WithSettings(settings map[string]interface{}) (decision.Exporter, error) {
	cfg, err := parseSettings(settings)
	if err != nil {
		return nil, err
	}
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.bootstrapServers(),
	})
	if err != nil {
		return nil, fmt.Errorf("kafka producer for %s: %w", cfg.bootstrapServers(), err)
	}
	return &Exporter{cfg: cfg, producer: producer}, nil
}

func (e *Exporter) Handle(ctx context.Context, evt *decision.Event) error {
	if e.producer == nil {
		return errNoProducer
	}
	msg, err := e.message(evt)
	if err != nil {
		return err
	}
	delivered := make(chan kafka.Event, 1)
	if err := e.producer.Produce(msg, delivered); err != nil {
		return fmt.Errorf("produce to %s: %w", e.cfg.Topic, err)
	}
	return awaitDelivery(ctx, delivered)
}

func (e *Exporter) Close() {
	if e.producer == nil {
		return
	}
	e.producer.Flush(int(flushTimeout / time.Millisecond))
	e.producer.Close()
}

func (e *Exporter) message(evt *decision.Event) (*kafka.Message, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("encode decision %s: %w", evt.ID, err)
	}
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &e.cfg.Topic, Partition: kafka.PartitionAny},
		Key:            []byte(evt.IdentityKey),
		Value:          payload,
		Headers: []kafka.Header{
			{Key: "outcome", Value: []byte(evt.Outcome)},
		},
	}, nil
}

func awaitDelivery(ctx context.Context, delivered <-chan kafka.Event) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("awaiting delivery report: %w", ctx.Err())
	case ev := <-delivered:
		msg, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery report %T", ev)
		}
		return msg.TopicPartition.Error
	}
}

func parseSettings(settings map[string]interface{}) (Config, error) {
	var cfg Config
	if err := mapstructure.WeakDecode(settings, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid kafka settings: %w", err)
	}
	switch {
	case cfg.Host == "":
		return cfg, errors.New("kafka host is required")
	case cfg.Port == "":
		return cfg, errors.New("kafka port is required")
	case cfg.Topic == "":
		return cfg, errors.New("kafka topic is required")
	}
	return cfg, nil
}
