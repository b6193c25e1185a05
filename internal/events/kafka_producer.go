package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samims/notification-api/internal/config"
	"github.com/samims/notification-api/internal/model"
	"github.com/samims/notification-api/pkg/tracing"
)

type kafkaPublisher struct {
	asyncProducer sarama.AsyncProducer
	topic         string
	log           *slog.Logger
	wg            sync.WaitGroup
	closeOnce     sync.Once
	tracer        *tracing.Tracer
}

// NewSaramaProducer builds the async producer from config.
func NewSaramaProducer(cfg config.KafkaConfig) (sarama.AsyncProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Version = sarama.V2_1_0_0
	saramaConfig.ClientID = cfg.ClientID

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sarama producer: %w", err)
	}
	return producer, nil
}

// NewKafkaPublisher publishes ledger events keyed by notification id so
// every event of one notification lands on the same partition in order.
func NewKafkaPublisher(asyncProducer sarama.AsyncProducer, topic string, log *slog.Logger, tracer *tracing.Tracer) Publisher {
	if asyncProducer == nil || log == nil || tracer == nil {
		panic("NewKafkaPublisher: nil dependencies provided")
	}
	if topic == "" {
		panic("NewKafkaPublisher: topic must not be empty")
	}
	return &kafkaPublisher{
		asyncProducer: asyncProducer,
		topic:         topic,
		log:           log.With("layer", "events", "component", "kafkaPublisher"),
		tracer:        tracer,
	}
}

// Start launches background handlers for success and error channels
func (p *kafkaPublisher) Start(ctx context.Context) {
	p.log.Info("Starting Kafka producer handlers")
	p.wg.Add(2)
	go p.handleSuccess(ctx)
	go p.handleErrors(ctx)
}

func (p *kafkaPublisher) handleSuccess(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case msg, ok := <-p.asyncProducer.Successes():
			if !ok {
				return
			}
			p.recordDelivery(ctx, msg)
			key, _ := msg.Key.Encode()
			p.log.Debug("Ledger event delivered",
				slog.String("topic", msg.Topic),
				slog.Int("partition", int(msg.Partition)),
				slog.Int64("offset", msg.Offset),
				slog.String("key", string(key)))
		case <-ctx.Done():
			return
		}
	}
}

// recordDelivery emits a span under the publishing trace carrying the
// partition and offset the broker assigned.
func (p *kafkaPublisher) recordDelivery(ctx context.Context, msg *sarama.ProducerMessage) {
	headers := make([]*sarama.RecordHeader, 0, len(msg.Headers))
	for i := range msg.Headers {
		headers = append(headers, &msg.Headers[i])
	}
	_, span := p.tracer.StartInternalSpan(tracing.ExtractTraceContext(ctx, headers), "KafkaDelivered")
	p.tracer.AddKafkaAttributes(span, msg.Topic, "deliver", msg.Partition, msg.Offset)
	span.End()
}

func (p *kafkaPublisher) handleErrors(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case err, ok := <-p.asyncProducer.Errors():
			if !ok {
				return
			}
			p.log.Error("Ledger event delivery failed",
				slog.String("topic", err.Msg.Topic),
				slog.Any("error", err.Err))
		case <-ctx.Done():
			return
		}
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, evt model.LedgerEvent) error {
	ctx, span := p.tracer.StartClientSpan(ctx, "KafkaPublish",
		attribute.Int64(tracing.AttrNotificationID, evt.NotificationID),
		attribute.String(tracing.AttrLedgerEvent, string(evt.Event)),
		attribute.String(tracing.AttrMessagingSystem, "kafka"),
		attribute.String(tracing.AttrMessagingDestination, p.topic),
		attribute.String(tracing.AttrMessagingOperation, "publish"),
	)
	defer span.End()

	data, err := json.Marshal(evt)
	if err != nil {
		p.tracer.RecordError(span, err)
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}

	key := strconv.FormatInt(evt.NotificationID, 10)
	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
		Headers:   tracing.InjectTraceContext(ctx, nil),
	}

	select {
	case p.asyncProducer.Input() <- msg:
		p.log.Debug("Ledger event queued",
			slog.String("topic", p.topic),
			slog.String("key", key),
			slog.String("event", string(evt.Event)))
		return nil
	case <-ctx.Done():
		p.tracer.RecordError(span, ctx.Err())
		return ctx.Err()
	}
}

// Close shuts down the producer and waits for the handlers to drain.
func (p *kafkaPublisher) Close(_ context.Context) {
	p.closeOnce.Do(func() {
		p.log.Info("Closing Kafka producer")
		p.asyncProducer.AsyncClose()
		p.wg.Wait()
		p.log.Info("Kafka producer closed")
	})
}
