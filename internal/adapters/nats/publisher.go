package natsadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/samirrijal/geofences/internal/core/domain"
	"github.com/samirrijal/geofences/internal/core/ports"
	"github.com/samirrijal/geofences/internal/pkg/metrics"
)

const (
	// StreamName is the JetStream stream holding geofence events.
	StreamName = "GEOFENCES"
	// SubjectCreated carries one message per stored record.
	SubjectCreated = "geofence.created"
	// ContentType describes the payload: a binary google.protobuf.Struct.
	ContentType = "application/x-protobuf; messageType=google.protobuf.Struct"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{"geofence.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(cfg); err != nil {
		// Stream may already exist, so update it instead
		if _, err := js.UpdateStream(cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishGeofenceCreated publishes a geofence.created event for record.
// Each message carries a unique Nats-Msg-Id so JetStream drops duplicates.
func (p *Publisher) PublishGeofenceCreated(ctx context.Context, record *domain.GeofenceRecord) error {
	data, err := EncodeCreatedEvent(record, time.Now().UTC())
	if err != nil {
		metrics.EventsPublished.WithLabelValues("encode_error").Inc()
		return err
	}

	msg := nats.NewMsg(SubjectCreated)
	msg.Header.Set("Content-Type", ContentType)
	msg.Data = data

	if _, err := p.js.PublishMsg(msg, nats.MsgId(uuid.NewString()), nats.Context(ctx)); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("publish %s: %w", SubjectCreated, err)
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
	return nil
}

// IsConnected reports whether the underlying connection is up.
func (p *Publisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// EncodeCreatedEvent serializes record as a protobuf Struct. Coordinates travel
// in their stored text form; absent fields are null values.
func EncodeCreatedEvent(record *domain.GeofenceRecord, publishedAt time.Time) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"fence_id":     nullable(record.FenceID),
		"name":         nullable(record.Name),
		"notes":        nullable(record.Notes),
		"created_at":   nullable(record.CreatedAt),
		"coordinates":  nullable(record.Coordinates),
		"published_at": publishedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return proto.Marshal(s)
}

// DecodeCreatedEvent is the inverse of EncodeCreatedEvent.
func DecodeCreatedEvent(data []byte) (map[string]any, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return s.AsMap(), nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
