package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Varun5711/taskflow/internal/enrichment"
)

type Publisher interface {
	Publish(ctx context.Context, event *AuthEvent) error
}

// NopPublisher drops every event. Used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *AuthEvent) error { return nil }

type StreamProducer struct {
	client     redis.Cmdable
	streamName string
	maxLen     int64
}

// NewStreamProducer publishes to a Redis stream trimmed to roughly maxLen
// entries. maxLen <= 0 disables trimming.
func NewStreamProducer(client redis.Cmdable, streamName string, maxLen int64) *StreamProducer {
	return &StreamProducer{
		client:     client,
		streamName: streamName,
		maxLen:     maxLen,
	}
}

func (p *StreamProducer) Publish(ctx context.Context, event *AuthEvent) error {
	enrich(event)

	args := &redis.XAddArgs{
		Stream: p.streamName,
		Values: event.Fields(),
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}

func (p *StreamProducer) StreamLength(ctx context.Context) (int64, error) {
	result := p.client.XLen(ctx, p.streamName)
	return result.Val(), result.Err()
}

func enrich(event *AuthEvent) {
	if event.UserAgent != "" && event.DeviceType == "" {
		ua := enrichment.ParseUserAgent(event.UserAgent)
		event.Browser = ua.Browser
		event.OS = ua.OS
		event.DeviceType = ua.DeviceType
	}
	if event.IP != "" && event.NetworkScope == "" {
		event.NetworkScope = enrichment.NetworkScope(event.IP)
	}
}

var (
	_ Publisher = NopPublisher{}
	_ Publisher = (*StreamProducer)(nil)
)
