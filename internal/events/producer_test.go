package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEvent_Fields(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := &AuthEvent{Type: UserLoginFailed, Email: "jo@ex.com", Timestamp: ts, IP: "127.0.0.1"}

	fields := e.Fields()
	assert.Equal(t, "user.login_failed", fields["type"])
	assert.Equal(t, "jo@ex.com", fields["email"])
	assert.Equal(t, ts.UnixMilli(), fields["timestamp"])
	assert.Equal(t, "127.0.0.1", fields["ip"])
	assert.NotContains(t, fields, "user_id")
	assert.NotContains(t, fields, "user_agent")
}

func TestEnrich(t *testing.T) {
	e := &AuthEvent{
		Type:      UserLogin,
		UserID:    3,
		IP:        "10.0.0.4",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	}
	enrich(e)

	assert.Equal(t, "Firefox", e.Browser)
	assert.Equal(t, "desktop", e.DeviceType)
	assert.Equal(t, "private", e.NetworkScope)
	assert.EqualValues(t, 3, e.Fields()["user_id"])
}

func TestStreamProducer_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()

	err := NewStreamProducer(rdb, "auth:events", 100).Publish(context.Background(), &AuthEvent{Type: UserLogin})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.login")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), &AuthEvent{}))
}

// Needs a live Redis: REDIS_TEST_ADDR=localhost:6379.
func TestStreamProducer_Publish(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	ctx := context.Background()

	stream := "auth:events:test:" + time.Now().Format(time.RFC3339Nano)
	defer rdb.Del(ctx, stream)

	p := NewStreamProducer(rdb, stream, 0)
	require.NoError(t, p.Publish(ctx, &AuthEvent{Type: UserRegistered, UserID: 1, Email: "jo@ex.com", Timestamp: time.Now()}))

	n, err := p.StreamLength(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	entries, err := rdb.XRange(ctx, stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user.registered", entries[0].Values["type"])
}
