package taskstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Altair788/no-more-procrastination/internal/domain/notification"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "task:"

// RedisStore publishes task-state documents to Redis so external observers
// can poll dispatch and delivery progress. Each task is one JSON value under
// "task:<id>" with a TTL, so finished tasks age out on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

type stateDocument struct {
	State string      `json:"state"`
	Meta  interface{} `json:"meta"`
}

type dispatchMeta struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Status  string `json:"status"`
}

type deliveryMeta struct {
	Status string `json:"status"`
}

func dispatchStateDocument(p notification.DispatchProgress) ([]byte, error) {
	return json.Marshal(stateDocument{
		State: "PROGRESS",
		Meta:  dispatchMeta{Current: p.Current, Total: p.Total, Status: p.Status},
	})
}

func deliveryStateDocument(status string) ([]byte, error) {
	return json.Marshal(stateDocument{
		State: "PROGRESS",
		Meta:  deliveryMeta{Status: status},
	})
}

func (s *RedisStore) PublishDispatchProgress(ctx context.Context, taskID string, p notification.DispatchProgress) error {
	payload, err := dispatchStateDocument(p)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch progress: %w", err)
	}
	return s.set(ctx, taskID, payload)
}

func (s *RedisStore) PublishDeliveryStatus(ctx context.Context, taskID string, status string) error {
	payload, err := deliveryStateDocument(status)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery status: %w", err)
	}
	return s.set(ctx, taskID, payload)
}

func (s *RedisStore) set(ctx context.Context, taskID string, payload []byte) error {
	if err := s.client.Set(ctx, keyPrefix+taskID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to publish task status for %s: %w", taskID, err)
	}
	return nil
}
