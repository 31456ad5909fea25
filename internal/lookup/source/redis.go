package source

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	errx "github.com/alraulpm-lang/checador/internal/core/error"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var errEmptyPayload = errors.New("empty decode payload")

// RedisSource subscribes to a pub/sub channel fed by remote scanner devices.
type RedisSource struct {
	rdb     redis.UniversalClient
	channel string
}

func NewRedisSource(rdb redis.UniversalClient, channel string) *RedisSource {
	return &RedisSource{rdb: rdb, channel: channel}
}

func (s *RedisSource) Name() string { return "redis:" + s.channel }

func (s *RedisSource) Start(ctx context.Context, q *Queue) error {
	ps := s.rdb.Subscribe(ctx, s.channel)
	// Receive waits for the subscription confirmation so that connection
	// problems surface here instead of in the delivery goroutine.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		logx.Error().Err(err).Str("channel", s.channel).Msg("failed to subscribe to redis channel")
		return errx.WrapRedis(err)
	}
	go s.run(ctx, ps, q)
	return nil
}

func (s *RedisSource) run(ctx context.Context, ps *redis.PubSub, q *Queue) {
	defer ps.Close()
	messages := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				logx.Warn().Str("channel", s.channel).Msg("redis subscription closed")
				return
			}
			code, err := DecodePayload(msg.Payload)
			if err != nil {
				logx.Warn().Err(err).Str("channel", s.channel).Msg("dropping undecodable scan payload")
				continue
			}
			if err := q.Enqueue(ctx, model.NewDecodeEvent(s.Name(), code)); err != nil {
				return
			}
		}
	}
}

type scanPayload struct {
	Code string `json:"code"`
}

// DecodePayload accepts either a bare code or a JSON object {"code": "..."}.
func DecodePayload(payload string) (string, error) {
	p := strings.TrimSpace(payload)
	if strings.HasPrefix(p, "{") {
		var sp scanPayload
		if err := json.Unmarshal([]byte(p), &sp); err != nil {
			return "", err
		}
		p = strings.TrimSpace(sp.Code)
	}
	if p == "" {
		return "", errEmptyPayload
	}
	return p, nil
}

var _ Source = (*RedisSource)(nil)
var _ Source = (*LineSource)(nil)
