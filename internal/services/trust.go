package services

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// TrustGate — внешний trust-score сервис, здесь потребляем только
// готовый флаг "можно ли писать сообщения"
type TrustGate interface {
	MaySend(ctx context.Context, memberID uuid.UUID) (bool, error)
}

const trustRestrictedPrefix = "trust:restricted:"

// RedisTrustGate читает флаг ограничения из Redis, куда его кладет
// trust-score сервис. Нет ключа — участник не ограничен.
type RedisTrustGate struct {
	redis *redis.Client
}

func NewRedisTrustGate(rdb *redis.Client) *RedisTrustGate {
	return &RedisTrustGate{redis: rdb}
}

func (g *RedisTrustGate) MaySend(ctx context.Context, memberID uuid.UUID) (bool, error) {
	exists, err := g.redis.Exists(ctx, trustRestrictedPrefix+memberID.String()).Result()
	if err != nil {
		// При недоступности Redis не блокируем обмен сообщениями
		log.Printf("Trust gate lookup failed for %s: %v", memberID, err)
		return true, nil
	}
	return exists == 0, nil
}
