// Package cache redis-кэш ответов о доступности слотов.
//
// Кэш опережающий, не авторитетный: доступность всегда перепроверяется
// внутри транзакции создания бронирования, поэтому устаревшая запись кэша
// не может привести к двойному бронированию. Записи инвалидируются при
// создании и отмене бронирования по ключу (корт, дата).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rameshwari28/QuickCourt/internal/domain"
)

// AvailabilityCache кэш слотов доступности по ключу (корт, дата)
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New создает кэш доступности поверх redis-клиента
func New(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

// GetSlots возвращает закэшированные слоты корта на дату
// Второе возвращаемое значение false означает промах кэша
func (c *AvailabilityCache) GetSlots(ctx context.Context, courtID int64, date time.Time) ([]domain.AvailableSlot, bool, error) {
	raw, err := c.rdb.Get(ctx, keyCourtDaySlots(courtID, date)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var slots []domain.AvailableSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		// Битую запись считаем промахом, она перезапишется
		return nil, false, nil
	}

	return slots, true, nil
}

// SetSlots сохраняет слоты корта на дату с TTL
func (c *AvailabilityCache) SetSlots(ctx context.Context, courtID int64, date time.Time, slots []domain.AvailableSlot) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyCourtDaySlots(courtID, date), raw, c.ttl).Err()
}

// Invalidate удаляет запись кэша для корта на дату
// Вызывается после создания и отмены бронирования
func (c *AvailabilityCache) Invalidate(ctx context.Context, courtID int64, date time.Time) error {
	return c.rdb.Del(ctx, keyCourtDaySlots(courtID, date)).Err()
}

// Disabled заглушка кэша: всегда промах, запись и инвалидация — no-op
// Используется, когда redis выключен в конфигурации
type Disabled struct{}

// GetSlots всегда возвращает промах
func (Disabled) GetSlots(ctx context.Context, courtID int64, date time.Time) ([]domain.AvailableSlot, bool, error) {
	return nil, false, nil
}

// SetSlots ничего не делает
func (Disabled) SetSlots(ctx context.Context, courtID int64, date time.Time, slots []domain.AvailableSlot) error {
	return nil
}

// Invalidate ничего не делает
func (Disabled) Invalidate(ctx context.Context, courtID int64, date time.Time) error {
	return nil
}
