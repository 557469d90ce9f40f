package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barberhub/booking-api/internal/config"
	"github.com/barberhub/booking-api/internal/models"
)

const historyTTL = 5 * time.Minute

// NewClient connects to redis. A nil return means caching is disabled
// and every read goes to the database.
func NewClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// AppointmentCache keeps each customer's appointment history hot and
// drops it whenever a booking write touches that user's data.
type AppointmentCache struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewAppointmentCache(rdb *redis.Client, log *zap.Logger) *AppointmentCache {
	return &AppointmentCache{rdb: rdb, log: log}
}

func historyKey(userID uuid.UUID) string {
	return "appointments:user:" + userID.String()
}

func (c *AppointmentCache) GetUserHistory(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.Appointment, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, historyKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("history cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var aps []models.Appointment
	if err := json.Unmarshal(raw, &aps); err != nil {
		return nil, false
	}
	return aps, true
}

func (c *AppointmentCache) SetUserHistory(
	ctx context.Context,
	userID uuid.UUID,
	aps []models.Appointment,
) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(aps)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, historyKey(userID), raw, historyTTL).Err(); err != nil {
		c.log.Debug("history cache write failed", zap.Error(err))
	}
}

// InvalidateUserHistory drops the cached list after any write that
// changes the user's appointments.
func (c *AppointmentCache) InvalidateUserHistory(
	ctx context.Context,
	userID uuid.UUID,
) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, historyKey(userID)).Err(); err != nil {
		c.log.Debug("history cache invalidation failed", zap.Error(err))
	}
}
