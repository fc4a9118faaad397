package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"school-placement/internal/domain"
	"school-placement/internal/repository"
)

type redisGetSetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// cachedQualificationRepository es un read-through cache de la consulta por estudiante.
// Los fallos de Redis no bloquean: se consulta directo al repositorio.
type cachedQualificationRepository struct {
	next   repository.QualificationRepository
	client redisGetSetter
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// NewCachedQualificationRepository devuelve next sin envolver si no hay cliente Redis.
func NewCachedQualificationRepository(client *redis.Client, next repository.QualificationRepository, ttl time.Duration, logger *zap.Logger) repository.QualificationRepository {
	if client == nil {
		return next
	}
	return newCachedQualificationRepository(client, next, ttl, logger)
}

func newCachedQualificationRepository(client redisGetSetter, next repository.QualificationRepository, ttl time.Duration, logger *zap.Logger) *cachedQualificationRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedQualificationRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: "qual:",
		logger: logger,
	}
}

func (c *cachedQualificationRepository) key(programCode, studentID string) string {
	return c.prefix + strings.ToUpper(programCode) + ":" + studentID
}

func (c *cachedQualificationRepository) FindByStudentID(ctx context.Context, programCode, studentID string) ([]domain.QualificationRecord, error) {
	key := c.key(programCode, studentID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var records []domain.QualificationRecord
		if jsonErr := json.Unmarshal(raw, &records); jsonErr == nil {
			return records, nil
		}
		c.logger.Warn("discarding corrupt qualification cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("qualification cache read failed", zap.String("key", key), zap.Error(err))
	}

	records, err := c.next.FindByStudentID(ctx, programCode, studentID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(records)
	if err == nil {
		err = c.client.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.logger.Warn("qualification cache write failed", zap.String("key", key), zap.Error(err))
	}
	return records, nil
}

// Uncached expone el repositorio detras de la cache.
func (c *cachedQualificationRepository) Uncached() repository.QualificationRepository {
	return c.next
}

// FindLatestByStudentIDs no se cachea: lo usan vistas de coordinacion poco frecuentes.
func (c *cachedQualificationRepository) FindLatestByStudentIDs(ctx context.Context, programCode string, studentIDs []string) (map[string]domain.QualificationRecord, error) {
	return c.next.FindLatestByStudentIDs(ctx, programCode, studentIDs)
}
