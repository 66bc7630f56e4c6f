package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "github.com/bizli/geo-service/internal/pkg/errors"
)

// unreachableRepo строит репозиторий поверх заведомо недоступного
// Redis: каждая операция должна вернуть типизированную ошибку кеша
func unreachableRepo() *cacheRepository {
	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	return &cacheRepository{
		client: client,
		logger: zap.NewNop(),
	}
}

func TestCacheRepository_UnavailableBackend(t *testing.T) {
	repo := unreachableRepo()
	ctx := context.Background()

	_, err := repo.Get(ctx, "key")
	assert.ErrorIs(t, err, apperrors.ErrCacheError)

	err = repo.Set(ctx, "key", []byte("value"), time.Minute)
	assert.ErrorIs(t, err, apperrors.ErrCacheError)

	err = repo.Delete(ctx, "key")
	assert.ErrorIs(t, err, apperrors.ErrCacheError)

	_, err = repo.Exists(ctx, "key")
	assert.ErrorIs(t, err, apperrors.ErrCacheError)
}
