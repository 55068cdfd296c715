package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapter_QuizDetail(t *testing.T) {
	client, mock := redismock.NewClientMock()
	quizCache := NewRedisCacheAdapter(client)
	ctx := context.Background()

	key := cache.QuizDetailKey("01HXYZ")
	detail := `{"id":"01HXYZ","title":"Alan Turing"}`
	ttl := 24 * time.Hour

	mock.ExpectGet(key).SetErr(redis.Nil)
	_, err := quizCache.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrCacheMiss, "redis.Nil is a miss")

	mock.ExpectSet(key, detail, ttl).SetVal("OK")
	assert.NoError(t, quizCache.Set(ctx, key, detail, ttl))

	mock.ExpectGet(key).SetVal(detail)
	got, err := quizCache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, detail, got)

	mock.ExpectDel(key).SetVal(1)
	assert.NoError(t, quizCache.Delete(ctx, key))

	// Deleting a key that is already gone is not an error
	mock.ExpectDel(key).SetVal(0)
	assert.NoError(t, quizCache.Delete(ctx, key))

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, quizCache.Ping(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Errors(t *testing.T) {
	redisErr := errors.New("connection reset")
	key := cache.QuizDetailKey("01HXYZ")

	tests := []struct {
		name   string
		expect func(mock redismock.ClientMock)
		call   func(ctx context.Context, c domain.Cache) error
	}{
		{
			name:   "get",
			expect: func(mock redismock.ClientMock) { mock.ExpectGet(key).SetErr(redisErr) },
			call: func(ctx context.Context, c domain.Cache) error {
				val, err := c.Get(ctx, key)
				assert.Empty(t, val)
				return err
			},
		},
		{
			name:   "set",
			expect: func(mock redismock.ClientMock) { mock.ExpectSet(key, "v", time.Minute).SetErr(redisErr) },
			call: func(ctx context.Context, c domain.Cache) error {
				return c.Set(ctx, key, "v", time.Minute)
			},
		},
		{
			name:   "delete",
			expect: func(mock redismock.ClientMock) { mock.ExpectDel(key).SetErr(redisErr) },
			call: func(ctx context.Context, c domain.Cache) error {
				return c.Delete(ctx, key)
			},
		},
		{
			name:   "ping",
			expect: func(mock redismock.ClientMock) { mock.ExpectPing().SetErr(redisErr) },
			call: func(ctx context.Context, c domain.Cache) error {
				return c.Ping(ctx)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			tt.expect(mock)

			err := tt.call(context.Background(), NewRedisCacheAdapter(client))
			assert.ErrorIs(t, err, redisErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisCacheAdapter_DeleteByPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	prefix := cache.QuizKeyPrefix()

	t.Run("MultipleBatches", func(t *testing.T) {
		mock.ExpectScan(0, prefix+"*", scanBatch).SetVal([]string{prefix + "detail:a", prefix + "detail:b"}, 7)
		mock.ExpectDel(prefix+"detail:a", prefix+"detail:b").SetVal(2)
		mock.ExpectScan(7, prefix+"*", scanBatch).SetVal([]string{}, 0)

		deleted, err := adapter.DeleteByPrefix(ctx, prefix)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NothingCached", func(t *testing.T) {
		mock.ExpectScan(0, prefix+"*", scanBatch).SetVal(nil, 0)

		deleted, err := adapter.DeleteByPrefix(ctx, prefix)
		assert.NoError(t, err)
		assert.Zero(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ScanError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectScan(0, prefix+"*", scanBatch).SetErr(redisErr)

		_, err := adapter.DeleteByPrefix(ctx, prefix)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
	n, err := c.DeleteByPrefix(ctx, "k")
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, c.Ping(ctx))
}
