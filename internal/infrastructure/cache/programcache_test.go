package cache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/domain/program"
	apperrors "registrar/internal/shared/errors"
	"registrar/internal/shared/logger"
)

func nopLog() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

// countingFetcher serves a fixed payload and counts calls.
type countingFetcher struct {
	payload []byte
	err     error
	calls   int
}

func (f *countingFetcher) Fetch(ctx context.Context, programUUID string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

const cachedProgramPayload = `{
	"title": "Masters in Testing",
	"marketing_url": "https://example.com/testing",
	"type": "Masters",
	"curricula": [
		{
			"uuid": "active-curriculum",
			"is_active": true,
			"courses": [
				{"course_runs": [{"key": "course-v1:T+1", "external_key": "T-1", "title": "Testing I"}]}
			]
		}
	]
}`

func newTestCache(store MetadataStore, fetcher program.MetadataFetcher, ttl time.Duration) *ProgramCache {
	return NewProgramCache(store, fetcher, program.NewParser(nopLog()), ttl, nopLog())
}

func TestGetFetchesOnceWithinTTL(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisMetadataStore(client, nopLog())
	fetcher := &countingFetcher{payload: []byte(cachedProgramPayload)}
	cache := newTestCache(store, fetcher, time.Hour)

	ctx := context.Background()

	first, err := cache.Get(ctx, "prog-1")
	require.NoError(t, err)
	assert.Equal(t, "Masters in Testing", first.Title)
	assert.Equal(t, 1, fetcher.calls)

	second, err := cache.Get(ctx, "prog-1")
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.ActiveCurriculumUUID, second.ActiveCurriculumUUID)
	assert.Equal(t, 1, fetcher.calls, "second read within TTL must not fetch")
}

func TestGetRefetchesAfterTTLExpiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisMetadataStore(client, nopLog())
	fetcher := &countingFetcher{payload: []byte(cachedProgramPayload)}
	cache := newTestCache(store, fetcher, time.Minute)

	ctx := context.Background()

	_, err := cache.Get(ctx, "prog-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cache.Get(ctx, "prog-1")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestGetRefetchesAfterInvalidate(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisMetadataStore(client, nopLog())
	fetcher := &countingFetcher{payload: []byte(cachedProgramPayload)}
	cache := newTestCache(store, fetcher, time.Hour)

	ctx := context.Background()

	_, err := cache.Get(ctx, "prog-1")
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, "prog-1"))

	_, err = cache.Get(ctx, "prog-1")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestGetRefetchesOnStaleSchemaVersion(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisMetadataStore(client, nopLog())
	fetcher := &countingFetcher{payload: []byte(cachedProgramPayload)}
	cache := newTestCache(store, fetcher, time.Hour)

	ctx := context.Background()

	stale := &program.Metadata{
		SchemaVersion: program.SchemaVersion - 1,
		UUID:          "prog-1",
		Title:         "Old Shape",
		ProgramType:   "Masters",
	}
	require.NoError(t, store.Set(ctx, "prog-1", stale, time.Hour))

	meta, err := cache.Get(ctx, "prog-1")
	require.NoError(t, err)
	assert.Equal(t, "Masters in Testing", meta.Title)
	assert.Equal(t, 1, fetcher.calls, "stale version must trigger a fetch")
}

func TestGetDoesNotCacheFetchFailures(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisMetadataStore(client, nopLog())
	fetcher := &countingFetcher{err: apperrors.NewNotFoundError("program not found in discovery", "prog-1")}
	cache := newTestCache(store, fetcher, time.Hour)

	ctx := context.Background()

	_, err := cache.Get(ctx, "prog-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = cache.Get(ctx, "prog-1")
	require.Error(t, err)
	assert.Equal(t, 2, fetcher.calls, "failures are never cached")
}

func TestGetDoesNotCacheValidationFailures(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisMetadataStore(client, nopLog())
	fetcher := &countingFetcher{payload: []byte(`{"type": "Masters"}`)}
	cache := newTestCache(store, fetcher, time.Hour)

	ctx := context.Background()

	_, err := cache.Get(ctx, "prog-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))

	cached, err := store.Get(ctx, "prog-1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestStoreDropsUndecodableEntry(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisMetadataStore(client, nopLog())

	require.NoError(t, mr.Set("program:metadata:prog-1", "not-json"))

	cached, err := store.Get(context.Background(), "prog-1")
	require.NoError(t, err)
	assert.Nil(t, cached)
	assert.False(t, mr.Exists("program:metadata:prog-1"))
}
