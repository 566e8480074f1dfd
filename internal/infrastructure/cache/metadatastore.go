package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"registrar/internal/domain/program"
	apperrors "registrar/internal/shared/errors"
	"registrar/internal/shared/logger"
)

const programMetadataKeyPrefix = "program:metadata:"

// MetadataStore is the key/value backing store for cached program
// metadata. Implementations are swappable; the canonical one is redis.
// Get returns (nil, nil) on a miss.
type MetadataStore interface {
	Get(ctx context.Context, programUUID string) (*program.Metadata, error)
	Set(ctx context.Context, programUUID string, meta *program.Metadata, ttl time.Duration) error
	Delete(ctx context.Context, programUUID string) error
}

// RedisMetadataStore stores metadata records as JSON values under a
// namespaced key per program UUID.
type RedisMetadataStore struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisMetadataStore(client *redis.Client, log logger.Interface) *RedisMetadataStore {
	return &RedisMetadataStore{
		client: client,
		logger: log,
	}
}

func (s *RedisMetadataStore) key(programUUID string) string {
	return programMetadataKeyPrefix + programUUID
}

func (s *RedisMetadataStore) Get(ctx context.Context, programUUID string) (*program.Metadata, error) {
	raw, err := s.client.Get(ctx, s.key(programUUID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, apperrors.NewStoreError("failed to read cached program metadata", err.Error())
	}

	var meta program.Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		// An undecodable entry is dropped and treated as a miss so the
		// next fetch replaces it.
		s.logger.Warnw("dropping undecodable cached program metadata",
			"program_uuid", programUUID, "error", err)
		_ = s.client.Del(ctx, s.key(programUUID)).Err()
		return nil, nil
	}

	return &meta, nil
}

func (s *RedisMetadataStore) Set(ctx context.Context, programUUID string, meta *program.Metadata, ttl time.Duration) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return apperrors.NewStoreError("failed to encode program metadata", err.Error())
	}

	if err := s.client.Set(ctx, s.key(programUUID), raw, ttl).Err(); err != nil {
		return apperrors.NewStoreError("failed to write cached program metadata", err.Error())
	}
	return nil
}

func (s *RedisMetadataStore) Delete(ctx context.Context, programUUID string) error {
	if err := s.client.Del(ctx, s.key(programUUID)).Err(); err != nil {
		return apperrors.NewStoreError("failed to delete cached program metadata", err.Error())
	}
	return nil
}
