package cache

import (
	"context"
	"time"

	"registrar/internal/domain/program"
	"registrar/internal/shared/logger"
)

// ProgramCache is the read-through cache for program metadata. A hit
// requires the cached record to carry the parser's current schema
// version; anything else triggers a fetch, parse, and store. Bumping the
// schema version therefore invalidates every existing entry without a
// migration step.
//
// Concurrent misses for the same program may each fetch and write. The
// writes are idempotent for a given remote version, so no exclusivity
// lock is taken.
type ProgramCache struct {
	store   MetadataStore
	fetcher program.MetadataFetcher
	parser  *program.Parser
	ttl     time.Duration
	logger  logger.Interface
}

func NewProgramCache(
	store MetadataStore,
	fetcher program.MetadataFetcher,
	parser *program.Parser,
	ttl time.Duration,
	log logger.Interface,
) *ProgramCache {
	return &ProgramCache{
		store:   store,
		fetcher: fetcher,
		parser:  parser,
		ttl:     ttl,
		logger:  log,
	}
}

// Get returns the metadata for programUUID, fetching from discovery when
// the cache has no current-version entry. Fetch and parse failures
// surface unchanged; nothing is cached on failure.
func (c *ProgramCache) Get(ctx context.Context, programUUID string) (*program.Metadata, error) {
	cached, err := c.store.Get(ctx, programUUID)
	if err != nil {
		return nil, err
	}
	if cached != nil && cached.IsCurrentVersion() {
		return cached, nil
	}

	raw, err := c.fetcher.Fetch(ctx, programUUID)
	if err != nil {
		return nil, err
	}

	meta, err := c.parser.Parse(programUUID, raw)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, programUUID, meta, c.ttl); err != nil {
		return nil, err
	}

	c.logger.Debugw("program metadata refreshed",
		"program_uuid", programUUID, "course_runs", len(meta.CourseRuns))
	return meta, nil
}

// Invalidate removes the cached entry ahead of TTL expiry, for callers
// that know the remote data changed.
func (c *ProgramCache) Invalidate(ctx context.Context, programUUID string) error {
	return c.store.Delete(ctx, programUUID)
}
