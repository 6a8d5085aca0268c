package usecase

import (
	"context"
	"errors"
	"time"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const lookupCachePrefix = "lookup:"

type lookupUsecase struct {
	repo  domain.LookupRepository
	cache domain.Cache
	ttl   time.Duration
}

// NewLookupUsecase caches each lookup list for ttl. cache may be nil.
func NewLookupUsecase(repo domain.LookupRepository, cache domain.Cache, ttl time.Duration) domain.LookupUsecase {
	return &lookupUsecase{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// FormLookups loads the four select lists concurrently.
func (u *lookupUsecase) FormLookups(ctx context.Context) (*domain.FormLookups, error) {
	lookups := &domain.FormLookups{}
	targets := map[string]*[]domain.LookupItem{
		domain.LookupUsers:      &lookups.Users,
		domain.LookupCandidates: &lookups.Candidates,
		domain.LookupInterviews: &lookups.Interviews,
		domain.LookupJobs:       &lookups.Jobs,
	}

	g, gctx := errgroup.WithContext(ctx)
	for kind, dest := range targets {
		kind, dest := kind, dest
		g.Go(func() error {
			items, err := u.fetch(gctx, kind)
			if err != nil {
				return err
			}
			*dest = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lookups, nil
}

func (u *lookupUsecase) fetch(ctx context.Context, kind string) ([]domain.LookupItem, error) {
	key := lookupCachePrefix + kind
	if u.cache != nil {
		var cached []domain.LookupItem
		err := u.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Log.Warn("lookup cache read failed", "kind", kind, "error", err)
		}
	}

	items, err := u.repo.Fetch(ctx, kind)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		if err := u.cache.Set(ctx, key, items, u.ttl); err != nil {
			logger.Log.Warn("lookup cache write failed", "kind", kind, "error", err)
		}
	}
	return items, nil
}
