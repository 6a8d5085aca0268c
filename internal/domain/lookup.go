package domain

import (
	"context"
	"errors"
	"time"
)

// Lookup kinds served by the recruitment API for select inputs.
const (
	LookupUsers      = "users"
	LookupCandidates = "candidates"
	LookupInterviews = "interviews"
	LookupJobs       = "jobs"
)

// LookupItem is an id/name pair from one of the lookup endpoints.
type LookupItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FormLookups are the select options of the interview and offer forms.
type FormLookups struct {
	Users      []LookupItem
	Candidates []LookupItem
	Interviews []LookupItem
	Jobs       []LookupItem
}

type LookupRepository interface {
	Fetch(ctx context.Context, kind string) ([]LookupItem, error)
}

type LookupUsecase interface {
	FormLookups(ctx context.Context) (*FormLookups, error)
}

// ErrCacheMiss is returned by Cache.Get for absent keys.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON-encodable values with a TTL.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
