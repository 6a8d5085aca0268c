package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"recruitment-console/internal/domain"
)

// Each lookup endpoint names its id and label differently.
var lookupShapes = map[string]struct {
	path      string
	idKey     string
	labelKeys []string
}{
	domain.LookupUsers:      {"/api/users", "userId", []string{"userName", "username", "fullName"}},
	domain.LookupCandidates: {"/api/candidates", "candidateId", []string{"fullName", "name"}},
	domain.LookupInterviews: {"/api/interviews", "interviewId", []string{"title"}},
	domain.LookupJobs:       {"/api/jobs", "id", []string{"title"}},
}

type lookupRepository struct {
	api api
}

func NewLookupRepository(client api) domain.LookupRepository {
	return &lookupRepository{api: client}
}

func (r *lookupRepository) Fetch(ctx context.Context, kind string) ([]domain.LookupItem, error) {
	shape, ok := lookupShapes[kind]
	if !ok {
		return nil, fmt.Errorf("unknown lookup %q", kind)
	}

	query := url.Values{}
	query.Set("size", "1000")

	var resp pageResponse[map[string]json.RawMessage]
	if err := r.api.GetJSON(ctx, shape.path, query, &resp); err != nil {
		return nil, mapError(err, "fetch "+kind)
	}

	items := make([]domain.LookupItem, 0, len(resp.Content))
	for _, raw := range resp.Content {
		var item domain.LookupItem
		if v, ok := raw[shape.idKey]; ok {
			_ = json.Unmarshal(v, &item.ID)
		}
		for _, key := range shape.labelKeys {
			if v, ok := raw[key]; ok {
				if err := json.Unmarshal(v, &item.Name); err == nil && item.Name != "" {
					break
				}
			}
		}
		if item.ID == 0 {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
