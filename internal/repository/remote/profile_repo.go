package remote

import (
	"context"

	"recruitment-console/internal/domain"
)

type profileRepository struct {
	api api
}

func NewProfileRepository(client api) domain.ProfileRepository {
	return &profileRepository{api: client}
}

func (r *profileRepository) CurrentUsername(ctx context.Context) (string, error) {
	var resp struct {
		Username string `json:"username"`
	}
	if err := r.api.GetJSON(ctx, "/user/username", nil, &resp); err != nil {
		return "", mapError(err, "fetch profile")
	}
	return resp.Username, nil
}

// Logout ends the resource server session; the form carries the CSRF token.
func (r *profileRepository) Logout(ctx context.Context) error {
	if err := r.api.PostForm(ctx, "/logout", nil); err != nil {
		return mapError(err, "log out")
	}
	return nil
}
