package remote

import (
	"context"
	"net/http"
	"net/url"

	"recruitment-console/internal/domain"
)

const usersBase = "/resource-server/users"

// pageResponse is the Spring-style page envelope used by the list endpoints.
type pageResponse[T any] struct {
	Content    []T `json:"content"`
	TotalPages int `json:"totalPages"`
}

func (p pageResponse[T]) toPage(page int) *domain.Page[T] {
	items := p.Content
	if items == nil {
		items = []T{}
	}
	return &domain.Page[T]{Items: items, Page: page, TotalPages: p.TotalPages}
}

type userRepository struct {
	api api
}

func NewUserRepository(client api) domain.UserRepository {
	return &userRepository{api: client}
}

func (r *userRepository) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.UserInfo], error) {
	query := pagingQuery("pageNo", q.Page, q.Size)
	setIfNotEmpty(query, "filterBy", q.Search)
	setIfNotEmpty(query, "filterRole", q.Role)

	var resp pageResponse[domain.UserInfo]
	if err := r.api.GetJSON(ctx, usersBase, query, &resp); err != nil {
		return nil, mapError(err, "fetch users")
	}
	return resp.toPage(q.Page), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.UserInfo, error) {
	var user domain.UserInfo
	if err := r.api.GetJSON(ctx, usersBase+"/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, mapError(err, "fetch user")
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.UserForm) error {
	if err := r.api.SendJSON(ctx, http.MethodPost, usersBase+"/add", u, nil); err != nil {
		return mapError(err, "add user")
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, username string, u *domain.UserForm) error {
	if err := r.api.SendJSON(ctx, http.MethodPut, usersBase+"/"+url.PathEscape(username), u, nil); err != nil {
		return mapError(err, "update user")
	}
	return nil
}
