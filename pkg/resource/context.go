package resource

import (
	"context"
	"encoding/json"
	"net/http"
)

type accessTokenKey struct{}

// WithAccessToken stores the caller's OAuth2 access token for outbound calls.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext returns the token stored by WithAccessToken.
func AccessTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

func decodeJSON(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}
