package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingCSRFToken is returned when the token endpoint answers without a token.
var ErrMissingCSRFToken = errors.New("resource server returned no CSRF token")

// CSRFToken is a token plus the cookies that bind it to a server-side session.
type CSRFToken struct {
	Value   string
	Cookies []*http.Cookie
}

type csrfResponse struct {
	Token     string `json:"token"`
	CSRFToken string `json:"csrfToken"`
}

// FetchCSRF reads a fresh token from the CSRF endpoint.
func (c *Client) FetchCSRF(ctx context.Context) (CSRFToken, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.csrfPath, nil)
	if err != nil {
		return CSRFToken{}, err
	}
	req.Header.Set("Accept", "application/json")

	// The body and the cookies are both needed, so do() is bypassed here.
	resp, err := c.http.Do(req)
	if err != nil {
		return CSRFToken{}, fmt.Errorf("fetch csrf token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CSRFToken{}, &StatusError{
			Method:     http.MethodGet,
			Path:       c.csrfPath,
			StatusCode: resp.StatusCode,
		}
	}

	var body csrfResponse
	if err := decodeJSON(resp, &body); err != nil {
		return CSRFToken{}, fmt.Errorf("decode csrf token: %w", err)
	}

	token := body.Token
	if token == "" {
		token = body.CSRFToken
	}
	if token == "" {
		return CSRFToken{}, ErrMissingCSRFToken
	}
	return CSRFToken{Value: token, Cookies: resp.Cookies()}, nil
}

func (t CSRFToken) apply(req *http.Request) {
	req.Header.Set(CSRFHeaderName, t.Value)
	for _, cookie := range t.Cookies {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
}
