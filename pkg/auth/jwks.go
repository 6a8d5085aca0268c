package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrKeyNotFound is returned when the JWKS has no key for a token's kid.
var ErrKeyNotFound = errors.New("signing key not found")

type JWKS struct {
	Keys []JSONWebKey `json:"keys"`
}

type JSONWebKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// Provider caches the authorization server's signing keys.
type Provider struct {
	mu        sync.RWMutex
	keys      map[string]*JSONWebKey
	url       string
	http      *http.Client
	refreshed time.Time
}

func NewProvider(jwksURL string, client *http.Client) *Provider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Provider{
		url:  jwksURL,
		http: client,
		keys: make(map[string]*JSONWebKey),
	}
}

// KeyFunc returns a jwt.Keyfunc bound to ctx for key refreshes.
func (p *Provider) KeyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, errors.New("kid header not found")
		}

		key, err := p.GetKey(ctx, kid)
		if err != nil {
			return nil, err
		}
		return key.GetPublicKey()
	}
}

func (p *Provider) GetKey(ctx context.Context, kid string) (*JSONWebKey, error) {
	p.mu.RLock()
	key, exists := p.keys[kid]
	p.mu.RUnlock()
	if exists {
		return key, nil
	}

	if err := p.fetchKeys(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	key, exists = p.keys[kid]
	p.mu.RUnlock()
	if !exists {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

func (p *Provider) fetchKeys(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// At most one refresh per minute.
	if time.Since(p.refreshed) < time.Minute && len(p.keys) > 0 {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("build jwks request: %w", err)
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	p.keys = make(map[string]*JSONWebKey, len(jwks.Keys))
	for i := range jwks.Keys {
		p.keys[jwks.Keys[i].Kid] = &jwks.Keys[i]
	}
	p.refreshed = time.Now()
	return nil
}

func (k *JSONWebKey) GetPublicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}

	n := new(big.Int).SetBytes(nBytes)

	var e int
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{N: n, E: e}, nil
}

// IDTokenClaims are the claims the console reads from an OpenID Connect ID token.
type IDTokenClaims struct {
	PreferredUsername string `json:"preferred_username"`
	Role              string `json:"role"`
	Department        string `json:"department"`
	jwt.RegisteredClaims
}

// VerifyIDToken checks the signature and standard claims of an ID token.
// audience may be empty to skip the aud check.
func (p *Provider) VerifyIDToken(ctx context.Context, raw, audience string) (*IDTokenClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"})}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	claims := &IDTokenClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, p.KeyFunc(ctx), opts...); err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	return claims, nil
}
