package response

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FlashCookieName carries one toast across a redirect.
const FlashCookieName = "console_flash"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a toast notification shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// EncodeFlash returns the cookie value for f.
func EncodeFlash(f Flash) (string, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeFlash reverses EncodeFlash.
func DecodeFlash(value string) (*Flash, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// SetFlash stores a toast for the next page view.
func SetFlash(c *gin.Context, kind, message string) {
	value, err := EncodeFlash(Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, value, 60, "/", "", false, true)
}

// PopFlash returns the pending toast, if any, and clears it.
func PopFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(FlashCookieName)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(FlashCookieName, "", -1, "/", "", false, true)
	f, err := DecodeFlash(value)
	if err != nil {
		return nil
	}
	return f
}

// RedirectWithFlash sets a toast and redirects with 303 See Other.
func RedirectWithFlash(c *gin.Context, location, kind, message string) {
	SetFlash(c, kind, message)
	c.Redirect(http.StatusSeeOther, location)
}
