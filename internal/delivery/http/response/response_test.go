package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFlashEncoding(t *testing.T) {
	value, err := EncodeFlash(Flash{Kind: FlashError, Message: "Failed to update job. Please try again."})
	require.NoError(t, err)
	assert.NotContains(t, value, ";")
	assert.NotContains(t, value, " ")

	f, err := DecodeFlash(value)
	require.NoError(t, err)
	assert.Equal(t, FlashError, f.Kind)
	assert.Equal(t, "Failed to update job. Please try again.", f.Message)

	_, err = DecodeFlash("%%%")
	assert.Error(t, err)
}

func TestRedirectAndPopFlash(t *testing.T) {
	r := gin.New()
	r.POST("/job/add", func(c *gin.Context) {
		RedirectWithFlash(c, "/job", FlashSuccess, "Job created")
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/job/add", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/job", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/job", nil)
	c2.Request.AddCookie(cookies[0])

	f := PopFlash(c2)
	require.NotNil(t, f)
	assert.Equal(t, "Job created", f.Message)

	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "req-1")

	Error(c, http.StatusUnauthorized, "Session expired", nil)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Session expired", body.Message)
	assert.Equal(t, "req-1", body.RequestID)
}
