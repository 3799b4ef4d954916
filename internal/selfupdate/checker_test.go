package selfupdate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T, handler http.HandlerFunc) *Checker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewChecker("skillsprint", "skillsprint")
	c.apiBaseURL = srv.URL
	return c
}

func releaseHandler(t *testing.T, tag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/skillsprint/skillsprint/releases/latest", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"tag_name": tag,
			"html_url": "https://example.com/releases/" + tag,
		})
	}
}

func TestCheckUpdateAvailable(t *testing.T) {
	c := newTestChecker(t, releaseHandler(t, "v1.2.0"))

	result, err := c.Check(context.Background(), "v1.1.0")
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "v1.1.0", result.CurrentVersion)
	assert.Equal(t, "v1.2.0", result.LatestVersion)
	assert.Equal(t, "https://example.com/releases/v1.2.0", result.ReleaseURL)
}

func TestCheckUpToDate(t *testing.T) {
	c := newTestChecker(t, releaseHandler(t, "v1.1.0"))

	result, err := c.Check(context.Background(), "1.1.0") // bare version tolerated
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestCheckDevBuild(t *testing.T) {
	c := NewChecker("skillsprint", "skillsprint")

	_, err := c.Check(context.Background(), "(devel)")
	assert.ErrorIs(t, err, ErrDevBuild)

	_, err = c.Check(context.Background(), "")
	assert.ErrorIs(t, err, ErrDevBuild)
}

func TestCheckBadStatus(t *testing.T) {
	c := newTestChecker(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	})

	_, err := c.Check(context.Background(), "v1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestCheckInvalidTag(t *testing.T) {
	c := newTestChecker(t, releaseHandler(t, "release-candidate"))

	_, err := c.Check(context.Background(), "v1.0.0")
	require.Error(t, err)
}
