// Package selfupdate checks GitHub releases for a newer client version.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// ErrDevBuild is returned when the running binary has no release version.
var ErrDevBuild = errors.New("cannot check updates for a development build")

const defaultAPIBaseURL = "https://api.github.com"

// Checker queries the GitHub releases API for the latest version.
type Checker struct {
	owner      string
	repo       string
	apiBaseURL string
	http       *http.Client
}

// NewChecker creates a Checker for the given GitHub repository.
func NewChecker(owner, repo string) *Checker {
	return &Checker{
		owner:      owner,
		repo:       repo,
		apiBaseURL: defaultAPIBaseURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckResult reports whether a newer release exists.
type CheckResult struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
}

type releasePayload struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release tag and compares it with version.
// Version strings are compared as semver, tolerating a leading "v".
func (c *Checker) Check(ctx context.Context, version string) (*CheckResult, error) {
	if version == "" || version == "(devel)" {
		return nil, ErrDevBuild
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		strings.TrimRight(c.apiBaseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var release releasePayload
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if release.TagName == "" {
		return nil, errors.New("latest release has no tag")
	}

	current := canonical(version)
	latest := canonical(release.TagName)
	if !semver.IsValid(current) {
		return nil, fmt.Errorf("current version %q is not valid semver", version)
	}
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("release tag %q is not valid semver", release.TagName)
	}

	return &CheckResult{
		UpdateAvailable: semver.Compare(latest, current) > 0,
		CurrentVersion:  current,
		LatestVersion:   latest,
		ReleaseURL:      release.HTMLURL,
	}, nil
}

// canonical normalizes a version string to the "vX.Y.Z" form semver wants.
func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
