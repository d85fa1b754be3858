package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/litescript/ls-version-tui/internal/semver"
)

// DefaultAPIBase is the GitHub repository API root for release checks.
const DefaultAPIBase = "https://api.github.com/repos/litescript/ls-version-tui"

// UpdateInfo contains information about available updates.
type UpdateInfo struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	Error           error
}

// GitHubRelease represents the GitHub API response for releases.
type GitHubRelease struct {
	TagName string `json:"tag_name"`
}

// Checker queries GitHub for newer releases.
type Checker struct {
	APIBase string
	Client  *http.Client
	Current string
}

// NewChecker returns a checker for this build against the public repository.
func NewChecker() *Checker {
	return &Checker{
		APIBase: DefaultAPIBase,
		Client: &http.Client{
			Timeout: 5 * time.Second,
		},
		Current: Version,
	}
}

// CheckForUpdate checks GitHub for the latest release version.
func (c *Checker) CheckForUpdate(ctx context.Context) UpdateInfo {
	info := UpdateInfo{
		CurrentVersion: c.Current,
	}

	// Use releases/latest endpoint for the most recent release
	var release GitHubRelease
	status, err := c.getJSON(ctx, "/releases/latest", &release)
	if err != nil {
		info.Error = fmt.Errorf("failed to check for updates: %w", err)
		return info
	}

	if status != http.StatusOK {
		// If no releases, try tags instead
		return c.checkForUpdateViaTags(ctx, info)
	}

	return resolve(info, release.TagName)
}

// checkForUpdateViaTags falls back to checking tags if no releases exist.
func (c *Checker) checkForUpdateViaTags(ctx context.Context, info UpdateInfo) UpdateInfo {
	var tags []GitHubRelease
	status, err := c.getJSON(ctx, "/tags", &tags)
	if err != nil {
		info.Error = fmt.Errorf("failed to check for updates: %w", err)
		return info
	}

	if status != http.StatusOK {
		info.Error = fmt.Errorf("failed to check for updates: status %d", status)
		return info
	}

	if len(tags) == 0 {
		info.LatestVersion = info.CurrentVersion
		return info
	}

	// Tags are returned newest first
	return resolve(info, tags[0].TagName)
}

func (c *Checker) getJSON(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBase+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("parse update response: %w", err)
	}
	return resp.StatusCode, nil
}

// resolve compares tag against the running version.
func resolve(info UpdateInfo, tag string) UpdateInfo {
	latest, err := semver.Parse(tag)
	if err != nil {
		info.Error = fmt.Errorf("failed to parse latest release: %w", err)
		return info
	}
	info.LatestVersion = latest.String()

	current, err := semver.Parse(info.CurrentVersion)
	if err != nil {
		info.Error = fmt.Errorf("failed to parse running version: %w", err)
		return info
	}
	info.UpdateAvailable = latest.Greater(current)

	return info
}

// InstallCommand returns the command to update the application.
func InstallCommand() string {
	return "go install github.com/litescript/ls-version-tui/cmd/version-tui@latest"
}
