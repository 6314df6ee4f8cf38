package github

import (
	"context"
	"fmt"
	"net/url"
)

// DefaultReleaseCount is how many releases ListReleases fetches when the
// caller does not say otherwise.
const DefaultReleaseCount = 10

// ListReleases fetches the most recent releases of a repository, newest
// first, capped at perPage.
func (c *Client) ListReleases(ctx context.Context, owner, repo string, perPage int) ([]Release, error) {
	if perPage <= 0 {
		perPage = DefaultReleaseCount
	}
	path := fmt.Sprintf("/repos/%s/%s/releases?per_page=%d",
		url.PathEscape(owner), url.PathEscape(repo), perPage)

	var releases []Release
	if err := c.getJSON(ctx, path, "list releases", &releases); err != nil {
		return nil, err
	}
	return releases, nil
}
