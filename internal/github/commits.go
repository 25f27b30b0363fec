package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

type commitEntry struct {
	SHA string `json:"sha"`
}

// LastCommit returns the SHA of the newest commit touching path on branch, or
// ("", nil) when the file has no commit history. Each file can hold many
// methods, so the file's last commit stands in for all of them; results are
// cached because this is one API call per file.
func (c *Client) LastCommit(ctx context.Context, owner, repo, path, branch string) (string, error) {
	key := owner + "/" + repo + "@" + branch + ":" + path
	if sha, ok := c.commitCache.Get(key); ok {
		return sha, nil
	}

	params := url.Values{}
	params.Set("path", path)
	params.Set("sha", branch) // pin to branch
	params.Set("per_page", "1")

	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits", owner, repo), params)
	if err != nil {
		return "", err
	}
	defer body.Close()

	var commits []commitEntry
	if err := json.NewDecoder(body).Decode(&commits); err != nil {
		return "", fmt.Errorf("failed to decode commits for %s: %w", path, err)
	}
	if len(commits) == 0 {
		return "", nil
	}

	c.commitCache.Set(key, commits[0].SHA)
	return commits[0].SHA, nil
}
