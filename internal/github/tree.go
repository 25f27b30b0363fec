package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

type treeResponse struct {
	Tree      []treeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// ListFiles returns all blob paths in the repository tree at branch whose path
// ends with one of the given extensions (with dots), in tree order.
func (c *Client) ListFiles(ctx context.Context, owner, repo, branch string, extensions []string) ([]string, error) {
	params := url.Values{}
	params.Set("recursive", "1")

	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/git/trees/%s", owner, repo, branch), params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var result treeResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode tree for %s/%s: %w", owner, repo, err)
	}

	var paths []string
	for _, entry := range result.Tree {
		if entry.Type != "blob" {
			continue
		}
		for _, ext := range extensions {
			if strings.HasSuffix(entry.Path, ext) {
				paths = append(paths, entry.Path)
				break
			}
		}
	}
	return paths, nil
}
