package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Repo is the subset of a repository search result the crawler needs.
type Repo struct {
	FullName      string   `json:"full_name"`
	HTMLURL       string   `json:"html_url"`
	DefaultBranch string   `json:"default_branch"`
	Stars         int      `json:"stargazers_count"`
	License       *License `json:"license"`
}

// License is a repository license as reported by the search API.
type License struct {
	Key    string `json:"key"`
	SPDXID string `json:"spdx_id"`
}

// Owner returns the owner half of FullName.
func (r Repo) Owner() string {
	owner, _, _ := strings.Cut(r.FullName, "/")
	return owner
}

// Name returns the repository half of FullName.
func (r Repo) Name() string {
	_, name, _ := strings.Cut(r.FullName, "/")
	return name
}

type searchResponse struct {
	Items []Repo `json:"items"`
}

// SearchRepos returns up to n repositories in the given language with more
// than minStars stars, most-starred first, paging through search results as
// needed. When allowedLicenses is non-empty, repositories with a missing or
// disallowed license key are skipped.
func (c *Client) SearchRepos(ctx context.Context, language string, n, minStars int, allowedLicenses []string) ([]Repo, error) {
	allowed := make(map[string]bool, len(allowedLicenses))
	for _, key := range allowedLicenses {
		allowed[strings.ToLower(key)] = true
	}

	var repos []Repo
	for page := 1; len(repos) < n; page++ {
		params := url.Values{}
		params.Set("q", fmt.Sprintf("language:%s stars:>%d", language, minStars))
		params.Set("sort", "stars")
		params.Set("order", "desc")
		params.Set("per_page", "100")
		params.Set("page", fmt.Sprintf("%d", page))

		body, err := c.get(ctx, "/search/repositories", params)
		if err != nil {
			return nil, err
		}

		var result searchResponse
		err = json.NewDecoder(body).Decode(&result)
		body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode search results: %w", err)
		}
		if len(result.Items) == 0 {
			break
		}

		for _, repo := range result.Items {
			if len(allowed) > 0 {
				if repo.License == nil || !allowed[strings.ToLower(repo.License.Key)] {
					continue
				}
			}
			repos = append(repos, repo)
			if len(repos) >= n {
				break
			}
		}
	}

	return repos, nil
}
