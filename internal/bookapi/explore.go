package bookapi

import (
	"context"
	"net/url"
)

// genreQuery builds the query for an explore feed. The "All" sentinel (and
// an empty genre) mean no filter, so the parameter is omitted entirely
// rather than sent literally.
func genreQuery(genre string) url.Values {
	if genre == "" || genre == GenreAll {
		return nil
	}
	return url.Values{"genre": {genre}}
}

// TrendingBooks returns the public trending feed, optionally genre-filtered.
func (c *Client) TrendingBooks(ctx context.Context, genre string) ([]Book, error) {
	body, err := c.get(ctx, "/explore/trending", genreQuery(genre), "")
	if err != nil {
		return nil, err
	}
	return decodeList[Book](body)
}

// RecentReviews returns the public recent-reviews feed, optionally
// genre-filtered.
func (c *Client) RecentReviews(ctx context.Context, genre string) ([]Review, error) {
	body, err := c.get(ctx, "/explore/recent-reviews", genreQuery(genre), "")
	if err != nil {
		return nil, err
	}
	return decodeList[Review](body)
}

// TopRatedBooks returns the public top-rated feed, optionally genre-filtered.
func (c *Client) TopRatedBooks(ctx context.Context, genre string) ([]Book, error) {
	body, err := c.get(ctx, "/explore/top-rated", genreQuery(genre), "")
	if err != nil {
		return nil, err
	}
	return decodeList[Book](body)
}

// SetExploreTab persists the explore tab preference on the remote. The
// endpoint is public; failures here are advisory and callers typically just
// log them.
func (c *Client) SetExploreTab(ctx context.Context, tab string) error {
	return c.postJSON(ctx, "/explore/tab", "", map[string]string{"tab": tab}, nil)
}
