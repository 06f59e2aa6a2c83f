package bookapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SearchBooks queries the remote catalog search. Requires authentication.
func (c *Client) SearchBooks(ctx context.Context, query, token string) ([]Book, error) {
	q := url.Values{"query": {query}}
	body, err := c.get(ctx, "/books/search", q, token)
	if err != nil {
		return nil, err
	}
	return decodeList[Book](body)
}

// Bookshelf returns the authenticated user's shelf, optionally filtered by
// status ("reading", "finished", "want_to_read"). An empty status returns
// the whole shelf.
func (c *Client) Bookshelf(ctx context.Context, status, token string) ([]ShelfEntry, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	body, err := c.get(ctx, "/books/shelf", q, token)
	if err != nil {
		return nil, err
	}
	return decodeList[ShelfEntry](body)
}

// AddToBookshelf adds a book to the authenticated user's shelf and returns
// the entry as stored by the remote.
func (c *Client) AddToBookshelf(ctx context.Context, entry ShelfEntry, token string) (ShelfEntry, error) {
	var out ShelfEntry
	if err := c.postJSON(ctx, "/books/books", token, entry, &out); err != nil {
		return ShelfEntry{}, err
	}
	return out, nil
}

// UpdateShelfEntry updates a shelf entry's status, rating, and notes via
// PATCH /books/tab/{status}.
func (c *Client) UpdateShelfEntry(ctx context.Context, update ShelfUpdate, token string) error {
	path := "/books/tab/" + url.PathEscape(update.Status)
	_, err := c.doRequest(ctx, http.MethodPatch, path, nil, token, update)
	return err
}

// SetBookshelfTab persists the user's shelf tab preference on the remote.
func (c *Client) SetBookshelfTab(ctx context.Context, tab, token string) error {
	return c.postJSON(ctx, "/books/tab", token, map[string]string{"tab": tab}, nil)
}

// BookDetails fetches a book's public detail page with one page of reviews.
// No authentication required.
func (c *Client) BookDetails(ctx context.Context, id string, page, limit int) (BookDetails, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}

	body, err := c.get(ctx, "/books/"+url.PathEscape(id), q, "")
	if err != nil {
		return BookDetails{}, err
	}

	var out BookDetails
	if err := json.Unmarshal(body, &out); err != nil {
		return BookDetails{}, fmt.Errorf("decode book details: %w", err)
	}
	return out, nil
}

// ReadingHistory returns the authenticated user's finished books, the raw
// input of the reading timeline.
func (c *Client) ReadingHistory(ctx context.Context, token string) ([]ShelfEntry, error) {
	body, err := c.get(ctx, "/history", nil, token)
	if err != nil {
		return nil, err
	}
	return decodeList[ShelfEntry](body)
}
