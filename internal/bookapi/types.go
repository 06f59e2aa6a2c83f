package bookapi

import (
	"bytes"
	"encoding/json"
)

// Shelf status values accepted by the remote service.
const (
	StatusReading    = "reading"
	StatusFinished   = "finished"
	StatusWantToRead = "want_to_read"
)

// GenreAll is the sentinel genre meaning "no genre filter". When it is
// selected the genre query parameter is omitted entirely rather than sent
// literally.
const GenreAll = "All"

// StringList is a []string that also accepts the remote service's alternate
// encoding, where a list arrives as a JSON-encoded string such as
// `"[\"A\",\"B\"]"`.
type StringList []string

// UnmarshalJSON decodes either a plain JSON array or a JSON string that
// itself contains an encoded array. A string that does not decode as an
// array is kept as a single-element list rather than dropped.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*l = plain
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}

	var inner []string
	if err := json.Unmarshal([]byte(encoded), &inner); err != nil {
		if encoded == "" {
			*l = nil
			return nil
		}
		*l = StringList{encoded}
		return nil
	}
	*l = inner
	return nil
}

// User identifies an account as reported by the auth endpoints.
type User struct {
	Email string `json:"email"`
	Alias string `json:"alias"`
}

// AuthResult is the response of a successful signup or login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SignupRequest is the payload for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Alias    string `json:"alias"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Book is a book as returned by search, explore feeds, and the detail
// endpoint. Rating, where present, is the average review rating.
type Book struct {
	GoogleBooksID string     `json:"googleBooksId"`
	Title         string     `json:"title"`
	Authors       StringList `json:"authors"`
	Genres        StringList `json:"genres"`
	Description   string     `json:"description,omitempty"`
	Cover         string     `json:"cover,omitempty"`
	Rating        float64    `json:"rating,omitempty"`
}

// ShelfEntry is one book on the user's shelf with its reading state.
// FinishedDate is an ISO timestamp string; the timeline groups entries by
// its YYYY-MM prefix.
type ShelfEntry struct {
	GoogleBooksID string     `json:"googleBooksId"`
	Title         string     `json:"title"`
	Authors       StringList `json:"authors"`
	Genres        StringList `json:"genres"`
	Description   string     `json:"description,omitempty"`
	Cover         string     `json:"cover,omitempty"`
	Status        string     `json:"status"`
	Rating        int        `json:"rating,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	FinishedDate  string     `json:"finishedDate,omitempty"`
}

// ShelfUpdate is the payload for PATCH /books/tab/{status}. FinishedAt is
// only set when the status transitions to finished; otherwise it is sent as
// null, matching what the remote expects.
type ShelfUpdate struct {
	GoogleBooksID string  `json:"googleBooksId"`
	Status        string  `json:"status"`
	Rating        int     `json:"rating"`
	Notes         string  `json:"notes"`
	FinishedAt    *string `json:"finishedAt"`
}

// Review is a published review. It is immutable once created.
type Review struct {
	BookID      string     `json:"bookId"`
	BookTitle   string     `json:"bookTitle,omitempty"`
	Cover       string     `json:"cover,omitempty"`
	Genres      StringList `json:"genres,omitempty"`
	AuthorAlias string     `json:"authorAlias"`
	Rating      int        `json:"rating"`
	Content     string     `json:"content"`
	Recommend   bool       `json:"recommend"`
	CreatedAt   string     `json:"createdAt,omitempty"`
}

// ReviewRequest is the payload for POST /reviews.
type ReviewRequest struct {
	BookID    string `json:"bookId"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
	Recommend bool   `json:"recommend"`
}

// BookDetails is the response of GET /books/{id}: the book plus one page of
// its reviews.
type BookDetails struct {
	Book    Book     `json:"book"`
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// PublicProfile is another user's public page: their alias and what they
// have shared.
type PublicProfile struct {
	UserID    string       `json:"userId"`
	Alias     string       `json:"alias"`
	AvatarURL string       `json:"avatarUrl,omitempty"`
	Books     []ShelfEntry `json:"books"`
	Reviews   []Review     `json:"reviews"`
}
