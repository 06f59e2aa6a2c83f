package bookapi

import (
	"context"
	"net/http"
	"testing"
)

func TestTrendingBooks_GenreAllOmitsParameter(t *testing.T) {
	var gotRawQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	if _, err := client.TrendingBooks(context.Background(), GenreAll); err != nil {
		t.Fatalf("TrendingBooks() error: %v", err)
	}
	if gotRawQuery != "" {
		t.Errorf("query = %q, want no genre parameter for %q", gotRawQuery, GenreAll)
	}
}

func TestTrendingBooks_GenreEncodedInQuery(t *testing.T) {
	var gotGenre string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotGenre = r.URL.Query().Get("genre")
		w.Write([]byte(`[]`))
	})

	if _, err := client.TrendingBooks(context.Background(), "Sci-Fi"); err != nil {
		t.Fatalf("TrendingBooks() error: %v", err)
	}
	if gotGenre != "Sci-Fi" {
		t.Errorf("genre = %q, want %q", gotGenre, "Sci-Fi")
	}
}

func TestTrendingBooks_EmptyArrayYieldsEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	books, err := client.TrendingBooks(context.Background(), "")
	if err != nil {
		t.Fatalf("TrendingBooks() error: %v", err)
	}
	if books == nil || len(books) != 0 {
		t.Errorf("books = %#v, want empty non-nil slice", books)
	}
}

func TestTrendingBooks_NonListPayloadYieldsEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"nothing here"}`))
	})

	books, err := client.TrendingBooks(context.Background(), "")
	if err != nil {
		t.Fatalf("TrendingBooks() error: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("books = %+v, want empty list for non-list payload", books)
	}
}

func TestRecentReviews_PassesThroughList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/explore/recent-reviews" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"bookId":"g1","authorAlias":"ada","rating":5,"content":"superb","recommend":true}]`))
	})

	reviews, err := client.RecentReviews(context.Background(), "Fiction")
	if err != nil {
		t.Fatalf("RecentReviews() error: %v", err)
	}
	if len(reviews) != 1 || reviews[0].AuthorAlias != "ada" {
		t.Errorf("reviews = %+v, want one by ada", reviews)
	}
}

func TestSetExploreTab_PostsTab(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("explore tab preference should not send auth, got %q", auth)
		}
		w.Write([]byte(`{}`))
	})

	if err := client.SetExploreTab(context.Background(), "top-rated"); err != nil {
		t.Fatalf("SetExploreTab() error: %v", err)
	}
	if gotPath != "/api/explore/tab" {
		t.Errorf("path = %q, want /api/explore/tab", gotPath)
	}
}
