package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bookbrust/bookbrust/internal/bookapi"
	"github.com/bookbrust/bookbrust/internal/storage"
)

const (
	exploreTabTrending = "trending"
	exploreTabReviews  = "new-reviews"
	exploreTabTopRated = "top-rated"
)

// exploreGenres is the fixed genre filter list offered in the UI. GenreAll
// is a sentinel: it omits the genre query parameter entirely.
var exploreGenres = []string{
	bookapi.GenreAll,
	"Fiction",
	"Fantasy",
	"Sci-Fi",
	"Mystery",
	"Romance",
}

type exploreData struct {
	pageData
	Tab     string
	Genre   string
	Genres  []string
	Books   []bookapi.Book
	Reviews []bookapi.Review
}

// handleExplore shows one of the three public feeds. Tab and genre come
// from the query string when present, otherwise from the stored
// preferences, and whatever ends up selected is persisted for next time.
func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = s.stringPreference(ctx, storage.PrefExploreTab, exploreTabTrending)
	}
	switch tab {
	case exploreTabTrending, exploreTabReviews, exploreTabTopRated:
	default:
		tab = exploreTabTrending
	}

	genre := r.URL.Query().Get("genre")
	if genre == "" {
		genre = s.stringPreference(ctx, storage.PrefExploreGenre, bookapi.GenreAll)
	}

	s.savePreference(ctx, storage.PrefExploreTab, tab)
	s.savePreference(ctx, storage.PrefExploreGenre, genre)

	data := exploreData{
		pageData: s.basePage("Explore"),
		Tab:      tab,
		Genre:    genre,
		Genres:   exploreGenres,
	}

	var err error
	switch tab {
	case exploreTabReviews:
		data.Reviews, err = s.api.RecentReviews(ctx, genre)
		s.metrics.RecordAPICall("recent-reviews", err)
	case exploreTabTopRated:
		data.Books, err = s.api.TopRatedBooks(ctx, genre)
		s.metrics.RecordAPICall("top-rated", err)
	default:
		data.Books, err = s.api.TrendingBooks(ctx, genre)
		s.metrics.RecordAPICall("trending", err)
	}

	// The remote side keeps its own record of the active tab.
	if err == nil {
		err = s.api.SetExploreTab(ctx, tab)
		s.metrics.RecordAPICall("explore-tab", err)
	}

	if err != nil {
		data.Error = requestMessage(err)
		data.Books = nil
		data.Reviews = nil
	}

	s.render(w, http.StatusOK, "explore", data)
}

// stringPreference loads a stored string preference, falling back to the
// given default when the key is absent or unreadable.
func (s *Server) stringPreference(ctx context.Context, key, fallback string) string {
	var value string
	if err := s.store.GetPreference(ctx, key, &value); err != nil || value == "" {
		return fallback
	}
	return value
}

// savePreference persists a preference. Failures are logged and otherwise
// ignored; a broken preference store should never take a page down.
func (s *Server) savePreference(ctx context.Context, key string, value any) {
	if err := s.store.SetPreference(ctx, key, value); err != nil {
		slog.Warn("failed to save preference", "key", key, "error", err)
	}
}
