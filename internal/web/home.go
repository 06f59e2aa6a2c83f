package web

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/bookbrust/bookbrust/internal/bookapi"
)

const (
	homeTrendingLimit = 8
	homeReviewLimit   = 4
)

type homeData struct {
	pageData
	Trending      []bookapi.Book
	RecentReviews []bookapi.Review
}

// handleHome shows a preview of the trending feed and the latest reviews.
// The two fetches are independent, so they run concurrently.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := homeData{pageData: s.basePage("BookBrust")}

	g, ctx := errgroup.WithContext(r.Context())

	var trending []bookapi.Book
	g.Go(func() error {
		var err error
		trending, err = s.api.TrendingBooks(ctx, bookapi.GenreAll)
		s.metrics.RecordAPICall("trending", err)
		return err
	})

	var reviews []bookapi.Review
	g.Go(func() error {
		var err error
		reviews, err = s.api.RecentReviews(ctx, bookapi.GenreAll)
		s.metrics.RecordAPICall("recent-reviews", err)
		return err
	})

	if err := g.Wait(); err != nil {
		data.Error = requestMessage(err)
		s.render(w, http.StatusOK, "home", data)
		return
	}

	if len(trending) > homeTrendingLimit {
		trending = trending[:homeTrendingLimit]
	}
	if len(reviews) > homeReviewLimit {
		reviews = reviews[:homeReviewLimit]
	}
	data.Trending = trending
	data.RecentReviews = reviews

	s.render(w, http.StatusOK, "home", data)
}
