package web

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookbrust/bookbrust/internal/bookapi"
)

type profileData struct {
	pageData
	Profile bookapi.PublicProfile
	Reviews []reviewView
}

// handleProfile shows another user's public page: their alias, shared
// shelf, and published reviews.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	data := profileData{pageData: s.basePage("Profile")}

	profile, err := s.api.PublicProfile(r.Context(), userID)
	s.metrics.RecordAPICall("profile", err)
	if err != nil {
		data.Error = requestMessage(err)
		s.render(w, http.StatusOK, "profile", data)
		return
	}

	data.Profile = profile
	if profile.Alias != "" {
		data.Title = profile.Alias
	}

	data.Reviews = make([]reviewView, 0, len(profile.Reviews))
	for _, review := range profile.Reviews {
		data.Reviews = append(data.Reviews, reviewView{
			Review:      review,
			SafeContent: template.HTML(s.sanitizer.Sanitize(review.Content)),
		})
	}

	s.render(w, http.StatusOK, "profile", data)
}
