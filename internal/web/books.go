package web

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bookbrust/bookbrust/internal/bookapi"
)

const reviewsPerPage = 10

// reviewView is a Review with its content sanitized for inline rendering.
type reviewView struct {
	bookapi.Review
	SafeContent template.HTML
}

type bookData struct {
	pageData
	Book        bookapi.Book
	Description template.HTML
	Reviews     []reviewView
	Total       int
	Page        int
	TotalPages  int
	PrevPage    int
	NextPage    int
}

func (s *Server) handleBookDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	s.renderBook(w, r, id, page, "", http.StatusOK)
}

// renderBook fetches one page of a book's details and reviews. Book
// descriptions and review bodies can carry markup from the remote side, so
// both pass through the sanitizer before they are trusted as HTML.
func (s *Server) renderBook(w http.ResponseWriter, r *http.Request, id string, page int, errMsg string, status int) {
	data := bookData{pageData: s.basePage("Book"), Page: page}
	data.Error = errMsg

	details, err := s.api.BookDetails(r.Context(), id, page, reviewsPerPage)
	s.metrics.RecordAPICall("book-details", err)
	if err != nil {
		if data.Error == "" {
			data.Error = requestMessage(err)
		}
		s.render(w, status, "book", data)
		return
	}

	data.Book = details.Book
	data.Title = details.Book.Title
	data.Description = template.HTML(s.sanitizer.Sanitize(details.Book.Description))
	data.Total = details.Total

	data.Reviews = make([]reviewView, 0, len(details.Reviews))
	for _, review := range details.Reviews {
		data.Reviews = append(data.Reviews, reviewView{
			Review:      review,
			SafeContent: template.HTML(s.sanitizer.Sanitize(review.Content)),
		})
	}

	data.TotalPages = (details.Total + reviewsPerPage - 1) / reviewsPerPage
	if data.TotalPages < 1 {
		data.TotalPages = 1
	}
	data.PrevPage = page - 1
	data.NextPage = page + 1

	s.render(w, status, "book", data)
}

type reviewForm struct {
	Rating  int    `validate:"required,min=1,max=5"`
	Content string `validate:"max=5000"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	rating, _ := strconv.Atoi(r.PostFormValue("rating"))
	form := reviewForm{
		Rating:  rating,
		Content: strings.TrimSpace(r.PostFormValue("content")),
	}

	if err := s.validate.Struct(form); err != nil {
		s.renderBook(w, r, id, 1, formMessage(err), http.StatusUnprocessableEntity)
		return
	}

	req := bookapi.ReviewRequest{
		BookID:    id,
		Rating:    form.Rating,
		Content:   form.Content,
		Recommend: r.PostFormValue("recommend") == "on",
	}

	err := s.api.CreateReview(r.Context(), req, s.sessions.Token())
	s.metrics.RecordAPICall("create-review", err)
	if err != nil {
		s.renderBook(w, r, id, 1, requestMessage(err), http.StatusOK)
		return
	}

	http.Redirect(w, r, "/books/"+id, http.StatusSeeOther)
}
