package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bookbrust/bookbrust/internal/bookapi"
	"github.com/bookbrust/bookbrust/internal/storage"
)

type bookshelfData struct {
	pageData
	Tab           string
	Entries       []bookapi.ShelfEntry
	SearchQuery   string
	SearchResults []bookapi.Book
	Searched      bool
}

func normalizeShelfTab(tab string) string {
	switch tab {
	case bookapi.StatusReading, bookapi.StatusFinished, bookapi.StatusWantToRead:
		return tab
	default:
		return bookapi.StatusReading
	}
}

// handleBookshelf shows the signed-in user's shelf, one status tab at a
// time, plus a search box for adding new books.
func (s *Server) handleBookshelf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tab := r.URL.Query().Get("tab")
	fromQuery := tab != ""
	if !fromQuery {
		tab = s.stringPreference(ctx, storage.PrefBookshelfTab, bookapi.StatusReading)
	}
	tab = normalizeShelfTab(tab)

	if fromQuery {
		s.savePreference(ctx, storage.PrefBookshelfTab, tab)
		// Mirror the tab choice to the remote side. Not worth failing the
		// page over.
		err := s.api.SetBookshelfTab(ctx, tab, s.sessions.Token())
		s.metrics.RecordAPICall("bookshelf-tab", err)
	}

	s.renderBookshelf(w, r, tab, "", http.StatusOK)
}

// renderBookshelf fetches everything the bookshelf page shows and renders
// it. The failed add/update handlers reuse it so their error lands on a
// fully drawn page.
func (s *Server) renderBookshelf(w http.ResponseWriter, r *http.Request, tab, errMsg string, status int) {
	ctx := r.Context()
	token := s.sessions.Token()

	data := bookshelfData{
		pageData: s.basePage("My Bookshelf"),
		Tab:      tab,
	}
	data.Error = errMsg

	entries, err := s.api.Bookshelf(ctx, tab, token)
	s.metrics.RecordAPICall("bookshelf", err)
	if err != nil {
		if data.Error == "" {
			data.Error = requestMessage(err)
		}
	} else {
		data.Entries = entries
	}

	if query := strings.TrimSpace(r.URL.Query().Get("q")); query != "" {
		data.SearchQuery = query
		data.Searched = true
		results, err := s.api.SearchBooks(ctx, query, token)
		s.metrics.RecordAPICall("search", err)
		if err != nil {
			if data.Error == "" {
				data.Error = requestMessage(err)
			}
		} else {
			data.SearchResults = results
			s.savePreference(ctx, storage.PrefLastSearch, query)
		}
	} else {
		// Prefill the search box with the last search. The preference is
		// cleared on logout.
		data.SearchQuery = s.stringPreference(ctx, storage.PrefLastSearch, "")
	}

	s.render(w, status, "bookshelf", data)
}

type addBookForm struct {
	GoogleBooksID string `validate:"required"`
	Title         string `validate:"required"`
	Status        string `validate:"oneof=reading finished want_to_read"`
}

// splitList turns a comma-separated form field into a clean list.
func splitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	status := r.PostFormValue("status")
	if status == "" {
		status = bookapi.StatusReading
	}

	form := addBookForm{
		GoogleBooksID: strings.TrimSpace(r.PostFormValue("googleBooksId")),
		Title:         strings.TrimSpace(r.PostFormValue("title")),
		Status:        status,
	}

	// Reject incomplete submissions before anything goes over the wire.
	if err := s.validate.Struct(form); err != nil {
		s.renderBookshelf(w, r, normalizeShelfTab(status), formMessage(err), http.StatusUnprocessableEntity)
		return
	}

	rating, _ := strconv.Atoi(r.PostFormValue("rating"))

	entry := bookapi.ShelfEntry{
		GoogleBooksID: form.GoogleBooksID,
		Title:         form.Title,
		Authors:       splitList(r.PostFormValue("authors")),
		Genres:        splitList(r.PostFormValue("genres")),
		Description:   r.PostFormValue("description"),
		Cover:         strings.TrimSpace(r.PostFormValue("cover")),
		Status:        form.Status,
		Rating:        rating,
		Notes:         r.PostFormValue("notes"),
	}

	_, err := s.api.AddToBookshelf(r.Context(), entry, s.sessions.Token())
	s.metrics.RecordAPICall("add-book", err)
	if err != nil {
		s.renderBookshelf(w, r, form.Status, requestMessage(err), http.StatusOK)
		return
	}

	http.Redirect(w, r, "/bookshelf?tab="+url.QueryEscape(form.Status), http.StatusSeeOther)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	status := normalizeShelfTab(r.PostFormValue("status"))
	rating, _ := strconv.Atoi(r.PostFormValue("rating"))

	update := bookapi.ShelfUpdate{
		GoogleBooksID: strings.TrimSpace(r.PostFormValue("googleBooksId")),
		Status:        status,
		Rating:        rating,
		Notes:         r.PostFormValue("notes"),
	}
	if update.GoogleBooksID == "" {
		s.renderBookshelf(w, r, status, "book id is required", http.StatusUnprocessableEntity)
		return
	}

	// Stamp the finish time on the transition to finished; every other
	// status sends an explicit null so the remote clears it.
	if status == bookapi.StatusFinished {
		finishedAt := time.Now().UTC().Format(time.RFC3339)
		update.FinishedAt = &finishedAt
	}

	err := s.api.UpdateShelfEntry(r.Context(), update, s.sessions.Token())
	s.metrics.RecordAPICall("update-book", err)
	if err != nil {
		s.renderBookshelf(w, r, status, requestMessage(err), http.StatusOK)
		return
	}

	http.Redirect(w, r, "/bookshelf?tab="+url.QueryEscape(status), http.StatusSeeOther)
}
