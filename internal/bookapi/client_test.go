package bookapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient starts a fake remote service and returns a client pointed at
// it. The handler receives every request the client makes.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/api", 5*time.Second, slog.New(slog.DiscardHandler))
}

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		w.Write([]byte(`{"token":"tok-1","user":{"email":"ada@example.com","alias":"ada"}}`))
	})

	got, err := client.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if got.Token != "tok-1" {
		t.Errorf("Token = %q, want %q", got.Token, "tok-1")
	}
	if got.User.Alias != "ada" {
		t.Errorf("Alias = %q, want %q", got.User.Alias, "ada")
	}
}

func TestBookshelf_AttachesBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok-9" {
			t.Errorf("Authorization = %q, want %q", auth, "Bearer tok-9")
		}
		if status := r.URL.Query().Get("status"); status != "reading" {
			t.Errorf("status = %q, want %q", status, "reading")
		}
		w.Write([]byte(`[{"googleBooksId":"g1","title":"Dune","status":"reading"}]`))
	})

	shelf, err := client.Bookshelf(context.Background(), "reading", "tok-9")
	if err != nil {
		t.Fatalf("Bookshelf() error: %v", err)
	}
	if len(shelf) != 1 || shelf[0].Title != "Dune" {
		t.Errorf("shelf = %+v, want one entry titled Dune", shelf)
	}
}

func TestRequestError_CarriesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	})

	_, err := client.Login(context.Background(), LoginRequest{Email: "x", Password: "y"})
	if err == nil {
		t.Fatal("Login() expected error")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error is %T, want *RequestError", err)
	}
	if reqErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", reqErr.StatusCode, http.StatusUnauthorized)
	}
	if reqErr.Message != "invalid credentials" {
		t.Errorf("Message = %q, want %q", reqErr.Message, "invalid credentials")
	}
}

func TestRequestError_GenericFallbackOnEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.TrendingBooks(context.Background(), "")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error is %T, want *RequestError", err)
	}
	if reqErr.Message != "request failed" {
		t.Errorf("Message = %q, want generic fallback", reqErr.Message)
	}
}

func TestRequestError_NetworkFailure(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := New(srv.URL+"/api", time.Second, slog.New(slog.DiscardHandler))

	_, err := client.TrendingBooks(context.Background(), "")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error is %T, want *RequestError", err)
	}
	if reqErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for network failure", reqErr.StatusCode)
	}
}

func TestUpdateShelfEntry_PatchesStatusPath(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	})

	finished := "2025-05-10T00:00:00Z"
	err := client.UpdateShelfEntry(context.Background(), ShelfUpdate{
		GoogleBooksID: "g1",
		Status:        StatusFinished,
		Rating:        4,
		Notes:         "great",
		FinishedAt:    &finished,
	}, "tok")
	if err != nil {
		t.Fatalf("UpdateShelfEntry() error: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotPath != "/api/books/tab/finished" {
		t.Errorf("path = %q, want /api/books/tab/finished", gotPath)
	}
	if !jsonContains(gotBody, `"finishedAt":"2025-05-10T00:00:00Z"`) {
		t.Errorf("body %q missing finishedAt", gotBody)
	}
}

func TestUpdateShelfEntry_FinishedAtNullWhenNotFinished(t *testing.T) {
	var gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	})

	err := client.UpdateShelfEntry(context.Background(), ShelfUpdate{
		GoogleBooksID: "g1",
		Status:        StatusReading,
	}, "tok")
	if err != nil {
		t.Fatalf("UpdateShelfEntry() error: %v", err)
	}
	if !jsonContains(gotBody, `"finishedAt":null`) {
		t.Errorf("body %q should carry an explicit null finishedAt", gotBody)
	}
}

func TestBookDetails_PaginationDefaults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "1" || q.Get("limit") != "10" {
			t.Errorf("query = %v, want page=1 limit=10", q)
		}
		w.Write([]byte(`{"book":{"googleBooksId":"g1","title":"Dune"},"reviews":[],"total":0}`))
	})

	details, err := client.BookDetails(context.Background(), "g1", 0, 0)
	if err != nil {
		t.Fatalf("BookDetails() error: %v", err)
	}
	if details.Book.Title != "Dune" {
		t.Errorf("title = %q, want Dune", details.Book.Title)
	}
}

// jsonContains reports whether the serialized body contains the fragment.
// Field order from encoding/json is deterministic, so substring matching on
// known fragments is stable.
func jsonContains(body, fragment string) bool {
	return strings.Contains(body, fragment)
}
