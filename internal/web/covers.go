package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/bookbrust/bookbrust/internal/security"
)

// maxCoverSize caps how much of a cover image is streamed through the
// proxy.
const maxCoverSize = 5 << 20

// handleCover proxies book cover images so pages never embed third-party
// URLs directly. The upstream fetch goes through the SSRF-guarded client,
// which refuses private and loopback addresses.
func (s *Server) handleCover(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}
	if err := security.ValidateURL(raw); err != nil {
		http.Error(w, "invalid cover url", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, raw, nil)
	if err != nil {
		http.Error(w, "invalid cover url", http.StatusBadRequest)
		return
	}

	resp, err := s.covers.Do(req)
	if err != nil {
		http.Error(w, "could not fetch cover", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		http.Error(w, "could not fetch cover", http.StatusBadGateway)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		http.Error(w, "not an image", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = io.Copy(w, io.LimitReader(resp.Body, maxCoverSize))
}
