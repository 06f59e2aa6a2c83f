package web

import (
	"net/http"

	"github.com/bookbrust/bookbrust/internal/bookapi"
	"github.com/bookbrust/bookbrust/internal/timeline"
)

// monthSection is one rendered month on the timeline page.
type monthSection struct {
	Key     string
	Label   string
	Count   int
	Entries []bookapi.ShelfEntry
}

type timelineData struct {
	pageData
	Total    int
	Sections []monthSection
}

// handleTimeline renders the reading history grouped by finish month,
// newest month first, with undated books in their own bucket.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	data := timelineData{pageData: s.basePage("Reading Timeline")}

	entries, err := s.api.ReadingHistory(r.Context(), s.sessions.Token())
	s.metrics.RecordAPICall("history", err)
	if err != nil {
		data.Error = requestMessage(err)
		s.render(w, http.StatusOK, "timeline", data)
		return
	}

	grouped := timeline.GroupByMonth(entries)
	months := timeline.SortedMonths(grouped)
	counts := timeline.MonthlyCounts(grouped, months)

	data.Total = len(entries)
	data.Sections = make([]monthSection, 0, len(counts))
	for _, mc := range counts {
		data.Sections = append(data.Sections, monthSection{
			Key:     mc.Month,
			Label:   timeline.MonthLabel(mc.Month),
			Count:   mc.Count,
			Entries: grouped[mc.Month],
		})
	}

	s.render(w, http.StatusOK, "timeline", data)
}
