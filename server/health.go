package server

import (
	"encoding/json"
	"net/http"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-departures/utils"
)

type healthResponse struct {
	Status    string      `json:"status"`
	Timestamp string      `json:"timestamp"`
	FeedValid *bool       `json:"feedValid"`
	LoadedAt  string      `json:"loadedAt"`
	Counts    gtfs.Counts `json:"counts"`
}

type validityResponse struct {
	Valid *bool  `json:"valid"`
	Date  string `json:"date"`
	From  string `json:"from,omitempty"`
	Until string `json:"until,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:    "ok",
		Timestamp: utils.Iso8601Now(),
		FeedValid: s.feedValid(),
		LoadedAt:  utils.Iso8601FromUnixSeconds(s.loadedAt.Unix()),
		Counts:    s.engine.Feed().Counts(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleFeedValidity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := validityResponse{
		Valid: s.feedValid(),
		Date:  utils.Iso8601Date(s.engine.Now()),
	}
	if info := s.engine.Feed().Info(); info != nil {
		if info.StartDate != nil {
			resp.From = utils.Iso8601Date(*info.StartDate)
		}
		if info.EndDate != nil {
			resp.Until = utils.Iso8601Date(*info.EndDate)
		}
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// feedValid is nil when the feed does not say how long it is valid.
func (s *Server) feedValid() *bool {
	valid, known := s.engine.IsFeedCurrentlyValid()
	if !known {
		return nil
	}
	return &valid
}
