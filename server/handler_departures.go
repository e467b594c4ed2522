package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/theoremus-urban-solutions/gtfs-departures/formatter"
	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
)

func (s *Server) handleDeparturesJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	board, status := s.departureBoard(r)
	w.WriteHeader(status)
	_, _ = w.Write(s.builder.BuildJSON(board))
}

func (s *Server) handleDeparturesXML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/xml")
	board, status := s.departureBoard(r)
	w.WriteHeader(status)
	_, _ = w.Write(s.builder.BuildXML(board))
}

func (s *Server) departureBoard(r *http.Request) (*formatter.DepartureBoard, int) {
	now := s.engine.Now()
	q, err := parseDeparturesQuery(r.URL.Query())
	if err != nil {
		return formatter.BuildErrorBoard(err.Error(), now), http.StatusBadRequest
	}

	start := time.Now()
	services := q.run(s.engine)
	if s.metrics != nil {
		s.metrics.ObserveQuery(q.kind, len(services), time.Since(start))
	}
	return formatter.BuildDepartureBoard(q.template, services, now, s.feedValid()), http.StatusOK
}

type stopResponse struct {
	ID            string        `json:"id"`
	Code          string        `json:"code,omitempty"`
	Name          string        `json:"name"`
	Lat           float64       `json:"lat"`
	Lon           float64       `json:"lon"`
	LocationType  string        `json:"locationType"`
	Wheelchair    string        `json:"wheelchairBoarding"`
	PlatformCode  string        `json:"platformCode,omitempty"`
	ParentStation *stopResponse `json:"parentStation,omitempty"`
}

func newStopResponse(stop *gtfs.Stop) *stopResponse {
	resp := &stopResponse{
		ID:           stop.ID,
		Name:         stop.Name,
		Lat:          stop.Lat,
		Lon:          stop.Lon,
		LocationType: stop.LocationType.String(),
		Wheelchair:   stop.WheelchairBoarding.String(),
	}
	if stop.Code != nil {
		resp.Code = *stop.Code
	}
	if stop.PlatformCode != nil {
		resp.PlatformCode = *stop.PlatformCode
	}
	return resp
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	feed := s.engine.Feed()
	stop := feed.Stop(chi.URLParam(r, "stopID"))
	if stop == nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "No such stop."})
		return
	}
	resp := newStopResponse(stop)
	if parent := feed.ParentStation(stop); parent != nil {
		resp.ParentStation = newStopResponse(parent)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
