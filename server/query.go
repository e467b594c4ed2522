package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/gtfs-departures/departures"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// Query kinds, also used as metric labels.
const (
	queryByName     = "name"
	queryByCode     = "code"
	queryByTemplate = "template"
)

type departuresQuery struct {
	kind     string
	template departures.StopTemplate
	// limit is -1 when the caller did not ask for one
	limit int
}

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return -1, &QueryError{Msg: "Numeric parameter must be a non-negative integer."}
	}
	return v, nil
}

// parseDeparturesQuery reads stop, code and limit. Parameter names are case
// insensitive; the first value of each wins.
func parseDeparturesQuery(values url.Values) (departuresQuery, error) {
	params := map[string]string{}
	for k, v := range values {
		key := strings.ToLower(k)
		if _, seen := params[key]; seen || len(v) == 0 {
			continue
		}
		params[key] = strings.TrimSpace(v[0])
	}

	q := departuresQuery{template: departures.StopTemplate{Name: params["stop"], Code: params["code"]}}
	switch {
	case q.template.Name != "" && q.template.Code != "":
		q.kind = queryByTemplate
	case q.template.Code != "":
		q.kind = queryByCode
	case q.template.Name != "":
		q.kind = queryByName
	default:
		return q, &QueryError{Msg: "You must provide a stop name or a stop code."}
	}

	limit, err := parseNonNegativeInt(params["limit"])
	if err != nil {
		return q, err
	}
	q.limit = limit
	return q, nil
}

func (q departuresQuery) run(e *departures.Engine) []departures.UpcomingService {
	var out []departures.UpcomingService
	switch q.kind {
	case queryByTemplate:
		out = e.UpcomingServicesForStopTemplate(q.template)
	case queryByCode:
		out = e.UpcomingServicesForStopCode(q.template.Code)
	default:
		out = e.UpcomingServicesForStopName(q.template.Name)
	}
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out
}
