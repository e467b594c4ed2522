// Package server exposes departure boards over HTTP.
//
// Routes:
//
//	GET /api/health              status, feed validity and entity counts
//	GET /api/feed/validity       {"valid": true|false|null}
//	GET /api/departures.json     ?stop=NAME&code=CODE&limit=N
//	GET /api/departures.xml      same parameters, XML body
//	GET /api/stops/{stopID}      one stop and its parent station
//	GET /metrics                 Prometheus metrics, when enabled
package server
