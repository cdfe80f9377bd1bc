/*
Package server implements msgpack IPC for table search.

The server reads a stream of msgpack encoded requests from stdin and writes
one msgpack response per request to stdout. Requests are processed
synchronously, with the time taken in microseconds included in responses.

# IPC

Each request carries an id, an action, a search term and an optional limit:

	{"id": "req_001", "action": "query", "q": "good person", "l": 20}

An empty action means "query". Matching rows come back in table order:

	{"id": "req_001", "r": [["hó-lâng", "good person"]], "c": 1, "t": 145, "sid": "..."}

Other actions:

	{"id": "h1", "action": "headers"}  -> {"id": "h1", "h": ["POJ", "English"], ...}
	{"id": "i1", "action": "info"}     -> row, key and column counts
	{"id": "r1", "action": "reload"}   -> {"id": "r1", "status": "ok", "sid": "..."}

Every response names the snapshot it was answered from, so a client can
tell when a reload swapped the table underneath it.

Failures are reported as

	{"id": "req_001", "e": "unknown action: foo", "c": 400}

with code 400 for malformed requests and 500 for reload failures. The
first message on the stream is always {"status": "ready"}.
*/
package server

// Actions understood by the server.
const (
	ActionQuery   = "query"
	ActionExact   = "exact"
	ActionPrefix  = "prefix"
	ActionAll     = "all"
	ActionHeaders = "headers"
	ActionInfo    = "info"
	ActionReload  = "reload"
)

// Request is the single request shape for every action.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Query  string `msgpack:"q,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// QueryResponse carries the rows for query, exact, prefix and all.
type QueryResponse struct {
	ID         string     `msgpack:"id"`
	Rows       [][]string `msgpack:"r"`
	Count      int        `msgpack:"c"`
	Total      int        `msgpack:"n"`
	TimeTaken  int64      `msgpack:"t"`
	SnapshotID string     `msgpack:"sid,omitempty"`
}

// HeadersResponse - column names of the loaded table
type HeadersResponse struct {
	ID         string   `msgpack:"id"`
	Headers    []string `msgpack:"h"`
	TimeTaken  int64    `msgpack:"t"`
	SnapshotID string   `msgpack:"sid,omitempty"`
}

// InfoResponse - engine stats
type InfoResponse struct {
	ID          string `msgpack:"id"`
	Rows        int    `msgpack:"rows"`
	Keys        int    `msgpack:"keys"`
	Columns     int    `msgpack:"columns"`
	PrefixCap   int    `msgpack:"prefix_cap"`
	BuildMicros int    `msgpack:"build_us"`
	MaxLimit    int    `msgpack:"max_limit"`
	SnapshotID  string `msgpack:"sid,omitempty"`
}

// StatusResponse is sent on startup and after a reload.
type StatusResponse struct {
	ID         string `msgpack:"id,omitempty"`
	Status     string `msgpack:"status"`
	TimeTaken  int64  `msgpack:"t,omitempty"`
	SnapshotID string `msgpack:"sid,omitempty"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
