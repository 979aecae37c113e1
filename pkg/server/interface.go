/*
Package server implements msgpack IPC for the association service.

Clients write msgpack maps to stdin and read msgpack maps from stdout, one
response per request, in request order. Logs go to stderr.

# IPC

On start the server writes a ready status:

	{"status": "ready"}

Split requests carry the word, an optional limit and an optional split flag:

	{"id": "req_001", "w": "pavement", "l": 5}

The response holds one entry per piece of the winning split, the split grade
and the time taken in milliseconds:

	{"id": "req_001", "s": [{"w": "pave", "a": [{"n": "page", "s": 0.8, "f": 0.1, "d": true}]}, {"w": "ment", "a": []}], "g": 3.2, "t": 412}

Definition and closest-word lookups use an action:

	{"id": "def_001", "action": "define", "w": "paralize"}
	{"id": "cls_001", "action": "closest", "w": "paralize"}

answered with

	{"id": "def_001", "w": "paralyze", "d": ["v\tmake powerless"]}
	{"id": "cls_001", "w": "paralyze"}

A define reply always carries "d", empty when the word has no definitions.

Failed requests are answered with an error and an HTTP style status code:

	{"id": "req_002", "e": "Word or limit is illegal.", "c": 404}
*/
package server

import "github.com/bastiangx/mnemo/pkg/present"

// Actions understood by the server. An empty action is a split request.
const (
	ActionSplit   = "split"
	ActionDefine  = "define"
	ActionClosest = "closest"
	ActionHealth  = "health"
)

// Request is any client message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Word   string `msgpack:"w"`
	Limit  int    `msgpack:"l,omitempty"`
	// Split defaults to true when omitted.
	Split *bool `msgpack:"s,omitempty"`
}

// SplitResponse answers a split request.
type SplitResponse struct {
	ID        string          `msgpack:"id"`
	Splits    []present.Split `msgpack:"s"`
	Grade     float64         `msgpack:"g"`
	TimeTaken int64           `msgpack:"t"`
}

// EntryResponse answers define requests. Definitions is never nil.
type EntryResponse struct {
	ID          string   `msgpack:"id"`
	Word        string   `msgpack:"w"`
	Definitions []string `msgpack:"d"`
}

// ClosestResponse answers closest requests.
type ClosestResponse struct {
	ID   string `msgpack:"id"`
	Word string `msgpack:"w"`
}

// StatusResponse reports server state.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
