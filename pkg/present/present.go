// Package present converts split candidates into the response shape served over HTTP and IPC.
package present

import (
	"context"
	"errors"
	"net/http"

	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/bastiangx/mnemo/pkg/datamuse"
	"github.com/bastiangx/mnemo/pkg/splitter"
)

// Item is one exposed association.
type Item struct {
	Name          string  `json:"name" msgpack:"n"`
	Similarity    float64 `json:"similarity" msgpack:"s"`
	Frequency     float64 `json:"frequency" msgpack:"f"`
	HasDefinition bool    `json:"has_definition" msgpack:"d"`
}

// Split is one piece of the winning candidate.
type Split struct {
	Word         string `json:"word" msgpack:"w"`
	Associations []Item `json:"associations" msgpack:"a"`
}

// Response is the full associations payload.
type Response struct {
	Splits []Split `json:"splits" msgpack:"s"`
}

// FromSet exposes the limited associations of a single set.
func FromSet(set *association.Set) Split {
	exposed := set.Exposed()
	items := make([]Item, len(exposed))
	for i, a := range exposed {
		items[i] = Item{
			Name:          a.Name(),
			Similarity:    a.Similarity(),
			Frequency:     a.Frequency(),
			HasDefinition: a.HasDefinition(),
		}
	}
	return Split{Word: set.Fragment(), Associations: items}
}

// FromCandidate builds the response for a winning candidate, one split per piece.
func FromCandidate(c *splitter.Candidate) Response {
	splits := make([]Split, len(c.Pieces))
	for i, p := range c.Pieces {
		splits[i] = FromSet(p)
	}
	return Response{Splits: splits}
}

// Status maps a search or lookup error onto the HTTP status code reported by
// both the HTTP API and the IPC server.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, datamuse.ErrNoMatch), errors.Is(err, splitter.ErrNoSplit):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, association.ErrLookup):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
