package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bastiangx/mnemo/internal/logger"
	"github.com/bastiangx/mnemo/internal/utils"
	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/bastiangx/mnemo/pkg/config"
	"github.com/bastiangx/mnemo/pkg/datamuse"
	"github.com/bastiangx/mnemo/pkg/present"
	"github.com/bastiangx/mnemo/pkg/splitter"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for word associations.
type Server struct {
	engine  *splitter.Engine
	lookup  association.Lookup
	config  atomic.Pointer[config.ServerConfig]
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	logger  *log.Logger

	requests atomic.Int64
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(engine *splitter.Engine, lookup association.Lookup, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	s := &Server{
		engine:  engine,
		lookup:  lookup,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		logger:  logger.New("ipc"),
	}
	s.SetServerConfig(cfg)
	return s
}

// SetServerConfig swaps the server limits, used when the config file is reloaded.
func (s *Server) SetServerConfig(cfg config.ServerConfig) {
	s.config.Store(&cfg)
}

// Requests returns the number of requests handled so far.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// Serve answers requests until the input ends or ctx is done.
// A message that cannot be decoded ends the stream since the decoder cannot resync.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debug("Starting IPC server.")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping.", "requests", s.Requests())
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			_ = s.sendError("", "Invalid msgpack request", http.StatusBadRequest)
			return fmt.Errorf("failed to decode request: %w", err)
		}

		s.requests.Add(1)
		if err := s.handle(ctx, req); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

func (s *Server) handle(ctx context.Context, req Request) error {
	switch req.Action {
	case "", ActionSplit:
		return s.handleSplit(ctx, req)
	case ActionDefine, ActionClosest:
		return s.handleEntry(ctx, req)
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), http.StatusBadRequest)
	}
}

func (s *Server) handleSplit(ctx context.Context, req Request) error {
	cfg := s.config.Load()

	limit := req.Limit
	if limit == 0 {
		limit = cfg.DefaultLimit
	}
	if !utils.IsValidRequest(req.Word, limit) {
		s.logger.Debug("Rejected request", "id", req.ID, "word", req.Word, "limit", limit)
		return s.sendError(req.ID, "Word or limit is illegal.", http.StatusNotFound)
	}
	limit = utils.ClampLimit(limit, cfg.MaxLimit)

	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout())
	defer cancel()

	start := time.Now()
	candidate, err := s.engine.Best(ctx, req.Word, limit, req.Split == nil || *req.Split)
	if err != nil {
		return s.sendFailure(req.ID, req.Word, err)
	}

	return s.send(SplitResponse{
		ID:        req.ID,
		Splits:    present.FromCandidate(candidate).Splits,
		Grade:     candidate.Grade,
		TimeTaken: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleEntry(ctx context.Context, req Request) error {
	if !utils.IsAlphaWord(req.Word) {
		return s.sendError(req.ID, "Word is illegal.", http.StatusNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Load().RequestTimeout())
	defer cancel()

	entry, err := s.lookup.Closest(ctx, req.Word)
	if err != nil {
		if !errors.Is(err, datamuse.ErrNoMatch) {
			err = errors.Join(association.ErrLookup, err)
		}
		return s.sendFailure(req.ID, req.Word, err)
	}

	if req.Action == ActionClosest {
		return s.send(ClosestResponse{ID: req.ID, Word: entry.Word})
	}
	defs := entry.Definitions
	if defs == nil {
		defs = []string{}
	}
	return s.send(EntryResponse{ID: req.ID, Word: entry.Word, Definitions: defs})
}

func (s *Server) sendFailure(id, word string, err error) error {
	code := present.Status(err)
	s.logger.Warn("request failed", "id", id, "word", word, "code", code, "err", err)
	return s.sendError(id, http.StatusText(code), code)
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}
