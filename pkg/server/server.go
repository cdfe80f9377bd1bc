package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/dictable/internal/logger"
	"github.com/bastiangx/dictable/pkg/config"
	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/bastiangx/dictable/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshotter is implemented by engines that can name their current snapshot.
type snapshotter interface {
	Snapshot() *search.Snapshot
}

// Server handles the IPC for table search
type Server struct {
	searcher search.Searcher
	config   *config.Config
	decoder  *msgpack.Decoder
	writer   *bufio.Writer
	log      *log.Logger
	requests int
}

// NewServer creates a search server using stdin/stdout for IPC
func NewServer(searcher search.Searcher, cfg *config.Config) *Server {
	return NewServerWithIO(searcher, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO is NewServer over arbitrary streams.
func NewServerWithIO(searcher search.Searcher, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		searcher: searcher,
		config:   cfg,
		decoder:  msgpack.NewDecoder(bufio.NewReader(r)),
		writer:   bufio.NewWriter(w),
		log:      logger.New("ipc"),
	}
}

// Start sends the ready status and then serves requests until the input
// stream ends.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		// each request is read whole first, so a request that does not fit
		// the Request shape is answered with a 400 without losing the stream
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.log.Errorf("Reading from stdin: %v", err)
			return err
		}
		s.requests++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError("", "invalid msgpack request", 400); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the action. The returned error is only set
// when the response could not be written.
func (s *Server) handleRequest(req Request) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	switch req.Action {
	case "", ActionQuery:
		return s.handleRows(req, s.searcher.Query)
	case ActionExact:
		return s.handleRows(req, s.searcher.QueryExact)
	case ActionPrefix:
		return s.handleRows(req, s.searcher.QueryPrefix)
	case ActionAll:
		return s.handleRows(req, func(string) []dataset.Row { return s.searcher.AllRows() })
	case ActionHeaders:
		start := time.Now()
		headers := s.searcher.Headers()
		return s.send(HeadersResponse{
			ID:         req.ID,
			Headers:    headers,
			TimeTaken:  time.Since(start).Microseconds(),
			SnapshotID: s.snapshotID(),
		})
	case ActionInfo:
		stats := s.searcher.Stats()
		return s.send(InfoResponse{
			ID:          req.ID,
			Rows:        stats["rows"],
			Keys:        stats["keys"],
			Columns:     stats["columns"],
			PrefixCap:   stats["prefixCap"],
			BuildMicros: stats["buildMicros"],
			MaxLimit:    s.config.Server.MaxLimit,
			SnapshotID:  s.snapshotID(),
		})
	case ActionReload:
		return s.handleReload(req)
	default:
		s.log.Debugf("Unknown action %q in request %s", req.Action, req.ID)
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleRows(req Request, run func(string) []dataset.Row) error {
	if req.Limit < 0 {
		return s.sendError(req.ID, "limit must not be negative", 400)
	}
	limit := req.Limit
	if limit == 0 || limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	rows := run(req.Query)
	elapsed := time.Since(start)

	total := len(rows)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = row
	}

	return s.send(QueryResponse{
		ID:         req.ID,
		Rows:       out,
		Count:      len(out),
		Total:      total,
		TimeTaken:  elapsed.Microseconds(),
		SnapshotID: s.snapshotID(),
	})
}

func (s *Server) handleReload(req Request) error {
	start := time.Now()
	if err := s.searcher.Reload(context.Background()); err != nil {
		s.log.Errorf("Reload failed: %v", err)
		return s.sendError(req.ID, fmt.Sprintf("reload failed: %v", err), 500)
	}
	s.log.Infof("Reloaded table in %s", time.Since(start))
	return s.send(StatusResponse{
		ID:         req.ID,
		Status:     "ok",
		TimeTaken:  time.Since(start).Microseconds(),
		SnapshotID: s.snapshotID(),
	})
}

func (s *Server) snapshotID() string {
	if sn, ok := s.searcher.(snapshotter); ok {
		if snap := sn.Snapshot(); snap != nil {
			return snap.ID
		}
	}
	return ""
}

// send encodes one response and flushes it so the client sees it right away.
func (s *Server) send(response any) error {
	data, err := msgpack.Marshal(response)
	if err != nil {
		s.log.Errorf("Marshaling response: %v", err)
		data, err = msgpack.Marshal(ErrorResponse{Error: "internal server error", Code: 500})
		if err != nil {
			return err
		}
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
