package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/matzehuels/bwcolor/pkg/buildinfo"
	"github.com/matzehuels/bwcolor/pkg/color"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	bwio "github.com/matzehuels/bwcolor/pkg/io"
	"github.com/matzehuels/bwcolor/pkg/pipeline"
	"github.com/matzehuels/bwcolor/pkg/render/dot"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// treeRequest carries a tree either as a node-link document or as a parent
// array.
type treeRequest struct {
	Tree      json.RawMessage `json:"tree,omitempty"`
	Parents   []int           `json:"parents,omitempty"`
	Labels    []string        `json:"labels,omitempty"`
	Algorithm string          `json:"algorithm,omitempty"`
	Refresh   bool            `json:"refresh,omitempty"`
}

type coloringRequest struct {
	treeRequest
	Black int `json:"black"`
	White int `json:"white"`
}

type renderRequest struct {
	coloringRequest
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

type maxWhiteResponse struct {
	ID        string `json:"id"`
	Algorithm string `json:"algorithm"`
	Size      int    `json:"size"`
	MaxWhite  []int  `json:"max_white"`
	Cached    bool   `json:"cached"`
}

type coloringResponse struct {
	ID     string                 `json:"id"`
	Colors map[string]color.Color `json:"colors"`
	Black  int                    `json:"black"`
	White  int                    `json:"white"`
	Gray   int                    `json:"gray"`
}

var contentTypes = map[string]string{
	dot.FormatSVG: "image/svg+xml",
	dot.FormatPNG: "image/png",
	dot.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleMaxWhite(w http.ResponseWriter, r *http.Request) {
	var req treeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.tree(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sol, cached, err := s.runner.Solve(r.Context(), t, s.options(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, maxWhiteResponse{
		ID:        sol.ID,
		Algorithm: sol.Algorithm,
		Size:      sol.Nodes,
		MaxWhite:  sol.MaxWhite.Slice(),
		Cached:    cached,
	})
}

func (s *Server) handleColoring(w http.ResponseWriter, r *http.Request) {
	var req coloringRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, res, err := s.color(r.Context(), req, s.options(req.treeRequest))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c := res.Coloring
	s.writeJSON(w, http.StatusOK, coloringResponse{
		ID:     res.ID,
		Colors: color.ByLabel(t, c),
		Black:  c.Black(),
		White:  c.White(),
		Gray:   c.Gray(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(req.treeRequest)
	opts.Format = req.Format
	opts.Detailed = req.Detailed
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	t, res, err := s.color(r.Context(), req.coloringRequest, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, cached, err := s.runner.Render(r.Context(), t, res.Coloring, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.Header().Set("X-Run-Id", res.ID)
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) color(ctx context.Context, req coloringRequest, opts pipeline.Options) (*tree.Tree, *pipeline.ColorResult, error) {
	t, err := s.tree(req.treeRequest)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.runner.Color(ctx, t, req.Black, req.White, opts)
	if err != nil {
		return nil, nil, err
	}
	return t, res, nil
}

func (s *Server) options(req treeRequest) pipeline.Options {
	opts := pipeline.Options{
		Algorithm: req.Algorithm,
		Parallel:  s.cfg.Parallel,
		Refresh:   req.Refresh,
		Logger:    s.logger,
	}
	if opts.Algorithm == "" {
		opts.Algorithm = s.cfg.Algorithm
	}
	return opts
}

// tree builds the request tree and enforces the size limit.
func (s *Server) tree(req treeRequest) (*tree.Tree, error) {
	var (
		t   *tree.Tree
		err error
	)
	switch {
	case len(req.Tree) > 0 && req.Parents != nil:
		return nil, bwerrors.New(bwerrors.ErrCodeInvalidInput, "give either tree or parents, not both")
	case len(req.Tree) > 0:
		t, err = bwio.ReadJSON(bytes.NewReader(req.Tree))
	case req.Parents != nil:
		if err := bwerrors.ValidateTreeSize(len(req.Parents), s.cfg.MaxNodes); err != nil {
			return nil, err
		}
		t, err = tree.FromParents(req.Parents, req.Labels)
	default:
		return nil, bwerrors.New(bwerrors.ErrCodeInvalidInput, "request has no tree")
	}
	if err != nil {
		return nil, err
	}
	if err := bwerrors.ValidateTreeSize(t.Len(), s.cfg.MaxNodes); err != nil {
		return nil, err
	}
	return t, nil
}

func decode(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return bwerrors.New(bwerrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return bwerrors.Wrap(bwerrors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

func errNotFound(path string) error {
	return bwerrors.New(bwerrors.ErrCodeNotFound, "no route for %s", path)
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    bwerrors.Code `json:"code"`
	Message string        `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := bwerrors.GetCode(err)
	if code == "" {
		code = bwerrors.ErrCodeInternal
	}
	msg := bwerrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		if code == bwerrors.ErrCodeInternal {
			msg = fmt.Sprintf("internal error (request %s)", requestID(r))
		}
	}
	s.writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func statusFor(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	switch bwerrors.GetCode(err) {
	case bwerrors.ErrCodeInvalidInput, bwerrors.ErrCodeInvalidTree, bwerrors.ErrCodeInvalidFormat,
		bwerrors.ErrCodeInvalidAlgorithm:
		return http.StatusBadRequest
	case bwerrors.ErrCodeDegenerateTree, bwerrors.ErrCodeInfeasibleRequest:
		return http.StatusUnprocessableEntity
	case bwerrors.ErrCodeNotFound, bwerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case bwerrors.ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	case bwerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
