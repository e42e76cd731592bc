package cli

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/permkit/permkit/pkg/buildinfo"
	"github.com/permkit/permkit/pkg/cache"
	"github.com/permkit/permkit/pkg/errors"
	"github.com/permkit/permkit/pkg/gapfmt"
	"github.com/permkit/permkit/pkg/group"
)

// serveCommand creates the serve command: expose the group computations
// as a JSON API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the group computations as a JSON API",
		Long: `Start an HTTP server exposing order, block system and decomposition
computations as JSON endpoints:

	POST /v1/order      {"expr": "Group((1,2),(1,2,3))"}
	POST /v1/blocks     {"expr": "..."}
	POST /v1/decompose  {"expr": "...", "kind": "disjoint"}
	GET  /healthz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the chain cache")
	return cmd
}

func (c *CLI) runServe(addr string, noCache bool) error {
	store := newCache(noCache)
	defer store.Close()

	srv := &apiServer{
		cli:   c,
		store: store,
		keyer: cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(withLogger(req.Context(), c.Logger)))
		})
	})

	r.Get("/healthz", srv.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/order", srv.handleOrder)
		r.Post("/blocks", srv.handleBlocks)
		r.Post("/decompose", srv.handleDecompose)
	})

	c.Logger.Infof("Listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// apiServer carries the shared handler state.
type apiServer struct {
	cli   *CLI
	store cache.Cache
	keyer cache.Keyer
}

// resultKey derives the cache key for a computed result of the request's
// group. Only flag-independent results (block systems) are cached this
// way; decompositions vary with request flags.
func (s *apiServer) resultKey(kind string, req *apiRequest) string {
	groupKey := s.keyer.GroupKey(req.Expr, cache.GroupKeyOpts{
		Construction: req.Construction,
		Storage:      req.Storage,
	})
	return s.keyer.ResultKey(kind, groupKey)
}

// apiRequest is the common body of all computation endpoints.
type apiRequest struct {
	Expr         string `json:"expr"`
	Construction string `json:"construction,omitempty"`
	Storage      string `json:"storage,omitempty"`

	// Decompose only.
	Kind           string `json:"kind,omitempty"`
	Complete       bool   `json:"complete,omitempty"`
	OptimizeOrbits bool   `json:"optimize_orbits,omitempty"`
}

// apiError is the JSON shape of error responses.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *apiServer) loadGroup(r *http.Request) (*group.Group, bool, *apiRequest, error) {
	var req apiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, false, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request body")
	}

	opts := &buildOpts{construction: req.Construction, storage: req.Storage}
	g, cached, err := loadGroup(r.Context(), s.store, req.Expr, opts)
	if err != nil {
		return nil, false, nil, err
	}
	loggerFromContext(r.Context()).Debug("loaded group", "degree", g.Degree(), "cached", cached)
	return g, cached, &req, nil
}

func (s *apiServer) handleOrder(w http.ResponseWriter, r *http.Request) {
	g, cached, _, err := s.loadGroup(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"degree":     g.Degree(),
		"order":      g.Order().String(),
		"base":       g.BSGS().Base(),
		"transitive": g.IsTransitive(),
		"cached":     cached,
	})
}

func (s *apiServer) handleBlocks(w http.ResponseWriter, r *http.Request) {
	g, cached, req, err := s.loadGroup(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var blocks [][][]int
	key := s.resultKey("blocks", req)
	if data, hit, gerr := s.store.Get(r.Context(), key); gerr != nil || !hit || json.Unmarshal(data, &blocks) != nil {
		systems := group.NonTrivialBlockSystems(g)
		blocks = make([][][]int, 0, len(systems))
		for _, bs := range systems {
			blocks = append(blocks, bs.Blocks())
		}
		if data, merr := json.Marshal(blocks); merr == nil {
			_ = s.store.Set(r.Context(), key, data, chainCacheTTL)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"degree":  g.Degree(),
		"systems": blocks,
		"cached":  cached,
	})
}

func (s *apiServer) handleDecompose(w http.ResponseWriter, r *http.Request) {
	g, cached, req, err := s.loadGroup(r)
	if err != nil {
		writeError(w, err)
		return
	}

	switch req.Kind {
	case kindWreath:
		wr := g.WreathDecomposition()
		resp := map[string]any{
			"status": wr.Status.String(),
			"cached": cached,
		}
		if wr.Status == group.WreathFound {
			resp["blocks"] = wr.Blocks.Blocks()
			components := make([]string, 0, len(wr.Components))
			for _, comp := range wr.Components {
				components = append(components, gapfmt.FormatGroup(comp))
			}
			resp["components"] = components
		}
		writeJSON(w, http.StatusOK, resp)

	case kindDisjoint, "":
		factors := g.DisjointDecomposition(req.Complete, req.OptimizeOrbits)
		exprs := make([]string, 0, len(factors))
		for _, factor := range factors {
			exprs = append(exprs, gapfmt.FormatGroup(factor))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"factors": exprs,
			"cached":  cached,
		})

	default:
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown kind %q", req.Kind))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCycle, errors.ErrCodeInvalidGroupExpr,
		errors.ErrCodeInvalidDegree, errors.ErrCodeInvalidMapping, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	writeJSON(w, status, apiError{Code: string(code), Message: errors.UserMessage(err)})
}
