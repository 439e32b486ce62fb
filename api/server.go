// Package api exposes the HTTP surface: chat, seed, and resource listing.
// It is a thin translation layer over the chat and ingestion services.
package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/acmecommerce/knowledge-agent/chat"
	"github.com/acmecommerce/knowledge-agent/corpus"
	"github.com/acmecommerce/knowledge-agent/embeddings"
	"github.com/acmecommerce/knowledge-agent/ingestion"
	"github.com/acmecommerce/knowledge-agent/knowledge"
	"github.com/acmecommerce/knowledge-agent/ratelimit"
)

type Server struct {
	chat       *chat.Service
	ingest     *ingestion.Service
	store      corpus.Store
	limiter    *ratelimit.Limiter
	seedSecret string
	logger     *log.Logger
	handler    http.Handler
}

type errorResponse struct {
	Error string `json:"error"`
}

type chatRequest struct {
	Question string `json:"question"`
}

type seedResponse struct {
	Message string          `json:"message"`
	Stats   ingestion.Stats `json:"stats"`
}

type resourceView struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	SourceID string         `json:"sourceId"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func NewServer(
	chatSvc *chat.Service,
	ingestSvc *ingestion.Service,
	store corpus.Store,
	limiter *ratelimit.Limiter,
	seedSecret string,
	logger *log.Logger,
) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		chat:       chatSvc,
		ingest:     ingestSvc,
		store:      store,
		limiter:    limiter,
		seedSecret: seedSecret,
		logger:     logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/seed", s.handleSeed)
	mux.HandleFunc("/api/resources", s.handleResources)
	mux.HandleFunc("/healthz", s.handleHealth)
	s.handler = mux

	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, http.MethodPost)
		return
	}

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("question is required"))
		return
	}

	// The quota unit is spent before retrieval runs, so a request that
	// later fails with 5xx still counts against the daily limit.
	quota := s.limiter.Check(clientIP(r))
	if !quota.Allowed {
		w.Header().Set("X-Rate-Remaining", "0")
		s.writeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded, try again after %s", quota.ResetAt.Format("15:04 MST")))
		return
	}

	ctx := r.Context()

	prompt, sources, err := s.chat.Prepare(ctx, req.Question)
	if err != nil {
		s.writeError(w, chatStatus(err), fmt.Errorf("prepare answer: %w", err))
		return
	}

	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("encode sources: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Sources", string(sourcesJSON))
	w.Header().Set("X-Rate-Remaining", fmt.Sprintf("%d", quota.Remaining))

	flusher, _ := w.(http.Flusher)
	if _, err := s.chat.Complete(ctx, prompt, req.Question, func(chunk string) error {
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}); err != nil {
		// Headers are already sent; all we can do is log and cut the stream.
		s.logger.Printf("stream answer: %v", err)
	}
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, http.MethodPost)
		return
	}

	if !s.authorizeSeed(r) {
		s.writeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
		return
	}

	stats, err := s.ingest.Ingest(r.Context(), knowledge.SeedDocuments())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("seed failed: %w", err))
		return
	}

	s.writeJSON(w, http.StatusOK, seedResponse{Message: "corpus seeded", Stats: stats})
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}

	resources, err := s.store.ListResources(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("list resources: %w", err))
		return
	}

	grouped := make(map[string][]resourceView)
	for _, res := range resources {
		grouped[res.Type] = append(grouped[res.Type], resourceView{
			ID:       res.ID,
			Type:     res.Type,
			SourceID: res.SourceID,
			Title:    res.Title,
			Content:  res.Content,
			Metadata: res.Metadata,
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"resources": grouped})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) authorizeSeed(r *http.Request) bool {
	if s.seedSecret == "" {
		return false
	}
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.seedSecret)) == 1
}

func chatStatus(err error) int {
	switch {
	case errors.Is(err, embeddings.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, corpus.ErrStorageFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if real := r.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed, use %s", allowed))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Printf("api error (%d): %v", status, err)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON object")
	}

	return nil
}
