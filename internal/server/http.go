// Package server exposes the chat web UI and JSON API.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/spf13/viper"

	"github.com/kvernberg/lovchat/pkg/api"
)

//go:embed templates/chat.html
var templateFS embed.FS

var chatPage = template.Must(template.ParseFS(templateFS, "templates/chat.html"))

// Asker answers one question; implemented by bot.Bot.
type Asker interface {
	Ask(ctx context.Context, question string, topK int) (api.Answer, error)
}

// Server serves the chat page, the ask API and the admin endpoints.
type Server struct {
	cfg     *viper.Viper
	bot     Asker
	reindex func(ctx context.Context) error
}

// New builds a Server. reindex may be nil to disable /api/reindex.
func New(cfg *viper.Viper, bot Asker, reindex func(ctx context.Context) error) *Server {
	return &Server{cfg: cfg, bot: bot, reindex: reindex}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/ask", s.handleAsk)
	mux.HandleFunc("/api/reindex", s.auth(s.handleReindex))
	return mux
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimSpace(s.cfg.GetString("auth.token"))
		got := r.Header.Get("Authorization")
		if tok == "" || !strings.HasPrefix(got, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(got, "Bearer ")) != tok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Model string }{Model: s.cfg.GetString("openai.model")}
	if err := chatPage.Execute(w, data); err != nil {
		log.Printf("server: render page: %v", err)
	}
}

type askRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	ans, err := s.bot.Ask(r.Context(), req.Question, req.TopK)
	if err != nil {
		log.Printf("server: ask failed: %v", err)
		http.Error(w, "answer generation failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, ans)
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.reindex == nil {
		http.Error(w, "reindex not available", http.StatusNotImplemented)
		return
	}
	if err := s.reindex(r.Context()); err != nil {
		log.Printf("server: reindex failed: %v", err)
		http.Error(w, "reindex failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}
