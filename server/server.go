package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/AjAyrAo43/AI-BLOG-WRITING-AGENT/config"
	"github.com/AjAyrAo43/AI-BLOG-WRITING-AGENT/engine"
	"github.com/AjAyrAo43/AI-BLOG-WRITING-AGENT/store"
)

// Server bridges HTTP clients to the workflow engine and the article store.
type Server struct {
	invoker engine.Invoker
	blogs   *store.Store
	cfg     config.Config
	logger  *zap.Logger
}

func New(invoker engine.Invoker, blogs *store.Store, cfg config.Config, logger *zap.Logger) (*Server, error) {
	if invoker == nil {
		return nil, errors.New("workflow invoker required")
	}
	if blogs == nil {
		return nil, errors.New("article store required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{invoker: invoker, blogs: blogs, cfg: cfg, logger: logger}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/blogs", s.handleBlogList)
	mux.HandleFunc("/api/blogs/", s.handleBlogByName)
	mux.HandleFunc("/", s.handleIndex)

	var h http.Handler = mux
	h = cors(s.cfg.CORSAllowedOrigins, h)
	h = logRequests(s.logger, h)
	h = withRequestID(h)
	return h
}

// --- Request/response shapes ---

type generateRequest struct {
	Topic string `json:"topic"`
	AsOf  string `json:"as_of"`
}

type generateResponse struct {
	Success       bool                  `json:"success"`
	Plan          *engine.Plan          `json:"plan"`
	Evidence      []engine.EvidenceItem `json:"evidence"`
	FinalMarkdown string                `json:"final_markdown"`
	ImageSpecs    []map[string]any      `json:"image_specs"`
	Mode          string                `json:"mode"`
	Error         string                `json:"error,omitempty"`
}

type blogContent struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// --- Handlers ---

// handleGenerate runs one full generation pass. The endpoint always answers
// 200: engine failures travel in the success/error fields, never as a
// transport error.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st := engine.NewState(req.Topic, req.AsOf)
	result, err := s.invoker.Invoke(r.Context(), st)
	if err != nil {
		s.logger.Error("generation failed", zap.String("topic", st.Topic), zap.Error(err))
		writeJSON(w, failedGeneration(err))
		return
	}

	plan := engine.ExtractPlan(result.Plan)
	evidence := engine.ExtractEvidence(result.Evidence)
	finalMD := engine.FinalMarkdown(result)

	if plan != nil && finalMD != "" {
		filename := store.Slug(plan.BlogTitle) + ".md"
		if err := s.blogs.Persist(filename, finalMD); err != nil {
			s.logger.Error("persist failed", zap.String("filename", filename), zap.Error(err))
			writeJSON(w, failedGeneration(err))
			return
		}
	}

	writeJSON(w, generateResponse{
		Success:       true,
		Plan:          plan,
		Evidence:      evidence,
		FinalMarkdown: finalMD,
		ImageSpecs:    engine.ImageSpecs(result),
		Mode:          result.Mode,
	})
}

func failedGeneration(err error) generateResponse {
	return generateResponse{
		Success:    false,
		Evidence:   []engine.EvidenceItem{},
		ImageSpecs: []map[string]any{},
		Error:      err.Error(),
	}
}

func (s *Server) handleBlogList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	blogs, err := s.blogs.List()
	if err != nil {
		s.logger.Error("listing failed", zap.Error(err))
		http.Error(w, "failed to list blogs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, blogs)
}

func (s *Server) handleBlogByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/blogs/")
	asHTML := false
	if strings.HasSuffix(name, "/html") {
		name = strings.TrimSuffix(name, "/html")
		asHTML = true
	}
	if name == "" {
		http.NotFound(w, r)
		return
	}

	content, err := s.blogs.Get(name)
	switch {
	case errors.Is(err, store.ErrInvalidName):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		s.logger.Error("read failed", zap.String("filename", name), zap.Error(err))
		http.Error(w, "failed to read blog", http.StatusInternalServerError)
		return
	}

	if asHTML {
		rendered, err := renderHTML(content)
		if err != nil {
			s.logger.Error("render failed", zap.String("filename", name), zap.Error(err))
			http.Error(w, "failed to render blog", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(rendered))
		return
	}
	writeJSON(w, blogContent{Filename: name, Content: content})
}

// handleIndex serves the configured static frontend when it exists and a
// plain notice otherwise.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}
	if s.cfg.StaticDir != "" {
		index := filepath.Join(s.cfg.StaticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			if r.URL.Path == "/" {
				http.ServeFile(w, r, index)
				return
			}
			http.FileServer(http.Dir(s.cfg.StaticDir)).ServeHTTP(w, r)
			return
		}
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<h1>Frontend not found. Please create frontend/index.html</h1>"))
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
