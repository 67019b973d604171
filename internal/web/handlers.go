package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts(r.Context())
	if err != nil {
		// Read paths degrade to an empty page rather than failing.
		s.logger.Warn("listing posts", zap.Error(err))
		posts = nil
	}

	settings := s.siteSettings(r)
	data := map[string]any{
		"Title":       "Home",
		"Posts":       posts,
		"Intro":       settings["intro"],
		"SiteTheme":   settings["theme"],
		"SiteFont":    settings["font"],
		"ContactSent": r.URL.Query().Get("contact") == "sent",
	}
	if err := s.renderer.Render(w, "home.html", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// siteSettings loads the stored site settings. Pages still render when
// the read fails, just without intro or theme.
func (s *Server) siteSettings(r *http.Request) map[string]string {
	settings, err := s.store.Settings(r.Context())
	if err != nil {
		s.logger.Warn("loading settings", zap.Error(err))
		return map[string]string{}
	}
	return settings
}

func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := s.store.GetPost(r.Context(), slug)
	if err != nil {
		s.httpError(w, "Internal server error", http.StatusInternalServerError, err)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	settings := s.siteSettings(r)
	data := map[string]any{
		"Title":     post.Title,
		"Post":      post,
		"SiteTheme": settings["theme"],
		"SiteFont":  settings["font"],
	}
	if err := s.renderer.Render(w, "post.html", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleContact accepts both JSON bodies and plain form posts from the
// home page. JSON callers get the new message id back; form posts land
// back on the home page with a confirmation flag.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		s.contactJSON(w, r)
		return
	}
	s.contactForm(w, r)
}

func (s *Server) contactJSON(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, map[string]string{"error": "malformed request body"}, http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		respondJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	id, err := s.store.InsertMessage(r.Context(), req.Name, req.Email, req.Body)
	if err != nil {
		s.httpError(w, "Failed to save message", http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, map[string]int64{"id": id}, http.StatusCreated)
}

func (s *Server) contactForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	req := contactRequest{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
		Body:  strings.TrimSpace(r.FormValue("body")),
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.store.InsertMessage(r.Context(), req.Name, req.Email, req.Body); err != nil {
		s.httpError(w, "Failed to save message", http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/?contact=sent", http.StatusSeeOther)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.httpError(w, "store unavailable", http.StatusServiceUnavailable, err)
		return
	}
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
