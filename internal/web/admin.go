package web

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"atelier/internal/store"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && s.sessions.Valid(cookie.Value) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title":       "Sign in",
		"LoginFailed": r.URL.Query().Get("error") == "1",
		"CSRFToken":   s.ensureCSRFToken(w, r),
	}
	if err := s.renderer.Render(w, "login.html", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.parseFormWithCSRF(w, r) {
		return
	}

	req := loginRequest{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	if err := req.Validate(); err != nil {
		http.Redirect(w, r, "/admin/login?error=1", http.StatusSeeOther)
		return
	}

	if req.Email != s.cfg.AdminEmail || !s.cfg.CheckPassword(req.Password) {
		http.Redirect(w, r, "/admin/login?error=1", http.StatusSeeOther)
		return
	}

	value, err := s.sessions.Create(req.Email)
	if err != nil {
		s.httpError(w, "Internal server error", http.StatusInternalServerError, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.sessions.TTL().Seconds()),
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.Destroy(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		s.logger.Warn("listing posts", zap.Error(err))
		posts = nil
	}
	messages, err := s.store.ListMessages(ctx)
	if err != nil {
		s.logger.Warn("listing messages", zap.Error(err))
		messages = nil
	}

	var email string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if sess := s.sessions.Get(cookie.Value); sess != nil {
			email = sess.Email
		}
	}

	form := store.Post{}
	editing := false
	if slug := r.URL.Query().Get("edit"); slug != "" {
		if post, err := s.store.GetPost(ctx, slug); err == nil && post != nil {
			form = *post
			editing = true
		}
	}

	settings := s.siteSettings(r)
	query := r.URL.Query()
	data := map[string]any{
		"Title":      "Dashboard",
		"AdminEmail": email,
		"Status":     query.Get("status"),
		"Error":      query.Get("error"),
		"Editing":    editing,
		"Form":       form,
		"Posts":      posts,
		"Messages":   messages,
		"Settings":   settings,
		"SiteTheme":  settings["theme"],
		"SiteFont":   settings["font"],
		"CSRFToken":  s.ensureCSRFToken(w, r),
	}
	if err := s.renderer.Render(w, "admin.html", data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleSavePost(w http.ResponseWriter, r *http.Request) {
	if !s.parseFormWithCSRF(w, r) {
		return
	}

	form := postForm{
		Slug:    strings.TrimSpace(r.FormValue("slug")),
		Title:   strings.TrimSpace(r.FormValue("title")),
		Excerpt: strings.TrimSpace(r.FormValue("excerpt")),
		Content: r.FormValue("content"),
	}
	if err := form.Validate(); err != nil {
		http.Redirect(w, r, "/admin?error=missing", http.StatusSeeOther)
		return
	}

	if err := s.store.UpsertPost(r.Context(), form.Slug, form.Title, form.Excerpt, form.Content); err != nil {
		s.httpError(w, "Internal server error", http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/admin?status=saved", http.StatusSeeOther)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if !s.parseFormWithCSRF(w, r) {
		return
	}

	slug := strings.TrimSpace(r.FormValue("slug"))
	if slug == "" {
		http.Redirect(w, r, "/admin?error=missing", http.StatusSeeOther)
		return
	}

	if err := s.store.DeletePost(r.Context(), slug); err != nil {
		s.httpError(w, "Internal server error", http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/admin?status=deleted", http.StatusSeeOther)
}

// handleSaveSettings updates the site intro, theme and font. Theme and
// font values outside the known sets are dropped.
func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	if !s.parseFormWithCSRF(w, r) {
		return
	}

	ctx := r.Context()
	updates := map[string]string{
		"intro": strings.TrimSpace(r.FormValue("intro")),
	}
	if theme := r.FormValue("theme"); theme == "light" || theme == "dark" {
		updates["theme"] = theme
	}
	if font := r.FormValue("font"); font == "serif" || font == "sans" {
		updates["font"] = font
	}

	for key, value := range updates {
		if err := s.store.SetSetting(ctx, key, value); err != nil {
			s.httpError(w, "Internal server error", http.StatusInternalServerError, err)
			return
		}
	}

	http.Redirect(w, r, "/admin?status=saved", http.StatusSeeOther)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	if !s.parseFormWithCSRF(w, r) {
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteMessage(r.Context(), id); err != nil {
		s.httpError(w, "Internal server error", http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/admin?status=deleted", http.StatusSeeOther)
}
