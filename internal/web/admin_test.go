package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

// addCSRFToken adds a CSRF token to the request (cookie + form value).
func addCSRFToken(req *http.Request, form url.Values) {
	token := "test-csrf-token-12345"
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
	if form != nil {
		form.Set(csrfFieldName, token)
	}
}

// adminSession creates a live session and returns its cookie.
func adminSession(t *testing.T, s *Server) *http.Cookie {
	t.Helper()
	value, err := s.sessions.Create("admin@example.com")
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	return &http.Cookie{Name: sessionCookieName, Value: value}
}

func adminFormRequest(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.AddCookie(adminSession(t, s))
	addCSRFToken(req, form)
	req.Body = io.NopCloser(strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(s, req)
}

func TestAdmin_RedirectsWithoutSession(t *testing.T) {
	s := setupTestServer(t)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if w.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("expected redirect to /admin/login, got %q", loc)
	}
}

func TestAdmin_RedirectsWithBadCookie(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "forged.deadbeef"})
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("expected redirect to /admin/login, got %q", loc)
	}
}

func TestAdmin_WithSession(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(adminSession(t, s))
	w := doRequest(s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "Dashboard") {
		t.Error("expected dashboard page")
	}
	if !strings.Contains(body, "admin@example.com") {
		t.Error("expected signed-in email on dashboard")
	}
}

func TestDashboard_EditPrefill(t *testing.T) {
	s := setupTestServer(t)
	seedPost(t, s, "my-post", "My Post", "Original content")

	req := httptest.NewRequest(http.MethodGet, "/admin?edit=my-post", nil)
	req.AddCookie(adminSession(t, s))
	w := doRequest(s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, `value="my-post"`) {
		t.Error("expected slug to be prefilled")
	}
	if !strings.Contains(body, `value="My Post"`) {
		t.Error("expected title to be prefilled")
	}
	if !strings.Contains(body, "Original content") {
		t.Error("expected content to be prefilled")
	}
	if !strings.Contains(body, "Edit post") {
		t.Error("expected editor heading to switch to edit mode")
	}
}

func TestLoginForm(t *testing.T) {
	s := setupTestServer(t)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Sign in") {
		t.Error("expected login form in response")
	}

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == csrfCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected CSRF cookie to be set")
	}
}

func TestLoginForm_FailedFlag(t *testing.T) {
	s := setupTestServer(t)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/admin/login?error=1", nil))

	if !strings.Contains(w.Body.String(), "Wrong email or password.") {
		t.Error("expected failure flash")
	}
}

func TestLoginForm_RedirectsWhenSignedIn(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req.AddCookie(adminSession(t, s))
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Errorf("expected redirect to /admin, got %q", loc)
	}
}

func TestLogin_Success(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("email", "admin@example.com")
	form.Set("password", "password")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	addCSRFToken(req, form)
	req.Body = io.NopCloser(strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Errorf("expected redirect to /admin, got %q", loc)
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("expected session cookie to be set")
	}
	if !s.sessions.Valid(sessionCookie.Value) {
		t.Error("expected cookie to reference a live session")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("email", "admin@example.com")
	form.Set("password", "wrongpassword")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	addCSRFToken(req, form)
	req.Body = io.NopCloser(strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login?error=1" {
		t.Errorf("expected redirect to '/admin/login?error=1', got %q", loc)
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			t.Error("expected no session cookie on failed login")
		}
	}
}

func TestLogin_MissingFields(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("email", "admin@example.com")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	addCSRFToken(req, form)
	req.Body = io.NopCloser(strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login?error=1" {
		t.Errorf("expected redirect to '/admin/login?error=1', got %q", loc)
	}
}

func TestLogin_NoCSRF(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("email", "admin@example.com")
	form.Set("password", "password")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := doRequest(s, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestLogout(t *testing.T) {
	s := setupTestServer(t)
	cookie := adminSession(t, s)

	req := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	req.AddCookie(cookie)
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to '/', got %q", loc)
	}

	if s.sessions.Valid(cookie.Value) {
		t.Error("expected session to be destroyed after logout")
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge >= 0 {
			t.Error("expected session cookie to be cleared")
		}
	}
}

func TestSavePost(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("slug", "new-post")
	form.Set("title", "New Post")
	form.Set("excerpt", "Short intro")
	form.Set("content", "Full content here")

	w := adminFormRequest(t, s, "/admin/posts", form)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin?status=saved" {
		t.Errorf("expected redirect to '/admin?status=saved', got %q", loc)
	}

	post, err := s.store.GetPost(context.Background(), "new-post")
	if err != nil {
		t.Fatalf("fetching post: %v", err)
	}
	if post == nil {
		t.Fatal("expected post to be created")
	}
	if post.Title != "New Post" {
		t.Errorf("expected title 'New Post', got %q", post.Title)
	}
}

func TestSavePost_UpsertsBySlug(t *testing.T) {
	s := setupTestServer(t)
	seedPost(t, s, "my-post", "Original", "Original content")

	form := url.Values{}
	form.Set("slug", "my-post")
	form.Set("title", "Updated")
	form.Set("content", "Updated content")

	w := adminFormRequest(t, s, "/admin/posts", form)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}

	posts, err := s.store.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("listing posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post after upsert, got %d", len(posts))
	}
	if posts[0].Title != "Updated" {
		t.Errorf("expected title 'Updated', got %q", posts[0].Title)
	}
}

func TestSavePost_MissingFields(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("slug", "incomplete")

	w := adminFormRequest(t, s, "/admin/posts", form)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin?error=missing" {
		t.Errorf("expected redirect to '/admin?error=missing', got %q", loc)
	}

	post, _ := s.store.GetPost(context.Background(), "incomplete")
	if post != nil {
		t.Error("expected nothing to be stored")
	}
}

func TestSavePost_RequiresCSRF(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("slug", "new-post")
	form.Set("title", "New Post")
	form.Set("content", "Content")

	req := httptest.NewRequest(http.MethodPost, "/admin/posts", strings.NewReader(form.Encode()))
	req.AddCookie(adminSession(t, s))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := doRequest(s, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestSavePost_RequiresSession(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("slug", "new-post")
	form.Set("title", "New Post")
	form.Set("content", "Content")

	req := httptest.NewRequest(http.MethodPost, "/admin/posts", nil)
	addCSRFToken(req, form)
	req.Body = io.NopCloser(strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("expected redirect to /admin/login, got %q", loc)
	}

	post, _ := s.store.GetPost(context.Background(), "new-post")
	if post != nil {
		t.Error("expected nothing to be stored without a session")
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestServer(t)
	seedPost(t, s, "doomed", "Doomed", "Content")

	form := url.Values{}
	form.Set("slug", "doomed")

	w := adminFormRequest(t, s, "/admin/posts/delete", form)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin?status=deleted" {
		t.Errorf("expected redirect to '/admin?status=deleted', got %q", loc)
	}

	post, _ := s.store.GetPost(context.Background(), "doomed")
	if post != nil {
		t.Error("expected post to be deleted")
	}
}

func TestDeletePost_MissingSlug(t *testing.T) {
	s := setupTestServer(t)

	w := adminFormRequest(t, s, "/admin/posts/delete", url.Values{})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin?error=missing" {
		t.Errorf("expected redirect to '/admin?error=missing', got %q", loc)
	}
}

func TestDeletePost_NonexistentSlug(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("slug", "never-existed")

	w := adminFormRequest(t, s, "/admin/posts/delete", form)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin?status=deleted" {
		t.Errorf("expected delete of missing slug to be a no-op redirect, got %q", loc)
	}
}

func TestDeleteMessage(t *testing.T) {
	s := setupTestServer(t)

	id, err := s.store.InsertMessage(context.Background(), "Ada", "ada@example.com", "Hello")
	if err != nil {
		t.Fatalf("seeding message: %v", err)
	}

	form := url.Values{}
	form.Set("id", strconv.FormatInt(id, 10))

	w := adminFormRequest(t, s, "/admin/messages/delete", form)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}

	messages, _ := s.store.ListMessages(context.Background())
	if len(messages) != 0 {
		t.Errorf("expected message to be deleted, %d remain", len(messages))
	}
}

func TestDeleteMessage_BadID(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("id", "not-a-number")

	w := adminFormRequest(t, s, "/admin/messages/delete", form)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestSaveSettings(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("intro", "Updated intro text")
	form.Set("theme", "dark")
	form.Set("font", "sans")

	w := adminFormRequest(t, s, "/admin/settings", form)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin?status=saved" {
		t.Errorf("expected redirect to /admin?status=saved, got %q", loc)
	}

	ctx := context.Background()
	for key, want := range map[string]string{
		"intro": "Updated intro text",
		"theme": "dark",
		"font":  "sans",
	} {
		got, err := s.store.Setting(ctx, key)
		if err != nil {
			t.Fatalf("getting setting %s: %v", key, err)
		}
		if got != want {
			t.Errorf("expected setting %s to be %q, got %q", key, want, got)
		}
	}
}

func TestSaveSettings_InvalidThemeIgnored(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	if err := s.store.SetSetting(ctx, "theme", "light"); err != nil {
		t.Fatalf("setting theme: %v", err)
	}

	form := url.Values{}
	form.Set("intro", "hello")
	form.Set("theme", "neon")
	form.Set("font", "comic-sans")

	w := adminFormRequest(t, s, "/admin/settings", form)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}

	theme, err := s.store.Setting(ctx, "theme")
	if err != nil {
		t.Fatalf("getting theme: %v", err)
	}
	if theme != "light" {
		t.Errorf("expected unknown theme to be dropped, got %q", theme)
	}
	font, err := s.store.Setting(ctx, "font")
	if err != nil {
		t.Fatalf("getting font: %v", err)
	}
	if font != "" {
		t.Errorf("expected unknown font to be dropped, got %q", font)
	}
}

func TestSaveSettings_RequiresCSRF(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("intro", "no token")

	req := httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader(form.Encode()))
	req.AddCookie(adminSession(t, s))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := doRequest(s, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestSaveSettings_RequiresSession(t *testing.T) {
	s := setupTestServer(t)

	form := url.Values{}
	form.Set("intro", "drive-by")

	req := httptest.NewRequest(http.MethodPost, "/admin/settings", nil)
	addCSRFToken(req, form)
	req.Body = io.NopCloser(strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := doRequest(s, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("expected redirect to /admin/login, got %q", loc)
	}

	intro, err := s.store.Setting(context.Background(), "intro")
	if err != nil {
		t.Fatalf("getting intro: %v", err)
	}
	if intro == "drive-by" {
		t.Error("expected intro not to be saved without a session")
	}
}

func TestDashboard_ShowsSettingsForm(t *testing.T) {
	s := setupTestServer(t)

	if err := s.store.SetSetting(context.Background(), "intro", "Prefilled intro"); err != nil {
		t.Fatalf("setting intro: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(adminSession(t, s))
	w := doRequest(s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Site settings") {
		t.Error("expected dashboard to contain the settings section")
	}
	if !strings.Contains(body, "Prefilled intro") {
		t.Error("expected dashboard to prefill the stored intro")
	}
}
