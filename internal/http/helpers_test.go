package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"handmade/internal/http/handlers"
	applog "handmade/internal/log"
	"handmade/internal/repos"
	"handmade/internal/services"
)

// flakyGateway fails mutations on demand and otherwise defers to the real
// sqlite gateway.
type flakyGateway struct {
	repos.Gateway
	insertErr error
	deleteErr error
}

func (g *flakyGateway) Insert(ctx context.Context, table string, row map[string]any) error {
	if g.insertErr != nil {
		return g.insertErr
	}
	return g.Gateway.Insert(ctx, table, row)
}

func (g *flakyGateway) Delete(ctx context.Context, table string, filters ...repos.Filter) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	return g.Gateway.Delete(ctx, table, filters...)
}

type harness struct {
	t       *testing.T
	app     *fiber.App
	gw      *flakyGateway
	sync    *services.SyncService
	cookies map[string]string
}

type harnessOpts struct {
	skipRefresh bool
	loginMax    int
}

func newHarness(t *testing.T, opts harnessOpts) *harness {
	t.Helper()
	applog.SetOutput(io.Discard)

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.SeedIfEmpty(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	gw := &flakyGateway{Gateway: repos.NewSQLGateway(db)}
	syncSvc := services.NewSyncService(repos.NewProductRepo(gw), repos.NewInquiryRepo(gw))
	if !opts.skipRefresh {
		if err := syncSvc.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh: %v", err)
		}
	}
	auth, err := services.NewAuthService(services.AdminSecret)
	if err != nil {
		t.Fatal(err)
	}
	if opts.loginMax == 0 {
		opts.loginMax = 100
	}
	deps := handlers.NewDeps(syncSvc, auth, session.New())
	app := handlers.NewApp(deps, handlers.AppConfig{LoginMax: opts.loginMax, AccessLog: io.Discard})

	return &harness{t: t, app: app, gw: gw, sync: syncSvc, cookies: map[string]string{}}
}

func (h *harness) do(method, target string, form url.Values) *http.Response {
	h.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for name, value := range h.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	resp, err := h.app.Test(req, -1)
	if err != nil {
		h.t.Fatalf("%s %s: %v", method, target, err)
	}
	for _, c := range resp.Cookies() {
		if c.Value == "" || c.MaxAge < 0 {
			delete(h.cookies, c.Name)
			continue
		}
		h.cookies[c.Name] = c.Value
	}
	return resp
}

// page fetches "/" and returns the rendered body.
func (h *harness) page() string {
	h.t.Helper()
	resp := h.do(http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		h.t.Fatalf("GET / status %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

// post submits a form with the current CSRF token. The first call primes
// the session and token with a GET.
func (h *harness) post(target string, form url.Values) *http.Response {
	h.t.Helper()
	if h.cookies["csrf_"] == "" {
		h.page()
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", h.cookies["csrf_"])
	return h.do(http.MethodPost, target, form)
}

// act posts and expects the redirect back to "/".
func (h *harness) act(target string, form url.Values) {
	h.t.Helper()
	resp := h.post(target, form)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		b, _ := io.ReadAll(resp.Body)
		h.t.Fatalf("POST %s: status %d location %q body %s", target, resp.StatusCode, resp.Header.Get("Location"), b)
	}
}

func (h *harness) login() {
	h.t.Helper()
	h.act("/nav/admin", nil)
	h.act("/admin/login", url.Values{"password": {services.AdminSecret}})
}

func mustContain(t *testing.T, body string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(body, p) {
			t.Fatalf("body missing %q:\n%s", p, body)
		}
	}
}

func mustNotContain(t *testing.T, body string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if strings.Contains(body, p) {
			t.Fatalf("body unexpectedly contains %q:\n%s", p, body)
		}
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Path   string         `json:"path"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.buf.Write(p)
}

// captureLogs runs fn with the app logger pointed at a buffer.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	lw := &lockedWriter{}
	applog.SetOutput(lw)
	defer applog.SetOutput(io.Discard)

	fn()

	lw.mu.Lock()
	defer lw.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(lw.buf.String()), "\n") {
		var e logEntry
		if json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
