package browser_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"pathly/internal/adapters/backend"
	web "pathly/internal/adapters/http"
	"pathly/internal/adapters/http/middleware"
	"pathly/internal/adapters/storage"
	"pathly/internal/adapters/storage/sessioncache"
	"pathly/internal/config"
)

// stubAPI is an in-process stand-in for the Pathly REST backend. It
// accepts the two seeded accounts, serves canned content lists, and
// records admin writes so tests can assert what the portal sent.
type stubAPI struct {
	mu sync.Mutex

	Events      []map[string]any
	Internships []map[string]any
	NotePosts   int
	Deleted     []string
}

func (s *stubAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&in)
		role := ""
		switch {
		case in.Email == "admin@test.com" && in.Password == "TestPass123!":
			role = "admin"
		case in.Email == "student@test.com" && in.Password == "TestPass123!":
			role = "student"
		default:
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"_id":   role + "-1",
				"name":  "Test " + role,
				"email": in.Email,
				"role":  role,
			},
			"token": "stub-token-" + role,
		})
	})

	mux.HandleFunc("GET /notes", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []map[string]any{
			{"_id": "n1", "title": "Operating Systems", "subject": "OS", "semester": 3, "fileUrl": "https://files.test/os.pdf"},
		}})
	})
	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		seeded := []map[string]any{
			{"_id": "e1", "title": "Smash Hack", "category": "Hackathon", "date": time.Now().Add(72 * time.Hour).Format(time.RFC3339), "link": "https://events.test/smash"},
		}
		json.NewEncoder(w).Encode(append(seeded, s.Events...))
	})
	mux.HandleFunc("GET /internships", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		seeded := []map[string]any{
			{"_id": "i1", "role": "SDE Intern", "company": "Google", "techStack": []string{"Go", "React"}, "link": "https://jobs.test/1"},
		}
		json.NewEncoder(w).Encode(append(seeded, s.Internships...))
	})
	mux.HandleFunc("GET /resources", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "r1", "title": "Go by Example", "link": "https://gobyexample.com"},
		})
	})
	mux.HandleFunc("GET /dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{
			"notesAccessed":        12,
			"eventsTracked":        4,
			"internshipsAvailable": 7,
			"recentEvents":         []map[string]any{{"_id": "e1", "title": "Smash Hack"}},
		}})
	})

	mux.HandleFunc("POST /events", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		json.NewDecoder(r.Body).Decode(&in)
		// The real backend stores dates as full timestamps
		if d, ok := in["date"].(string); ok {
			if parsed, err := time.Parse("2006-01-02", d); err == nil {
				in["date"] = parsed.UTC().Format(time.RFC3339)
			}
		}
		s.mu.Lock()
		in["_id"] = fmt.Sprintf("e%d", len(s.Events)+100)
		s.Events = append(s.Events, in)
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	mux.HandleFunc("POST /internships", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		json.NewDecoder(r.Body).Decode(&in)
		s.mu.Lock()
		in["_id"] = fmt.Sprintf("i%d", len(s.Internships)+100)
		s.Internships = append(s.Internships, in)
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	mux.HandleFunc("POST /notes", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.NotePosts++
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	mux.HandleFunc("DELETE /", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.Deleted = append(s.Deleted, strings.TrimPrefix(r.URL.Path, "/"))
		s.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	return mux
}

// testApp holds the running portal, its stub backend, and Playwright handles.
type testApp struct {
	BaseURL string
	API     *stubAPI
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp wires the portal against a stub backend with a temp SQLite
// session cache and starts an HTTP server on a free port.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	api := &stubAPI{}
	apiSrv := httptest.NewServer(api.handler())
	t.Cleanup(apiSrv.Close)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to initialize test DB: %v", err)
	}
	timedDB := storage.NewTimedDB(db)
	cache := sessioncache.NewSQLiteStore(timedDB)

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	cfg := config.App{
		Env:          "development",
		Addr:         fmt.Sprintf("127.0.0.1:%d", port),
		APIBaseURL:   apiSrv.URL,
		DBPath:       dbPath,
		APITimeout:   10 * time.Second,
		RateLimitRPS: 1000,
	}
	mux := web.NewMux(cfg, "internal/adapters/http/static", &web.Deps{
		Backend: backend.New(cfg.APIBaseURL, cfg.APITimeout),
		Cache:   cache,
	})
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := "http://" + cfg.Addr
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Start Playwright
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		API:     api,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login navigates to the login page and signs in as the given role
// ("admin" or "student"), waiting for the dashboard redirect.
func (a *testApp) login(t *testing.T, page playwright.Page, role string) {
	t.Helper()
	_, err := page.Goto(a.BaseURL + "/login")
	if err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill(role + "@test.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("TestPass123!"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
