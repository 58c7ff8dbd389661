package web

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"pathly/internal/adapters/http/middleware"
	"pathly/internal/application/orchestrators"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

const templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	name := ""
	picURL := ""
	if ok {
		role = sess.Role
		name = sess.Name
		picURL = sess.ProfilePicURL
	}

	funcMap := template.FuncMap{
		"currentRole": func() string { return role },
		"currentName": func() string { return name },
		"profilePic":  func() string { return picURL },
		"isLoggedIn":  func() bool { return ok },
		"isAdmin":     func() bool { return ok && sess.IsAdmin() },
		"csrfToken":   func() string { return csrf.Token(r) },
		"list":        func(items ...string) []string { return items },
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		internalError(w, err)
		return
	}
}

// registerRoutes attaches all page handlers to the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/signup", handleSignup)
	mux.HandleFunc("/logout", handleLogout)

	mux.Handle("/dashboard", middleware.RequireAuth(http.HandlerFunc(handleDashboard)))
	mux.Handle("/notes", middleware.RequireAuth(http.HandlerFunc(handleNotes)))
	mux.Handle("/events", middleware.RequireAuth(http.HandlerFunc(handleEvents)))
	mux.Handle("/internships", middleware.RequireAuth(http.HandlerFunc(handleInternships)))
	mux.Handle("/resources", middleware.RequireAuth(http.HandlerFunc(handleResources)))

	mux.Handle("/profile", middleware.RequireAuth(http.HandlerFunc(handleProfile)))
	mux.Handle("/profile/password", middleware.RequireAuth(http.HandlerFunc(handleChangePassword)))
	mux.Handle("/profile/picture", middleware.RequireAuth(http.HandlerFunc(handleProfilePic)))

	mux.Handle("/admin/upload", middleware.RequireAdmin(http.HandlerFunc(handleAdminUpload)))
	mux.Handle("/admin/manage", middleware.RequireAdmin(http.HandlerFunc(handleManageContent)))
	mux.Handle("/admin/manage/delete", middleware.RequireAdmin(http.HandlerFunc(handleDeleteContent)))
}

// handleHome renders the landing page. Unknown paths fall back here so a
// stale bookmark never produces a bare 404 page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if middleware.IsLoggedIn(r.Context()) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "home.html", nil)
}

// handleLogin handles GET (form) and POST (credential exchange).
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if middleware.IsLoggedIn(r.Context()) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, r, "login.html", map[string]any{})
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.LoginInput{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		Gateway:  deps.Backend,
		Sessions: sessions,
		Cache:    deps.Cache,
	})
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": err.Error(),
			"Email": input.Email,
		})
		return
	}

	middleware.SetSessionCookie(w, result.Cookie)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleSignup handles GET (form) and POST (account creation).
func handleSignup(w http.ResponseWriter, r *http.Request) {
	if middleware.IsLoggedIn(r.Context()) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, r, "signup.html", map[string]any{})
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.RegisterInput{
		Name:           r.FormValue("name"),
		Email:          r.FormValue("email"),
		Password:       r.FormValue("password"),
		College:        r.FormValue("college"),
		Branch:         r.FormValue("branch"),
		GraduationYear: r.FormValue("graduationYear"),
	}
	result, err := orchestrators.ExecuteRegister(r.Context(), input, orchestrators.RegisterDeps{
		Gateway:  deps.Backend,
		Sessions: sessions,
		Cache:    deps.Cache,
	})
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "signup.html", map[string]any{
			"Error": err.Error(),
			"Form":  input,
		})
		return
	}

	middleware.SetSessionCookie(w, result.Cookie)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout destroys the session and returns to the login page.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		orchestrators.ExecuteLogout(r.Context(), cookie.Value, orchestrators.LogoutDeps{
			Sessions: sessions,
			Cache:    deps.Cache,
		})
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
