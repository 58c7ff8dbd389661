package web

import (
	"net/http"

	"pathly/internal/adapters/http/middleware"
	"pathly/internal/application/orchestrators"
)

// handleProfile renders the account page.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	renderTemplate(w, r, "profile.html", map[string]any{
		"Session": sess,
		"Success": r.URL.Query().Get("ok"),
	})
}

// handleChangePassword forwards a password change to the backend.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.ChangePasswordInput{
		CurrentPassword: r.FormValue("currentPassword"),
		NewPassword:     r.FormValue("newPassword"),
		ConfirmPassword: r.FormValue("confirmPassword"),
	}
	err := orchestrators.ExecuteChangePassword(r.Context(), input, orchestrators.ChangePasswordDeps{
		Gateway: authedBackend(r),
	})
	if err != nil {
		sess, _ := middleware.GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "profile.html", map[string]any{
			"Session":       sess,
			"PasswordError": err.Error(),
		})
		return
	}

	http.Redirect(w, r, "/profile?ok=password", http.StatusSeeOther)
}

// maxProfilePicBytes caps avatar uploads at 5 MB.
const maxProfilePicBytes = 5 << 20

// handleProfilePic uploads a new avatar and refreshes the session.
func handleProfilePic(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxProfilePicBytes); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	sess, _ := middleware.GetSessionFromContext(r.Context())
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("profilePic")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "profile.html", map[string]any{
			"Session":      sess,
			"PictureError": orchestrators.ErrMissingProfilePic.Error(),
		})
		return
	}
	defer file.Close()

	input := orchestrators.UpdateProfilePicInput{
		Cookie:   cookie.Value,
		Session:  sess,
		Filename: header.Filename,
		File:     file,
	}
	_, err = orchestrators.ExecuteUpdateProfilePic(r.Context(), input, orchestrators.UpdateProfilePicDeps{
		Gateway:  authedBackend(r),
		Sessions: sessions,
		Cache:    deps.Cache,
	})
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "profile.html", map[string]any{
			"Session":      sess,
			"PictureError": err.Error(),
		})
		return
	}

	http.Redirect(w, r, "/profile?ok=picture", http.StatusSeeOther)
}
