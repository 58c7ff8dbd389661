package orchestrators

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"pathly/internal/adapters/backend"
	"pathly/internal/domain/event"
	"pathly/internal/domain/internship"
	"pathly/internal/domain/note"
)

// UploadGateway defines the backend surface needed by the upload
// orchestrators. Every write goes through the admin's authed client; the
// backend re-checks the role.
type UploadGateway interface {
	CreateNote(ctx context.Context, in backend.NoteUpload) error
	CreateEvent(ctx context.Context, in backend.EventUpload) error
	CreateInternship(ctx context.Context, in backend.InternshipUpload) error
}

// UploadDeps holds dependencies for the upload orchestrators.
type UploadDeps struct {
	Gateway UploadGateway
}

// Note upload errors
var (
	ErrNoteTitleRequired    = errors.New("note title is required")
	ErrNoteSubjectRequired  = errors.New("note subject is required")
	ErrNoteSemesterInvalid  = errors.New("semester must be between 1 and 8")
	ErrNoteFileRequired     = errors.New("choose a file to upload")
	ErrEventDateUnparseable = errors.New("event date must be YYYY-MM-DD")
)

// UploadNoteInput carries the notes tab of the admin upload form.
type UploadNoteInput struct {
	Title       string
	Description string
	Subject     string
	Semester    string
	Filename    string
	File        io.Reader
}

// ExecuteUploadNote validates the notes form and posts it as multipart.
// PRE: input comes from an admin session's form submission
// POST: Exactly one create call reaches the backend, or none on error
func ExecuteUploadNote(ctx context.Context, input UploadNoteInput, deps UploadDeps) error {
	if input.Title == "" {
		return ErrNoteTitleRequired
	}
	if input.Subject == "" {
		return ErrNoteSubjectRequired
	}
	sem, err := strconv.Atoi(input.Semester)
	if err != nil || sem < note.MinSemester || sem > note.MaxSemester {
		return ErrNoteSemesterInvalid
	}
	if input.File == nil || input.Filename == "" {
		return ErrNoteFileRequired
	}

	if err := deps.Gateway.CreateNote(ctx, backend.NoteUpload{
		Title:       input.Title,
		Description: input.Description,
		Subject:     input.Subject,
		Semester:    input.Semester,
		FileName:    input.Filename,
		File:        input.File,
	}); err != nil {
		return err
	}
	slog.Info("content_event", "event", "note_uploaded", "title", input.Title, "semester", sem)
	return nil
}

// UploadEventInput carries the events tab of the admin upload form.
type UploadEventInput struct {
	Title       string
	Date        string
	Category    string
	Link        string
	Description string
}

// ExecuteUploadEvent validates the events form and posts it as JSON.
func ExecuteUploadEvent(ctx context.Context, input UploadEventInput, deps UploadDeps) error {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		if input.Date == "" {
			return event.ErrMissingDate
		}
		return ErrEventDateUnparseable
	}
	if err := event.ValidateUpload(input.Title, input.Category, input.Link, date); err != nil {
		return err
	}

	if err := deps.Gateway.CreateEvent(ctx, backend.EventUpload{
		Title:       input.Title,
		Date:        input.Date,
		Category:    input.Category,
		Link:        input.Link,
		Description: input.Description,
	}); err != nil {
		return err
	}
	slog.Info("content_event", "event", "event_uploaded", "title", input.Title, "category", input.Category)
	return nil
}

// UploadInternshipInput carries the internships tab of the admin upload form.
type UploadInternshipInput struct {
	Role        string
	Company     string
	TechStack   string
	Link        string
	Description string
	Tips        string
}

// ExecuteUploadInternship validates the internships form and posts it as JSON.
func ExecuteUploadInternship(ctx context.Context, input UploadInternshipInput, deps UploadDeps) error {
	if err := internship.ValidateUpload(input.Role, input.Company, input.TechStack, input.Link); err != nil {
		return err
	}

	if err := deps.Gateway.CreateInternship(ctx, backend.InternshipUpload{
		Role:        input.Role,
		Company:     input.Company,
		TechStack:   internship.ParseTechStack(input.TechStack),
		Link:        input.Link,
		Description: input.Description,
		Tips:        input.Tips,
	}); err != nil {
		return err
	}
	slog.Info("content_event", "event", "internship_uploaded", "role", input.Role, "company", input.Company)
	return nil
}
