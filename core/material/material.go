package material

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
)

var (
	nowFunc = time.Now // mockable

	// AcceptedExtensions are the extensions the upload form offers. Anything else is stored anyway.
	AcceptedExtensions = []string{".pdf", ".docx", ".pptx"}

	// errors
	ErrNotFound = errors.New("file not found")
	ErrNoFiles  = errors.New("no files selected")
)

// FileRecord is the metadata of an uploaded course material. No content is stored.
type FileRecord struct {
	Name       string `json:"name"`
	UploadDate string `json:"uploadDate"` // ISO-8601, UTC
}

// UploadResult is what an upload records, plus advisory warnings about the names.
type UploadResult struct {
	Files    []FileRecord `json:"files"`
	Warnings []string     `json:"warnings"`
}

type (
	Repository interface {
		// QueryFiles returns a year group's file records in upload order.
		QueryFiles(ctx context.Context, yearGroup string) ([]FileRecord, error)
		AppendFiles(ctx context.Context, yearGroup string, files ...FileRecord) error
	}

	Service struct {
		repo     Repository
		notifier core.Notifier
	}
)

func NewService(repo Repository, notifier core.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// IsAccepted reports whether name has one of the AcceptedExtensions.
func IsAccepted(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range AcceptedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// RecordUpload stores one record per file name, all stamped with the current time, in the admin's year group.
func (svc *Service) RecordUpload(ctx context.Context, sess user.Session, names []string) (UploadResult, error) {
	if _, ok := sess.(user.AdminSession); !ok {
		return UploadResult{}, core.ErrPermissionDenied
	}

	uploadDate := nowFunc().UTC().Format("2006-01-02T15:04:05.000Z07:00")
	res := UploadResult{Files: make([]FileRecord, 0, len(names)), Warnings: make([]string, 0)}
	for _, name := range names {
		name = core.CleanString(name)
		if name == "" {
			continue
		}
		if !IsAccepted(name) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: expected one of %s", name, strings.Join(AcceptedExtensions, ", ")))
		}
		res.Files = append(res.Files, FileRecord{Name: name, UploadDate: uploadDate})
	}
	if len(res.Files) == 0 {
		return UploadResult{}, core.NewValidationError(ErrNoFiles, core.FieldError{Field: "names", Error: ErrNoFiles.Error()})
	}

	if err := svc.repo.AppendFiles(ctx, sess.YearGroup(), res.Files...); err != nil {
		return UploadResult{}, errors.Wrap(err, "appending file records")
	}
	svc.notifier.Notify(sess.YearGroup(), core.Ack{
		Kind:        "upload",
		Title:       "Files Uploaded",
		Description: fmt.Sprintf("%d file(s) uploaded successfully", len(res.Files)),
	})
	return res, nil
}

// Load returns the student's year group materials.
func (svc *Service) Load(ctx context.Context, sess user.Session) ([]FileRecord, error) {
	if _, ok := sess.(user.StudentSession); !ok {
		return nil, core.ErrPermissionDenied
	}
	return svc.query(ctx, sess.YearGroup())
}

// Count returns the number of materials of a year group, whatever the session.
func (svc *Service) Count(ctx context.Context, yearGroup string) (int, error) {
	files, err := svc.query(ctx, yearGroup)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// Download acknowledges a download request for one of the student's year group materials.
// There are no bytes to send: uploads only ever record names.
func (svc *Service) Download(ctx context.Context, sess user.Session, name string) (core.Ack, error) {
	files, err := svc.Load(ctx, sess)
	if err != nil {
		return core.Ack{}, err
	}
	for _, f := range files {
		if f.Name == name {
			ack := core.Ack{
				Kind:        "download",
				Title:       "Downloading",
				Description: fmt.Sprintf("Downloading %s...", f.Name),
			}
			svc.notifier.Notify(sess.Username(), ack)
			return ack, nil
		}
	}
	return core.Ack{}, ErrNotFound
}

func (svc *Service) query(ctx context.Context, yearGroup string) ([]FileRecord, error) {
	files, err := svc.repo.QueryFiles(ctx, yearGroup)
	if err != nil {
		return nil, errors.Wrap(err, "querying files")
	}
	return files, nil
}
