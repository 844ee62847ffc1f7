package domain

import (
	"context"
	"io"
)

const (
	MimeTypePDF  = "application/pdf"
	MimeTypeDOC  = "application/msword"
	MimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ResumeExtensions maps the accepted resume content types to file extensions.
var ResumeExtensions = map[string]string{
	MimeTypePDF:  ".pdf",
	MimeTypeDOC:  ".doc",
	MimeTypeDOCX: ".docx",
}

type Resume struct {
	Content     io.ReadCloser
	Size        int64
	ContentType string
}

// PendingResume is a checked and written resume file that is not yet
// attached to its owner.
type PendingResume struct {
	UserID      int64
	Path        string
	ContentType string
	Size        int64
}

type ResumeService interface {
	StoreResume(ctx context.Context, userID int64, content io.Reader, declaredType string) (*User, error)
	// PrepareResume checks and writes the file without touching the user.
	// The result must be passed to CommitResume or DiscardResume.
	PrepareResume(ctx context.Context, userID int64, content io.Reader, declaredType string) (*PendingResume, error)
	CommitResume(ctx context.Context, pending *PendingResume) (*User, error)
	DiscardResume(ctx context.Context, pending *PendingResume)
	OpenResume(ctx context.Context, userID int64) (*Resume, error)
}
