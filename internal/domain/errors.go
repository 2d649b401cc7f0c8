package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrIssueNotFound        = errors.New("issue not found")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("file upload to storage failed")
	ErrInvalidCategory      = errors.New("invalid invoice category")
	ErrInvalidStatusChange  = errors.New("invalid invoice status transition")
	ErrIssueAlreadyReviewed = errors.New("issue has already been reviewed")
	ErrInvalidIssueStatus   = errors.New("invalid issue review status")
	ErrInvoiceNotEditable   = errors.New("invoice is not editable in its current status")
	ErrInvalidSource        = errors.New("invalid invoice source")
)
