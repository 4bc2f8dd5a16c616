package dto

import (
	"errors"
	"fmt"
	"mime/multipart"
)

// Custom errors
var (
	ErrNoFiles      = errors.New("at least one report file is required")
	ErrFileTooLarge = errors.New("report file exceeds the maximum allowed size")
)

// ExtractRequest represents an upload of one or more monthly reports
type ExtractRequest struct {
	Files []*multipart.FileHeader `form:"files[]" binding:"required"`
}

// Validate performs basic validation on the request
func (r *ExtractRequest) Validate(maxFileSize int64) error {
	if len(r.Files) == 0 {
		return ErrNoFiles
	}
	if maxFileSize <= 0 {
		return nil
	}
	for _, f := range r.Files {
		if f.Size > maxFileSize {
			return fmt.Errorf("%s: %w", f.Filename, ErrFileTooLarge)
		}
	}
	return nil
}
