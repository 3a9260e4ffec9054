// Package attachment manages uploaded file metadata. The bytes live in
// the blob store; the rows here are what purposes link to.
package attachment

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("file not found")
	ErrNameRequired = errors.New("file name is required")
)

type File struct {
	ID          int64
	Name        string
	Key         string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}
