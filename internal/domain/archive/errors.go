package archive

import "errors"

// ErrArchiveNotFound indicates the archive doesn't exist.
var ErrArchiveNotFound = errors.New("archive not found")
