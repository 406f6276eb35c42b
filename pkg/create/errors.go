package create

import "errors"

var (
	ErrDirNotEmpty      = errors.New("directory is not empty")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)
