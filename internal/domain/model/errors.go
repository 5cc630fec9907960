package model

import "errors"

var (
	// ErrInvalidTimestamp is returned when the push time is missing or not in
	// the YYYY-MM-DD HH:MM format.
	ErrInvalidTimestamp = errors.New("invalid push time")
	// ErrInvalidEntry is returned when a provisioning entry cannot be encoded.
	ErrInvalidEntry = errors.New("invalid provisioning entry")
	// ErrUploadFailed is returned for any failure while loading the key,
	// connecting, authenticating or transferring the file.
	ErrUploadFailed = errors.New("upload failed")
	// ErrFilesystem is returned when the local file cannot be reserved,
	// written or removed.
	ErrFilesystem = errors.New("filesystem error")
)
