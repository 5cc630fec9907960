package repository

import "context"

// Uploader delivers a local file to the remote drop directory under the same
// base name.
type Uploader interface {
	Upload(ctx context.Context, localPath string) error
}
