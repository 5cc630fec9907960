package push_provisioning

import (
	"context"
	"fmt"
	"time"

	"provpush/internal/domain/model"
	"provpush/internal/domain/repository"
	"provpush/internal/domain/service/filename"
	"provpush/internal/domain/service/manifest"
	"provpush/pkg/files"
	log "provpush/pkg/log"
)

// PushProvisioningHandler handles the PushProvisioningCommand
type PushProvisioningHandler struct {
	allocator *filename.Allocator
	uploader  repository.Uploader
	location  *time.Location
}

// Handle encodes the entries, stages them under a unique name and uploads the
// file. The local copy is removed once the upload succeeds and kept otherwise.
func (h *PushProvisioningHandler) Handle(ctx context.Context, cmd PushProvisioningCommand) error {
	pushTime, err := model.ParsePushTime(cmd.PushTime, h.location)
	if err != nil {
		return err
	}

	content, err := manifest.Encode(cmd.Entries)
	if err != nil {
		return err
	}

	name, err := h.allocator.Allocate(pushTime)
	if err != nil {
		return err
	}
	localPath := h.allocator.Path(name)

	if err := files.WriteFile(localPath, content); err != nil {
		if rmErr := files.Remove(localPath); rmErr != nil {
			log.Warn("Failed to release reserved manifest name", "file", name, "error", rmErr)
		}
		return fmt.Errorf("%w: %v", model.ErrFilesystem, err)
	}
	log.Info("Manifest written", "file", name, "rows", len(cmd.Entries), "push_time", model.FormatPushTime(pushTime, h.location))

	if err := h.uploader.Upload(ctx, localPath); err != nil {
		log.Error("Manifest kept locally after failed upload", "path", localPath)
		return err
	}

	if err := files.Remove(localPath); err != nil {
		return fmt.Errorf("%w: uploaded %s but could not remove local copy: %v", model.ErrFilesystem, name, err)
	}

	log.Info("Manifest uploaded", "file", name, "rows", len(cmd.Entries))
	if cmd.Result != nil {
		*cmd.Result = PushResult{Filename: name, Rows: len(cmd.Entries)}
	}
	return nil
}

// NewPushProvisioningHandler creates a new PushProvisioningHandler. Push
// times are interpreted in location.
func NewPushProvisioningHandler(allocator *filename.Allocator, uploader repository.Uploader, location *time.Location) *PushProvisioningHandler {
	return &PushProvisioningHandler{
		allocator: allocator,
		uploader:  uploader,
		location:  location,
	}
}
