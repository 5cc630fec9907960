package command

import (
	"time"

	"provpush/internal/application/command/push_provisioning"
	"provpush/internal/domain/repository"
	"provpush/internal/domain/service/filename"
	"provpush/pkg/cqrs"
	"provpush/pkg/log"
)

// RegisterCommandHandlers registers every command handler on b.
func RegisterCommandHandlers(b cqrs.CommandBus, allocator *filename.Allocator, uploader repository.Uploader, location *time.Location) error {
	if err := b.Register(push_provisioning.NewPushProvisioningHandler(allocator, uploader, location)); err != nil {
		return log.Errorf("failed to register push provisioning handler: %w", err)
	}

	return nil
}
