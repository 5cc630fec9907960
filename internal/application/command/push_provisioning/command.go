package push_provisioning

import "provpush/internal/domain/model"

// PushProvisioningCommand turns a form submission into an uploaded manifest.
type PushProvisioningCommand struct {
	// PushTime is the raw YYYY-MM-DD HH:MM value entered in the form.
	PushTime string
	Entries  []model.ProvisioningEntry
	// Result, when non-nil, is filled in on success.
	Result *PushResult
}

// PushResult describes a manifest that was uploaded.
type PushResult struct {
	Filename string
	Rows     int
}

// Name returns the name of the command
func (c PushProvisioningCommand) Name() string {
	return "PushProvisioning"
}
