package model

// ProvisioningEntry is a single app push instruction for one terminal.
type ProvisioningEntry struct {
	TID         string
	Package     string
	Version     string
	ForceUpdate bool
}
