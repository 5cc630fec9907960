package model

import (
	"net"
	"strconv"
)

// UploadTarget describes where generated files are delivered.
// It is fixed at startup and never mutated.
type UploadTarget struct {
	Host      string
	Port      int
	Username  string
	KeyPath   string
	RemoteDir string
}

// Address returns host:port suitable for dialing.
func (t UploadTarget) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}
