package sftp

import (
	"fmt"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	log "provpush/pkg/log"
)

// HostKeyCallback returns a callback that checks server keys against the
// known_hosts file at path. An empty path disables verification.
func HostKeyCallback(path string) (ssh.HostKeyCallback, error) {
	if path == "" {
		log.Warn("SFTP host key verification disabled; set SFTP_KNOWN_HOSTS to enable it")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts %s: %w", path, err)
	}
	return cb, nil
}
