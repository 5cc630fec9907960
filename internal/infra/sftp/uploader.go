// Package sftp delivers generated manifests to the remote drop directory over
// SFTP, authenticating with a private key.
package sftp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path"
	"path/filepath"
	"time"

	pkgsftp "github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"provpush/internal/domain/model"
	log "provpush/pkg/log"
)

// DefaultTimeout bounds a whole upload when Options.Timeout is not set.
const DefaultTimeout = 30 * time.Second

// Options tune an Uploader.
type Options struct {
	// Timeout bounds connect, handshake and transfer together.
	Timeout time.Duration
	// Passphrase decrypts the private key, if it is encrypted.
	Passphrase string
	// HostKeyCallback verifies the server host key. Nil accepts any key.
	HostKeyCallback ssh.HostKeyCallback
}

// Uploader pushes files to a fixed UploadTarget. A new SSH connection is
// opened for every upload and closed before Upload returns.
type Uploader struct {
	target model.UploadTarget
	opts   Options
}

// NewUploader returns an Uploader for target.
func NewUploader(target model.UploadTarget, opts Options) *Uploader {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HostKeyCallback == nil {
		opts.HostKeyCallback = ssh.InsecureIgnoreHostKey()
	}
	return &Uploader{target: target, opts: opts}
}

// Upload copies localPath to <RemoteDir>/<base name of localPath>. Every
// failure is reported as model.ErrUploadFailed; nothing is retried.
func (u *Uploader) Upload(ctx context.Context, localPath string) error {
	start := time.Now()
	if err := u.upload(ctx, localPath); err != nil {
		log.Error("SFTP upload failed",
			"file", filepath.Base(localPath),
			"host", u.target.Address(),
			"error", err,
		)
		return fmt.Errorf("%w: %w", model.ErrUploadFailed, err)
	}
	log.Debug("SFTP upload completed",
		"file", filepath.Base(localPath),
		"host", u.target.Address(),
		"duration", time.Since(start).String(),
	)
	return nil
}

func (u *Uploader) upload(ctx context.Context, localPath string) error {
	ctx, cancel := context.WithTimeout(ctx, u.opts.Timeout)
	defer cancel()

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer src.Close()

	signer, err := u.loadSigner()
	if err != nil {
		return err
	}

	client, stop, err := u.dial(ctx, signer)
	if err != nil {
		return withContext(ctx, err)
	}
	defer stop()
	defer client.Close()

	session, err := pkgsftp.NewClient(client)
	if err != nil {
		return withContext(ctx, fmt.Errorf("failed to open sftp session: %w", err))
	}
	defer session.Close()

	remotePath := path.Join(u.target.RemoteDir, filepath.Base(localPath))
	dst, err := session.Create(remotePath)
	if err != nil {
		return withContext(ctx, fmt.Errorf("failed to create remote file %s: %w", remotePath, err))
	}
	if _, err := dst.ReadFrom(src); err != nil {
		dst.Close()
		return withContext(ctx, fmt.Errorf("failed to write remote file %s: %w", remotePath, err))
	}
	if err := dst.Close(); err != nil {
		return withContext(ctx, fmt.Errorf("failed to close remote file %s: %w", remotePath, err))
	}
	return nil
}

// dial connects and authenticates. The returned stop func detaches the
// connection from ctx; until it is called, ctx ending closes the connection.
func (u *Uploader) dial(ctx context.Context, signer ssh.Signer) (*ssh.Client, func() bool, error) {
	addr := u.target.Address()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

	config := &ssh.ClientConfig{
		User:            u.target.Username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: u.opts.HostKeyCallback,
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		stop()
		conn.Close()
		return nil, nil, fmt.Errorf("ssh handshake with %s failed: %w", addr, err)
	}
	return ssh.NewClient(c, chans, reqs), stop, nil
}

func (u *Uploader) loadSigner() (ssh.Signer, error) {
	pemBytes, err := os.ReadFile(u.target.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	return ParsePrivateKey(pemBytes, u.opts.Passphrase)
}

// ParsePrivateKey parses a PEM or OpenSSH encoded private key of any type the
// ssh package supports.
func ParsePrivateKey(pemBytes []byte, passphrase string) (ssh.Signer, error) {
	if passphrase != "" {
		signer, err := ssh.ParsePrivateKeyWithPassphrase(pemBytes, []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("failed to parse encrypted private key: %w", err)
		}
		return signer, nil
	}

	signer, err := ssh.ParsePrivateKey(pemBytes)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, errors.New("private key is encrypted but no passphrase is configured")
		}
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return signer, nil
}

// withContext attaches the context error, if any, so callers can tell a
// timeout from a refused connection.
func withContext(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}
	return err
}
