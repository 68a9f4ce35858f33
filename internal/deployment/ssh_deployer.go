package deployment

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strings"

	"cwl_stats/internal/config"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
)

const defaultSSHPort = "22"

// Target is a parsed deploy URL
type Target struct {
	User       string
	Host       string
	Port       string
	RemotePath string
}

// Address returns host:port for dialing
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, t.Port)
}

// SSHDeployer handles deployment via SSH/SCP
type SSHDeployer struct {
	keyPath   string
	deployURL string
	pacing    config.PacingConfig
	client    *ssh.Client
	connected bool
}

// NewSSHDeployer creates a new SSH deployer. Each connect and upload is
// bounded by pacing.Timeout.
func NewSSHDeployer(deployURL, keyPath string, pacing config.PacingConfig) *SSHDeployer {
	return &SSHDeployer{
		keyPath:   keyPath,
		deployURL: deployURL,
		pacing:    pacing,
	}
}

// ParseDeployURL parses a deploy URL in format: user@host[:port]:path
func ParseDeployURL(deployURL string) (Target, error) {
	if deployURL == "" {
		return Target{}, fmt.Errorf("deploy URL is empty")
	}

	// Split by @ to get user and host:path
	parts := strings.SplitN(deployURL, "@", 2)
	if len(parts) != 2 || parts[0] == "" {
		return Target{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	hostParts := strings.Split(parts[1], ":")
	target := Target{User: parts[0], Port: defaultSSHPort}

	switch len(hostParts) {
	case 2:
		target.Host, target.RemotePath = hostParts[0], hostParts[1]
	case 3:
		target.Host, target.Port, target.RemotePath = hostParts[0], hostParts[1], hostParts[2]
	default:
		return Target{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	if target.Host == "" || target.Port == "" || target.RemotePath == "" {
		return Target{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	return target, nil
}

// Connect establishes SSH connection
func (d *SSHDeployer) Connect(ctx context.Context) error {
	if d.connected {
		return nil
	}

	target, err := ParseDeployURL(d.deployURL)
	if err != nil {
		return fmt.Errorf("failed to parse deploy URL: %w", err)
	}

	keyData, err := os.ReadFile(d.keyPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file %s: %w", d.keyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return fmt.Errorf("failed to parse SSH private key: %w", err)
	}

	sshConfig := &ssh.ClientConfig{
		User: target.User,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: verify against a known_hosts file
		Timeout:         d.pacing.Timeout,
	}

	dialCtx := ctx
	if d.pacing.Timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, d.pacing.Timeout)
		defer cancel()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(dialCtx, "tcp", target.Address())
	if err != nil {
		return fmt.Errorf("failed to connect to SSH server %s: %w", target.Host, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, target.Address(), sshConfig)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed SSH handshake with %s: %w", target.Host, err)
	}

	d.client = ssh.NewClient(sshConn, chans, reqs)
	d.connected = true
	log.Info().
		Str("host", target.Host).
		Str("user", target.User).
		Msg("Successfully connected to SSH server")

	return nil
}

// Disconnect closes SSH connection
func (d *SSHDeployer) Disconnect() error {
	if d.client != nil {
		err := d.client.Close()
		d.connected = false
		d.client = nil
		return err
	}
	return nil
}

// DeployFile uploads a file via SCP into the remote directory of the deploy URL
func (d *SSHDeployer) DeployFile(ctx context.Context, localPath, filename string) error {
	if !d.connected {
		if err := d.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
	}

	target, err := ParseDeployURL(d.deployURL)
	if err != nil {
		return fmt.Errorf("failed to parse deploy URL: %w", err)
	}

	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer localFile.Close()

	fileInfo, err := localFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat local file: %w", err)
	}

	session, err := d.client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	remoteFilePath := path.Join(target.RemotePath, filename)

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := session.Start(fmt.Sprintf("scp -t %s", remoteFilePath)); err != nil {
		return fmt.Errorf("failed to start SCP session: %w", err)
	}

	// Abort the session if the context ends mid-transfer
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			session.Close()
		case <-done:
		}
	}()

	if err := writeSCP(stdin, fileInfo.Size(), filename, localFile); err != nil {
		return err
	}

	stdin.Close()
	if err := session.Wait(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("SCP session aborted: %w", ctx.Err())
		}
		return fmt.Errorf("SCP session failed: %w", err)
	}

	log.Info().
		Str("local_path", localPath).
		Str("remote_path", remoteFilePath).
		Int64("size", fileInfo.Size()).
		Msg("Successfully deployed file via SCP")

	return nil
}

// writeSCP writes one file in SCP sink protocol: header, content, end marker
func writeSCP(w io.Writer, size int64, filename string, content io.Reader) error {
	if _, err := fmt.Fprintf(w, "C0644 %d %s\n", size, filename); err != nil {
		return fmt.Errorf("failed to write SCP header: %w", err)
	}

	if _, err := io.Copy(w, content); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	if _, err := w.Write([]byte{0}); err != nil {
		return fmt.Errorf("failed to write SCP end marker: %w", err)
	}

	return nil
}
