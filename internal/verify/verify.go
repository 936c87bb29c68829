// Package verify wraps the gpg binary for cargo-go's verify-before-promote
// discipline: importing a source's signing key and checking a detached,
// ASCII-armored signature against a known fingerprint.
package verify

import (
	"context"
	"os/exec"
	"strings"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// Verifier drives gpg as a subprocess.
type Verifier struct {
	homedir string // GNUPGHOME override, empty uses the user's default
}

// NewVerifier returns a Verifier using the default gpg keyring.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// NewVerifierWithHome returns a Verifier that isolates its keyring under
// homedir, used so importing an untrusted source key never touches the
// operator's personal keyring.
func NewVerifierWithHome(homedir string) *Verifier {
	return &Verifier{homedir: homedir}
}

func (v *Verifier) command(ctx context.Context, args ...string) *exec.Cmd {
	if v.homedir != "" {
		args = append([]string{"--homedir", v.homedir}, args...)
	}
	return exec.CommandContext(ctx, "gpg", args...)
}

// ImportKey imports an ASCII-armored public key from keyPath (the
// key.gpg staged by the sync engine) into the keyring.
func (v *Verifier) ImportKey(ctx context.Context, keyPath string) error {
	cmd := v.command(ctx, "--import", keyPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if _, lookErr := exec.LookPath("gpg"); lookErr != nil {
			return cargoerr.Wrap(cargoerr.CategoryVerification, "gpg is not installed or not on PATH", lookErr)
		}
		return cargoerr.Wrap(cargoerr.CategoryVerification, "failed to import signing key", err).
			WithDetail("output", string(out))
	}
	return nil
}

// Verify checks that sigPath is a valid detached signature over
// targetPath by the key with fingerprint keyfp. keyfp is matched
// case-insensitively against gpg's status-fd VALIDSIG line.
func (v *Verifier) Verify(ctx context.Context, targetPath, sigPath, keyfp string) error {
	cmd := v.command(ctx, "--status-fd", "1", "--verify", sigPath, targetPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryVerification, "signature verification failed", err).
			WithCode(cargoerr.CodeSignatureInvalid).
			WithDetail("target", targetPath).
			WithDetail("output", string(out))
	}

	if keyfp == "" {
		return nil
	}

	if !strings.Contains(strings.ToUpper(string(out)), strings.ToUpper(keyfp)) {
		return cargoerr.New(cargoerr.CategoryVerification, "signature is valid but not by the trusted key").
			WithCode(cargoerr.CodeUntrustedKey).
			WithDetail("target", targetPath).
			WithDetail("expected_fingerprint", keyfp)
	}

	return nil
}
