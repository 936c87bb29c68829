package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify_MissingFiles(t *testing.T) {
	v := NewVerifier()
	err := v.Verify(context.Background(), "/nonexistent/target", "/nonexistent/sig", "")
	assert.Error(t, err)
}

func TestImportKey_MissingFile(t *testing.T) {
	v := NewVerifier()
	err := v.ImportKey(context.Background(), "/nonexistent/key.gpg")
	assert.Error(t, err)
}
