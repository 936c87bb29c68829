package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter_PlainOutputWithoutTTY(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewReporter(&out, &errOut)

	r.Info("starting %s", "sync")
	r.Warning("retrying %s", "fetch")
	r.Error("failed: %s", "boom")

	assert.Equal(t, "info: starting sync\n", out.String())
	errLines := errOut.String()
	assert.True(t, strings.Contains(errLines, "warning: retrying fetch"))
	assert.True(t, strings.Contains(errLines, "error: failed: boom"))
}
