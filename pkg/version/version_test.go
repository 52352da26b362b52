package version_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pvandyken/mkinit/pkg/version"
)

func TestGetVersionString(t *testing.T) {
	got := version.GetVersionString()
	assert.NotEmpty(t, got)
	assert.Contains(t, got, runtime.GOOS)
	assert.Contains(t, got, runtime.Version())
}

func TestGetVersionString_Override(t *testing.T) {
	orig := version.Version
	t.Cleanup(func() { version.Version = orig })

	version.Version = "1.2.3"
	assert.Contains(t, version.GetVersionString(), "1.2.3")
}
