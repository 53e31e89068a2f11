package vpsc

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionMatchesConstant(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}

func TestGetVersionInfoReportsRuntimeGoVersion(t *testing.T) {
	vi := GetVersionInfo()
	assert.Equal(t, Version, vi.Version)
	assert.Equal(t, runtime.Version(), vi.GoVersion)
}
