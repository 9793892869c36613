package versions

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo_ReleaseValues(t *testing.T) {
	t.Parallel()

	info := getVersionInfoWithValues("1.2.3", "abcdef1234567890", "2026-01-15T10:30:00Z")

	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abcdef1234567890", info.Commit)
	assert.Equal(t, "2026-01-15 10:30:00 UTC", info.BuildDate)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH), info.Platform)
}

func TestGetVersionInfo_DevBuildManufacturesVersion(t *testing.T) {
	t.Parallel()

	info := getVersionInfoWithValues("dev", "abcdef1234567890", "2026-01-15T10:30:00Z")

	assert.Equal(t, "build-abcdef12", info.Version)
}

func TestGetVersionInfo_UnparseableBuildDateKeptVerbatim(t *testing.T) {
	t.Parallel()

	info := getVersionInfoWithValues("1.0.0", "abc", "not-a-timestamp")

	assert.Equal(t, "not-a-timestamp", info.BuildDate)
}
