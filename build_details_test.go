package apiverify

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	v := Version()
	assert.NotEmpty(t, v)
	assert.True(t, v == "dev" || strings.HasPrefix(v, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", v)
}

func TestCommitAndBuildTime(t *testing.T) {
	assert.NotEmpty(t, Commit())
	if c := Commit(); c != "unknown" {
		assert.GreaterOrEqual(t, len(c), 7, "commit should be a git short hash, got: %s", c)
	}

	assert.NotEmpty(t, BuildTime())
	if bt := BuildTime(); bt != "unknown" {
		assert.Contains(t, bt, "T", "build time should be RFC3339, got: %s", bt)
	}
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	assert.Equal(t, "apiverify/"+Version(), ua)
	assert.NotContains(t, ua, " ")
	assert.NotContains(t, ua, "\n")
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo()
	for _, label := range []string{"Version:", "Commit:", "Build Time:", "Go Version:"} {
		assert.Contains(t, info, label)
	}
	assert.Contains(t, info, GoVersion())
}
