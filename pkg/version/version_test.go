package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "dev", GetVersion())
	assert.Equal(t, "none", GetCommit())
	assert.Equal(t, "unknown", GetBuildDate())
}

func TestString(t *testing.T) {
	old := []string{version, commit, date}
	t.Cleanup(func() { version, commit, date = old[0], old[1], old[2] })

	version, commit, date = "v1.2.0", "abc1234", "2026-01-02"
	assert.Equal(t, "v1.2.0 (commit abc1234, built 2026-01-02)", String())
}
