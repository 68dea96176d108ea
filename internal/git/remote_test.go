package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRemoteBranchList(t *testing.T) {
	lines := []string{
		"  upstream/LTS/2025.08",
		"* upstream/main",
		"  upstream/HEAD -> upstream/main",
		"  upstream/HEAD",
		"",
	}

	require.Equal(t,
		[]string{"upstream/LTS/2025.08", "upstream/main"},
		parseRemoteBranchList(lines))
}
