package github_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"canopy.dev/canopyctl/internal/github"
)

func TestParseRemoteURL(t *testing.T) {
	cases := []struct {
		url   string
		owner string
		name  string
	}{
		{"https://github.com/canopybmc/openbmc.git", "canopybmc", "openbmc"},
		{"https://github.com/canopybmc/openbmc", "canopybmc", "openbmc"},
		{"git@github.com:openbmc/openbmc.git", "openbmc", "openbmc"},
		{"ssh://git@github.com/openbmc/openbmc.git", "openbmc", "openbmc"},
	}

	for _, tc := range cases {
		owner, name, err := github.ParseRemoteURL(tc.url)
		require.NoError(t, err, tc.url)
		require.Equal(t, tc.owner, owner)
		require.Equal(t, tc.name, name)
	}

	_, _, err := github.ParseRemoteURL("https://gitlab.com/some/repo.git")
	require.Error(t, err)
}

func TestGetToken(t *testing.T) {
	t.Run("prefers the environment token", func(t *testing.T) {
		getenv := func(key string) string {
			if key == "GITHUB_TOKEN" {
				return "ghp_testtoken"
			}
			return ""
		}
		require.Equal(t, "ghp_testtoken", github.GetToken(context.Background(), getenv))
	})
}
