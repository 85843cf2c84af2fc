package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"indexes", "superuser", "token", "watch"}, names)
}

func TestWatchRequiresToken(t *testing.T) {
	t.Setenv("REELSTATE_TOKEN", "")

	root := newRootCmd()
	root.SetArgs([]string{"watch", "--media-id", "42", "--title", "Heat"})
	err := root.Execute()
	require.ErrorContains(t, err, "token")
}

func TestFirstNonEmpty(t *testing.T) {
	require.Equal(t, "b", firstNonEmpty("", "  ", "b", "c"))
	require.Equal(t, "", firstNonEmpty())
}
