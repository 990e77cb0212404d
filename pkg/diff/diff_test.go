package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinesIdentical(t *testing.T) {
	t.Parallel()

	require.Empty(t, Lines([]byte("a\nb\n"), []byte("a\nb\n"), "old", "new"))
}

func TestLinesSingleChange(t *testing.T) {
	t.Parallel()

	expected := []byte("{\n  \"theme\": \"T4\",\n  \"today\": \"N\"\n}\n")
	actual := []byte("{\n  \"theme\": \"T9\",\n  \"today\": \"N\"\n}\n")

	result := Lines(expected, actual, "payload.json", "generated")
	require.True(t, strings.HasPrefix(result, "--- payload.json\n+++ generated\n"))
	require.Contains(t, result, "-  \"theme\": \"T4\",\n")
	require.Contains(t, result, "+  \"theme\": \"T9\",\n")
	require.Contains(t, result, "   \"today\": \"N\"\n")
}

func TestLinesTruncates(t *testing.T) {
	t.Parallel()

	var expected, actual []string
	for i := 0; i < 3000; i++ {
		expected = append(expected, "old")
		actual = append(actual, "new")
	}

	result := Lines([]byte(strings.Join(expected, "\n")), []byte(strings.Join(actual, "\n")), "a", "b")
	require.Contains(t, result, truncateMessage)
	require.LessOrEqual(t, strings.Count(result, "\n"), maxDiffLines+1)
}
