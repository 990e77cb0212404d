package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/qdxstudio/internal/preview"
	qdxerrors "github.com/alexisbeaulieu97/qdxstudio/pkg/errors"
)

func TestHTMLWritesPopupPage(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, boxSettings)
	out, _, err := executeCommand(newRootCmd(), "html", "-f", path, "--id", "popup-1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Contains(t, out, `"popup-1"`)
	require.Contains(t, out, `"display":"BOX"`)
	require.Contains(t, out, `"theme":"T8"`)
}

func TestHTMLWritesFile(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, "display: STAR\ntext:\n  title: Hello\n")
	target := filepath.Join(t.TempDir(), "popup.html")

	out, _, err := executeCommand(newRootCmd(), "html", "-f", path, "--out", target)
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(data), `"theme":"T16"`)
}

func TestHTMLRequiresFile(t *testing.T) {
	t.Parallel()

	_, _, err := executeCommand(newRootCmd(), "html")
	require.Error(t, err)
	require.Contains(t, err.Error(), "file")
}

func TestHTMLSketch(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, "display: STAR\ntext:\n  title: Hello\n")
	out, _, err := executeCommand(newRootCmd(), "html", "-f", path, "--sketch", "--width", "40")
	require.NoError(t, err)
	require.NotContains(t, out, "<!DOCTYPE html>")
	require.Contains(t, out, "STAR")
	require.Contains(t, out, "T16")
	require.Contains(t, out, "Hello")
}

func TestHTMLSketchToFile(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, "display: STAR\ntext:\n  title: Hello\n")
	target := filepath.Join(t.TempDir(), "popup.txt")

	out, _, err := executeCommand(newRootCmd(), "html", "-f", path, "--sketch", "-o", target)
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(data), "Hello")
}

func TestHTMLSketchFallsBackToPayloadJSON(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, "display: STAR\ntext:\n  title: Hello\n")
	target := filepath.Join(t.TempDir(), "missing", "popup.txt")

	out, _, err := executeCommand(newRootCmd(), "html", "-f", path, "--sketch", "--id", "popup-9", "-o", target)
	require.Error(t, err)

	var renderErr *qdxerrors.RenderError
	require.ErrorAs(t, err, &renderErr)
	require.ErrorIs(t, err, preview.ErrRendererUnavailable)
	require.Contains(t, out, `"display":"STAR"`)
	require.Contains(t, out, `"theme":"T16"`)
}
