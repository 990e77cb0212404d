package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const boxSettings = `display: BOX
location: MID
image:
  url: https://cdn.example.com/sale.png
text:
  title: Autumn sale
  body: Everything at half price
buttons:
  items:
    - text: Shop now
      url: https://shop.example.com
      target: new
`

// executeCommand runs cmd and returns what it wrote to stdout and stderr.
func executeCommand(cmd *cobra.Command, args ...string) (string, string, error) {
	cmd.SetArgs(args)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSettings(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
