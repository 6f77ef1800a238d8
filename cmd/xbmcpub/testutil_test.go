package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testCatalog = `<?xml version="1.0" encoding="UTF-8"?>
<catalog>
  <item>
    <id>1</id>
    <title>Heat (H264)(HD)(L de)</title>
    <year>1995</year>
    <links>
      <link><urltype>Movie</urltype><description>Film</description><url>/mnt/b/Heat.mkv</url></link>
    </links>
    <customfields><movie>yes</movie></customfields>
  </item>
</catalog>`

// writeTestConfig writes a catalog and a config publishing it to one server
// and points the global --config flag at it.
func writeTestConfig(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()

	input := filepath.Join(dir, "catalog.xml")
	require.NoError(t, os.WriteFile(input, []byte(testCatalog), 0o644))

	cfg := fmt.Sprintf(`[general]
input = '%s'
log_level = "error"
languages = ["de"]

[[servers]]
id = "b"
storage_roots = ["/mnt/b"]
publication_root = "nfs://b"
target_root = "/storage"
output_dir = '%s'
`, input, filepath.Join(dir, "out"))
	path := filepath.Join(dir, "xbmcpub.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	setGlobals(t, path, false)
	return dir
}

// setGlobals sets the persistent flag values and restores them after the test.
func setGlobals(t *testing.T, path string, asJSON bool) {
	t.Helper()
	oldPath, oldJSON := configPath, jsonOutput
	configPath, jsonOutput = path, asJSON
	t.Cleanup(func() { configPath, jsonOutput = oldPath, oldJSON })
}

// newTestCommand returns a command capturing stdout with a background context.
func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	return cmd, &out
}
