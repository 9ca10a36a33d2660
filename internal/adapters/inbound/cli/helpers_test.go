package cli_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdidvp/inventario/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/require"
)

// workspace isolates config, database and log files in a temp dir.
type workspace struct {
	dir    string
	config string
	db     string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("INVENTARIO_LOG_PATH", filepath.Join(dir, "inventario.log"))
	return workspace{
		dir:    dir,
		config: filepath.Join(dir, ".inventario.yaml"),
		db:     filepath.Join(dir, "inventario.db"),
	}
}

// run executes the root command against the workspace and returns stdout and stderr.
func (w workspace) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := cli.NewRootCmdForTest()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", w.config, "--db", w.db}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func (w workspace) mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, _, err := w.run(t, stdin, args...)
	require.NoError(t, err)
	return out
}
