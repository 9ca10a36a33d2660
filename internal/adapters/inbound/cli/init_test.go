package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/inventario/internal/adapters/inbound/cli"
	"github.com/abdidvp/inventario/internal/adapters/outbound/config"
	"github.com/abdidvp/inventario/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".inventario.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "driver: sqlite")
	assert.Contains(t, string(data), "mode: multiset")
	assert.Contains(t, string(data), "# device:")
}

func TestInitCmd_UniqueMode(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--mode", "unique"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".inventario.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: unique")
}

func TestInitCmd_PostgresDSNTemplate(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--driver", "postgres"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".inventario.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "driver: postgres")
	assert.Contains(t, string(data), "postgres://")
}

func TestInitCmd_InvalidMode(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--mode", "bag"})
	err := root.Execute()
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(tmpDir, ".inventario.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".inventario.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".inventario.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".inventario.yaml"))
	require.NoError(t, err)
	assert.NotEqual(t, "old", string(data))
}

func TestInitCmd_GeneratedConfigLoads(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--mode", "unique"})
	require.NoError(t, root.Execute())

	cfg, err := config.NewWithEnvFile("").Load(filepath.Join(tmpDir, ".inventario.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.ModeUnique, cfg.Store.Mode)
	assert.Equal(t, domain.DriverSQLite, cfg.Store.Driver)
	assert.False(t, cfg.HasDevice())
}
