package domain_test

import (
	"testing"
	"time"

	"github.com/abdidvp/inventario/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_MatchesLocalFileStore(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, domain.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "inventario.db", cfg.Store.DSN)
	assert.Equal(t, domain.ModeMultiset, cfg.Store.Mode)
	assert.False(t, cfg.Store.AutoCommit)
	assert.False(t, cfg.HasDevice())
	require.NoError(t, cfg.Validate())
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Store.Driver = "oracle"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestValidate_EmptyDSN(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Store.DSN = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_UnknownMode(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Store.Mode = "set"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.mode")
}

func TestValidate_UniqueModeAccepted(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Store.Mode = domain.ModeUnique
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Device.Timeout = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestValidate_DeviceCommandWithoutProgram(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Device.Command = []string{"", "--once"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_LogSettings(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = domain.DefaultConfig()
	cfg.Log.Encoding = "xml"
	assert.Error(t, cfg.Validate())

	cfg = domain.DefaultConfig()
	cfg.Log.Level = "debug"
	cfg.Log.Encoding = "console"
	assert.NoError(t, cfg.Validate())
}

func TestHasDevice(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Device.Command = []string{"zbarcam", "--oneshot"}
	assert.True(t, cfg.HasDevice())
}

func TestHasDevice_StaticCodes(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Device.Codes = []string{"X1"}
	assert.True(t, cfg.HasDevice())
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CommandAndCodesExclusive(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Device.Command = []string{"zbarcam"}
	cfg.Device.Codes = []string{"X1"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
