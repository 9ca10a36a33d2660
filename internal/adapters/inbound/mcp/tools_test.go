package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/inventario/internal/adapters/outbound/device"
	"github.com/abdidvp/inventario/internal/adapters/outbound/sqlstore"
	"github.com/abdidvp/inventario/internal/application"
	"github.com/abdidvp/inventario/internal/domain"
)

func newInventory(t *testing.T, source domain.CodeSource) *application.InventoryService {
	t.Helper()
	cfg := domain.StoreConfig{
		Driver:     domain.DriverSQLite,
		DSN:        filepath.Join(t.TempDir(), "inventario.db"),
		Mode:       domain.ModeMultiset,
		AutoCommit: true,
	}
	store, err := sqlstore.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(true) })
	return application.NewInventoryService(store, source, nil)
}

func callRequest(args map[string]any) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleAdd_ThenList(t *testing.T) {
	inv := newInventory(t, nil)
	ctx := context.Background()

	res, err := handleAdd(inv)(ctx, callRequest(map[string]any{"codes": "X1, X2,X1"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var added addResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &added))
	assert.Equal(t, []string{"X1", "X2"}, added.Added)

	res, err = handleList(inv)(ctx, callRequest(nil))
	require.NoError(t, err)

	var listed listResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &listed))
	assert.ElementsMatch(t, []domain.ProductCode{"X1", "X2"}, listed.Codes)
	assert.Equal(t, 2, listed.Count)
}

func TestHandleAdd_ConcurrentCalls(t *testing.T) {
	inv := newInventory(t, nil)
	handler := handleAdd(inv)

	const calls = 20
	results := make([]*mcplib.CallToolResult, calls)
	errs := make([]error, calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes := fmt.Sprintf("A%d,B%d,C%d", i, i, i)
			results[i], errs[i] = handler(context.Background(), callRequest(map[string]any{"codes": codes}))
		}(i)
	}
	wg.Wait()

	for i := 0; i < calls; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.False(t, results[i].IsError, "call %d: %v", i, results[i].Content)
	}

	count, err := inv.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, calls*3, count)
}

func TestHandleAdd_MissingArgument(t *testing.T) {
	inv := newInventory(t, nil)

	res, err := handleAdd(inv)(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleAdd_EmptyCode(t *testing.T) {
	inv := newInventory(t, nil)

	res, err := handleAdd(inv)(context.Background(), callRequest(map[string]any{"codes": "X1,,X2"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "validation")

	codes, err := inv.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestHandleCapture(t *testing.T) {
	inv := newInventory(t, device.NewStatic("12345", "67890"))

	res, err := handleCapture(inv)(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "67890")
}

func TestHandleCapture_DeviceError(t *testing.T) {
	inv := newInventory(t, device.NewStaticError(errors.New("reader unplugged")))

	res, err := handleCapture(inv)(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "reader unplugged")
}

func TestHandleList_Empty(t *testing.T) {
	inv := newInventory(t, nil)

	res, err := handleList(inv)(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), `"codes": []`)
}

func TestCodesResource(t *testing.T) {
	inv := newInventory(t, nil)
	_, err := inv.AddCodes(context.Background(), "ABC123")
	require.NoError(t, err)

	contents, err := handleCodesResource(inv)(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, codesURI, text.URI)
	assert.Contains(t, text.Text, "ABC123")
}
