package database

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSourceIsOrdered(t *testing.T) {
	src, err := migrationSource()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, name, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "init_schema", name)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE product_sales")

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)
}

func TestEveryMigrationHasDown(t *testing.T) {
	src, err := migrationSource()
	require.NoError(t, err)
	defer src.Close()

	for v, err := src.First(); err == nil; v, err = src.Next(v) {
		down, _, derr := src.ReadDown(v)
		require.NoError(t, derr, "version %d", v)
		down.Close()
	}
}
