package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Maple St House")
	cfg.Git.AutoCommit = true

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Ledger.Household, got.Ledger.Household)
	assert.Equal(t, cfg.Ledger.DataFile, got.Ledger.DataFile)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
	assert.Equal(t, cfg.Git.AuthorEmail, got.Git.AuthorEmail)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Maple St House")

	assert.Equal(t, "Maple St House", cfg.Ledger.Household)
	assert.Equal(t, "transactions.json", cfg.Ledger.DataFile)
	assert.False(t, cfg.Git.AutoCommit)
	assert.NotEmpty(t, cfg.Git.AuthorName)
	assert.NotEmpty(t, cfg.Git.AuthorEmail)
}

func TestLoad_FillsDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  household: Test\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "transactions.json", got.Ledger.DataFile)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Maple St House")
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "household: Maple St House")
	assert.Contains(t, contents, "data_file: transactions.json")
	assert.Contains(t, contents, "auto_commit: false")
}
