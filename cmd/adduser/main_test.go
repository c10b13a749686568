package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteArgs(t *testing.T, extra ...string) []string {
	dsn := filepath.Join(t.TempDir(), "money.db")
	return append([]string{"-driver", "sqlite", "-dsn", dsn}, extra...)
}

func TestRun_Success(t *testing.T) {
	stdout := new(bytes.Buffer)
	err := run(sqliteArgs(t, "-user", "alice", "-password", "secret"), new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "User alice created successfully with ID 1")
}

func TestRun_DuplicateUser(t *testing.T) {
	args := sqliteArgs(t, "-user", "alice", "-password", "secret")
	require.NoError(t, run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))

	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingUserFlag(t *testing.T) {
	stdout := new(bytes.Buffer)
	err := run([]string{"-password", "secret"}, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: user")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_MissingDSN(t *testing.T) {
	t.Setenv("DB_CONN", "")
	err := run([]string{"-user", "alice", "-password", "x"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing database connection")
}

func TestRun_InteractivePassword(t *testing.T) {
	stdout := new(bytes.Buffer)
	stdin := bytes.NewBufferString("typed_secret\n")

	err := run(sqliteArgs(t, "-user", "bob"), stdin, stdout, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User bob created successfully")
}

func TestRun_EmptyPassword(t *testing.T) {
	err := run(sqliteArgs(t, "-user", "bob"), bytes.NewBufferString("\n"), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestRun_UnknownDriver(t *testing.T) {
	err := run([]string{"-user", "x", "-password", "y", "-driver", "mysql", "-dsn", "x"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestRun_InvalidFlag(t *testing.T) {
	err := run([]string{"-invalid"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
