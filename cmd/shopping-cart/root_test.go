package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.PersistentFlags().Parse([]string{"--catalog-url", "http://localhost:8090/products", "--log-level", "debug"}))

	flag := cmd.PersistentFlags().Lookup("catalog-url")
	require.NotNil(t, flag)
	assert.Equal(t, "http://localhost:8090/products", flag.Value.String())
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	sub, _, err := cmd.Find([]string{"catalog-server"})
	require.NoError(t, err)
	assert.Equal(t, "catalog-server", sub.Name())
}

func TestRootOptions_Overrides(t *testing.T) {
	opts := &rootOptions{catalogURL: "http://localhost:8090/products"}
	got := opts.overrides()
	assert.Equal(t, "http://localhost:8090/products", got["CATALOG_URL"])
	assert.Equal(t, "", got["LOG_LEVEL"])
}

func TestRootCmd_RejectsInvalidCatalogURL(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"catalog-server", "--catalog-url", "ftp://nowhere"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalog URL")
}
