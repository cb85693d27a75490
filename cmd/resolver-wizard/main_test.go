package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resolver-wizard/internal/config"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	app.Reader = strings.NewReader(stdin)

	err := app.Run(append([]string{"resolver-wizard"}, args...))

	return out.String(), err
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in       string
		wantType string
		wantName string
		wantErr  bool
	}{
		{"Query.pet", "Query", "pet", false},
		{"Query", "", "", true},
		{".pet", "", "", true},
		{"Query.", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			objectType, field, err := parseField(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantType, objectType)
			assert.Equal(t, tt.wantName, field)
		})
	}
}

func TestAssembleCommand(t *testing.T) {
	out, err := run(t, "response:\n  resultRoot: data\n",
		"assemble", "--file", "-", "--upstream", "petstore::gloo-system", "Query.pet")
	require.NoError(t, err)

	var item map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &item))
	assert.Equal(t, "REST", item["resolverType"])
	assert.Equal(t, "pet", item["field"])
	assert.Equal(t, "Query", item["objectType"])
	assert.Equal(t, map[string]any{"name": "petstore", "namespace": "gloo-system"}, item["upstreamRef"])
}

func TestAssembleCommandRejectsBadConfig(t *testing.T) {
	_, err := run(t, "request:\n  headers: 5\n", "--log-level", "error", "assemble", "--file", "-", "Query.pet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Parsing Error")

	_, err = run(t, "", "assemble", "--kind", "soap", "--file", "-", "Query.pet")
	require.Error(t, err)
}

func TestRenderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolution.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mockResolver":{"syncResponse":{"stringValue":"Rex"}}}`), 0644))

	out, err := run(t, "", "render", "--from-file", path)
	require.NoError(t, err)
	assert.Equal(t, "syncResponse: Rex\n", out)

	out, err = run(t, "", "render", "--kind", "gRPC", "--from-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "requestTransform:")
}

func TestInitConfigAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := run(t, "", "init-config", path)
	require.NoError(t, err)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = run(t, "", "--config", path, "--log-format", "xml", "fields")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")

	_, err = run(t, "", "--config", path, "--insecure", "fields")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no GraphQL API selected")
}
