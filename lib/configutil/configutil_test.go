package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Service string            `json:"service"`
	Purpose string            `json:"purpose"`
	Verbose bool              `json:"verbose"`
	Headers map[string]string `json:"headers"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLocalOverridePath(t *testing.T) {
	require.Equal(t, filepath.Join("a", "roeval.local.json5"), LocalOverridePath(filepath.Join("a", "roeval.json5")))
	require.Equal(t, filepath.Join("a", "roeval.tar.local.gz"), LocalOverridePath(filepath.Join("a", "roeval.tar.gz")))
	require.Equal(t, filepath.Join("a", "config.local"), LocalOverridePath(filepath.Join("a", "config")))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "roeval.json5")

	_, err := ReadConfig[testConfig](name)
	require.True(t, os.IsNotExist(err))

	writeFile(t, name, `{
		// comments and trailing commas are fine in json5
		service: "http://example.org/roevaluate/",
		purpose: "runnable",
	}`)
	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "http://example.org/roevaluate/", cfg.Service)
	require.Equal(t, "runnable", cfg.Purpose)

	writeFile(t, LocalOverridePath(name), `{purpose: "ready-to-release", verbose: true}`)
	cfg, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "http://example.org/roevaluate/", cfg.Service)
	require.Equal(t, "ready-to-release", cfg.Purpose)
	require.True(t, cfg.Verbose)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "roeval.json5")
	writeFile(t, name, `{service: `)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.False(t, os.IsNotExist(err))
}

func TestReadConfigWithDefaults(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "roeval.json5")
	defaults := testConfig{
		Service: "http://sandbox.example.org/roevaluate/",
		Purpose: "runnable",
	}

	cfg, err := ReadConfigWithDefaults(name, defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	writeFile(t, name, `{service: "http://localhost:8080/"}`)
	cfg, err = ReadConfigWithDefaults(name, defaults)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/", cfg.Service)
	require.Equal(t, "runnable", cfg.Purpose)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	err := os.MkdirAll(nested, 0777)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "telemetry-test.json5"), `{service: "found"}`)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	err = os.Chdir(nested)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := ReadRecursively[testConfig]("telemetry-test.json5")
	require.NoError(t, err)
	require.Equal(t, "found", cfg.Service)

	_, err = ReadRecursively[testConfig]("does-not-exist-anywhere.json5")
	require.True(t, os.IsNotExist(err))

	defaults := testConfig{Service: "default", Purpose: "runnable"}
	cfg, err = ReadRecursivelyWithDefaults("telemetry-test.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{Service: "found", Purpose: "runnable"}, cfg)

	cfg, err = ReadRecursivelyWithDefaults("does-not-exist-anywhere.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)
}
