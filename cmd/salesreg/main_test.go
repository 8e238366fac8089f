package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	csvPath := filepath.Join(dir, "marketing.csv")
	htmlPath := filepath.Join(dir, "fit.html")
	jsonPath := filepath.Join(dir, "fit.json")

	out, err := run(t, "config", "init", "--config", cfgPath)
	require.Nil(t, err)
	assert.Contains(t, out, cfgPath)

	out, err = run(t, "config", "show", "--config", cfgPath)
	require.Nil(t, err)
	assert.Contains(t, out, "reference: High")

	_, err = run(t, "simulate", "--config", cfgPath, "-o", csvPath)
	require.Nil(t, err)
	info, err := os.Stat(csvPath)
	require.Nil(t, err)
	assert.Greater(t, info.Size(), int64(0))

	out, err = run(t, "fit", csvPath, "--config", cfgPath, "--html", htmlPath, "--json", jsonPath)
	require.Nil(t, err)
	assert.Contains(t, out, "OLS Regression Results")
	assert.Contains(t, out, "TV[T.Low]")
	assert.Contains(t, out, "High baseline")

	_, err = os.Stat(htmlPath)
	assert.Nil(t, err)

	raw, err := os.ReadFile(jsonPath)
	require.Nil(t, err)
	var res map[string]any
	require.Nil(t, json.Unmarshal(raw, &res))
	assert.Equal(t, "High", res["reference"])

	out, err = run(t, "vif", csvPath, "--config", cfgPath)
	require.Nil(t, err)
	assert.Contains(t, out, "Radio")
	assert.Contains(t, out, "Social_Media")

	_, err = run(t, "fit", filepath.Join(dir, "missing.csv"), "--config", cfgPath)
	assert.NotNil(t, err)
}

func TestCPUProfileFailedCommand(t *testing.T) {
	dir := t.TempDir()
	profDir := filepath.Join(dir, "prof")
	t.Cleanup(func() { cpuProfile = "" })

	_, err := run(t, "fit", filepath.Join(dir, "missing.csv"),
		"--config", filepath.Join(dir, "config.yaml"), "--cpuprofile", profDir)
	assert.NotNil(t, err)
	assert.Nil(t, profiler)

	info, err := os.Stat(filepath.Join(profDir, "cpu.pprof"))
	require.Nil(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
