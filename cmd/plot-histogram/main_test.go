package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func plotLines(script string) []string {
	var plots []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(line, "plot ") {
			plots = append(plots, line)
		}
	}
	return plots
}

func TestRun_NoFilename(t *testing.T) {
	stdout, _, err := runCLI(t)
	require.NoError(t, err)
	assert.Equal(t, "No filename specified, exiting.\n", stdout)
}

func TestRun_Help(t *testing.T) {
	stdout, _, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--term")
	assert.Contains(t, stdout, "filename")
}

func TestRun_UnknownFlag(t *testing.T) {
	_, _, err := runCLI(t, "--bogus", "x.hist")
	assert.Error(t, err)
}

func TestRun_NotEnoughColumns(t *testing.T) {
	input := writeFile(t, "empty.hist", "# header only\n")

	stdout, _, err := runCLI(t, "--dry-run", input)
	require.NoError(t, err)
	assert.Equal(t, "Not enough columns in the input file.  Exiting.\n", stdout)
}

func TestRun_DryRunDefaults(t *testing.T) {
	input := writeFile(t, "run1.hist", "# MultiNest\n0,1,0,5,1,0\n1,1,3,6,1,4\n")
	base := strings.TrimSuffix(input, ".hist")

	stdout, _, err := runCLI(t, "--dry-run", input)
	require.NoError(t, err)

	assert.Contains(t, stdout, "set term postscript enhanced color size 5in,3.5in\n")
	assert.Contains(t, stdout, `set output "`+base+`_0.eps"`)
	assert.Contains(t, stdout, `set output "`+base+`_1.eps"`)
	assert.Equal(t, []string{
		`plot "` + input + `" using ($1 * 1 + 0):3 with boxes notitle`,
		`plot "` + input + `" using ($4 * 1 + 0):6 with boxes notitle`,
	}, plotLines(stdout))
	assert.Equal(t, 2, strings.Count(stdout, "unset output\n"))
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	input := writeFile(t, "run1.hist", "1,2,3\n")
	cfgPath := writeFile(t, "plot.toml", "[plot]\nterm = \"svg\"\next = \"svg\"\nxrange = \"0:1\"\n")

	stdout, _, err := runCLI(t, "--dry-run", "--config", cfgPath,
		"--ext", "png", "--term", "pngcairo", "--yrange", "0:50", "--xlabel", "mass", input)
	require.NoError(t, err)

	assert.Contains(t, stdout, "set term pngcairo size 5in,3.5in\n")
	assert.Contains(t, stdout, "set xrange [0:1]\n")
	assert.Contains(t, stdout, "set yrange [0:50]\n")
	assert.Contains(t, stdout, `set xlabel "mass"`)
	assert.Contains(t, stdout, strings.TrimSuffix(input, ".hist")+`_0.png"`)
}

func TestRun_InvalidRange(t *testing.T) {
	input := writeFile(t, "run1.hist", "1,2,3\n")
	_, _, err := runCLI(t, "--dry-run", "--xrange", "10", input)
	assert.ErrorContains(t, err, "xrange")
}

func TestRun_LabelsAcceptedNotApplied(t *testing.T) {
	input := writeFile(t, "run1.hist", "1,2,3\n")

	stdout, stderr, err := runCLI(t, "--dry-run", "--labels", "radius,flux", "--offsets", "1,2", input)
	require.NoError(t, err)

	assert.Contains(t, stdout, `set xlabel ""`)
	assert.Contains(t, stderr, "--labels is accepted but not applied")
	assert.Contains(t, stderr, "--offsets is accepted but not applied")
}

func TestRun_MissingInput(t *testing.T) {
	_, _, err := runCLI(t, "--dry-run", filepath.Join(t.TempDir(), "missing.hist"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_MissingConfigFile(t *testing.T) {
	input := writeFile(t, "run1.hist", "1,2,3\n")
	_, _, err := runCLI(t, "--dry-run", "--config", filepath.Join(t.TempDir(), "typo.toml"), input)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_WithoutGnuplotOnPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	input := writeFile(t, "run1.hist", "1,2,3,4,5,6\n")
	empty := writeFile(t, "empty.hist", "# header only\n")

	stdout, _, err := runCLI(t)
	require.NoError(t, err)
	assert.Equal(t, "No filename specified, exiting.\n", stdout)

	stdout, _, err = runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--dry-run")

	stdout, _, err = runCLI(t, empty)
	require.NoError(t, err)
	assert.Equal(t, "Not enough columns in the input file.  Exiting.\n", stdout)

	stdout, _, err = runCLI(t, "--dry-run", input)
	require.NoError(t, err)
	assert.Len(t, plotLines(stdout), 2)

	_, _, err = runCLI(t, input)
	assert.ErrorContains(t, err, "could not find gnuplot")
}

func TestRun_FakeGnuplot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}

	dir := t.TempDir()
	log := filepath.Join(dir, "sessions.log")
	binary := filepath.Join(dir, "fake-gnuplot")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\ncat >> '"+log+"'\n"), 0755))

	input := writeFile(t, "run1.hist", "0,1,0,5,1,0\n")

	_, _, err := runCLI(t, "--gnuplot", binary, "--term", "pngcairo", "--ext", "png", input)
	require.NoError(t, err)

	script, err := os.ReadFile(log)
	require.NoError(t, err)

	base := strings.TrimSuffix(input, ".hist")
	assert.Equal(t, 2, strings.Count(string(script), "reset\n"))
	assert.Contains(t, string(script), `set output "`+base+`_0.png"`)
	assert.Contains(t, string(script), `set output "`+base+`_1.png"`)
	assert.Len(t, plotLines(string(script)), 2)
}
