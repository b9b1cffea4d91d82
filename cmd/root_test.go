package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommand_WritesAllOutputs(t *testing.T) {
	// GIVEN output paths in a scratch dir and a small forest scenario
	dir := t.TempDir()
	nwkFile := filepath.Join(dir, "forest.nwk")
	logFile := filepath.Join(dir, "run.log")
	lttFile := filepath.Join(dir, "ltt.csv")

	rootCmd.SetArgs([]string{
		"generate",
		"--seed", "7",
		"--min-tips", "5", "--max-tips", "50",
		"--T", "6",
		"--la", "0.8", "--psi", "0.3", "--p", "0.6", "--times", "6",
		"--nwk", nwkFile,
		"--log-file", logFile,
		"--ltt-file", lttFile,
		"--log", "warn",
	})

	// WHEN the generate command runs
	require.NoError(t, rootCmd.Execute())

	// THEN the Newick forest holds one semicolon-terminated tree per line
	nwk, err := os.ReadFile(nwkFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(nwk)), "\n")
	require.NotEmpty(t, lines[0])
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, ";"), "line %q must end with a semicolon", line)
	}

	// AND the summary log carries the parameter and outcome columns
	logData, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(logData), "lambda,psi,p,upsilon,phi,tips,unsampled,time\n"))
	assert.Contains(t, string(logData), "0.8,0.3,0.6,0,0,")

	// AND the LTT file carries both trajectories
	lttData, err := os.ReadFile(lttFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(lttData), "time,lineages,observed_lineages\n"))
	assert.Greater(t, strings.Count(string(lttData), "\n"), 1, "LTT must hold at least one data row")
}
