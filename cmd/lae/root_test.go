package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lae/config"
	"github.com/katalvlaran/lae/fatigue"
	"github.com/katalvlaran/lae/matrix"
	"github.com/katalvlaran/lae/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// execute runs the command with a silent logger and returns stdout and the output document.
func execute(t *testing.T, input string, args ...string) (string, map[string]any, error) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(input), 0o600))

	var stdout bytes.Buffer
	a := newApp(&stdout)
	a.newLogger = func(logging.Options) (*zap.Logger, error) { return zap.NewNop(), nil }

	cmd := newRootCmd(a)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, in, out))
	runErr := cmd.ExecuteContext(context.Background())

	var doc map[string]any
	if raw, err := os.ReadFile(out); err == nil {
		require.NoError(t, json.Unmarshal(raw, &doc))
	}
	return stdout.String(), doc, runErr
}

// TestRunWritesResult covers the success path and the text report.
func TestRunWritesResult(t *testing.T) {
	stdout, doc, err := execute(t,
		`{"operator": "+", "operands": [[[1, 2], [3, 4]], [[5, 6], [7, 8]]]}`,
		"--seed", "3", "2")
	require.NoError(t, err)
	require.Equal(t, []any{[]any{6.0, 8.0}, []any{10.0, 12.0}}, doc["result"])
	require.Contains(t, stdout, "Worker 0: factor=")
	require.Contains(t, stdout, "Worker 1: factor=")
	require.Contains(t, stdout, "Fairness")
}

// TestRunReportFormats checks the machine-readable reports.
func TestRunReportFormats(t *testing.T) {
	const input = `{"operator": "-", "operands": [[[1], [2], [3]]]}`

	stdout, _, err := execute(t, input, "--report-format", config.FormatYAML, "3")
	require.NoError(t, err)
	var yr fatigue.Report
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &yr))
	require.Len(t, yr.Workers, 3)

	stdout, _, err = execute(t, input, "--report-format", config.FormatJSON, "2")
	require.NoError(t, err)
	var jr fatigue.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &jr))
	require.Len(t, jr.Workers, 2)
	var total int64
	for _, w := range jr.Workers {
		total += w.TasksRun
	}
	require.Equal(t, int64(3), total)

	stdout, _, err = execute(t, input, "--report=false", "2")
	require.NoError(t, err)
	require.Empty(t, stdout)
}

// TestRunWritesErrorDocument covers failures before and after the engine exists.
func TestRunWritesErrorDocument(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		threads    string
		wantReport bool
	}{
		{"bad threads", `[[1]]`, "many", false},
		{"zero threads", `[[1]]`, "0", false},
		{"malformed input", `{"operator": "/", "operands": [[[1]]]}`, "2", false},
		{"shape mismatch", `{"operator": "+", "operands": [[[1, 2]], [[1]]]}`, "2", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, doc, err := execute(t, tc.input, tc.threads)
			require.Error(t, err)
			require.Equal(t, err.Error(), doc["error"])
			require.NotContains(t, doc, "result")
			if tc.wantReport {
				require.Contains(t, stdout, "Worker 0:")
			} else {
				require.Empty(t, stdout)
			}
		})
	}
}

// TestConfigFileAndFlagPrecedence lets flags override the file.
func TestConfigFileAndFlagPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "lae.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("report:\n  format: json\n  enabled: false\n"), 0o600))

	stdout, _, err := execute(t, `[[1]]`, "--config", cfgPath, "1")
	require.NoError(t, err)
	require.Empty(t, stdout)

	stdout, _, err = execute(t, `{"operator": "T", "operands": [[[1, 2]]]}`, "--config", cfgPath, "--report", "1")
	require.NoError(t, err)
	var r fatigue.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &r))
	require.Len(t, r.Workers, 1)
}

// TestVerify cross-checks the pool result against the sequential reference.
func TestVerify(t *testing.T) {
	_, doc, err := execute(t,
		`{"operator": "*", "operands": [[[1, 2, 3], [4, 5, 6]], {"operator": "T", "operands": [[[7, 9, 11], [8, 10, 12]]]}]}`,
		"--verify", "3")
	require.NoError(t, err)
	require.Equal(t, []any{[]any{58.0, 64.0}, []any{139.0, 154.0}}, doc["result"])
}

// TestCheck flags results that drift from the reference.
func TestCheck(t *testing.T) {
	want, err := matrix.FromRows([][]float64{{1, 2}})
	require.NoError(t, err)

	require.NoError(t, check([][]float64{{1, 2}}, want))
	require.ErrorIs(t, check([][]float64{{1, 2.5}}, want), errVerify)
	require.ErrorIs(t, check([][]float64{{1}, {2}}, want), errVerify)
	require.ErrorIs(t, check([][]float64{{1, 2}}, nil), errVerify)
}

// TestArgsCount rejects anything but three positional arguments and still
// leaves an error document behind: in the third argument when one is given,
// otherwise in output.json in the working directory.
func TestArgsCount(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	run := func(args ...string) error {
		cmd := newRootCmd(newApp(io.Discard))
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		cmd.SetArgs(args)
		return cmd.Execute()
	}
	readError := func(path string) string {
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc map[string]string
		require.NoError(t, json.Unmarshal(raw, &doc))
		return doc["error"]
	}

	err := run("2", "in.json")
	require.ErrorIs(t, err, errUsage)
	require.Equal(t, err.Error(), readError(filepath.Join(dir, defaultOutput)))

	out := filepath.Join(dir, "out.json")
	err = run("2", "in.json", out, "extra")
	require.ErrorIs(t, err, errUsage)
	require.Contains(t, readError(out), "got 4 arguments")
}
