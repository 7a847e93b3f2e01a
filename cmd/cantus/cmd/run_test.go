package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything it wrote. runScript prints straight to os.Stdout with
// fmt.Println (matching the teacher's cmd.Println-free CLI style), so
// this is the only way to observe it from a test.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	runErr := fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String(), runErr
}

// TestRunCommandSnapshot pins the CLI's rendered output for an inline
// expression, the same end-to-end surface the teacher's go-snaps fixture
// harness exercises (see fixture_test.go) but scoped to this project's
// own command surface rather than a ported .pas test suite.
func TestRunCommandSnapshot(t *testing.T) {
	evalExpr = "sqrt(2)"
	defer func() { evalExpr = "" }()

	out, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	})
	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}

func TestRunCommandSnapshotError(t *testing.T) {
	evalExpr = ""

	_, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	})
	require.Error(t, err)
	snaps.MatchSnapshot(t, err.Error())
}
