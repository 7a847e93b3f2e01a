package cantus_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/cantus-lang/cantus/pkg/cantus"
)

// Snapshot tests pin the public facade's rendered output the same way
// the teacher's fixture harness snapshots whole-script output rather
// than asserting field-by-field on internal values (see DESIGN.md's
// testify/go-snaps note).
func TestEvalSnapshot(t *testing.T) {
	scripts := map[string]string{
		"sqrt":       "sqrt(2)",
		"sigma":      "sigma(lambda(x) => x^2, 1, 10)",
		"matrix_det": "determinant(Matrix([1, 2], [3, 4]))",
		"tuple":      "(1, 2, 3)",
	}
	for name, source := range scripts {
		t.Run(name, func(t *testing.T) {
			interp := cantus.New()
			result, err := interp.Eval(source, true)
			require.NoError(t, err)
			snaps.MatchSnapshot(t, result.String())
		})
	}
}

func TestEvalSnapshotError(t *testing.T) {
	interp := cantus.New()
	_, err := interp.Eval("thisNameIsNotDeclared()", true)
	require.Error(t, err)
	snaps.MatchSnapshot(t, err.Error())
}
