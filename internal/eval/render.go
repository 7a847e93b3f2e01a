package eval

import (
	"fmt"

	"github.com/cantus-lang/cantus/internal/builtins"
	"github.com/cantus-lang/cantus/internal/value"
)

// Render formats v the way this Evaluator's live OutputMode selects
// (spec.md §4.F/§6): Raw is every Value's own String(), Math/Scientific
// re-render Number/Complex through the LineO/MathO/SciO family so
// `sqrt(2)` prints "√2" and `sin(30°)` prints "1/2" in Math mode
// (spec.md §8 scenarios 1-2) instead of always falling through to the
// BigDecimal's plain decimal string.
func (e *Evaluator) Render(v value.Value) string {
	if e.OutputMode == builtins.Raw {
		return v.String()
	}
	switch n := v.(type) {
	case value.Number:
		return builtins.FormatNumber(n.D, e.OutputMode)
	case value.Complex:
		return renderComplex(n, e.OutputMode)
	default:
		return v.String()
	}
}

func renderComplex(c value.Complex, mode builtins.OutputMode) string {
	if c.Im == 0 {
		return builtins.FormatFloat(c.Re, mode)
	}
	sign := "+"
	im := c.Im
	if im < 0 {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("%s %s %si", builtins.FormatFloat(c.Re, mode), sign, builtins.FormatFloat(im, mode))
}
