package builtins

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/cantus-lang/cantus/internal/value"
)

func init() {
	register(&Builtin{Name: "Length", Arity: 1, Fn: builtinLength})
	register(&Builtin{Name: "Concat", Arity: -1, Fn: builtinConcat})
	register(&Builtin{Name: "UpperCase", Arity: 1, Fn: builtinUpperCase})
	register(&Builtin{Name: "LowerCase", Arity: 1, Fn: builtinLowerCase})
	register(&Builtin{Name: "Trim", Arity: 1, Fn: builtinTrim})
	register(&Builtin{Name: "Normalize", Arity: 1, Fn: builtinNormalize})
	register(&Builtin{Name: "StripAccents", Arity: 1, Fn: builtinStripAccents})
	register(&Builtin{Name: "RegexMatch", Arity: 2, Fn: builtinRegexMatch})
	register(&Builtin{Name: "RegexReplace", Arity: 3, Fn: builtinRegexReplace})
	register(&Builtin{Name: "Oct", Arity: 1, Fn: builtinOct})
}

// Oct(n) formats n in base 8 (SPEC_FULL.md §4.F.3: the distillation's
// source material used base 7 here, an apparent bug against its own
// "octal" documentation; Cantus exposes the corrected base-8 behavior).
func builtinOct(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	n, ok := asInt(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	return value.Text{S: strconv.FormatInt(n, 8)}, nil
}

// Length(s) is the rune count of a Text value.
func builtinLength(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	t, ok := arg(args, 0).(value.Text)
	if !ok {
		return value.Undef, nil
	}
	return value.NewNumberInt(int64(len([]rune(t.S)))), nil
}

// Concat(s1, s2, ...) joins every Text argument.
func builtinConcat(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	var sb strings.Builder
	for _, a := range args {
		t, ok := a.(value.Text)
		if !ok {
			return value.Undef, nil
		}
		sb.WriteString(t.S)
	}
	return value.Text{S: sb.String()}, nil
}

// UpperCase(s) locale-aware upper-cases s using golang.org/x/text/cases,
// generalizing the teacher's plain strings.ToUpper to a Unicode-correct
// fold (spec.md §4.F.1 domain stack wiring).
func builtinUpperCase(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	t, ok := arg(args, 0).(value.Text)
	if !ok {
		return value.Undef, nil
	}
	return value.Text{S: cases.Upper(language.Und).String(t.S)}, nil
}

// LowerCase(s) is UpperCase's mirror.
func builtinLowerCase(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	t, ok := arg(args, 0).(value.Text)
	if !ok {
		return value.Undef, nil
	}
	return value.Text{S: cases.Lower(language.Und).String(t.S)}, nil
}

// Trim(s) strips leading/trailing whitespace.
func builtinTrim(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	t, ok := arg(args, 0).(value.Text)
	if !ok {
		return value.Undef, nil
	}
	return value.Text{S: strings.TrimSpace(t.S)}, nil
}

// Normalize(s) applies Unicode NFC normalization.
func builtinNormalize(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	t, ok := arg(args, 0).(value.Text)
	if !ok {
		return value.Undef, nil
	}
	return value.Text{S: norm.NFC.String(t.S)}, nil
}

// StripAccents(s) decomposes to NFD and drops combining marks, leaving
// the base letters behind.
func builtinStripAccents(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	t, ok := arg(args, 0).(value.Text)
	if !ok {
		return value.Undef, nil
	}
	decomposed := norm.NFD.String(t.S)
	var sb strings.Builder
	for _, r := range decomposed {
		if isCombiningMark(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return value.Text{S: sb.String()}, nil
}

func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

// RegexMatch(s, pattern) reports whether pattern matches anywhere in s.
func builtinRegexMatch(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	s, ok1 := arg(args, 0).(value.Text)
	p, ok2 := arg(args, 1).(value.Text)
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	re, err := regexp.Compile(p.S)
	if err != nil {
		return value.Undef, nil
	}
	return value.Boolean{B: re.MatchString(s.S)}, nil
}

// RegexReplace(s, pattern, replacement) replaces every match of pattern
// in s with replacement.
func builtinRegexReplace(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	s, ok1 := arg(args, 0).(value.Text)
	p, ok2 := arg(args, 1).(value.Text)
	r, ok3 := arg(args, 2).(value.Text)
	if !ok1 || !ok2 || !ok3 {
		return value.Undef, nil
	}
	re, err := regexp.Compile(p.S)
	if err != nil {
		return value.Undef, nil
	}
	return value.Text{S: re.ReplaceAllString(s.S, r.S)}, nil
}
