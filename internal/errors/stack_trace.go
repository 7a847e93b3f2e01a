package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/cantus-lang/cantus/internal/lexer"
)

// StackFrame represents a single frame in a call stack.
// It captures the function being executed and its location in the source code.
type StackFrame struct {
	Position     *lexer.Position
	FunctionName string
	FileName     string
}

// String returns a formatted string representation of the stack frame.
// Format matches DWScript: "FunctionName [line: N, column: M]"
// If position is not available, returns just the function name.
func (sf StackFrame) String() string {
	if sf.Position == nil {
		return sf.FunctionName
	}
	return fmt.Sprintf("%s [line: %d, column: %d]",
		sf.FunctionName, sf.Position.Line, sf.Position.Column)
}

// StackTrace represents a complete call stack as a sequence of frames.
// Frames are ordered from oldest (bottom of stack) to newest (top of stack).
type StackTrace []StackFrame

// String returns a formatted string representation of the entire stack trace.
// Each frame is printed on a separate line.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a new StackTrace with frames in reverse order.
// This is useful when you need to display the stack with the most recent call first.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}

// Top returns the most recent (top) frame in the stack, or nil if empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Bottom returns the oldest (bottom) frame in the stack, or nil if empty.
func (st StackTrace) Bottom() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[0]
}

// Depth returns the number of frames in the stack.
func (st StackTrace) Depth() int {
	return len(st)
}

// NewStackFrame creates a new stack frame with the given function name and position.
func NewStackFrame(functionName string, fileName string, position *lexer.Position) StackFrame {
	return StackFrame{
		FunctionName: functionName,
		FileName:     fileName,
		Position:     position,
	}
}

// NewStackTrace creates a new empty stack trace.
func NewStackTrace() StackTrace {
	return make(StackTrace, 0)
}

// RuntimeError decorates an EvaluatorError/MathError/IOError/Cancelled
// failure (spec.md §7) with the call stack it unwound through: internal/
// eval's evalCall pushes one StackFrame per Lambda invocation it wraps an
// error with, innermost call first (spec.md §4.J's task/function-call
// model is the only place Cantus has a real call stack to report).
type RuntimeError struct {
	Err   error
	Stack StackTrace
}

// Error reports the wrapped error's message followed by its call stack,
// one frame per line, if any frames were recorded.
func (re *RuntimeError) Error() string {
	if len(re.Stack) == 0 {
		return re.Err.Error()
	}
	return re.Err.Error() + "\n" + re.Stack.String()
}

// Unwrap exposes the wrapped error to errors.Is/errors.As.
func (re *RuntimeError) Unwrap() error { return re.Err }

// WithFrame records frame as the new bottom of err's call stack (the
// caller one level further out than whatever frames are already
// recorded), wrapping err in a RuntimeError the first time it crosses a
// call boundary. Each successive WithFrame call during unwinding adds
// the next-outer caller, so the finished StackTrace reads oldest/bottom
// (outermost call) to newest/top (the call where the error occurred),
// matching StackTrace's documented ordering.
func WithFrame(err error, frame StackFrame) error {
	if err == nil {
		return nil
	}
	var re *RuntimeError
	if stderrors.As(err, &re) {
		re.Stack = append(StackTrace{frame}, re.Stack...)
		return re
	}
	return &RuntimeError{Err: err, Stack: StackTrace{frame}}
}
