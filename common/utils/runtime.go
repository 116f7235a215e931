package utils

import (
	"runtime"
	"strings"
)

// GetCallerFunctionName returns the short name of the function skip frames up
// the stack, with any receiver and package path removed.
func GetCallerFunctionName(skip int) string {
	pc := make([]uintptr, 1)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return "<unknown>"
	}
	frame, _ := runtime.CallersFrames(pc[:n]).Next()
	if frame.Function == "" {
		return "<unknown>"
	}
	name := strings.ReplaceAll(frame.Function, "[...]", "")
	// Closures are reported as Outer.func1; name them after the enclosing function.
	for strings.Contains(name, ".func") {
		name = name[:strings.LastIndex(name, ".func")]
	}
	if i := strings.LastIndexByte(name, '.'); i != -1 {
		name = name[i+1:]
	}
	return name
}
