package ux

import (
	"fmt"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Success prints a bold green checkmark line.
func Success(format string, args ...any) {
	fmt.Printf("%s%s✓ %s%s\n", Bold, Green, fmt.Sprintf(format, args...), Reset)
}

// Warn prints a yellow warning line.
func Warn(format string, args ...any) {
	fmt.Printf("%s⚠ %s%s\n", Yellow, fmt.Sprintf(format, args...), Reset)
}

// Fail prints a red failure line.
func Fail(format string, args ...any) {
	fmt.Printf("%s✗ %s%s\n", Red, fmt.Sprintf(format, args...), Reset)
}

// Header prints a bold section header.
func Header(text string) {
	fmt.Printf("\n%s%s%s\n", Bold, text, Reset)
}
