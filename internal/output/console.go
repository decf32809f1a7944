// Package output handles console presentation of generated artifacts.
package output

import (
	"fmt"

	"github.com/fatih/color"
)

// PrintArtifact prints a generated artifact under a colored heading.
func PrintArtifact(heading, body string) {
	color.Green(heading)
	fmt.Printf("%s\n", body)
}

// Successf prints a green status line.
func Successf(format string, a ...any) {
	color.Green(format, a...)
}

// Noticef prints a plain guidance line.
func Noticef(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}
