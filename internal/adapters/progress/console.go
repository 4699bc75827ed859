package progress

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ConsoleSink writes progress messages to the terminal with a colored level
// marker. It satisfies usecase.ProgressSink.
type ConsoleSink struct {
	out io.Writer
}

// NewConsoleSink creates a sink writing to out
func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

func (s *ConsoleSink) Info(message string) {
	fmt.Fprintf(s.out, "%s %s\n", color.GreenString("✓"), message)
}

func (s *ConsoleSink) Warn(message string) {
	fmt.Fprintf(s.out, "%s %s\n", color.YellowString("!"), message)
}

func (s *ConsoleSink) Error(message string) {
	fmt.Fprintf(s.out, "%s %s\n", color.RedString("✗"), message)
}
