package rlog

import (
	"fmt"
	"io"
)

// consoleWriter formats entries as "LEVEL message key=value ...".
type consoleWriter struct {
	out io.Writer
}

func (c *consoleWriter) Write(e *Entry) error {
	line := fmt.Sprintf("%s %s", e.Level.String(), e.Message)
	for k, v := range e.Fields {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	_, err := fmt.Fprintln(c.out, line)
	return err
}

func (c *consoleWriter) Close() error { return nil }
