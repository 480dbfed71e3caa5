package transport

import (
	"io"
	"os"
)

// DialIO returns a Conn writing to out and reading from in. CloseWrite
// closes out only.
func DialIO(out io.WriteCloser, in io.ReadCloser) Conn {
	return &ioduplex{out, in}
}

// DialStdio returns a Conn over Stdout and Stdin.
func DialStdio() Conn {
	return DialIO(os.Stdout, os.Stdin)
}
