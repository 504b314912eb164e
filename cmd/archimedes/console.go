package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// console reads user input line by line and writes prompts and replies.
type console struct {
	in  *bufio.Reader
	out io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewReader(in), out: out}
}

// readLine prints prompt and returns the next line without its line ending.
// io.EOF is returned only when no input is left.
func (c *console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

// ask prompts for a value, returning def when the answer is blank or input has ended.
func (c *console) ask(label, def string) string {
	prompt := label + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, def)
	}
	answer, err := c.readLine(prompt)
	answer = strings.TrimSpace(answer)
	if err != nil || answer == "" {
		return def
	}
	return answer
}

func (c *console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}
