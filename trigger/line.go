package trigger

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Prompt is printed before waiting for each line.
const Prompt = "Waiting for user signal"

// LineSource fires once for every line read, standing in for the motion sensor from a terminal.
type LineSource struct {
	in  io.Reader
	out io.Writer
}

// NewLineSource reads lines from in and writes prompts to out.
func NewLineSource(in io.Reader, out io.Writer) *LineSource {
	return &LineSource{in: in, out: out}
}

// Listen returns nil at the end of input.
func (s *LineSource) Listen(ctx context.Context, fire func()) error {
	lines := make(chan struct{})
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- struct{}{}:
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		fmt.Fprintln(s.out, Prompt)
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-lines:
			if !ok {
				return <-errc
			}
			fire()
		}
	}
}
