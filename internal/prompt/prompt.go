package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrExit is returned when the operator confirms an exit after an interrupt.
var ErrExit = errors.New("exit confirmed")

// ConfirmText is shown after an interrupt.
const ConfirmText = "\ndo you really want to exit? Y/N >"

type line struct {
	text string
	err  error
}

// Prompter writes prompts to out and reads answers from in.
//
// Input is scanned on a separate goroutine so that a read can be abandoned
// when an interrupt or context cancellation arrives.
type Prompter struct {
	out        io.Writer
	lines      chan line
	interrupts <-chan os.Signal
	done       chan struct{}
}

// New creates a Prompter. interrupts may be nil.
func New(in io.Reader, out io.Writer, interrupts <-chan os.Signal) *Prompter {
	p := &Prompter{
		out:        out,
		lines:      make(chan line),
		interrupts: interrupts,
		done:       make(chan struct{}),
	}
	go p.scan(in)
	return p
}

func (p *Prompter) scan(in io.Reader) {
	defer close(p.lines)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		select {
		case p.lines <- line{text: strings.TrimSuffix(sc.Text(), "\r")}:
		case <-p.done:
			return
		}
	}
	if err := sc.Err(); err != nil {
		select {
		case p.lines <- line{err: fmt.Errorf("read input: %w", err)}:
		case <-p.done:
		}
	}
}

// Close stops delivering input. A scan blocked inside the reader finishes
// when the reader returns.
func (p *Prompter) Close() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
}

// Printf writes operator-facing text.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Diagnostic writes a re-prompt message.
func (p *Prompter) Diagnostic(msg string) {
	fmt.Fprintf(p.out, "\n\t%s\n\n", msg)
}

// ReadLine shows text and returns the next input line without its newline.
//
// Returns io.EOF when input is exhausted and ErrExit when the operator
// confirms an exit.
func (p *Prompter) ReadLine(ctx context.Context, text string) (string, error) {
	fmt.Fprint(p.out, text)
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case l, ok := <-p.lines:
			if !ok {
				return "", io.EOF
			}
			return l.text, l.err
		case <-p.interrupts:
			if err := p.confirmExit(ctx); err != nil {
				return "", err
			}
			fmt.Fprint(p.out, text)
		}
	}
}

// confirmExit returns nil when the operator declines to exit.
// A second interrupt while confirming counts as yes.
func (p *Prompter) confirmExit(ctx context.Context) error {
	fmt.Fprint(p.out, ConfirmText)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return io.EOF
		}
		if l.err != nil {
			return l.err
		}
		if strings.EqualFold(strings.TrimSpace(l.text), "y") {
			return ErrExit
		}
		fmt.Fprintln(p.out)
		return nil
	case <-p.interrupts:
		fmt.Fprintln(p.out)
		return ErrExit
	}
}
