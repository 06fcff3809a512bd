package minipl

import (
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Frontend wires the scanner and the parser into a single pipeline that
// takes source text and produces the program's statement sequence.
type Frontend struct {
	// QueueSize is the capacity of the token queue used by
	// ParsePipelined.
	QueueSize int
}

func NewFrontend() *Frontend {
	return &Frontend{QueueSize: 64}
}

// Parse runs the two stages sequentially: the whole input is scanned
// into an in-memory token buffer, then parsed.
func (f *Frontend) Parse(reader io.Reader) ([]Statement, error) {
	toks := NewBuffer[Token]()
	if err := NewScanner(reader).Run(toks); err != nil {
		return nil, err
	}

	stmts := NewBuffer[Statement]()
	if err := NewParser().Run(toks, stmts); err != nil {
		return nil, err
	}

	return stmts.Items(), nil
}

// ParsePipelined runs the scanner and the parser on separate goroutines
// joined by a bounded token queue. The queue provides back-pressure in
// both directions; the result is identical to Parse for every input.
func (f *Frontend) ParsePipelined(reader io.Reader) ([]Statement, error) {
	queue := NewQueue[Token](f.QueueSize)

	var (
		g       errgroup.Group
		stmts   []Statement
		scanErr error
	)

	g.Go(func() error {
		defer queue.Close()

		scanErr = NewScanner(reader).Run(queue)
		return scanErr
	})

	g.Go(func() error {
		defer queue.Drop()

		return NewParser().Run(queue, SinkFunc[Statement](func(stmt Statement) bool {
			stmts = append(stmts, stmt)
			return true
		}))
	})

	if err := g.Wait(); err != nil {
		// A scanner failure truncates the token stream, which the parser
		// reports as a premature end of input; the scanner's error is
		// the root cause.
		if scanErr != nil {
			return nil, scanErr
		}

		return nil, err
	}

	return stmts, nil
}

func (f *Frontend) ParseString(src string) ([]Statement, error) {
	return f.Parse(strings.NewReader(src))
}

func (f *Frontend) ParseFile(filename string) ([]Statement, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return f.Parse(file)
}
