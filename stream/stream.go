package stream

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/kbukum/rollup/pipeline"
)

// MaxLineSize is the largest single line the scanner accepts.
// Longer lines surface as a stream error rather than silent truncation.
const MaxLineSize = 1 << 20

// Lines returns a pipeline over r's newline-delimited lines, without the
// line terminator. The reader's lifetime belongs to the caller.
func Lines(r io.Reader) *pipeline.Pipeline[[]byte] {
	return pipeline.FromFunc(func(_ context.Context) pipeline.Iterator[[]byte] {
		return newLineIter(r, nil)
	})
}

// Open returns a pipeline over the named file's lines. The file is opened
// on first pull and closed when the iterator is closed; an open failure
// surfaces as the first pull's error.
func Open(path string) *pipeline.Pipeline[[]byte] {
	return pipeline.FromFunc(func(_ context.Context) pipeline.Iterator[[]byte] {
		return &fileIter{path: path}
	})
}

type lineIter struct {
	sc     *bufio.Scanner
	closer io.Closer
	err    error
}

func newLineIter(r io.Reader, closer io.Closer) *lineIter {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MaxLineSize)
	return &lineIter{sc: sc, closer: closer}
}

func (it *lineIter) Next(_ context.Context) ([]byte, bool, error) {
	if it.err != nil {
		return nil, false, it.err
	}
	if it.sc.Scan() {
		// Copy out of the scanner's reused buffer so the caller owns the line.
		line := make([]byte, len(it.sc.Bytes()))
		copy(line, it.sc.Bytes())
		return line, true, nil
	}
	if err := it.sc.Err(); err != nil {
		it.err = err
		return nil, false, err
	}
	return nil, false, nil
}

func (it *lineIter) Close() error {
	if it.closer != nil {
		return it.closer.Close()
	}
	return nil
}

type fileIter struct {
	path  string
	inner *lineIter
	err   error
}

func (it *fileIter) Next(ctx context.Context) ([]byte, bool, error) {
	if it.err != nil {
		return nil, false, it.err
	}
	if it.inner == nil {
		f, err := os.Open(it.path)
		if err != nil {
			it.err = err
			return nil, false, err
		}
		it.inner = newLineIter(f, f)
	}
	return it.inner.Next(ctx)
}

func (it *fileIter) Close() error {
	if it.inner != nil {
		return it.inner.Close()
	}
	return nil
}
