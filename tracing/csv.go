package tracing

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"
)

// CSVTraceWriter stores samples in a CSV file, one value change per line.
type CSVTraceWriter struct {
	path string
	file *os.File

	samples    []Sample
	bufferSize int
	closed     bool
}

// NewCSVTraceWriter creates a writer for the file at path.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the file and writes the header line.
func (t *CSVTraceWriter) Init(_ []Signal) error {
	file, err := os.Create(t.path)
	if err != nil {
		return errors.Wrap(err, "creating CSV trace")
	}
	t.file = file

	fmt.Fprintf(file, "Time, Signal, Value\n")

	atexit.Register(func() {
		if err := t.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing CSV trace: %v\n", err)
		}
	})

	return nil
}

// Write buffers a sample.
func (t *CSVTraceWriter) Write(sample Sample) {
	t.samples = append(t.samples, sample)
	if len(t.samples) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes the buffered samples to the file.
func (t *CSVTraceWriter) Flush() {
	if t.closed {
		return
	}

	for _, s := range t.samples {
		fmt.Fprintf(t.file, "%d, %s, 0x%x\n", s.Time, s.Signal, s.Value)
	}

	t.samples = nil
}

// Close flushes and closes the file. Closing twice is harmless.
func (t *CSVTraceWriter) Close() error {
	if t.closed {
		return nil
	}

	t.Flush()
	t.closed = true

	return t.file.Close()
}
