package tracing

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/memverif/sim"
)

// VCDTraceWriter writes a Value Change Dump that waveform viewers such as
// GTKWave can open.
type VCDTraceWriter struct {
	path     string
	timeUnit string
	scope    string

	file *os.File
	w    *bufio.Writer

	ids      map[string]string
	widths   map[string]int
	samples  []Sample
	lastTime sim.VTime
	anyTime  bool
	closed   bool
}

// NewVCDTraceWriter creates a writer for the file at path. The time unit is
// used for the $timescale declaration, such as "ns".
func NewVCDTraceWriter(path, timeUnit string) *VCDTraceWriter {
	return &VCDTraceWriter{
		path:     path,
		timeUnit: timeUnit,
		scope:    "bench",
		ids:      make(map[string]string),
		widths:   make(map[string]int),
	}
}

// vcdID returns the short identifier of the i-th signal, drawn from the
// printable ASCII range the format reserves for identifiers.
func vcdID(i int) string {
	const first, count = '!', '~' - '!' + 1

	id := ""
	for {
		id += string(rune(first + i%count))
		i /= count
		if i == 0 {
			return id
		}
		i--
	}
}

// Init creates the file and writes the header.
func (t *VCDTraceWriter) Init(signals []Signal) error {
	file, err := os.Create(t.path)
	if err != nil {
		return errors.Wrap(err, "creating VCD trace")
	}

	t.file = file
	t.w = bufio.NewWriter(file)

	fmt.Fprintf(t.w, "$date %s $end\n", time.Now().Format(time.RFC1123))
	fmt.Fprintf(t.w, "$version memverif $end\n")
	fmt.Fprintf(t.w, "$timescale 1%s $end\n", t.timeUnit)
	fmt.Fprintf(t.w, "$scope module %s $end\n", t.scope)

	for i, s := range signals {
		id := vcdID(i)
		t.ids[s.Name] = id
		t.widths[s.Name] = s.Width
		fmt.Fprintf(t.w, "$var wire %d %s %s $end\n", s.Width, id, s.Name)
	}

	fmt.Fprintf(t.w, "$upscope $end\n")
	fmt.Fprintf(t.w, "$enddefinitions $end\n")

	atexit.Register(func() {
		if err := t.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing VCD trace: %v\n", err)
		}
	})

	return nil
}

// Write buffers a value change.
func (t *VCDTraceWriter) Write(sample Sample) {
	t.samples = append(t.samples, sample)
}

// Flush writes the buffered value changes.
func (t *VCDTraceWriter) Flush() {
	if t.closed {
		return
	}

	for _, s := range t.samples {
		if !t.anyTime || s.Time != t.lastTime {
			fmt.Fprintf(t.w, "#%d\n", s.Time)
			t.lastTime = s.Time
			t.anyTime = true
		}

		id := t.ids[s.Signal]
		if t.widths[s.Signal] == 1 {
			fmt.Fprintf(t.w, "%d%s\n", s.Value&1, id)
			continue
		}

		fmt.Fprintf(t.w, "b%s %s\n", strconv.FormatUint(s.Value, 2), id)
	}

	t.samples = nil

	if err := t.w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "writing VCD trace: %v\n", err)
	}
}

// Close flushes and closes the file. Closing twice is harmless.
func (t *VCDTraceWriter) Close() error {
	if t.closed {
		return nil
	}

	t.Flush()
	t.closed = true

	return t.file.Close()
}
