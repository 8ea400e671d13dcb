package fiber

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives a finished fiber set.
type Sink interface {
	WriteSet(set Set) error
}

// FileNames maps each category to the table it is written to.
var FileNames = map[Category]string{
	Core:  "coreDivide.txt",
	Cover: "coverDivide.txt",
	Bar:   "barDivide.txt",
}

// TextSink writes one whitespace separated "y z area" table per category
// into Dir.
type TextSink struct {
	Dir string
}

// WriteSet implements Sink.
func (t TextSink) WriteSet(set Set) error {
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, c := range Categories {
		path := filepath.Join(t.Dir, FileNames[c])
		if err := writeFile(path, set.Fibers(c)); err != nil {
			return fmt.Errorf("write %s fibers: %w", c, err)
		}
	}
	return nil
}

func writeFile(path string, fs []Fiber) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTable(f, fs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTable writes one "%0.6f %0.6f %0.6f" row per fiber.
func WriteTable(w io.Writer, fs []Fiber) error {
	bw := bufio.NewWriter(w)
	for _, f := range fs {
		if _, err := fmt.Fprintf(bw, "%0.6f %0.6f %0.6f\n", f.Y, f.Z, f.Area); err != nil {
			return err
		}
	}
	return bw.Flush()
}
