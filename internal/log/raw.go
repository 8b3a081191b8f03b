package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps raw frame bytes as they arrive from a stream.
type RawLogger interface {
	// Log records b, read at stream offset off. valid is the result of
	// frame validation.
	Log(off int64, b []byte, valid bool)
}

// NewRaw returns a RawLogger writing one line per frame to w. A nil w
// discards everything.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return nopRaw{}
	}
	return &rawWriter{w: w}
}

type nopRaw struct{}

func (nopRaw) Log(int64, []byte, bool) {}

type rawWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (r *rawWriter) Log(off int64, b []byte, valid bool) {
	mark := "ok "
	if !valid {
		mark = "bad"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.w, "%s %08x %s % x\n",
		time.Now().Format("15:04:05.000000"), off, mark, b)
}
