// Package stream splits a byte stream into ds4 frames.
//
// The Reader is the host side of the link: it does not assemble anything
// beyond single fixed-size frames, it only keeps the stream aligned on the
// header sentinel.
package stream

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/Alia5/ds4wire/device/ds4"
)

// Reader yields frames from an underlying io.Reader.
//
// Packets returned by Next reference the Reader's internal buffer and are
// only usable until the following call to Next.
type Reader struct {
	r   io.Reader
	buf [ds4.Length]byte
	n   int   // bytes currently in buf
	off int64 // stream offset of buf[0]

	// last frame handed out: drop it whole when valid, slide past its
	// header when not
	pending bool
	lastOK  bool

	frames  int
	invalid int
	skipped int64
}

// NewReader returns a Reader over raw binary frames.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// NewHexReader returns a Reader over hex text such as "80 00 01 10 ...".
// Whitespace between digits is ignored.
func NewHexReader(r io.Reader) *Reader {
	return NewReader(&hexReader{s: bufio.NewReader(r)})
}

// Next returns the next frame along with its stream offset. Invalid frames
// are returned too; check Packet.Valid.
//
// io.EOF is returned at a clean end of stream. A trailing partial frame
// yields io.ErrUnexpectedEOF.
func (r *Reader) Next() (ds4.Packet, int64, error) {
	if r.pending {
		r.advance()
	}

	for r.n < ds4.Length {
		m, err := r.r.Read(r.buf[r.n:])
		r.n += m
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			if r.n == 0 {
				return ds4.Packet{}, r.off, io.EOF
			}
			if r.n < ds4.Length {
				return ds4.Packet{}, r.off, io.ErrUnexpectedEOF
			}
			break
		}
		return ds4.Packet{}, r.off, fmt.Errorf("read frame at offset %d: %w", r.off+int64(r.n), err)
	}

	p := ds4.New(&r.buf)
	r.pending = true
	r.lastOK = p.Valid()
	r.frames++
	if !r.lastOK {
		r.invalid++
	}
	return p, r.off, nil
}

// advance drops the previously returned frame. After an invalid frame only
// the bytes before the next header sentinel are dropped so the stream can
// realign mid-frame.
func (r *Reader) advance() {
	drop := ds4.Length
	if !r.lastOK {
		drop = 1
		if i := bytes.IndexByte(r.buf[1:r.n], ds4.Header); i >= 0 {
			drop += i
		} else {
			drop = r.n
		}
		r.skipped += int64(drop)
	}
	copy(r.buf[:], r.buf[drop:r.n])
	r.n -= drop
	r.off += int64(drop)
	r.pending = false
}

// Stats reports how many frames were returned, how many of those were
// invalid, and how many bytes were discarded while realigning.
func (r *Reader) Stats() (frames, invalid int, skipped int64) {
	return r.frames, r.invalid, r.skipped
}

type hexReader struct {
	s    *bufio.Reader
	half [2]byte
	nh   int
}

// Read decodes hex digit pairs, skipping whitespace and commas. An odd
// trailing digit is an error.
func (h *hexReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		c, err := h.s.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && h.nh != 0 {
				return n, fmt.Errorf("hex input: odd number of digits: %w", hex.ErrLength)
			}
			if n > 0 && errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
		switch c {
		case '\n':
			// hand over complete lines so interactive input is not held back
			if n > 0 && h.nh == 0 {
				return n, nil
			}
			continue
		case ' ', '\t', '\r', ',':
			continue
		}
		h.half[h.nh] = c
		h.nh++
		if h.nh < len(h.half) {
			continue
		}
		h.nh = 0
		if _, err := hex.Decode(p[n:n+1], h.half[:]); err != nil {
			return n, fmt.Errorf("hex input: %w", err)
		}
		n++
	}
	return n, nil
}
