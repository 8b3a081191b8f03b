package stream_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Alia5/ds4wire/device/ds4"
	"github.com/Alia5/ds4wire/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFrame(buttons uint16, r2 uint8) []byte {
	raw := [ds4.Length]byte{ds4.Header, byte(buttons >> 8), byte(buttons), 0, 0, 0, 0, r2, 0}
	raw[ds4.ByteChecksum] = ds4.Checksum(&raw)
	return raw[:]
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func TestReaderSequentialFrames(t *testing.T) {
	in := concat(validFrame(uint16(ds4.Circle), 1), validFrame(uint16(ds4.R1), 2))
	r := stream.NewReader(bytes.NewReader(in))

	p, off, err := r.Next()
	require.NoError(t, err)
	assert.True(t, p.Valid())
	assert.Equal(t, int64(0), off)
	assert.True(t, p.Bit(ds4.Circle))

	p, off, err = r.Next()
	require.NoError(t, err)
	assert.True(t, p.Valid())
	assert.Equal(t, int64(10), off)
	assert.True(t, p.Bit(ds4.R1))
	assert.Equal(t, uint8(2), p.Triggers().R2)

	_, _, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)

	frames, invalid, skipped := r.Stats()
	assert.Equal(t, 2, frames)
	assert.Equal(t, 0, invalid)
	assert.Equal(t, int64(0), skipped)
}

func TestReaderResyncsOnHeader(t *testing.T) {
	// Three garbage bytes shift the stream out of alignment.
	in := concat([]byte{0x01, 0x02, 0x03}, validFrame(uint16(ds4.Share), 9), validFrame(0, 0))
	r := stream.NewReader(bytes.NewReader(in))

	p, off, err := r.Next()
	require.NoError(t, err)
	assert.False(t, p.Valid())
	assert.Equal(t, int64(0), off)

	p, off, err = r.Next()
	require.NoError(t, err)
	require.True(t, p.Valid())
	assert.Equal(t, int64(3), off)
	assert.True(t, p.Bit(ds4.Share))

	p, off, err = r.Next()
	require.NoError(t, err)
	assert.True(t, p.Valid())
	assert.Equal(t, int64(13), off)

	_, _, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)

	frames, invalid, skipped := r.Stats()
	assert.Equal(t, 3, frames)
	assert.Equal(t, 1, invalid)
	assert.Equal(t, int64(3), skipped)
}

func TestReaderBadChecksumSlidesPastHeader(t *testing.T) {
	bad := validFrame(0, 0)
	bad[ds4.ByteChecksum]++
	in := concat(bad, validFrame(uint16(ds4.Up), 0))
	r := stream.NewReader(bytes.NewReader(in))

	p, _, err := r.Next()
	require.NoError(t, err)
	assert.False(t, p.Valid())

	// No other header byte in the bad frame, so the whole frame is skipped.
	p, off, err := r.Next()
	require.NoError(t, err)
	assert.True(t, p.Valid())
	assert.Equal(t, int64(10), off)
	assert.True(t, p.Bit(ds4.Up))
}

func TestReaderPartialFrame(t *testing.T) {
	in := concat(validFrame(0, 0), []byte{ds4.Header, 0x00, 0x01})
	r := stream.NewReader(bytes.NewReader(in))

	_, _, err := r.Next()
	require.NoError(t, err)

	_, _, err = r.Next()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReaderEmpty(t *testing.T) {
	r := stream.NewReader(bytes.NewReader(nil))
	_, _, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestReaderPropagatesErrors(t *testing.T) {
	boom := errors.New("link down")
	r := stream.NewReader(failingReader{err: boom})

	_, _, err := r.Next()
	assert.ErrorIs(t, err, boom)
}

func TestHexReader(t *testing.T) {
	in := "80 00 01 10 F0 00 00 00 00 A1\n" +
		"80,00,00,00,00,00,00,00,00,80\n"
	r := stream.NewHexReader(strings.NewReader(in))

	p, _, err := r.Next()
	require.NoError(t, err)
	require.True(t, p.Valid())
	assert.Equal(t, ds4.Sticks{RX: 16, RY: -16}, p.Sticks())

	p, off, err := r.Next()
	require.NoError(t, err)
	assert.True(t, p.Valid())
	assert.Equal(t, int64(10), off)

	_, _, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestHexReaderRejectsGarbage(t *testing.T) {
	r := stream.NewHexReader(strings.NewReader("80 zz"))
	_, _, err := r.Next()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestHexReaderOddDigits(t *testing.T) {
	r := stream.NewHexReader(strings.NewReader("80000110F0000000A1 8"))
	_, _, err := r.Next()
	assert.Error(t, err)
}
