package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/ds4wire/device/ds4"
	"github.com/Alia5/ds4wire/internal/log"
	"github.com/Alia5/ds4wire/internal/stream"
)

// Decode reads ds4 frames from a file or stdin and logs their contents.
type Decode struct {
	Input   string `arg:"" optional:"" default:"-" help:"Frame source file, '-' for stdin"`
	Hex     bool   `help:"Input is hex text instead of raw bytes" env:"DS4WIRE_DECODE_HEX"`
	Changes bool   `help:"Only log frames whose state differs from the previous valid frame" env:"DS4WIRE_DECODE_CHANGES"`
	Strict  bool   `help:"Stop at the first invalid frame" env:"DS4WIRE_DECODE_STRICT"`
}

// Run is called by Kong when the decode command is executed.
func (d *Decode) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src io.Reader = os.Stdin
	if d.Input != "-" && d.Input != "" {
		f, err := os.Open(d.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		src = f
	}
	return d.run(ctx, src, logger, rawLogger)
}

func (d *Decode) run(ctx context.Context, src io.Reader, logger *slog.Logger, rawLogger log.RawLogger) error {
	var r *stream.Reader
	if d.Hex {
		r = stream.NewHexReader(src)
	} else {
		r = stream.NewReader(src)
	}

	logger = logger.With("input", d.Input)
	logger.Info("Decoding frames", "hex", d.Hex, "strict", d.Strict)
	defer func() {
		frames, invalid, skipped := r.Stats()
		logger.Info("Decode finished", "frames", frames, "invalid", invalid, "skippedBytes", skipped)
	}()

	var (
		last    ds4.InputState
		haveOne bool
	)
	for {
		if err := ctx.Err(); err != nil {
			logger.Info("Decode interrupted")
			return nil
		}

		p, off, err := next(ctx, r, src)
		if ctx.Err() != nil {
			logger.Info("Decode interrupted")
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			logger.Warn("Trailing partial frame", "offset", off)
			return nil
		}
		if err != nil {
			return err
		}
		rawLogger.Log(off, p.Raw()[:], p.Valid())

		if d.Strict {
			if _, err := ds4.Parse(p.Raw()); err != nil {
				return fmt.Errorf("frame at offset %d: %w", off, err)
			}
		}
		if !p.Valid() {
			logger.Debug("Invalid frame", "offset", off, "header", p.Raw()[ds4.ByteHeader], "checksum", p.Raw()[ds4.ByteChecksum], "expected", ds4.Checksum(p.Raw()))
			continue
		}

		st := p.State()
		if d.Changes && haveOne && st == last {
			continue
		}
		last, haveOne = st, true
		logger.Info("Frame", "offset", off, "state", st.String(), "buttons", pressedNames(st))
	}
}

type frameResult struct {
	p   ds4.Packet
	off int64
	err error
}

// next waits for the following frame or for ctx to end. On cancellation a
// closable src is closed so the pending read returns.
func next(ctx context.Context, r *stream.Reader, src io.Reader) (ds4.Packet, int64, error) {
	ch := make(chan frameResult, 1)
	go func() {
		p, off, err := r.Next()
		ch <- frameResult{p: p, off: off, err: err}
	}()

	select {
	case <-ctx.Done():
		if c, ok := src.(io.Closer); ok {
			_ = c.Close()
		}
		return ds4.Packet{}, 0, ctx.Err()
	case res := <-ch:
		return res.p, res.off, res.err
	}
}

func pressedNames(st ds4.InputState) []string {
	names := make([]string, 0, 4)
	for _, b := range ds4.Buttons() {
		if st.Pressed(b) {
			names = append(names, b.String())
		}
	}
	return names
}
