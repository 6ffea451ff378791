// Package handshake implements the control-stream state machines from
// spec §4.9: the server's accept-side probe/await-auth/accept-or-reject
// sequence and the client's connect-side probe/send-auth/retry
// sequence, each driven over one application.Stream.
package handshake

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maefall/zenet/application"
	"github.com/maefall/zenet/frame"
	"github.com/maefall/zenet/wire"
)

// readFrame reads from stream into buf until codec can decode one
// whole frame or timeout elapses. It is grounded on the teacher's
// readWithContext (crypto/chacha20/handshake.go): a deadline is set on
// the stream and a blocked Read is forced to return once it expires.
// Here the timeout is a read deadline set on the stream before reading;
// an errgroup.Group runs the read loop and a watchdog concurrently, and
// if ctx is cancelled before a frame arrives the watchdog resets the
// read deadline to now so the blocked Read returns promptly — matching
// spec §5's "suspension points: reading from or writing to a stream;
// awaiting a timeout".
// A timeout of zero or less means "no deadline" — the server side of
// the handshake relies entirely on whatever timeout the transport
// already imposes (spec §5). In that case the watchdog does not touch
// the deadline, so cancelling ctx does not unblock a pending Read.
func readFrame(ctx context.Context, stream application.Stream, codec frame.Codec, buf *wire.Buffer, timeout time.Duration) (*frame.Frame, error) {
	if timeout > 0 {
		if err := stream.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
		defer func() { _ = stream.SetReadDeadline(time.Time{}) }()
	}

	if f, err := codec.Decode(buf); err != nil {
		return nil, err
	} else if f != nil {
		return f, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	readDone, cancelWatchdog := context.WithCancel(gctx)
	defer cancelWatchdog()
	var result *frame.Frame

	g.Go(func() error {
		defer cancelWatchdog()
		chunk := make([]byte, 4096)
		for {
			n, err := stream.Read(chunk)
			if n > 0 {
				buf.Append(chunk[:n])
				f, decErr := codec.Decode(buf)
				if decErr != nil {
					return decErr
				}
				if f != nil {
					result = f
					return nil
				}
			}
			if err != nil {
				return err
			}
		}
	})

	g.Go(func() error {
		<-readDone.Done()
		if result == nil && timeout > 0 {
			_ = stream.SetReadDeadline(time.Now())
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
