package handshake

import (
	"context"
	"errors"
	"time"

	"github.com/maefall/zenet/application"
	"github.com/maefall/zenet/auth"
	"github.com/maefall/zenet/frame"
	"github.com/maefall/zenet/wire"
)

// ClientState names the connect-side state machine's states (spec
// §4.9.2): INITIAL -> READ_PROBE -> {SEND_AUTH, DONE} -> AWAIT_RESPONSE
// -> {DONE, RETRY, FAIL}.
type ClientState int

const (
	ClientInitial ClientState = iota
	ClientReadProbe
	ClientSendAuth
	ClientAwaitResponse
	ClientDone
	ClientRetry
	ClientFail
)

// ErrHandshakeFailed is returned by ConnectAuthed when every retry
// attempt is exhausted without reaching AuthValid (spec §4.9.2:
// "Exhaustion -> FAIL").
var ErrHandshakeFailed = errors.New("handshake: exhausted retries without authenticating")

// Client drives the connect-side control-stream handshake.
type Client struct {
	ClientIdentifier string
	Key              []byte

	FrameCodec frame.Codec
	AuthCodec  auth.Codec

	FrameReceiveTimeout time.Duration
	RetryCooldown       time.Duration
	MaxRetries          int

	Logger application.Logger
}

// ConnectAuthed runs the connect-side state machine (spec §4.9.2) to
// completion on stream. It returns nil once the server confirms
// AuthValid, or ErrHandshakeFailed once retries are exhausted.
func (c *Client) ConnectAuthed(ctx context.Context, stream application.Stream) error {
	buf := wire.NewBuffer(nil)
	state := ClientInitial
	attempts := 0

	for {
		switch state {
		case ClientInitial:
			state = ClientReadProbe

		case ClientReadProbe:
			f, err := readFrame(ctx, stream, c.FrameCodec, buf, c.FrameReceiveTimeout)
			if err != nil {
				attempts++
				c.logf("handshake: read probe failed: %v", err)
				state = c.nextRetryState(attempts)
				continue
			}
			switch f.Kind {
			case frame.KindAuthValid:
				state = ClientDone
			case frame.KindAuthRequired, frame.KindAuthInvalid:
				state = ClientSendAuth
			default:
				attempts++
				c.logf("handshake: unexpected probe frame kind %d", f.Kind)
				state = c.nextRetryState(attempts)
			}

		case ClientSendAuth:
			payload, err := auth.NewAuthPayload(c.ClientIdentifier, c.Key)
			if err != nil {
				return err
			}
			payloadBytes, err := c.AuthCodec.Encode(nil, payload)
			if err != nil {
				return err
			}
			out, err := c.FrameCodec.Encode(nil, frame.Frame{Kind: frame.KindAuth, Payload: payloadBytes})
			if err != nil {
				return err
			}
			if _, err := stream.Write(out); err != nil {
				attempts++
				c.logf("handshake: sending auth payload failed: %v", err)
				state = c.nextRetryState(attempts)
				continue
			}
			state = ClientAwaitResponse

		case ClientAwaitResponse:
			f, err := readFrame(ctx, stream, c.FrameCodec, buf, c.FrameReceiveTimeout)
			if err != nil {
				attempts++
				c.logf("handshake: awaiting response failed (attempt %d): %v", attempts, err)
				state = c.nextRetryState(attempts)
				continue
			}
			if f.Kind == frame.KindAuthValid {
				state = ClientDone
				continue
			}
			attempts++
			c.logf("handshake: auth rejected (attempt %d), frame kind %d", attempts, f.Kind)
			state = c.nextRetryState(attempts)

		case ClientRetry:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.RetryCooldown):
			}
			buf.Reset()
			state = ClientReadProbe

		case ClientDone:
			return nil

		case ClientFail:
			return ErrHandshakeFailed

		default:
			return ErrHandshakeFailed
		}
	}
}

// nextRetryState decides RETRY vs FAIL given how many attempts have
// already failed (spec §4.9.2: "up to max_retries attempts;
// exhaustion -> FAIL"; a timeout counts as one failed attempt).
func (c *Client) nextRetryState(attempts int) ClientState {
	if attempts > c.MaxRetries {
		return ClientFail
	}
	return ClientRetry
}

func (c *Client) logf(format string, v ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, v...)
	}
}
