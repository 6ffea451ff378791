package handshake

import (
	"context"
	"time"

	"github.com/maefall/zenet/application"
	"github.com/maefall/zenet/auth"
	"github.com/maefall/zenet/frame"
	"github.com/maefall/zenet/session"
	"github.com/maefall/zenet/wire"
)

// ServerState names the accept-side state machine's states (spec
// §4.9.1): INITIAL -> PROBED -> AWAIT_AUTH -> {ACCEPTED, REJECTED}.
type ServerState int

const (
	ServerInitial ServerState = iota
	ServerProbed
	ServerAwaitAuth
	ServerAccepted
	ServerRejected
)

// Server drives the accept-side control-stream handshake over one
// connection. It holds no per-handshake mutable state beyond its
// configuration, matching spec §5 ("each task instantiates its own"
// codec) — callers construct one Server and reuse it across
// connections.
type Server struct {
	Sessions      *session.Manager
	Authenticator *auth.Authenticator
	FrameCodec    frame.Codec
	AuthCodec     auth.Codec
	Logger        application.Logger
}

// AcceptAuthed runs the server-side state machine (spec §4.9.1) to
// completion on stream for connectionID, and reports whether the
// connection reached ACCEPTED. On REJECTED it returns (false, nil) —
// rejection is part of the protocol, not a Go error. A failure to read
// or decode the client's auth frame is logged and ends in REJECTED;
// a failure to encode or write a response frame returns a non-nil
// error.
func (s *Server) AcceptAuthed(ctx context.Context, stream application.Stream, connectionID uint64) (bool, error) {
	buf := wire.NewBuffer(nil)
	state := ServerInitial

	for {
		switch state {
		case ServerInitial:
			kind := frame.KindAuthRequired
			if s.Sessions.IsAuthenticated(connectionID) {
				kind = frame.KindAuthValid
			}
			out, err := s.FrameCodec.Encode(nil, frame.Frame{Kind: kind})
			if err != nil {
				return false, err
			}
			if _, err := stream.Write(out); err != nil {
				return false, err
			}
			if kind == frame.KindAuthValid {
				state = ServerAccepted
			} else {
				state = ServerAwaitAuth
			}

		case ServerAwaitAuth:
			f, err := readFrame(ctx, stream, s.FrameCodec, buf, 0)
			if err != nil {
				s.logf("handshake: connection %d: read failed: %v", connectionID, err)
				state = ServerRejected
				continue
			}
			if f.Kind != frame.KindAuth {
				s.logf("handshake: connection %d: unexpected frame kind %d while awaiting auth", connectionID, f.Kind)
				state = ServerRejected
				continue
			}

			payloadBuf := wire.NewBuffer(f.Payload)
			payload, err := s.AuthCodec.Decode(payloadBuf)
			if err != nil || payload == nil {
				s.logf("handshake: connection %d: malformed auth payload: %v", connectionID, err)
				state = ServerRejected
				continue
			}

			ok, verifyErr := s.Authenticator.Verify(*payload)
			if verifyErr != nil {
				s.logf("handshake: connection %d: verification error: %v", connectionID, verifyErr)
			}

			responseKind := frame.KindAuthInvalid
			if ok {
				responseKind = frame.KindAuthValid
			}
			out, encErr := s.FrameCodec.Encode(nil, frame.Frame{Kind: responseKind})
			if encErr != nil {
				return false, encErr
			}
			if _, writeErr := stream.Write(out); writeErr != nil {
				return false, writeErr
			}

			if ok {
				s.Sessions.Authenticate(connectionID, payload.ClientIdentifier, uint64(time.Now().Unix()))
				state = ServerAccepted
			} else {
				state = ServerRejected
			}

		case ServerAccepted:
			return true, nil

		case ServerRejected:
			return false, nil

		default:
			return false, nil
		}
	}
}

func (s *Server) logf(format string, v ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, v...)
	}
}
