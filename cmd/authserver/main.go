// Command authserver is a minimal TCP demo harness for the auth
// handshake framework (spec §1 lists "example main harnesses" as out
// of scope for the core; this is that harness, standing in for a QUIC
// endpoint's accept loop the way the teacher's main.go stands in for a
// full VPN server).
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/maefall/zenet/application"
	"github.com/maefall/zenet/auth"
	"github.com/maefall/zenet/auth/noncestore"
	"github.com/maefall/zenet/handshake"
	"github.com/maefall/zenet/internal/config"
	"github.com/maefall/zenet/internal/logging"
	"github.com/maefall/zenet/session"
)

func main() {
	addr := flag.String("addr", ":9443", "address to listen on")
	identifier := flag.String("identifier", "demo-client", "client identifier to provision a key for")
	key := flag.String("key", "", "shared secret key for -identifier (required)")
	configPath := flag.String("config", "", "optional JSON config file (overridable by NETAUTH_* env vars)")
	flag.Parse()

	if *key == "" {
		fmt.Println("authserver: -key is required")
		os.Exit(1)
	}

	logger := logging.NewStdLogger()
	cfg, err := config.Read(*configPath)
	if err != nil {
		logger.Printf("authserver: config: %v", err)
		os.Exit(1)
	}

	store := noncestore.NewMemoryStore(cfg.MaxPerClient, cfg.NonceTTL())
	store.SetKey(*identifier, []byte(*key))

	sessions := session.NewManager()
	server := &handshake.Server{
		Sessions: sessions,
		Authenticator: &auth.Authenticator{
			Store:       store,
			SkewSeconds: cfg.SkewSeconds,
			NonceTTL:    cfg.NonceTTL(),
		},
		FrameCodec: cfg.FrameCodec(),
		AuthCodec:  auth.NewCodec(),
		Logger:     logger,
	}

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Printf("authserver: listen: %v", err)
		os.Exit(1)
	}
	defer listener.Close()
	logger.Printf("authserver: listening on %s", *addr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Printf("authserver: shutting down")
		cancel()
		_ = listener.Close()
	}()

	go session.RunIdleReaperLoop(ctx, sessions, application.SystemClock{}, 30*time.Minute, time.Minute, logger)
	go noncestore.RunCleanupLoop(ctx, store, application.SystemClock{}, cfg.CleanupInterval)

	var nextConnectionID uint64
	for {
		conn, acceptErr := listener.Accept()
		if acceptErr != nil {
			select {
			case <-ctx.Done():
				return
			default:
				logger.Printf("authserver: accept: %v", acceptErr)
				continue
			}
		}

		connectionID := atomic.AddUint64(&nextConnectionID, 1)
		go func() {
			defer conn.Close()
			accepted, handshakeErr := server.AcceptAuthed(ctx, conn, connectionID)
			if handshakeErr != nil {
				logger.Printf("authserver: connection %d: handshake error: %v", connectionID, handshakeErr)
				return
			}
			if !accepted {
				logger.Printf("authserver: connection %d: rejected", connectionID)
				return
			}
			logger.Printf("authserver: connection %d: accepted", connectionID)
		}()
	}
}
