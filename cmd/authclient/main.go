// Command authclient is the connect-side counterpart to authserver: it
// dials a TCP address, runs the client-side handshake, and reports
// whether it was authenticated.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/maefall/zenet/auth"
	"github.com/maefall/zenet/handshake"
	"github.com/maefall/zenet/internal/config"
	"github.com/maefall/zenet/internal/logging"
)

func main() {
	addr := flag.String("addr", "localhost:9443", "address to dial")
	identifier := flag.String("identifier", "demo-client", "client identifier")
	key := flag.String("key", "", "shared secret key for -identifier (required)")
	configPath := flag.String("config", "", "optional JSON config file (overridable by NETAUTH_* env vars)")
	flag.Parse()

	if *key == "" {
		fmt.Println("authclient: -key is required")
		os.Exit(1)
	}

	logger := logging.NewStdLogger()
	cfg, err := config.Read(*configPath)
	if err != nil {
		logger.Printf("authclient: config: %v", err)
		os.Exit(1)
	}

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		logger.Printf("authclient: dial: %v", err)
		os.Exit(1)
	}
	defer conn.Close()

	client := &handshake.Client{
		ClientIdentifier:    *identifier,
		Key:                 []byte(*key),
		FrameCodec:          cfg.FrameCodec(),
		AuthCodec:           auth.NewCodec(),
		FrameReceiveTimeout: cfg.FrameReceiveTimeout,
		RetryCooldown:       cfg.RetryCooldown,
		MaxRetries:          cfg.MaxRetries,
		Logger:              logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := client.ConnectAuthed(ctx, conn); err != nil {
		logger.Printf("authclient: handshake failed: %v", err)
		os.Exit(1)
	}

	fmt.Println("authclient: authenticated")
}
