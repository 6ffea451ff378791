// Package config holds the handshake framework's tunable settings
// (spec §6), laid out as a plain struct with json tags the way the
// teacher's infrastructure/settings package does — no config library.
// Default() gives the baseline; Read() layers an optional JSON file
// and NETAUTH_* environment variables on top of it.
package config

import (
	"time"

	"github.com/maefall/zenet/frame"
)

// Config collects every setting spec §6 enumerates.
type Config struct {
	// SkewSeconds bounds the allowed timestamp tolerance and doubles as
	// the nonce store's TTL.
	SkewSeconds uint64 `json:"SkewSeconds"`

	// MaxPerClient bounds the per-client nonce FIFO.
	MaxPerClient int `json:"MaxPerClient"`

	// MaxPayloadLength caps an individual frame's payload.
	MaxPayloadLength int `json:"MaxPayloadLength"`

	// MaxLength caps an entire encoded frame. Defaults to
	// frame.FixedPartLength + MaxPayloadLength (spec §6: "derived").
	MaxLength int `json:"MaxLength"`

	// FrameReceiveTimeout bounds how long the client side waits for
	// one frame before treating the read as a failed attempt.
	FrameReceiveTimeout time.Duration `json:"FrameReceiveTimeout"`

	// RetryCooldown is the pause between client-side handshake retries.
	RetryCooldown time.Duration `json:"RetryCooldown"`

	// MaxRetries bounds client-side handshake attempts after the first.
	MaxRetries int `json:"MaxRetries"`

	// CleanupInterval is how often the server sweeps the nonce store's
	// per-client tables for ones that have gone idle (spec §6's
	// optional Store.Cleanup hook).
	CleanupInterval time.Duration `json:"CleanupInterval"`
}

// Default returns the configuration spec §6 specifies as defaults.
func Default() Config {
	return Config{
		SkewSeconds:         300,
		MaxPerClient:        100,
		MaxPayloadLength:    frame.DefaultMaxPayloadLength,
		MaxLength:           frame.FixedPartLength + frame.DefaultMaxPayloadLength,
		FrameReceiveTimeout: time.Second,
		RetryCooldown:       time.Second,
		MaxRetries:          0,
		CleanupInterval:     5 * time.Minute,
	}
}

// NonceTTL is the skew window expressed as a time.Duration, the unit
// the nonce store's InsertNonce expects.
func (c Config) NonceTTL() time.Duration {
	return time.Duration(c.SkewSeconds) * time.Second
}

// FrameCodec returns a frame.Codec configured from c.
func (c Config) FrameCodec() frame.Codec {
	codec := frame.NewCodec()
	codec.MaxPayloadLength = c.MaxPayloadLength
	codec.MaxLength = c.MaxLength
	return codec
}
