package data

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mchmarny/scorekit/pkg/net"
	"github.com/mchmarny/scorekit/pkg/score"
)

// Load reads a score document from a local path or an http(s) URL.
func Load(ctx context.Context, src string) (*score.Scorer[string], error) {
	if src == "" {
		return nil, fmt.Errorf("score source required")
	}

	var b []byte
	var err error
	if net.IsURL(src) {
		b, err = net.Fetch(ctx, src)
	} else {
		b, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", src, err)
	}

	s, err := DecodeBytes(b)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", src, err)
	}
	slog.Debug("scores loaded", "source", src, "items", s.Len())
	return s, nil
}
