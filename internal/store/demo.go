package store

import (
	"bytes"
	"context"
	_ "embed"
)

//go:embed fixtures/demo.yaml
var demoFixtures []byte

// SeedDemo loads the bundled demo catalog.
func (s *Store) SeedDemo(ctx context.Context) (SeedResult, error) {
	return s.Seed(ctx, bytes.NewReader(demoFixtures))
}
