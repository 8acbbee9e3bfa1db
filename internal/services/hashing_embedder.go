package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const defaultHashingDimensions = 384

// hashingEmbedder is a deterministic bag-of-words model: every token increments the
// bucket its hash falls into. It needs no network and suits local runs and tests.
type hashingEmbedder struct {
	dims int
}

func NewHashingEmbedder(dims int) Embedder {
	if dims <= 0 {
		dims = defaultHashingDimensions
	}
	return &hashingEmbedder{dims: dims}
}

// Embed implements Embedder.
func (h *hashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, h.dims)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		vector[xxhash.Sum64String(token)%uint64(h.dims)]++
	}
	return vector, nil
}

func (h *hashingEmbedder) Name() string {
	return ProviderHashing + "/" + strconv.Itoa(h.dims)
}
