package embedder

import (
	"context"

	"news-curator/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingEncoder memoizes single-text encodings in an in-process LRU, so a
// repeated search query does not hit the embedding provider again. Batch
// calls pass through untouched.
type CachingEncoder struct {
	inner domain.VectorEncoder
	cache *lru.Cache[string, []float32]
}

func NewCachingEncoder(inner domain.VectorEncoder, size int) (*CachingEncoder, error) {
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &CachingEncoder{inner: inner, cache: cache}, nil
}

func (c *CachingEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) != 1 {
		return c.inner.Encode(ctx, texts)
	}

	key := c.inner.Version() + "\x00" + texts[0]
	if vec, ok := c.cache.Get(key); ok {
		return [][]float32{vec}, nil
	}

	embeddings, err := c.inner.Encode(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 1 {
		c.cache.Add(key, embeddings[0])
	}
	return embeddings, nil
}

func (c *CachingEncoder) Version() string {
	return c.inner.Version()
}

var _ domain.VectorEncoder = (*CachingEncoder)(nil)
