package s2z

import (
	"sync"

	"go.ngs.io/ocean-s2z/internal/domain"
)

// Cache memoizes the domain-wide Coefficients. The first call to
// Coefficients computes them; concurrent first calls wait for that single
// computation and every later call returns the same value.
type Cache struct {
	depths  *domain.Field
	h       *domain.Field
	targets []float64

	once  sync.Once
	coeff *Coefficients
	err   error
}

// NewCache prepares a cache over a sigma depth field, the bathymetry it was
// built from and a target depth table. Nothing is computed yet.
func NewCache(depths, h *domain.Field, targets []float64) *Cache {
	return &Cache{depths: depths, h: h, targets: targets}
}

// Coefficients returns the cached coefficients, computing them on first use.
func (c *Cache) Coefficients() (*Coefficients, error) {
	c.once.Do(func() {
		c.coeff, c.err = ComputeCoefficients(c.depths, c.h, c.targets)
	})
	return c.coeff, c.err
}
