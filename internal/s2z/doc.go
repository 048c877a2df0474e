// Package s2z regrids terrain-following sigma-layer fields onto fixed
// absolute depth levels for a windowed subset of the horizontal domain.
//
// The work is split into index resolution (horizontal and vertical
// windows), a domain-wide sigma depth field, interpolation coefficients
// computed once for the whole domain, and their per-query application.
package s2z
