//go:build ruby_2_7

package stableapi

import "github.com/chazu/rbstable/rb"

// Default returns the implementation selected by the ruby_2_7 build tag.
func Default() rb.API { return Ruby27 }
