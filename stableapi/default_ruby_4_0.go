//go:build ruby_4_0

package stableapi

import "github.com/chazu/rbstable/rb"

// Default returns the implementation selected by the ruby_4_0 build tag.
func Default() rb.API { return Ruby40 }
