//go:build ruby_3_3

package stableapi

import "github.com/chazu/rbstable/rb"

// Default returns the implementation selected by the ruby_3_3 build tag.
func Default() rb.API { return Ruby33 }
