//go:build rbsys_debug

package stableapi

const debugAssertions = true
