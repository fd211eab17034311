//go:build cgo && rboracle

package integration_test

import (
	"math/big"

	"github.com/chazu/rbstable/oracle"
	"github.com/chazu/rbstable/rb"
	"github.com/chazu/rbstable/rbhost"
)

func bigPow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

// vmHost runs an rbhost.Host on the embedded interpreter's thread. An
// extension calls rbhost directly; a test goroutine has to hop onto the VM
// first.
type vmHost struct {
	vm   *oracle.VM
	host *rbhost.Host
}

var _ rb.Host = vmHost{}

func (h vmHost) Int2Big(i rb.Long) (r rb.Value) {
	h.vm.Do(func() { r = h.host.Int2Big(i) })
	return r
}

func (h vmHost) UInt2Big(u rb.ULong) (r rb.Value) {
	h.vm.Do(func() { r = h.host.UInt2Big(u) })
	return r
}

func (h vmHost) Num2Long(v rb.Value) (r rb.Long) {
	h.vm.Do(func() { r = h.host.Num2Long(v) })
	return r
}

func (h vmHost) Num2ULong(v rb.Value) (r rb.ULong) {
	h.vm.Do(func() { r = h.host.Num2ULong(v) })
	return r
}

func (h vmHost) Sym2ID(v rb.Value) (r rb.ID) {
	h.vm.Do(func() { r = h.host.Sym2ID(v) })
	return r
}
