//go:build cgo && rboracle

package oracle

/*
#cgo pkg-config: ruby
#include "compiled.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("rbsys.oracle")

// ErrBoot is returned by Boot when ruby_setup fails.
var ErrBoot = errors.New("oracle: interpreter setup failed")

// vmRequest is a unit of work for the interpreter thread. done receives
// the panic value of fn, or nil.
type vmRequest struct {
	fn   func()
	done chan any
}

// VM is the embedded interpreter. It runs on one locked OS thread for the
// life of the process; libruby is single-threaded, so every call into it is
// serialized onto that thread with Do.
type VM struct {
	requests chan vmRequest
}

var (
	bootOnce sync.Once
	booted   *VM
	bootErr  error
)

// Boot starts the interpreter with its GC disabled, so values built for a
// test stay put. Later calls return the same VM.
func Boot() (*VM, error) {
	bootOnce.Do(func() {
		vm := &VM{requests: make(chan vmRequest, 64)}
		ready := make(chan error, 1)
		go vm.loop(ready)
		if err := <-ready; err != nil {
			bootErr = err
			return
		}
		booted = vm
		log.Noticef("booted ruby %d.%d", int(C.impl_api_version(0)), int(C.impl_api_version(1)))
	})
	return booted, bootErr
}

// loop processes requests sequentially on the thread that ran ruby_setup.
func (vm *VM) loop(ready chan<- error) {
	runtime.LockOSThread()
	if state := C.impl_vm_setup(); state != 0 {
		ready <- fmt.Errorf("%w: state %d", ErrBoot, int(state))
		return
	}
	ready <- nil
	for req := range vm.requests {
		req.done <- execute(req.fn)
	}
}

// execute runs fn, recovering from panics.
func execute(fn func()) (p any) {
	defer func() {
		p = recover()
	}()
	fn()
	return nil
}

// Do runs fn on the interpreter thread and blocks until it completes. A
// panic in fn is re-raised in the caller.
func (vm *VM) Do(fn func()) {
	req := vmRequest{fn: fn, done: make(chan any, 1)}
	vm.requests <- req
	if p := <-req.done; p != nil {
		panic(p)
	}
}

func call[T any](vm *VM, fn func() T) T {
	var r T
	vm.Do(func() { r = fn() })
	return r
}

// RubyError is the panic value for an exception raised inside the
// interpreter, such as RangeError from NUM2LONG on a large bignum.
type RubyError struct {
	Op      string
	Message string
}

func (e *RubyError) Error() string {
	return fmt.Sprintf("oracle: %s raised %s", e.Op, e.Message)
}

// raise panics with the pending interpreter error when state is nonzero.
// Runs on the interpreter thread.
func raise(op string, state C.int) {
	if state != 0 {
		panic(&RubyError{Op: op, Message: C.GoString(C.impl_last_error())})
	}
}
