package heapsim

import (
	"sync"

	"github.com/chazu/rbstable/rb"
)

// idScopeShift mirrors ID_SCOPE_SHIFT: the low bits of an ID carry its
// scope (local, constant, ...) and ID_STATIC_SYM. Simulated IDs are all
// static locals.
const (
	idScopeShift = 4
	idStaticSym  = 1
)

// firstSerial skips the serials CRuby reserves for operator tokens.
const firstSerial = 1 << 8

// symbolTable interns names to IDs and remembers which heap objects are
// dynamic symbols.
type symbolTable struct {
	mu      sync.RWMutex
	byName  map[string]rb.ID
	byID    map[rb.ID]string
	dynamic map[rb.Value]rb.ID
	next    uintptr
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		byName:  make(map[string]rb.ID),
		byID:    make(map[rb.ID]string),
		dynamic: make(map[rb.Value]rb.ID),
		next:    firstSerial,
	}
}

func (st *symbolTable) intern(name string) rb.ID {
	st.mu.RLock()
	if id, ok := st.byName[name]; ok {
		st.mu.RUnlock()
		return id
	}
	st.mu.RUnlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	if id, ok := st.byName[name]; ok {
		return id
	}
	id := rb.ID(st.next<<idScopeShift | idStaticSym)
	st.next++
	st.byName[name] = id
	st.byID[id] = name
	return id
}

func (st *symbolTable) name(id rb.ID) (string, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	name, ok := st.byID[id]
	return name, ok
}

func (st *symbolTable) bindDynamic(v rb.Value, id rb.ID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.dynamic[v] = id
}

func (st *symbolTable) dynamicID(v rb.Value) (rb.ID, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	id, ok := st.dynamic[v]
	return id, ok
}
