package bt

import (
	"slices"
	"sync"

	"github.com/dop251/goja"
)

// Blackboard is the shared key/value state read by conditions and written by
// the caller between ticks. Values are integers.
//
// The zero value is ready to use; the internal map is lazily initialized on
// the first write. Nodes hold a *Blackboard and never copy it.
type Blackboard struct {
	mu   sync.RWMutex
	data map[string]int
}

// init initializes the internal map if needed. Callers must hold mu.
func (b *Blackboard) init() {
	if b.data == nil {
		b.data = make(map[string]int)
	}
}

// SetValue inserts or overwrites key.
func (b *Blackboard) SetValue(key string, value int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	b.data[key] = value
}

// GetValue returns the value stored under key.
//
// A key that has never been set is inserted with the value 0, and 0 is
// returned. After the first read, Has reports true for that key. Use Lookup
// for a read that distinguishes a missing key and leaves the board untouched.
func (b *Blackboard) GetValue(key string) int {
	b.mu.RLock()
	if v, ok := b.data[key]; ok {
		b.mu.RUnlock()
		return v
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	// another writer may have set it between the two locks
	v, ok := b.data[key]
	if !ok {
		b.data[key] = 0
	}
	return v
}

// Lookup returns the value for key and whether it was present. It never
// inserts.
func (b *Blackboard) Lookup(key string) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	return v, ok
}

// Has returns true if the key exists in the blackboard.
func (b *Blackboard) Has(key string) bool {
	_, ok := b.Lookup(key)
	return ok
}

// Delete removes a key from the blackboard.
func (b *Blackboard) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
}

// Keys returns all keys in the blackboard, sorted.
func (b *Blackboard) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.data) == 0 {
		return nil
	}
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clear removes all entries from the blackboard.
func (b *Blackboard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make(map[string]int)
}

// Len returns the number of keys in the blackboard.
func (b *Blackboard) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Snapshot returns a copy of the blackboard data. Modifying the result does
// not affect the blackboard.
func (b *Blackboard) Snapshot() map[string]int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make(map[string]int, len(b.data))
	for k, v := range b.data {
		result[k] = v
	}
	return result
}

// ExposeToJS creates a JavaScript object with accessor methods for this
// blackboard:
//
//	blackboard.get("key")        // auto-vivifies, like GetValue
//	blackboard.set("key", value)
//	blackboard.has("key")
//	blackboard.delete("key")
//	blackboard.keys()
//	blackboard.len()
//	blackboard.clear()
func (b *Blackboard) ExposeToJS(vm *goja.Runtime) goja.Value {
	obj := vm.NewObject()
	// Set cannot fail for these keys, they are plain identifiers.
	_ = obj.Set("get", b.GetValue)
	_ = obj.Set("set", b.SetValue)
	_ = obj.Set("has", b.Has)
	_ = obj.Set("delete", b.Delete)
	_ = obj.Set("keys", b.Keys)
	_ = obj.Set("len", b.Len)
	_ = obj.Set("clear", b.Clear)
	return obj
}
