// File: core/fifo/pointer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Write and read pointer state machines. The extra pointer bit counts laps
// so that equal indexes can be told apart as full or empty; the low
// AddrWidth bits address storage.

package fifo

import "github.com/momentics/hioload-cdc/api"

// Pointer is an (AddrWidth+1)-bit binary counter and its Gray code.
// Invariant: Gray == ToGray(Bin).
type Pointer struct {
	Bin  uint64
	Gray uint64
}

// Lap returns the wrap bit of the pointer.
func (p Pointer) Lap(addrWidth uint) uint64 {
	return p.Bin >> addrWidth
}

type pointerState struct {
	ptr       Pointer
	ptrMask   uint64
	idxMask   uint64
	addrWidth uint
}

func newPointerState(cfg Config) pointerState {
	return pointerState{ptrMask: cfg.pointerMask(), idxMask: cfg.indexMask(), addrWidth: cfg.AddrWidth}
}

// index is the storage slot the pointer addresses now.
func (s *pointerState) index() uint64 {
	return s.ptr.Bin & s.idxMask
}

func (s *pointerState) advance() {
	bin := (s.ptr.Bin + 1) & s.ptrMask
	s.ptr = Pointer{Bin: bin, Gray: ToGray(bin)}
}

func (s *pointerState) reset() {
	s.ptr = Pointer{}
}

// Pointer returns the committed pointer.
func (s *pointerState) Pointer() Pointer {
	return s.ptr
}

func (s *pointerState) lap() uint64 {
	return s.ptr.Lap(s.addrWidth)
}

// WritePointerState owns the write pointer and the storage write port.
type WritePointerState struct {
	pointerState
	store *RingStore
}

// NewWritePointerState binds a write pointer to store.
func NewWritePointerState(cfg Config, store *RingStore) *WritePointerState {
	return &WritePointerState{pointerState: newPointerState(cfg), store: store}
}

// Tick accepts a write when requested and not full: data lands at the
// pre-advance index, then the pointer advances. A rejected write changes nothing.
func (s *WritePointerState) Tick(requestWrite, full bool, data api.Word) (accepted bool) {
	if !requestWrite || full {
		return false
	}
	s.store.Write(s.index(), data)
	s.advance()
	return true
}

// Reset sets the pointer to zero. Storage is untouched.
func (s *WritePointerState) Reset() {
	s.reset()
}

// ReadPointerState owns the read pointer and the storage read port.
type ReadPointerState struct {
	pointerState
	store *RingStore
}

// NewReadPointerState binds a read pointer to store.
func NewReadPointerState(cfg Config, store *RingStore) *ReadPointerState {
	return &ReadPointerState{pointerState: newPointerState(cfg), store: store}
}

// Peek returns the word the pointer currently addresses.
func (s *ReadPointerState) Peek() api.Word {
	return s.store.Read(s.index())
}

// Tick samples the addressed word, then advances if a read is requested and
// the FIFO is not empty. The returned word is the pre-advance slot whether or
// not the read is accepted.
func (s *ReadPointerState) Tick(requestRead, empty bool) (data api.Word, accepted bool) {
	data = s.Peek()
	if !requestRead || empty {
		return data, false
	}
	s.advance()
	return data, true
}

// Reset sets the pointer to zero.
func (s *ReadPointerState) Reset() {
	s.reset()
}
