// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ring provides a ring buffer whose elements keep a stable absolute
// index while the buffer slides forward.
package ring

import (
	"fmt"
	"iter"
	"math/bits"
)

// Buffer is a ring buffer addressed by absolute index.
//
// Every element pushed onto the back is assigned the next index in sequence.
// Indices stay valid while elements are popped off either end, so callers may
// hold on to them (for example, in a stack of entries still awaiting some
// computation) and look the element up again with [Buffer.At].
//
// Indices are never reused, not even after [Buffer.Clear].
//
// A zero [Buffer] is empty and ready to use.
type Buffer[E any] struct {
	buf        []E // Invariant: len(buf) is always a power of 2, or zero.
	start, end int
	offset     int // Absolute index of buf[start].
}

// New returns a [Buffer] with room for at least capacity elements.
func New[E any](capacity int) *Buffer[E] {
	r := new(Buffer[E])
	r.Reserve(capacity)
	return r
}

// Len returns the number of elements currently in the buffer.
func (r *Buffer[E]) Len() int {
	// The in-use part wraps around the end of the buffer.
	//
	// |xxx------xxxx|     len: 13
	//     ^end  ^start    start: 9
	//                     end: 3
	if r.start > r.end {
		return len(r.buf) - r.start + r.end
	}
	return r.end - r.start
}

// Cap returns the number of elements the buffer can hold before it needs to
// grow.
func (r *Buffer[E]) Cap() int {
	if len(r.buf) == 0 {
		return 0
	}
	// One slot is always kept empty to distinguish full from empty.
	return len(r.buf) - 1
}

// Reserve ensures that n more elements can be pushed without growing.
func (r *Buffer[E]) Reserve(n int) {
	if r.Len()+n <= r.Cap() {
		return
	}
	r.resize(powerOfTwo(r.Len() + n + 1))
}

// First returns the absolute index of the front element. If the buffer is
// empty, this is the index the next pushed element will receive.
func (r *Buffer[E]) First() int {
	return r.offset
}

// Front returns a pointer to the front element, or nil if the buffer is
// empty.
func (r *Buffer[E]) Front() *E {
	if r.start == r.end {
		return nil
	}
	return &r.buf[r.start]
}

// Back returns a pointer to the back element, or nil if the buffer is empty.
func (r *Buffer[E]) Back() *E {
	if r.start == r.end {
		return nil
	}
	return &r.buf[(r.end-1)&(len(r.buf)-1)]
}

// At returns a pointer to the element with absolute index idx, or nil if
// that element is not (or no longer) in the buffer.
func (r *Buffer[E]) At(idx int) *E {
	rel := idx - r.offset
	if rel < 0 || rel >= r.Len() {
		return nil
	}
	return &r.buf[(r.start+rel)&(len(r.buf)-1)]
}

// PushBack appends v and returns its absolute index.
func (r *Buffer[E]) PushBack(v E) int {
	r.Reserve(1)
	r.buf[r.end] = v
	r.end = (r.end + 1) & (len(r.buf) - 1)
	return r.offset + r.Len() - 1
}

// PopFront removes the front element.
func (r *Buffer[E]) PopFront() (E, bool) {
	var z E
	if r.start == r.end {
		return z, false
	}
	v := r.buf[r.start]
	r.buf[r.start] = z
	r.start = (r.start + 1) & (len(r.buf) - 1)
	r.offset++
	return v, true
}

// PopBack removes the back element.
func (r *Buffer[E]) PopBack() (E, bool) {
	var z E
	if r.start == r.end {
		return z, false
	}
	r.end = (r.end - 1) & (len(r.buf) - 1)
	v := r.buf[r.end]
	r.buf[r.end] = z
	return v, true
}

// Values returns an iterator over the elements from front to back.
func (r *Buffer[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i := range r.Len() {
			if !yield(r.buf[(r.start+i)&(len(r.buf)-1)]) {
				return
			}
		}
	}
}

// Clear removes every element. The next pushed element receives the index
// following the last one ever pushed.
func (r *Buffer[_]) Clear() {
	r.offset += r.Len()
	clear(r.buf)
	r.start, r.end = 0, 0
}

// Format implements [fmt.Formatter].
func (r *Buffer[E]) Format(out fmt.State, verb rune) {
	fmt.Fprintf(out, "%d:[", r.offset)
	i := 0
	for v := range r.Values() {
		if i > 0 {
			fmt.Fprint(out, " ")
		}
		fmt.Fprintf(out, fmt.FormatString(out, verb), v)
		i++
	}
	fmt.Fprint(out, "]")
}

func (r *Buffer[E]) resize(n int) {
	old := r.buf
	r.buf = make([]E, n)
	var count int
	if r.start > r.end {
		count = copy(r.buf, old[r.start:])
		count += copy(r.buf[count:], old[:r.end])
	} else {
		count = copy(r.buf, old[r.start:r.end])
	}
	r.start = 0
	r.end = count
}

// powerOfTwo returns the smallest power of two that is at least n.
func powerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
