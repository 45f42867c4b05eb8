// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"sync"
	"sync/atomic"
)

// Token is a single-slot run guard. At most one holder exists at a time and
// a second request is rejected, never queued.
type Token struct {
	held atomic.Bool
}

// TryAcquire takes the token or fails with ErrPipelineBusy. The returned
// release function may be called any number of times; only the first call
// frees the slot.
func (t *Token) TryAcquire() (release func(), err error) {
	if !t.held.CompareAndSwap(false, true) {
		return nil, ErrPipelineBusy
	}
	var once sync.Once
	return func() {
		once.Do(func() { t.held.Store(false) })
	}, nil
}

// Held reports whether a run holds the token.
func (t *Token) Held() bool {
	return t.held.Load()
}
