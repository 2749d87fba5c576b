// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build spindexdebug

package kdtree

// debugVerify runs the full consistency walk after every mutating
// operation, so corruption aborts at the operation that caused it
// rather than surfacing later. Enabled by the spindexdebug build tag;
// it makes every mutation cost a full tree walk.
func (t *Tree[V]) debugVerify() {
	t.Stats()
}
