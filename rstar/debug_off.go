// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build !spindexdebug

package rstar

// debugVerify is a no-op unless the spindexdebug build tag is set, in
// which case every mutating operation verifies the whole tree.
func (t *RTree[V]) debugVerify() {}
