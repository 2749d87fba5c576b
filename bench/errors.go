// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package bench

import "fmt"

const packageName = "bench: "

func fmtErr(format string, a ...any) error {
	return fmt.Errorf(packageName+format, a...)
}

func fmtPanic(format string, a ...any) {
	panic(fmt.Sprintf(packageName+format, a...))
}
