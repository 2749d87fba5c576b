// Copyright 2026 The spindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rstar

const (
	// DefaultMaxEntries is the default maximum number of entries per
	// node, applied to both leaf and directory nodes.
	DefaultMaxEntries = 10
	// DefaultMinEntries is the default minimum number of entries per
	// non-root node, applied to both leaf and directory nodes. It is
	// roughly 20% of DefaultMaxEntries, the fill grade recommended by
	// Beckmann, Kriegel, Schneider and Seeger.
	DefaultMinEntries = 2

	// chooseSubtreeCands caps the number of children examined by the
	// overlap enlargement test when choosing a subtree directly above
	// the leaf level. Children beyond the cap, ranked by area
	// enlargement, fall back to the cheaper area test.
	chooseSubtreeCands = 32
)

// Config carries the structural parameters of an RTree. The zero value
// is not valid; use DefaultConfig to obtain a baseline and adjust it
// before passing it to NewWithConfig.
type Config struct {
	// Dims is the number of dimensions of every box stored in the
	// tree. It must be at least 1.
	Dims int
	// MaxDataEntries is the maximum number of data entries per leaf
	// node. It must be at least 2.
	MaxDataEntries int
	// MinDataEntries is the minimum number of data entries per
	// non-root leaf node. It must be at least 1 and at most half of
	// MaxDataEntries, rounded up.
	MinDataEntries int
	// MaxDirEntries is the maximum number of children per directory
	// node. It must be at least 2.
	MaxDirEntries int
	// MinDirEntries is the minimum number of children per non-root
	// directory node. It must be at least 1 and at most half of
	// MaxDirEntries, rounded up.
	MinDirEntries int
}

// DefaultConfig returns the baseline configuration for a tree of the
// given dimensionality: DefaultMaxEntries and DefaultMinEntries for
// both node kinds.
func DefaultConfig(dims int) Config {
	return Config{
		Dims:           dims,
		MaxDataEntries: DefaultMaxEntries,
		MinDataEntries: DefaultMinEntries,
		MaxDirEntries:  DefaultMaxEntries,
		MinDirEntries:  DefaultMinEntries,
	}
}

// validate panics if the configuration is unusable.
func (c *Config) validate() {
	if c.Dims < 1 {
		fmtPanic("dims must be at least 1 (got %d)", c.Dims)
	}
	validateFill("data", c.MinDataEntries, c.MaxDataEntries)
	validateFill("dir", c.MinDirEntries, c.MaxDirEntries)
}

func validateFill(kind string, min, max int) {
	if max < 2 {
		fmtPanic("max %s entries must be at least 2 (got %d)", kind, max)
	} else if min < 1 {
		fmtPanic("min %s entries must be at least 1 (got %d)", kind, min)
	} else if min > (max+1)/2 {
		fmtPanic("min %s entries %d exceeds half of max %d", kind, min, max)
	}
}
