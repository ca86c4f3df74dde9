package typesys

import (
	"go/types"

	"golang.org/x/tools/go/types/typeutil"
)

// sizeCache memoizes bytesSizeOf results per go/types.Type, the
// concrete backing for spec §6's empty_size_cache. typeutil.Map is
// the standard structural-equality map over types.Type used
// throughout the x/tools ecosystem for exactly this purpose.
type sizeCache struct {
	m typeutil.Map
}

func newSizeCache() *sizeCache {
	return &sizeCache{}
}

func (c *sizeCache) lookup(t types.Type) (int64, bool) {
	v := c.m.At(t)
	if v == nil {
		return 0, false
	}
	return v.(int64), true
}

func (c *sizeCache) store(t types.Type, size int64) {
	c.m.Set(t, size)
}
