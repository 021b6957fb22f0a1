package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ContentListKey returns the cache key for a landing-page content list
// (intro, history, achievements, partners, campus).
func (r *CacheKeyStruct) ContentListKey(kind string) string {
	return fmt.Sprintf("content:%s:list", kind)
}

var CacheKey = NewCacheKeyStruct()
