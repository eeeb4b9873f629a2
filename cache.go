package calccore

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// compiledCache memoizes CompiledFormula by exact formula text (spec.md
// §5: "the compiled-formula cache never evicts; its size is bounded only
// by the number of distinct formula strings seen"). A singleflight.Group
// collapses concurrent first-time compiles of the same text into one
// Compiler.Compile call, so concurrent TryEvaluate callers racing on a
// newly-seen formula share its compile cost and its error.
type compiledCache struct {
	mu      sync.RWMutex
	entries map[string]CompiledFormula
	group   singleflight.Group
}

func newCompiledCache() *compiledCache {
	return &compiledCache{entries: make(map[string]CompiledFormula)}
}

// getOrCompile returns the cached CompiledFormula for text, compiling
// and storing it on first sight.
func (c *compiledCache) getOrCompile(text string, compile func() (CompiledFormula, error)) (CompiledFormula, bool, error) {
	c.mu.RLock()
	cf, hit := c.entries[text]
	c.mu.RUnlock()
	if hit {
		return cf, true, nil
	}

	result, err, _ := c.group.Do(text, func() (any, error) {
		c.mu.RLock()
		if cf, hit := c.entries[text]; hit {
			c.mu.RUnlock()
			return cf, nil
		}
		c.mu.RUnlock()

		compiled, err := compile()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[text] = compiled
		c.mu.Unlock()
		return compiled, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result.(CompiledFormula), false, nil
}

// size reports the number of distinct formula texts compiled so far.
func (c *compiledCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
