package cache

// Cache keeps at most size entries. Slots are reused in ring order, so when
// the cache is full the entry added longest ago is evicted. Nothing is
// evicted while a slot freed by Remove is available.
func New[K comparable, V any](size int, onEvict func(key K, val V)) *Cache[K, V] {
	return &Cache[K, V]{
		size:    size,
		items:   make(map[K]V, size),
		keys:    make([]K, size),
		used:    make([]bool, size),
		slots:   make(map[K]int, size),
		index:   0,
		onEvict: onEvict,
	}
}

// Cache is not safe for concurrent use.
type Cache[K comparable, V any] struct {
	size    int
	items   map[K]V
	keys    []K
	used    []bool
	slots   map[K]int
	index   int
	onEvict func(key K, val V)
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.items[key]
	return v, ok
}

// Add stores val under key, replacing a cached value for the same key.
func (c *Cache[K, V]) Add(key K, val V) {
	if _, ok := c.items[key]; ok {
		c.items[key] = val
		return
	}

	if c.used[c.index] && len(c.items) < c.size {
		c.index = c.freeSlot()
	}

	if c.used[c.index] {
		keyToDelete := c.keys[c.index]
		valToDelete := c.items[keyToDelete]
		delete(c.items, keyToDelete)
		delete(c.slots, keyToDelete)
		if c.onEvict != nil {
			c.onEvict(keyToDelete, valToDelete)
		}
	}

	c.keys[c.index] = key
	c.used[c.index] = true
	c.slots[key] = c.index
	c.items[key] = val

	c.index++
	if c.index == c.size {
		c.index = 0
	}
}

// freeSlot returns the first unused slot at or after the ring index. The
// cache must be below capacity.
func (c *Cache[K, V]) freeSlot() int {
	for i := 0; i < c.size; i++ {
		slot := (c.index + i) % c.size
		if !c.used[slot] {
			return slot
		}
	}
	return c.index
}

func (c *Cache[K, V]) Remove(key K) bool {
	slot, ok := c.slots[key]
	if !ok {
		return false
	}

	var zero K
	c.keys[slot] = zero
	c.used[slot] = false
	delete(c.slots, key)
	delete(c.items, key)
	return true
}

func (c *Cache[K, V]) Len() int {
	return len(c.items)
}

func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.items))
	for i, k := range c.keys {
		if c.used[i] {
			keys = append(keys, k)
		}
	}
	return keys
}
