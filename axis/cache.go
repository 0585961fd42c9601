package axis

// Cache keeps the last IntervalSet computed per axis. It is not safe for
// concurrent use.
type Cache struct {
	sets map[string]*IntervalSet
}

func NewCache() *Cache {
	return &Cache{
		sets: make(map[string]*IntervalSet),
	}
}

func (c *Cache) Get(key string, seed Seed) (*IntervalSet, bool) {
	set, ok := c.sets[key]
	if !ok || !set.seed.Equal(seed) {
		return nil, false
	}
	return set, true
}

func (c *Cache) Put(key string, set *IntervalSet) {
	c.sets[key] = set
}

func (c *Cache) Invalidate(key string) {
	delete(c.sets, key)
}

func (c *Cache) Reset() {
	clear(c.sets)
}

func (c *Cache) Len() int {
	return len(c.sets)
}

func (c *Cache) Generate(g *Generator, key string, min, max, length, spacing float64, minFixed, maxFixed bool) *IntervalSet {
	seed := Seed{
		Min:      min,
		Max:      max,
		Length:   length,
		Spacing:  spacing,
		MinFixed: minFixed,
		MaxFixed: maxFixed,
	}
	if set, ok := c.Get(key, seed); ok {
		return set
	}
	set := g.Generate(min, max, length, spacing, minFixed, maxFixed)
	c.Put(key, set)
	return set
}

func (c *Cache) GenerateExplicit(g *Generator, key string, min, max, spacing, base float64, minFixed, maxFixed bool) *IntervalSet {
	seed := Seed{
		Min:      min,
		Max:      max,
		Spacing:  spacing,
		Base:     base,
		MinFixed: minFixed,
		MaxFixed: maxFixed,
	}
	if set, ok := c.Get(key, seed); ok {
		return set
	}
	set := g.GenerateExplicit(min, max, spacing, base, minFixed, maxFixed)
	c.Put(key, set)
	return set
}

func (c *Cache) GenerateWrapped(g *Generator, key string, min, max, wrapMin, wrapMax, length, spacing float64) *IntervalSet {
	seed := Seed{
		Min:     min,
		Max:     max,
		Length:  length,
		Spacing: spacing,
		WrapMin: wrapMin,
		WrapMax: wrapMax,
	}
	if set, ok := c.Get(key, seed); ok {
		return set
	}
	set := g.GenerateWrapped(min, max, wrapMin, wrapMax, length, spacing)
	c.Put(key, set)
	return set
}
