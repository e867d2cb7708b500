package trimesh

// EdgeKey identifies an undirected edge by its two vertex indices with
// the smaller one first, so that a->b and b->a produce the same key.
type EdgeKey struct {
	Lo, Hi int
}

// Key returns the canonical key of the edge between a and b.
func Key(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{Lo: a, Hi: b}
}

// Compare orders keys by Lo, then Hi. It returns -1, 0 or +1.
func (k EdgeKey) Compare(o EdgeKey) int {
	switch {
	case k.Lo < o.Lo:
		return -1
	case k.Lo > o.Lo:
		return 1
	case k.Hi < o.Hi:
		return -1
	case k.Hi > o.Hi:
		return 1
	}
	return 0
}

// Less reports whether k sorts before o.
func (k EdgeKey) Less(o EdgeKey) bool {
	return k.Compare(o) < 0
}
