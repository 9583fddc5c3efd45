package palette

// Generate enumerates every distinct ColorCombi whose hex codes are
// pairwise distinct and whose layer counts sum to exactly targetHeight,
// drawn from layers (which must already be sorted by k descending via
// SortByDarknessDescending). If restrict is non-nil, only hex codes present
// in restrict are considered.
//
// The search is a deterministic in-order DFS: each recursive expansion only
// considers layers occurring strictly later in the input slice, so every
// distinct multiset of layers is enumerated exactly once and the output
// order depends only on the (fixed) input order.
func Generate(layers []ColorLayer, targetHeight int, restrict map[string]bool) []ColorCombi {
	var out []ColorCombi
	for i, l := range layers {
		if restrict != nil && !restrict[l.HexCode] {
			continue
		}
		if l.LayerCount > targetHeight {
			continue
		}
		combi := ColorCombi{Layers: []ColorLayer{l}}
		if combi.TotalHeight() == targetHeight {
			out = append(out, combi)
		}
		expand(layers, i+1, combi, targetHeight, restrict, &out)
	}
	return out
}

func expand(layers []ColorLayer, from int, current ColorCombi, targetHeight int, restrict map[string]bool, out *[]ColorCombi) {
	for i := from; i < len(layers); i++ {
		l := layers[i]
		if restrict != nil && !restrict[l.HexCode] {
			continue
		}
		if hasHex(current, l.HexCode) {
			continue
		}
		if current.TotalHeight()+l.LayerCount > targetHeight {
			continue
		}
		next := ColorCombi{Layers: append(append([]ColorLayer{}, current.Layers...), l)}
		if next.TotalHeight() == targetHeight {
			*out = append(*out, next)
		}
		expand(layers, i+1, next, targetHeight, restrict, out)
	}
}

func hasHex(c ColorCombi, hex string) bool {
	for _, l := range c.Layers {
		if l.HexCode == hex {
			return true
		}
	}
	return false
}

// CrossProduct computes the pairwise Cartesian product of a and b,
// concatenating each combi of a with each combi of b in order: for groups
// G1..Gk the caller folds CrossProduct progressively (R1 = combis(G1),
// R(i+1) = CrossProduct(Ri, combis(G(i+1)))).
func CrossProduct(a, b []ColorCombi) []ColorCombi {
	out := make([]ColorCombi, 0, len(a)*len(b))
	for _, ca := range a {
		for _, cb := range b {
			out = append(out, ca.Concat(cb))
		}
	}
	return out
}
