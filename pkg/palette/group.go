package palette

import "sort"

// BuildGroups partitions a sorted, non-white hex-code set into slot groups
// per the AMS quota rule, appending "#FFFFFF" to every group. It returns
// the groups and nbColorPool, the same quota value callers must pass to
// BuildPalette for white-layer optimization.
//
// additive && colorNumber > 0 selects quota = colorNumber-1 (one slot
// reserved for white). Non-additive mode and colorNumber <= 0 use quota
// len(hexes), which yields a single group. colorNumber == 1 yields quota 0,
// which also falls back to a single group holding every hex code (and is
// returned as nbColorPool 0); this sidesteps the divide-by-zero the quota
// formula would otherwise hit.
func BuildGroups(hexes []string, colorNumber int, additive bool) (groups [][]string, nbColorPool int) {
	sorted := append([]string{}, hexes...)
	sort.Strings(sorted)

	nbColorPool = len(sorted)
	if additive && colorNumber > 0 {
		nbColorPool = colorNumber - 1
	}

	if nbColorPool <= 0 {
		group := append([]string{}, sorted...)
		group = append(group, whiteHex)
		return [][]string{group}, nbColorPool
	}

	nbGroups := (len(sorted) + nbColorPool - 1) / nbColorPool
	if nbGroups == 0 {
		nbGroups = 1
	}

	groups = make([][]string, 0, nbGroups)
	for i := 0; i < len(sorted); i += nbColorPool {
		end := i + nbColorPool
		if end > len(sorted) {
			end = len(sorted)
		}
		group := append([]string{}, sorted[i:end]...)
		group = append(group, whiteHex)
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		groups = append(groups, []string{whiteHex})
	}
	return groups, nbColorPool
}

// BuildPalette generates the per-group combinations, folds them into the
// palette's cross-group Cartesian product, then factorizes and optimizes
// white-layer placement across the combined stack. nbColorPool is the
// quota BuildGroups derived the groups from.
func BuildPalette(layers []ColorLayer, groups [][]string, nbLayers, nbColorPool int) *Palette {
	p := NewPalette(nbLayers)
	p.SetGroups(groups)

	var combined []ColorCombi
	for i, group := range groups {
		restrict := make(map[string]bool, len(group))
		for _, hex := range group {
			restrict[hex] = true
		}
		groupCombis := Generate(layers, nbLayers, restrict)
		if i == 0 {
			combined = groupCombis
			continue
		}
		combined = CrossProduct(combined, groupCombis)
	}

	for _, combi := range combined {
		p.AddCombi(combi.Factorize())
	}
	p.OptimizeWhiteLayers(nbColorPool)
	p.SetSlotAssignments(BuildSlotAssignments(groups, nbColorPool))
	return p
}

// BuildSlotAssignments derives the per-slot filament schedule from the
// group partition: slot i carries the i-th non-white hex of each group in
// turn (the filament loaded into that physical slot for each swap), and a
// trailing slot holds only white, which never swaps.
func BuildSlotAssignments(groups [][]string, nbColorPool int) [][]string {
	if nbColorPool <= 0 {
		for _, g := range groups {
			n := 0
			for _, hex := range g {
				if !IsWhite(hex) {
					n++
				}
			}
			if n > nbColorPool {
				nbColorPool = n
			}
		}
	}
	assignments := make([][]string, nbColorPool)
	for _, group := range groups {
		i := 0
		for _, hex := range group {
			if IsWhite(hex) {
				continue
			}
			if i < nbColorPool {
				assignments[i] = append(assignments[i], hex)
			}
			i++
		}
	}
	assignments = append(assignments, []string{whiteHex})
	return assignments
}
