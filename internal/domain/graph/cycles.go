package graph

// RingBonds reports, per bond index, whether the bond lies on at least one
// cycle. A bond is a ring bond iff it is not a bridge, found with a single
// iterative depth-first low-link pass in O(atoms + bonds). The result is
// index-aligned with Bonds().
func (m *Molecule) RingBonds() []bool {
	ring := make([]bool, len(m.bonds))
	n := len(m.atoms)
	if n == 0 || len(m.bonds) == 0 {
		return ring
	}

	disc := make([]int, n)
	low := make([]int, n)
	parentBond := make([]int, n)
	for i := range parentBond {
		parentBond[i] = -1
	}

	type frame struct {
		v  int
		bi int
	}

	timer := 0
	for root := 0; root < n; root++ {
		if disc[root] != 0 {
			continue
		}
		timer++
		disc[root], low[root] = timer, timer
		stack := []frame{{v: root}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.bi < len(m.incident[f.v]) {
				bond := m.incident[f.v][f.bi]
				f.bi++
				if bond.idx == parentBond[f.v] {
					continue
				}
				w := bond.Other(m.atoms[f.v]).idx
				if disc[w] == 0 {
					parentBond[w] = bond.idx
					timer++
					disc[w], low[w] = timer, timer
					stack = append(stack, frame{v: w})
					continue
				}
				// Back edge: always closes a cycle.
				ring[bond.idx] = true
				if disc[w] < low[f.v] {
					low[f.v] = disc[w]
				}
				continue
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				continue
			}
			u := stack[len(stack)-1].v
			if low[f.v] < low[u] {
				low[u] = low[f.v]
			}
			// Tree edge u->f.v is a bridge iff low[f.v] > disc[u].
			if low[f.v] <= disc[u] {
				ring[parentBond[f.v]] = true
			}
		}
	}
	return ring
}

// ComponentCount returns the number of connected components. An empty
// molecule has zero components.
func (m *Molecule) ComponentCount() int {
	n := len(m.atoms)
	if n == 0 {
		return 0
	}
	seen := make([]bool, n)
	count := 0
	stack := make([]int, 0, n)
	for root := 0; root < n; root++ {
		if seen[root] {
			continue
		}
		count++
		seen[root] = true
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, bond := range m.incident[v] {
				w := bond.Other(m.atoms[v]).idx
				if !seen[w] {
					seen[w] = true
					stack = append(stack, w)
				}
			}
		}
	}
	return count
}
