package residue

// Run is a stretch of residues that were adjacent in a list and belong to one chain.
type Run struct {
	Chain string
	Keys  []Key
}

// GroupRuns splits keys into runs. A run continues while the chain stays the
// same and the sequence number grows by at most one from the previous key
// (repeats, as with insertion codes or alternates, stay in the run).
// Runs are returned in input order; a chain may own several runs.
func GroupRuns(keys []Key) []Run {
	var (
		runs    []Run
		current *Run
		prevNum int
	)
	for _, k := range keys {
		num := k.SeqNum()
		chain := k.Chain()
		if current != nil && !(num-prevNum <= 1 && chain == current.Chain) {
			runs = append(runs, *current)
			current = nil
		}
		if current == nil {
			current = &Run{Chain: chain}
		}
		current.Keys = append(current.Keys, k)
		prevNum = num
	}
	if current != nil {
		runs = append(runs, *current)
	}
	return runs
}

// RunsByChain indexes runs by chain ID, keeping each chain's runs in order.
func RunsByChain(runs []Run) map[string][][]Key {
	out := make(map[string][][]Key)
	for _, r := range runs {
		out[r.Chain] = append(out[r.Chain], r.Keys)
	}
	return out
}
