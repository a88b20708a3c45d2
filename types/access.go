package types

// AccessSet declares, ahead of execution, the component types a system reads
// and the component types it writes. An external scheduler may run two
// systems concurrently only if their access sets do not conflict; the check
// is made once per scheduling round, not per access. This module ships the
// contract only, never a scheduler.
type AccessSet struct {
	Reads  []string
	Writes []string
}

// ConflictsWith reports whether the two access sets are unsafe to execute
// concurrently: one writes a component type the other reads or writes.
func (a AccessSet) ConflictsWith(b AccessSet) bool {
	return overlaps(a.Writes, b.Writes) ||
		overlaps(a.Writes, b.Reads) ||
		overlaps(b.Writes, a.Reads)
}

func overlaps(xs, ys []string) bool {
	if len(xs) > len(ys) {
		xs, ys = ys, xs
	}
	seen := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	for _, y := range ys {
		if _, ok := seen[y]; ok {
			return true
		}
	}
	return false
}
