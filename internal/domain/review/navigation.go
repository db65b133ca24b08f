package review

// Adjacency holds the neighbours of one application in an ordered sequence.
// PrevID is the more recent neighbour, NextID the older one.
type Adjacency struct {
	PrevID *uint64
	NextID *uint64
}

// Adjacent locates id in the full, unpaginated sequence.
func Adjacent(sequence []uint64, id uint64) (Adjacency, error) {
	for i, candidate := range sequence {
		if candidate != id {
			continue
		}

		var out Adjacency
		if i > 0 {
			prev := sequence[i-1]
			out.PrevID = &prev
		}
		if i+1 < len(sequence) {
			next := sequence[i+1]
			out.NextID = &next
		}
		return out, nil
	}
	return Adjacency{}, ErrNotInSequence
}
