package cursor

// Pull moves p as if the text covered by s had been removed.
//
// Adjustment rules (s taken in oriented form, head H, tail T):
//   - p before H: unchanged
//   - p inside [H, T): collapses onto H
//   - p on T's row at or after T: lands on H's row, shifted by T.Col - H.Col
//   - p on a later row: moves up by the selection's row span
func (s Selection) Pull(p *Position) {
	o := s.Oriented()
	h, t := o.Head, o.Tail

	if p.Before(h) {
		return
	}
	if p.Before(t) {
		*p = h
		return
	}
	if p.Row == t.Row {
		*p = Position{Row: h.Row, Col: h.Col + p.Col - t.Col}
		return
	}
	p.Row -= t.Row - h.Row
}

// Push moves p as if the text covered by s had just been inserted, with s
// describing where the inserted text now lives.
//
// Adjustment rules (s taken in oriented form, head H, tail T):
//   - p before H: unchanged
//   - p on H's row at or after H: lands on T's row, shifted by T.Col - H.Col
//   - p on a later row: moves down by the selection's row span
func (s Selection) Push(p *Position) {
	o := s.Oriented()
	h, t := o.Head, o.Tail

	if p.Before(h) {
		return
	}
	if p.Row == h.Row {
		*p = Position{Row: t.Row, Col: t.Col + p.Col - h.Col}
		return
	}
	p.Row += t.Row - h.Row
}

// PullSelection returns other with both ends pulled by s.
func (s Selection) PullSelection(other Selection) Selection {
	s.Pull(&other.Head)
	s.Pull(&other.Tail)
	return other
}

// PushSelection returns other with both ends pushed by s.
func (s Selection) PushSelection(other Selection) Selection {
	s.Push(&other.Head)
	s.Push(&other.Tail)
	return other
}

// Adjust returns other updated for a replacement: pulled by the removed
// region, then pushed by the inserted region.
func Adjust(other, removed, inserted Selection) Selection {
	return inserted.PushSelection(removed.PullSelection(other))
}
