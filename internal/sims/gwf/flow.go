package gwf

// FlowVectorAt returns the specific discharge (Darcy flux) at cell coordinates
// (x, y) using central differences, one-sided at the grid edges. Positive vx
// points towards increasing column, positive vy towards increasing row.
func (m *Model) FlowVectorAt(x, y float64) (float64, float64) {
	cx, cy := int(x), int(y)
	if cx < 0 || cy < 0 || cx >= m.w || cy >= m.h {
		return 0, 0
	}
	h := m.head.Cells()
	at := func(ix, iy int) float64 { return h[iy*m.w+ix] }

	l, r := cx-1, cx+1
	if l < 0 {
		l = cx
	}
	if r >= m.w {
		r = cx
	}
	t, b := cy-1, cy+1
	if t < 0 {
		t = cy
	}
	if b >= m.h {
		b = cy
	}

	var vx, vy float64
	if r != l {
		vx = -m.cfg.HK * (at(r, cy) - at(l, cy)) / (float64(r-l) * m.cfg.CellSize)
	}
	if b != t {
		vy = -m.cfg.HK * (at(cx, b) - at(cx, t)) / (float64(b-t) * m.cfg.CellSize)
	}
	return vx, vy
}
