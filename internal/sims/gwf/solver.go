package gwf

import "math"

// solve advances the head field by dt using backward Euler in time and a
// five-point stencil in space. Outer grid edges are no-flow; constant-head
// cells are held at their table values. Returns the SOR iteration count.
func (m *Model) solve(dt float64) (int, error) {
	h := m.head.Cells()
	copy(m.prev, h)

	// Square cells: the face conductance reduces to the transmissivity.
	cond := m.cfg.HK * m.cfg.Thickness
	storage := m.cfg.SS * m.cfg.Thickness * m.cfg.CellSize * m.cfg.CellSize / dt
	relax := m.cfg.Solver.Relax
	tol := m.cfg.Solver.Tolerance
	w, rows := m.w, m.h

	for iter := 1; iter <= m.cfg.Solver.MaxIter; iter++ {
		maxDelta := 0.0
		for y := 0; y < rows; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				if m.fixed[i] {
					continue
				}
				num := storage * m.prev[i]
				den := storage
				if x > 0 {
					num += cond * h[i-1]
					den += cond
				}
				if x+1 < w {
					num += cond * h[i+1]
					den += cond
				}
				if y > 0 {
					num += cond * h[i-w]
					den += cond
				}
				if y+1 < rows {
					num += cond * h[i+w]
					den += cond
				}
				delta := relax * (num/den - h[i])
				h[i] += delta
				if d := math.Abs(delta); d > maxDelta {
					maxDelta = d
				}
			}
		}
		if math.IsNaN(maxDelta) || math.IsInf(maxDelta, 0) {
			return iter, ErrNotConverged
		}
		if maxDelta < tol {
			return iter, nil
		}
	}
	return m.cfg.Solver.MaxIter, ErrNotConverged
}
