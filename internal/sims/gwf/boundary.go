package gwf

// layoutBoundary returns the constant-head cells and their heads in the fixed
// positional order used for the whole run.
func layoutBoundary(cfg Config) ([]int, []float64) {
	w, h := cfg.Cols, cfg.Rows
	switch cfg.Layout {
	case LayoutPerimeter:
		cells := perimeterCells(w, h)
		heads := make([]float64, len(cells))
		last := len(cells) - 1
		for i := range heads {
			t := 0.0
			if last > 0 {
				t = float64(i) / float64(last)
			}
			heads[i] = cfg.HeadHigh + (cfg.HeadLow-cfg.HeadHigh)*t
		}
		return cells, heads
	default:
		cells := make([]int, 0, 2*h)
		heads := make([]float64, 0, 2*h)
		for y := 0; y < h; y++ {
			cells = append(cells, y*w)
			heads = append(heads, cfg.HeadHigh)
		}
		for y := 0; y < h; y++ {
			cells = append(cells, y*w+w-1)
			heads = append(heads, cfg.HeadLow)
		}
		return cells, heads
	}
}

// perimeterCells walks the outer ring clockwise starting at the top-left corner.
func perimeterCells(w, h int) []int {
	cells := make([]int, 0, 2*w+2*h-4)
	for x := 0; x < w; x++ {
		cells = append(cells, x)
	}
	for y := 1; y < h; y++ {
		cells = append(cells, y*w+w-1)
	}
	for x := w - 2; x >= 0; x-- {
		cells = append(cells, (h-1)*w+x)
	}
	for y := h - 2; y >= 1; y-- {
		cells = append(cells, y*w)
	}
	return cells
}
