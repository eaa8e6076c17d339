package analysis

import (
	"strings"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// ChargeTrajectory extracts the path of charge idx from per-frame charge
// sets. Frames without that charge are skipped.
func ChargeTrajectory(frames [][]dynamo.Charge, idx int) []dynamo.Vec2 {
	path := make([]dynamo.Vec2, 0, len(frames))
	for _, f := range frames {
		if idx < len(f) {
			path = append(path, f[idx].Pos())
		}
	}
	return path
}

// UpCrossings returns the interpolated times at which samples rises
// through threshold.
func UpCrossings(times, samples []float64, threshold float64) []float64 {
	var out []float64
	n := min(len(times), len(samples))
	for k := 1; k < n; k++ {
		prev, cur := samples[k-1], samples[k]
		if prev < threshold && cur >= threshold {
			frac := (threshold - prev) / (cur - prev)
			out = append(out, times[k-1]+frac*(times[k]-times[k-1]))
		}
	}
	return out
}

// MeanPeriod averages the gaps between successive crossings.
func MeanPeriod(crossings []float64) float64 {
	if len(crossings) < 2 {
		return 0
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1)
}

// PointsToASCII plots points on a width x height character grid, padding
// the bounding box by 10% and drawing the axes where they are visible.
func PointsToASCII(points []dynamo.Vec2, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
