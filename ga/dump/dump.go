// Package dump provides result serialization: a generic CSV writer for a
// population or archive's chromosomes and fitness vectors, and a static
// SVG renderer for TSP routes.
package dump

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/aram/evolve/ga"
)

// WriteCSV writes one row per candidate: chromosome genes (stringified via
// fmt.Sprint) followed by fitness components, with a header row naming
// "gene_0..gene_{L-1}" and "objective_0..objective_{M-1}".
func WriteCSV[G ga.Gene](w io.Writer, pop ga.Population[G]) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(pop) == 0 {
		return nil
	}

	chromLen := len(pop[0].Chromosome)
	numObj := len(pop[0].Fitness)

	header := make([]string, 0, chromLen+numObj)
	for i := 0; i < chromLen; i++ {
		header = append(header, fmt.Sprintf("gene_%d", i))
	}
	for i := 0; i < numObj; i++ {
		header = append(header, fmt.Sprintf("objective_%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range pop {
		row := make([]string, 0, len(c.Chromosome)+len(c.Fitness))
		for _, gene := range c.Chromosome {
			row = append(row, fmt.Sprint(gene))
		}
		for _, f := range c.Fitness {
			row = append(row, strconv.FormatFloat(f, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteCSVFile is WriteCSV against a freshly created/truncated file at path.
func WriteCSVFile[G ga.Gene](path string, pop ga.Population[G]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump: create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCSV(f, pop)
}

// City is a TSP waypoint, matching ga/bench.City's shape so a route dump
// doesn't need to import ga/bench.
type City struct {
	Name string
	X, Y float64
}

// WriteTSPRoute renders route (a permutation chromosome's city order) as a
// static SVG diagram: directed edges with arrowheads between labeled city
// markers, plus the total tour length.
func WriteTSPRoute(path string, route []City) error {
	if len(route) == 0 {
		return fmt.Errorf("dump: empty route")
	}

	minX, maxX := route[0].X, route[0].X
	minY, maxY := route[0].Y, route[0].Y
	for _, city := range route {
		minX, maxX = math.Min(minX, city.X), math.Max(maxX, city.X)
		minY, maxY = math.Min(minY, city.Y), math.Max(maxY, city.Y)
	}

	const padding = 80.0
	const canvasWidth = 800.0
	const canvasHeight = 600.0

	scaleX := (canvasWidth - 2*padding) / math.Max(maxX-minX, 1e-9)
	scaleY := (canvasHeight - 2*padding) / math.Max(maxY-minY, 1e-9)
	scale := math.Min(scaleX, scaleY)

	tx := func(x float64) float64 { return padding + (x-minX)*scale }
	ty := func(y float64) float64 { return padding + (y-minY)*scale }

	svg := fmt.Sprintf(`<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">`, canvasWidth, canvasHeight)
	svg += `<defs><marker id="arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">`
	svg += `<polygon points="0 0, 10 3.5, 0 7" fill="blue" /></marker></defs>`

	var totalDistance float64
	for i := range route {
		current := route[i]
		next := route[(i+1)%len(route)]

		dx, dy := current.X-next.X, current.Y-next.Y
		totalDistance += math.Sqrt(dx*dx + dy*dy)

		x1, y1 := tx(current.X), ty(current.Y)
		x2, y2 := tx(next.X), ty(next.Y)
		ldx, ldy := x2-x1, y2-y1
		length := math.Sqrt(ldx*ldx + ldy*ldy)
		if length == 0 {
			continue
		}
		const circleRadius = 6.0
		offX, offY := ldx/length*circleRadius, ldy/length*circleRadius
		svg += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="blue" stroke-width="2" marker-end="url(#arrowhead)" />`,
			x1+offX, y1+offY, x2-offX, y2-offY)
	}

	for _, city := range route {
		x, y := tx(city.X), ty(city.Y)
		svg += fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="6" fill="red" stroke="black" stroke-width="1" />`, x, y)
		svg += fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="12" font-weight="bold" fill="black">%s</text>`,
			x, y-12, city.Name)
		svg += fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="10" fill="gray">(%.1f,%.1f)</text>`,
			x, y-26, city.X, city.Y)
	}

	svg += fmt.Sprintf(`<text x="%.2f" y="25" text-anchor="middle" font-family="Arial, sans-serif" font-size="18" font-weight="bold" fill="black">TSP Route</text>`, canvasWidth/2)
	svg += fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="14" fill="black">Total distance: %.2f</text>`,
		canvasWidth/2, canvasHeight-15, totalDistance)
	svg += `</svg>`

	return os.WriteFile(path, []byte(svg), 0644)
}
