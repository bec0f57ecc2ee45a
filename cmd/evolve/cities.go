package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/aram/evolve/ga/bench"
)

// berlin52Fixture is a scaled-down stand-in for the classic TSPLIB berlin52
// instance, used by the tsp subcommand when no -cities-file is given.
var berlin52Fixture = []bench.City{
	{Name: "berlin-1", X: 565, Y: 575},
	{Name: "berlin-2", X: 25, Y: 185},
	{Name: "berlin-3", X: 345, Y: 750},
	{Name: "berlin-4", X: 945, Y: 685},
	{Name: "berlin-5", X: 845, Y: 655},
	{Name: "berlin-6", X: 880, Y: 660},
	{Name: "berlin-7", X: 25, Y: 230},
	{Name: "berlin-8", X: 525, Y: 1000},
	{Name: "berlin-9", X: 580, Y: 1175},
	{Name: "berlin-10", X: 650, Y: 1130},
	{Name: "berlin-11", X: 1605, Y: 620},
	{Name: "berlin-12", X: 1220, Y: 580},
	{Name: "berlin-13", X: 1465, Y: 200},
	{Name: "berlin-14", X: 1150, Y: 1160},
	{Name: "berlin-15", X: 415, Y: 635},
	{Name: "berlin-16", X: 725, Y: 1030},
	{Name: "berlin-17", X: 360, Y: 905},
	{Name: "berlin-18", X: 475, Y: 960},
	{Name: "berlin-19", X: 95, Y: 260},
	{Name: "berlin-20", X: 875, Y: 920},
}

// loadCities reads a CSV file of "name,x,y" rows with a header line.
func loadCities(filename string) ([]bench.City, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("evolve: open cities file %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("evolve: read cities CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("evolve: cities CSV must contain a header and at least one data row")
	}

	cities := make([]bench.City, 0, len(records)-1)
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("evolve: row %d: expected at least 3 columns (name, x, y), got %d", i+1, len(record))
		}
		if record[0] == "" {
			return nil, fmt.Errorf("evolve: row %d: city name cannot be empty", i+1)
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("evolve: row %d: invalid x coordinate %q: %w", i+1, record[1], err)
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("evolve: row %d: invalid y coordinate %q: %w", i+1, record[2], err)
		}
		cities = append(cities, bench.City{Name: record[0], X: x, Y: y})
	}
	return cities, nil
}
