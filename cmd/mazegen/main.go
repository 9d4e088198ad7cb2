// Command mazegen prints a generated maze and the shortest route from the
// start to the exit.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/config/preset"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/pathfinding"
)

type options struct {
	width       int
	height      int
	seed        int64
	corridor    int
	branching   float64
	preset      string
	presetsFile string
	noPath      bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("mazegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.IntVar(&o.width, "width", 0, "grid width in cells (overrides the preset)")
	fs.IntVar(&o.height, "height", 0, "grid height in cells (overrides the preset)")
	fs.Int64Var(&o.seed, "seed", 0, "generation seed, 0 draws one")
	fs.IntVar(&o.corridor, "corridor", 0, "corridor width (overrides the preset)")
	fs.Float64Var(&o.branching, "branching", -1, "branching factor in [0,1] (overrides the preset)")
	fs.StringVar(&o.preset, "preset", "default", "named parameter preset")
	fs.StringVar(&o.presetsFile, "presets", "", "YAML presets file")
	fs.BoolVar(&o.noPath, "no-path", false, "do not draw the route")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *options) config(presets preset.Set) (maze.Config, error) {
	p, err := presets.Get(o.preset)
	if err != nil {
		return maze.Config{}, err
	}

	c := maze.Config{
		Width:           p.Width,
		Height:          p.Height,
		Seed:            p.Seed,
		CorridorWidth:   p.CorridorWidth,
		BranchingFactor: p.Branching(),
	}
	if o.width > 0 {
		c.Width = o.width
	}
	if o.height > 0 {
		c.Height = o.height
	}
	if o.seed != 0 {
		seed := o.seed
		c.Seed = &seed
	}
	if o.corridor > 0 {
		c.CorridorWidth = o.corridor
	}
	if o.branching >= 0 {
		c.BranchingFactor = o.branching
	}
	return c, nil
}

// render draws the grid with the route overlaid as '*'.
func render(g *maze.Grid, route []maze.Cell) string {
	rows := g.Rows()
	lines := make([][]byte, len(rows))
	for y, row := range rows {
		lines[y] = []byte(row)
	}
	for _, c := range route {
		if lines[c.Y][c.X] == '.' || lines[c.Y][c.X] == 'K' {
			lines[c.Y][c.X] = '*'
		}
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	presets, err := preset.Load(o.presetsFile)
	if err != nil {
		fmt.Fprintf(stderr, "loading presets: %v\n", err)
		return 1
	}

	c, err := o.config(presets)
	if err != nil {
		fmt.Fprintf(stderr, "%v (available: %s)\n", err, strings.Join(presets.Names(), ", "))
		return 1
	}
	c.Logger = log.New(stderr, config.Prefix("GENERATOR", config.ColorMagenta), 0)

	gen := maze.New(c)
	grid := gen.Generate()

	start, exit := grid.Start(), grid.Exit()
	route := pathfinding.New(grid).FindPath(grid.GetCell(start.X, start.Y), grid.GetCell(exit.X, exit.Y))

	fmt.Fprintln(stdout, gen)
	if o.noPath {
		fmt.Fprint(stdout, grid)
	} else {
		fmt.Fprint(stdout, render(grid, route))
	}
	if route == nil {
		fmt.Fprintln(stdout, "no route from start to exit")
		return 1
	}
	fmt.Fprintf(stdout, "route: %d cells, cost %.3f\n", len(route), pathfinding.Cost(route))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
