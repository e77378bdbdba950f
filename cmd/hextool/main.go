// hextool is a CLI utility for querying hex grid geometry.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hexfield/internal/config"
	"github.com/Faultbox/hexfield/internal/engine/picking"
	"github.com/Faultbox/hexfield/internal/game"
	"github.com/Faultbox/hexfield/internal/network"
	"github.com/Faultbox/hexfield/internal/network/packets"
	"github.com/Faultbox/hexfield/pkg/hex"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "spiral", "ring", "range":
		err = cmdShape(command, args)
	case "line":
		err = cmdLine(args)
	case "rotate":
		err = cmdRotate(args)
	case "neighbors", "nb":
		err = cmdNeighbors(args)
	case "pixel":
		err = cmdPixel(args)
	case "unpixel":
		err = cmdUnpixel(args)
	case "intersect":
		err = cmdIntersect(args)
	case "path":
		err = cmdPath(args)
	case "pick":
		err = cmdPick(args)
	case "watch":
		err = cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hextool - hex grid geometry utility

Usage:
  hextool <command> [options] <args>

Commands:
  spiral|ring|range <q> <r> <radius>   Cells around a center
  line <q1> <r1> <q2> <r2>             Cells on the line between two cells
  rotate <q> <r> <cq> <cr> <steps>     Rotate a cell around a center
  neighbors <q> <r>                    Direct and diagonal neighbours
  pixel <q> <r>                        Project a cell to layout space
  unpixel <x> <y>                      Unproject a point to a cell
  intersect <q1> <r1> <d1> <q2> <r2> <d2>
                                       Cells within both ranges
  path [-radius n] [-block q,r;...] <q1> <r1> <q2> <r2>
                                       Shortest path inside a spiral field
  pick [-radius n] [-w px] [-h px] [-angle rad] <x> <y>
                                       Tile under a screen pixel of the demo scene
  watch [url]                          Print packets from a running server

Options for pixel and unpixel:
  -size float     Tile size (default 1)
  -flat           Use the flat-top layout

Output is YAML.

Examples:
  hextool spiral 0 0 3
  hextool line 0 0 3 -1
  hextool unpixel -size 2 1.2 3.4
  hextool watch ws://localhost:8080/ws`)
}

type cell struct {
	Q int `yaml:"q"`
	R int `yaml:"r"`
	S int `yaml:"s"`
}

func toCell(h hex.Hexagon) cell {
	i := h.ToInt()
	return cell{Q: int(i.X), R: int(i.Z), S: int(i.Y)}
}

func toCells(hs []hex.Hexagon) []cell {
	out := make([]cell, len(hs))
	for i, h := range hs {
		out[i] = toCell(h)
	}
	return out
}

func printYAML(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

func parseInts(args []string, n int, usage string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("usage: hextool %s", usage)
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func axial(q, r int) hex.Hexagon {
	return hex.New(float64(q), float64(r))
}

func cmdShape(name string, args []string) error {
	v, err := parseInts(args, 3, name+" <q> <r> <radius>")
	if err != nil {
		return err
	}
	shape, err := hex.ParseShape(name)
	if err != nil {
		return err
	}
	cells, err := hex.GenerateField(shape, axial(v[0], v[1]), v[2])
	if err != nil {
		return err
	}
	return printYAML(map[string]any{
		"shape": name,
		"count": len(cells),
		"cells": toCells(cells),
	})
}

func cmdLine(args []string) error {
	v, err := parseInts(args, 4, "line <q1> <r1> <q2> <r2>")
	if err != nil {
		return err
	}
	a, b := axial(v[0], v[1]), axial(v[2], v[3])
	cells := a.Line(b)
	return printYAML(map[string]any{
		"distance": a.DistanceInt(b),
		"cells":    toCells(cells),
	})
}

func cmdRotate(args []string) error {
	v, err := parseInts(args, 5, "rotate <q> <r> <cq> <cr> <steps>")
	if err != nil {
		return err
	}
	got := axial(v[0], v[1]).Rotate(axial(v[2], v[3]), v[4])
	return printYAML(map[string]any{"cell": toCell(got)})
}

func cmdNeighbors(args []string) error {
	v, err := parseInts(args, 2, "neighbors <q> <r>")
	if err != nil {
		return err
	}
	h := axial(v[0], v[1])

	type entry struct {
		Direction string `yaml:"direction"`
		Neighbor  cell   `yaml:"neighbor"`
		Diagonal  cell   `yaml:"diagonal"`
	}
	var out []entry
	for d := hex.Direction(0); d < hex.DirectionCount; d++ {
		n, err := h.Neighbor(d)
		if err != nil {
			return err
		}
		diag, err := h.DiagNeighbor(d)
		if err != nil {
			return err
		}
		out = append(out, entry{Direction: d.String(), Neighbor: toCell(n), Diagonal: toCell(diag)})
	}
	return printYAML(out)
}

func layoutFlags(name string, args []string) (hex.Layout, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	size := fs.Float64("size", 1, "Tile size")
	flat := fs.Bool("flat", false, "Use the flat-top layout")
	if err := fs.Parse(args); err != nil {
		return hex.Layout{}, nil, err
	}
	l := hex.Layout{Orientation: hex.PointyTop, Size: *size}
	if *flat {
		l.Orientation = hex.FlatTop
	}
	return l, fs.Args(), nil
}

func cmdPixel(args []string) error {
	l, rest, err := layoutFlags("pixel", args)
	if err != nil {
		return err
	}
	v, err := parseInts(rest, 2, "pixel [-size s] [-flat] <q> <r>")
	if err != nil {
		return err
	}
	p := l.ToPixel(axial(v[0], v[1]))
	return printYAML(map[string]any{
		"orientation": l.Orientation.String(),
		"x":           p.X,
		"y":           p.Y,
	})
}

func cmdUnpixel(args []string) error {
	l, rest, err := layoutFlags("unpixel", args)
	if err != nil {
		return err
	}
	if len(rest) != 2 {
		return fmt.Errorf("usage: hextool unpixel [-size s] [-flat] <x> <y>")
	}
	x, err := strconv.ParseFloat(rest[0], 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(rest[1], 64)
	if err != nil {
		return err
	}
	h := l.FromPixel(hex.Point{X: x, Y: y})
	return printYAML(map[string]any{
		"fractional": map[string]float64{"q": h.X, "r": h.Z, "s": h.Y},
		"cell":       toCell(h.ToIntWith(hex.CubeNearest)),
	})
}

func cmdIntersect(args []string) error {
	v, err := parseInts(args, 6, "intersect <q1> <r1> <d1> <q2> <r2> <d2>")
	if err != nil {
		return err
	}
	cells := axial(v[0], v[1]).Intersection(axial(v[3], v[4]), float64(v[2]), float64(v[5]))
	return printYAML(map[string]any{
		"count": len(cells),
		"cells": toCells(cells),
	})
}

func parseCells(s string) ([]hex.Hexagon, error) {
	if s == "" {
		return nil, nil
	}
	var out []hex.Hexagon
	for _, pair := range strings.Split(s, ";") {
		q, r, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("bad cell %q, want q,r", pair)
		}
		v, err := parseInts([]string{strings.TrimSpace(q), strings.TrimSpace(r)}, 2, "")
		if err != nil {
			return nil, fmt.Errorf("bad cell %q: %w", pair, err)
		}
		out = append(out, axial(v[0], v[1]))
	}
	return out, nil
}

func cmdPath(args []string) error {
	fs := flag.NewFlagSet("path", flag.ContinueOnError)
	radius := fs.Int("radius", 6, "Field radius around the origin")
	block := fs.String("block", "", "Blocked cells as q,r;q,r")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v, err := parseInts(fs.Args(), 4, "path [-radius n] [-block q,r;...] <q1> <r1> <q2> <r2>")
	if err != nil {
		return err
	}
	blocked, err := parseCells(*block)
	if err != nil {
		return err
	}
	cells, err := hex.GenerateField(hex.ShapeSpiral, hex.Origin, *radius)
	if err != nil {
		return err
	}

	pf := hex.NewPathFinder(cells)
	pf.Block(blocked...)
	path := pf.FindPath(axial(v[0], v[1]), axial(v[2], v[3]))
	if path == nil {
		return fmt.Errorf("no path")
	}
	return printYAML(map[string]any{
		"steps": len(path) - 1,
		"cells": toCells(path),
	})
}

type pickResult struct {
	Mode string `yaml:"mode"`
	Slot *int   `yaml:"slot,omitempty"`
	Cell *cell  `yaml:"cell,omitempty"`
}

// pickScreen resolves a pixel of a w x h viewport against scene in every
// pick mode.
func pickScreen(scene *game.Scene, x, y, w, h float32) ([]pickResult, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("viewport %vx%v must be positive", w, h)
	}
	scene.SetAspect(w / h)
	ray := picking.ScreenToRay(x, y, w, h, scene.InverseViewProjection())

	var out []pickResult
	for _, mode := range []picking.Mode{picking.ModeTiles, picking.ModePlane} {
		res := pickResult{Mode: mode.String()}
		if slot, ok := mode.Pick(ray, scene.Field, scene.TileHeight); ok {
			res.Slot = &slot
			t, err := scene.Field.Tile(slot)
			if err != nil {
				return nil, err
			}
			c := toCell(t.Cell)
			res.Cell = &c
		}
		out = append(out, res)
	}
	return out, nil
}

func cmdPick(args []string) error {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	radius := fs.Int("radius", 3, "Field radius")
	width := fs.Float64("w", 800, "Viewport width in pixels")
	height := fs.Float64("h", 600, "Viewport height in pixels")
	angle := fs.Float64("angle", 0, "Orbit angle in radians")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: hextool pick [-radius n] [-w px] [-h px] [-angle rad] <x> <y>")
	}
	x, err := strconv.ParseFloat(fs.Arg(0), 32)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(fs.Arg(1), 32)
	if err != nil {
		return err
	}

	cfg := config.Default()
	cfg.Field.Radius = *radius
	if err := cfg.Validate(); err != nil {
		return err
	}
	scene, err := game.NewScene(cfg)
	if err != nil {
		return err
	}
	scene.Orbit.Angle = float32(*angle)

	results, err := pickScreen(scene, float32(x), float32(y), float32(*width), float32(*height))
	if err != nil {
		return err
	}
	return printYAML(results)
}

func cmdWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	limit := fs.Int("n", 0, "Stop after N packets (0 = until interrupted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	url := "ws://localhost:8080/ws"
	if fs.NArg() > 0 {
		url = fs.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := network.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer c.Close()
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	c.RegisterHandler(packets.HV_FIELD_INFO, func(data []byte) error {
		p, err := packets.DecodeFieldInfo(data)
		if err != nil {
			return err
		}
		return printYAML(map[string]any{"field_info": p})
	})
	c.RegisterHandler(packets.HV_INSTANCE_BATCH, func(data []byte) error {
		p, err := packets.DecodeInstanceBatch(data)
		if err != nil {
			return err
		}
		return printYAML(map[string]any{"instances": p.Instances})
	})
	c.RegisterHandler(packets.HV_CAMERA_STATE, func(data []byte) error {
		p, err := packets.DecodeCameraState(data)
		if err != nil {
			return err
		}
		return printYAML(map[string]any{"camera": p})
	})

	for n := 0; *limit == 0 || n < *limit; n++ {
		if _, err := c.Process(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}
