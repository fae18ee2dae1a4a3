// shapemirror is a CLI utility for mirroring shape keys and forcing mesh
// symmetry on JSON mesh documents exported from a host authoring tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/shapemirror/internal/config"
	"github.com/Faultbox/shapemirror/internal/logger"
	"github.com/Faultbox/shapemirror/internal/mirror"
	"github.com/Faultbox/shapemirror/pkg/geom"
	"github.com/Faultbox/shapemirror/pkg/shapekey"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	opts, err := engineOptions(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "info":
		cmdInfo(rest, opts)
	case "mirror":
		cmdMirror(rest, opts)
	case "mirror-all":
		cmdMirrorAll(rest, opts)
	case "force":
		cmdForce(rest, cfg.Mirror.Direction, opts)
	case "values":
		cmdValues(rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`shapemirror - shape key mirroring utility

Usage:
  shapemirror [flags] <command> [options]

Commands:
  info <mesh.json>                       Show mesh and side partition summary
  mirror [-o out.json] <mesh.json> <key> Mirror one shape key to the opposite side
  mirror-all [-o out.json] <mesh.json>   Mirror every key missing its counterpart
  force [-o out.json] <mesh.json>        Force perfect symmetry on the rest pose
  values save <mesh.json> <values.json>  Save key weights to a JSON file
  values load [-o out.json] <mesh.json> <values.json>
                                         Apply saved key weights to a mesh

Flags (before the command):
  -config path     Config file
  -tolerance f     Mirror tolerance (default 0.001)
  -axis x|y|z      Mirror axis (default x)
  -direction d     left, right or auto (force and ambiguous keys)
  -strict          Abort on any vertex that cannot be mirrored
  -debug           Debug logging

Examples:
  shapemirror info face.json
  shapemirror mirror -o face_out.json face.json SmileL
  shapemirror -tolerance 0.01 mirror-all face.json
  shapemirror -strict force face.json`)
}

// engineOptions converts file/flag configuration into engine options.
func engineOptions(cfg *config.Config) (mirror.Options, error) {
	axis, err := geom.ParseAxis(cfg.Mirror.Axis)
	if err != nil {
		return mirror.Options{}, err
	}
	return mirror.Options{
		Axis:            axis,
		Tolerance:       cfg.Mirror.Tolerance,
		CenterTolerance: cfg.Mirror.CenterTolerance,
		DeformEpsilon:   cfg.Mirror.DeformEpsilon,
		MaxPoints:       cfg.Octree.MaxPoints,
		MaxDepth:        cfg.Octree.MaxDepth,
		FaultTolerant:   cfg.Mirror.FaultTolerant,
		SnapCenter:      cfg.Mirror.SnapCenter,
		TagFailed:       cfg.Mirror.TagFailed,
	}, nil
}

func parseDirection(s string) (mirror.Direction, error) {
	switch s {
	case "left", "l", "L", "auto", "":
		return mirror.LeftToRight, nil
	case "right", "r", "R":
		return mirror.RightToLeft, nil
	}
	return mirror.LeftToRight, fmt.Errorf("invalid direction %q (want left, right or auto)", s)
}

func loadMesh(path string) *shapekey.Mesh {
	m, err := shapekey.ReadMesh(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func writeMesh(m *shapekey.Mesh, inPath, outPath string) {
	if outPath == "" {
		outPath = inPath
	}
	if err := shapekey.WriteMesh(outPath, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", outPath)
}

func cmdInfo(args []string, opts mirror.Options) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shapemirror info <mesh.json>")
		os.Exit(1)
	}

	m := loadMesh(args[0])
	part := mirror.Classify(m.Basis, opts.Axis, opts.CenterTolerance)

	fmt.Printf("Mesh:     %s\n", m.Name)
	fmt.Printf("Vertices: %d (left %d, right %d, center %d on %s axis)\n",
		m.VertexCount(), len(part.Left), len(part.Right), len(part.Center), opts.Axis)
	fmt.Printf("Keys:     %d\n", len(m.Keys))
	for _, k := range m.Keys {
		pat := mirror.DetectSide(k.Name)
		side := "ambiguous"
		if !pat.Ambiguous() {
			side = pat.From + " side"
		}
		fmt.Printf("  %-24s value %.3f  (%s)\n", k.Name, k.Value, side)
	}
	for name, verts := range m.Groups {
		fmt.Printf("Group %q: %d vertices\n", name, len(verts))
	}
}

func cmdMirror(args []string, opts mirror.Options) {
	fs := flag.NewFlagSet("mirror", flag.ExitOnError)
	out := fs.String("o", "", "Output path (default: overwrite input)")
	fs.Parse(args)
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: shapemirror mirror [-o out.json] <mesh.json> <key>")
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))
	res, err := mirror.MirrorKey(m, fs.Arg(1), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %q from %q (%s, %d of %d source vertices mirrored)\n",
		res.NewKey, res.SourceKey, res.Direction, res.Mirrored, res.Sources)
	reportUnmapped(res.Unmapped)
	writeMesh(m, fs.Arg(0), *out)
}

func cmdMirrorAll(args []string, opts mirror.Options) {
	fs := flag.NewFlagSet("mirror-all", flag.ExitOnError)
	out := fs.String("o", "", "Output path (default: overwrite input)")
	fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shapemirror mirror-all [-o out.json] <mesh.json>")
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))
	res, err := mirror.MirrorAllMissing(m, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(res.Created) == 0 {
		fmt.Println("No shape keys needed mirroring")
	}
	for _, kr := range res.Created {
		fmt.Printf("Created %q from %q (%s, %d vertices)\n",
			kr.NewKey, kr.SourceKey, kr.Direction, kr.Mirrored)
	}
	if len(res.Skipped) > 0 {
		fmt.Printf("Skipped (mirror already exists): %s\n", strings.Join(res.Skipped, ", "))
	}
	writeMesh(m, fs.Arg(0), *out)
}

func cmdForce(args []string, direction string, opts mirror.Options) {
	fs := flag.NewFlagSet("force", flag.ExitOnError)
	out := fs.String("o", "", "Output path (default: overwrite input)")
	fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shapemirror force [-o out.json] <mesh.json>")
		os.Exit(1)
	}

	dir, err := parseDirection(direction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))
	res, err := mirror.ForceSymmetry(m, dir, opts)
	if err != nil {
		if errors.Is(err, mirror.ErrUnmappedVertices) {
			fmt.Fprintf(os.Stderr, "Error: %v (mesh unchanged)\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Mirrored %d vertices %s, snapped %d to the symmetry plane\n",
		res.Mirrored, res.Direction, res.Snapped)
	reportUnmapped(res.Failed)
	if len(res.Failed) > 0 && opts.TagFailed {
		fmt.Printf("Tagged failed vertices in group %q\n", mirror.FailedGroupName)
	}
	writeMesh(m, fs.Arg(0), *out)
}

func cmdValues(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shapemirror values save|load ...")
		os.Exit(1)
	}

	switch args[0] {
	case "save":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: shapemirror values save <mesh.json> <values.json>")
			os.Exit(1)
		}
		m := loadMesh(args[1])
		vals := m.CopyValues()
		if err := shapekey.SaveValues(args[2], vals); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %d key values to %s\n", len(vals), args[2])
	case "load":
		fs := flag.NewFlagSet("values load", flag.ExitOnError)
		out := fs.String("o", "", "Output path (default: overwrite input)")
		fs.Parse(args[1:])
		if fs.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Usage: shapemirror values load [-o out.json] <mesh.json> <values.json>")
			os.Exit(1)
		}
		m := loadMesh(fs.Arg(0))
		vals, err := shapekey.LoadValues(fs.Arg(1))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		applied := m.PasteValues(vals)
		fmt.Printf("Applied %d of %d key values\n", applied, len(vals))
		writeMesh(m, fs.Arg(0), *out)
	default:
		fmt.Fprintf(os.Stderr, "Unknown values subcommand: %s\n", args[0])
		os.Exit(1)
	}
}

func reportUnmapped(verts []int) {
	if len(verts) == 0 {
		return
	}
	show := verts
	suffix := ""
	if len(show) > 10 {
		show = show[:10]
		suffix = ", ..."
	}
	parts := make([]string, len(show))
	for i, v := range show {
		parts[i] = fmt.Sprint(v)
	}
	fmt.Printf("Warning: %d source vertices found no mirror within tolerance: %s%s\n",
		len(verts), strings.Join(parts, ", "), suffix)
}
