// brepctl evaluates brep construction scripts and exports the resulting body.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/chazu/brep/internal/config"
	"github.com/chazu/brep/internal/logger"
	"github.com/chazu/brep/pkg/engine"
	"github.com/chazu/brep/pkg/export"
	"github.com/chazu/brep/pkg/kernel"
	"github.com/chazu/brep/pkg/kernel/sdfx"
	"github.com/chazu/brep/pkg/tessellate"
	"github.com/chazu/brep/pkg/topo"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Logging.KernelTrace {
		topo.SetLogger(logger.Named("topo"))
	}

	err = dispatch(cfg, args[0], args[1:])
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid arguments, see brepctl help")

func dispatch(cfg *config.Config, command string, args []string) error {
	switch command {
	case "run":
		return cmdRun(cfg, args)
	case "dot":
		return cmdDOT(cfg, args)
	case "svg":
		return cmdSVG(cfg, args)
	case "stl":
		return cmdSTL(cfg, args)
	case "config":
		return cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
		return nil
	}
	fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
	printUsage()
	return errUsage
}

func printUsage() {
	fmt.Println(`brepctl - boundary representation topology tool

Usage:
  brepctl [flags] <command> [arguments]

Commands:
  run <script.lisp>              Build the body and print a summary
  dot <script.lisp> [out.dot]    Write the half-edge structure as Graphviz DOT
  svg <script.lisp> [out.svg]    Plot vertices and half-edges in the x/y plane
  stl <script.lisp> [out.stl]    Tessellate the faces and write binary STL
  config [path]                  Write the effective configuration as YAML

Flags:
  -config <path>   Config file (default ./brep.yaml, then the user config dir)
  -debug           Debug logging
  -trace           Log every Euler operator
  -log-file <path> Also log to a rotating file
  -timeout <dur>   Script evaluation timeout
  -o <dir>         Output directory for stl files

Examples:
  brepctl run cube.lisp
  brepctl dot cube.lisp | dot -Tpng > cube.png
  brepctl -o build stl cube.lisp`)
}

// loadBody evaluates the script at path. Evaluation errors are printed and
// turned into a single error; validation findings are logged as warnings.
func loadBody(cfg *config.Config, path string) (*topo.Body, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	eng := engine.NewEngine(
		engine.WithTimeout(cfg.Engine.Timeout),
		engine.WithLogger(logger.Named("engine")),
	)
	res, err := eng.Run(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, e)
		}
		return nil, fmt.Errorf("%s: %d evaluation errors", path, len(res.Errors))
	}
	if res.Body == nil {
		return nil, fmt.Errorf("%s: script did not create a body (missing mvfs?)", path)
	}
	for _, w := range res.Warnings {
		logger.Warn("validation", zap.String("code", w.Code), zap.String("entity", w.Entity),
			zap.String("message", w.Message))
	}
	logger.Debug("body loaded", zap.String("script", path), zap.String("body", res.Body.Name()),
		zap.Int("vertices", res.Body.NumVertices()), zap.Int("edges", res.Body.NumEdges()),
		zap.Int("faces", res.Body.NumFaces()))
	return res.Body, nil
}

func cmdRun(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: brepctl run <script.lisp>")
		return errUsage
	}
	b, err := loadBody(cfg, args[0])
	if err != nil {
		return err
	}
	printSummary(os.Stdout, b)
	return nil
}

func printSummary(w io.Writer, b *topo.Body) {
	v, e, f := b.NumVertices(), b.NumEdges(), b.NumFaces()
	fmt.Fprintf(w, "Body:      %s\n", b.Name())
	fmt.Fprintf(w, "Vertices:  %d\n", v)
	fmt.Fprintf(w, "Edges:     %d\n", e)
	fmt.Fprintf(w, "Faces:     %d\n", f)
	fmt.Fprintf(w, "Loops:     %d\n", b.NumLoops())
	fmt.Fprintf(w, "Rings:     %d\n", b.NumRings())
	fmt.Fprintf(w, "V-E+F:     %d\n", v-e+f)
	fmt.Fprintf(w, "V-E+F-R:   %d\n", b.EulerPoincare())

	findings := b.Validate()
	if len(findings) == 0 {
		fmt.Fprintln(w, "Validate:  ok")
		return
	}
	fmt.Fprintf(w, "Validate:  %d findings\n", len(findings))
	for _, fd := range findings {
		fmt.Fprintf(w, "  %v\n", fd)
	}
}

func cmdDOT(cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: brepctl dot <script.lisp> [out.dot]")
		return errUsage
	}
	b, err := loadBody(cfg, args[0])
	if err != nil {
		return err
	}
	return writeOutput(optionalArg(args, 1), func(w io.Writer) error {
		return export.WriteDOT(w, b)
	})
}

func cmdSVG(cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: brepctl svg <script.lisp> [out.svg]")
		return errUsage
	}
	b, err := loadBody(cfg, args[0])
	if err != nil {
		return err
	}
	opts := svgOptions(cfg.Export.SVG)
	return writeOutput(optionalArg(args, 1), func(w io.Writer) error {
		return export.WriteSVG(w, b, opts)
	})
}

func cmdSTL(cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: brepctl stl <script.lisp> [out.stl]")
		return errUsage
	}
	b, err := loadBody(cfg, args[0])
	if err != nil {
		return err
	}
	meshes, err := tessellate.Tessellate(b)
	if err != nil {
		return err
	}

	out := optionalArg(args, 1)
	if out == "" {
		out = stlPath(cfg.Export.OutputDir, args[0])
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}

	w := sdfx.New()
	if err := w.WriteMeshes(out, meshes); err != nil {
		return err
	}
	min, max := w.Bounds(meshes)
	fmt.Printf("Wrote %s: %d faces, %d triangles, bounds %v..%v\n",
		out, len(meshes), kernel.TotalTriangles(meshes), min, max)
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	switch len(args) {
	case 0:
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", config.DefaultPath())
		return nil
	case 1:
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", args[0])
		return nil
	}
	fmt.Fprintln(os.Stderr, "Usage: brepctl config [path]")
	return errUsage
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// writeOutput runs write against path, or standard output when path is
// empty or "-".
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// stlPath names the STL file after the script: cube.lisp -> <dir>/cube.stl.
func stlPath(dir, script string) string {
	base := strings.TrimSuffix(filepath.Base(script), filepath.Ext(script))
	return filepath.Join(dir, base+".stl")
}

func svgOptions(c config.SVGConfig) export.SVGOptions {
	return export.SVGOptions{
		Width:        c.Width,
		Height:       c.Height,
		Margin:       c.Margin,
		VertexRadius: c.VertexRadius,
		OriginRadius: c.OriginRadius,
		Lateral:      c.Lateral,
		Inset:        c.Inset,
		Labels:       c.Labels,
	}
}
