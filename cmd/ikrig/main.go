// ikrig is a command-line tool for posing skeletons with inverse kinematics.
// It loads a skeleton and a rig description from YAML, binds the solvers,
// and prints the resulting bone transforms.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/config"
	"github.com/Faultbox/ikrig/internal/engine/debug"
	"github.com/Faultbox/ikrig/internal/engine/ik"
	"github.com/Faultbox/ikrig/internal/engine/scene"
	"github.com/Faultbox/ikrig/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "validate", "check":
		cmdValidate(args)
	case "solve":
		cmdSolve(args)
	case "demo":
		cmdDemo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
}

func printUsage() {
	fmt.Println(`ikrig - skeletal inverse kinematics tool

Usage:
  ikrig <command> [options]

Commands:
  validate  Bind a rig against a skeleton and report per-solver results
  solve     Solve a rig and print the resulting bone transforms
  demo      Solve the embedded demo humanoid
  help      Show this help message

Examples:
  ikrig validate -rig rig.yaml -skeleton skeleton.yaml
  ikrig solve -rig rig.yaml -skeleton skeleton.yaml -set hand_target_l=0.5,1.3,0.25
  ikrig solve -rig rig.yaml -skeleton skeleton.yaml -frames 2 -debug
  ikrig demo -dump`)
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	rigPath := fs.String("rig", "", "Path to the rig YAML file")
	skelPath := fs.String("skeleton", "", "Path to the skeleton YAML file")
	var flags config.Flags
	flags.Register(fs)
	fs.Parse(args)

	if *rigPath == "" || *skelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ikrig validate -rig <rig.yaml> -skeleton <skeleton.yaml>")
		os.Exit(1)
	}

	loadConfig(&flags)

	skelCfg, err := config.LoadSkeleton(*skelPath)
	if err != nil {
		fatalf("%v", err)
	}
	rigCfg, err := config.LoadRig(*rigPath)
	if err != nil {
		fatalf("%v", err)
	}
	root, err := scene.BuildSkeleton(skelCfg)
	if err != nil {
		fatalf("%v", err)
	}

	cache := ik.NodeCache{}
	failed := 0
	for i := range rigCfg.Solvers {
		sc := &rigCfg.Solvers[i]
		component, err := buildSolver(root, sc)
		if err == nil {
			err = component.Initialize(cache)
		}
		if err != nil {
			fmt.Printf("solver %d (%s -> %s): %v\n", i, sc.Type, sc.Target, err)
			failed++
			continue
		}
		fmt.Printf("solver %d (%s -> %s): ok\n", i, sc.Type, sc.Target)
	}

	fmt.Printf("\n%s: %d bones, %d solvers, %d failed\n",
		skelCfg.Name, len(skelCfg.Bones), len(rigCfg.Solvers), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func cmdSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	rigPath := fs.String("rig", "", "Path to the rig YAML file")
	skelPath := fs.String("skeleton", "", "Path to the skeleton YAML file")
	frames := fs.Int("frames", 1, "Number of solve passes to run")
	var moves targetMoves
	fs.Var(&moves, "set", "Move a bone before solving, as name=x,y,z (repeatable)")
	var flags config.Flags
	flags.Register(fs)
	fs.Parse(args)

	if *rigPath == "" || *skelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ikrig solve -rig <rig.yaml> -skeleton <skeleton.yaml> [-frames N] [-set bone=x,y,z]")
		os.Exit(1)
	}

	cfg := loadConfig(&flags)

	skelCfg, err := config.LoadSkeleton(*skelPath)
	if err != nil {
		fatalf("%v", err)
	}
	rigCfg, err := config.LoadRig(*rigPath)
	if err != nil {
		fatalf("%v", err)
	}
	root, err := scene.BuildSkeleton(skelCfg)
	if err != nil {
		fatalf("%v", err)
	}
	rig, err := buildRig(root, rigCfg, cfg.Solve)
	if err != nil {
		fatalf("%v", err)
	}

	runRig(root, rig, moves, *frames, cfg)
}

// runRig binds the rig, applies target moves, solves the requested number
// of frames, and prints the posed skeleton.
func runRig(root *scene.Node, rig *ik.Rig, moves targetMoves, frames int, cfg *config.Config) {
	if err := rig.Initialize(); err != nil {
		fatalf("rig initialization failed: %v", err)
	}

	for _, m := range moves {
		bone, ok := root.FindChild(m.name)
		if !ok {
			fatalf("bone not found: %s", m.name)
		}
		bone.SetWorldPosition(m.position)
	}

	for i := 0; i < frames; i++ {
		rig.Solve()
	}

	printTransforms(root, 0)
	if cfg.Debug.DrawGeometry {
		printDebugGeometry(rig, cfg.Debug.DepthTest)
	}
}

func printTransforms(n *scene.Node, depth int) {
	pos := n.WorldPosition()
	rot := n.WorldRotation()
	fmt.Printf("%*s%-16s pos=(% .4f, % .4f, % .4f) rot=(% .4f, % .4f, % .4f, % .4f)\n",
		depth*2, "", n.Name(),
		pos.X(), pos.Y(), pos.Z(),
		rot.W, rot.V.X(), rot.V.Y(), rot.V.Z())
	for _, child := range n.Children() {
		printTransforms(child, depth+1)
	}
}

func printDebugGeometry(rig *ik.Rig, depthTest bool) {
	r := debug.NewRenderer()
	rig.DrawDebugGeometry(r, depthTest)

	fmt.Printf("\ndebug geometry: %d lines, %d spheres, %d boxes (%d line vertices)\n",
		len(r.Lines()), len(r.Spheres()), len(r.Boxes()), len(r.LineVertices())/3)
	for _, l := range r.Lines() {
		fmt.Printf("  line   (% .3f, % .3f, % .3f) -> (% .3f, % .3f, % .3f)\n",
			l.From.X(), l.From.Y(), l.From.Z(), l.To.X(), l.To.Y(), l.To.Z())
	}
	for _, s := range r.Spheres() {
		fmt.Printf("  sphere (% .3f, % .3f, % .3f) r=%.3f\n",
			s.Center.X(), s.Center.Y(), s.Center.Z(), s.Radius)
	}
	for _, b := range r.Boxes() {
		fmt.Printf("  box    (% .3f, % .3f, % .3f) half=(%.3f, %.3f, %.3f)\n",
			b.Center.X(), b.Center.Y(), b.Center.Z(),
			b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z())
	}
}

// loadConfig resolves the effective configuration and initializes logging.
func loadConfig(flags *config.Flags) *config.Config {
	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// targetMove positions a single named bone in world space before solving.
type targetMove struct {
	name     string
	position mgl32.Vec3
}

// targetMoves implements flag.Value so -set can be given multiple times.
type targetMoves []targetMove

func (m *targetMoves) String() string {
	parts := make([]string, 0, len(*m))
	for _, move := range *m {
		parts = append(parts, fmt.Sprintf("%s=%g,%g,%g",
			move.name, move.position.X(), move.position.Y(), move.position.Z()))
	}
	return strings.Join(parts, " ")
}

func (m *targetMoves) Set(value string) error {
	name, coords, ok := strings.Cut(value, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=x,y,z, got %q", value)
	}
	parts := strings.Split(coords, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected three coordinates in %q", value)
	}

	var position mgl32.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return fmt.Errorf("bad coordinate %q: %w", part, err)
		}
		position[i] = float32(f)
	}

	*m = append(*m, targetMove{name: name, position: position})
	return nil
}
