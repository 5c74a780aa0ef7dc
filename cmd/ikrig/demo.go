package main

import (
	_ "embed"
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/ikrig/internal/config"
	"github.com/Faultbox/ikrig/internal/engine/scene"
)

//go:embed demo_skeleton.yaml
var demoSkeletonYAML []byte

//go:embed demo_rig.yaml
var demoRigYAML []byte

func cmdDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	frames := fs.Int("frames", 1, "Number of solve passes to run")
	dump := fs.Bool("dump", false, "Write the demo YAML files to the current directory and exit")
	var flags config.Flags
	flags.Register(fs)
	fs.Parse(args)

	if *dump {
		dumpDemoFiles()
		return
	}

	cfg := loadConfig(&flags)

	skelCfg, err := config.ParseSkeleton(demoSkeletonYAML)
	if err != nil {
		fatalf("demo skeleton: %v", err)
	}
	rigCfg, err := config.ParseRig(demoRigYAML)
	if err != nil {
		fatalf("demo rig: %v", err)
	}
	root, err := scene.BuildSkeleton(skelCfg)
	if err != nil {
		fatalf("demo skeleton: %v", err)
	}
	rig, err := buildRig(root, rigCfg, cfg.Solve)
	if err != nil {
		fatalf("demo rig: %v", err)
	}

	runRig(root, rig, nil, *frames, cfg)
}

func dumpDemoFiles() {
	files := map[string][]byte{
		"demo_skeleton.yaml": demoSkeletonYAML,
		"demo_rig.yaml":      demoRigYAML,
	}
	for _, name := range []string{"demo_skeleton.yaml", "demo_rig.yaml"} {
		if err := os.WriteFile(name, files[name], 0644); err != nil {
			fatalf("writing %s: %v", name, err)
		}
		fmt.Printf("Wrote %s\n", name)
	}
}
