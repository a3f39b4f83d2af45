package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"logo/interpreter-go/pkg/canvas"
	"logo/interpreter-go/pkg/driver"
	"logo/interpreter-go/pkg/interpreter"
	"logo/interpreter-go/pkg/parser"
	"logo/interpreter-go/pkg/runtime"
	"logo/interpreter-go/pkg/tracelog"
)

const cliToolVersion = "logo-cli 0.0.0-dev"

var errManifestNotFound = errors.New("sketch.yml not found")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "deps":
		return runDeps(args[1:])
	default:
		return runEntry(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  logo run [sketch]")
	fmt.Fprintln(os.Stderr, "  logo run <script.lg> [output.svg] [width] [height]")
	fmt.Fprintln(os.Stderr, "  logo <script.lg> [output.svg] [width] [height]")
	fmt.Fprintln(os.Stderr, "  logo deps install")
}

func runEntry(args []string) int {
	if len(args) == 0 {
		manifest, err := loadManifestFrom(".")
		if err != nil {
			if errors.Is(err, errManifestNotFound) {
				fmt.Fprintln(os.Stderr, "logo run requires a sketch or script file (sketch.yml not found)")
			} else {
				fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			}
			return 1
		}
		sketch, err := manifest.DefaultSketch()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return 1
		}
		return executeSketch(manifest, sketch)
	}

	if looksLikeScriptPath(args[0]) {
		return runScriptArgs(args)
	}

	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	sketch, ok := manifest.FindSketch(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "sketch %q not found in %s\n", args[0], manifest.Path)
		return 1
	}
	return executeSketch(manifest, sketch)
}

// runScriptArgs handles direct invocation: script path, then optional
// output path and canvas dimensions.
func runScriptArgs(args []string) int {
	if len(args) > 4 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[4:], " "))
		return 1
	}
	script := args[0]
	output := defaultOutputPath(script)
	width, height := driver.DefaultCanvasWidth, driver.DefaultCanvasHeight

	if len(args) >= 2 {
		output = args[1]
	}
	if len(args) >= 3 {
		parsed, err := strconv.Atoi(args[2])
		if err != nil || parsed <= 0 {
			fmt.Fprintf(os.Stderr, "invalid width %q\n", args[2])
			return 1
		}
		width = parsed
	}
	if len(args) == 4 {
		parsed, err := strconv.Atoi(args[3])
		if err != nil || parsed <= 0 {
			fmt.Fprintf(os.Stderr, "invalid height %q\n", args[3])
			return 1
		}
		height = parsed
	}
	return executeScript(script, output, width, height)
}

func executeSketch(manifest *driver.Manifest, sketch *driver.SketchSpec) int {
	base := filepath.Dir(manifest.Path)
	entry := sketch.Entry
	if !filepath.IsAbs(entry) {
		entry = filepath.Join(base, filepath.FromSlash(entry))
	}
	output := sketch.Output
	if output == "" {
		output = sketch.Name + ".svg"
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(base, filepath.FromSlash(output))
	}
	return executeScript(entry, output, manifest.Canvas.Width, manifest.Canvas.Height)
}

// executeScript parses and runs a script, then renders the primitive
// stream to an SVG file. A failed run writes no image.
func executeScript(scriptPath, outputPath string, width, height int) int {
	if !strings.HasSuffix(outputPath, ".svg") {
		fmt.Fprintf(os.Stderr, "invalid output extension for %s: use .svg\n", outputPath)
		return 1
	}
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read script: %v\n", err)
		return 1
	}
	script, err := parser.Parse(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", scriptPath, err)
		return 1
	}

	// The turtle starts at the canvas center, facing up.
	turtle := runtime.NewTurtle(float64(width)/2, float64(height)/2)
	rec := canvas.NewRecorder()
	interp := interpreter.New(turtle, rec)
	runErr := interp.Run(script)

	if err := traceRun(scriptPath, width, height, rec.Ops(), interp.Status()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", scriptPath, runErr)
		return 1
	}

	svg := canvas.RenderSVG(rec.Ops(), width, height)
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
			return 1
		}
	}
	if err := os.WriteFile(outputPath, []byte(svg), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write image: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", outputPath)
	return 0
}

// traceRun appends the run to the SQLite trace store when LOGO_TRACE_DB
// is set. Tracing failures never fail the run itself.
func traceRun(script string, width, height int, ops []canvas.Op, status interpreter.Status) error {
	dbPath := strings.TrimSpace(os.Getenv("LOGO_TRACE_DB"))
	if dbPath == "" {
		return nil
	}
	store, err := tracelog.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.BeginRun(script, width, height)
	if err != nil {
		return err
	}
	if err := store.RecordOps(id, ops); err != nil {
		return err
	}
	return store.EndRun(id, status.String())
}

func runDeps(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "logo deps requires a subcommand (install)")
		return 1
	}
	switch args[0] {
	case "install":
		if len(args) > 1 {
			fmt.Fprintf(os.Stderr, "logo deps install does not take arguments (received %s)\n", strings.Join(args[1:], " "))
			return 1
		}
		return runDepsInstall()
	default:
		fmt.Fprintf(os.Stderr, "unknown deps subcommand %q\n", args[0])
		return 1
	}
}

func runDepsInstall() int {
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate sketch.yml: %v\n", err)
		return 1
	}
	cacheDir, err := resolveLogoHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve LOGO_HOME: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(os.Stdout, "Dependencies: %d\n", len(manifest.Dependencies))

	installer := driver.NewInstaller(filepath.Join(cacheDir, "deps"))
	installed, err := installer.Install(filepath.Dir(manifest.Path), manifest.Dependencies)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to install dependencies: %v\n", err)
		return 1
	}
	for _, dep := range installed {
		if dep.Commit != "" {
			fmt.Fprintf(os.Stdout, "installed %s @ %s -> %s\n", dep.Name, dep.Commit, dep.Dir)
		} else {
			fmt.Fprintf(os.Stdout, "linked %s -> %s\n", dep.Name, dep.Dir)
		}
	}
	return 0
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	manifestPath, err := findManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

// findManifest walks from start upward looking for sketch.yml.
func findManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, "sketch.yml")
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no sketch.yml found from %s upwards: %w", origin, errManifestNotFound)
		}
		dir = parent
	}
}

func resolveLogoHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("LOGO_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve LOGO_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".logo"), nil
}

func looksLikeScriptPath(arg string) bool {
	if arg == "" {
		return false
	}
	if filepath.Ext(arg) == ".lg" {
		return true
	}
	if strings.Contains(arg, "/") || strings.Contains(arg, "\\") {
		return true
	}
	return strings.HasPrefix(arg, ".")
}

func defaultOutputPath(script string) string {
	return strings.TrimSuffix(script, filepath.Ext(script)) + ".svg"
}
