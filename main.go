package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

const version = "0.1.0"

// options holds the command line flags
type options struct {
	scene     string
	output    string
	format    string
	scenesDir string
	list      bool
	quiet     bool
	seed      int64

	width        int
	aspect       float64
	spp          int
	maxDepth     int
	vfov         float64
	defocusAngle float64
	focusDist    float64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version))
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pathtracer",
		Short: "Render spheres with a Monte Carlo path tracer",
		Long: `Render a scene of spheres with diffuse, metal and glass materials.

The image is written as plain-text PPM (P3) to stdout by default, or to a
PPM or PNG file. Progress goes to stderr.`,
		Example: `  pathtracer > image.ppm
  pathtracer -s simple --spp 50 -o simple.png
  pathtracer -s scenes/glass.json --width 200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, opts)
		},
	}

	bindFlags(cmd.Flags(), opts)
	return cmd
}

// bindFlags registers the command line flags on flags, storing their values in opts
func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.scene, "scene", "s", "default", "built-in scene name or path to a .json scene file")
	flags.StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	flags.StringVar(&opts.format, "format", "", "output format: ppm or png (default from the output extension)")
	flags.StringVar(&opts.scenesDir, "scenes-dir", "scenes", "directory searched for .json scenes by --list")
	flags.BoolVar(&opts.list, "list", false, "list available scenes and exit")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")
	flags.Int64Var(&opts.seed, "seed", renderer.DefaultSeed, "random seed, equal seeds render equal images")

	flags.IntVar(&opts.width, "width", 0, "image width in pixels")
	flags.Float64Var(&opts.aspect, "aspect", 0, "aspect ratio (width / height)")
	flags.IntVar(&opts.spp, "spp", 0, "samples per pixel")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum ray bounces")
	flags.Float64Var(&opts.vfov, "vfov", 0, "vertical field of view in degrees")
	flags.Float64Var(&opts.defocusAngle, "defocus-angle", 0, "defocus cone angle in degrees, 0 disables depth of field")
	flags.Float64Var(&opts.focusDist, "focus-dist", 0, "distance to the plane of perfect focus")
}

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	var logger core.Logger = renderer.NopLogger{}
	if !opts.quiet {
		logger = renderer.NewDefaultLogger(cmd.ErrOrStderr())
	}

	if opts.list {
		return listScenes(cmd.OutOrStdout(), opts.scenesDir, logger)
	}

	format, err := resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	s, err := createScene(opts.scene)
	if err != nil {
		return err
	}
	config := applyOverrides(cmd.Flags(), s.CameraConfig, opts)

	rt, err := renderer.NewRaytracer(config, integrator.NewPathTracingIntegrator(s.Sky), logger)
	if err != nil {
		return err
	}
	rt.SetSeed(opts.seed)

	logger.Printf("Rendering %s scene at %dx%d, %d samples per pixel\n",
		s.Name, rt.Camera().ImageWidth(), rt.Camera().ImageHeight(), config.SamplesPerPixel)

	switch format {
	case "png":
		sink := output.NewImageSink()
		if _, err := rt.Render(ctx, s.World, sink); err != nil {
			return err
		}
		if err := createOutputDir(opts.output); err != nil {
			return err
		}
		if err := output.SavePNG(opts.output, sink.Image()); err != nil {
			return err
		}
	default:
		if opts.output == "-" {
			_, err := rt.Render(ctx, s.World, output.NewPPMWriter(cmd.OutOrStdout()))
			return err
		}
		if err := writePPMFile(ctx, rt, s, opts.output); err != nil {
			return err
		}
	}

	logger.Printf("Render saved as %s\n", opts.output)
	return nil
}

// createScene returns the built-in scene with the given name or loads a JSON scene file
func createScene(nameOrPath string) (*scene.Scene, error) {
	if nameOrPath == "" {
		return nil, fmt.Errorf("no scene given (available: %s)", strings.Join(scene.Names(), ", "))
	}
	return scene.Open(nameOrPath)
}

// resolveFormat picks the output format, inferring it from the file extension when unset
func resolveFormat(format, path string) (string, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = "ppm"
		if strings.EqualFold(filepath.Ext(path), ".png") {
			format = "png"
		}
	}

	switch format {
	case "ppm":
		return format, nil
	case "png":
		if path == "-" {
			return "", fmt.Errorf("png output needs a file, use --output")
		}
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected ppm or png)", format)
	}
}

// applyOverrides replaces the scene camera settings with every flag the user set
func applyOverrides(flags *pflag.FlagSet, config renderer.CameraConfig, opts *options) renderer.CameraConfig {
	if flags.Changed("width") {
		config.ImageWidth = opts.width
	}
	if flags.Changed("aspect") {
		config.AspectRatio = opts.aspect
	}
	if flags.Changed("spp") {
		config.SamplesPerPixel = opts.spp
	}
	if flags.Changed("max-depth") {
		config.MaxDepth = opts.maxDepth
	}
	if flags.Changed("vfov") {
		config.VFov = opts.vfov
	}
	if flags.Changed("defocus-angle") {
		config.DefocusAngle = opts.defocusAngle
	}
	if flags.Changed("focus-dist") {
		config.FocusDist = opts.focusDist
	}
	return config
}

// createOutputDir makes sure the directory of the output file exists
func createOutputDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

func writePPMFile(ctx context.Context, rt *renderer.Raytracer, s *scene.Scene, path string) error {
	if err := createOutputDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	_, renderErr := rt.Render(ctx, s.World, output.NewPPMWriter(file))
	closeErr := file.Close()
	if renderErr != nil {
		return renderErr
	}
	return closeErr
}

func listScenes(w io.Writer, dir string, logger core.Logger) error {
	scenes, err := scene.ListAllScenes(dir, logger)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "%-24s %s\n", info.ID, info.Description)
	}
	return nil
}
