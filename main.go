package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"

	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// cliOptions holds the parsed command line
type cliOptions struct {
	Scene    string
	Width    int
	Height   int
	Samples  int // 0 keeps the scene's setting
	Depth    int // 0 keeps the scene's setting
	Workers  int // 0 uses one worker per CPU
	Seed     int64
	Out      string // Extension picks the format; empty writes output/<scene>/render_<timestamp>.png
	Thumb    int    // Width of an extra _thumb.png; 0 skips it
	Texture  string
	S3Bucket string
	Help     bool
}

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}
	if opts.Help {
		printHelp()
		return
	}

	if err := run(opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet binds flags to opts. Defaults come from RAYTRACER_* environment variables.
func newFlagSet(opts *cliOptions) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)

	fs.StringVar(&opts.Scene, "scene", getEnv("RAYTRACER_SCENE", "cornell"), "Built-in scene name or path to a .yaml scene")
	fs.IntVar(&opts.Width, "width", getEnvInt("RAYTRACER_WIDTH", 400), "Image width in pixels")
	fs.IntVar(&opts.Height, "height", getEnvInt("RAYTRACER_HEIGHT", 400), "Image height in pixels")
	fs.IntVar(&opts.Samples, "samples", getEnvInt("RAYTRACER_SAMPLES", 0), "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.Depth, "depth", getEnvInt("RAYTRACER_DEPTH", 0), "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&opts.Workers, "workers", getEnvInt("RAYTRACER_WORKERS", 0), "Number of row workers (0 = number of CPUs)")
	fs.Int64Var(&opts.Seed, "seed", int64(getEnvInt("RAYTRACER_SEED", 0)), "Random seed (0 = scene default)")
	fs.StringVar(&opts.Out, "out", getEnv("RAYTRACER_OUT", ""), "Output file (.png, .jpg, .bmp, .tif, .exr, .zst)")
	fs.IntVar(&opts.Thumb, "thumb", getEnvInt("RAYTRACER_THUMB", 0), "Also write a PNG thumbnail of this width")
	fs.StringVar(&opts.Texture, "texture", getEnv("RAYTRACER_TEXTURE", ""), "Image for textured scenes (earth, final)")
	fs.StringVar(&opts.S3Bucket, "s3-bucket", getEnv("S3_BUCKET", ""), "Upload the result to this S3 bucket")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")
	return fs
}

// parseFlags parses args and validates the result
func parseFlags(args []string) (*cliOptions, error) {
	opts := &cliOptions{}
	fs := newFlagSet(opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Samples < 0 || opts.Depth < 0 || opts.Workers < 0 || opts.Thumb < 0 {
		return nil, errors.New("samples, depth, workers and thumb must not be negative")
	}
	return opts, nil
}

func printHelp() {
	fmt.Println("Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs := newFlagSet(&cliOptions{})
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range listScenes() {
		fmt.Printf("  %-16s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Any .yaml or .yml path is loaded as a scene description.")
	fmt.Println("Without -out the image is saved to output/<scene>/render_<timestamp>.png")
}

func listScenes() []scene.SceneInfo {
	scenes, err := scene.ListAllScenes("scenes")
	if err != nil {
		return nil
	}
	return scenes
}

// createScene builds a built-in scene or loads a scene file
func createScene(name string, opts scene.Options) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name is empty")
	}
	return scene.Lookup(name, opts)
}

func run(opts *cliOptions) error {
	fmt.Println("Starting Raytracer...")

	logger := renderer.NewDefaultLogger()
	sceneObj, err := createScene(opts.Scene, scene.Options{
		AspectRatio: float64(opts.Width) / float64(opts.Height),
		TexturePath: opts.Texture,
		Seed:        opts.Seed,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	config := sceneObj.SamplingConfig
	if opts.Samples > 0 {
		config.SamplesPerPixel = opts.Samples
	}
	if opts.Depth > 0 {
		config.MaxDepth = opts.Depth
	}
	config.NumWorkers = opts.Workers

	frame, stats := sceneObj.RenderFrame(opts.Width, opts.Height, config)
	fmt.Printf("Render completed in %v (%.0f samples/sec)\n", stats.Elapsed, stats.SamplesPerSecond())

	filename := opts.Out
	if filename == "" {
		filename = defaultOutputPath(sceneObj.Name, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := output.Write(filename, frame); err != nil {
		return fmt.Errorf("error saving image: %w", err)
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.Thumb > 0 {
		thumbName := thumbnailPath(filename)
		if err := imaging.Save(output.Thumbnail(frame.Image(), uint(opts.Thumb)), thumbName); err != nil {
			return fmt.Errorf("error saving thumbnail: %w", err)
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbName)
	}

	if opts.S3Bucket != "" {
		if err := upload(opts.S3Bucket, filename); err != nil {
			return err
		}
	}
	return nil
}

// upload sends the written file to S3 using S3_* credentials from the environment
func upload(bucket, filename string) error {
	uploader, err := output.NewS3Uploader(output.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    bucket,
		ACL:       os.Getenv("S3_ACL"),
	})
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return uploader.Upload(context.Background(), filepath.ToSlash(filename), data, output.ContentType(filename))
}

func defaultOutputPath(sceneName string, now time.Time) string {
	dir := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// thumbnailPath turns out/image.exr into out/image_thumb.png
func thumbnailPath(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "_thumb.png"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
