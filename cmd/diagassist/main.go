package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/mrsinham/diagassist/cmd/diagassist/tui"
	"github.com/mrsinham/diagassist/internal/analysis"
	"github.com/mrsinham/diagassist/internal/config"
	"github.com/mrsinham/diagassist/internal/lexicon"
	"github.com/mrsinham/diagassist/internal/observability"
	"github.com/mrsinham/diagassist/internal/report"
	"github.com/mrsinham/diagassist/internal/workflow"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	symptoms := flag.String("symptoms", "", "Free-text symptom description")
	imagePath := flag.String("image", "", "Path to a medical image (PNG, JPEG, GIF, BMP, TIFF, WebP or DICOM)")
	category := flag.String("category", "", "Image category: chest, brain (default: from DICOM body part, then config)")

	// Output options
	reportPath := flag.String("report", "", "Write the report to this YAML file")
	pdfPath := flag.String("pdf", "", "Write the report to this PDF file")

	// Interactive mode and config options
	interactive := flag.Bool("interactive", false, "Launch the interactive interface")
	flag.BoolVar(interactive, "i", false, "Launch the interactive interface (shortcut)")
	configFile := flag.String("config", "", "Load configuration from YAML file")
	saveConfig := flag.String("save-config", "", "Save the effective configuration to YAML file")
	noDelay := flag.Bool("no-delay", false, "Skip the simulated analysis latency")
	verbose := flag.Bool("verbose", false, "Write logs to stderr")
	flag.BoolVar(verbose, "v", false, "Write logs to stderr (shortcut)")

	help := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	if *showVersion {
		fmt.Printf("diagassist %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", flag.Args())
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *noDelay {
		cfg.SymptomDelay = 0
		cfg.ImageDelay = 0
	}

	var selected lexicon.Category
	if *category != "" {
		selected, err = lexicon.ParseCategory(*category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	launchUI := *interactive || (*symptoms == "" && *imagePath == "")

	closeLog, err := setupLogging(cfg, *verbose && !launchUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	tables, err := cfg.Tables()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tables: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig != "" {
		if err := config.Save(cfg, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else if !launchUI {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	initial := cfg.DefaultCategory
	if selected != "" {
		initial = selected
	}
	orchestrator := analysis.NewMock(tables, cfg.Delays(), analysis.WithTimeout(time.Duration(cfg.Timeout)))
	controller := workflow.NewController(orchestrator, initial)

	if launchUI {
		if err := tui.Run(ctx, controller); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := runOnce(ctx, controller, oneShot{
		symptoms:   *symptoms,
		imagePath:  *imagePath,
		category:   selected,
		reportPath: *reportPath,
		pdfPath:    *pdfPath,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type oneShot struct {
	symptoms   string
	imagePath  string
	category   lexicon.Category // empty when not given on the command line
	reportPath string
	pdfPath    string
}

// runOnce analyses the command-line inputs and prints the report.
func runOnce(ctx context.Context, controller *workflow.Controller, in oneShot) error {
	controller.SetSymptoms(in.symptoms)

	if in.imagePath != "" {
		if err := controller.StageImageFile(in.imagePath); err != nil {
			return fmt.Errorf("%s: %w", controller.Snapshot().Error, err)
		}
		if in.category == "" {
			if suggested, ok := controller.Snapshot().Image.SuggestedCategory(); ok {
				controller.SetCategory(suggested)
			}
		}
	}

	state := controller.Snapshot()
	fmt.Println("diagassist")
	fmt.Println("==========")
	if state.Image != nil {
		fmt.Printf("Image: %s (%s, %s), category %s\n", state.Image.Name, state.Image.MediaType, state.Image.HumanSize(), state.Category)
	}
	fmt.Println()

	r, err := controller.Generate(ctx)
	if errors.Is(err, workflow.ErrNotReady) {
		return fmt.Errorf("nothing to analyse: provide --symptoms and/or --image")
	}
	if err != nil {
		return fmt.Errorf("%s (%w)", workflow.MessageAnalysisFailed, err)
	}

	fmt.Print(report.Summary(r))

	if in.reportPath != "" {
		if err := report.WriteYAML(r, in.reportPath); err != nil {
			return err
		}
		fmt.Printf("\nReport saved to %s\n", in.reportPath)
	}
	if in.pdfPath != "" {
		if err := report.WritePDF(r, in.pdfPath); err != nil {
			return err
		}
		fmt.Printf("PDF saved to %s\n", in.pdfPath)
	}
	return nil
}

// setupLogging routes logs to the configured file, to stderr when verbose,
// or nowhere. The interactive interface owns the terminal, so it never logs
// to stderr.
func setupLogging(cfg *config.Config, verbose bool) (func(), error) {
	if err := observability.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		observability.SetOutput(f)
		return func() { f.Close() }, nil
	case verbose:
		observability.SetOutput(os.Stderr)
	default:
		observability.SetOutput(io.Discard)
	}
	return func() {}, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  diagassist [--symptoms <TEXT>] [--image <FILE>] [options]")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}

func printHelp() {
	fmt.Println("diagassist")
	fmt.Println("==========")
	fmt.Println()
	fmt.Println("Mock diagnostic assistant: describe symptoms, optionally add a medical image,")
	fmt.Println("and get simulated conditions, confidence and urgency. Not medical advice.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  diagassist                     Start the interactive interface")
	fmt.Println("  diagassist [options]           Analyse once and print the report")
	fmt.Println()
	fmt.Println("Inputs:")
	fmt.Println("  --symptoms <TEXT>     Free-text symptom description")
	fmt.Println("  --image <FILE>        Medical image: PNG, JPEG, GIF, BMP, TIFF, WebP or DICOM")
	fmt.Println("  --category <CAT>      Image category: chest, brain")
	fmt.Println("                        (default: DICOM body part if recognised, then config)")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  --report <FILE>       Also write the report as YAML")
	fmt.Println("  --pdf <FILE>          Also write the report as PDF")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --config <FILE>       Load configuration from YAML file")
	fmt.Println("  --save-config <FILE>  Save the effective configuration to YAML file")
	fmt.Println("  --no-delay            Skip the simulated analysis latency")
	fmt.Println("  -v, --verbose         Write logs to stderr (one-shot mode)")
	fmt.Println("  -i, --interactive     Start the interactive interface")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  DIAGASSIST_SYMPTOM_DELAY, DIAGASSIST_IMAGE_DELAY, DIAGASSIST_TIMEOUT,")
	fmt.Println("  DIAGASSIST_DEFAULT_CATEGORY, DIAGASSIST_TABLES_FILE, DIAGASSIST_LOG_LEVEL,")
	fmt.Println("  DIAGASSIST_LOG_FILE override the config file.")
	fmt.Println()
	fmt.Println("  --version             Show version")
	fmt.Println("  --help                Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Analyse symptoms only")
	fmt.Println("  diagassist --symptoms \"I have a severe headache and fever\"")
	fmt.Println()
	fmt.Println("  # Analyse a chest X-ray and export the report")
	fmt.Println("  diagassist --image xray.png --category chest --report out/report.yaml --pdf out/report.pdf")
	fmt.Println()
	fmt.Println("  # Use a custom lookup table without the simulated latency")
	fmt.Println("  DIAGASSIST_TABLES_FILE=tables.yaml diagassist --symptoms \"rash\" --no-delay")
}
