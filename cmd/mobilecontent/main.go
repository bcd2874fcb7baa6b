package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mobilecontent/internal/config"
	"mobilecontent/internal/html"
	"mobilecontent/internal/server"
	"mobilecontent/pkg/mobilecontent"
)

var (
	// Shared flags
	configFile string
	baseURL    string
	nestedTags []string
	sanitize   bool
	verbose    bool

	// Convert flags
	outputFile string
	inputDir   string
	outputDir  string
	pretty     bool
	benchmark  bool

	// Serve flags
	listenAddr string
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	rootCmd := &cobra.Command{
		Use:   "mobilecontent",
		Short: "Flatten HTML into typed content blocks for mobile clients",
		Long: `mobilecontent converts HTML fragments into a flat JSON list of
text, paragraph, image, link and list blocks with absolute URLs.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL for relative links")
	rootCmd.PersistentFlags().StringSliceVar(&nestedTags, "nested", nil, "Tags whose children are grouped into one block (default ul)")
	rootCmd.PersistentFlags().BoolVar(&sanitize, "sanitize", false, "Strip scripts, styles and unsafe markup before converting")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	convertCmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert an HTML file, stdin or a directory of files",
		Example: `  mobilecontent convert page.html --base-url https://example.com
  cat page.html | mobilecontent convert --base-url https://example.com --pretty
  mobilecontent convert --input-dir pages --output-dir blocks --base-url https://example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConvert,
	}
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output JSON file path (default: stdout)")
	convertCmd.Flags().StringVar(&inputDir, "input-dir", "", "Convert all HTML files in directory")
	convertCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory for batch conversion")
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	convertCmd.Flags().BoolVar(&benchmark, "benchmark", false, "Show processing time")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Serve POST /v1/blocks: the request body is converted and returned as JSON.
The base URL comes from ?base=, --base-url / config, or the request Host.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "Listen address")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// loadConfig merges defaults, the config file, environment and flags
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, err
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}

	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if len(nestedTags) > 0 {
		cfg.NestedTags = nestedTags
	}
	if sanitize {
		cfg.Sanitize = true
	}

	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := validateConvertArgs(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("a base URL is required: use --base-url, the config file or %s", config.EnvBaseURL)
	}

	startTime := time.Now()

	switch {
	case inputDir != "":
		err = runBatch(cfg)
	case len(args) == 1:
		err = runSingleFile(cfg, args[0])
	default:
		err = runStdin(cfg)
	}
	if err != nil {
		return err
	}

	if benchmark {
		log.Info().Dur("duration", time.Since(startTime)).Msg("processing completed")
	}
	return nil
}

// validateConvertArgs validates command line arguments
func validateConvertArgs(args []string) error {
	if len(args) == 1 && inputDir != "" {
		return fmt.Errorf("cannot specify both an input file and --input-dir")
	}

	if inputDir != "" && outputDir == "" {
		return fmt.Errorf("--output-dir required when using --input-dir")
	}

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return server.New(cfg, mobilecontent.DefaultRegistry, log.Logger).ListenAndServe(listenAddr)
}

// convertContent converts one document and encodes the result
func convertContent(cfg config.Config, content, source string) ([]byte, error) {
	converter, err := mobilecontent.New(content,
		mobilecontent.WithConfig(cfg),
		mobilecontent.WithLogger(log.Logger.With().Str("source", source).Logger()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", source, err)
	}

	data, err := converter.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", source, err)
	}

	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, fmt.Errorf("failed to indent %s: %w", source, err)
		}
		data = buf.Bytes()
	}

	return append(data, '\n'), nil
}

// runSingleFile converts a single input file
func runSingleFile(cfg config.Config, inputPath string) error {
	content, err := readHTMLFile(inputPath)
	if err != nil {
		return err
	}

	data, err := convertContent(cfg, content, inputPath)
	if err != nil {
		return err
	}

	return writeOutput(data, outputFile)
}

// runStdin converts HTML from stdin
func runStdin(cfg config.Config) error {
	content, err := html.ReadUTF8(os.Stdin, "")
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}

	data, err := convertContent(cfg, content, "<stdin>")
	if err != nil {
		return err
	}

	return writeOutput(data, outputFile)
}

// runBatch converts every HTML file below inputDir into a .json file below outputDir
func runBatch(cfg config.Config) error {
	htmlFiles, err := findHTMLFiles(inputDir)
	if err != nil {
		return fmt.Errorf("failed to find HTML files: %w", err)
	}

	if len(htmlFiles) == 0 {
		return fmt.Errorf("no HTML files found in directory: %s", inputDir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	converted := 0
	for i, inputPath := range htmlFiles {
		log.Debug().Int("n", i+1).Int("total", len(htmlFiles)).Str("file", inputPath).Msg("processing")

		content, err := readHTMLFile(inputPath)
		if err != nil {
			log.Warn().Err(err).Str("file", inputPath).Msg("skipping file")
			continue
		}

		data, err := convertContent(cfg, content, inputPath)
		if err != nil {
			log.Warn().Err(err).Str("file", inputPath).Msg("skipping file")
			continue
		}

		outputPath := batchOutputPath(inputDir, outputDir, inputPath)
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			log.Warn().Err(err).Str("dir", filepath.Dir(outputPath)).Msg("failed to create output directory")
			continue
		}

		if err := writeOutput(data, outputPath); err != nil {
			log.Warn().Err(err).Str("file", outputPath).Msg("failed to write output")
			continue
		}
		converted++
	}

	log.Info().Int("files", len(htmlFiles)).Int("converted", converted).Msg("batch conversion finished")
	return nil
}

// batchOutputPath mirrors inputPath below outDir with a .json extension
func batchOutputPath(inDir, outDir, inputPath string) string {
	relPath, err := filepath.Rel(inDir, inputPath)
	if err != nil {
		relPath = filepath.Base(inputPath)
	}
	relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ".json"
	return filepath.Join(outDir, relPath)
}

func readHTMLFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	defer file.Close()

	content, err := html.ReadUTF8(file, "")
	if err != nil {
		return "", fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return content, nil
}

// writeOutput writes content to a file or stdout
func writeOutput(content []byte, filename string) error {
	if filename == "" {
		_, err := io.Copy(os.Stdout, bytes.NewReader(content))
		return err
	}

	return os.WriteFile(filename, content, 0644)
}

// findHTMLFiles finds all HTML files in a directory
func findHTMLFiles(dir string) ([]string, error) {
	var htmlFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			ext := strings.ToLower(filepath.Ext(path))
			if ext == ".html" || ext == ".htm" {
				htmlFiles = append(htmlFiles, path)
			}
		}

		return nil
	})

	return htmlFiles, err
}
