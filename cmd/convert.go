// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch (or read) → extract → convert → render → write.
//
// It handles flag validation, config-file defaults, renderer selection,
// and the --only / --all modes.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/treemark/core"
	"github.com/gaurav-prasanna/treemark/core/convert"
	"github.com/gaurav-prasanna/treemark/core/extract"
	"github.com/gaurav-prasanna/treemark/core/fetch"
	"github.com/gaurav-prasanna/treemark/core/output"
	"github.com/gaurav-prasanna/treemark/core/render"
	"github.com/gaurav-prasanna/treemark/crawl"
)

// Flag variables.
var (
	flagOnly       bool
	flagAll        bool
	flagPDF        bool
	flagMarkdown   bool
	flagJSON       bool
	flagEmbeddings bool
	flagModel      string
	flagChunkSize  int
	flagOllamaURL  string
	flagOutputDir  string
	flagMaxPages   int

	flagFrontMatter        bool
	flagGitHubCodeBlocks   bool
	flagImplicitCodeBlocks bool
	flagImplicitCodeLength int
	flagStrict             bool
	flagLogLevel           string
	flagConfigFile         string
)

var convertCmd = &cobra.Command{
	Use:   "convert <url|file|->",
	Short: "Convert a URL, local HTML file, or stdin to the chosen output format",
	Long: `Convert reads an HTML page (from a URL, a local file, or stdin when the
argument is "-"), extracts the main content, converts it to Markdown with
the tag-aware transducer, and renders the chosen output format.

Examples:
  treemark convert https://example.com --markdown
  treemark convert page.html --markdown --github_code_blocks
  treemark convert https://example.com --json --output_dir ./out
  treemark convert https://example.com --all --pdf
  treemark convert https://example.com --embeddings --model nomic-embed-text
  treemark convert https://example.com --markdown --config treemark.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Mode flags.
	convertCmd.Flags().BoolVar(&flagOnly, "only", false, "Convert only the given URL (default)")
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Convert all discovered sub-pages (URLs only)")
	convertCmd.Flags().IntVar(&flagMaxPages, "max_pages", crawl.DefaultMaxPages, "Page cap for --all discovery")

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagEmbeddings, "embeddings", false, "Output embeddings")
	convertCmd.Flags().BoolVar(&flagFrontMatter, "front_matter", false, "Prefix Markdown output with YAML front matter")

	// Embedding-specific flags.
	convertCmd.Flags().StringVar(&flagModel, "model", "", "Embedding model (required with --embeddings)")
	convertCmd.Flags().IntVar(&flagChunkSize, "chunk_size", 512, "Token chunk size for embeddings")
	convertCmd.Flags().StringVar(&flagOllamaURL, "ollama_url", "", "Embeddings API endpoint (default: local Ollama)")

	// Converter flags.
	convertCmd.Flags().BoolVar(&flagGitHubCodeBlocks, "github_code_blocks", false, "Emit ``` fences instead of 4-space indented code")
	convertCmd.Flags().BoolVar(&flagImplicitCodeBlocks, "implicit_code_blocks", false, "Promote long or multi-line <code> to block code")
	convertCmd.Flags().IntVar(&flagImplicitCodeLength, "implicit_code_length", 60, "Length threshold for --implicit_code_blocks")
	convertCmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail on unrecognized HTML tags instead of skipping them")
	convertCmd.Flags().StringVar(&flagLogLevel, "log_level", "warn", "Severity for skipped-tag reports (debug|info|warn|error)")

	// Output directory and config file.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	convertCmd.Flags().StringVar(&flagConfigFile, "config", "", "TOML config file supplying flag defaults")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	if flagConfigFile != "" {
		cfg, err := loadConfig(flagConfigFile)
		if err != nil {
			return err
		}
		applyConfig(cmd, cfg)
	}

	if err := validateFlags(); err != nil {
		return err
	}

	level, err := parseLogLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	converter := convert.New(
		convert.WithGitHubCodeBlocks(flagGitHubCodeBlocks),
		convert.WithImplicitCodeBlocks(flagImplicitCodeBlocks),
		convert.WithImplicitCodeLength(flagImplicitCodeLength),
		convert.WithRaiseErrors(flagStrict),
		convert.WithLogger(logger, level),
	)

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	extractor := extract.New()

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := context.Background()

	// Local inputs bypass fetching and crawling.
	if input == "-" || isLocalFile(input) {
		return runLocal(input, extractor, converter, renderer, writer)
	}

	parsed, err := url.Parse(input)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid input: %s (must be a URL with scheme, a local file, or \"-\")", input)
	}

	fetcher := fetch.New()
	if flagAll {
		return runAll(ctx, input, fetcher, extractor, converter, renderer, writer)
	}
	return runOnly(ctx, input, fetcher, extractor, converter, renderer, writer)
}

// applyConfig overlays config-file values under explicitly set flags.
func applyConfig(cmd *cobra.Command, cfg *Config) {
	set := func(name string, apply func()) {
		if !cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("github_code_blocks", func() { flagGitHubCodeBlocks = cfg.Convert.GitHubCodeBlocks })
	set("implicit_code_blocks", func() { flagImplicitCodeBlocks = cfg.Convert.ImplicitCodeBlocks })
	set("implicit_code_length", func() {
		if cfg.Convert.ImplicitCodeLength > 0 {
			flagImplicitCodeLength = cfg.Convert.ImplicitCodeLength
		}
	})
	set("strict", func() { flagStrict = cfg.Convert.Strict })
	set("log_level", func() {
		if cfg.Convert.LogLevel != "" {
			flagLogLevel = cfg.Convert.LogLevel
		}
	})
	set("output_dir", func() {
		if cfg.Output.Dir != "" {
			flagOutputDir = cfg.Output.Dir
		}
	})
	set("model", func() {
		if cfg.Embeddings.Model != "" {
			flagModel = cfg.Embeddings.Model
		}
	})
	set("chunk_size", func() {
		if cfg.Embeddings.ChunkSize > 0 {
			flagChunkSize = cfg.Embeddings.ChunkSize
		}
	})
	set("ollama_url", func() {
		if cfg.Embeddings.URL != "" {
			flagOllamaURL = cfg.Embeddings.URL
		}
	})
	set("max_pages", func() {
		if cfg.Crawl.MaxPages > 0 {
			flagMaxPages = cfg.Crawl.MaxPages
		}
	})
}

// parseLogLevel maps the --log_level flag onto a slog level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q (want debug, info, warn, or error)", s)
}

// isLocalFile reports whether the input names an existing regular file.
func isLocalFile(input string) bool {
	info, err := os.Stat(input)
	return err == nil && info.Mode().IsRegular()
}

// runLocal converts a local file or stdin through the pipeline.
func runLocal(
	input string,
	extractor core.Extractor,
	converter core.Converter,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	var html []byte
	var err error
	var sourceURL string

	if input == "-" {
		html, err = io.ReadAll(os.Stdin)
		sourceURL = "file:///dev/stdin"
	} else {
		html, err = os.ReadFile(input)
		sourceURL = "file://" + input
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	data, err := processHTML(string(html), sourceURL, extractor, converter, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WritePage(sourceURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runOnly processes a single URL through the pipeline.
func runOnly(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	extractor core.Extractor,
	converter core.Converter,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	data, err := processHTML(result.HTML, rawURL, extractor, converter, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WritePage(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers all internal pages and processes each one.
func runAll(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	extractor core.Extractor,
	converter core.Converter,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	fmt.Fprintf(os.Stdout, "Discovering pages from %s...\n", rawURL)

	discoverer := crawl.NewDiscoverer(fetcher)
	discoverer.MaxPages = flagMaxPages

	urls, err := discoverer.Discover(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d pages to process\n", len(urls))

	var errCount int
	for i, pageURL := range urls {
		fmt.Fprintf(os.Stdout, "[%d/%d] Processing %s\n", i+1, len(urls), pageURL)

		result, err := fetcher.Fetch(ctx, pageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		data, err := processHTML(result.HTML, pageURL, extractor, converter, renderer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteTree(pageURL, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d pages failed\n", errCount, len(urls))
	}
	return nil
}

// processHTML runs raw HTML through extract → convert → render.
func processHTML(
	html string,
	sourceURL string,
	extractor core.Extractor,
	converter core.Converter,
	renderer core.Renderer,
) ([]byte, error) {
	content, err := extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	markdown, err := converter.Convert(content)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	meta := buildMetadata(sourceURL, html)

	data, err := renderer.Render(markdown, meta)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

// buildMetadata constructs PageMetadata from the URL and raw HTML.
func buildMetadata(rawURL string, html string) core.PageMetadata {
	parsed, _ := url.Parse(rawURL)

	meta := core.PageMetadata{
		URL:       rawURL,
		Language:  "en",
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if parsed != nil {
		meta.Domain = parsed.Host
		meta.Path = parsed.Path
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return meta
	}
	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if lang, ok := doc.Find("html").Attr("lang"); ok && lang != "" {
		meta.Language = lang
	}
	return meta
}

// validateFlags checks that exactly one output format is chosen and that
// the mode flags are consistent.
func validateFlags() error {
	if flagOnly && flagAll {
		return fmt.Errorf("--only and --all are mutually exclusive")
	}

	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON, flagEmbeddings} {
		if set {
			formatCount++
		}
	}
	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --markdown, --json, or --embeddings")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if flagEmbeddings && flagModel == "" {
		return fmt.Errorf("--model is required when using --embeddings")
	}
	if flagFrontMatter && !flagMarkdown {
		return fmt.Errorf("--front_matter only applies to --markdown output")
	}

	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		r := render.NewMarkdownRenderer()
		r.FrontMatter = flagFrontMatter
		return r, nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	case flagEmbeddings:
		return render.NewEmbeddingsRenderer(flagModel, flagChunkSize, flagOllamaURL), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
