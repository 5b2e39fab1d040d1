package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasnorm"
	"github.com/erraggy/oasnorm/internal/mcpserver"
	"github.com/erraggy/oasnorm/normalizer"
	"github.com/erraggy/oasnorm/parser"
	"go.yaml.in/yaml/v4"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasnorm v%s\n", oasnorm.Version())
	case "help", "-h", "--help":
		printUsage()
	case "detect":
		if err := handleDetect(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "normalize":
		if err := handleNormalize(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`oasnorm - OpenAPI 3.0/3.1 schema normalizer

Usage: oasnorm <command> [flags] [arguments]

Commands:
  detect      Detect and validate the OpenAPI version of a document
  normalize   Normalize a document's schemas for Draft-07 era tooling
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Run 'oasnorm <command> -h' for command-specific flags.`)
}

func handleDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasnorm detect <file>\n\n")
		_, _ = fmt.Fprintf(output, "Detect and validate the OpenAPI version of a document.\n")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("detect command requires exactly one file path")
	}

	loaded, err := parser.LoadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	info, err := parser.DetectVersion(loaded.Document)
	if err != nil {
		return err
	}

	fmt.Printf("OpenAPI version: %s (major=%d minor=%d", info.Version, info.Major, info.Minor)
	if info.Patch >= 0 {
		fmt.Printf(" patch=%d", info.Patch)
	}
	fmt.Println(")")
	features := info.Features()
	fmt.Printf("Feature support: webhooks=%t typeArrays=%t conditionals=%t prefixItems=%t unevaluated=%t const=%t contains=%t discriminator=%t\n",
		features.Webhooks, features.TypeArrays, features.ConditionalSchemas,
		features.PrefixItems, features.UnevaluatedProperties,
		features.ConstKeyword, features.ContainsKeyword,
		features.EnhancedDiscriminator)
	return nil
}

// normalizeFlags contains flags for the normalize command
type normalizeFlags struct {
	noNullTypes     bool
	noConst         bool
	noPrefixItems   bool
	noContains      bool
	noConditionals  bool
	noDiscriminator bool
	noUnevaluated   bool
	webhooks        bool
	fallback30      bool
	output          string
	format          string
	verbose         bool
}

func setupNormalizeFlags() (*flag.FlagSet, *normalizeFlags) {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	flags := &normalizeFlags{}

	fs.BoolVar(&flags.noNullTypes, "no-null-types", false, "disable null-type normalization")
	fs.BoolVar(&flags.noConst, "no-const", false, "disable const normalization")
	fs.BoolVar(&flags.noPrefixItems, "no-prefix-items", false, "disable prefixItems tuple rewriting")
	fs.BoolVar(&flags.noContains, "no-contains", false, "disable contains validation")
	fs.BoolVar(&flags.noConditionals, "no-conditionals", false, "disable if/then/else validation")
	fs.BoolVar(&flags.noDiscriminator, "no-discriminator", false, "disable discriminator enhancement")
	fs.BoolVar(&flags.noUnevaluated, "no-unevaluated", false, "disable unevaluated keyword approximation")
	fs.BoolVar(&flags.webhooks, "webhooks", false, "structure webhooks (3.1 documents only)")
	fs.BoolVar(&flags.fallback30, "fallback-30", false, "treat a 3.1 document as 3.0")
	fs.StringVar(&flags.output, "o", "", "write the normalized document to a file instead of stdout")
	fs.StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	fs.BoolVar(&flags.verbose, "verbose", false, "log applied transforms to stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasnorm normalize [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Normalize an OpenAPI 3.0/3.1 document for Draft-07 era tooling.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasnorm normalize openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasnorm normalize -webhooks -o normalized.yaml openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasnorm normalize -format json -no-discriminator openapi.yaml\n")
	}

	return fs, flags
}

func handleNormalize(args []string) error {
	fs, flags := setupNormalizeFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("normalize command requires exactly one file path")
	}
	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("unsupported format %q (use yaml or json)", flags.format)
	}

	loaded, err := parser.LoadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	opts := normalizer.DefaultOptions()
	opts.StrictNullHandling = !flags.noNullTypes
	opts.EnableConstKeyword = !flags.noConst
	opts.EnablePrefixItems = !flags.noPrefixItems
	opts.EnableContainsKeyword = !flags.noContains
	opts.EnableConditionalSchemas = !flags.noConditionals
	opts.EnableEnhancedDiscriminator = !flags.noDiscriminator
	opts.EnableUnevaluatedProperties = !flags.noUnevaluated
	opts.EnableWebhooks = flags.webhooks
	opts.FallbackToOpenAPI30 = flags.fallback30

	normOpts := []normalizer.Option{normalizer.WithOptions(opts)}
	if flags.verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		normOpts = append(normOpts, normalizer.WithLogger(parser.NewSlogAdapter(slog.New(handler))))
	}

	result, err := normalizer.NormalizeDocument(loaded.Document, normOpts...)
	if err != nil {
		return err
	}

	data, err := renderResult(loaded.Document, result, flags.format)
	if err != nil {
		return fmt.Errorf("serializing normalized document: %w", err)
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, data, 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d schemas, changed=%t)\n",
			flags.output, len(result.Schemas), result.Changed)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

// renderResult assembles the normalized document from the per-schema
// results and serializes it in the requested format.
func renderResult(doc *parser.Document, result *normalizer.DocumentResult, format string) ([]byte, error) {
	out := map[string]any{
		"openapi": doc.OpenAPI,
	}
	if doc.Info != nil {
		out["info"] = doc.Info
	}
	if len(result.Schemas) > 0 {
		schemas := make(map[string]*parser.Schema, len(result.Schemas))
		for name, res := range result.Schemas {
			schemas[name] = res.Schema
		}
		out["components"] = map[string]any{"schemas": schemas}
	}
	if len(result.Webhooks) > 0 {
		out["webhooks"] = result.Webhooks
	}

	if format == "json" {
		return json.MarshalIndent(out, "", "  ")
	}
	return yaml.Marshal(out)
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
