package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/tablify/tablify/internal/analyzer"
	"github.com/tablify/tablify/internal/config"
	"github.com/tablify/tablify/internal/errors"
	"github.com/tablify/tablify/internal/exporter"
	"github.com/tablify/tablify/internal/formatter"
	"github.com/tablify/tablify/internal/log"
	"github.com/tablify/tablify/internal/models"
	"github.com/tablify/tablify/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Convert ConvertCmd `cmd:"" help:"Convert a data file to CSV, JSON or JSON Lines."`
	View    ViewCmd    `cmd:"" help:"Render a data file as a table in the terminal."`
	Info    InfoCmd    `cmd:"" help:"Summarize a data file's table shape."`

	Debug   bool             `help:"Enable debug logging." short:"d"`
	Config  string           `help:"Path to a config file." type:"path"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// ConvertCmd ingests a file and exports the normalized table.
type ConvertCmd struct {
	Input       string `arg:"" optional:"" help:"Path to the input file, or '-' for stdin."`
	URL         string `help:"Fetch the input from an HTTP(S) URL instead of a file."`
	Output      string `help:"Path to the output file. Writes to stdout when omitted." short:"o"`
	From        string `help:"Input format: csv, json, jsonl or parquet. Inferred from the path when omitted."`
	To          string `help:"Output format: csv, json or jsonl. Inferred from the output path, csv when nothing hints."`
	Pretty      *bool  `help:"Pretty-print exported JSON."`
	HeaderStyle string `help:"Restyle exported headers: original, snake, camel, kebab or screaming."`
}

// ViewCmd renders the normalized table with ASCII borders.
type ViewCmd struct {
	Input string `arg:"" optional:"" help:"Path to the input file, or '-' for stdin."`
	URL   string `help:"Fetch the input from an HTTP(S) URL instead of a file."`
	From  string `help:"Input format: csv, json, jsonl or parquet. Inferred from the path when omitted."`
	Limit int    `help:"Maximum rows to render, 0 renders all." short:"n" default:"-1"`
}

// InfoCmd prints a one-screen summary of the normalized table.
type InfoCmd struct {
	Input string `arg:"" optional:"" help:"Path to the input file, or '-' for stdin."`
	URL   string `help:"Fetch the input from an HTTP(S) URL instead of a file."`
	From  string `help:"Input format: csv, json, jsonl or parquet. Inferred from the path when omitted."`
}

// Context holds the runtime dependencies shared by all commands
type Context struct {
	Config *config.Config
	Logger log.Logger
	Fs     afero.Fs
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const Version = "0.1.0"

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("tablify"),
		kong.Description("A tool to convert JSON, CSV, JSONL and Parquet files into clean tables"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("tablify version %s", Version)},
	)

	ctx, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// kong.UsageOnError() has already shown the usage
		os.Exit(1)
	}

	cfg, err := config.LoadOrDiscover(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	logger := log.NewCLILogger(os.Stderr, CLI.Debug)
	runCtx := &Context{
		Config: cfg,
		Logger: logger,
		Fs:     afero.NewOsFs(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	err = ctx.Run(runCtx)
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", color.RedString(errors.UserFriendlyError(err)))
		fmt.Fprintf(os.Stderr, "\nFor help, run: tablify --help\n")
		os.Exit(1)
	}
}

// Run converts the input and writes it in the requested format.
func (c *ConvertCmd) Run(ctx *Context) error {
	cfg := *ctx.Config
	if c.Pretty != nil {
		cfg.Export.PrettyJSON = *c.Pretty
	}
	if c.HeaderStyle != "" {
		cfg.Export.HeaderStyle = c.HeaderStyle
		if err := cfg.Validate(); err != nil {
			return errors.NewInputError(err.Error(), nil)
		}
	}

	table, err := loadTable(ctx, c.Input, c.URL, c.From)
	if err != nil {
		return err
	}

	format, err := resolveExportFormat(c.To, c.Output)
	if err != nil {
		return err
	}

	exp := exporter.NewExporterWithConfig(ctx.Fs, &cfg, ctx.Logger)
	if c.Output == "" {
		content, err := exp.Render(table, format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(ctx.Stdout, content)
		return err
	}

	msg, err := exp.Export(table, c.Output, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Stderr, color.GreenString(msg))
	return nil
}

// Run renders the input as a bordered table.
func (c *ViewCmd) Run(ctx *Context) error {
	cfg := *ctx.Config
	if c.Limit >= 0 {
		cfg.View.MaxRows = c.Limit
	}

	table, err := loadTable(ctx, c.Input, c.URL, c.From)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(ctx.Stdout, formatter.NewFormatterWithConfig(&cfg).FormatTable(table))
	return err
}

// Run prints the table's shape without rendering its rows.
func (c *InfoCmd) Run(ctx *Context) error {
	table, err := loadTable(ctx, c.Input, c.URL, c.From)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(ctx.Stdout, formatter.NewFormatterWithConfig(ctx.Config).FormatInfo(table))
	return err
}

// loadTable reads the input from a file, a URL or stdin and normalizes
// it into a table.
func loadTable(ctx *Context, input, rawURL, from string) (*models.Table, error) {
	if rawURL != "" {
		if input != "" {
			return nil, errors.NewInputError("cannot specify both an input path and --url", nil)
		}
		data, name, err := fetchURL(rawURL)
		if err != nil {
			return nil, err
		}
		return tabulateData(ctx, data, name, from)
	}

	if input == "" || input == "-" {
		data, err := readStdin()
		if err != nil {
			return nil, err
		}
		return tabulateData(ctx, data, "", from)
	}

	format, err := resolveInputFormat(from, input)
	if err != nil {
		return nil, err
	}

	ctx.Logger.Debugf("reading %s as %s", input, format)
	switch format {
	case models.FileTypeCSV:
		return parser.ParseCSVFile(ctx.Fs, input)
	case models.FileTypeJSONL:
		return parser.ParseJSONLFile(ctx.Fs, input)
	case models.FileTypeParquet:
		return parser.ParseParquetFile(ctx.Fs, input)
	default:
		doc, err := parser.ParseJSONFile(ctx.Fs, input)
		if err != nil {
			return nil, err
		}
		table, err := analyzer.NewAnalyzerWithConfig(ctx.Config, ctx.Logger).Tabulate(doc)
		if err != nil {
			return nil, err
		}
		table.FileName = models.FileNameFromPath(input)
		return table, nil
	}
}

// tabulateData normalizes input that arrived as bytes, from stdin or a
// URL. name may be empty; the format then has to come from --from.
func tabulateData(ctx *Context, data []byte, name, from string) (*models.Table, error) {
	var format models.FileType
	var err error
	switch {
	case from != "":
		format, err = parseInputFormat(from)
	case name != "":
		format, err = parser.DetectFileType(name)
	default:
		err = errors.NewInputError("cannot determine the input format: please pass --from", errors.ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	ctx.Logger.Debugf("reading %d bytes as %s", len(data), format)
	switch format {
	case models.FileTypeCSV:
		return parser.ParseCSV(bytes.NewReader(parser.StripBOM(data)), name)
	case models.FileTypeJSONL:
		return parser.ParseJSONL(bytes.NewReader(parser.StripBOM(data)), name)
	case models.FileTypeParquet:
		return parser.ParseParquet(data, name)
	default:
		doc, err := parser.ParseJSON(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		table, err := analyzer.NewAnalyzerWithConfig(ctx.Config, ctx.Logger).Tabulate(doc)
		if err != nil {
			return nil, err
		}
		if name != "" {
			table.FileName = name
		}
		return table, nil
	}
}

// readStdin reads piped input. A terminal on stdin means nothing was
// piped at all.
func readStdin() ([]byte, error) {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return data, nil
}

// fetchURL downloads the input from an http(s) URL and returns the data
// plus a display name derived from the URL path.
func fetchURL(rawURL string) ([]byte, string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", errors.NewInputError(fmt.Sprintf("invalid URL scheme in '%s'", rawURL), err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, "", errors.NewInputError(
			fmt.Sprintf("invalid URL scheme '%s': only http and https are supported", parsed.Scheme),
			nil,
		)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(rawURL)
	if err != nil {
		return nil, "", errors.NewIOError(fmt.Sprintf("failed to fetch '%s'", rawURL), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.NewIOError(
			fmt.Sprintf("request to '%s' returned status %s", rawURL, resp.Status),
			nil,
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.NewIOError(fmt.Sprintf("failed to read response from '%s'", rawURL), err)
	}

	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		name = ""
	}
	return data, name, nil
}

// resolveInputFormat picks the input format from --from, falling back
// to the file extension.
func resolveInputFormat(from, input string) (models.FileType, error) {
	if from != "" {
		return parseInputFormat(from)
	}
	return parser.DetectFileType(input)
}

// resolveExportFormat picks the output format from --to, then the
// output extension, then defaults to CSV.
func resolveExportFormat(to, output string) (models.FileType, error) {
	if to != "" {
		return parseExportFormat(to)
	}
	if output != "" {
		return exporter.DetectExportFormat(output)
	}
	return models.FileTypeCSV, nil
}

func parseInputFormat(name string) (models.FileType, error) {
	switch strings.ToLower(name) {
	case "csv":
		return models.FileTypeCSV, nil
	case "json":
		return models.FileTypeJSON, nil
	case "jsonl", "ndjson":
		return models.FileTypeJSONL, nil
	case "parquet", "pq":
		return models.FileTypeParquet, nil
	default:
		return "", errors.NewInputError(fmt.Sprintf("unknown input format '%s'", name), errors.ErrUnknownFormat)
	}
}

func parseExportFormat(name string) (models.FileType, error) {
	switch strings.ToLower(name) {
	case "csv":
		return models.FileTypeCSV, nil
	case "json":
		return models.FileTypeJSON, nil
	case "jsonl", "ndjson":
		return models.FileTypeJSONL, nil
	case "parquet", "pq":
		return "", errors.NewInputError("exporting to Parquet is not supported", errors.ErrUnknownFormat)
	default:
		return "", errors.NewInputError(fmt.Sprintf("unknown output format '%s'", name), errors.ErrUnknownFormat)
	}
}
