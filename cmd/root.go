package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/frota/internal/config"
	"github.com/oakwood-commons/frota/internal/formatter"
	"github.com/oakwood-commons/frota/internal/limiter"
	"github.com/oakwood-commons/frota/pkg/logger"
	"github.com/oakwood-commons/frota/pkg/settings"
	"github.com/oakwood-commons/frota/pkg/tabview"
)

const defaultFallbackTermWidth = 120

var (
	rootCtx = context.Background()

	datasetName   string
	inputFormat   string
	selectExpr    string
	whereExpr     string
	columnsFlag   string
	renderFlags   []string
	titleFlag     string
	searchTerm    string
	sortKey       string
	sortDesc      bool
	limitRecords  int
	offsetRecords int
	tailRecords   int
	output        string
	exportFile    bool
	exportDir     string
	csvMode       string
	locale        string
	noSearch      bool
	noExport      bool
	interactive   bool
	noColor       bool
	debug         bool
	configFile    string
	widthFlag     int
	heightFlag    int
	snapshot      bool
)

var (
	stdinIsPiped  = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	stdoutIsPiped = func() bool { stat, _ := os.Stdout.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "frota - searchable, sortable tables for fleet records",
	Long: `frota shows tabular records as a searchable, sortable table and exports the
visible rows as CSV.

Records come from a JSON, NDJSON, YAML, TOML or CSV file, from stdin, or from
one of the built-in datasets (see 'frota datasets').`,
	Example: "\n  frota -d carros-alugados\n  frota -d pagamentos --search pendente --sort valor --desc\n" +
		"  frota fleet.yaml --select '_.frota.veiculos' --where 'row.ano >= 2022' -o csv\n" +
		"  cat rentals.json | frota -i\n",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := logger.LevelError
		if debug {
			level = logger.LevelDebug
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.CommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	lim := limiter.Config{Limit: limitRecords, Offset: offsetRecords, Tail: tailRecords}
	if err := lim.Validate(); err != nil {
		return fmt.Errorf("record limiting error: %w", err)
	}
	format, err := formatter.ParseFormat(output)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)

	run := newRunSettings(args, cfg)
	if run.Source.Label() == "empty" {
		return cmd.Help()
	}
	ctx := settings.IntoContext(rootCtx, run)
	lgr := logger.WithValues(logger.FromContext(ctx), logger.SourceKey, run.Source.Label())
	ctx = logger.WithLogger(ctx, lgr)

	src, err := loadSource(ctx, cmd.InOrStdin())
	if err != nil {
		return err
	}
	rows, err := filterRows(src.rows, whereExpr)
	if err != nil {
		return err
	}
	rows = limiter.Apply(lim, rows)
	lgr.V(1).Info("rows ready", logger.RowsKey, len(rows))

	view, err := buildView(src, rows, cfg)
	if err != nil {
		return err
	}
	applyTheme(cfg)

	if snapshot {
		return writeSnapshot(ctx, cmd.OutOrStdout(), view, cfg, widthFlag, heightFlag)
	}
	if run.Interactive {
		return runInteractive(ctx, view, cfg)
	}
	if exportFile {
		if err := exportView(cmd.ErrOrStderr(), view, run.ExportDir); err != nil {
			return err
		}
	}
	width := widthFlag
	if width <= 0 {
		width = cfg.Display.Width
	}
	if width <= 0 {
		width, _ = detectTerminalSize()
	}
	return writeView(cmd.OutOrStdout(), view, format, formatter.TableOptions{
		NoColor: run.NoColor || stdoutIsPiped(),
		Width:   width,
	})
}

func loadConfig() (config.Config, error) {
	path := config.ResolvePath(configFile)
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags over the merged config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		cfg.View.Title = titleFlag
	}
	if noSearch {
		off := false
		cfg.View.Searchable = &off
	}
	if noExport {
		off := false
		cfg.View.Exportable = &off
	}
	if flags.Changed("locale") {
		cfg.View.Locale = locale
	}
	if flags.Changed("csv-mode") {
		cfg.View.CSVMode = csvMode
	}
	if flags.Changed("export-dir") {
		cfg.View.ExportDir = exportDir
	}
	if noColor {
		on := true
		cfg.Display.NoColor = &on
	}
	if interactive {
		on := true
		cfg.Display.Interactive = &on
	}
	if widthFlag > 0 {
		cfg.Display.Width = widthFlag
	}
}

func newRunSettings(args []string, cfg config.Config) *settings.Run {
	run := settings.NewCliParams()
	if debug {
		run.MinLogLevel = logger.LevelDebug
	}
	switch {
	case datasetName != "":
		run.Source.Dataset = datasetName
	case len(args) == 1:
		run.Source.Path = args[0]
	case stdinIsPiped():
		run.Source.Stdin = true
	}
	run.Interactive = config.BoolValue(cfg.Display.Interactive, false)
	run.NoColor = config.BoolValue(cfg.Display.NoColor, false)
	if cfg.View.ExportDir != "" {
		run.ExportDir = cfg.View.ExportDir
	}
	return run
}

// buildView assembles the view: source columns, then configured columns,
// then --columns and --render, then the config view options and the
// initial search and sort.
func buildView(src source, rows []tabview.Row, cfg config.Config) (*tabview.View, error) {
	columns := src.columns
	cfgColumns, err := cfg.ColumnSpecs()
	if err != nil {
		return nil, err
	}
	if len(cfgColumns) > 0 {
		columns = cfgColumns
	}
	if columnsFlag != "" {
		if columns, err = pickColumns(columns, splitList(columnsFlag)); err != nil {
			return nil, err
		}
	}
	if columns, err = applyRenderers(columns, renderFlags); err != nil {
		return nil, err
	}
	if err := tabview.ValidateColumns(columns); err != nil {
		return nil, err
	}

	viewOpts, err := cfg.ViewOptions()
	if err != nil {
		return nil, err
	}
	opts := []tabview.Option{
		tabview.WithColumns(columns...),
		tabview.WithData(rows),
		tabview.WithTitle(src.title),
	}
	view := tabview.New(append(opts, viewOpts...)...)

	if searchTerm != "" {
		view.SetSearch(searchTerm)
	}
	if sortKey != "" {
		dir := tabview.Ascending
		if sortDesc {
			dir = tabview.Descending
		}
		if _, ok := view.Column(sortKey); !ok {
			return nil, fmt.Errorf("unknown sort column %q", sortKey)
		}
		if !view.SortBy(sortKey, dir) {
			return nil, fmt.Errorf("column %q is not sortable", sortKey)
		}
	}
	return view, nil
}

// pickColumns keeps the named columns in the given order. Keys absent from
// the schema become plain sortable columns labeled by key.
func pickColumns(columns []tabview.ColumnSpec, keys []string) ([]tabview.ColumnSpec, error) {
	if len(keys) == 0 {
		return nil, errors.New("--columns needs at least one key")
	}
	byKey := make(map[string]tabview.ColumnSpec, len(columns))
	for _, c := range columns {
		byKey[c.Key] = c
	}
	out := make([]tabview.ColumnSpec, 0, len(keys))
	for _, k := range keys {
		if c, ok := byKey[k]; ok {
			out = append(out, c)
			continue
		}
		out = append(out, tabview.ColumnSpec{Key: k, Label: k, Sortable: true})
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeView(w io.Writer, view *tabview.View, format formatter.Format, opts formatter.TableOptions) error {
	var out string
	switch format {
	case formatter.FormatTable:
		out = formatter.RenderTable(view.Render(), opts)
	case formatter.FormatCSV:
		if !view.Exportable() {
			return tabview.ErrExportDisabled
		}
		out = view.ExportCSV() + "\n"
	default:
		var err error
		out, err = formatter.FormatRecords(view.Columns(), view.Projection(), format)
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, out)
	return err
}

// exportView writes the CSV file for the visible rows into dir and reports
// the file name on w.
func exportView(w io.Writer, view *tabview.View, dir string) error {
	if err := view.Export(tabview.DirSink{Dir: dir}); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, err := fmt.Fprintf(w, "Exportado: %s\n", view.ExportFileName())
	return err
}

func init() { //nolint:gochecknoinits
	flags := rootCmd.Flags()
	flags.StringVarP(&datasetName, "dataset", "d", "", "show a built-in dataset (see 'frota datasets')")
	flags.StringVar(&inputFormat, "input-format", "", "input format: json|ndjson|yaml|toml|csv (default: detect)")
	flags.StringVar(&selectExpr, "select", "", "CEL expression picking the record list from the document, e.g. '_.frota.veiculos'")
	flags.StringVar(&whereExpr, "where", "", "CEL predicate over each record bound to 'row', e.g. 'row.valor > 800.0'")
	flags.StringVar(&columnsFlag, "columns", "", "comma-separated column keys to show, in order")
	flags.StringArrayVar(&renderFlags, "render", nil, "attach a cell renderer: key=currency|date|status|upper|payment-actions|details|raw")
	flags.StringVar(&titleFlag, "title", "", "table title; also names the export file")
	flags.StringVar(&searchTerm, "search", "", "initial search term (case-insensitive substring over all fields)")
	flags.StringVar(&sortKey, "sort", "", "sort by this column key")
	flags.BoolVar(&sortDesc, "desc", false, "sort descending (with --sort)")
	flags.IntVar(&limitRecords, "limit", 0, "limit total number of records")
	flags.IntVar(&offsetRecords, "offset", 0, "skip the first N records")
	flags.IntVar(&tailRecords, "tail", 0, "keep the last N records (mutually exclusive with --limit; ignores --offset)")
	flags.StringVarP(&output, "output", "o", "table", "output format: table|csv|json|yaml|toml")
	flags.BoolVar(&exportFile, "export", false, "write the visible rows to <title>.csv in the export directory")
	flags.StringVar(&exportDir, "export-dir", "", "directory for exported files (default from config or .)")
	flags.StringVar(&csvMode, "csv-mode", "", "CSV field handling: raw (no escaping) or rfc4180")
	flags.StringVar(&locale, "locale", "", "locale used for case-insensitive search (default pt-BR)")
	flags.BoolVar(&noSearch, "no-search", false, "disable the search filter")
	flags.BoolVar(&noExport, "no-export", false, "disable CSV export")
	flags.BoolVarP(&interactive, "interactive", "i", false, "start the interactive table")
	flags.BoolVar(&noColor, "no-color", false, "disable color output")
	flags.IntVar(&widthFlag, "width", 0, "output width in columns (default: terminal width)")
	flags.IntVar(&heightFlag, "height", 0, "snapshot height in rows (default: terminal height)")
	flags.BoolVar(&snapshot, "snapshot", false, "render a single frame of the interactive table and exit; honors --width/--height")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML or TOML config file")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd, datasetsCmd, kpisCmd, functionsCmd, configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
