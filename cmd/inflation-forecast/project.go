package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/inflation-forecast/internal/form"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/iwvelando/inflation-forecast/pkg/output"
	"github.com/iwvelando/inflation-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type projectCmd struct {
	root         *rootOptions
	raw          form.Raw
	outputFormat string
	currency     string
	theme        string
	outputPath   string
	now          func() time.Time
}

func newProjectCmd(root *rootOptions) *cobra.Command {
	pc := &projectCmd{root: root, now: time.Now}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the year-by-year income projection",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}

	// Numeric inputs are taken as text and parsed exactly like web form input.
	cmd.Flags().StringVar(&pc.raw.StartYear, "start-year", "", "first year of the projection (default: current year)")
	cmd.Flags().StringVar(&pc.raw.EndYear, "end-year", "", "last year of the projection (default: start year + 10)")
	cmd.Flags().StringVar(&pc.raw.InflationRate, "inflation-rate", "", "annual inflation rate in percent (default 2.5)")
	cmd.Flags().StringVar(&pc.raw.MonthlyIncome, "monthly-income", "", "current monthly income (default 5000)")
	cmd.Flags().StringVarP(&pc.outputFormat, "output-format", "f", "",
		"output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" (aliases: "+strings.Join(output.AvailableFormatAliases(), ", ")+")")
	cmd.Flags().StringVar(&pc.currency, "currency", "", "currency label for amounts")
	cmd.Flags().StringVar(&pc.theme, "theme", "", "html colour theme: dark, light")
	cmd.Flags().StringVarP(&pc.outputPath, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func (pc *projectCmd) run(cmd *cobra.Command, _ []string) error {
	conf, err := pc.root.loadConfiguration()
	if err != nil {
		return err
	}
	logger, err := pc.root.newLogger(conf.Logging, conf)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI flags take precedence over the configuration file.
	formatName := conf.Output.Format
	if pc.outputFormat != "" {
		formatName = pc.outputFormat
	}
	if formatName == "" {
		formatName = constants.OutputFormatPretty
	}
	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		return validation.ValidateOutputFormat(output.NormalizeFormatName(formatName))
	}

	currency := conf.Currency
	if pc.currency != "" {
		currency = strings.TrimSpace(pc.currency)
	}

	theme := conf.Output.Theme
	if pc.theme != "" {
		theme = strings.ToLower(strings.TrimSpace(pc.theme))
	}
	if theme == "" {
		theme = constants.ThemeDark
	}
	if err := validation.ValidateTheme(theme); err != nil {
		return err
	}

	res, err := form.Parse(pc.raw, conf.Defaults(pc.now()))
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	for _, warning := range res.Warnings {
		logger.Warn("Input warning: "+warning,
			zap.String("op", "main.project"),
		)
	}

	report := output.NewReport(res.Input, currency, theme, res.Warnings)
	logger.Debug("projection computed",
		zap.String("op", "main.project"),
		zap.Int("years", len(report.Records)),
		zap.String("format", formatter.Name()),
	)

	write := func(w io.Writer) error {
		if err := formatter.Format(w, report); err != nil {
			return fmt.Errorf("failed to write %s output: %w", formatter.Name(), err)
		}
		return nil
	}
	if pc.outputPath == "" {
		return write(cmd.OutOrStdout())
	}
	return writeOutputFile(pc.outputPath, write)
}

// createOutputFile opens the --output target.
var createOutputFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeOutputFile hands the created file to write. A failed Close is returned
// when write itself succeeded.
func writeOutputFile(path string, write func(io.Writer) error) (err error) {
	f, err := createOutputFile(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()
	return write(f)
}
