package outputters

import (
	"fmt"
	"io"

	"github.com/dotcommander/pwmeter/internal/config"
	"github.com/dotcommander/pwmeter/internal/output"
	"github.com/dotcommander/pwmeter/internal/strength"
)

// Formatter renders a scored report
type Formatter interface {
	Format(report *output.Report) error
}

// FormatterFactory creates a Formatter for a format name
type FormatterFactory interface {
	CreateFormatter(format string) (Formatter, error)
}

// DefaultFormatterFactory builds the formatters in the output package from config
type DefaultFormatterFactory struct {
	cfg *config.Config
	w   io.Writer
}

// NewDefaultFormatterFactory creates a factory whose formatters write to w
func NewDefaultFormatterFactory(cfg *config.Config, w io.Writer) *DefaultFormatterFactory {
	return &DefaultFormatterFactory{cfg: cfg, w: w}
}

// CreateFormatter returns the formatter for console, json or markdown
func (f *DefaultFormatterFactory) CreateFormatter(format string) (Formatter, error) {
	switch format {
	case "console":
		return output.NewConsoleFormatter(f.w, f.cfg.Quiet, f.cfg.Verbose), nil
	case "json":
		return output.NewJSONFormatter(f.w, true, f.cfg.Output), nil
	case "markdown":
		return output.NewMarkdownFormatter(f.w, f.cfg.Verbose, f.cfg.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	config  *config.Config
	factory FormatterFactory
}

// NewOutputter creates an Outputter using the default formatters, writing to w
func NewOutputter(cfg *config.Config, w io.Writer) *Outputter {
	return NewOutputterWithFactory(cfg, NewDefaultFormatterFactory(cfg, w))
}

// NewOutputterWithFactory creates an Outputter with a custom factory
func NewOutputterWithFactory(cfg *config.Config, factory FormatterFactory) *Outputter {
	return &Outputter{
		config:  cfg,
		factory: factory,
	}
}

// Format formats the report using the named format
func (o *Outputter) Format(report *output.Report, format string) error {
	if report.Palette == (strength.Palette{}) {
		report.Palette = o.config.Palette
	}

	formatter, err := o.factory.CreateFormatter(format)
	if err != nil {
		return err
	}
	return formatter.Format(report)
}
