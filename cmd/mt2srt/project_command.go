package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subalign/internal/config"
	"subalign/internal/lengthalign"
	"subalign/internal/logging"
	"subalign/internal/subtitle"
)

func runProject(cmd *cobra.Command, flags *projectFlags, templatePath string) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("length-penalty") {
		cfg.Project.LengthLimitPenalty = flags.lengthPenalty
	}
	if cmd.Flags().Changed("not-eos-penalty") {
		cfg.Project.NotEosPenalty = flags.notEosPenalty
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if flags.outputFormat != "srt" {
		return fmt.Errorf("output format: unsupported value %q", flags.outputFormat)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	logger = logger.With(logging.String(logging.FieldCorrelationID, uuid.NewString()))

	frames, err := readTemplate(templatePath, flags.inputFormat, logger)
	if err != nil {
		return err
	}

	translation, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read translation: %w", err)
	}
	frags := lengthalign.FragmentText(string(translation),
		cfg.Project.HardMaxLineLength, cfg.Project.SoftMaxLineLength)

	logger.Debug("projection inputs",
		logging.Int("frames", len(frames)),
		logging.Int("fragments", len(frags)))

	entries, _, err := lengthalign.Project(frames, frags, lengthalign.Config{
		HardMaxLineLength:  cfg.Project.HardMaxLineLength,
		SoftMaxLineLength:  cfg.Project.SoftMaxLineLength,
		LengthLimitPenalty: cfg.Project.LengthLimitPenalty,
		NotEosPenalty:      cfg.Project.NotEosPenalty,
	})
	if err != nil {
		return err
	}

	return subtitle.WriteSRT(cmd.OutOrStdout(), entries)
}

func readTemplate(path, format string, logger *slog.Logger) ([]lengthalign.Frame, error) {
	var doc *subtitle.Document
	var err error
	switch format {
	case "srt":
		doc, err = subtitle.ReadSRT(path)
	case "xml":
		doc, err = subtitle.ReadXML(path)
	default:
		return nil, fmt.Errorf("input format: unsupported value %q", format)
	}
	if err != nil {
		return nil, err
	}
	doc.Interpolate(1, 0, logger)

	frames := make([]lengthalign.Frame, len(doc.Sentences))
	for i, s := range doc.Sentences {
		frames[i] = lengthalign.Frame{Start: s.Start, End: s.End, Length: s.TextLen()}
	}
	return frames, nil
}
