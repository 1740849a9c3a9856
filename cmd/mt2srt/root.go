package main

import (
	"github.com/spf13/cobra"
)

type projectFlags struct {
	configPath    string
	inputFormat   string
	outputFormat  string
	lengthPenalty float64
	notEosPenalty float64
}

func newRootCommand() *cobra.Command {
	flags := &projectFlags{}

	rootCmd := &cobra.Command{
		Use:           "mt2srt [flags] <template>",
		Short:         "Project a subtitle template's timing onto a translation",
		Long:          "mt2srt reads a translation text from standard input, aligns it against a time-stamped template by sentence length, and writes SRT to standard output.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd, flags, args[0])
		},
	}

	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&flags.inputFormat, "input-format", "i", "srt", "Template format: srt or xml")
	rootCmd.Flags().StringVarP(&flags.outputFormat, "output-format", "o", "srt", "Output format (srt)")
	rootCmd.Flags().Float64VarP(&flags.lengthPenalty, "length-penalty", "l", 0, "Penalty applied to target spans within the line limit")
	rootCmd.Flags().Float64VarP(&flags.notEosPenalty, "not-eos-penalty", "s", 0, "Penalty for frame boundaries off sentence ends")

	return rootCmd
}
