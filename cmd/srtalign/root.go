package main

import (
	"github.com/spf13/cobra"
)

type alignFlags struct {
	configPath string

	srcLang string
	trgLang string

	cognateThreshold float64
	cognateRange     float64
	minMatchLength   int
	minTokenLength   int
	window           int
	dictionary       string
	upperCaseOnly    bool
	charSet          string
	wordFreq         bool

	bestAlign  bool
	candidates int
	maxMatches int
	fallback   string
	proportion bool
	verbose    bool

	noDictCache bool
}

func newRootCommand() *cobra.Command {
	flags := &alignFlags{}

	rootCmd := &cobra.Command{
		Use:           "srtalign [flags] <source> <target>",
		Short:         "Align two subtitle documents by temporal overlap",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlign(cmd, flags, args[0], args[1])
		},
	}

	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&flags.srcLang, "source-lang", "S", "", "Source language code")
	rootCmd.Flags().StringVarP(&flags.trgLang, "target-lang", "T", "", "Target language code")
	rootCmd.Flags().Float64VarP(&flags.cognateThreshold, "cognate-threshold", "c", 0, "Enable cognate anchors with this LCS ratio threshold")
	rootCmd.Flags().Float64VarP(&flags.cognateRange, "cognate-range", "r", 0, "Sweep the cognate threshold down to this floor in steps of 0.05 (with -b)")
	rootCmd.Flags().IntVarP(&flags.minMatchLength, "min-match-length", "l", 0, "Minimum identical-run length in characters")
	rootCmd.Flags().IntVarP(&flags.minTokenLength, "min-token-length", "i", 0, "Minimum token length considered for anchors")
	rootCmd.Flags().IntVarP(&flags.window, "window", "w", 0, "Sentences inspected at each document edge")
	rootCmd.Flags().StringVarP(&flags.dictionary, "dictionary", "d", "", "Bilingual dictionary file")
	rootCmd.Flags().BoolVarP(&flags.upperCaseOnly, "upper-case", "u", false, "Only anchor on upper-case tokens")
	rootCmd.Flags().StringVarP(&flags.charSet, "char-set", "s", "", "Regex a token must match to anchor")
	rootCmd.Flags().BoolVarP(&flags.wordFreq, "word-freq", "q", false, "Down-weight anchors by word frequency")
	rootCmd.Flags().BoolVarP(&flags.bestAlign, "best-align", "b", false, "Search anchor pairs for the best resynchronization")
	rootCmd.Flags().IntVarP(&flags.candidates, "candidates", "p", 0, "Anchor candidate cap (alias of --max-matches)")
	rootCmd.Flags().IntVarP(&flags.maxMatches, "max-matches", "m", 0, "Anchor pool cap per edge (0 = unbounded)")
	rootCmd.Flags().StringVarP(&flags.fallback, "fallback", "f", "", "Fallback aligner executable name")
	rootCmd.Flags().BoolVarP(&flags.proportion, "proportion", "P", false, "Score with the proportion flavor")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose diagnostics on standard error")
	rootCmd.Flags().BoolVar(&flags.noDictCache, "no-dict-cache", false, "Bypass the compiled dictionary cache")

	return rootCmd
}
