package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timespiral/pkg/color"
	"github.com/matzehuels/timespiral/pkg/layout"
	"github.com/matzehuels/timespiral/pkg/pipeline"
)

// outputFormats are offered for --format.
var outputFormats = []string{
	pipeline.FormatSVG,
	pipeline.FormatPNG,
	pipeline.FormatPDF,
	pipeline.FormatJSON,
	pipeline.FormatParquet,
}

// dataExtensions are the dataset file types offered for positional args.
var dataExtensions = []string{"csv", "tsv", "json", "parquet"}

// completionCommand creates the completion command for generating shell scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for timespiral.

Completions cover commands, flags, option values (palettes, schemes,
formats) and dataset files.

  $ source <(timespiral completion bash)
  $ timespiral completion zsh > "${fpath[1]}/_timespiral"
  $ timespiral completion fish > ~/.config/fish/completions/timespiral.fish
  PS> timespiral completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeDataFiles restricts positional completion to dataset and layout files.
func completeDataFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return dataExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// optionCompletions lists the fixed values of enum-like option flags.
func optionCompletions() map[string][]string {
	return map[string][]string{
		"align":         {pipeline.AlignBase, pipeline.AlignCenter},
		"bar-width":     {pipeline.BarWidthSkinny, pipeline.BarWidthWide},
		"color-by":      {color.ByValue, color.ByTime},
		"tick-interval": {layout.IntervalMonthly, layout.IntervalAuto},
		"palette":       color.Palettes(),
		"scheme":        color.Schemes(),
	}
}

// registerCompletions wires value completion for every option flag cmd has.
func registerCompletions(cmd *cobra.Command) {
	for name, values := range optionCompletions() {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(outputFormats, cobra.ShellCompDirectiveNoFileComp))
	}
	if cmd.Flags().Lookup("config") != nil {
		_ = cmd.MarkFlagFilename("config", "toml")
	}
}
