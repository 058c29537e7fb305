package cli

import (
	"io"
	"slices"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterCompletions(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := c.renderCommand()

	tests := []struct {
		flag string
		want string
	}{
		{"format", "parquet"},
		{"align", "center"},
		{"color-by", "time"},
		{"palette", "YlGnBu"},
		{"scheme", "Tableau10"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			fn, ok := cmd.GetFlagCompletionFunc(tt.flag)
			if !ok {
				t.Fatalf("no completion registered for --%s", tt.flag)
			}
			values, directive := fn(cmd, nil, "")
			if !slices.Contains(values, tt.want) {
				t.Errorf("--%s completions %v missing %q", tt.flag, values, tt.want)
			}
			if directive != cobra.ShellCompDirectiveNoFileComp {
				t.Errorf("--%s directive = %v, want NoFileComp", tt.flag, directive)
			}
		})
	}
}

func TestCompleteDataFiles(t *testing.T) {
	exts, directive := completeDataFiles(nil, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("directive = %v, want FilterFileExt", directive)
	}
	if !slices.Equal(exts, dataExtensions) {
		t.Errorf("extensions = %v, want %v", exts, dataExtensions)
	}

	if _, directive := completeDataFiles(nil, []string{"visits.csv"}, ""); directive != cobra.ShellCompDirectiveNoFileComp {
		t.Error("a second positional argument should not complete files")
	}
}
