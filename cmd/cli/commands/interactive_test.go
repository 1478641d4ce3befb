package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRoot(calls *[]string) *cobra.Command {
	root := &cobra.Command{Use: "cli"}

	echo := &cobra.Command{
		Use:   "echo <word>",
		Short: "Record a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upper, _ := cmd.Flags().GetBool("upper")
			word := args[0]
			if upper {
				word = strings.ToUpper(word)
			}
			*calls = append(*calls, word)
			return nil
		},
	}
	echo.Flags().Bool("upper", false, "Uppercase the word")

	root.AddCommand(echo)
	root.AddCommand(&cobra.Command{Use: "interactive", Short: "Session", RunE: func(*cobra.Command, []string) error { return nil }})
	return root
}

func TestRunSession(t *testing.T) {
	var calls []string
	root := newSessionRoot(&calls)

	in := strings.NewReader("echo one\necho --upper two\necho three\nbogus\necho\nexit\necho never\n")
	var out bytes.Buffer

	require.NoError(t, runSession(root, in, &out))

	// Flags are reset between runs
	assert.Equal(t, []string{"one", "TWO", "three"}, calls)
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.Contains(t, out.String(), "accepts 1 arg(s)")
	assert.Contains(t, out.String(), "Goodbye")
}

func TestSessionCommands_ExcludesInteractive(t *testing.T) {
	var calls []string
	commands := sessionCommands(newSessionRoot(&calls))

	assert.Contains(t, commands, "echo")
	assert.NotContains(t, commands, "interactive")
}

func TestPrintInteractiveHelp(t *testing.T) {
	var calls []string
	var out bytes.Buffer
	printInteractiveHelp(&out, sessionCommands(newSessionRoot(&calls)))

	assert.Contains(t, out.String(), "echo <word>")
	assert.Contains(t, out.String(), "exit, quit")
}
