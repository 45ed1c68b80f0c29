package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clause-labs/retriva-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Launch an interactive chat grounded in the indexed documents.
Each question is answered from the closest chunks; recent turns are
folded back into the context.

Controls:
  Enter      - Ask
  ↑/↓        - Scroll the transcript
  Esc, Ctrl+C - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("chat requires an interactive terminal; use 'retriva query' instead")
	}

	// Panic recovery keeps the terminal usable with a stack trace
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	model := tui.New(cmd.Context(), answerService, activeNamespace())
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}

	return nil
}
