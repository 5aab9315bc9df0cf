package ui

import (
	"fmt"
	"strings"

	"pdf-chat/internal/chat"
)

// ClearScreen clears the terminal
func (v *TerminalView) ClearScreen() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprint(v.out, "\033[2J\033[H")
}

// PrintWelcome displays the banner
func (v *TerminalView) PrintWelcome(backendURL string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	bar := strings.Repeat("═", 44)
	fmt.Fprintln(v.out, v.cyan.Sprintf("╔%s╗", bar))
	fmt.Fprintln(v.out, v.cyan.Sprintf("║%-44s║", "   pdf-chat · ask questions about your PDFs"))
	fmt.Fprintln(v.out, v.cyan.Sprintf("╚%s╝", bar))
	fmt.Fprintf(v.out, "\n%s %s\n", v.gray.Sprint("Backend:"), backendURL)
	fmt.Fprintf(v.out, "%s\n\n", v.gray.Sprint("Start with /upload <file.pdf>, then type a question. /help lists commands."))
}

// PrintHelp lists the available commands
func (v *TerminalView) PrintHelp(commands [][2]string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintln(v.out, v.cyan.Sprint("Commands:"))
	for _, c := range commands {
		fmt.Fprintf(v.out, "  %-28s %s\n", c[0], v.gray.Sprint(c[1]))
	}
	fmt.Fprintln(v.out, v.gray.Sprint("Anything else is sent as a question."))
}

// PrintStatus shows the session indicator, transcript metrics and backend health
func (v *TerminalView) PrintStatus(report chat.StatusReport, backendURL string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.separator()
	if report.Active {
		fmt.Fprintln(v.out, v.green.Sprint("✓ Documents processed"))
		fmt.Fprintf(v.out, "  Session ID: %s...\n", report.ShortSessionID())
		fmt.Fprintf(v.out, "  Started: %s\n", report.StartedAt.Format("15:04:05"))
	} else {
		fmt.Fprintln(v.out, v.yellow.Sprint("⏳ No documents"))
		fmt.Fprintln(v.out, "  Upload PDFs to begin")
	}

	fmt.Fprintf(v.out, "  Messages: %d · Questions: %d · Responses: %d\n",
		report.Stats.Total, report.Stats.Questions, report.Stats.Responses)

	if report.HealthErr != nil {
		fmt.Fprintln(v.out, v.red.Sprintf("✗ Backend unreachable (%s): %v", backendURL, report.HealthErr))
	} else {
		fmt.Fprintln(v.out, v.green.Sprintf("✓ Backend connected (%s)", backendURL))
	}
	v.separator()
}

// PrintHistory prints the whole transcript again
func (v *TerminalView) PrintHistory(messages []chat.Message) {
	if len(messages) == 0 {
		v.PrintInfo("No conversation history yet")
		return
	}

	v.mu.Lock()
	v.separator()
	fmt.Fprintln(v.out, "Conversation history")
	v.separator()
	v.mu.Unlock()

	for _, msg := range messages {
		if msg.Role == chat.RoleSource {
			v.AppendSources(msg)
			continue
		}
		v.AppendMessage(msg)
	}

	v.mu.Lock()
	v.separator()
	v.mu.Unlock()
}

// PrintPrompt displays the input prompt
func (v *TerminalView) PrintPrompt() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "\n%s ", v.green.Sprint("❯"))
}

// PrintInfo displays an info message
func (v *TerminalView) PrintInfo(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, v.cyan.Sprintf("ℹ %s", msg))
}

// PrintWarning displays a warning message
func (v *TerminalView) PrintWarning(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, v.yellow.Sprintf("⚠ %s", msg))
}

// PrintError displays an error message
func (v *TerminalView) PrintError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, v.red.Sprintf("✗ Error: %v", err))
}

// PrintGoodbye displays the goodbye message
func (v *TerminalView) PrintGoodbye() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "\n%s\n", v.cyan.Sprint("Goodbye! 👋"))
}

// separator prints a rule. Caller holds mu.
func (v *TerminalView) separator() {
	fmt.Fprintln(v.out, v.gray.Sprint(strings.Repeat("─", min(v.width, 80))))
}
