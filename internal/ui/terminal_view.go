package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"golang.org/x/term"

	"pdf-chat/internal/chat"
)

const (
	defaultWidth  = 80
	spinnerPeriod = 80 * time.Millisecond
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Options configures a TerminalView
type Options struct {
	Out      io.Writer
	Markdown bool // render bot answers as markdown
	Color    bool
	Spinner  bool // animate while a request is in flight
	Width    int
}

// DefaultOptions detects whether stdout is a terminal and configures the
// view accordingly.
func DefaultOptions(markdown bool) Options {
	tty := IsTerminal(os.Stdout)
	return Options{
		Out:      os.Stdout,
		Markdown: markdown && tty,
		Color:    tty,
		Spinner:  tty,
		Width:    terminalWidth(os.Stdout),
	}
}

// TerminalView renders the chat transcript to a terminal. It implements
// chat.View. Terminal output scrolls on its own, so the newest entry is
// always the one in view.
type TerminalView struct {
	mu       sync.Mutex
	out      io.Writer
	width    int
	renderer *glamour.TermRenderer
	spinner  bool

	status        string
	uploadEnabled bool
	askEnabled    bool

	spinStop chan struct{}
	spinWG   sync.WaitGroup

	gray, cyan, green, yellow, red, blue, source *color.Color
}

var _ chat.View = (*TerminalView)(nil)

// NewTerminalView creates a terminal view
func NewTerminalView(opts Options) *TerminalView {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}

	v := &TerminalView{
		out:           opts.Out,
		width:         opts.Width,
		spinner:       opts.Spinner,
		uploadEnabled: true,
		askEnabled:    true,
		gray:          color.New(color.FgHiBlack),
		cyan:          color.New(color.FgCyan),
		green:         color.New(color.FgGreen, color.Bold),
		yellow:        color.New(color.FgYellow),
		red:           color.New(color.FgRed),
		blue:          color.New(color.FgBlue, color.Bold),
		source:        color.New(color.FgHiBlack, color.Italic),
	}

	if opts.Color {
		for _, c := range v.colors() {
			c.EnableColor()
		}
	} else {
		for _, c := range v.colors() {
			c.DisableColor()
		}
	}

	if opts.Markdown {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(opts.Width-10),
		)
		if err == nil {
			v.renderer = renderer
		}
	}

	return v
}

func (v *TerminalView) colors() []*color.Color {
	return []*color.Color{v.gray, v.cyan, v.green, v.yellow, v.red, v.blue, v.source}
}

// AppendMessage renders a user or bot entry
func (v *TerminalView) AppendMessage(msg chat.Message) {
	v.stopSpinner()

	v.mu.Lock()
	defer v.mu.Unlock()

	ts := msg.Timestamp.Format("15:04:05")
	if msg.Role == chat.RoleUser {
		fmt.Fprintf(v.out, "\n%s\n", v.gray.Sprintf("┌─ You · %s", ts))
		v.writeBlock(msg.Text)
	} else {
		fmt.Fprintf(v.out, "\n%s\n", v.blue.Sprintf("┌─ Assistant · %s", ts))
		v.writeBlock(v.render(msg.Text))
	}
	fmt.Fprintln(v.out, v.gray.Sprint("└"))
}

// AppendSources renders the citation block under the latest answer
func (v *TerminalView) AppendSources(msg chat.Message) {
	v.stopSpinner()

	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "  %s\n", v.source.Sprintf("📚 %s", msg.Text))
}

// SetStatus shows a status line and remembers it
func (v *TerminalView) SetStatus(text string) {
	v.stopSpinner()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = text
	switch {
	case strings.HasPrefix(text, "Error: "):
		fmt.Fprintln(v.out, v.red.Sprintf("✗ %s", text))
	case strings.HasPrefix(text, "Indexed"):
		fmt.Fprintln(v.out, v.green.Sprintf("✓ %s", text))
	default:
		fmt.Fprintln(v.out, v.cyan.Sprintf("ℹ %s", text))
	}
}

// SetUploadEnabled tracks the upload control; a spinner runs while disabled
func (v *TerminalView) SetUploadEnabled(enabled bool) {
	v.mu.Lock()
	v.uploadEnabled = enabled
	v.mu.Unlock()
	v.toggleSpinner(enabled, "Indexing")
}

// SetAskEnabled tracks the ask control; a spinner runs while disabled
func (v *TerminalView) SetAskEnabled(enabled bool) {
	v.mu.Lock()
	v.askEnabled = enabled
	v.mu.Unlock()
	v.toggleSpinner(enabled, "Thinking")
}

// Status returns the last status text
func (v *TerminalView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// UploadEnabled reports whether uploads are currently accepted
func (v *TerminalView) UploadEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.uploadEnabled
}

// AskEnabled reports whether questions are currently accepted
func (v *TerminalView) AskEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.askEnabled
}

// writeBlock prefixes every line of text with the gutter. Caller holds mu.
func (v *TerminalView) writeBlock(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(v.out, "%s %s\n", v.gray.Sprint("│"), line)
	}
}

// render formats markdown when a renderer is configured
func (v *TerminalView) render(text string) string {
	if v.renderer == nil {
		return text
	}
	rendered, err := v.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(rendered, "\n")
}

func (v *TerminalView) toggleSpinner(enabled bool, label string) {
	if enabled {
		v.stopSpinner()
		return
	}
	if v.spinner {
		v.startSpinner(label)
	}
}

func (v *TerminalView) startSpinner(label string) {
	v.stopSpinner()

	v.mu.Lock()
	stop := make(chan struct{})
	v.spinStop = stop
	v.mu.Unlock()

	v.spinWG.Add(1)
	go func() {
		defer v.spinWG.Done()
		ticker := time.NewTicker(spinnerPeriod)
		defer ticker.Stop()

		for i := 0; ; i = (i + 1) % len(spinnerFrames) {
			v.mu.Lock()
			fmt.Fprintf(v.out, "\r%s", v.cyan.Sprintf("%s %s...", spinnerFrames[i], label))
			v.mu.Unlock()

			select {
			case <-stop:
				v.mu.Lock()
				fmt.Fprint(v.out, "\r\033[2K")
				v.mu.Unlock()
				return
			case <-ticker.C:
			}
		}
	}()
}

func (v *TerminalView) stopSpinner() {
	v.mu.Lock()
	stop := v.spinStop
	v.spinStop = nil
	v.mu.Unlock()

	if stop != nil {
		close(stop)
		v.spinWG.Wait()
	}
}

// IsTerminal checks if f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
