package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"pdf-chat/internal/api"
	"pdf-chat/internal/chat"
	"pdf-chat/internal/config"
	"pdf-chat/internal/logger"
	"pdf-chat/internal/terminal"
	"pdf-chat/internal/ui"
)

func main() {
	// Set the GetEnv function for config
	config.GetEnv = os.Getenv

	cfg, files := parseFlags()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	display := ui.NewTerminalView(ui.DefaultOptions(cfg.RenderMarkdown))

	var log logger.Logger
	fileLog, err := logger.NewFileLogger(cfg.LogFilePath, cfg.Verbose)
	if err != nil {
		display.PrintWarning(fmt.Sprintf("Logging disabled: %v", err))
		log = logger.NewNop()
	} else {
		log = fileLog
	}
	defer log.Sync()

	log.Info("main", "starting", map[string]interface{}{
		"api_base": cfg.APIBase,
		"timeout":  cfg.RequestTimeout.String(),
	})

	client := api.NewClient(cfg.APIBase, cfg.RequestTimeout, cfg.HealthTimeout, log)
	session := chat.New(client, display, log)

	// Setup graceful shutdown. A signal cancels the in-flight request and
	// waits for its command to unwind.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var commands commandGuard
	run := commands.Run

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("main", "signal received", map[string]interface{}{"signal": sig.String()})
		cancel()
		commands.Drain()
		display.PrintGoodbye()
		log.Sync()
		os.Exit(0)
	}()

	display.PrintWelcome(client.BaseURL())

	run(func() {
		// Backend health check (non-fatal)
		if err := client.HealthCheck(ctx); err != nil {
			display.PrintWarning(fmt.Sprintf("Backend check failed: %v", err))
			display.PrintInfo("Start the PDF service or point --api at it.")
		}

		if len(files) > 0 {
			upload(ctx, session, display, files)
		}
	})

	reader := terminal.NewReader(os.Stdin)
	for {
		display.PrintPrompt()
		line, err := reader.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error("main", "read input", map[string]interface{}{"error": err})
				display.PrintError(err)
			}
			break
		}

		cmd, err := terminal.ParseCommand(line)
		if err != nil {
			display.PrintError(err)
			continue
		}

		if cmd.Kind == terminal.KindExit {
			break
		}
		run(func() { dispatch(ctx, cmd, session, client, display) })
	}

	display.PrintGoodbye()
}

// commandGuard serializes commands so shutdown can wait for the running one
type commandGuard struct {
	mu sync.Mutex
}

// Run executes f while holding the guard
func (g *commandGuard) Run(f func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f()
}

// Drain blocks until no command is running and keeps later ones from
// starting. It is only called on the way out.
func (g *commandGuard) Drain() {
	g.mu.Lock()
}

// dispatch runs a single parsed command
func dispatch(ctx context.Context, cmd terminal.Command, session *chat.Chat, client *api.Client, display *ui.TerminalView) {
	switch cmd.Kind {
	case terminal.KindAsk:
		// Empty questions, missing sessions and remote failures are
		// already rendered by the chat.
		_ = session.Ask(ctx, cmd.Text)
	case terminal.KindUpload:
		upload(ctx, session, display, cmd.Args)
	case terminal.KindReset:
		_ = session.Reset(ctx)
	case terminal.KindStatus:
		display.PrintStatus(session.Status(ctx), client.BaseURL())
	case terminal.KindHistory:
		limit, err := terminal.HistoryLimit(cmd.Args)
		if err != nil {
			display.PrintError(err)
			return
		}
		if limit > 0 {
			display.PrintHistory(session.Transcript().Recent(limit))
		} else {
			display.PrintHistory(session.Transcript().Messages())
		}
	case terminal.KindClear:
		display.ClearScreen()
		display.PrintWelcome(client.BaseURL())
	case terminal.KindHelp:
		display.PrintHelp(terminal.Commands)
	case terminal.KindUnknown:
		display.PrintWarning(fmt.Sprintf("Unknown command %s. Type /help for the list.", cmd.Name))
	}
}

// upload expands the arguments to PDF paths and indexes them
func upload(ctx context.Context, session *chat.Chat, display *ui.TerminalView, args []string) {
	paths, err := terminal.ExpandPDFPaths(args)
	if err != nil {
		display.SetStatus("Error: " + err.Error())
		return
	}
	if err := session.Upload(ctx, paths); errors.Is(err, chat.ErrBusy) {
		display.PrintWarning("An upload is already in progress")
	}
}

// parseFlags layers .env, the environment and command-line flags over the
// defaults. Remaining arguments are files to upload at startup.
func parseFlags() (*config.Config, []string) {
	cfg := config.NewConfig()
	if err := cfg.LoadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.APIBase, "api", cfg.APIBase, "PDF service base URL")
	flag.StringVar(&cfg.LogFilePath, "log-file", cfg.LogFilePath, "Log file path")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug logging")

	timeoutSeconds := flag.Int("timeout", int(cfg.RequestTimeout/time.Second), "Request timeout in seconds (0 disables)")
	noMarkdown := flag.Bool("no-markdown", false, "Print answers as plain text")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file.pdf|dir|glob ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "timeout" {
			cfg.RequestTimeout = time.Duration(*timeoutSeconds) * time.Second
		}
	})
	if *noMarkdown {
		cfg.RenderMarkdown = false
	}

	return cfg, flag.Args()
}
