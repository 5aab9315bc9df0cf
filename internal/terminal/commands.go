package terminal

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a line of input asks for
type Kind int

const (
	KindAsk Kind = iota
	KindUpload
	KindReset
	KindStatus
	KindHistory
	KindClear
	KindHelp
	KindExit
	KindUnknown
)

// Command is a parsed line of input
type Command struct {
	Kind Kind
	Name string   // the slash command as typed, empty for questions
	Args []string // upload paths
	Text string   // the question for KindAsk
}

var commandKinds = map[string]Kind{
	"/upload":  KindUpload,
	"/reset":   KindReset,
	"/status":  KindStatus,
	"/history": KindHistory,
	"/clear":   KindClear,
	"/help":    KindHelp,
	"/exit":    KindExit,
	"/quit":    KindExit,
	"exit":     KindExit,
	"quit":     KindExit,
}

// Commands lists the slash commands with a short description, for help output
var Commands = [][2]string{
	{"/upload <file|dir|glob>...", "index PDFs and start a new session"},
	{"/reset", "clear the server-side history of this session"},
	{"/status", "show session, message counts and backend health"},
	{"/history [n]", "print the transcript again, or its last n entries"},
	{"/clear", "clear the screen (the transcript is kept)"},
	{"/help", "show this help"},
	{"/exit", "quit"},
}

// ParseCommand turns a line of input into a Command. Anything that is not
// a known command is a question.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		if kind, ok := commandKinds[line]; ok {
			return Command{Kind: kind, Name: line}, nil
		}
		return Command{Kind: KindAsk, Text: line}, nil
	}

	fields, err := SplitArgs(line)
	if err != nil {
		return Command{}, err
	}

	name := strings.ToLower(fields[0])
	kind, ok := commandKinds[name]
	if !ok {
		return Command{Kind: KindUnknown, Name: fields[0]}, nil
	}
	return Command{Kind: kind, Name: name, Args: fields[1:]}, nil
}

// HistoryLimit reads the optional entry count of /history. Zero means
// the whole transcript.
func HistoryLimit(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("/history expects a positive number, got %q", args[0])
	}
	return n, nil
}

// SplitArgs splits a line on whitespace, honouring single and double
// quotes so paths with spaces can be passed. A quote only opens at the
// start of an argument, so apostrophes inside words are kept.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case (r == '"' || r == '\'') && !inArg:
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
