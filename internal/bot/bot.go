// Package bot implements the interactive assistant: a blocking read-line loop
// that tokenizes each input line and routes it to a command handler.
package bot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/assistantbot/contactbook/internal/directory"
	"github.com/assistantbot/contactbook/internal/store"
	"github.com/icinga/icingadb/pkg/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Bot struct {
	directory *directory.Directory
	store     *store.Store
	logger    *logging.Logger
	prompt    string
	commands  map[string]command

	// now is replaced in tests to pin the upcoming-birthday window.
	now func() time.Time
}

// command couples a handler with the exact number of positional arguments it
// expects. Mismatches are reported to the user instead of reaching the
// handler.
type command struct {
	argc    int
	handler func(args []string) (string, error)
}

func New(d *directory.Directory, s *store.Store, logger *logging.Logger, prompt string) *Bot {
	b := &Bot{
		directory: d,
		store:     s,
		logger:    logger,
		prompt:    prompt,
		now:       time.Now,
	}
	b.commands = map[string]command{
		"add":           {argc: 2, handler: b.addContact},
		"change":        {argc: 3, handler: b.changeContact},
		"phone":         {argc: 1, handler: b.showPhone},
		"all":           {argc: 0, handler: b.showAll},
		"add-birthday":  {argc: 2, handler: b.addBirthday},
		"show-birthday": {argc: 1, handler: b.showBirthday},
		"birthdays":     {argc: 0, handler: b.upcomingBirthdays},
	}

	return b
}

// Run prints the banner and processes commands from in until an exit command,
// EOF, or cancellation of ctx. In every case the directory is snapshotted
// before returning.
func (b *Bot) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Hello! I am your assistant bot.")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, b.prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			b.logger.Info("Interrupted, saving the directory")
			return b.store.Save(b.directory)
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return b.store.Save(b.directory)
			}

			reply, quit := b.handle(line)
			if reply != "" {
				fmt.Fprintln(out, reply)
			}
			if quit {
				return b.store.Save(b.directory)
			}
		}
	}
}

// handle dispatches a single input line and returns the reply to print plus
// whether the loop should terminate. Errors from handlers never escape, they
// are rendered as a one-line reply.
func (b *Bot) handle(line string) (reply string, quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	b.logger.Debugw("Dispatching command", zap.String("command", name))

	switch name {
	case "close", "exit":
		return "Goodbye!", true
	case "hello":
		return "How can I help you?", false
	}

	cmd, ok := b.commands[name]
	if !ok {
		return "Unknown command. Try again.", false
	}

	if len(args) != cmd.argc {
		err := errors.Errorf("%s expects %d argument(s), got %d", name, cmd.argc, len(args))
		return "Error: " + err.Error(), false
	}

	result, err := cmd.handler(args)
	if err != nil {
		b.logger.Debugw("Command failed", zap.String("command", name), zap.Error(err))
		return "Error: " + err.Error(), false
	}

	return result, false
}
