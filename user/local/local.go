package local

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/drakos74/free-iris/internal/api"
	"github.com/drakos74/free-iris/user"
	"github.com/rs/zerolog/log"
)

const local = "local"

// User is a console channel, reading commands line by line and writing the replies.
type User struct {
	interpreter *user.Interpreter
	in          io.Reader
	out         io.Writer
}

// NewUser creates a new console channel.
func NewUser(interpreter *user.Interpreter, in io.Reader, out io.Writer) *User {
	return &User{
		interpreter: interpreter,
		in:          in,
		out:         out,
	}
}

// Run processes commands until the input is exhausted or the context is done.
func (u *User) Run(ctx context.Context) error {
	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(u.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	var id int
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					return err
				default:
					return nil
				}
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			id++
			var reply string
			if u.interpreter.Matches(text) {
				reply = u.interpreter.Execute(ctx, local, api.ParseCommand(id, local, text)).Text
			} else {
				reply = u.interpreter.Help()
			}
			if _, err := fmt.Fprintf(u.out, "%s\n\n", reply); err != nil {
				log.Error().Err(err).Msg("could not write reply")
				return err
			}
		}
	}
}
