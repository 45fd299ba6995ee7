package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/drakos74/free-iris/internal/api"
	"github.com/drakos74/free-iris/internal/form"
	"github.com/drakos74/free-iris/internal/model"
	"github.com/drakos74/free-iris/internal/view"
	"github.com/rs/zerolog/log"
)

const (
	healthCmd  = "health"
	exampleCmd = "example"
	clearCmd   = "clear"
	showCmd    = "show"
	setCmd     = "set"
	predictCmd = "predict"
	compareCmd = "compare"
	helpCmd    = "help"
)

// Interpreter executes text commands against the forms of a registry.
// Every conversation gets its own form.
type Interpreter struct {
	prefix   string
	registry *form.Registry
}

// NewInterpreter creates a new interpreter for commands starting with the given prefix.
func NewInterpreter(prefix string, registry *form.Registry) *Interpreter {
	return &Interpreter{
		prefix:   prefix,
		registry: registry,
	}
}

// Matches reports whether the text is addressed to the interpreter.
func (i *Interpreter) Matches(text string) bool {
	args := strings.Fields(text)
	return len(args) > 0 && args[0] == i.prefix
}

// Help lists the available commands.
func (i *Interpreter) Help() string {
	return strings.Join([]string{
		fmt.Sprintf("%s %s", i.prefix, healthCmd),
		fmt.Sprintf("%s %s", i.prefix, exampleCmd),
		fmt.Sprintf("%s %s", i.prefix, clearCmd),
		fmt.Sprintf("%s %s", i.prefix, showCmd),
		fmt.Sprintf("%s %s <field> <value>", i.prefix, setCmd),
		fmt.Sprintf("%s %s [sepal_length sepal_width petal_length petal_width]", i.prefix, predictCmd),
		fmt.Sprintf("%s %s [sepal_length sepal_width petal_length petal_width]", i.prefix, compareCmd),
	}, "\n")
}

// Execute runs the command on the form of the given session and returns the reply.
func (i *Interpreter) Execute(ctx context.Context, session string, cmd api.Command) *api.Message {
	err := cmd.Validate(api.Any(), api.Contains(healthCmd, exampleCmd, clearCmd, showCmd, setCmd, predictCmd, compareCmd, helpCmd))
	if err != nil {
		return api.ErrorMessage(err).AddLine(i.Help()).ReplyTo(cmd.ID)
	}

	c := i.registry.Get(ctx, session)
	args := cmd.Args()
	exec := args[1]
	log.Info().
		Str("session", session).
		Str("user", cmd.User).
		Str("command", exec).
		Msg("executing command")

	switch exec {
	case helpCmd:
		return api.NewMessage(i.Help()).ReplyTo(cmd.ID)
	case healthCmd:
		c.CheckHealth(ctx)
	case exampleCmd:
		c.LoadExample()
	case clearCmd:
		c.Clear()
	case showCmd:
	case setCmd:
		var field, value string
		if err := cmd.Validate(api.Any(), api.Any(), api.OneOf(&field, fields()...), api.Raw(&value)); err != nil {
			return i.fail(cmd, err)
		}
		if err := c.Update(model.Field(field), value); err != nil {
			return i.fail(cmd, err)
		}
	case predictCmd, compareCmd:
		if len(args) > 2 {
			if err := setAll(cmd, c); err != nil {
				return i.fail(cmd, err)
			}
		}
		var err error
		if exec == predictCmd {
			err = c.Submit(ctx)
		} else {
			err = c.Compare(ctx)
		}
		if errors.Is(err, form.ErrInFlight) || errors.Is(err, form.ErrClosed) {
			return i.fail(cmd, err)
		}
	}
	return api.NewMessage(view.Text(c.State())).ReplyTo(cmd.ID)
}

func (i *Interpreter) fail(cmd api.Command, err error) *api.Message {
	return api.ErrorMessage(err).ReplyTo(cmd.ID)
}

// setAll stores the four measurements given inline with the command.
func setAll(cmd api.Command, c *form.Controller) error {
	values := make([]string, len(model.Fields))
	validators := make([]api.Validator, len(model.Fields))
	for j := range model.Fields {
		validators[j] = api.Float(&values[j])
	}
	if err := cmd.Validate(api.Any(), api.Any(), validators...); err != nil {
		return err
	}
	for j, field := range model.Fields {
		if err := c.Update(field, values[j]); err != nil {
			return err
		}
	}
	return nil
}

func fields() []string {
	ff := make([]string, len(model.Fields))
	for i, f := range model.Fields {
		ff[i] = string(f)
	}
	return ff
}
