package api

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is the definitions of metadata for a command.
type Command struct {
	ID      int
	User    string
	Content string
}

// ParseCommand creates a new command from the raw text of a message.
func ParseCommand(id int, user, content string) Command {
	return Command{
		ID:      id,
		User:    user,
		Content: strings.Join(strings.Fields(content), " "),
	}
}

// Args returns the words of the command.
func (c Command) Args() []string {
	return strings.Fields(c.Content)
}

// Validator is a validation function that checks the string for the given type.
type Validator func(string) error

// Validate validates the command with the given arguments.
// The first word is the prefix of the command, the second one the executable.
func (c Command) Validate(user map[string]struct{}, exe map[string]struct{}, args ...Validator) error {
	if _, ok := user[c.User]; !ok && len(user) > 0 {
		return fmt.Errorf("command cannot be executed: %s", c.User)
	}
	cmd := c.Args()
	if len(cmd) < 2 {
		return fmt.Errorf("cannot parse empty command: '%s'", c.Content)
	}
	exec := cmd[1]
	if _, ok := exe[exec]; !ok && len(exe) > 0 {
		return fmt.Errorf("unknown command: %s", exec)
	}

	options := cmd[2:]
	if len(options) < len(args) {
		return fmt.Errorf("expected %d arguments but got %d", len(args), len(options))
	}

	for i, arg := range args {
		err := arg(options[i])
		if err != nil {
			return fmt.Errorf("error for argument '%s' at %d: %w", options[i], i, err)
		}
	}
	return nil
}

// Any is a predefined validator for any value.
func Any() map[string]struct{} {
	return map[string]struct{}{}
}

// Contains is a predefined validator for the argument being one of the given values.
func Contains(arg ...string) map[string]struct{} {
	args := make(map[string]struct{})
	for _, a := range arg {
		args[a] = struct{}{}
	}
	return args
}

// NotEmpty is a predefined Validator that checks if the argument is empty.
func NotEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

// OneOf is a predefined Validator checking that the value is on of the provided arguments.
// it passes the reference to the value to the given interface argument.
func OneOf(v *string, args ...string) Validator {
	return func(s string) error {
		var isOneOf bool
		for _, arg := range args {
			if arg == s {
				isOneOf = true
			}
		}
		if !isOneOf {
			return fmt.Errorf("must be one of %v", args)
		}
		if v != nil {
			*v = s
		}
		return nil
	}
}

// Float is a predefined Validator checking that the argument is a number.
// it passes the raw value to the given string argument.
func Float(v *string) Validator {
	return func(s string) error {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("not a number")
		}
		if v != nil {
			*v = s
		}
		return nil
	}
}

// Raw is a predefined Validator accepting any argument.
// it passes the raw value to the given string argument.
func Raw(v *string) Validator {
	return func(s string) error {
		*v = s
		return nil
	}
}
