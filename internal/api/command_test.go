package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand_Validate(t *testing.T) {

	type test struct {
		cmd           Command
		userValidator map[string]struct{}
		execValidator map[string]struct{}
		options       []Validator
		err           bool
	}

	var option string
	var number string

	tests := map[string]test{
		"no-user-any": {
			cmd:           ParseCommand(1, "", "iris health"),
			userValidator: Any(),
		},
		"wrong-user": {
			cmd:           ParseCommand(1, "test-user", "iris health"),
			userValidator: Contains("test"),
			err:           true,
		},
		"empty": {
			cmd: ParseCommand(1, "test-user", "iris"),
			err: true,
		},
		"correct-exec": {
			cmd:           ParseCommand(1, "test-user", "iris set sepal_length 5.1"),
			userValidator: Contains("test-user"),
			execValidator: Contains("set"),
			options:       []Validator{OneOf(&option, "sepal_length"), Float(&number)},
		},
		"unknown-exec": {
			cmd:           ParseCommand(1, "test-user", "iris plant 5.1"),
			execValidator: Contains("set"),
			err:           true,
		},
		"not-a-number": {
			cmd:           ParseCommand(1, "test-user", "iris set sepal_length long"),
			execValidator: Contains("set"),
			options:       []Validator{OneOf(nil, "sepal_length"), Float(nil)},
			err:           true,
		},
		"missing-argument": {
			cmd:           ParseCommand(1, "test-user", "iris set sepal_length"),
			execValidator: Contains("set"),
			options:       []Validator{NotEmpty, NotEmpty},
			err:           true,
		},
		"extra-spaces": {
			cmd:           ParseCommand(1, "test-user", "  iris   set  sepal_length   5.1 "),
			execValidator: Contains("set"),
			options:       []Validator{OneOf(nil, "sepal_length"), Float(nil)},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cmd.Validate(tt.userValidator, tt.execValidator, tt.options...)
			if tt.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, "sepal_length", option)
	assert.Equal(t, "5.1", number)
}

func TestMessage(t *testing.T) {
	msg := NewMessage("first").AddLine("").AddLine("second").ReplyTo(3)
	assert.Equal(t, "first\nsecond", msg.Text)
	assert.Equal(t, 3, msg.Reply)
	assert.False(t, msg.Failed)

	msg = ErrorMessage(errors.New("boom")).AddLine("help")
	assert.True(t, msg.Failed)
	assert.True(t, strings.HasSuffix(msg.Text, "boom\nhelp"))
}
