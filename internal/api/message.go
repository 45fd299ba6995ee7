package api

import (
	"fmt"
	"strings"

	"github.com/drakos74/free-iris/internal/emoji"
)

// Message is a reply to a chat command.
type Message struct {
	Text   string
	Reply  int
	Failed bool
}

// NewMessage creates a new reply with the given text.
func NewMessage(txt string) *Message {
	return &Message{Text: txt}
}

// ErrorMessage creates a reply reporting the failure of a command.
func ErrorMessage(err error) *Message {
	return &Message{
		Text:   fmt.Sprintf("%s %s", emoji.Error, err.Error()),
		Failed: true,
	}
}

// ReplyTo sets the id of the command message the reply refers to.
func (m *Message) ReplyTo(msgID int) *Message {
	m.Reply = msgID
	return m
}

// AddLine appends a line to the text, blank lines are skipped.
func (m *Message) AddLine(txt string) *Message {
	if strings.TrimSpace(txt) == "" {
		return m
	}
	if m.Text == "" {
		m.Text = txt
		return m
	}
	m.Text = m.Text + "\n" + txt
	return m
}
