// Package command routes inbound chat messages to prefix-triggered commands
// and mention handlers, independent of the messaging platform carrying them.
package command

import "context"

// Message is one inbound chat message, normalized by a platform adapter.
type Message struct {
	// Text is the raw message content.
	Text string
	// Sender identifies the author within the platform.
	Sender string
	// SenderMention is the platform's rendering of a mention of the author.
	SenderMention string
	// ChannelID identifies the conversation.
	ChannelID string
	// Private marks direct chats as opposed to guild/group channels.
	Private bool
}

// Request is what a handler receives: the message plus the argument text
// the router carved out for it.
type Request struct {
	Message Message
	// Arg is the text after the matched prefix for commands, and the
	// original undecorated text for mention handlers.
	Arg string
}

// Response is a handler's reply.
type Response struct {
	Text string
	// Mention asks the adapter to reference the triggering message.
	Mention bool
	// DeleteRequest asks the adapter to delete the triggering message.
	DeleteRequest bool
}

// Responder is the platform adapter's delivery surface for one message.
type Responder interface {
	// Reply sends text to the message's channel.
	Reply(ctx context.Context, text string) error
	// ReplyTo sends text referencing the triggering message.
	ReplyTo(ctx context.Context, text string) error
	// MarkFailed attaches a visible failure marker to the message.
	MarkFailed(ctx context.Context) error
	// Delete removes the triggering message where the platform allows it.
	Delete(ctx context.Context) error
}

// Command is a prefix-triggered handler. Prefix matching happens in
// registration order, so a command whose prefix extends another's must be
// registered first or it will be shadowed.
type Command interface {
	Prefix() string
	Execute(ctx context.Context, req Request) (*Response, error)
}

// MentionHandler is a fallback tried only when no command prefix matched.
type MentionHandler interface {
	// TryHandle inspects the message and reports whether it consumed it.
	TryHandle(ctx context.Context, req Request) (*Response, bool, error)
}

// Describer is implemented by commands that carry help metadata.
type Describer interface {
	Description() string
	Examples() []string
}

// Info provides prefix and help metadata through struct embedding.
type Info struct {
	Name string
	Help string
	Use  []string
}

func (i Info) Prefix() string {
	return i.Name
}

func (i Info) Description() string {
	return i.Help
}

func (i Info) Examples() []string {
	return i.Use
}
