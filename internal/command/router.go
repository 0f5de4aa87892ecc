package command

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/peonbot/peon/internal/errs"
)

// commandSigns are the characters that may introduce a command. Exactly one
// leading sign is stripped before prefix matching.
const commandSigns = "!/@"

// senderLinkRe matches the "[[name](url)]: " decoration bridge services
// prepend when relaying another platform's messages.
var senderLinkRe = regexp.MustCompile(`^\[\[\w+\]\([\w:/\-.#!]+\)\]:\s`)

// Router dispatches one inbound message to at most one responder.
// Registration order is match priority order; the router itself keeps no
// per-message state.
type Router struct {
	logger   *slog.Logger
	commands []Command
	mentions []MentionHandler

	// CaseInsensitive matches prefixes regardless of case. Set before
	// the first dispatch.
	CaseInsensitive bool
}

// NewRouter creates an empty router.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{logger: logger}
}

// Register appends commands and mention handlers in priority order.
// Anything else, an empty prefix or a duplicate prefix is a configuration
// error and fails registration.
func (r *Router) Register(handlers ...any) error {
	for _, h := range handlers {
		switch v := h.(type) {
		case Command:
			if v.Prefix() == "" {
				return fmt.Errorf("command %T has an empty prefix", v)
			}
			for _, existing := range r.commands {
				if r.samePrefix(existing.Prefix(), v.Prefix()) {
					return fmt.Errorf("duplicate command prefix %q", v.Prefix())
				}
			}
			r.commands = append(r.commands, v)
		case MentionHandler:
			r.mentions = append(r.mentions, v)
		default:
			return fmt.Errorf("unsupported handler type %T", h)
		}
	}
	return nil
}

// Commands returns the registered commands in priority order.
func (r *Router) Commands() []Command {
	return r.commands
}

// Dispatch routes one message. Errors carrying a user-facing kind are
// reported as replies and swallowed; anything else marks the message failed
// and propagates for logging. A message matching nothing is a silent no-op.
func (r *Router) Dispatch(ctx context.Context, msg Message, rsp Responder) error {
	text := msg.Text
	if strings.HasPrefix(text, "[") {
		if decoration := senderLinkRe.FindString(text); decoration != "" {
			text = strings.TrimSpace(text[len(decoration):])
		}
	}
	if text != "" && strings.ContainsRune(commandSigns, rune(text[0])) {
		text = text[1:]
	}

	for _, cmd := range r.commands {
		arg, ok := r.match(text, cmd.Prefix())
		if !ok {
			continue
		}

		resp, err := cmd.Execute(ctx, Request{Message: msg, Arg: arg})
		if err != nil {
			return r.fail(ctx, cmd, err, msg, rsp)
		}
		return r.deliver(ctx, resp, rsp)
	}

	for _, mh := range r.mentions {
		resp, handled, err := mh.TryHandle(ctx, Request{Message: msg, Arg: msg.Text})
		if err != nil {
			if replyErr := rsp.MarkFailed(ctx); replyErr != nil {
				r.logger.Warn("marking message failed", "error", replyErr)
			}
			return err
		}
		if handled {
			return r.deliver(ctx, resp, rsp)
		}
	}
	return nil
}

// samePrefix folds case when the router matches case-insensitively, so two
// prefixes that would shadow each other cannot both register.
func (r *Router) samePrefix(a, b string) bool {
	if r.CaseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (r *Router) match(text, prefix string) (string, bool) {
	if r.CaseInsensitive {
		if !strings.HasPrefix(strings.ToLower(text), strings.ToLower(prefix)) {
			return "", false
		}
	} else if !strings.HasPrefix(text, prefix) {
		return "", false
	}
	arg := text[len(prefix):]
	// one separating space belongs to the syntax, the rest to the argument
	arg = strings.TrimPrefix(arg, " ")
	return arg, true
}

func (r *Router) deliver(ctx context.Context, resp *Response, rsp Responder) error {
	if resp == nil {
		return nil
	}
	if resp.Text != "" {
		var err error
		if resp.Mention {
			err = rsp.ReplyTo(ctx, resp.Text)
		} else {
			err = rsp.Reply(ctx, resp.Text)
		}
		if err != nil {
			return fmt.Errorf("sending reply: %w", err)
		}
	}
	if resp.DeleteRequest {
		if err := rsp.Delete(ctx); err != nil {
			r.logger.Warn("deleting triggering message", "error", err)
		}
	}
	return nil
}

// fail converts a handler error into user feedback. Kinded errors are the
// user's fault or an upstream outage and are reported as plain replies;
// everything else is a handler bug, marked on the message and re-raised.
func (r *Router) fail(ctx context.Context, cmd Command, err error, msg Message, rsp Responder) error {
	kind, ok := errs.KindOf(err)
	if !ok {
		if replyErr := rsp.MarkFailed(ctx); replyErr != nil {
			r.logger.Warn("marking message failed", "error", replyErr)
		}
		return fmt.Errorf("command %q: %w", cmd.Prefix(), err)
	}

	var reply string
	switch kind {
	case errs.Malformed, errs.OutOfRange:
		reply = err.Error()
		if d, ok := cmd.(Describer); ok && len(d.Examples()) > 0 {
			reply += "\ntry: " + d.Examples()[0]
		}
	case errs.Unavailable:
		reply = "unable to comply, try again later"
	default:
		reply = "something went wrong"
	}
	r.logger.Debug("command rejected",
		"command", cmd.Prefix(),
		"kind", string(kind),
		"error", err,
	)
	if replyErr := rsp.Reply(ctx, reply); replyErr != nil {
		return fmt.Errorf("sending rejection reply: %w", replyErr)
	}
	return nil
}
