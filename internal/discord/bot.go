// Package discord adapts Discord gateway events to the command router.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/peonbot/peon/internal/command"
)

const (
	// maxMessageLen is Discord's hard message size limit.
	maxMessageLen = 2000
	// failureEmoji marks a message the bot could not process.
	failureEmoji = "😫"
	// activity is the presence line shown under the bot's name.
	activity = "work-work"
)

// Bot runs the Discord side of the peon.
type Bot struct {
	session *discordgo.Session
	router  *command.Router
	logger  *slog.Logger
}

// New creates the Discord adapter.
func New(token string, router *command.Router, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		router:  router,
		logger:  logger,
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

// Mention returns the token other users type to address the bot.
func (b *Bot) Mention() string {
	if b.session.State == nil || b.session.State.User == nil {
		return ""
	}
	return b.session.State.User.Mention()
}

// Start opens the gateway connection and blocks until the context is
// cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	defer b.session.Close()

	b.logger.Info("discord bot started")
	<-ctx.Done()
	b.logger.Info("discord bot stopped")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	if err := s.UpdateGameStatus(0, activity); err != nil {
		b.logger.Warn("setting activity", "error", err)
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}
	if m.Content == "" {
		return
	}

	private := m.GuildID == ""
	inbound := command.Message{
		Text:          m.Content,
		Sender:        m.Author.ID,
		SenderMention: m.Author.Mention(),
		ChannelID:     m.ChannelID,
		Private:       private,
	}

	rsp := &responder{session: s, msg: m.Message}
	if err := b.router.Dispatch(context.Background(), inbound, rsp); err != nil {
		b.logger.Error("dispatch failed",
			"channel_id", m.ChannelID,
			"user_id", m.Author.ID,
			"error", err,
		)
	}
}

// responder delivers one message's replies back to its channel.
type responder struct {
	session *discordgo.Session
	msg     *discordgo.Message
}

// truncate cuts text to Discord's message limit, marking the cut.
func truncate(text string) string {
	if len(text) <= maxMessageLen {
		return text
	}
	cut := maxMessageLen - 3
	for cut > 0 && text[cut]&0xc0 == 0x80 {
		cut--
	}
	return text[:cut] + "..."
}

func (r *responder) Reply(ctx context.Context, text string) error {
	_, err := r.session.ChannelMessageSend(r.msg.ChannelID, truncate(text))
	return err
}

func (r *responder) ReplyTo(ctx context.Context, text string) error {
	_, err := r.session.ChannelMessageSendReply(r.msg.ChannelID, truncate(text), r.msg.Reference())
	return err
}

func (r *responder) MarkFailed(ctx context.Context) error {
	return r.session.MessageReactionAdd(r.msg.ChannelID, r.msg.ID, failureEmoji)
}

func (r *responder) Delete(ctx context.Context) error {
	return r.session.ChannelMessageDelete(r.msg.ChannelID, r.msg.ID)
}
