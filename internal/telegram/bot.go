// Package telegram adapts Telegram long-polling updates to the command
// router.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"

	"github.com/peonbot/peon/internal/command"
)

// failureReply marks a message the bot could not process. Telegram offers
// no reactions through this API surface, so the marker is a reply.
const failureReply = `¯\_(ツ)_/¯`

// Bot runs the Telegram side of the peon.
type Bot struct {
	bot       *gotgbot.Bot
	updater   *ext.Updater
	router    *command.Router
	allowlist map[int64]bool
	logger    *slog.Logger
}

// New creates the Telegram adapter. An empty allowlist admits everyone.
func New(token string, allowlist []int64, router *command.Router, logger *slog.Logger) (*Bot, error) {
	httpClient := http.Client{
		Timeout: 60 * time.Second,
	}

	bot, err := gotgbot.NewBot(token, &gotgbot.BotOpts{
		BotClient: &gotgbot.BaseBotClient{
			Client: httpClient,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}

	allowMap := make(map[int64]bool, len(allowlist))
	for _, id := range allowlist {
		allowMap[id] = true
	}

	return &Bot{
		bot:       bot,
		router:    router,
		allowlist: allowMap,
		logger:    logger,
	}, nil
}

// Mention returns the @username other users type to address the bot.
func (b *Bot) Mention() string {
	if b.bot.Username == "" {
		return ""
	}
	return "@" + b.bot.Username
}

// Start begins polling for updates and blocks until the context is
// cancelled.
func (b *Bot) Start(ctx context.Context) error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(bot *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			b.logger.Error("dispatcher error", "error", err)
			return ext.DispatcherActionNoop
		},
	})

	b.updater = ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewMessage(nil, b.handleMessage))

	err := b.updater.StartPolling(b.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout:        30,
			AllowedUpdates: []string{"message"},
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 60 * time.Second,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("starting polling: %w", err)
	}

	b.logger.Info("telegram bot started",
		"username", b.bot.Username,
		"allowlist_count", len(b.allowlist),
	)

	<-ctx.Done()

	b.updater.Stop()
	b.logger.Info("telegram bot stopped")

	return nil
}

func (b *Bot) handleMessage(bot *gotgbot.Bot, ectx *ext.Context) error {
	msg := ectx.EffectiveMessage
	if msg == nil || msg.Text == "" || msg.From == nil {
		return nil
	}
	if msg.From.IsBot {
		return nil
	}

	userID := msg.From.Id
	chatID := msg.Chat.Id

	if len(b.allowlist) > 0 && !b.allowlist[userID] {
		b.logger.Debug("ignoring message from non-allowed user",
			"user_id", userID,
			"chat_id", chatID,
			"username", msg.From.Username,
		)
		return nil
	}

	inbound := command.Message{
		Text:          msg.Text,
		Sender:        strconv.FormatInt(userID, 10),
		SenderMention: mentionFor(msg.From),
		ChannelID:     strconv.FormatInt(chatID, 10),
		Private:       msg.Chat.Type == "private",
	}

	rsp := &responder{bot: bot, msg: msg, logger: b.logger}
	if err := b.router.Dispatch(context.Background(), inbound, rsp); err != nil {
		b.logger.Error("dispatch failed",
			"chat_id", chatID,
			"user_id", userID,
			"error", err,
		)
	}
	return nil
}

func mentionFor(user *gotgbot.User) string {
	if user.Username != "" {
		return "@" + user.Username
	}
	return user.FirstName
}

// responder delivers one message's replies back to its chat.
type responder struct {
	bot    *gotgbot.Bot
	msg    *gotgbot.Message
	logger *slog.Logger
}

func (r *responder) Reply(ctx context.Context, text string) error {
	_, err := r.bot.SendMessage(r.msg.Chat.Id, text, nil)
	return err
}

func (r *responder) ReplyTo(ctx context.Context, text string) error {
	_, err := r.bot.SendMessage(r.msg.Chat.Id, text, &gotgbot.SendMessageOpts{
		ReplyParameters: &gotgbot.ReplyParameters{
			MessageId: r.msg.MessageId,
		},
	})
	return err
}

func (r *responder) MarkFailed(ctx context.Context) error {
	return r.ReplyTo(ctx, failureReply)
}

func (r *responder) Delete(ctx context.Context) error {
	_, err := r.bot.DeleteMessage(r.msg.Chat.Id, r.msg.MessageId, nil)
	return err
}
