// Package gpt proxies chat mentions to an OpenAI-compatible completion
// endpoint, with owner-scoped role descriptions and short reply history.
package gpt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/peonbot/peon/internal/errs"
)

const (
	// ModelDefault is used when the config names no model.
	ModelDefault = openai.GPT3Dot5Turbo

	maxTokens          = 1000
	temperatureDefault = 0.3

	// historyLimit is how many previous exchanges are replayed for context.
	historyLimit = 3

	// roleMaxLen bounds custom role descriptions.
	roleMaxLen = 600
)

const rolePeon = `You are a helpful peon (orc, warcraft universe).
Slightly dumb and tired of life, but eager to assist on any matter and
not afraid to do any task that would be asked of you.
Implement some grammar errors to make it more believable.
Not a strict request, but try to keep answers shorter when possible,
because this chat will happen in messaging apps such as telegram.`

const roleAssistant = `You are a personal assistant eager to help with anything.
If possible, try to be concise because chat between you and the user
will happen in messaging apps such as telegram.`

// RolePresets are the built-in role descriptions selectable by name.
var RolePresets = map[string]string{
	"peon":      rolePeon,
	"assistant": roleAssistant,
}

const roleDefault = rolePeon

// ErrRateLimited signals an owner asking faster than the limiter allows.
var ErrRateLimited = errors.New("completion rate limit hit")

// RoleSetting is a persisted per-owner role description. The owner is the
// guild for public channels and the peer for direct chats.
type RoleSetting struct {
	OwnerID     string `gorm:"primaryKey"`
	Description string
	UpdatedAt   time.Time
}

type exchange struct {
	prompt string
	answer string
}

// Completer makes completion requests on behalf of chat owners.
type Completer struct {
	client      *openai.Client
	db          *gorm.DB
	logger      *slog.Logger
	model       string
	temperature float32

	mu        sync.Mutex
	histories map[string][]exchange
	limiters  map[string]*rate.Limiter
}

// New creates a completer and migrates the role-settings table.
func New(token, model string, db *gorm.DB, logger *slog.Logger) (*Completer, error) {
	if model == "" {
		model = ModelDefault
	}
	if db != nil {
		if err := db.AutoMigrate(&RoleSetting{}); err != nil {
			return nil, fmt.Errorf("migrating role settings: %w", err)
		}
	}
	return &Completer{
		client:      openai.NewClient(token),
		db:          db,
		logger:      logger,
		model:       model,
		temperature: temperatureDefault,
		histories:   make(map[string][]exchange),
		limiters:    make(map[string]*rate.Limiter),
	}, nil
}

// Complete sends prompt for the given owner, replaying the recent exchange
// history for context.
func (c *Completer) Complete(ctx context.Context, ownerID, prompt string) (string, error) {
	if !c.limiter(ownerID).Allow() {
		return "", ErrRateLimited
	}

	messages := []openai.ChatCompletionMessage{{
		Role:    openai.ChatMessageRoleSystem,
		Content: c.Role(ownerID),
	}}
	c.mu.Lock()
	for _, e := range c.histories[ownerID] {
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: e.prompt},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: e.answer},
		)
	}
	c.mu.Unlock()
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		c.logger.Error("completion request failed", "owner_id", ownerID, "error", err)
		return "", errs.Unavailablef("completion service failed")
	}
	if len(resp.Choices) == 0 {
		return "", errs.Unavailablef("completion service returned no choices")
	}
	answer := resp.Choices[0].Message.Content

	c.mu.Lock()
	h := append(c.histories[ownerID], exchange{prompt: prompt, answer: answer})
	if len(h) > historyLimit {
		h = h[len(h)-historyLimit:]
	}
	c.histories[ownerID] = h
	c.mu.Unlock()

	return answer, nil
}

// Role returns the owner's role description, falling back to the default.
func (c *Completer) Role(ownerID string) string {
	if c.db == nil {
		return roleDefault
	}
	var setting RoleSetting
	err := c.db.First(&setting, "owner_id = ?", ownerID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.logger.Warn("role lookup failed", "owner_id", ownerID, "error", err)
		}
		return roleDefault
	}
	return setting.Description
}

// SetRole stores a role description for the owner. Preset names resolve to
// their full descriptions.
func (c *Completer) SetRole(ownerID, description string) error {
	if preset, ok := RolePresets[strings.ToLower(strings.TrimSpace(description))]; ok {
		description = preset
	}
	if description == "" || len(description) > roleMaxLen {
		return errs.Malformedf("role description must be 1-%d characters long", roleMaxLen)
	}
	if c.db == nil {
		return errs.Unavailablef("role storage is not configured")
	}
	setting := RoleSetting{OwnerID: ownerID, Description: description, UpdatedAt: time.Now()}
	return c.db.Save(&setting).Error
}

// ResetRole removes the owner's custom role description.
func (c *Completer) ResetRole(ownerID string) error {
	if c.db == nil {
		return errs.Unavailablef("role storage is not configured")
	}
	return c.db.Delete(&RoleSetting{}, "owner_id = ?", ownerID).Error
}

// ClearHistory drops the owner's replay history.
func (c *Completer) ClearHistory(ownerID string) {
	c.mu.Lock()
	delete(c.histories, ownerID)
	c.mu.Unlock()
}

func (c *Completer) limiter(ownerID string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.limiters[ownerID]
	if !ok {
		// a short burst, then one request per few seconds
		l = rate.NewLimiter(rate.Every(5*time.Second), 3)
		c.limiters[ownerID] = l
	}
	return l
}

var senderRe = regexp.MustCompile(`^(\[\[(?P<user>[a-zA-Z]+)\]\(.*\)\]:\s)?(?P<message>.*)$`)

// SanitizePrompt rewrites a bridged-sender decoration into plain "NAME says:"
// form and replaces the bot mention with "you".
func SanitizePrompt(text, mention string) string {
	m := senderRe.FindStringSubmatch(text)
	result := text
	if m != nil {
		result = m[senderRe.SubexpIndex("message")]
		if user := m[senderRe.SubexpIndex("user")]; user != "" {
			result = fmt.Sprintf("%s says: %s", user, result)
		}
	}
	return strings.ReplaceAll(result, mention, "you")
}
