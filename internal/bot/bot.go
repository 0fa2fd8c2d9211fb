package bot

import (
	"fmt"
	"log"
	"strings"
	"time"

	"mission-board/internal/board"
	"mission-board/internal/i18n"
	"mission-board/internal/store"

	tele "gopkg.in/telebot.v3"
)

// Bot sends mission-board events to users over Telegram. It implements
// board.Notifier; delivery is best-effort and never blocks the engine.
type Bot struct {
	bot        *tele.Bot
	store      *store.Store
	translator *i18n.Translator
}

// NewBot creates a new Bot instance
func NewBot(token string, st *store.Store, translator *i18n.Translator) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		store:      st,
		translator: translator,
	}

	bot.setupHandlers()
	return bot, nil
}

// Start starts the bot polling
func (b *Bot) Start() {
	log.Println("Telegram bot is now running...")
	b.bot.Start()
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	b.bot.Stop()
}

func (b *Bot) lang(c tele.Context) string {
	if c != nil && c.Sender() != nil && strings.HasPrefix(strings.ToLower(c.Sender().LanguageCode), "ru") {
		return "ru"
	}
	return "en"
}

func (b *Bot) t(lang, key string) string {
	if b.translator == nil {
		return key
	}
	return b.translator.T(lang, key)
}

func (b *Bot) setupHandlers() {
	// /start <username> links this chat to a board account.
	b.bot.Handle("/start", func(c tele.Context) error {
		lang := b.lang(c)
		args := c.Args()
		if len(args) == 0 {
			return c.Send(b.t(lang, "bot.start.usage"))
		}

		user, err := b.store.GetUserByUsername(args[0])
		if err != nil {
			return c.Send(b.t(lang, "bot.start.unknown_user"))
		}
		if err := b.store.SetUserTelegramID(user.ID, c.Sender().ID); err != nil {
			log.Printf("failed to link telegram id for user %d: %v", user.ID, err)
			return c.Send(b.t(lang, "bot.start.failed"))
		}
		return c.Send(fmt.Sprintf(b.t(lang, "bot.start.linked"), user.Username))
	})
}

// sendToUser resolves the user's Telegram chat and sends msg. Users
// without a linked chat are silently skipped.
func (b *Bot) sendToUser(userID int64, msg string) {
	user, err := b.store.GetUserByID(userID)
	if err != nil || user.TelegramID == nil {
		return
	}
	if _, err := b.bot.Send(&tele.Chat{ID: *user.TelegramID}, msg); err != nil {
		log.Printf("failed to send telegram message to user %d: %v", userID, err)
	}
}

// MissionCompleted implements board.Notifier
func (b *Bot) MissionCompleted(userID int64, slot board.Slot, title string) {
	b.sendToUser(userID, fmt.Sprintf(b.t("en", "bot.mission.completed"), title))
}

// BossPhase2Ready implements board.Notifier
func (b *Bot) BossPhase2Ready(userID int64) {
	b.sendToUser(userID, b.t("en", "bot.boss.ready"))
}
