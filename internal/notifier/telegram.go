package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Houeta/lot-watch/internal/models"
	"gopkg.in/telebot.v4"
)

// telegramAPI is the slice of the bot API the notifier needs.
type telegramAPI interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Telegram sends new-vehicle alerts to a single Telegram chat.
type Telegram struct {
	log    *slog.Logger
	bot    telegramAPI
	chatID int64
}

func NewTelegram(log *slog.Logger, token string, chatID int64) (*Telegram, error) {
	bot, err := telebot.NewBot(telebot.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	return &Telegram{log: log, bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Notify(ctx context.Context, vehicle models.Vehicle) error {
	const opn = "notifier.Telegram.Notify"

	caption := formatVehicle(vehicle)

	var payload interface{} = caption
	if vehicle.ImageURL != "" {
		payload = &telebot.Photo{File: telebot.FromURL(vehicle.ImageURL), Caption: caption}
	}

	if _, err := t.bot.Send(telebot.ChatID(t.chatID), payload); err != nil {
		return fmt.Errorf("%s: failed to send message: %w", opn, err)
	}

	t.log.DebugContext(ctx, "Sent Telegram notification", "stock_number", vehicle.StockNumber)

	return nil
}

func formatVehicle(v models.Vehicle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New vehicle found!\n%s %s %s %s - %s\n", v.Year, v.Make, v.Model, v.Trim, v.StockNumber)

	details := []struct{ label, value string }{
		{"Price", v.Price},
		{"Mileage", v.Mileage},
		{"Engine", v.Engine},
		{"Transmission", v.Transmission},
		{"Exterior", v.ExteriorColor},
		{"Interior", v.InteriorColor},
	}
	for _, d := range details {
		if d.value != "" {
			fmt.Fprintf(&b, "%s: %s\n", d.label, d.value)
		}
	}

	if v.DetailURL != "" {
		b.WriteString(v.DetailURL)
	}

	return strings.TrimSpace(b.String())
}
