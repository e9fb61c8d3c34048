package notify

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier — fire-and-forget доставка готового текста.
// Ошибки транспорта только логируются и никогда не возвращаются вызывающему.
type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// BalanceSource отдаёт срез счёта для команды /balance.
type BalanceSource interface {
	Snapshot() models.AccountSnapshot
}

const pollTimeoutSec = 30

// Telegram — пассивный нотифайер + обработка команд /balance и /start.
type Telegram struct {
	bot    *tgbot.BotAPI
	poller *tgbot.BotAPI
	chatID int64

	balances BalanceSource

	// mu упорядочивает inflight.Add в Send и выставление stopped в Stop,
	// чтобы Add не шёл параллельно с Wait после остановки.
	mu       sync.Mutex
	stopped  bool
	inflight sync.WaitGroup
	stopOnce sync.Once
}

func NewTelegram(token string, chatID int64, timeout time.Duration, balances BalanceSource) (*Telegram, error) {
	return NewTelegramWithEndpoint(token, chatID, timeout, tgbot.APIEndpoint, balances)
}

// NewTelegramWithEndpoint — то же, но с явным endpoint вида "https://host/bot%s/%s".
// timeout ограничивает каждый запрос отправки.
func NewTelegramWithEndpoint(token string, chatID int64, timeout time.Duration, endpoint string, balances BalanceSource) (*Telegram, error) {
	b, err := tgbot.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}

	// long-polling держит соединение pollTimeoutSec, ему нужен свой клиент без короткого таймаута
	poller := *b
	poller.Client = &http.Client{Timeout: (pollTimeoutSec + 10) * time.Second}

	return &Telegram{
		bot:      b,
		poller:   &poller,
		chatID:   chatID,
		balances: balances,
	}, nil
}

// Send отправляет сообщение в фоне. Ошибка (сеть/таймаут/авторизация) только логируется.
func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		logger.Warn("[TG] notifier stopped, message dropped")
		return
	}
	t.inflight.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.inflight.Done()
		if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
			logger.Error("[TG] send failed: %v", err)
		}
	}()
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// Flush ждёт отправки всех сообщений в полёте или отмены ctx.
func (t *Telegram) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// /balance — текущий баланс и доля риска
func (t *Telegram) handleBalance() {
	if t.balances == nil {
		t.Send("❗️ Счёт не инициализирован")
		return
	}
	t.Send(FormatStatus(t.balances.Snapshot()))
}

func (t *Telegram) handleUpdate(upd tgbot.Update) {
	if upd.Message == nil || upd.Message.Chat == nil ||
		upd.Message.Chat.ID != t.chatID || !upd.Message.IsCommand() {
		return
	}

	switch upd.Message.Command() {
	case "balance":
		t.handleBalance()
	case "start":
		t.Send(HomeText)
	}
}

// Start: long-polling для команд из своего чата.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.poller == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = pollTimeoutSec
	u.AllowedUpdates = []string{"message"}

	updates := t.poller.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				t.handleUpdate(upd)
			}
		}
	}()
	return nil
}

// Stop: новые Send после него отбрасываются, уже отправленные дожидаемся.
func (t *Telegram) Stop(ctx context.Context) error {
	if t == nil || t.poller == nil {
		return nil
	}
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()

	t.stopOnce.Do(t.poller.StopReceivingUpdates)
	return t.Flush(ctx)
}

// Stdout — заглушка, когда нет TELEGRAM_*: всё уходит в лог.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { logger.Info("[NOTIFY] %s", msg) }
func (s *Stdout) Sendf(format string, args ...any) { s.Send(fmt.Sprintf(format, args...)) }

// Multi раздаёт одно сообщение нескольким нотифайерам.
type Multi []Notifier

func (m Multi) Send(msg string) {
	for _, n := range m {
		if n != nil {
			n.Send(msg)
		}
	}
}

func (m Multi) Sendf(format string, args ...any) { m.Send(fmt.Sprintf(format, args...)) }
