package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"signal_bot/internal/models"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getMeOK = `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"signal","username":"signal_bot"}}`

// fakeTelegram — минимальный Bot API: getMe + sendMessage.
type fakeTelegram struct {
	mu       sync.Mutex
	texts    []string
	chatIDs  []string
	sendCode int
	delay    time.Duration
}

func (f *fakeTelegram) handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(getMeOK))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
		_ = r.ParseForm()
		f.mu.Lock()
		f.texts = append(f.texts, r.PostForm.Get("text"))
		f.chatIDs = append(f.chatIDs, r.PostForm.Get("chat_id"))
		code := f.sendCode
		f.mu.Unlock()

		if code != 0 && code != http.StatusOK {
			w.WriteHeader(code)
			_, _ = fmt.Fprintf(w, `{"ok":false,"error_code":%d,"description":"Unauthorized"}`, code)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func (f *fakeTelegram) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

type staticBalance struct{ snap models.AccountSnapshot }

func (s staticBalance) Snapshot() models.AccountSnapshot { return s.snap }

func newTestTelegram(t *testing.T, fake *fakeTelegram, timeout time.Duration) *Telegram {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	t.Cleanup(srv.Close)

	tg, err := NewTelegramWithEndpoint("TOKEN", 42, timeout, srv.URL+"/bot%s/%s",
		staticBalance{snap: models.AccountSnapshot{Balance: 200, RiskFraction: 0.05}})
	require.NoError(t, err)
	return tg
}

func flush(t *testing.T, tg *Telegram) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, tg.Flush(ctx))
}

func TestTelegramSend(t *testing.T) {
	fake := &fakeTelegram{}
	tg := newTestTelegram(t, fake, time.Second)

	tg.Send("hello")
	tg.Sendf("lot %s", "0.02")
	flush(t, tg)

	assert.ElementsMatch(t, []string{"hello", "lot 0.02"}, fake.Texts())
	fake.mu.Lock()
	assert.Equal(t, []string{"42", "42"}, fake.chatIDs)
	fake.mu.Unlock()
}

func TestTelegramSendFailureIsSwallowed(t *testing.T) {
	fake := &fakeTelegram{sendCode: http.StatusUnauthorized}
	tg := newTestTelegram(t, fake, time.Second)

	assert.NotPanics(t, func() { tg.Send("will fail") })
	flush(t, tg)
	assert.Equal(t, []string{"will fail"}, fake.Texts())
}

func TestTelegramSendTimeout(t *testing.T) {
	fake := &fakeTelegram{delay: 500 * time.Millisecond}
	tg := newTestTelegram(t, fake, 100*time.Millisecond)

	start := time.Now()
	tg.Send("slow")
	// Send не ждёт сети
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	flush(t, tg)
	assert.Less(t, time.Since(start), 450*time.Millisecond)
}

func TestTelegramInitFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := NewTelegramWithEndpoint("BAD", 42, time.Second, srv.URL+"/bot%s/%s", nil)
	assert.Error(t, err)
}

func TestTelegramSendAfterStopIsDropped(t *testing.T) {
	fake := &fakeTelegram{}
	tg := newTestTelegram(t, fake, time.Second)

	tg.Send("before")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, tg.Stop(ctx))

	tg.Send("after")
	flush(t, tg)
	assert.Equal(t, []string{"before"}, fake.Texts())

	// повторный Stop безопасен
	require.NoError(t, tg.Stop(ctx))
}

// Send из разных горутин одновременно со Stop: под -race не должно быть гонки Add/Wait.
func TestTelegramConcurrentSendAndStop(t *testing.T) {
	fake := &fakeTelegram{}
	tg := newTestTelegram(t, fake, time.Second)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			tg.Sendf("msg %d", i)
		}(i)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	close(start)
	require.NoError(t, tg.Stop(ctx))
	wg.Wait()
	flush(t, tg)

	assert.LessOrEqual(t, len(fake.Texts()), 20)
}

func command(chatID int64, text string) tgbot.Update {
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i > 0 {
		cmdLen = i
	}
	return tgbot.Update{Message: &tgbot.Message{
		Chat:     &tgbot.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbot.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}}
}

func TestTelegramBalanceCommand(t *testing.T) {
	fake := &fakeTelegram{}
	tg := newTestTelegram(t, fake, time.Second)

	tg.handleUpdate(command(42, "/balance"))
	tg.handleUpdate(command(42, "/start"))
	// чужой чат и не-команда игнорируются
	tg.handleUpdate(command(7, "/balance"))
	tg.handleUpdate(tgbot.Update{Message: &tgbot.Message{Chat: &tgbot.Chat{ID: 42}, Text: "hi"}})
	tg.handleUpdate(tgbot.Update{})
	flush(t, tg)

	texts := fake.Texts()
	require.Len(t, texts, 2)
	assert.ElementsMatch(t, []string{"🏦 Balance: 200\n⚖️ Risk: 5% per trade\n", HomeText}, texts)
}

func TestNilTelegramIsNoop(t *testing.T) {
	var tg *Telegram
	assert.NotPanics(t, func() {
		tg.Send("x")
		_ = tg.Start(context.Background())
		_ = tg.Stop(context.Background())
	})
}

type captureNotifier struct{ msgs []string }

func (c *captureNotifier) Send(msg string)                  { c.msgs = append(c.msgs, msg) }
func (c *captureNotifier) Sendf(format string, args ...any) { c.Send(fmt.Sprintf(format, args...)) }

func TestMultiFansOut(t *testing.T) {
	a, b := &captureNotifier{}, &captureNotifier{}
	m := Multi{a, nil, b, NewStdout()}

	m.Sendf("%s %d", "x", 1)
	assert.Equal(t, []string{"x 1"}, a.msgs)
	assert.Equal(t, []string{"x 1"}, b.msgs)
}
