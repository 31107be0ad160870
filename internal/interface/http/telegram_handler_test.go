package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedInitData(botToken string, fields map[string]string) string {
	q := url.Values{}
	for k, v := range fields {
		q.Set(k, v)
	}
	checkString := ""
	for i, k := range []string{"auth_date", "user"} {
		if i > 0 {
			checkString += "\n"
		}
		checkString += k + "=" + fields[k]
	}
	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	q.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return q.Encode()
}

func TestTelegramLink(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	id, _ := e.register(t, "Alice", "alice@example.com", "secret123")

	initData := signedInitData(e.cfg.TelegramBotToken, map[string]string{
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
		"user":      `{"id":777,"first_name":"Alice"}`,
	})

	w := e.do(t, http.MethodPost, "/api/telegram/link", "", gin.H{
		"telegramId": 777,
		"initData":   initData,
		"email":      "alice@example.com",
		"password":   "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	require.NotEmpty(t, env.Data["token"])
	user := env.Data["user"].(map[string]any)
	assert.Equal(t, id, user["id"])
	assert.Equal(t, float64(777), user["telegram_id"])
}

func TestTelegramLinkMissingInitData(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.register(t, "Alice", "alice@example.com", "secret123")

	w := e.do(t, http.MethodPost, "/api/telegram/link", "", gin.H{
		"telegramId": 777,
		"email":      "alice@example.com",
		"password":   "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTelegramLinkWithoutBotToken(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.cfg.TelegramBotToken = ""
	id, _ := e.register(t, "Alice", "alice@example.com", "secret123")

	// No bot token configured: clients that post only id plus credentials
	// are accepted.
	w := e.do(t, http.MethodPost, "/api/telegram/link", "", gin.H{
		"telegramId": 777,
		"email":      "alice@example.com",
		"password":   "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	user := env.Data["user"].(map[string]any)
	assert.Equal(t, id, user["id"])
}

func TestTelegramLinkBadSignature(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.register(t, "Alice", "alice@example.com", "secret123")

	initData := signedInitData("999:othertoken", map[string]string{
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
		"user":      `{"id":777}`,
	})

	w := e.do(t, http.MethodPost, "/api/telegram/link", "", gin.H{
		"telegramId": 777,
		"initData":   initData,
		"email":      "alice@example.com",
		"password":   "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTelegramLinkWrongPassword(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.register(t, "Alice", "alice@example.com", "secret123")

	initData := signedInitData(e.cfg.TelegramBotToken, map[string]string{
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
		"user":      `{"id":777}`,
	})

	w := e.do(t, http.MethodPost, "/api/telegram/link", "", gin.H{
		"telegramId": 777,
		"initData":   initData,
		"email":      "alice@example.com",
		"password":   "wrongpass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
