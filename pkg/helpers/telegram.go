package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTelegramHash    = errors.New("telegram init data hash mismatch")
	ErrTelegramExpired = errors.New("telegram init data expired")
)

// VerifyTelegramInitData validates the signed initData string a Telegram
// Mini App passes to the backend. The string is a URL query whose "hash"
// field must equal HMAC-SHA256 of the remaining fields (sorted, joined with
// newlines) under a secret derived from the bot token.
//
// maxAge bounds auth_date staleness; pass 0 to skip the freshness check.
func VerifyTelegramInitData(initData, botToken string, maxAge time.Duration) (url.Values, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, err
	}
	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, ErrTelegramHash
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	wantHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(wantHash), []byte(gotHash)) {
		return nil, ErrTelegramHash
	}

	if maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return nil, ErrTelegramExpired
		}
		if time.Since(time.Unix(authDate, 0)) > maxAge {
			return nil, ErrTelegramExpired
		}
	}
	return values, nil
}
