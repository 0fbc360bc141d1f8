package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignHMAC подписывает данные ключом по схеме HMAC-SHA256
func SignHMAC(data []byte, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC проверяет подпись данных в постоянном времени
func VerifyHMAC(data []byte, signature, key string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(data)
	return hmac.Equal(mac.Sum(nil), expected)
}
