package util

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// SignUploadParams подписывает параметры прямой загрузки на файловый хостинг
// Хостинг проверяет SHA-1 от алфавитно отсортированной строки параметров + секрет
func SignUploadParams(folder string, timestamp int64, apiSecret string) string {
	params := fmt.Sprintf("timestamp=%d", timestamp)
	if folder != "" {
		params = fmt.Sprintf("folder=%s&timestamp=%d", folder, timestamp)
	}

	sum := sha1.Sum([]byte(params + apiSecret))
	return hex.EncodeToString(sum[:])
}
