package respond

import "regexp"

var (
	// クエリ文字列中のAPIキー (GNews: apikey, NewsAPI: apiKey)
	queryKeyPattern = regexp.MustCompile(`(?i)\b(apikey|api_key|token)=[^&\s"]+`)
	// Authorization ヘッダー値
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/=-]+`)
	// DSN 内のパスワード
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = queryKeyPattern.ReplaceAllString(msg, "$1=****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
