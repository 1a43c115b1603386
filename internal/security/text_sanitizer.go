package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// 実体参照の多重エンコードを展開する回数の上限
const maxSanitizePasses = 8

// TextSanitizer はタスクのタイトルや説明などの利用者入力からHTMLを取り除く。
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はすべてのタグを除去するstrictポリシーのTextSanitizerを生成する。
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize はタグを除去し、前後の空白を取り除いたプレーンテキストを返す。
// 実体参照を戻した結果に再びタグが現れなくなるまで除去を繰り返すため、
// 戻り値に対してSanitizeを再適用しても値は変わらない。
func (s *TextSanitizer) Sanitize(input string) string {
	current := strings.TrimSpace(input)
	for i := 0; i < maxSanitizePasses; i++ {
		if current == "" {
			return ""
		}
		next := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(current)))
		if next == current {
			return current
		}
		current = next
	}
	// 収束しない入力は実体参照のまま保存する
	return strings.TrimSpace(s.policy.Sanitize(current))
}
