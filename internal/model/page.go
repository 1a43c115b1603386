package model

// Page は一覧取得時のページング指定。
// ゼロ値はリポジトリ側のデフォルト件数で先頭から取得することを意味する。
type Page struct {
	Limit  int
	Offset int
}

// Normalize はLimitとOffsetを許容範囲に丸めたPageを返す。
func (p Page) Normalize(defaultLimit, maxLimit int) Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
