package types

// NewsItem is a single news record as returned by the SaveTicker API.
// CreatedAt is kept as a string because the dataset carries two encodings:
// ISO-8601 from the API and the canonical "2006.01.02 15:04:05" form on disk.
type NewsItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
	TagNames  []string  `json:"tag_names"`
	ViewCount int64     `json:"view_count"`
	LikeStats LikeStats `json:"like_stats"`
}

type LikeStats struct {
	LikeCount int64 `json:"like_count"`
}

// Tag is a SaveTicker tag. Ticker tags double as stock symbols.
type Tag struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IsTicker   bool   `json:"is_ticker"`
	IsRequired bool   `json:"is_required"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// Direction is the derived stance of an analyst opinion.
type Direction string

const (
	Upgrade   Direction = "UPGRADE"
	Downgrade Direction = "DOWNGRADE"
	Neutral   Direction = "NEUTRAL"
)

// Opinion is derived from exactly one news item and attached to exactly
// one ticker.
type Opinion struct {
	Symbol      string    `json:"symbol"`
	Opinion     Direction `json:"opinion"`
	OpinionDate string    `json:"opinion_date"`
	Bank        string    `json:"bank"`
	NewsID      int64     `json:"news_id"`
}

// Ticker is a run-scoped stock entity accumulating opinions.
type Ticker struct {
	Symbol   string    `json:"symbol"`
	Opinions []Opinion `json:"opinions,omitempty"`
}

// Bank is static reference data: a canonical name plus the alternate
// surface forms that show up in headlines.
type Bank struct {
	Name      string   `json:"name" yaml:"name"`
	NickNames []string `json:"nick_names" yaml:"nick_names"`
}

// Candle is one day of a price series.
type Candle struct {
	Ts    int64
	Close float64
}
