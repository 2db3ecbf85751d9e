// Package entity はmoviesフィーチャーのドメインエンティティを定義します。
package entity

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Movie はカタログに保存される映画ドキュメントを表します。
// JSONとBSONのフィールド名は同一です。
// title と languages 以外の数値・日付はNumberとDateで緩やかに読み込みます。
type Movie struct {
	ID               bson.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	Plot             string        `json:"plot,omitempty" bson:"plot,omitempty"`
	Genres           []string      `json:"genres,omitempty" bson:"genres,omitempty"`
	Runtime          Number        `json:"runtime,omitempty" bson:"runtime,omitempty"`
	Cast             []string      `json:"cast,omitempty" bson:"cast,omitempty"`
	NumMflixComments Number        `json:"num_mflix_comments,omitempty" bson:"num_mflix_comments,omitempty"`
	Poster           string        `json:"poster,omitempty" bson:"poster,omitempty"`
	Title            string        `json:"title" bson:"title"`
	FullPlot         string        `json:"fullplot,omitempty" bson:"fullplot,omitempty"`
	LastUpdated      string        `json:"lastupdated,omitempty" bson:"lastupdated,omitempty"`
	Languages        []string      `json:"languages" bson:"languages"`
	Released         *Date         `json:"released,omitempty" bson:"released,omitempty"`
	Directors        []string      `json:"directors,omitempty" bson:"directors,omitempty"`
	Writers          []string      `json:"writers,omitempty" bson:"writers,omitempty"`
	Awards           *Awards       `json:"awards,omitempty" bson:"awards,omitempty"`
	Year             Number        `json:"year,omitempty" bson:"year,omitempty"`
	IMDb             *IMDb         `json:"imdb,omitempty" bson:"imdb,omitempty"`
	Countries        []string      `json:"countries,omitempty" bson:"countries,omitempty"`
	Type             string        `json:"type,omitempty" bson:"type,omitempty"`
	Tomatoes         *Tomatoes     `json:"tomatoes,omitempty" bson:"tomatoes,omitempty"`
	Metacritic       Number        `json:"metacritic,omitempty" bson:"metacritic,omitempty"`
	Rated            string        `json:"rated,omitempty" bson:"rated,omitempty"`
}

// Awards は受賞情報です。
type Awards struct {
	Wins        Number `json:"wins,omitempty" bson:"wins,omitempty"`
	Nominations Number `json:"nominations,omitempty" bson:"nominations,omitempty"`
	Text        string `json:"text,omitempty" bson:"text,omitempty"`
}

// IMDb はIMDbの評価情報です。
type IMDb struct {
	Rating Number `json:"rating,omitempty" bson:"rating,omitempty"`
	Votes  Number `json:"votes,omitempty" bson:"votes,omitempty"`
	ID     Number `json:"id,omitempty" bson:"id,omitempty"`
}

// Tomatoes はRotten Tomatoesの評価情報です。
type Tomatoes struct {
	Viewer      *TomatoesRating `json:"viewer,omitempty" bson:"viewer,omitempty"`
	DVD         *Date           `json:"dvd,omitempty" bson:"dvd,omitempty"`
	Website     string          `json:"website,omitempty" bson:"website,omitempty"`
	Production  string          `json:"production,omitempty" bson:"production,omitempty"`
	LastUpdated *Date           `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
	BoxOffice   string          `json:"boxOffice,omitempty" bson:"boxOffice,omitempty"`
	Consensus   string          `json:"consensus,omitempty" bson:"consensus,omitempty"`
	Fresh       Number          `json:"fresh,omitempty" bson:"fresh,omitempty"`
	Rotten      Number          `json:"rotten,omitempty" bson:"rotten,omitempty"`
	Critic      *TomatoesRating `json:"critic,omitempty" bson:"critic,omitempty"`
}

// TomatoesRating は視聴者または批評家の評価です。
type TomatoesRating struct {
	Rating     Number `json:"rating,omitempty" bson:"rating,omitempty"`
	NumReviews Number `json:"numReviews,omitempty" bson:"numReviews,omitempty"`
	Meter      Number `json:"meter,omitempty" bson:"meter,omitempty"`
}

// MovieFilter は一覧取得の絞り込み条件です。Titleが空の場合は全件に一致します。
type MovieFilter struct {
	Title string
}

// MoviePatch は部分更新の内容です。
// キーはトップレベルのフィールド名、値はリクエストに含まれていた型付きの値です。
type MoviePatch map[string]any

// PageRequest は一覧取得のページ指定です。
type PageRequest struct {
	Page    int
	PerPage int
	Title   string
}

// MoviePage は一覧取得の結果です。
type MoviePage struct {
	Movies       []Movie
	TotalRecords int64
}
