package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"movie_backend/internal/feature/movies/domain/entity"
	"movie_backend/internal/feature/movies/usecase"
)

// ErrMalformedBody はリクエストボディがJSONとして不正、または型が一致しない場合に返されます。
var ErrMalformedBody = errors.New("malformed request body")

// patchFields は部分更新で受け付けるトップレベルのフィールドです。
// 未知のキーは無視されます。
var patchFields = map[string]func(m *entity.Movie) any{
	"plot":               func(m *entity.Movie) any { return m.Plot },
	"genres":             func(m *entity.Movie) any { return m.Genres },
	"runtime":            func(m *entity.Movie) any { return m.Runtime },
	"cast":               func(m *entity.Movie) any { return m.Cast },
	"num_mflix_comments": func(m *entity.Movie) any { return m.NumMflixComments },
	"poster":             func(m *entity.Movie) any { return m.Poster },
	"title":              func(m *entity.Movie) any { return m.Title },
	"fullplot":           func(m *entity.Movie) any { return m.FullPlot },
	"lastupdated":        func(m *entity.Movie) any { return m.LastUpdated },
	"languages":          func(m *entity.Movie) any { return m.Languages },
	"released":           func(m *entity.Movie) any { return m.Released },
	"directors":          func(m *entity.Movie) any { return m.Directors },
	"writers":            func(m *entity.Movie) any { return m.Writers },
	"awards":             func(m *entity.Movie) any { return m.Awards },
	"year":               func(m *entity.Movie) any { return m.Year },
	"imdb":               func(m *entity.Movie) any { return m.IMDb },
	"countries":          func(m *entity.Movie) any { return m.Countries },
	"type":               func(m *entity.Movie) any { return m.Type },
	"tomatoes":           func(m *entity.Movie) any { return m.Tomatoes },
	"metacritic":         func(m *entity.Movie) any { return m.Metacritic },
	"rated":              func(m *entity.Movie) any { return m.Rated },
}

// ParseMovie は作成リクエストのボディをMovieに変換します。
// クライアントが指定した_idは無視され、ストアが採番します。
func ParseMovie(body []byte) (*entity.Movie, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: body is empty", ErrMalformedBody)
	}
	var m entity.Movie
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	m.ID = bson.ObjectID{}
	return &m, nil
}

// ParseMoviePatch は更新リクエストのボディから、含まれていた既知フィールドのみのパッチを作ります。
// 空のボディ、または既知フィールドを含まないボディは usecase.ErrEmptyUpdate を返します。
func ParseMoviePatch(body []byte) (entity.MoviePatch, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, usecase.ErrEmptyUpdate
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(raw) == 0 {
		return nil, usecase.ErrEmptyUpdate
	}

	// 型の検証はMovieへのデコードに任せる
	var m entity.Movie
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	patch := entity.MoviePatch{}
	for key := range raw {
		if get, ok := patchFields[key]; ok {
			patch[key] = get(&m)
		}
	}
	if len(patch) == 0 {
		return nil, usecase.ErrEmptyUpdate
	}
	return patch, nil
}
