package adapters

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"movie_backend/internal/feature/movies/domain/entity"
	"movie_backend/internal/feature/movies/usecase"
)

// movieCollection はmovieMongoが使用する *mongo.Collection の操作です。
type movieCollection interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOneAndUpdate(ctx context.Context, filter any, update any, opts ...options.Lister[options.FindOneAndUpdateOptions]) *mongo.SingleResult
	DeleteOne(ctx context.Context, filter any, opts ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error)
}

// movieMongo はMongoDBを使用したMovieRepositoryの実装です。
type movieMongo struct {
	coll movieCollection
}

// NewMovieMongo は指定されたコレクションでMovieRepositoryを生成します。
func NewMovieMongo(coll *mongo.Collection) *movieMongo {
	return &movieMongo{coll: coll}
}

// Count はフィルタに一致するドキュメント数を返します。
func (r *movieMongo) Count(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// Find は_id昇順でskip件飛ばして最大limit件のドキュメントを返します。
func (r *movieMongo) Find(ctx context.Context, filter entity.MovieFilter, skip, limit int64) ([]entity.Movie, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer cur.Close(ctx)

	// limitは利用者が指定するため容量の事前確保には使わない
	movies := []entity.Movie{}
	if err := cur.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	return movies, nil
}

// FindByID はIDでドキュメントを1件取得します。
func (r *movieMongo) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var m entity.Movie
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie %s: %w", id, err)
	}
	return &m, nil
}

// Create はドキュメントを挿入し、生成されたIDを設定して返します。
func (r *movieMongo) Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	if movie == nil {
		return nil, errors.New("movie is nil")
	}
	doc := *movie
	if doc.ID.IsZero() {
		doc.ID = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, &doc); err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	return &doc, nil
}

// Update は$setで指定フィールドのみを更新し、更新後のドキュメントを返します。
func (r *movieMongo) Update(ctx context.Context, id string, patch entity.MoviePatch) (*entity.Movie, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m entity.Movie
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, buildUpdate(patch), opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrMovieNotFound
		}
		return nil, fmt.Errorf("update movie %s: %w", id, err)
	}
	return &m, nil
}

// Delete はIDでドキュメントを削除します。
func (r *movieMongo) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete movie %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrMovieNotFound
	}
	return nil
}

// buildFilter はタイトルの大文字小文字を区別しない部分一致フィルタを組み立てます。
// タイトルは正規表現としてではなくリテラルとして扱います。
func buildFilter(f entity.MovieFilter) bson.M {
	if f.Title == "" {
		return bson.M{}
	}
	return bson.M{"title": bson.Regex{Pattern: regexp.QuoteMeta(f.Title), Options: "i"}}
}

func buildUpdate(patch entity.MoviePatch) bson.M {
	set := bson.M{}
	for k, v := range patch {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	return bson.M{"$set": set}
}

func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, usecase.ErrInvalidMovieID
	}
	return oid, nil
}

// コンパイル時にインターフェースの実装を検証
var _ usecase.MovieRepository = (*movieMongo)(nil)
