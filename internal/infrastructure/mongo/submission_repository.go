package mongo

import (
	"context"
	"errors"
	"strings"

	"github.com/sngm3741/latex-free-eats/api/internal/public/application"
	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// namespaceExistsCode は createCollection が既存コレクションに当たった際のエラーコード。
const namespaceExistsCode = 48

// SubmissionRepository はグローブ報告を MongoDB で扱う実装リポジトリ。
type SubmissionRepository struct {
	db          *mongo.Database
	name        string
	submissions *mongo.Collection
}

var _ application.SubmissionRepository = (*SubmissionRepository)(nil)

// NewSubmissionRepository は報告コレクションを束縛したリポジトリを構築する。
func NewSubmissionRepository(db *mongo.Database, collection string) *SubmissionRepository {
	return &SubmissionRepository{
		db:          db,
		name:        collection,
		submissions: db.Collection(collection),
	}
}

// EnsureSchema はコレクションを $jsonSchema バリデータ付きで用意し、place 単位の一覧用インデックスを張る。
// 既にコレクションがある場合は collMod でバリデータだけ差し替える。
func (r *SubmissionRepository) EnsureSchema(ctx context.Context) error {
	validator := submissionValidator()
	err := r.db.CreateCollection(ctx, r.name, options.CreateCollection().SetValidator(validator))
	if err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != namespaceExistsCode {
			return &domain.PersistenceError{Op: "create submission collection", Err: err}
		}
		if err := r.db.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: r.name},
			{Key: "validator", Value: validator},
		}).Err(); err != nil {
			return &domain.PersistenceError{Op: "update submission validator", Err: err}
		}
	}

	_, err = r.submissions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "placeId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return &domain.PersistenceError{Op: "create submission index", Err: err}
	}
	return nil
}

// Create は報告を 1 件追加し、丸め後のタイムスタンプをドメインモデルへ反映する。
func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	doc := mapDomainSubmissionToDocument(submission)
	if _, err := r.submissions.InsertOne(ctx, doc); err != nil {
		return &domain.PersistenceError{Op: "insert submission", Err: err}
	}
	submission.CreatedAt = doc.CreatedAt
	submission.UpdatedAt = doc.UpdatedAt
	return nil
}

// Find は placeId 条件を Mongo クエリへ落とし込み、新しい順に返す。
func (r *SubmissionRepository) Find(ctx context.Context, filter application.SubmissionFilter) ([]domain.Submission, error) {
	mongoFilter := bson.M{}
	if placeID := strings.TrimSpace(filter.PlaceID); placeID != "" {
		mongoFilter["placeId"] = placeID
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.submissions.Find(ctx, mongoFilter, findOpts)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "find submissions", Err: err}
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.Submission, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, &domain.PersistenceError{Op: "decode submission", Err: err}
		}
		submissions = append(submissions, mapSubmissionDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "iterate submissions", Err: err}
	}
	return submissions, nil
}

// FindByID は ID から単一の報告を復元する。
func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	var doc SubmissionDocument
	err := r.submissions.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.SubmissionNotFound(id)
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "find submission", Err: err}
	}
	submission := mapSubmissionDocument(doc)
	return &submission, nil
}

// Update は可変フィールドのみを $set する。place や作成日時には触れない。
func (r *SubmissionRepository) Update(ctx context.Context, submission *domain.Submission) error {
	doc := mapDomainSubmissionToDocument(submission)
	result, err := r.submissions.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": bson.M{
		"gloveType":   doc.GloveType,
		"notes":       doc.Notes,
		"submittedBy": doc.SubmittedBy,
		"updatedAt":   doc.UpdatedAt,
	}})
	if err != nil {
		return &domain.PersistenceError{Op: "update submission", Err: err}
	}
	if result.MatchedCount == 0 {
		return domain.SubmissionNotFound(doc.ID)
	}
	submission.UpdatedAt = doc.UpdatedAt
	return nil
}

// Delete は報告を削除する。該当なしは NotFound。
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.submissions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &domain.PersistenceError{Op: "delete submission", Err: err}
	}
	if result.DeletedCount == 0 {
		return domain.SubmissionNotFound(id)
	}
	return nil
}

// Ping はヘルスチェック用に Primary への疎通を確認する。
func (r *SubmissionRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}
