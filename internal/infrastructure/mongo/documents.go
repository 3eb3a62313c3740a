package mongo

import (
	"time"

	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
)

// SubmissionDocument は glove_submissions コレクション上の 1 レポートを表す。
// _id にはアプリ側で採番した UUID 文字列をそのまま使う。
type SubmissionDocument struct {
	ID             string    `bson:"_id"`
	PlaceID        string    `bson:"placeId"`
	RestaurantName string    `bson:"restaurantName"`
	Address        string    `bson:"address"`
	GloveType      string    `bson:"gloveType"`
	Notes          string    `bson:"notes"`
	SubmittedBy    string    `bson:"submittedBy"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

// submissionValidator はコレクションに付与する $jsonSchema。gloveType を閉じた集合に限定する。
func submissionValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"_id", "placeId", "restaurantName", "address", "gloveType", "createdAt", "updatedAt"},
			"properties": bson.M{
				"_id":            bson.M{"bsonType": "string"},
				"placeId":        bson.M{"bsonType": "string", "minLength": 1},
				"restaurantName": bson.M{"bsonType": "string", "minLength": 1},
				"address":        bson.M{"bsonType": "string", "minLength": 1},
				"gloveType":      bson.M{"enum": domain.GloveTypeNames()},
				"notes":          bson.M{"bsonType": "string"},
				"submittedBy":    bson.M{"bsonType": "string"},
				"createdAt":      bson.M{"bsonType": "date"},
				"updatedAt":      bson.M{"bsonType": "date"},
			},
		},
	}
}

// mapDomainSubmissionToDocument はドメイン Submission を保存形式に射影する。
// Mongo の日時はミリ秒精度なので、ここで丸めておく。
func mapDomainSubmissionToDocument(submission *domain.Submission) SubmissionDocument {
	return SubmissionDocument{
		ID:             submission.ID,
		PlaceID:        submission.PlaceID,
		RestaurantName: submission.RestaurantName,
		Address:        submission.Address,
		GloveType:      submission.GloveType.String(),
		Notes:          submission.Notes,
		SubmittedBy:    submission.SubmittedBy,
		CreatedAt:      submission.CreatedAt.UTC().Truncate(time.Millisecond),
		UpdatedAt:      submission.UpdatedAt.UTC().Truncate(time.Millisecond),
	}
}

// mapSubmissionDocument はドキュメントをドメイン Submission へ戻す。
func mapSubmissionDocument(doc SubmissionDocument) domain.Submission {
	return domain.Submission{
		ID:             doc.ID,
		PlaceID:        doc.PlaceID,
		RestaurantName: doc.RestaurantName,
		Address:        doc.Address,
		GloveType:      domain.GloveType(doc.GloveType),
		Notes:          doc.Notes,
		SubmittedBy:    doc.SubmittedBy,
		CreatedAt:      doc.CreatedAt.UTC(),
		UpdatedAt:      doc.UpdatedAt.UTC(),
	}
}
