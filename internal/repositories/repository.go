package repositories

import (
	"context"
	"io"

	"certchamps/publisher/internal/models"
)

// QuestionSetRepository writes question sets and their parts. Every write
// fully replaces the document at its key.
type QuestionSetRepository interface {
	UpsertSet(ctx context.Context, doc *models.SetDocument) error
	UpsertPart(ctx context.Context, setID, partID string, doc *models.PartDocument) error
	DeletePart(ctx context.Context, setID, partID string) error
}

// ImageRepository stores image objects at a bucket-relative path.
type ImageRepository interface {
	Upload(ctx context.Context, objectPath string, src io.Reader) error
}

// TopicRepository merges topic lists into an existing document, keeping
// fields it does not name.
type TopicRepository interface {
	MergeTopics(ctx context.Context, docPath string, doc *models.TopicsDocument) error
}
