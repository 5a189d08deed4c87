// Package dryrun has repositories that log the writes they are asked to
// make instead of making them.
package dryrun

import (
	"context"
	"fmt"
	"io"

	"certchamps/publisher/internal/models"

	"go.uber.org/zap"
)

type QuestionSetRepo struct{ logger *zap.Logger }

func NewQuestionSetRepo(logger *zap.Logger) *QuestionSetRepo {
	return &QuestionSetRepo{logger: logger}
}

func (r *QuestionSetRepo) UpsertSet(_ context.Context, doc *models.SetDocument) error {
	r.logger.Info("dry run: would write question set", zap.String("set_id", doc.ID), zap.Strings("tags", doc.Tags))
	return nil
}

func (r *QuestionSetRepo) UpsertPart(_ context.Context, setID, partID string, doc *models.PartDocument) error {
	image := "<null>"
	if doc.Image != nil {
		image = *doc.Image
	}
	r.logger.Info("dry run: would write question",
		zap.String("set_id", setID),
		zap.String("doc_id", partID),
		zap.String("image", image),
	)
	return nil
}

func (r *QuestionSetRepo) DeletePart(_ context.Context, setID, partID string) error {
	r.logger.Info("dry run: would delete question", zap.String("set_id", setID), zap.String("doc_id", partID))
	return nil
}

type ImageRepo struct{ logger *zap.Logger }

func NewImageRepo(logger *zap.Logger) *ImageRepo {
	return &ImageRepo{logger: logger}
}

// Upload reads src to the end so unreadable files still fail as they would
// in a real run.
func (r *ImageRepo) Upload(_ context.Context, objectPath string, src io.Reader) error {
	n, err := io.Copy(io.Discard, src)
	if err != nil {
		return fmt.Errorf("failed to read image for %s: %w", objectPath, err)
	}
	r.logger.Info("dry run: would upload image", zap.String("path", objectPath), zap.Int64("bytes", n))
	return nil
}

type TopicRepo struct{ logger *zap.Logger }

func NewTopicRepo(logger *zap.Logger) *TopicRepo {
	return &TopicRepo{logger: logger}
}

func (r *TopicRepo) MergeTopics(_ context.Context, docPath string, doc *models.TopicsDocument) error {
	r.logger.Info("dry run: would merge topics",
		zap.String("path", docPath),
		zap.Int("topics", len(doc.Topics)),
		zap.Int("sub_topics", len(doc.SubTopics)),
		zap.Strings("sections", doc.Sections),
	)
	return nil
}
