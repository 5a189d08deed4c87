package firestore

import (
	"context"
	"errors"
	"fmt"

	"certchamps/publisher/internal/models"

	"cloud.google.com/go/firestore"
)

type TopicRepo struct{ client *firestore.Client }

func NewTopicRepo(client *firestore.Client) (*TopicRepo, error) {
	if client == nil {
		return nil, errors.New("firestore client not initialized")
	}
	return &TopicRepo{client: client}, nil
}

// MergeTopics sets the topic lists on the document at docPath, leaving its
// other fields untouched
func (r *TopicRepo) MergeTopics(ctx context.Context, docPath string, doc *models.TopicsDocument) error {
	ref := r.client.Doc(docPath)
	if ref == nil {
		return fmt.Errorf("invalid document path %q", docPath)
	}
	_, err := ref.Set(ctx, doc.Fields(), firestore.MergeAll)
	return err
}
