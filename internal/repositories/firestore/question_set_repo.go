package firestore

import (
	"context"
	"errors"

	"certchamps/publisher/internal/models"

	"cloud.google.com/go/firestore"
)

// Repo writes question sets into a Firestore collection. Each set's parts
// live in a subcollection of the set document.
type Repo struct {
	col           *firestore.CollectionRef
	subcollection string
}

// NewQuestionSetRepo returns a repo writing to collection, with parts under
// subcollection.
func NewQuestionSetRepo(client *firestore.Client, collection, subcollection string) (*Repo, error) {
	if client == nil {
		return nil, errors.New("firestore client not initialized")
	}
	if collection == "" || subcollection == "" {
		return nil, errors.New("collection and subcollection names are required")
	}
	return &Repo{col: client.Collection(collection), subcollection: subcollection}, nil
}

// UpsertSet creates or replaces the set document keyed by its id
func (r *Repo) UpsertSet(ctx context.Context, doc *models.SetDocument) error {
	_, err := r.col.Doc(doc.ID).Set(ctx, doc)
	return err
}

// UpsertPart creates or replaces one part document of a set
func (r *Repo) UpsertPart(ctx context.Context, setID, partID string, doc *models.PartDocument) error {
	_, err := r.parts(setID).Doc(partID).Set(ctx, doc)
	return err
}

// DeletePart removes a part document; deleting a missing document succeeds
func (r *Repo) DeletePart(ctx context.Context, setID, partID string) error {
	_, err := r.parts(setID).Doc(partID).Delete(ctx)
	return err
}

func (r *Repo) parts(setID string) *firestore.CollectionRef {
	return r.col.Doc(setID).Collection(r.subcollection)
}
