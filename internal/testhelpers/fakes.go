package testhelpers

import (
	"context"
	"io"

	"certchamps/publisher/internal/models"
)

// Write is one call recorded by a fake repository.
type Write struct {
	Op     string // "set", "part", "delete", "upload", "topics"
	SetID  string
	PartID string
	Path   string
}

// FakeStore is an in-memory stand-in for Firestore and the storage bucket.
// Fail* hooks let tests make individual writes fail.
type FakeStore struct {
	Sets    map[string]*models.SetDocument
	Parts   map[string]map[string]*models.PartDocument
	Objects map[string][]byte
	Topics  map[string]*models.TopicsDocument
	Writes  []Write

	FailSet    func(setID string) error
	FailPart   func(setID, partID string) error
	FailDelete func(setID, partID string) error
	FailUpload func(objectPath string) error
	FailTopics func(docPath string) error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Sets:    map[string]*models.SetDocument{},
		Parts:   map[string]map[string]*models.PartDocument{},
		Objects: map[string][]byte{},
		Topics:  map[string]*models.TopicsDocument{},
	}
}

func (f *FakeStore) UpsertSet(_ context.Context, doc *models.SetDocument) error {
	f.Writes = append(f.Writes, Write{Op: "set", SetID: doc.ID})
	if f.FailSet != nil {
		if err := f.FailSet(doc.ID); err != nil {
			return err
		}
	}
	f.Sets[doc.ID] = doc
	return nil
}

func (f *FakeStore) UpsertPart(_ context.Context, setID, partID string, doc *models.PartDocument) error {
	f.Writes = append(f.Writes, Write{Op: "part", SetID: setID, PartID: partID})
	if f.FailPart != nil {
		if err := f.FailPart(setID, partID); err != nil {
			return err
		}
	}
	if f.Parts[setID] == nil {
		f.Parts[setID] = map[string]*models.PartDocument{}
	}
	f.Parts[setID][partID] = doc
	return nil
}

func (f *FakeStore) DeletePart(_ context.Context, setID, partID string) error {
	f.Writes = append(f.Writes, Write{Op: "delete", SetID: setID, PartID: partID})
	if f.FailDelete != nil {
		if err := f.FailDelete(setID, partID); err != nil {
			return err
		}
	}
	delete(f.Parts[setID], partID)
	return nil
}

func (f *FakeStore) Upload(_ context.Context, objectPath string, src io.Reader) error {
	f.Writes = append(f.Writes, Write{Op: "upload", Path: objectPath})
	if f.FailUpload != nil {
		if err := f.FailUpload(objectPath); err != nil {
			return err
		}
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	f.Objects[objectPath] = data
	return nil
}

func (f *FakeStore) MergeTopics(_ context.Context, docPath string, doc *models.TopicsDocument) error {
	f.Writes = append(f.Writes, Write{Op: "topics", Path: docPath})
	if f.FailTopics != nil {
		if err := f.FailTopics(docPath); err != nil {
			return err
		}
	}
	f.Topics[docPath] = doc
	return nil
}

// Ops returns the operations recorded so far, in call order.
func (f *FakeStore) Ops() []string {
	ops := make([]string, 0, len(f.Writes))
	for _, w := range f.Writes {
		ops = append(ops, w.Op)
	}
	return ops
}
