package dryrun

import (
	"context"
	"errors"
	"strings"
	"testing"

	"certchamps/publisher/internal/models"
	"certchamps/publisher/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	_ repositories.QuestionSetRepository = (*QuestionSetRepo)(nil)
	_ repositories.ImageRepository       = (*ImageRepo)(nil)
	_ repositories.TopicRepository       = (*TopicRepo)(nil)
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk error") }

func TestDryRunLogsWrites(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	ctx := context.Background()

	sets := NewQuestionSetRepo(logger)
	require.NoError(t, sets.UpsertSet(ctx, &models.SetDocument{ID: "Q1"}))
	image := "images/Algebra/Q1.png"
	require.NoError(t, sets.UpsertPart(ctx, "Q1", "q1", &models.PartDocument{Image: &image}))
	require.NoError(t, sets.UpsertPart(ctx, "Q1", "q2", &models.PartDocument{}))
	require.NoError(t, sets.DeletePart(ctx, "Q1", "q3"))

	images := NewImageRepo(logger)
	require.NoError(t, images.Upload(ctx, image, strings.NewReader("png")))

	topics := NewTopicRepo(logger)
	require.NoError(t, topics.MergeTopics(ctx, "a/b", &models.TopicsDocument{Topics: []string{"Algebra"}}))

	assert.Equal(t, 6, logs.Len())
	parts := logs.FilterMessage("dry run: would write question").All()
	require.Len(t, parts, 2)
	assert.Equal(t, image, parts[0].ContextMap()["image"])
	assert.Equal(t, "<null>", parts[1].ContextMap()["image"])
}

func TestDryRunUploadReadFailure(t *testing.T) {
	images := NewImageRepo(zap.NewNop())
	err := images.Upload(context.Background(), "images/x.png", failingReader{})
	assert.Error(t, err)
}
