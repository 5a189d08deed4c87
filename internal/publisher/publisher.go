package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"certchamps/publisher/internal/metrics"
	"certchamps/publisher/internal/models"
	"certchamps/publisher/internal/repositories"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Publisher writes question sets, their parts and the part images to the
// remote store, one set and one part at a time.
type Publisher struct {
	sets    repositories.QuestionSetRepository
	images  repositories.ImageRepository
	fs      afero.Fs
	config  *Config
	metrics *metrics.Recorder
	logger  *zap.Logger
}

// Config contains the publisher settings
type Config struct {
	ImageDir        string // local directory holding {id}{suffix}.png files
	ImagePrefix     string // top-level storage folder, "images"
	PruneStaleParts bool   // delete q{n+1}..q26 left over from larger earlier runs
}

func NewPublisher(
	sets repositories.QuestionSetRepository,
	images repositories.ImageRepository,
	fs afero.Fs,
	config *Config,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *Publisher {
	return &Publisher{
		sets:    sets,
		images:  images,
		fs:      fs,
		config:  config,
		metrics: recorder,
		logger:  logger,
	}
}

type ImageStatus int

const (
	ImageMissing ImageStatus = iota
	ImageUploaded
	ImageFailed
)

// ImageResult is the outcome of transferring one part's image. StoragePath
// is only set when Status is ImageUploaded.
type ImageResult struct {
	Status      ImageStatus
	LocalPath   string
	StoragePath string
	Err         error
}

// PartResult is the outcome of publishing one question part.
type PartResult struct {
	DocID  string
	Suffix string
	Image  ImageResult
	Err    error
}

// SetResult is the outcome of publishing one question set. Err is the set
// document write error; part failures are in Parts.
type SetResult struct {
	SetID string
	Err   error
	Parts []PartResult
}

// Run publishes sets in order. Recoverable failures are logged and recorded
// in the results. The run stops with an error when a set cannot be
// published at all or when ctx is cancelled.
func (p *Publisher) Run(ctx context.Context, sets []models.QuestionSet) ([]SetResult, error) {
	results := make([]SetResult, 0, len(sets))
	for i := range sets {
		res, err := p.PublishSet(ctx, &sets[i])
		if err != nil {
			p.logger.Error("aborting run", zap.Int("set_index", i), zap.String("set_id", sets[i].ID), zap.Error(err))
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// PublishSet upserts the set document and then each of its parts. A
// cancelled ctx stops the set between parts and is returned as the error.
func (p *Publisher) PublishSet(ctx context.Context, set *models.QuestionSet) (SetResult, error) {
	if err := ctx.Err(); err != nil {
		return SetResult{SetID: set.ID}, err
	}
	parts, err := set.Parts()
	if err != nil {
		return SetResult{SetID: set.ID}, err
	}

	result := SetResult{SetID: set.ID, Parts: make([]PartResult, 0, len(parts))}
	log := p.logger.With(zap.String("set_id", set.ID))

	if err := p.sets.UpsertSet(ctx, set.Document()); err != nil {
		result.Err = fmt.Errorf("failed to write question set %s: %w", set.ID, err)
		p.metrics.Document(metrics.KindSet, metrics.ResultFailed)
		log.Warn("failed to write question set", zap.Error(err))
	} else {
		p.metrics.Document(metrics.KindSet, metrics.ResultWritten)
	}

	folder := set.FolderPath()
	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			log.Warn("interrupted, remaining parts not written", zap.String("suffix", part.Suffix))
			return result, err
		}
		image := p.transferImage(ctx, part, folder, log)
		result.Parts = append(result.Parts, p.writePart(ctx, set, part, image, log))
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if p.config.PruneStaleParts {
		p.pruneStaleParts(ctx, set.ID, len(parts), log)
	}

	p.metrics.SetFinished()
	log.Info("finished uploading question set", zap.Int("parts", len(parts)))
	return result, nil
}

func (p *Publisher) transferImage(ctx context.Context, part models.QuestionPart, folder string, log *zap.Logger) ImageResult {
	filename := part.ImageFilename()
	res := ImageResult{LocalPath: filepath.Join(p.config.ImageDir, filename)}
	log = log.With(zap.String("suffix", part.Suffix), zap.String("local_path", res.LocalPath))

	info, err := p.fs.Stat(res.LocalPath)
	if errors.Is(err, os.ErrNotExist) {
		res.Status = ImageMissing
		p.metrics.Image(metrics.ResultMissing)
		log.Info("no source image found, storing null image")
		return res
	}
	if err != nil {
		return p.imageFailed(res, err, log)
	}
	if info.IsDir() {
		return p.imageFailed(res, fmt.Errorf("%s is a directory", res.LocalPath), log)
	}

	f, err := p.fs.Open(res.LocalPath)
	if err != nil {
		return p.imageFailed(res, err, log)
	}
	defer f.Close()

	storagePath := fmt.Sprintf("%s/%s/%s", p.config.ImagePrefix, folder, filename)
	if err := p.images.Upload(ctx, storagePath, f); err != nil {
		return p.imageFailed(res, err, log)
	}

	res.Status = ImageUploaded
	res.StoragePath = storagePath
	p.metrics.Image(metrics.ResultUploaded)
	log.Info("uploaded source image",
		zap.String("label", part.Label()),
		zap.String("path", storagePath),
		zap.String("size", humanize.Bytes(uint64(info.Size()))),
	)
	return res
}

func (p *Publisher) imageFailed(res ImageResult, err error, log *zap.Logger) ImageResult {
	res.Status = ImageFailed
	res.Err = err
	p.metrics.Image(metrics.ResultFailed)
	log.Warn("failed to upload source image", zap.Error(err))
	return res
}

func (p *Publisher) writePart(ctx context.Context, set *models.QuestionSet, part models.QuestionPart, image ImageResult, log *zap.Logger) PartResult {
	res := PartResult{DocID: part.DocID(), Suffix: part.Suffix, Image: image}

	var imagePath *string
	if image.Status == ImageUploaded {
		path := image.StoragePath
		imagePath = &path
	}

	log = log.With(zap.String("doc_id", res.DocID), zap.String("suffix", part.Suffix), zap.String("label", part.Label()))
	if err := p.sets.UpsertPart(ctx, set.ID, res.DocID, part.Document(set, imagePath)); err != nil {
		res.Err = err
		p.metrics.Document(metrics.KindPart, metrics.ResultFailed)
		log.Warn("failed to write question", zap.Error(err))
		return res
	}

	p.metrics.Document(metrics.KindPart, metrics.ResultWritten)
	log.Info("uploaded question")
	return res
}

// pruneStaleParts deletes part documents past the set's current length
func (p *Publisher) pruneStaleParts(ctx context.Context, setID string, count int, log *zap.Logger) {
	for idx := count; idx < models.MaxParts && ctx.Err() == nil; idx++ {
		docID := fmt.Sprintf("q%d", idx+1)
		if err := p.sets.DeletePart(ctx, setID, docID); err != nil {
			p.metrics.Document(metrics.KindPart, metrics.ResultFailed)
			log.Warn("failed to delete stale question", zap.String("doc_id", docID), zap.Error(err))
			continue
		}
		p.metrics.Document(metrics.KindPart, metrics.ResultDeleted)
	}
}
