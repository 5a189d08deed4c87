package topics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"certchamps/publisher/internal/models"
	"certchamps/publisher/internal/repositories"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// pages load their papers from a level only when it lists this section
const papersSection = "papers"

// SeedFile describes the topic lists of one subject level, e.g.
//
//	path: questions/leavingcert/subjects/maths/levels/higher
//	topics: [Algebra, Calculus]
//	subTopics: [Cubics, Integration]
type SeedFile struct {
	Path      string   `yaml:"path"`
	Topics    []string `yaml:"topics"`
	SubTopics []string `yaml:"subTopics"`
	Sections  []string `yaml:"sections"`
}

// LoadSeedFile reads and validates a seed file.
func LoadSeedFile(fs afero.Fs, path string) (*SeedFile, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return &seed, nil
}

// Validate checks that Path names a document (an even number of
// collection/document segments) and that there is something to write.
func (s *SeedFile) Validate() error {
	segments := strings.Split(strings.Trim(s.Path, "/"), "/")
	if s.Path == "" || len(segments)%2 != 0 {
		return fmt.Errorf("path %q is not a document path", s.Path)
	}
	for _, seg := range segments {
		if seg == "" {
			return fmt.Errorf("path %q has an empty segment", s.Path)
		}
	}
	if len(s.Topics) == 0 && len(s.SubTopics) == 0 {
		return errors.New("no topics or subTopics to seed")
	}
	return nil
}

// Document builds the merge payload. The papers section is always listed.
func (s *SeedFile) Document() *models.TopicsDocument {
	sections := append([]string{}, s.Sections...)
	found := false
	for _, sec := range sections {
		if sec == papersSection {
			found = true
			break
		}
	}
	if !found {
		sections = append(sections, papersSection)
	}

	return &models.TopicsDocument{
		Topics:    nonNil(s.Topics),
		SubTopics: nonNil(s.SubTopics),
		Sections:  sections,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

type Seeder struct {
	repo   repositories.TopicRepository
	logger *zap.Logger
}

func NewSeeder(repo repositories.TopicRepository, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

// Seed merges the seed file's lists onto its document.
func (s *Seeder) Seed(ctx context.Context, seed *SeedFile) error {
	doc := seed.Document()
	path := strings.Trim(seed.Path, "/")
	if err := s.repo.MergeTopics(ctx, path, doc); err != nil {
		return fmt.Errorf("failed to seed topics at %s: %w", path, err)
	}
	s.logger.Info("seeded topics",
		zap.String("path", path),
		zap.Int("topics", len(doc.Topics)),
		zap.Int("sub_topics", len(doc.SubTopics)),
	)
	return nil
}
