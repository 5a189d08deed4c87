package loader

import (
	"encoding/json"
	"fmt"

	"certchamps/publisher/internal/models"

	"github.com/spf13/afero"
)

// LoadQuestionSets reads the question bank at path. The file must hold a
// JSON array of question sets; records are returned in file order.
func LoadQuestionSets(fs afero.Fs, path string) ([]models.QuestionSet, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}

	var sets []models.QuestionSet
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("failed to parse question bank %s: %w", path, err)
	}
	return sets, nil
}
