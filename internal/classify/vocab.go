package classify

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed vocab.toml
var vocabTOML []byte

// Vocabulary holds the fixed heuristic tables used by the classifier. The
// tables live in vocab.toml so they can be revised without touching the
// matching logic.
type Vocabulary struct {
	Units         []string          `toml:"units"`
	DisplayNoise  []string          `toml:"display_noise"`
	MusicNoise    []string          `toml:"music_noise"`
	Excluded      []string          `toml:"excluded"`
	TagKeywords   []string          `toml:"tag_keywords"`
	Abbreviations map[string]string `toml:"abbreviations"`
}

var vocab = mustLoadVocabulary()

func mustLoadVocabulary() Vocabulary {
	var v Vocabulary
	if err := toml.Unmarshal(vocabTOML, &v); err != nil {
		panic(fmt.Sprintf("classify: decode vocab.toml: %v", err))
	}
	return v
}

// LoadVocabulary decodes the embedded vocabulary tables. Exposed so tests can
// verify the shipped data.
func LoadVocabulary() (Vocabulary, error) {
	var v Vocabulary
	if err := toml.Unmarshal(vocabTOML, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("decode vocab.toml: %w", err)
	}
	return v, nil
}
