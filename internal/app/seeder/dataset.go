package seeder

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

//go:embed seed.yaml
var defaultDataset []byte

// Dataset is the reference content to load.
type Dataset struct {
	Regions []RegionSeed `yaml:"regions"`
	Sources []SourceSeed `yaml:"sources"`
	Entries []EntrySeed  `yaml:"entries"`
}

// RegionSeed is a dialect region keyed by slug.
type RegionSeed struct {
	Name        string  `yaml:"name"`
	Slug        string  `yaml:"slug"`
	Description *string `yaml:"description"`
	Country     string  `yaml:"country"`
	County      *string `yaml:"county"`
}

// SourceSeed is a citation source keyed by title.
type SourceSeed struct {
	Title     string  `yaml:"title"`
	Author    *string `yaml:"author"`
	Publisher *string `yaml:"publisher"`
	Year      *int    `yaml:"year"`
	ISBN      *string `yaml:"isbn"`
	URL       *string `yaml:"url"`
}

// EntrySeed is an entry with its content, keyed by (headword, part_of_speech).
type EntrySeed struct {
	Headword     string           `yaml:"headword"`
	PartOfSpeech string           `yaml:"part_of_speech"`
	Etymology    *string          `yaml:"etymology"`
	Notes        *string          `yaml:"notes"`
	UsageStatus  string           `yaml:"usage_status"`
	Definitions  []DefinitionSeed `yaml:"definitions"`
	Variants     []VariantSeed    `yaml:"variants"`
	Regions      []string         `yaml:"regions"`
	Sources      []SourceRef      `yaml:"sources"`
}

type DefinitionSeed struct {
	Text       string  `yaml:"text"`
	Example    *string `yaml:"example"`
	Notes      *string `yaml:"notes"`
	Popularity int     `yaml:"popularity"`
}

type VariantSeed struct {
	Spelling      string  `yaml:"spelling"`
	Pronunciation *string `yaml:"pronunciation"`
	Notes         *string `yaml:"notes"`
}

// SourceRef cites a source from the sources list by title.
type SourceRef struct {
	Title string  `yaml:"title"`
	Page  *string `yaml:"page"`
}

// LoadDataset reads the dataset at path, or the embedded default when path
// is empty. The result is validated.
func LoadDataset(path string) (*Dataset, error) {
	data := defaultDataset
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("seeder dataset: read %s: %w", path, err)
		}
		data = b
	}
	return ParseDataset(data)
}

// ParseDataset decodes and validates a YAML dataset. Unknown keys are rejected.
func ParseDataset(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("seeder dataset: decode: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks required fields, uniqueness of keys and that every
// region and source reference resolves.
func (d *Dataset) Validate() error {
	var errs []domain.FieldError
	add := func(field, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}

	regions := make(map[string]bool, len(d.Regions))
	for i, r := range d.Regions {
		field := fmt.Sprintf("regions[%d]", i)
		if strings.TrimSpace(r.Name) == "" {
			add(field+".name", "required")
		}
		if r.Slug == "" {
			add(field+".slug", "required")
		} else if regions[r.Slug] {
			add(field+".slug", "duplicate "+r.Slug)
		}
		regions[r.Slug] = true
	}

	sources := make(map[string]bool, len(d.Sources))
	for i, s := range d.Sources {
		field := fmt.Sprintf("sources[%d].title", i)
		if strings.TrimSpace(s.Title) == "" {
			add(field, "required")
		} else if sources[s.Title] {
			add(field, "duplicate "+s.Title)
		}
		sources[s.Title] = true
	}

	entries := make(map[domain.EntryKey]bool, len(d.Entries))
	for i, e := range d.Entries {
		field := fmt.Sprintf("entries[%d]", i)
		if strings.TrimSpace(e.Headword) == "" {
			add(field+".headword", "required")
		}
		if strings.TrimSpace(e.PartOfSpeech) == "" {
			add(field+".part_of_speech", "required")
		}
		key := domain.EntryKey{Headword: e.Headword, PartOfSpeech: e.PartOfSpeech}
		if entries[key] {
			add(field, "duplicate "+e.Headword+" ("+e.PartOfSpeech+")")
		}
		entries[key] = true

		if e.UsageStatus != "" && !domain.UsageStatus(e.UsageStatus).IsValid() {
			add(field+".usage_status", "invalid value")
		}
		for j, def := range e.Definitions {
			if strings.TrimSpace(def.Text) == "" {
				add(fmt.Sprintf("%s.definitions[%d].text", field, j), "required")
			}
		}
		for j, v := range e.Variants {
			if strings.TrimSpace(v.Spelling) == "" {
				add(fmt.Sprintf("%s.variants[%d].spelling", field, j), "required")
			}
		}
		for j, slug := range e.Regions {
			if !regions[slug] {
				add(fmt.Sprintf("%s.regions[%d]", field, j), "unknown region "+slug)
			}
		}
		for j, ref := range e.Sources {
			if !sources[ref.Title] {
				add(fmt.Sprintf("%s.sources[%d]", field, j), "unknown source "+ref.Title)
			}
		}
	}

	return domain.CollectValidation(errs)
}
