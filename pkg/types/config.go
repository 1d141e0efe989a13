// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SplitMode selects how the compound decomposer is driven.
type SplitMode string

const (
	// SplitOnlyNouns restricts automaton matches to dictionary nouns.
	SplitOnlyNouns SplitMode = "only-nouns"
	// SplitAny allows any dictionary entry as a component.
	SplitAny SplitMode = "any"
	// SplitCombined runs both restricted and unrestricted passes and
	// concatenates their results.
	SplitCombined SplitMode = "combined"
)

// SingularizePolicy controls singularization of compound components.
type SingularizePolicy string

const (
	// SingularizeOnlyNouns singularizes components only when the compound
	// itself is a noun or proper noun.
	SingularizeOnlyNouns SingularizePolicy = "only-nouns"
	// SingularizeAll always singularizes components.
	SingularizeAll SingularizePolicy = "all"
	// SingularizeNone never singularizes components.
	SingularizeNone SingularizePolicy = "none"
)

// SplitOptions configures compound-word decomposition.
type SplitOptions struct {
	// Enabled turns decomposition on. Only meaningful for German input.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Mode selects the decomposer pass: only-nouns, any, or combined.
	Mode SplitMode `json:"mode" yaml:"mode"`

	// Singularize controls singularization of split components.
	Singularize SingularizePolicy `json:"singularize" yaml:"singularize"`

	// MaskUnknown drops components that are not present in the dictionary.
	MaskUnknown bool `json:"mask_unknown" yaml:"mask_unknown"`

	// PreserveCompound keeps the whole compound's lemma in the output set
	// alongside its components.
	PreserveCompound bool `json:"preserve_compound" yaml:"preserve_compound"`

	// SkipMergeFractions emits raw dissection fragments instead of merged
	// components.
	SkipMergeFractions bool `json:"skip_merge_fractions" yaml:"skip_merge_fractions"`

	// AddPartsToWordlist includes split components in per-sentence
	// wordlist columns.
	AddPartsToWordlist bool `json:"add_parts_to_wordlist" yaml:"add_parts_to_wordlist"`

	// TargetTags is the set of POS tags eligible for automaton splitting.
	TargetTags map[POS]bool `json:"target_tags" yaml:"target_tags"`
}

// ExtractOptions is the full configuration record consumed by the lemma
// extraction pipeline. It is passed by value; the pipeline never mutates it.
type ExtractOptions struct {
	// Language is the input language: "de" or "en".
	Language string `json:"language" yaml:"language"`

	// FixGenitive enables the German genitive-s correction for noun
	// lemmas, validated against the dictionary.
	FixGenitive bool `json:"fix_genitive" yaml:"fix_genitive"`

	// ForceNounCaps capitalizes all noun and proper-noun lemmas per
	// German orthography. German only.
	ForceNounCaps bool `json:"force_noun_caps" yaml:"force_noun_caps"`

	// ForceProperNounCaps capitalizes proper-noun lemmas.
	ForceProperNounCaps bool `json:"force_proper_noun_caps" yaml:"force_proper_noun_caps"`

	// Split configures compound decomposition.
	Split SplitOptions `json:"split" yaml:"split"`
}

// OutputOptions configures flashcard TSV generation.
type OutputOptions struct {
	// AddHeader prepends the full Anki column header row.
	AddHeader bool `json:"add_header" yaml:"add_header"`

	// AddSourceWordCol fills the inflected-surface-form column.
	AddSourceWordCol bool `json:"add_source_word_col" yaml:"add_source_word_col"`

	// AddWordlistCol fills the per-sentence wordlist column.
	AddWordlistCol bool `json:"add_wordlist_col" yaml:"add_wordlist_col"`

	// WordlistUseBR joins wordlist entries with <br> instead of newlines.
	WordlistUseBR bool `json:"wordlist_use_br" yaml:"wordlist_use_br"`

	// ContextSize is the number of neighbouring text units included as
	// left/right context (default 1).
	ContextSize int `json:"context_size" yaml:"context_size"`
}

// ServeConfig holds settings for the HTTP API.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins is the CORS origin allow-list; empty means "*".
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// ResourceConfig points at the flat-file language resources.
type ResourceConfig struct {
	// DictionaryFile is the word list used for dictionary lookups and as
	// the decomposer automaton source.
	DictionaryFile string `json:"dictionary_file" yaml:"dictionary_file"`

	// LexiconFile backs the built-in analyzer.
	LexiconFile string `json:"lexicon_file" yaml:"lexicon_file"`

	// OverrideFile is the TSV of lemma override rules.
	OverrideFile string `json:"override_file" yaml:"override_file"`

	// FrequencyIndexFile is the CSV whose first-column order ranks lemmas.
	FrequencyIndexFile string `json:"frequency_index_file" yaml:"frequency_index_file"`

	// CardLogFile is the SQLite database recording exported lemmas.
	CardLogFile string `json:"card_log_file" yaml:"card_log_file"`
}

// PipelineConfig groups all configuration for the kardenwort pipeline.
type PipelineConfig struct {
	Extract   ExtractOptions `json:"extract" yaml:"extract"`
	Output    OutputOptions  `json:"output" yaml:"output"`
	Serve     ServeConfig    `json:"serve" yaml:"serve"`
	Resources ResourceConfig `json:"resources" yaml:"resources"`
}
