package aliasing

import (
	"log/slog"
	"strings"
)

type (
	// ColumnSynonym maps an additional display-name synonym onto one of
	// the closed recognised snake_case fields (columns.go). Operators use
	// this to accept client-specific column labels ("Sex" for
	// "organism_sex") without changing the built-in UI name bijection.
	ColumnSynonym struct {
		Synonym string `yaml:"synonym"`
		Field   string `yaml:"field"`
	}

	// Resolver resolves operator-supplied column-name synonyms to
	// recognised snake_case field names. Thread-safe for concurrent use
	// (immutable after construction).
	//
	// Resolution order: exact built-in UI name or snake name (columns.go)
	// first, then registered synonyms, case-insensitively. First matching
	// synonym wins when the config lists duplicates.
	Resolver struct {
		synonyms map[string]string
	}
)

// NewResolver creates a resolver from config with validation.
//
// Validates:
//   - Synonyms with an empty synonym or field are skipped with a warning.
//   - Synonyms naming an unrecognised field are skipped with a warning.
//
// Returns a resolver containing only valid synonyms. If cfg is nil or has
// no synonyms, returns a no-op resolver (falls back to built-in names).
func NewResolver(cfg *Config) *Resolver {
	if cfg == nil || len(cfg.ColumnSynonyms) == 0 {
		return &Resolver{synonyms: map[string]string{}}
	}

	valid := make(map[string]string, len(cfg.ColumnSynonyms))

	for _, cs := range cfg.ColumnSynonyms {
		synonym := strings.TrimSpace(cs.Synonym)
		field := strings.TrimSpace(cs.Field)

		if synonym == "" {
			slog.Warn("Skipping column synonym with empty synonym string")

			continue
		}

		if field == "" {
			slog.Warn("Skipping column synonym with empty field",
				slog.String("synonym", synonym))

			continue
		}

		if !IsRecognised(field) {
			slog.Warn("Skipping column synonym naming an unrecognised field",
				slog.String("synonym", synonym),
				slog.String("field", field))

			continue
		}

		key := strings.ToLower(synonym)
		if _, exists := valid[key]; exists {
			continue
		}

		valid[key] = field

		slog.Debug("Registered column synonym",
			slog.String("synonym", synonym),
			slog.String("field", field))
	}

	return &Resolver{synonyms: valid}
}

// AliasCount returns the number of registered synonyms.
func (r *Resolver) AliasCount() int {
	if r == nil {
		return 0
	}

	return len(r.synonyms)
}

// Resolve maps a column name supplied by a client to its recognised
// snake_case field name. It checks the built-in UI name bijection and the
// snake name itself first, then registered synonyms case-insensitively.
// Returns ("", false) if name matches none of those.
func (r *Resolver) Resolve(name string) (string, bool) {
	if field, ok := SnakeName(name); ok {
		return field, true
	}

	if IsRecognised(name) {
		return name, true
	}

	if r == nil || len(r.synonyms) == 0 {
		return "", false
	}

	field, ok := r.synonyms[strings.ToLower(strings.TrimSpace(name))]

	return field, ok
}
