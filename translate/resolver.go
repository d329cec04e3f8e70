package translate

import (
	"fmt"

	"github.com/richgrov/worldcodec/format"
)

type resolverEntry struct {
	valid      format.Validator
	translator format.Translator
}

// TableResolver picks the first added translator whose version range holds
// the key, or Fallback when none does.
type TableResolver struct {
	entries []resolverEntry

	// Fallback is used for keys no entry matches. Nil makes them an error.
	Fallback format.Translator
}

var _ format.Resolver = (*TableResolver)(nil)

// Add registers t for versions of formatName in [from, to). A nil bound is
// open.
func (r *TableResolver) Add(formatName string, from, to format.Version, t format.Translator) {
	r.entries = append(r.entries, resolverEntry{
		valid:      format.VersionRange(formatName, from, to),
		translator: t,
	})
}

func (r *TableResolver) Len() int {
	return len(r.entries)
}

func (r *TableResolver) Translator(key format.Key) (format.Translator, error) {
	for _, e := range r.entries {
		if e.valid(key) {
			return e.translator, nil
		}
	}

	if r.Fallback != nil {
		return r.Fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", format.ErrNoTranslator, key)
}
