package format

import "fmt"

// Registry resolves version keys to codecs. It is immutable once built, so
// concurrent lookups need no locking.
type Registry struct {
	codecs []*Codec
	byName map[string]*Codec
}

// NewRegistry registers codecs in the given order. Resolution tries them in
// that order, so a narrower codec must come before a broader one that also
// accepts its versions.
func NewRegistry(codecs ...*Codec) (*Registry, error) {
	registry := &Registry{
		codecs: make([]*Codec, 0, len(codecs)),
		byName: make(map[string]*Codec, len(codecs)),
	}

	for _, codec := range codecs {
		if _, ok := registry.byName[codec.name]; ok {
			return nil, fmt.Errorf("codec %s registered twice", codec.name)
		}
		registry.codecs = append(registry.codecs, codec)
		registry.byName[codec.name] = codec
	}

	return registry, nil
}

// Resolve returns the first registered codec valid for key.
func (registry *Registry) Resolve(key Key) (*Codec, error) {
	for _, codec := range registry.codecs {
		if codec.IsValid(key) {
			return codec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoMatchingCodec, key)
}

// Detect resolves the codec for a raw chunk, preferring the version the
// chunk stores over the one in key. key.Format must name the chunk's format.
func (registry *Registry) Detect(key Key, data []byte) (*Codec, Key, error) {
	for _, codec := range registry.codecs {
		stored, err := codec.impl.TranslatorKey(key, data)
		if err != nil || stored.Format != key.Format {
			continue
		}
		if resolved, err := registry.Resolve(stored); err == nil {
			return resolved, stored, nil
		}
	}

	codec, err := registry.Resolve(key)
	if err != nil {
		return nil, Key{}, err
	}
	return codec, key, nil
}

func (registry *Registry) Get(name string) (*Codec, bool) {
	codec, ok := registry.byName[name]
	return codec, ok
}

// Codecs returns the registered codecs in registration order.
func (registry *Registry) Codecs() []*Codec {
	out := make([]*Codec, len(registry.codecs))
	copy(out, registry.codecs)
	return out
}
