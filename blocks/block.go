package blocks

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrUnknownBlockIdentifier = errors.New("unknown block identifier")

const (
	MinecraftNamespace = "minecraft"
	UniversalNamespace = "universal_minecraft"
)

// Air is the block absent sections are filled with.
var Air = Block{Namespace: MinecraftNamespace, BaseName: "air"}

// Block identifies one kind of voxel content. Blocks are values: two blocks
// are the same block when all fields are equal, regardless of property
// order. The property map must not be modified after construction.
type Block struct {
	Namespace  string
	BaseName   string
	Properties map[string]string
}

func NewBlock(namespace string, baseName string, properties map[string]string) Block {
	var props map[string]string
	if len(properties) > 0 {
		props = make(map[string]string, len(properties))
		for k, v := range properties {
			props[k] = v
		}
	}

	return Block{
		Namespace:  namespace,
		BaseName:   baseName,
		Properties: props,
	}
}

// ParseBlock splits a "namespace:base_name" identifier.
func ParseBlock(identifier string, properties map[string]string) (Block, error) {
	namespace, baseName, ok := strings.Cut(identifier, ":")
	if !ok || namespace == "" || baseName == "" {
		return Block{}, fmt.Errorf("%w: %q", ErrUnknownBlockIdentifier, identifier)
	}

	return NewBlock(namespace, baseName, properties), nil
}

func (b Block) Identifier() string {
	return b.Namespace + ":" + b.BaseName
}

// Key returns a canonical string that is equal exactly for equal blocks.
// Property keys are sorted. Parts holding a delimiter are quoted, so no two
// different blocks share a key.
func (b Block) Key() string {
	var sb strings.Builder
	writeKeyPart(&sb, b.Namespace)
	sb.WriteByte(':')
	writeKeyPart(&sb, b.BaseName)
	if len(b.Properties) == 0 {
		return sb.String()
	}

	keys := make([]string, 0, len(b.Properties))
	for k := range b.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeKeyPart(&sb, k)
		sb.WriteByte('=')
		writeKeyPart(&sb, b.Properties[k])
	}
	sb.WriteByte(']')
	return sb.String()
}

func writeKeyPart(sb *strings.Builder, part string) {
	if strings.ContainsAny(part, `:[],="`) {
		sb.WriteString(strconv.Quote(part))
		return
	}
	sb.WriteString(part)
}

func (b Block) Equal(other Block) bool {
	if b.Namespace != other.Namespace || b.BaseName != other.BaseName || len(b.Properties) != len(other.Properties) {
		return false
	}

	for k, v := range b.Properties {
		if ov, ok := other.Properties[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (b Block) Less(other Block) bool {
	return b.Key() < other.Key()
}

func (b Block) IsAir() bool {
	return b.Equal(Air)
}

func (b Block) String() string {
	return b.Key()
}
