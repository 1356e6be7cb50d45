package content

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingLabel is rendered in place of a target that no longer resolves.
const MissingLabel = "Object does not exist"

// Ref points at a row in any registered table by (kind, id).
// It is a plain value: holding a Ref never keeps the target alive.
type Ref struct {
	Kind string `json:"kind"`
	ID   uint   `json:"id"`
}

func (r Ref) String() string {
	return r.Kind + ":" + strconv.FormatUint(uint64(r.ID), 10)
}

func (r Ref) IsZero() bool {
	return r.Kind == "" && r.ID == 0
}

// ParseRef builds a Ref from path segments such as ("user", "42").
func ParseRef(kind, id string) (Ref, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return Ref{}, fmt.Errorf("empty kind")
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return Ref{}, fmt.Errorf("invalid id %q", id)
	}
	return Ref{Kind: kind, ID: uint(n)}, nil
}

// Resolvable is implemented by every model that can be the target of a
// report, comment or media entry.
type Resolvable interface {
	ContentKind() string
	ContentID() uint
	String() string
}

// RefOf captures the (kind, id) pair of a live entity.
func RefOf(r Resolvable) Ref {
	return Ref{Kind: r.ContentKind(), ID: r.ContentID()}
}

// ImageField is one image-bearing attribute of an entity. File is the
// stored object name, empty when nothing is attached.
type ImageField struct {
	Name string
	File string
}

// ImageBearing entities expose their image attributes to the media indexer.
type ImageBearing interface {
	Resolvable
	ImageFields() []ImageField
}

// FieldFilter restricts which image attributes get indexed.
// Exclude wins over Include; an empty Include means every field.
type FieldFilter struct {
	Include []string
	Exclude []string
}

func (f FieldFilter) Allows(field string) bool {
	for _, name := range f.Exclude {
		if name == field {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, name := range f.Include {
		if name == field {
			return true
		}
	}
	return false
}
