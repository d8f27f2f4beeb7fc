package exifmeta

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidField = errors.New("invalid metadata format")

// FieldError names the entry that could not be split into KEY=VALUE.
type FieldError struct {
	Entry string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidField, e.Entry)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

// Field is a single metadata tag assignment.
type Field struct {
	Key   string `yaml:"key" toml:"key"`
	Value string `yaml:"value" toml:"value"`
}

func (f Field) String() string {
	return f.Key + "=" + f.Value
}

// Arg renders the field as a single exiftool assignment, e.g. -Author=John.
func (f Field) Arg() string {
	return "-" + f.String()
}

// ParseField splits s on its only "=". Entries with no "=" or more than one
// are rejected.
func ParseField(s string) (Field, error) {
	if strings.Count(s, "=") != 1 {
		return Field{}, &FieldError{Entry: s}
	}
	i := strings.IndexByte(s, '=')
	return Field{Key: s[:i], Value: s[i+1:]}, nil
}

// Fields is an ordered set of fields with unique keys.
type Fields []Field

func DefaultFields() Fields {
	return Fields{
		{Key: "Author", Value: "Unknown Author"},
		{Key: "Copyright", Value: "All rights reserved"},
	}
}

func (fs Fields) Clone() Fields {
	return append(Fields(nil), fs...)
}

func (fs Fields) Get(key string) (string, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func (fs Fields) Keys() []string {
	keys := make([]string, 0, len(fs))
	for _, f := range fs {
		keys = append(keys, f.Key)
	}
	return keys
}

// MergeFields overlays the KEY=VALUE entries on defaults. Overridden keys keep
// their default position; new keys follow in input order. defaults is not
// modified. The first malformed entry stops the merge with a *FieldError.
func MergeFields(defaults Fields, entries []string) (Fields, error) {
	merged := defaults.Clone()
	for _, entry := range entries {
		field, err := ParseField(entry)
		if err != nil {
			return nil, err
		}
		replaced := false
		for i := range merged {
			if merged[i].Key == field.Key {
				merged[i].Value = field.Value
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, field)
		}
	}
	return merged, nil
}
