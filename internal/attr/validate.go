package attr

import (
	"fmt"
	"strings"

	"github.com/hlop3z/schemagen/internal/alerr"
)

// Validate checks every entry against the recognized attribute kinds.
// Entries are checked in order and the first violation is returned.
func Validate(attrs *Attrs, field string) error {
	for _, key := range attrs.Keys() {
		value, _ := attrs.Get(key)

		kind, ok := Lookup(key)
		if !ok {
			e := alerr.Newf(alerr.ErrUnknownAttribute, "unknown attribute %q on field %q", key, field).
				WithField(field).
				WithAttribute(key).
				WithNote("recognized attributes: " + strings.Join(Names(), ", "))
			if hint := alerr.SuggestSimilar(key, Names()); hint != "" {
				e.WithHelp(hint)
			}
			return e
		}

		if kind.RequiresValue() && value == "" {
			return alerr.Newf(alerr.ErrAttributeValue, "attribute %q on field %q requires a value", key, field).
				WithField(field).
				WithAttribute(key).
				WithHelp(fmt.Sprintf(`write it as %s("...")`, key))
		}
		if !kind.RequiresValue() && value != "" {
			return alerr.Newf(alerr.ErrAttributeValue, "attribute %q on field %q must not have a value", key, field).
				WithField(field).
				WithAttribute(key).
				With("value", value).
				WithHelp(fmt.Sprintf("write it as a bare %s", key))
		}

		if kind == ForeignKey {
			if _, err := ParseForeignKeyRef(value); err != nil {
				if e := alerr.As(err); e != nil {
					e.WithField(field).WithAttribute(key)
				}
				return err
			}
		}
	}
	return nil
}

// ParseAndValidate lexes an annotation and validates the result.
func ParseAndValidate(text, field string) (*Attrs, error) {
	attrs, err := Parse(text, field)
	if err != nil {
		return nil, err
	}
	if err := Validate(attrs, field); err != nil {
		return nil, err
	}
	return attrs, nil
}
