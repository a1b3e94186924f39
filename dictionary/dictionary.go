// Package dictionary builds the private dictionary lookup table: tag
// definitions grouped by owner (the Private Creator) and keyed by the
// concatenated group and element codes.
package dictionary

import (
	"sort"

	"github.com/takaryo1010/privdict/catalog"
)

const (
	// UnknownPlaceholder is the catalog's name for tags with no known meaning.
	UnknownPlaceholder = "?"
	// UnknownName replaces UnknownPlaceholder in built definitions.
	UnknownName = "Unknown"
	// DefaultRetired marks that no retirement information is available.
	DefaultRetired = ""
)

// Required record attributes.
const (
	FieldGroup   = "group"
	FieldElement = "element"
	FieldVR      = "vr"
	FieldVM      = "vm"
	FieldName    = "name"
	FieldOwner   = "owner"
)

// RequiredFields lists the attributes every catalog entry must carry, in check order.
var RequiredFields = []string{FieldGroup, FieldElement, FieldVR, FieldVM, FieldName, FieldOwner}

// TagKey identifies a tag slot within one owner's namespace.
type TagKey string

// NewTagKey concatenates group and element verbatim.
func NewTagKey(group, element string) TagKey {
	return TagKey(group + element)
}

// TagDefinition is the (VR, VM, name, retired) tuple stored per tag.
type TagDefinition struct {
	VR      string
	VM      string
	Name    string
	Retired string
}

// OwnerDictionary maps tag keys to definitions for a single owner.
type OwnerDictionary map[TagKey]TagDefinition

// PrivateDictionary maps owner names to their tag definitions.
type PrivateDictionary map[string]OwnerDictionary

// Entry is a catalog record with its required attributes validated.
type Entry struct {
	Group   string
	Element string
	VR      string
	VM      string
	Name    string
	Owner   string
	// Extra holds every attribute that is not required, e.g. "retired".
	Extra map[string]string
}

// NewEntry validates rec. A missing attribute yields a *MalformedRecordError
// with Index -1; Build fills in the record position.
func NewEntry(rec catalog.Record) (Entry, error) {
	for _, field := range RequiredFields {
		if _, ok := rec[field]; !ok {
			return Entry{}, &MalformedRecordError{Index: -1, Field: field}
		}
	}

	e := Entry{
		Group:   rec[FieldGroup],
		Element: rec[FieldElement],
		VR:      rec[FieldVR],
		VM:      rec[FieldVM],
		Name:    rec[FieldName],
		Owner:   rec[FieldOwner],
	}
	for k, v := range rec {
		if isRequired(k) {
			continue
		}
		if e.Extra == nil {
			e.Extra = make(map[string]string)
		}
		e.Extra[k] = v
	}
	return e, nil
}

func isRequired(field string) bool {
	for _, f := range RequiredFields {
		if f == field {
			return true
		}
	}
	return false
}

// Key returns the entry's tag key.
func (e Entry) Key() TagKey {
	return NewTagKey(e.Group, e.Element)
}

// Definition returns the stored tuple for the entry.
func (e Entry) Definition(retired string) TagDefinition {
	return TagDefinition{
		VR:      e.VR,
		VM:      e.VM,
		Name:    NormalizeName(e.Name),
		Retired: retired,
	}
}

// NormalizeName maps the catalog's "?" placeholder to UnknownName.
func NormalizeName(name string) string {
	if name == UnknownPlaceholder {
		return UnknownName
	}
	return name
}

// Build validates every record and groups the definitions by owner.
// Later records overwrite earlier ones with the same owner and tag key.
// On error no dictionary is returned.
func Build(records []catalog.Record, retired string) (PrivateDictionary, error) {
	entries := make([]Entry, 0, len(records))
	for i, rec := range records {
		e, err := NewEntry(rec)
		if err != nil {
			if me, ok := err.(*MalformedRecordError); ok {
				me.Index = i
			}
			return nil, err
		}
		entries = append(entries, e)
	}
	return BuildEntries(entries, retired), nil
}

// BuildEntries groups already validated entries by owner.
func BuildEntries(entries []Entry, retired string) PrivateDictionary {
	dict := make(PrivateDictionary)
	for _, e := range entries {
		owner, ok := dict[e.Owner]
		if !ok {
			owner = make(OwnerDictionary)
			dict[e.Owner] = owner
		}
		owner[e.Key()] = e.Definition(retired)
	}
	return dict
}

// Owners returns the owner names in ascending order.
func (d PrivateDictionary) Owners() []string {
	owners := make([]string, 0, len(d))
	for owner := range d {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

// Lookup returns the definition registered by owner for key.
func (d PrivateDictionary) Lookup(owner string, key TagKey) (TagDefinition, bool) {
	if tags, ok := d[owner]; ok {
		def, found := tags[key]
		return def, found
	}
	return TagDefinition{}, false
}

// Len returns the number of tag definitions across all owners.
func (d PrivateDictionary) Len() int {
	n := 0
	for _, tags := range d {
		n += len(tags)
	}
	return n
}

// Keys returns the owner's tag keys in ascending order.
func (o OwnerDictionary) Keys() []TagKey {
	keys := make([]TagKey, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Stats summarizes a dictionary.
type Stats struct {
	Owners int
	Tags   int
}

// Stats returns owner and tag counts for d.
func (d PrivateDictionary) Stats() Stats {
	return Stats{Owners: len(d), Tags: d.Len()}
}
