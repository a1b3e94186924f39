package dictionary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takaryo1010/privdict/catalog"
)

func rec(group, element, vr, vm, name, owner string) catalog.Record {
	return catalog.Record{
		FieldGroup:   group,
		FieldElement: element,
		FieldVR:      vr,
		FieldVM:      vm,
		FieldName:    name,
		FieldOwner:   owner,
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		records []catalog.Record
		retired string
		want    PrivateDictionary
	}{
		{
			name: "later record overwrites earlier one",
			records: []catalog.Record{
				rec("0009", "0010", "LO", "1", "?", "ACME"),
				rec("0009", "0011", "SH", "1", "Foo", "ACME"),
				rec("0009", "0010", "LO", "1", "Bar", "ACME"),
			},
			want: PrivateDictionary{
				"ACME": {
					"00090010": {"LO", "1", "Bar", ""},
					"00090011": {"SH", "1", "Foo", ""},
				},
			},
		},
		{
			name: "unknown placeholder is replaced",
			records: []catalog.Record{
				rec("0019", "xx10", "DS", "1-n", "?", "GEMS_ACQU_01"),
			},
			want: PrivateDictionary{
				"GEMS_ACQU_01": {"0019xx10": {"DS", "1-n", "Unknown", ""}},
			},
		},
		{
			name: "names containing a question mark are kept",
			records: []catalog.Record{
				rec("0029", "1010", "OB", "1", "??", "SIEMENS CSA HEADER"),
				rec("0029", "1020", "OB", "1", " ?", "SIEMENS CSA HEADER"),
			},
			want: PrivateDictionary{
				"SIEMENS CSA HEADER": {
					"00291010": {"OB", "1", "??", ""},
					"00291020": {"OB", "1", " ?", ""},
				},
			},
		},
		{
			name: "owners are kept apart",
			records: []catalog.Record{
				rec("0009", "0010", "LO", "1", "A", "ACME"),
				rec("0009", "0010", "SH", "2", "B", "OTHER"),
			},
			want: PrivateDictionary{
				"ACME":  {"00090010": {"LO", "1", "A", ""}},
				"OTHER": {"00090010": {"SH", "2", "B", ""}},
			},
		},
		{
			name:    "retired marker is applied to every definition",
			records: []catalog.Record{rec("0009", "0010", "LO", "1", "A", "ACME")},
			retired: "R",
			want:    PrivateDictionary{"ACME": {"00090010": {"LO", "1", "A", "R"}}},
		},
		{
			name: "extra attributes are ignored",
			records: []catalog.Record{
				{"group": "0009", "element": "0010", "vr": "LO", "vm": "1", "name": "A", "owner": "ACME", "retired": "true"},
			},
			want: PrivateDictionary{"ACME": {"00090010": {"LO", "1", "A", ""}}},
		},
		{
			name:    "empty input",
			records: []catalog.Record{},
			want:    PrivateDictionary{},
		},
		{
			name:    "nil input",
			records: nil,
			want:    PrivateDictionary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.records, tt.retired)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildMalformedRecord(t *testing.T) {
	for _, field := range RequiredFields {
		t.Run(field, func(t *testing.T) {
			broken := rec("0009", "0011", "SH", "1", "Foo", "ACME")
			delete(broken, field)
			records := []catalog.Record{
				rec("0009", "0010", "LO", "1", "Bar", "ACME"),
				broken,
			}

			got, err := Build(records, DefaultRetired)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrMalformedRecord))

			var me *MalformedRecordError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, field, me.Field)
			assert.Equal(t, 1, me.Index)
			assert.Contains(t, err.Error(), `entry 1: missing required attribute "`+field+`"`)
		})
	}
}

func TestBuildEmptyValuesAreNotMissing(t *testing.T) {
	got, err := Build([]catalog.Record{rec("", "", "", "", "", "")}, DefaultRetired)
	require.NoError(t, err)
	assert.Equal(t, PrivateDictionary{"": {"": {}}}, got)
}

func TestBuildIsDeterministic(t *testing.T) {
	records := []catalog.Record{
		rec("0009", "0010", "LO", "1", "?", "ACME"),
		rec("0011", "0010", "US", "1", "X", "ZETA"),
		rec("0009", "0010", "LO", "1", "Bar", "ACME"),
	}
	first, err := Build(records, DefaultRetired)
	require.NoError(t, err)
	second, err := Build(records, DefaultRetired)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewTagKey(t *testing.T) {
	tests := []struct {
		group, element string
		want           TagKey
	}{
		{"0009", "0010", "00090010"},
		{"0019", "xx10", "0019xx10"},
		{"7FE1", "1001", "7FE11001"},
		{"", "0010", "0010"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewTagKey(tt.group, tt.element))
	}
}

func TestNewEntryExtra(t *testing.T) {
	r := rec("0009", "0010", "LO", "1", "?", "ACME")
	r["retired"] = "true"
	e, err := NewEntry(r)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"retired": "true"}, e.Extra)
	assert.Equal(t, TagKey("00090010"), e.Key())
	assert.Equal(t, TagDefinition{"LO", "1", "Unknown", ""}, e.Definition(DefaultRetired))

	e, err = NewEntry(rec("0009", "0010", "LO", "1", "A", "ACME"))
	require.NoError(t, err)
	assert.Nil(t, e.Extra)

	_, err = NewEntry(catalog.Record{})
	var me *MalformedRecordError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, FieldGroup, me.Field)
	assert.Equal(t, -1, me.Index)
}

func TestLookupAndStats(t *testing.T) {
	d := PrivateDictionary{
		"ZETA": {"00110010": {"US", "1", "X", ""}},
		"ACME": {
			"00090011": {"SH", "1", "Foo", ""},
			"00090010": {"LO", "1", "Bar", ""},
		},
	}

	assert.Equal(t, []string{"ACME", "ZETA"}, d.Owners())
	assert.Equal(t, []TagKey{"00090010", "00090011"}, d["ACME"].Keys())
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, Stats{Owners: 2, Tags: 3}, d.Stats())

	def, ok := d.Lookup("ACME", "00090011")
	assert.True(t, ok)
	assert.Equal(t, "Foo", def.Name)

	_, ok = d.Lookup("ACME", "00090099")
	assert.False(t, ok)
	_, ok = d.Lookup("NOBODY", "00090010")
	assert.False(t, ok)

	assert.Empty(t, PrivateDictionary{}.Owners())
}
