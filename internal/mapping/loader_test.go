package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
version: "1"
mappers:
  - name: address
    fields:
      city: city
      zip: postal.code
  - name: user
    description: flattens a customer
    defaults:
      role: guest
      contact:
        email: unknown
    fields:
      name: profile.name
      role: account.role
      shout: {$transform: upper, $from: profile.name}
      tags: tags.[].label
      address: {$mapper: address}
      contact:
        email: emails.[0]
`

func TestParse(t *testing.T) {
	mf, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, "1", mf.Version)
	require.Len(t, mf.Mappers, 2)

	user := mf.Mappers[1]
	assert.Equal(t, "user", user.Name)
	assert.Equal(t, "flattens a customer", user.Description)
	assert.Equal(t, "guest", user.Defaults["role"])
	assert.Equal(t, []string{"name", "role", "shout", "tags", "address", "contact"}, user.Fields.Targets())

	shout, ok := user.Fields.Lookup("shout")
	require.True(t, ok)
	assert.Equal(t, FieldTransformKind, shout.Kind)
	assert.Equal(t, "upper", shout.Transform)
	assert.Equal(t, "profile.name", shout.Path)

	addr, ok := user.Fields.Lookup("address")
	require.True(t, ok)
	assert.Equal(t, FieldMapperKind, addr.Kind)
	assert.Equal(t, "address", addr.Mapper)

	contact, ok := user.Fields.Lookup("contact")
	require.True(t, ok)
	assert.Equal(t, FieldObjectKind, contact.Kind)
	require.Len(t, contact.Fields, 1)
	assert.Equal(t, FieldDef{Target: "email", Kind: FieldPathKind, Path: "emails.[0]"}, contact.Fields[0])

	_, ok = user.Fields.Lookup("missing")
	assert.False(t, ok)

	require.NotNil(t, mf.Lookup("address"))
	assert.Equal(t, "address", mf.Lookup("address").Name)
	assert.Nil(t, mf.Lookup("order"))
}

func TestParse_DefaultVersion(t *testing.T) {
	mf, err := Parse([]byte("mappers: []\n"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, mf.Version)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty document", yaml: ""},
		{name: "missing mappers", yaml: "version: \"1\"\n"},
		{name: "unknown top-level key", yaml: "mappers: []\nextra: 1\n"},
		{name: "mapper without fields", yaml: "mappers:\n  - name: a\n"},
		{name: "numeric field rule", yaml: "mappers:\n  - name: a\n    fields:\n      x: 3\n"},
		{name: "non-bool unsafe", yaml: "mappers:\n  - name: a\n    unsafe: maybe\n    fields: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaViolation)
		})
	}
}

func TestParse_DirectiveErrors(t *testing.T) {
	tests := []struct {
		name    string
		rule    string
		wantErr string
	}{
		{name: "transform and mapper", rule: "{$transform: upper, $mapper: a}", wantErr: "cannot use both"},
		{name: "from with mapper", rule: "{$mapper: a, $from: x}", wantErr: "only valid with"},
		{name: "from alone", rule: "{$from: x}", wantErr: "needs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "mappers:\n  - name: a\n    fields:\n      f: " + tt.rule + "\n"

			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_UnknownDirectiveKept(t *testing.T) {
	doc := "mappers:\n  - name: a\n    fields:\n      f: {$transform: upper, $fromm: x}\n"

	mf, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"$fromm"}, mf.Mappers[0].Fields[0].Unknown)
}

func TestMarshal_RoundTripPreservesOrder(t *testing.T) {
	mf, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	data, err := Marshal(mf)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, mf.Mappers[1].Fields, again.Mappers[1].Fields)
	assert.Equal(t, mf.Mappers[1].Fields.Targets(), again.Mappers[1].Fields.Targets())
}

func TestLoadFileAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	mf, err := LoadFile(path)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, WriteFile(mf, out))

	again, err := LoadFile(out)
	require.NoError(t, err)
	assert.Len(t, again.Mappers, 2)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestFieldKind_String(t *testing.T) {
	assert.Equal(t, "path", FieldPathKind.String())
	assert.Equal(t, "transform", FieldTransformKind.String())
	assert.Equal(t, "mapper", FieldMapperKind.String())
	assert.Equal(t, "object", FieldObjectKind.String())
	assert.Equal(t, "unknown", FieldKind(9).String())
}
