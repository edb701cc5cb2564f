package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-mapper/internal/mapping"
)

const testCatalog = `
version: "1"
mappers:
  - name: user
    description: flattens a customer
    defaults:
      role: guest
    fields:
      name: profile.name
      shout: {$transform: upper, $from: profile.name}
      role: account.role
      tags: tags.[].label
      address: {$mapper: address}
  - name: address
    fields:
      city: city
  - name: pair
    fields:
      id: $0.id
      name: $1.name
`

const testInput = `{
  "profile": {"name": "Ada Lovelace"},
  "tags": [{"label": "vip"}, {"label": "beta"}],
  "address": {"city": "London"}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()

	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "fieldmap dev\n", out)
}

func TestRun_JSON(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)
	input := writeFile(t, "customer.json", testInput)

	out, err := runCommand(t, "", "run", "-c", catalog, "user", input)
	require.NoError(t, err)

	assert.Contains(t, out, `"name": "Ada Lovelace"`)
	assert.Contains(t, out, `"shout": "ADA LOVELACE"`)
	assert.Contains(t, out, `"role": "guest"`)
	assert.Contains(t, out, `"city": "London"`)
	assert.Contains(t, out, `"errors": []`)
}

func TestRun_StdinYAMLOutput(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	out, err := runCommand(t, testInput, "run", "-c", catalog, "-o", "yaml", "user", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "result:")
	assert.Contains(t, out, "name: Ada Lovelace")
	assert.Contains(t, out, "- vip")
}

func TestRun_YAMLInput(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)
	input := writeFile(t, "address.yml", "city: Paris\n")

	out, err := runCommand(t, "", "run", "-c", catalog, "address", input)
	require.NoError(t, err)
	assert.Contains(t, out, `"city": "Paris"`)
}

func TestRun_Args(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	out, err := runCommand(t, `[{"id": 7}, {"name": "Ada"}]`, "run", "-c", catalog, "--args", "pair")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": 7`)
	assert.Contains(t, out, `"name": "Ada"`)

	_, err = runCommand(t, `{"id": 7}`, "run", "-c", catalog, "--args", "pair")
	require.ErrorIs(t, err, ErrNotTuple)
}

func TestRun_Errors(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	_, err := runCommand(t, "{}", "run", "user")
	require.ErrorIs(t, err, ErrNoCatalog)

	_, err = runCommand(t, "{}", "run", "-c", catalog, "order")
	require.ErrorContains(t, err, "unknown mapper")

	_, err = runCommand(t, "{not json", "run", "-c", catalog, "user")
	require.ErrorContains(t, err, "decoding JSON input")
}

func TestCheck(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	out, err := runCommand(t, "", "check", "--no-color", catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (3 mappers)")

	broken := writeFile(t, "broken.yaml", `
mappers:
  - name: user
    fields:
      shout: {$transform: uper, $from: name}
      city: {$mapper: adress}
`)

	out, err = runCommand(t, "", "check", "--no-color", broken)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "unknown_transform")
	assert.Contains(t, out, `did you mean "upper"?`)
	assert.Contains(t, out, "unknown_mapper")
	assert.Contains(t, out, "2 error(s)")
}

func TestCheck_SchemaViolation(t *testing.T) {
	broken := writeFile(t, "broken.yaml", "mappers:\n  - fields: {}\n")

	_, err := runCommand(t, "", "check", "--no-color", broken)
	require.ErrorIs(t, err, mapping.ErrSchemaViolation)
}

func TestRender(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	out, err := runCommand(t, "", "render", "-c", catalog, "user")
	require.NoError(t, err)
	assert.Contains(t, out, "// Code generated by field-mapper. DO NOT EDIT.")
	assert.Contains(t, out, "func mapUser(")
	assert.Contains(t, out, "// shout: upper(profile.name)")

	dir := t.TempDir()
	_, err = runCommand(t, "", "render", "-c", catalog, "-o", dir, "user", "address")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "user_routine.go"))
	assert.FileExists(t, filepath.Join(dir, "address_routine.go"))
}

func TestInspect(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	out, err := runCommand(t, "", "inspect", "-c", catalog, "--dump", "user")
	require.NoError(t, err)
	assert.Contains(t, out, "mapper user")
	assert.Contains(t, out, "address.city")
	assert.Contains(t, out, "upper(profile.name)")
	assert.Contains(t, out, "guest")
	assert.Contains(t, out, "TargetPath")
}

func TestExport(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	out, err := runCommand(t, "", "export", "-c", catalog)
	require.NoError(t, err)

	mf, err := mapping.Parse([]byte(out))
	require.NoError(t, err)
	require.Len(t, mf.Mappers, 3)

	user := mf.Lookup("user")
	require.NotNil(t, user)
	assert.Equal(t, "flattens a customer", user.Description)
	assert.Equal(t, []string{"address", "name", "role", "shout", "tags"}, user.Fields.Targets())
	assert.Equal(t, "guest", user.Defaults["role"])

	path := filepath.Join(t.TempDir(), "out.yaml")
	_, err = runCommand(t, "", "export", "-c", catalog, "-o", path, "address")
	require.NoError(t, err)

	written, err := mapping.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, written.Mappers, 1)
	assert.Equal(t, "address", written.Mappers[0].Name)
}

func TestBench(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)
	input := writeFile(t, "customer.json", testInput)

	out, err := runCommand(t, "", "bench", "-c", catalog, "-n", "25", "user", input)
	require.NoError(t, err)
	assert.Contains(t, out, "bench user")
	assert.Contains(t, out, "25")
}
