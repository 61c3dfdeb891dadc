package bib2json

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSchema(t *testing.T) {
	const src = `
@string{month = "dummy"}
@ARTICLE{K1, Title = {A {B} C}, Year = 1999}
@book{k2, publisher = {X}}
`
	f := parseString(t, src, Options{})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, f, Options{}, ""))
	want := `[{"type":"article","key":"K1","fields":{"title":"A {B} C","year":"1999"}},` +
		`{"type":"book","key":"k2","fields":{"publisher":"X"}}]` + "\n"
	assert.Equal(t, want, buf.String(), "meta-blocks excluded, source order and field order kept")
}

func TestProjectFieldOrderStable(t *testing.T) {
	// deliberately not alphabetical; encoding a map would reorder these
	const src = `@misc{k1, zebra = {1}, alpha = {2}, mike = {3}}`
	f := parseString(t, src, Options{})
	out, err := json.Marshal(Project(f, Options{}))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"fields":{"zebra":"1","alpha":"2","mike":"3"}`)
}

func TestProjectRoundTrip(t *testing.T) {
	f := parseString(t, bib1, Options{})
	entries := Project(f, Options{})
	require.Len(t, entries, f.RecordCount())

	first, err := json.Marshal(entries)
	require.NoError(t, err)
	second, err := json.Marshal(Project(f, Options{}))
	require.NoError(t, err)
	assert.Equal(t, first, second, "re-serializing must not alter resolved text")

	// values survive a decode unchanged
	var decoded []struct {
		Type   string            `json:"type"`
		Key    string            `json:"key"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(first, &decoded))
	for i, e := range decoded {
		rec := f.Records[i]
		assert.Equal(t, rec.Type(), e.Type)
		assert.Equal(t, rec.Key(), e.Key)
		for name, value := range e.Fields {
			assert.Equal(t, rec.Field(name), value)
		}
	}
}

func TestProjectPeople(t *testing.T) {
	const src = `
@inproceedings{foo,
    author = {Max Müller and Smith, Jr., John},
    title  = {Lorem Ipsum et Dolor}
}
`
	f := parseString(t, src, Options{})
	entries := Project(f, Options{People: true})
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Authors, 2)
	assert.Equal(t, Person{FirstName: "Max", LastName: "Müller"}, entries[0].Authors[0])
	assert.Equal(t, Person{FirstName: "John", LastName: "Smith Jr."}, entries[0].Authors[1])

	out, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"first_name":"Max"`)
	assert.Contains(t, string(out), `"editors":[]`, "people arrays always present when enabled")
}

func TestProjectIncludeBibtex(t *testing.T) {
	const src = `@book{k1, year = {1984}}`
	f := parseString(t, src, Options{})
	out, err := json.Marshal(Project(f, Options{IncludeBibtex: true}))
	require.NoError(t, err)

	var decoded []struct {
		Bibtex string `json:"bibtex"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)
	assert.Contains(t, decoded[0].Bibtex, "@book{k1,")
	assert.Contains(t, decoded[0].Bibtex, "year = {1984}")
}

func TestWriteJSONIndent(t *testing.T) {
	const src = `@misc{k1, note = {n}}`
	f := parseString(t, src, Options{})
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, f, Options{}, "  "))
	assert.Contains(t, buf.String(), "\n  {")
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestProjectEmptyDocument(t *testing.T) {
	f := parseString(t, "just junk, no entries at all", Options{})
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, f, Options{}, ""))
	assert.Equal(t, "[]\n", buf.String())
}
