package bib2json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePersons(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []Person
	}{
		{"first last", "Donald E. Knuth", []Person{{FirstName: "Donald E.", LastName: "Knuth"}}},
		{"last comma first", "Knuth, Donald E.", []Person{{FirstName: "Donald E.", LastName: "Knuth"}}},
		{"von particle", "Ludwig van Beethoven", []Person{{FirstName: "Ludwig", LastName: "van Beethoven"}}},
		{"von comma form", "van Beethoven, Ludwig", []Person{{FirstName: "Ludwig", LastName: "van Beethoven"}}},
		{"suffix", "Smith, Jr., John", []Person{{FirstName: "John", LastName: "Smith Jr."}}},
		{"corporate", "{Deutsches Museum}", []Person{{LastName: "Deutsches Museum"}}},
		{"single word", "Plato", []Person{{LastName: "Plato"}}},
		{
			"multiple authors",
			"Yongping Fu and Haiming Zhu and Jie Chen",
			[]Person{
				{FirstName: "Yongping", LastName: "Fu"},
				{FirstName: "Haiming", LastName: "Zhu"},
				{FirstName: "Jie", LastName: "Chen"},
			},
		},
		{
			"mixed forms and case-insensitive and",
			"Müller, Max AND John Smith",
			[]Person{
				{FirstName: "Max", LastName: "Müller"},
				{FirstName: "John", LastName: "Smith"},
			},
		},
		{
			"braced and is not a separator",
			"{Johnson and Johnson} and Doe, Jane",
			[]Person{
				{LastName: "Johnson and Johnson"},
				{FirstName: "Jane", LastName: "Doe"},
			},
		},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePersons(tt.value))
		})
	}
}

func TestSplitAndIgnoresBracedCommas(t *testing.T) {
	// the comma inside the braced group must not split the name
	got := ParsePersons("{van der Berg, Jan}")
	require.Len(t, got, 1)
	assert.Equal(t, "van der Berg, Jan", got[0].LastName)
}
