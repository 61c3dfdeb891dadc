package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bib2json"
)

func TestDefaultConfigOptions(t *testing.T) {
	opts := defaultConfig().options()
	assert.Equal(t, bib2json.Options{MaxHops: 1}, opts,
		"defaults: lenient, retain crossref, one hop, plain schema")
}

func TestConfigOptionsMapping(t *testing.T) {
	cfg := Config{
		Strict:        true,
		People:        true,
		IncludeBibtex: true,
		DropCrossref:  true,
		MaxHops:       3,
	}
	opts := cfg.options()
	assert.True(t, opts.Strict)
	assert.True(t, opts.People)
	assert.True(t, opts.IncludeBibtex)
	assert.True(t, opts.DropInheritanceFields)
	assert.Equal(t, 3, opts.MaxHops)
}
