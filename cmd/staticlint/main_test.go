package main

import (
	"testing"

	"github.com/go-critic/go-critic/checkers/analyzer"
	"github.com/stretchr/testify/assert"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/danilovkiri/dk_go_url_dashboard/cmd/staticlint/customanalyzer"
)

func TestSelectChecks(t *testing.T) {
	for _, a := range selectChecks(staticcheck.Analyzers, nil) {
		assert.Equal(t, "SA", a.Name[:2])
	}
	simpleChecks := selectChecks(simple.Analyzers, extraChecks)
	names := make([]string, 0, len(simpleChecks))
	for _, a := range simpleChecks {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{"S1008", "S1028"}, names)
	assert.Len(t, selectChecks(stylecheck.Analyzers, extraChecks), 2)
}

func TestChecks(t *testing.T) {
	all := checks()
	seen := make(map[string]bool, len(all))
	for _, a := range all {
		assert.False(t, seen[a.Name], "duplicate analyzer %s", a.Name)
		seen[a.Name] = true
	}
	for _, name := range []string{"errcheck", "bodyclose", analyzer.Analyzer.Name, "sqlrows", customanalyzer.OsExitInMainAnalyzer.Name} {
		assert.True(t, seen[name], name)
	}
}
