// Staticlint runs the static analysis checks of the dashboard.
//
// It combines:
//
//	analyzers of golang.org/x/tools/go/analysis/passes;
//	all SA analyzers of staticcheck plus selected simple and stylecheck ones;
//	errcheck, bodyclose, go-critic and sqlrows;
//	customanalyzer.OsExitInMainAnalyzer.
//
// Usage:
//
//	go build -o staticlint ./cmd/staticlint
//	./staticlint ./...
package main

import (
	"strings"

	"github.com/go-critic/go-critic/checkers/analyzer"
	"github.com/gostaticanalysis/sqlrows/passes/sqlrows"
	"github.com/kisielk/errcheck/errcheck"
	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/danilovkiri/dk_go_url_dashboard/cmd/staticlint/customanalyzer"
)

// extraChecks lists staticcheck analyzers outside of the SA class.
var extraChecks = map[string]bool{
	"S1008":  true, // simplify returning boolean expression
	"S1028":  true, // simplify error construction with fmt.Errorf
	"ST1005": true, // incorrectly formatted error string
	"ST1016": true, // consistent method receiver names
}

// selectChecks returns the SA analyzers plus those named in extra.
func selectChecks(analyzers []*lint.Analyzer, extra map[string]bool) []*analysis.Analyzer {
	var checks []*analysis.Analyzer
	for _, v := range analyzers {
		if strings.HasPrefix(v.Analyzer.Name, "SA") || extra[v.Analyzer.Name] {
			checks = append(checks, v.Analyzer)
		}
	}
	return checks
}

func checks() []*analysis.Analyzer {
	mychecks := []*analysis.Analyzer{
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		copylock.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shadow.Analyzer,
		shift.Analyzer,
		sigchanyzer.Analyzer,
		stdmethods.Analyzer,
		structtag.Analyzer,
		tests.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,
	}
	mychecks = append(mychecks, selectChecks(staticcheck.Analyzers, extraChecks)...)
	mychecks = append(mychecks, selectChecks(simple.Analyzers, extraChecks)...)
	mychecks = append(mychecks, selectChecks(stylecheck.Analyzers, extraChecks)...)
	mychecks = append(mychecks,
		errcheck.Analyzer,
		bodyclose.Analyzer,
		analyzer.Analyzer,
		sqlrows.Analyzer,
		customanalyzer.OsExitInMainAnalyzer,
	)
	return mychecks
}

func main() {
	multichecker.Main(checks()...)
}
