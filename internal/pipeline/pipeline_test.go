package pipeline

import (
	"testing"

	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/typedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okAnalyzer(mod ModuleInput) (typedir.TypedModule, []diag.Diagnostic, bool) {
	return typedir.TypedModule{Path: mod.Path}, nil, true
}

func noDeps(mod ModuleInput) []string { return nil }

func TestRunHappyPathProducesProgramInInitOrder(t *testing.T) {
	modules := []ModuleInput{{Path: "core"}, {Path: "lib"}, {Path: "app"}}
	deps := func(mod ModuleInput) []string {
		switch mod.Path {
		case "app":
			return []string{"lib"}
		case "lib":
			return []string{"core"}
		}
		return nil
	}

	res := Run(modules, deps, okAnalyzer)
	require.False(t, res.EmitSkipped)
	require.NotNil(t, res.Program)
	assert.Equal(t, []string{"core", "lib", "app"}, res.Program.InitOrder)
	assert.True(t, res.Diags.OK())
}

func TestRunSkipsPhase3ForParseFailedModuleOnly(t *testing.T) {
	analyzed := map[string]bool{}
	analyzer := func(mod ModuleInput) (typedir.TypedModule, []diag.Diagnostic, bool) {
		analyzed[mod.Path] = true
		return typedir.TypedModule{Path: mod.Path}, nil, true
	}
	modules := []ModuleInput{
		{Path: "broken", ParseFailed: true, ParseDiags: []diag.Diagnostic{
			{Code: "E-SRC-0102", Severity: diag.SeverityError},
		}},
		{Path: "ok"},
	}

	res := Run(modules, noDeps, analyzer)
	assert.False(t, analyzed["broken"])
	assert.True(t, analyzed["ok"])
	require.Len(t, res.Program.Modules, 1)
	assert.Equal(t, "ok", res.Program.Modules[0].Path)
}

func TestRunPhase3FailureSkipsEmitProjectWide(t *testing.T) {
	analyzer := func(mod ModuleInput) (typedir.TypedModule, []diag.Diagnostic, bool) {
		if mod.Path == "bad" {
			return typedir.TypedModule{}, []diag.Diagnostic{
				{Code: "E-SEM-0201", Severity: diag.SeverityError},
			}, false
		}
		return typedir.TypedModule{Path: mod.Path}, nil, true
	}
	modules := []ModuleInput{{Path: "good"}, {Path: "bad"}}

	res := Run(modules, noDeps, analyzer)
	assert.True(t, res.EmitSkipped)
	assert.Nil(t, res.Program)
	assert.False(t, res.Diags.OK())
}

func TestRunDoesNotShortCircuitAcrossModules(t *testing.T) {
	var seen []string
	analyzer := func(mod ModuleInput) (typedir.TypedModule, []diag.Diagnostic, bool) {
		seen = append(seen, mod.Path)
		ok := mod.Path != "bad"
		return typedir.TypedModule{Path: mod.Path}, nil, ok
	}
	modules := []ModuleInput{{Path: "bad"}, {Path: "after"}}

	Run(modules, noDeps, analyzer)
	assert.Equal(t, []string{"bad", "after"}, seen)
}

func TestRunCollectsParseDiagnosticsEvenWhenSkippingPhase3(t *testing.T) {
	modules := []ModuleInput{
		{Path: "broken", ParseFailed: true, ParseDiags: []diag.Diagnostic{
			{Code: "E-SRC-0102", Severity: diag.SeverityError},
		}},
	}
	res := Run(modules, noDeps, okAnalyzer)
	require.Len(t, res.Diags.All(), 1)
	assert.Equal(t, "E-SRC-0102", res.Diags.All()[0].Code)
}

func TestRunDetectsInitCycleAsProjectWideFailure(t *testing.T) {
	modules := []ModuleInput{{Path: "a"}, {Path: "b"}}
	deps := func(mod ModuleInput) []string {
		switch mod.Path {
		case "a":
			return []string{"b"}
		case "b":
			return []string{"a"}
		}
		return nil
	}
	res := Run(modules, deps, okAnalyzer)
	assert.True(t, res.EmitSkipped)
	assert.False(t, res.Diags.OK())
}
