package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/orchestrator"
)

const heroCandidate = `{
  "layout": "one-card-cta",
  "components": [{
    "kind": "Stage",
    "children": [{
      "kind": "Card",
      "slots": [
        {"slot": "title", "text": "Ultra watch"},
        {"slot": "cta", "label": "Shop now", "action": "buy"}
      ]
    }]
  }]
}`

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "OPEN_AI_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "UISPEC_PROVIDER", "UISPEC_STATIC_CANDIDATE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&app{logger: zap.NewNop()})
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuild_PrintsDocumentAndReport(t *testing.T) {
	path := writeTemp(t, "candidate.json", heroCandidate)

	res := run(t, "", "build", path, "--goal", "Launch the watch", "--report")
	require.NoError(t, res.err)

	var spec model.UiSpec
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &spec))
	assert.Equal(t, model.LayoutOneCardCTA, spec.Layout)

	var report orchestrator.Report
	require.NoError(t, json.Unmarshal([]byte(res.stderr), &report))
	assert.Equal(t, orchestrator.RecoveryNone, report.Recovery)
}

func TestBuild_GarbageFromStdinFallsBack(t *testing.T) {
	res := run(t, "definitely not json", "build", "-", "--goal", "Launch the watch", "--cta", "Shop now")
	require.NoError(t, res.err)

	var spec model.UiSpec
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &spec))
	cards := spec.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "Launch the watch", model.CardTitle(cards[0]))
	assert.Equal(t, "Shop now", model.CardCTA(cards[0]).Label)
}

func TestBuild_RendersWhenAsked(t *testing.T) {
	res := run(t, heroCandidate, "build", "--renderer", "vanilla")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, ">Ultra watch</h3>")
}

func TestRender_ValidatesDocument(t *testing.T) {
	res := run(t, heroCandidate, "render", "-r", "json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"tree"`)

	res = run(t, `{"layout": "nine-cards"}`, "render")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "layout")
}

func TestGenerate_FailureRequiresAllowFallback(t *testing.T) {
	res := run(t, "", "generate", "--provider", "static", "--goal", "Launch the watch")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "fallback document emitted")
	assert.Contains(t, res.stdout, "Launch the watch")

	res = run(t, "", "generate", "--provider", "static", "--goal", "Launch the watch", "--allow-fallback")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Launch the watch")
}

func TestGenerate_StaticCandidate(t *testing.T) {
	cfgPath := writeTemp(t, "uispec.yaml", "provider: static\nstatic_candidate: "+writeTemp(t, "candidate.json", heroCandidate)+"\n")

	res := run(t, "", "generate", "--config", cfgPath, "--goal", "Launch the watch", "--report")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Ultra watch")
	assert.Contains(t, res.stderr, `"recovery": "none"`)
}

func TestCatalog_RanksAgainstIntent(t *testing.T) {
	res := run(t, "", "catalog", "--goal", "ultra watch")
	require.NoError(t, res.err)

	out := res.stdout
	assert.Contains(t, strings.ToUpper(out), "SCORE")
	ultra := strings.Index(out, "watch-ultra")
	require.GreaterOrEqual(t, ultra, 0, out)
	for _, other := range []string{"fold-flip-combo", "watch8-combo", "tab-s10-hero"} {
		idx := strings.Index(out, other)
		require.GreaterOrEqual(t, idx, 0, out)
		assert.Less(t, ultra, idx, "%s listed before watch-ultra", other)
	}
}
