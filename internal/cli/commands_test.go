package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/bwcolor/pkg/config"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	bwio "github.com/matzehuels/bwcolor/pkg/io"
)

// isolate points the config and cache directories at temporary ones.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// generateTree writes a tree of the given shape to dir/name.
func generateTree(t *testing.T, dir, name, shape string, nodes int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if _, err := runCLI(t, "", "generate", "--nodes", itoa(nodes), "--shape", shape, "-o", path); err != nil {
		t.Fatalf("generate: %v", err)
	}
	return path
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func maxWhiteJSON(t *testing.T, args ...string) maxWhiteOutput {
	t.Helper()
	out, err := runCLI(t, "", append([]string{"maxwhite", "--json"}, args...)...)
	if err != nil {
		t.Fatalf("maxwhite: %v", err)
	}
	var got maxWhiteOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return got
}

func TestMaxWhiteCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name  string
		file  string
		shape string
		nodes int
		want  []int
	}{
		{"star json", "star.json", "star", 4, []int{4, 2, 1, 0, 0}},
		{"path yaml", "path.yaml", "path", 3, []int{3, 1, 0, 0}},
		{"path parents", "path.txt", "path", 4, []int{4, 2, 1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := generateTree(t, dir, tt.file, tt.shape, tt.nodes)
			got := maxWhiteJSON(t, path)
			if got.Size != tt.nodes || !slices.Equal(got.MaxWhite, tt.want) {
				t.Errorf("maxwhite = %+v, want %v", got, tt.want)
			}
			if got.Algorithm != "bz" {
				t.Errorf("algorithm = %q, want bz", got.Algorithm)
			}
		})
	}
}

func TestMaxWhiteCaching(t *testing.T) {
	isolate(t)
	path := generateTree(t, t.TempDir(), "tree.json", "random", 40)

	first := maxWhiteJSON(t, path)
	if first.Cached {
		t.Error("first run should not be cached")
	}
	second := maxWhiteJSON(t, path)
	if !second.Cached {
		t.Error("second run should be cached")
	}
	if !slices.Equal(first.MaxWhite, second.MaxWhite) {
		t.Errorf("cached table %v differs from %v", second.MaxWhite, first.MaxWhite)
	}

	if got := maxWhiteJSON(t, "--no-cache", path); got.Cached {
		t.Error("--no-cache run should not be cached")
	}
	if got := maxWhiteJSON(t, "--refresh", path); got.Cached {
		t.Error("--refresh run should not be cached")
	}

	// Tables are cached per algorithm.
	exact := maxWhiteJSON(t, "--algorithm", "exact", path)
	if exact.Cached || exact.Algorithm != "exact" {
		t.Errorf("exact run = %+v", exact)
	}
	if !slices.Equal(exact.MaxWhite, first.MaxWhite) {
		t.Errorf("exact table %v differs from bz table %v", exact.MaxWhite, first.MaxWhite)
	}
}

func TestMaxWhiteTableOutput(t *testing.T) {
	isolate(t)
	path := generateTree(t, t.TempDir(), "star.json", "star", 4)

	out, err := runCLI(t, "", "maxwhite", path)
	if err != nil {
		t.Fatalf("maxwhite: %v", err)
	}
	for _, want := range []string{"MaxWhite", "max white", "4 nodes", "fresh"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMaxWhiteFromStdin(t *testing.T) {
	isolate(t)
	doc := `{"nodes":[{"id":"hub"},{"id":"a"},{"id":"b"},{"id":"c"}],
	         "edges":[{"from":"hub","to":"a"},{"from":"hub","to":"b"},{"from":"hub","to":"c"}]}`

	out, err := runCLI(t, doc, "maxwhite", "--json", "-")
	if err != nil {
		t.Fatalf("maxwhite: %v", err)
	}
	var got maxWhiteOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.MaxWhite, []int{4, 2, 1, 0, 0}) {
		t.Errorf("max_white = %v", got.MaxWhite)
	}
}

func TestColorCommand(t *testing.T) {
	isolate(t)
	path := generateTree(t, t.TempDir(), "star.json", "star", 4)

	out, err := runCLI(t, "", "color", path, "-b", "1", "--verify", "--format", "json")
	if err != nil {
		t.Fatalf("color: %v", err)
	}
	tr, err := bwio.ReadJSON(strings.NewReader(out))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if tr.Len() != 4 {
		t.Errorf("output has %d nodes", tr.Len())
	}

	counts := map[string]int{}
	var doc struct {
		Nodes []struct {
			ID    string `json:"id"`
			Color string `json:"color"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatal(err)
	}
	for _, n := range doc.Nodes {
		counts[n.Color]++
		// The hub separates the black leaf from the white ones.
		if n.ID == "0" && n.Color != "gray" {
			t.Errorf("hub is %s, want gray", n.Color)
		}
	}
	if counts["black"] != 1 || counts["white"] != 2 || counts["gray"] != 1 {
		t.Errorf("color counts = %v", counts)
	}
}

func TestColorCommandFormats(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := generateTree(t, dir, "path.json", "path", 5)

	out, err := runCLI(t, "", "color", path, "-b", "2", "-w", "1", "--format", "yaml")
	if err != nil {
		t.Fatalf("color yaml: %v", err)
	}
	if _, err := bwio.ReadYAML(strings.NewReader(out)); err != nil {
		t.Errorf("yaml output does not parse: %v\n%s", err, out)
	}

	out, err = runCLI(t, "", "color", path, "-b", "2", "-w", "1")
	if err != nil {
		t.Fatalf("color text: %v", err)
	}
	if got := strings.Count(out, "\n"); got != 6 {
		t.Errorf("text output has %d lines, want counts + 5 nodes:\n%s", got, out)
	}

	colored := filepath.Join(dir, "colored.yaml")
	if _, err := runCLI(t, "", "color", path, "-b", "2", "-o", colored); err != nil {
		t.Fatalf("color -o: %v", err)
	}
	if _, err := os.Stat(colored); err != nil {
		t.Errorf("output file: %v", err)
	}
}

func TestColorCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	star := generateTree(t, dir, "star.json", "star", 4)

	tests := []struct {
		name string
		args []string
		want bwerrors.Code
	}{
		{"infeasible", []string{"color", star, "-b", "1", "-w", "3"}, bwerrors.ErrCodeInfeasibleRequest},
		{"too many", []string{"color", star, "-b", "3", "-w", "2"}, bwerrors.ErrCodeInfeasibleRequest},
		{"black beyond size", []string{"color", star, "-b", "9"}, bwerrors.ErrCodeInfeasibleRequest},
		{"bad format", []string{"color", star, "-b", "1", "--format", "xml"}, bwerrors.ErrCodeInvalidFormat},
		{"bad format checked before reading", []string{"color", filepath.Join(dir, "nope.json"), "--format", "xml"}, bwerrors.ErrCodeInvalidFormat},
		{"parent list output", []string{"color", star, "-b", "1", "-o", filepath.Join(dir, "colored.txt")}, bwerrors.ErrCodeInvalidFormat},
		{"missing file", []string{"color", filepath.Join(dir, "nope.json"), "-b", "1"}, bwerrors.ErrCodeFileNotFound},
		{"unknown extension", []string{"color", filepath.Join(dir, "tree.csv"), "-b", "1"}, bwerrors.ErrCodeInvalidFormat},
		{"bad algorithm", []string{"color", star, "-b", "1", "--algorithm", "greedy"}, bwerrors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			if !bwerrors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "colored.txt")); !os.IsNotExist(err) {
		t.Errorf("colored.txt was written: %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := generateTree(t, dir, "star.json", "star", 4)

	out, err := runCLI(t, "", "render", path, "-b", "1", "--format", "dot", "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "digraph G {") || !strings.Contains(out, "fillcolor=black") {
		t.Errorf("unexpected DOT output:\n%s", out)
	}

	target := filepath.Join(dir, "star.dot")
	out, err = runCLI(t, "", "render", path, "-b", "1", "--detailed", "-o", target)
	if err != nil {
		t.Fatalf("render -o: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read %s: %v", target, err)
	}
	if !strings.Contains(string(data), "id: 0") {
		t.Errorf("detailed DOT lacks node ids:\n%s", data)
	}
	if !strings.Contains(out, target) {
		t.Errorf("output does not name %s:\n%s", target, out)
	}

	if _, err := runCLI(t, "", "render", path, "-b", "1", "-o", filepath.Join(dir, "star.pdf")); !bwerrors.Is(err, bwerrors.ErrCodeInvalidFormat) {
		t.Errorf("render pdf error = %v, want INVALID_FORMAT", err)
	}
}

func TestResolveRenderTarget(t *testing.T) {
	tests := []struct {
		input, output, format string
		wantFormat, wantOut   string
		wantErr               bool
	}{
		{"t.json", "", "", "svg", "t.svg", false},
		{"trees/t.yaml", "", "png", "png", "trees/t.png", false},
		{"t.json", "out.png", "", "png", "out.png", false},
		{"t.json", "out.png", "dot", "dot", "out.png", false},
		{"-", "", "", "svg", "-", false},
		{"t.json", "-", "dot", "dot", "-", false},
		{"t.json", "out.pdf", "", "", "", true},
		{"t.json", "", "jpeg", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input+"->"+tt.output+"/"+tt.format, func(t *testing.T) {
			format, output, err := resolveRenderTarget(tt.input, tt.output, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if format != tt.wantFormat || output != tt.wantOut {
				t.Errorf("got (%q, %q), want (%q, %q)", format, output, tt.wantFormat, tt.wantOut)
			}
		})
	}
}

func TestResolveWhite(t *testing.T) {
	if w, err := resolveWhite(1, 3, 5); err != nil || w != 3 {
		t.Errorf("explicit white = %d, %v", w, err)
	}
	if w, err := resolveWhite(1, -1, 5); err != nil || w != 5 {
		t.Errorf("default white = %d, %v", w, err)
	}
	if _, err := resolveWhite(9, -1, -1); !bwerrors.Is(err, bwerrors.ErrCodeInfeasibleRequest) {
		t.Errorf("out of range error = %v", err)
	}
}

func TestGenerateCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "generate", "-n", "12", "--shape", "binary", "--seed", "3")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tr, err := bwio.ReadJSON(strings.NewReader(out))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if tr.Len() != 12 {
		t.Errorf("generated %d nodes, want 12", tr.Len())
	}

	again, _ := runCLI(t, "", "generate", "-n", "12", "--shape", "binary", "--seed", "3")
	if again != out {
		t.Error("same seed produced a different tree")
	}

	if _, err := runCLI(t, "", "generate", "--shape", "spiral"); !bwerrors.Is(err, bwerrors.ErrCodeInvalidInput) {
		t.Errorf("unknown shape error = %v", err)
	}
	if _, err := runCLI(t, "", "generate", "-n", "0"); !bwerrors.Is(err, bwerrors.ErrCodeDegenerateTree) {
		t.Errorf("zero nodes error = %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	isolate(t)
	path := generateTree(t, t.TempDir(), "tree.json", "random", 20)

	out, err := runCLI(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}

	maxWhiteJSON(t, path)
	out, err = runCLI(t, "", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("cache clear output:\n%s", out)
	}
	if got := maxWhiteJSON(t, path); got.Cached {
		t.Error("table still cached after clear")
	}

	out, err = runCLI(t, "", "cache", "clear", "--no-cache")
	if err != nil {
		t.Fatalf("cache clear --no-cache: %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("cache clear --no-cache output:\n%s", out)
	}
}

func TestBoltBackendFromConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tables.db")
	cfgPath := filepath.Join(dir, "config.toml")
	body := "[cache]\nbackend = \"bolt\"\nbolt_path = \"" + filepath.ToSlash(dbPath) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	path := generateTree(t, dir, "tree.json", "caterpillar", 15)

	if got := maxWhiteJSON(t, "--config", cfgPath, path); got.Cached {
		t.Error("first bolt run should not be cached")
	}
	if got := maxWhiteJSON(t, "--config", cfgPath, path); !got.Cached {
		t.Error("second bolt run should be cached")
	}

	out, err := runCLI(t, "", "--config", cfgPath, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != dbPath {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dbPath)
	}
}

func TestCacheKeyPrefix(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cacheDir := filepath.ToSlash(filepath.Join(dir, "cache"))
	path := generateTree(t, dir, "tree.json", "binary", 15)

	writeConfig := func(name, prefix string) string {
		p := filepath.Join(dir, name)
		body := "[cache]\ndir = \"" + cacheDir + "\"\nkey_prefix = \"" + prefix + "\"\n"
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	staging := writeConfig("staging.toml", "staging:")
	prod := writeConfig("prod.toml", "prod:")

	if maxWhiteJSON(t, "--config", staging, path).Cached {
		t.Error("first staging run should not be cached")
	}
	if maxWhiteJSON(t, "--config", prod, path).Cached {
		t.Error("prod run should not see the staging entry")
	}
	if !maxWhiteJSON(t, "--config", staging, path).Cached {
		t.Error("second staging run should be cached")
	}
}

func TestConfigErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := generateTree(t, dir, "tree.json", "star", 4)

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte(`algorithm = "greedy"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "", "--config", bad, "maxwhite", path); !bwerrors.Is(err, bwerrors.ErrCodeInvalidConfig) {
		t.Errorf("bad config error = %v", err)
	}
	if _, err := runCLI(t, "", "--config", filepath.Join(dir, "missing.toml"), "maxwhite", path); !bwerrors.Is(err, bwerrors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the program")
	}
}
