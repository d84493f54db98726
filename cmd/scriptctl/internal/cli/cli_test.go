package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/pkg/crypto"
)

// fakeServer answers the routes scriptctl calls and records the actions it receives.
type fakeServer struct {
	mu       sync.Mutex
	apiKeys  []string
	actions  []json.RawMessage
	records  []*domain.HistoryRecord
	toggleOf map[string]bool
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	f := &fakeServer{
		records: []*domain.HistoryRecord{
			{ID: "h-2", CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), Brand: "eXp", SourceText: "second", IsUsed: true},
			{ID: "h-1", CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), Brand: "Benjamin Stevens", SourceText: "first"},
		},
		toggleOf: make(map[string]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/actions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Action  string          `json:"action"`
			Payload json.RawMessage `json:"payload"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.apiKeys = append(f.apiKeys, r.Header.Get("X-API-Key"))
		f.actions = append(f.actions, body.Payload)
		f.mu.Unlock()

		switch body.Action {
		case "generate-scripts":
			writeJSON(w, http.StatusOK, domain.ScriptResult{
				StrategyNote:   "Lead with independence.",
				LongFormScript: "Long script.",
				ShortScripts:   []string{"One", "Two"},
			})
		case "research-prompt":
			writeJSON(w, http.StatusOK, domain.ResearchResult{TopicQuery: "q", GeneratedPrompt: "Research this deeply."})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Unknown action: " + body.Action})
		}
	})
	mux.HandleFunc("GET /api/v1/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, f.records)
	})
	mux.HandleFunc("POST /api/v1/history/{id}/toggle", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Current bool `json:"current"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		id := r.PathValue("id")
		f.mu.Lock()
		f.toggleOf[id] = body.Current
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, domain.HistoryRecord{ID: domain.HistoryID(id), IsUsed: !body.Current})
	})
	mux.HandleFunc("GET /api/v1/brands", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Brand{{ID: "b-1", Name: "eXp"}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes scriptctl with args against an isolated environment.
func run(t *testing.T, stdin string, terminal bool, passwords []string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"SCRIPTFORGE_SERVER", "SCRIPTFORGE_API_KEY", "SCRIPTFORGE_OUTPUT", "SCRIPTFORGE_ARCHIVE_PASSWORD"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	var stdout, stderr bytes.Buffer
	streams := IO{
		In:              strings.NewReader(stdin),
		Out:             &stdout,
		Err:             &stderr,
		StdinIsTerminal: func() bool { return terminal },
		ReadPassword: func(string) (string, error) {
			if len(passwords) == 0 {
				t.Fatal("unexpected password prompt")
			}
			pw := passwords[0]
			passwords = passwords[1:]
			return pw, nil
		},
	}

	cheap := crypto.NewSealer(crypto.KDFParams{Time: 1, Memory: 8 * 1024, Threads: 1})
	cmd := newRootCmd(streams, cheap)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestGenerate_FromArgument(t *testing.T) {
	f, srv := newFakeServer(t)

	res := run(t, "", true, nil, "generate", "--server", srv.URL, "--api-key", "secret",
		"--brand", "eXp", "--preset", "Listicle", "market update")
	if res.err != nil {
		t.Fatalf("generate: %v", res.err)
	}

	for _, want := range []string{"STRATEGY", "Lead with independence.", "SHORT 2", "Two"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}
	if len(f.apiKeys) != 1 || f.apiKeys[0] != "secret" {
		t.Errorf("api keys = %v, want [secret]", f.apiKeys)
	}

	var req domain.ScriptRequest
	if err := json.Unmarshal(f.actions[0], &req); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if req.Brand != "eXp" || req.StylePreset != domain.PresetListicle || req.SourceText != "market update" {
		t.Errorf("unexpected payload: %+v", req)
	}
}

func TestGenerate_FromPipedStdin(t *testing.T) {
	f, srv := newFakeServer(t)

	res := run(t, "piped article text", false, nil, "generate", "--server", srv.URL, "-o", "json")
	if res.err != nil {
		t.Fatalf("generate: %v", res.err)
	}

	var req domain.ScriptRequest
	json.Unmarshal(f.actions[0], &req)
	if req.SourceText != "piped article text" {
		t.Errorf("SourceText = %q", req.SourceText)
	}

	var out domain.ScriptResult
	if err := json.Unmarshal([]byte(res.stdout), &out); err != nil {
		t.Fatalf("json output: %v\n%s", err, res.stdout)
	}
	if len(out.ShortScripts) != 2 {
		t.Errorf("len(ShortScripts) = %d, want 2", len(out.ShortScripts))
	}
}

func TestGenerate_NoSource(t *testing.T) {
	_, srv := newFakeServer(t)

	res := run(t, "", true, nil, "generate", "--server", srv.URL)
	if res.err == nil || !strings.Contains(res.err.Error(), "no source text") {
		t.Errorf("err = %v, want no source text", res.err)
	}
}

func TestResearchPrompt(t *testing.T) {
	f, srv := newFakeServer(t)

	res := run(t, "", true, nil, "research", "prompt", "--server", srv.URL, "--format", "Carousel", "tenant tips")
	if res.err != nil {
		t.Fatalf("research prompt: %v", res.err)
	}
	if strings.TrimSpace(res.stdout) != "Research this deeply." {
		t.Errorf("stdout = %q", res.stdout)
	}

	var req domain.ResearchRequest
	json.Unmarshal(f.actions[0], &req)
	if req.TopicQuery != "tenant tips" || req.ContentFormat != domain.FormatCarousel {
		t.Errorf("unexpected payload: %+v", req)
	}
}

func TestServerFromEnvironment(t *testing.T) {
	_, srv := newFakeServer(t)

	res := func() result {
		t.Setenv("HOME", t.TempDir())
		var stdout bytes.Buffer
		cmd := newRootCmd(IO{In: strings.NewReader(""), Out: &stdout, Err: &bytes.Buffer{}}, crypto.NewSealer(crypto.DefaultKDFParams))
		t.Setenv("SCRIPTFORGE_SERVER", srv.URL)
		t.Setenv("SCRIPTFORGE_OUTPUT", "text")
		cmd.SetArgs([]string{"brands", "list"})
		err := cmd.Execute()
		return result{stdout: stdout.String(), err: err}
	}()
	if res.err != nil {
		t.Fatalf("brands list: %v", res.err)
	}
	if !strings.Contains(res.stdout, "eXp") {
		t.Errorf("stdout = %q, want brand listing", res.stdout)
	}
}

func TestConfigFile(t *testing.T) {
	_, srv := newFakeServer(t)
	path := filepath.Join(t.TempDir(), "scriptctl.yaml")
	if err := os.WriteFile(path, []byte("server: "+srv.URL+"\noutput: json\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	res := run(t, "", true, nil, "--config", path, "brands", "list")
	if res.err != nil {
		t.Fatalf("brands list: %v", res.err)
	}
	var brands []domain.Brand
	if err := json.Unmarshal([]byte(res.stdout), &brands); err != nil {
		t.Fatalf("json output: %v\n%s", err, res.stdout)
	}
	if len(brands) != 1 || brands[0].Name != "eXp" {
		t.Errorf("brands = %+v", brands)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	res := run(t, "", true, nil, "-o", "xml", "brands", "list")
	if res.err == nil || !strings.Contains(res.err.Error(), "unsupported output format") {
		t.Errorf("err = %v, want unsupported output format", res.err)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	_, srv := newFakeServer(t)

	res := run(t, "", true, nil, "research", "content", "--server", srv.URL, "topic")
	if res.err == nil || !strings.Contains(res.err.Error(), "Unknown action") {
		t.Errorf("err = %v, want server error message", res.err)
	}
}

func TestHistoryList(t *testing.T) {
	_, srv := newFakeServer(t)

	res := run(t, "", true, nil, "history", "list", "--server", srv.URL)
	if res.err != nil {
		t.Fatalf("history list: %v", res.err)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2:\n%s", len(lines), res.stdout)
	}
	if !strings.HasPrefix(lines[1], "h-2") {
		t.Errorf("first row = %q, want h-2", lines[1])
	}
}

func TestHistoryToggle_LooksUpCurrent(t *testing.T) {
	f, srv := newFakeServer(t)

	res := run(t, "", true, nil, "history", "toggle", "h-2", "--server", srv.URL)
	if res.err != nil {
		t.Fatalf("toggle: %v", res.err)
	}
	if current, ok := f.toggleOf["h-2"]; !ok || !current {
		t.Errorf("toggle sent current=%v (ok=%v), want true", current, ok)
	}
	if !strings.Contains(res.stdout, "used=false") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestHistoryToggle_UnknownID(t *testing.T) {
	_, srv := newFakeServer(t)

	res := run(t, "", true, nil, "history", "toggle", "missing", "--server", srv.URL)
	if res.err == nil || !strings.Contains(res.err.Error(), "not found") {
		t.Errorf("err = %v, want not found", res.err)
	}
}

func TestHistoryExportAndCheck_Plain(t *testing.T) {
	_, srv := newFakeServer(t)
	out := filepath.Join(t.TempDir(), "history.json")

	res := run(t, "", true, nil, "history", "export", "--server", srv.URL, "--out", out)
	if res.err != nil {
		t.Fatalf("export: %v", res.err)
	}
	if !strings.Contains(res.stderr, "Exported 2 records") {
		t.Errorf("stderr = %q", res.stderr)
	}

	res = run(t, "", true, nil, "history", "import-check", out)
	if res.err != nil {
		t.Fatalf("import-check: %v", res.err)
	}
	for _, want := range []string{"Encrypted: false", "Records:   2 (1 used)", "Benjamin Stevens"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestHistoryExportAndCheck_Encrypted(t *testing.T) {
	_, srv := newFakeServer(t)
	out := filepath.Join(t.TempDir(), "history.sfar")

	res := run(t, "", true, []string{"hunter2", "hunter2"}, "history", "export", "--server", srv.URL, "--out", out, "--encrypt")
	if res.err != nil {
		t.Fatalf("export: %v", res.err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if !crypto.IsSealed(data) {
		t.Fatal("archive should be sealed")
	}

	res = run(t, "", true, []string{"hunter2"}, "history", "import-check", out)
	if res.err != nil {
		t.Fatalf("import-check: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Encrypted: true") {
		t.Errorf("stdout = %q", res.stdout)
	}

	res = run(t, "", true, []string{"wrong"}, "history", "import-check", out)
	if res.err == nil {
		t.Error("import-check with wrong password should fail")
	}
}

func TestHistoryExport_PasswordMismatch(t *testing.T) {
	_, srv := newFakeServer(t)
	out := filepath.Join(t.TempDir(), "history.sfar")

	res := run(t, "", true, []string{"one", "two"}, "history", "export", "--server", srv.URL, "--out", out, "--encrypt")
	if res.err == nil || !strings.Contains(res.err.Error(), "do not match") {
		t.Errorf("err = %v, want mismatch", res.err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("no archive should be written")
	}
}

func TestHistoryExport_EncryptWithoutTerminal(t *testing.T) {
	_, srv := newFakeServer(t)

	res := run(t, "", false, nil, "history", "export", "--server", srv.URL, "--out", filepath.Join(t.TempDir(), "x"), "--encrypt")
	if res.err == nil || !strings.Contains(res.err.Error(), "SCRIPTFORGE_ARCHIVE_PASSWORD") {
		t.Errorf("err = %v, want hint about the password variable", res.err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is far too long", 10, "this is..."},
		{"ééééééééééééé", 5, "éé..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
