package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/menu/internal/config"
	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/server"
	"github.com/idilsaglam/menu/internal/store/memstore"
	"github.com/idilsaglam/menu/internal/store/sqlitestore"
)

type env struct {
	st     *memstore.Store
	url    string
	config string
}

func setupTest(t *testing.T, recs ...model.Record) *env {
	t.Helper()
	st := memstore.New(recs...)
	srv := httptest.NewServer(server.New(st, nil).Handler())
	t.Cleanup(srv.Close)
	return &env{st: st, url: srv.URL + "/", config: filepath.Join(t.TempDir(), "config.yaml")}
}

func (e *env) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	root := NewRootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", e.config, "--server", e.url}, args...))
	err := root.Execute()
	return buf.String(), err
}

func (e *env) names(t *testing.T) []string {
	t.Helper()
	recs, err := e.st.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var out []string
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}

func TestListCommand_Panel(t *testing.T) {
	e := setupTest(t, model.Record{ID: "1", Name: "Curry", Likes: 2}, model.Record{ID: "2", Name: "Ramen"})
	out, err := e.run(t, "", "ls")
	if err != nil {
		t.Fatalf("ls failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Menus", "Curry", "Ramen", "Total 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestListCommand_JSON(t *testing.T) {
	e := setupTest(t, model.Record{ID: "1", Name: "Curry", Likes: 2})
	out, err := e.run(t, "", "ls", "-o", "json")
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}
	var got []model.Record
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].Name != "Curry" || got[0].Likes != 2 {
		t.Fatalf("unexpected records %+v", got)
	}
}

func TestListCommand_UnknownFormatIsUsageError(t *testing.T) {
	e := setupTest(t)
	_, err := e.run(t, "", "ls", "-o", "xml")
	if code := ExitCode(err); code != 2 {
		t.Fatalf("expected exit 2; got %d (%v)", code, err)
	}
}

func TestAddCommand(t *testing.T) {
	e := setupTest(t)
	out, err := e.run(t, "", "add", "Green", "curry")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(out, `added "Green curry"`) {
		t.Errorf("unexpected output: %s", out)
	}
	if got := e.names(t); len(got) != 1 || got[0] != "Green curry" {
		t.Fatalf("expected Green curry stored; got %v", got)
	}
}

func TestAddCommand_BlankNameExitsTwo(t *testing.T) {
	e := setupTest(t)
	_, err := e.run(t, "", "add", "  ")
	if code := ExitCode(err); code != 2 {
		t.Fatalf("expected exit 2; got %d (%v)", code, err)
	}
	if got := e.names(t); len(got) != 0 {
		t.Fatalf("expected nothing stored; got %v", got)
	}
}

func TestRenameCommand_KeepsLikes(t *testing.T) {
	e := setupTest(t, model.Record{ID: "1", Name: "Curry", Likes: 5})
	out, err := e.run(t, "", "rename", "1", "Katsu", "curry")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if !strings.Contains(out, `renamed to "Katsu curry"`) {
		t.Errorf("unexpected output: %s", out)
	}
	recs, _ := e.st.List(context.Background())
	if recs[0].Name != "Katsu curry" || recs[0].Likes != 5 {
		t.Fatalf("unexpected record %+v", recs[0])
	}
}

func TestRenameCommand_UnknownID(t *testing.T) {
	e := setupTest(t)
	_, err := e.run(t, "", "rename", "9", "Soba")
	if code := ExitCode(err); code != 1 {
		t.Fatalf("expected exit 1; got %d (%v)", code, err)
	}
}

func TestRemoveCommand_PromptDeclined(t *testing.T) {
	e := setupTest(t, model.Record{ID: "1", Name: "Curry"})
	out, err := e.run(t, "n\n", "rm", "1")
	if err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if !strings.Contains(out, `Delete "Curry"? [y/N]`) || !strings.Contains(out, "Aborted.") {
		t.Errorf("unexpected output: %s", out)
	}
	if got := e.names(t); len(got) != 1 {
		t.Fatalf("expected Curry kept; got %v", got)
	}
}

func TestRemoveCommand_Confirmed(t *testing.T) {
	e := setupTest(t, model.Record{ID: "1", Name: "Curry"})
	if _, err := e.run(t, "y\n", "rm", "1"); err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if got := e.names(t); len(got) != 0 {
		t.Fatalf("expected Curry deleted; got %v", got)
	}
}

func TestRemoveCommand_YesSkipsPrompt(t *testing.T) {
	e := setupTest(t, model.Record{ID: "1", Name: "Curry"}, model.Record{ID: "2", Name: "Ramen"})
	out, err := e.run(t, "", "rm", "--yes", "2")
	if err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if strings.Contains(out, "[y/N]") {
		t.Errorf("expected no prompt with --yes: %s", out)
	}
	if got := e.names(t); len(got) != 1 || got[0] != "Curry" {
		t.Fatalf("expected only Curry left; got %v", got)
	}
}

func TestLikeCommand(t *testing.T) {
	e := setupTest(t, model.Record{ID: "1", Name: "Curry", Likes: 1})
	out, err := e.run(t, "", "like", "1")
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !strings.Contains(out, "Curry") || !strings.Contains(out, "2 likes") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestLikeCommand_UnknownIDExitsOne(t *testing.T) {
	e := setupTest(t)
	_, err := e.run(t, "", "like", "42")
	if code := ExitCode(err); code != 1 {
		t.Fatalf("expected exit 1; got %d (%v)", code, err)
	}
	if err == nil || !strings.Contains(err.Error(), "no menu with id 42") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLikeCommand_NumberIDGoesBackAsNumber(t *testing.T) {
	e := setupTest(t, model.Record{ID: model.NumberID("3"), Name: "Curry"}, model.Record{ID: "b7f0", Name: "Ramen"})
	if _, err := e.run(t, "", "like", "3"); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	recs, _ := e.st.List(context.Background())
	if recs[0].Likes != 1 || recs[1].Likes != 0 {
		t.Fatalf("expected Curry liked once; got %+v", recs)
	}
}

func TestSuggestCommand(t *testing.T) {
	e := setupTest(t, model.Record{ID: "1", Name: "Curry", Likes: 3})
	out, err := e.run(t, "", "suggest", "--seed", "7")
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if !strings.Contains(out, "Today's pick") || !strings.Contains(out, "Curry") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSuggestCommand_SeedIsDeterministic(t *testing.T) {
	var recs []model.Record
	for _, n := range []string{"Curry", "Ramen", "Soba", "Udon", "Pho", "Bibimbap"} {
		recs = append(recs, model.Record{ID: model.ID(n), Name: n})
	}
	e := setupTest(t, recs...)
	first, err := e.run(t, "", "suggest", "--seed", "99", "-o", "json")
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _ := e.run(t, "", "suggest", "--seed", "99", "-o", "json")
		if again != first {
			t.Fatalf("expected the same pick for the same seed; got %s and %s", first, again)
		}
	}
}

func TestSuggestCommand_EmptyList(t *testing.T) {
	e := setupTest(t)
	out, err := e.run(t, "", "suggest")
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if !strings.Contains(out, "Nothing to suggest yet") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSuggestCommand_EmptyListPlain(t *testing.T) {
	e := setupTest(t)
	out, err := e.run(t, "", "suggest", "-o", "plain")
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if out != "No menus yet.\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestUnreachableServerExitsOne(t *testing.T) {
	e := setupTest(t)
	e.url = "http://127.0.0.1:1/"
	_, err := e.run(t, "", "ls")
	if code := ExitCode(err); code != 1 {
		t.Fatalf("expected exit 1; got %d (%v)", code, err)
	}
}

func TestBadArgsExitTwo(t *testing.T) {
	e := setupTest(t)
	for _, args := range [][]string{
		{"like"},
		{"rm", "1", "2"},
		{"ls", "--nope"},
		{"extra-positional"},
	} {
		_, err := e.run(t, "", args...)
		if code := ExitCode(err); code != 2 {
			t.Fatalf("%v: expected exit 2; got %d (%v)", args, code, err)
		}
	}
}

func TestServerFlagBeatsConfigFile(t *testing.T) {
	e := setupTest(t, model.Record{ID: "1", Name: "Curry"})
	cfg := config.Default()
	cfg.ServerURL = "http://127.0.0.1:1/"
	if err := config.Save(e.config, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := e.run(t, "", "ls"); err != nil {
		t.Fatalf("expected --server to win over the file: %v", err)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	e := setupTest(t)
	if _, err := e.run(t, "", "config", "set", "timeout", "3s"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := e.run(t, "", "config", "set", "theme", "neon"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	b, err := os.ReadFile(e.config)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var saved config.Config
	if err := yaml.Unmarshal(b, &saved); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if saved.Theme != "neon" || saved.Timeout.String() != "3s" {
		t.Fatalf("unexpected saved config %+v", saved)
	}
	if saved.ServerURL != config.Default().ServerURL {
		t.Fatalf("expected --server not to leak into the file; got %q", saved.ServerURL)
	}

	out, err := e.run(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "theme: neon") || !strings.Contains(out, e.url) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestConfigSet_RejectsBadValues(t *testing.T) {
	e := setupTest(t)
	for _, kv := range [][2]string{{"timeout", "soon"}, {"theme", "plaid"}, {"output_format", "xml"}, {"colour", "red"}} {
		_, err := e.run(t, "", "config", "set", kv[0], kv[1])
		if code := ExitCode(err); code != 2 {
			t.Fatalf("%v: expected exit 2; got %d (%v)", kv, code, err)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	e := setupTest(t)
	out, err := e.run(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "menu version") || !strings.Contains(out, e.url) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, closeFn, err := openBackend(ctx, "sqlite", filepath.Join(dir, "menus.db"))
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	if _, ok := st.(*sqlitestore.Store); !ok {
		t.Fatalf("expected sqlite store; got %T", st)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, _, err := openBackend(ctx, "json", filepath.Join(dir, "menus.json")); err != nil {
		t.Fatalf("json: %v", err)
	}
	if _, _, err := openBackend(ctx, "etcd", ""); ExitCode(err) != 2 {
		t.Fatalf("expected usage error for unknown backend; got %v", err)
	}
}
