package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"quirknotes/internal/app"
	notesclient "quirknotes/internal/client"
	"quirknotes/internal/config"
	"quirknotes/internal/daemon"
	"quirknotes/internal/logging"
	"quirknotes/internal/types"
)

type fakeCommandClient struct {
	healthErr error
	baseURL   string
	notes     []*types.Note
	created   []types.NoteFields
	updated   map[string]types.NoteFields
	deleted   []string
	cleared   int
	listErr   error
	createdID string
}

func (f *fakeCommandClient) BaseURL() string { return f.baseURL }

func (f *fakeCommandClient) Health(context.Context) (*notesclient.HealthResponse, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return &notesclient.HealthResponse{OK: true, Version: "test"}, nil
}

func (f *fakeCommandClient) ListNotes(context.Context) ([]*types.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.notes, nil
}

func (f *fakeCommandClient) CreateNote(_ context.Context, fields types.NoteFields) (*types.Note, error) {
	f.created = append(f.created, fields)
	return &types.Note{ID: f.createdID, Title: fields.Title, Content: fields.Content}, nil
}

func (f *fakeCommandClient) UpdateNote(_ context.Context, id string, fields types.NoteFields) (*types.Note, error) {
	if f.updated == nil {
		f.updated = map[string]types.NoteFields{}
	}
	f.updated[id] = fields
	return &types.Note{ID: id, Title: fields.Title, Content: fields.Content}, nil
}

func (f *fakeCommandClient) DeleteNote(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCommandClient) DeleteAllNotes(context.Context) error {
	f.cleared++
	return nil
}

type testHarness struct {
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	client  *fakeCommandClient
	baseURL string
	timeout time.Duration
	wiring  commandWiring
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	h := &testHarness{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		client: &fakeCommandClient{},
	}
	h.wiring = commandWiring{
		stdout: h.stdout,
		stderr: h.stderr,
		loadConfig: func() (config.Config, error) {
			return config.DefaultConfig(), nil
		},
		newClient: func(baseURL string, timeout time.Duration) (commandClient, error) {
			h.baseURL = baseURL
			h.timeout = timeout
			h.client.baseURL = baseURL
			return h.client, nil
		},
		runUI: func(app.NotesAPI, app.Options) error {
			return errors.New("ui not expected")
		},
		runDaemon: func(context.Context, *daemon.Daemon) error {
			return errors.New("daemon not expected")
		},
		version: "test",
	}
	return h
}

func (h *testHarness) run(args ...string) error {
	root := newRootCommand(h.wiring)
	root.SetArgs(args)
	return root.Execute()
}

func sampleNotes() []*types.Note {
	return []*types.Note{
		{ID: "n1", Title: "Groceries", Content: "milk\neggs"},
		{ID: "n2", Title: "Ideas", Content: strings.Repeat("long ", 20)},
	}
}

func TestListCommandPrintsTable(t *testing.T) {
	h := newTestHarness(t)
	h.client.notes = sampleNotes()

	if err := h.run("ls"); err != nil {
		t.Fatalf("ls: %v", err)
	}
	out := h.stdout.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[1], "milk eggs") {
		t.Fatalf("unexpected table: %q", out)
	}
	if !strings.Contains(lines[2], "…") {
		t.Fatalf("expected long content preview truncated: %q", lines[2])
	}
	if h.baseURL != "http://localhost:4000" || h.timeout != 10*time.Second {
		t.Fatalf("unexpected client config: %s %s", h.baseURL, h.timeout)
	}
}

func TestListCommandStructuredFormats(t *testing.T) {
	h := newTestHarness(t)
	h.client.notes = sampleNotes()

	if err := h.run("ls", "--format", "json"); err != nil {
		t.Fatalf("ls json: %v", err)
	}
	var decoded []types.Note
	if err := json.Unmarshal(h.stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "n1" {
		t.Fatalf("unexpected json notes: %#v", decoded)
	}
	if !strings.Contains(h.stdout.String(), `"_id": "n1"`) {
		t.Fatalf("expected wire id field in json output")
	}

	h.stdout.Reset()
	if err := h.run("ls", "--format", "yaml"); err != nil {
		t.Fatalf("ls yaml: %v", err)
	}
	var fromYAML []types.Note
	if err := yaml.Unmarshal(h.stdout.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if len(fromYAML) != 2 || fromYAML[1].Title != "Ideas" {
		t.Fatalf("unexpected yaml notes: %#v", fromYAML)
	}

	if err := h.run("ls", "--format", "xml"); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestBaseURLFlagOverridesConfig(t *testing.T) {
	h := newTestHarness(t)
	if err := h.run("ls", "--base-url", "http://notes.internal:9000/"); err != nil {
		t.Fatalf("ls: %v", err)
	}
	if h.baseURL != "http://notes.internal:9000" {
		t.Fatalf("unexpected base url %q", h.baseURL)
	}
}

func TestAddCommandPostsNormalizedFields(t *testing.T) {
	h := newTestHarness(t)
	h.client.createdID = "n42"

	if err := h.run("add", "--title", "  Hello ", "--content", "World\n"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(h.client.created) != 1 || h.client.created[0].Title != "Hello" || h.client.created[0].Content != "World" {
		t.Fatalf("unexpected create calls: %#v", h.client.created)
	}
	if strings.TrimSpace(h.stdout.String()) != "n42" {
		t.Fatalf("expected new id printed, got %q", h.stdout.String())
	}

	if err := h.run("add", "--content", "no title"); err == nil || err.Error() != "title is required" {
		t.Fatalf("expected title error, got %v", err)
	}
}

func TestEditRemoveAndClearCommands(t *testing.T) {
	h := newTestHarness(t)

	if err := h.run("edit", "n1", "--title", "B", "--content", "kept"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := h.client.updated["n1"]; got.Title != "B" || got.Content != "kept" {
		t.Fatalf("unexpected update: %#v", got)
	}
	if err := h.run("edit", "n1"); err == nil {
		t.Fatalf("expected edit without flags to fail")
	}
	if err := h.run("rm", "n1"); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if len(h.client.deleted) != 1 || h.client.deleted[0] != "n1" {
		t.Fatalf("unexpected deletes: %v", h.client.deleted)
	}
	if err := h.run("rm"); err == nil {
		t.Fatalf("expected rm without id to fail")
	}
	if err := h.run("clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if h.client.cleared != 1 {
		t.Fatalf("expected one delete all call, got %d", h.client.cleared)
	}
}

func TestConfigCommandFormats(t *testing.T) {
	h := newTestHarness(t)

	if err := h.run("config", "--default", "--format", "toml"); err != nil {
		t.Fatalf("config toml: %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, "[backend]") || !strings.Contains(out, "base_url") || !strings.Contains(out, "http://localhost:4000") {
		t.Fatalf("unexpected toml output: %q", out)
	}

	h.stdout.Reset()
	if err := h.run("config", "--format", "yaml"); err != nil {
		t.Fatalf("config yaml: %v", err)
	}
	var decoded configOutput
	if err := yaml.Unmarshal(h.stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if !decoded.Notes.RollbackFailedDeletes || decoded.Server.Storage != config.StorageFile {
		t.Fatalf("unexpected config output: %#v", decoded)
	}

	h.stdout.Reset()
	if err := h.run("config"); err != nil {
		t.Fatalf("config json: %v", err)
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.Backend.Timeout != "10s" {
		t.Fatalf("unexpected timeout %q", decoded.Backend.Timeout)
	}
}

func TestUICommandPassesConfigToModel(t *testing.T) {
	h := newTestHarness(t)
	disabled := false
	h.wiring.loadConfig = func() (config.Config, error) {
		cfg := config.DefaultConfig()
		cfg.Notes.RollbackFailedDeletes = &disabled
		cfg.Backend.Timeout = "3s"
		return cfg, nil
	}
	logPath := filepath.Join(t.TempDir(), "ui.log")
	h.wiring.uiLogPath = func() (string, error) { return logPath, nil }
	var got app.Options
	var gotAPI app.NotesAPI
	h.wiring.runUI = func(api app.NotesAPI, opts app.Options) error {
		gotAPI = api
		got = opts
		return nil
	}

	if err := h.run("ui", "--base-url", "http://127.0.0.1:5000"); err != nil {
		t.Fatalf("ui: %v", err)
	}
	if gotAPI != app.NotesAPI(h.client) {
		t.Fatalf("expected the resolved client to reach the UI")
	}
	if got.RollbackFailedDeletes || !got.ConfirmDeleteAll || !got.RenderMarkdown {
		t.Fatalf("unexpected ui options: %#v", got)
	}
	if got.RequestTimeout != 3*time.Second || got.Logger == nil {
		t.Fatalf("unexpected timeout or logger: %#v", got)
	}
	if h.baseURL != "http://127.0.0.1:5000" {
		t.Fatalf("unexpected base url %q", h.baseURL)
	}
}

func TestServeCommandRunsDaemonOnConfiguredStorage(t *testing.T) {
	h := newTestHarness(t)
	dataPath := filepath.Join(t.TempDir(), "notes.db")
	var ran *daemon.Daemon
	h.wiring.runDaemon = func(ctx context.Context, d *daemon.Daemon) error {
		ran = d
		return nil
	}

	if err := h.run("serve", "--backend", "bbolt", "--data", dataPath, "--addr", "127.0.0.1:0"); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if ran == nil {
		t.Fatalf("expected daemon to run")
	}
}

func TestEndToEndAgainstDevBackend(t *testing.T) {
	h := newTestHarness(t)
	repo, err := openServerRepository(context.Background(), config.Config{
		Server: config.ServerConfig{Storage: config.StorageFile, DataPath: filepath.Join(t.TempDir(), "notes.json")},
	}, logging.Nop())
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	defer repo.Close()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- daemon.New("", "test", repo, nil).Serve(ctx, listener) }()
	defer func() {
		cancel()
		<-done
	}()

	h.wiring.newClient = newNotesClient
	base := "http://" + listener.Addr().String()
	if err := h.run("add", "--base-url", base, "--title", "From CLI", "--content", "hello"); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := strings.TrimSpace(h.stdout.String())
	if id == "" {
		t.Fatalf("expected created id")
	}

	h.stdout.Reset()
	if err := h.run("ls", "--base-url", base, "--format", "json"); err != nil {
		t.Fatalf("ls: %v", err)
	}
	var notes []types.Note
	if err := json.Unmarshal(h.stdout.Bytes(), &notes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != id || notes[0].Title != "From CLI" {
		t.Fatalf("unexpected notes: %#v", notes)
	}

	if err := h.run("rm", "--base-url", base, "missing"); err == nil {
		t.Fatalf("expected deleting an unknown note to fail")
	}
}

func TestEditKeepsFieldsWithoutFlags(t *testing.T) {
	h := newTestHarness(t)
	h.client.notes = []*types.Note{{ID: "n1", Title: "A", Content: "line one\n\tline two"}}

	if err := h.run("edit", "n1", "--title", "B"); err != nil {
		t.Fatalf("edit title: %v", err)
	}
	if got := h.client.updated["n1"]; got.Title != "B" || got.Content != "line one\n\tline two" {
		t.Fatalf("expected content kept, got %#v", got)
	}

	if err := h.run("edit", "n1", "--content", "new body"); err != nil {
		t.Fatalf("edit content: %v", err)
	}
	if got := h.client.updated["n1"]; got.Title != "A" || got.Content != "new body" {
		t.Fatalf("expected title kept, got %#v", got)
	}

	if err := h.run("edit", "n1", "--content", ""); err != nil {
		t.Fatalf("edit clearing content: %v", err)
	}
	if got := h.client.updated["n1"]; got.Content != "" {
		t.Fatalf("expected explicit empty content sent, got %#v", got)
	}

	err := h.run("edit", "missing", "--title", "X")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestStatusCommandReportsBackendHealth(t *testing.T) {
	h := newTestHarness(t)

	if err := h.run("status"); err != nil {
		t.Fatalf("status: %v", err)
	}
	out := h.stdout.String()
	if !strings.Contains(out, "http://localhost:4000") || !strings.Contains(out, "status   ok") || !strings.Contains(out, "version  test") {
		t.Fatalf("unexpected status output: %q", out)
	}

	h.stdout.Reset()
	if err := h.run("status", "--format", "json"); err != nil {
		t.Fatalf("status json: %v", err)
	}
	var decoded statusOutput
	if err := json.Unmarshal(h.stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.OK || decoded.Version != "test" || decoded.BaseURL != "http://localhost:4000" {
		t.Fatalf("unexpected status: %#v", decoded)
	}

	h.client.healthErr = errors.New("connection refused")
	err := h.run("status")
	if err == nil || !strings.Contains(err.Error(), "unreachable") {
		t.Fatalf("expected unreachable error, got %v", err)
	}
}

func TestStatusAgainstDevBackend(t *testing.T) {
	h := newTestHarness(t)
	repo, err := openServerRepository(context.Background(), config.Config{
		Server: config.ServerConfig{Storage: config.StorageFile, DataPath: filepath.Join(t.TempDir(), "notes.json")},
	}, logging.Nop())
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	defer repo.Close()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- daemon.New("", "v1.2.3", repo, nil).Serve(ctx, listener) }()
	defer func() {
		cancel()
		<-done
	}()

	h.wiring.newClient = newNotesClient
	if err := h.run("status", "--base-url", "http://"+listener.Addr().String(), "--format", "yaml"); err != nil {
		t.Fatalf("status: %v", err)
	}
	var decoded statusOutput
	if err := yaml.Unmarshal(h.stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.OK || decoded.Version != "v1.2.3" {
		t.Fatalf("unexpected status: %#v", decoded)
	}
}
