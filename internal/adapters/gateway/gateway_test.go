package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/todoapp/core/internal/adapters/repository"
	"github.com/todoapp/core/internal/application/services"
	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes map[string][]string
}

func (r *recordingObserver) ObserveOperation(operation, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string][]string)
	}
	r.outcomes[operation] = append(r.outcomes[operation], outcome)
}

func (r *recordingObserver) last(operation string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.outcomes[operation]
	if len(o) == 0 {
		return ""
	}
	return o[len(o)-1]
}

type fakeOpener struct {
	name    string
	content []byte
	err     error
}

func (f *fakeOpener) Open(_ context.Context, fileName string, content []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.name, f.content = fileName, content
	return filepath.Join("/tmp", fileName), nil
}

type fixture struct {
	gw       *Gateway
	observer *recordingObserver
	opener   *fakeOpener
	logs     *observer.ObservedLogs
	dataDir  string
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	log := logger.FromZap(zap.New(core))

	dir := filepath.Join(t.TempDir(), ".todo-app")
	store, err := repository.NewJSONStore(dir, repository.WithLogger(log))
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}
	validator, err := repository.NewSchemaValidator()
	if err != nil {
		t.Fatalf("NewSchemaValidator failed: %v", err)
	}

	guard := services.NewGuard()
	obs := &recordingObserver{}
	opener := &fakeOpener{}
	opts = append([]Option{WithLogger(log), WithObserver(obs), WithFileOpener(opener)}, opts...)
	gw := New(
		services.NewTaskService(store, guard, log),
		services.NewSettingsService(store, guard, log),
		services.NewDataService(store, validator, guard, log),
		opts...,
	)
	return &fixture{gw: gw, observer: obs, opener: opener, logs: logs, dataDir: dir}
}

func strPtr(s string) *string { return &s }

func TestEnvelopeJSONShape(t *testing.T) {
	okJSON, _ := json.Marshal(Ok(true))
	if string(okJSON) != `{"success":true,"data":true,"error":null}` {
		t.Errorf("success envelope = %s", okJSON)
	}
	failJSON, _ := json.Marshal(Fail[bool]("boom"))
	if string(failJSON) != `{"success":false,"data":null,"error":"boom"}` {
		t.Errorf("failure envelope = %s", failJSON)
	}
}

func TestCreateAndGetTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.gw.CreateTask(ctx, ports.CreateTaskRequest{Title: "Plan trip", Priority: strPtr("High")})
	if !created.Success || created.Data == nil || created.Error != nil {
		t.Fatalf("CreateTask envelope: %+v", created)
	}
	if created.Data.Priority != entities.PriorityHigh {
		t.Errorf("Priority = %q", created.Data.Priority)
	}

	list := f.gw.GetTasks(ctx)
	if !list.Success || len(*list.Data) != 1 || (*list.Data)[0].ID != created.Data.ID {
		t.Fatalf("GetTasks envelope: %+v", list)
	}
	if got := f.observer.last("create_task"); got != OutcomeSuccess {
		t.Errorf("create_task outcome = %q", got)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ports.CreateTaskRequest
	}{
		{"missing title", ports.CreateTaskRequest{}},
		{"title too long", ports.CreateTaskRequest{Title: strings.Repeat("x", 501)}},
		{"attachment without id", ports.CreateTaskRequest{Title: "t", Attachments: []entities.Attachment{{Name: "a.txt"}}}},
		{"attachment with bad data", ports.CreateTaskRequest{Title: "t", Attachments: []entities.Attachment{{ID: "1", Name: "a.txt", Data: "%%%"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.gw.CreateTask(ctx, tt.req)
			if resp.Success || resp.Error == nil {
				t.Fatalf("expected failure, got %+v", resp)
			}
			if !strings.HasPrefix(*resp.Error, "Failed to create task: ") {
				t.Errorf("message = %q", *resp.Error)
			}
			if got := f.observer.last("create_task"); got != string(entities.KindValidation) {
				t.Errorf("outcome = %q, want validation", got)
			}
		})
	}

	if list := f.gw.GetTasks(ctx); len(*list.Data) != 0 {
		t.Errorf("invalid requests stored %d tasks", len(*list.Data))
	}
}

func TestUpdateTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.gw.CreateTask(ctx, ports.CreateTaskRequest{Title: "Draft"})

	done := true
	resp := f.gw.UpdateTask(ctx, created.Data.ID, ports.UpdateTaskRequest{Completed: &done, Title: strPtr("Final")})
	if !resp.Success || resp.Data == nil || !resp.Data.Completed || resp.Data.Title != "Final" {
		t.Fatalf("UpdateTask envelope: %+v", resp)
	}

	missing := f.gw.UpdateTask(ctx, "nonexistent-id", ports.UpdateTaskRequest{Completed: &done})
	if !missing.Success || missing.Data != nil || missing.Error != nil {
		t.Errorf("unknown id should succeed without data, got %+v", missing)
	}
	if got := f.observer.last("update_task"); got != OutcomeNotFound {
		t.Errorf("outcome = %q, want not_found", got)
	}

	empty := f.gw.UpdateTask(ctx, created.Data.ID, ports.UpdateTaskRequest{Title: strPtr("")})
	if empty.Success {
		t.Error("empty title should fail validation")
	}
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.gw.CreateTask(ctx, ports.CreateTaskRequest{Title: "Temp"})

	first := f.gw.DeleteTask(ctx, created.Data.ID)
	if !first.Success || first.Data == nil || !*first.Data {
		t.Fatalf("first delete: %+v", first)
	}

	second := f.gw.DeleteTask(ctx, created.Data.ID)
	if second.Success || second.Error == nil || *second.Error != "Task does not exist" {
		t.Fatalf("second delete: %+v", second)
	}
}

func TestLocalizedMessages(t *testing.T) {
	f := newFixture(t, WithLocale("zh-CN"))

	resp := f.gw.DeleteTask(context.Background(), "nope")
	if resp.Error == nil || *resp.Error != "待办不存在" {
		t.Errorf("message = %v", resp.Error)
	}

	if Messages("fr").Text(MsgTaskNotExist) != "Task does not exist" {
		t.Error("unknown locale should fall back to English")
	}
}

func TestStatsAndSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gw.CreateTask(ctx, ports.CreateTaskRequest{Title: "a", Priority: strPtr("low")})
	f.gw.CreateTask(ctx, ports.CreateTaskRequest{Title: "b", Priority: strPtr("high")})

	stats := f.gw.GetTaskStats(ctx)
	if !stats.Success || stats.Data.Total != 2 || stats.Data.Pending != 2 || stats.Data.LowPriority != 1 {
		t.Errorf("GetTaskStats: %+v", stats.Data)
	}

	settings := f.gw.GetSettings(ctx)
	if !settings.Success || *settings.Data != entities.DefaultSettings() {
		t.Fatalf("GetSettings: %+v", settings)
	}

	next := *settings.Data
	next.Theme = entities.ThemePink
	next.Notifications = false
	saved := f.gw.UpdateSettings(ctx, next)
	if !saved.Success || saved.Data.Theme != entities.ThemePink || saved.Data.Notifications {
		t.Fatalf("UpdateSettings: %+v", saved)
	}

	tooLong := next
	tooLong.Username = strPtr(strings.Repeat("u", 65))
	if resp := f.gw.UpdateSettings(ctx, tooLong); resp.Success {
		t.Error("overlong username should fail validation")
	}
}

func TestExportImportClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gw.CreateTask(ctx, ports.CreateTaskRequest{Title: "keep me"})

	exported := f.gw.ExportData(ctx)
	if !exported.Success || !strings.Contains(*exported.Data, `"keep me"`) {
		t.Fatalf("ExportData: %+v", exported)
	}

	cleared := f.gw.ClearAllData(ctx)
	if !cleared.Success || !*cleared.Data {
		t.Fatalf("ClearAllData: %+v", cleared)
	}

	imported := f.gw.ImportData(ctx, *exported.Data)
	if !imported.Success {
		t.Fatalf("ImportData: %+v", imported)
	}
	if list := f.gw.GetTasks(ctx); len(*list.Data) != 1 {
		t.Errorf("after import: %d tasks", len(*list.Data))
	}

	bad := f.gw.ImportData(ctx, `{"not":"an array"}`)
	if bad.Success || !strings.HasPrefix(*bad.Error, "Failed to parse data: ") {
		t.Errorf("bad import: %+v", bad)
	}
	if got := f.observer.last("import_data"); got != string(entities.KindInvalidDocument) {
		t.Errorf("outcome = %q", got)
	}
	if list := f.gw.GetTasks(ctx); len(*list.Data) != 1 {
		t.Errorf("rejected import changed collection: %d tasks", len(*list.Data))
	}

	if dir := f.gw.GetDataDirPath(ctx); *dir.Data != f.dataDir {
		t.Errorf("GetDataDirPath = %q, want %q", *dir.Data, f.dataDir)
	}
}

func TestFailureIsLoggedWithKind(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := f.gw.GetTasks(ctx)
	if resp.Success {
		t.Fatal("expected failure on canceled context")
	}

	entries := f.logs.FilterMessage("Operation failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d failure log entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["operation"] != "get_tasks" || fields["kind"] != string(entities.KindCanceled) {
		t.Errorf("log fields = %v", fields)
	}
}

func TestOpenFileWithSystem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	attachment := entities.NewAttachment("notes.txt", "text/plain", []byte("hello"))
	resp := f.gw.OpenFileWithSystem(ctx, ports.OpenFileRequest{
		FileName: attachment.Name,
		FileData: attachment.Data,
		FileType: attachment.FileType,
	})
	if !resp.Success {
		t.Fatalf("OpenFileWithSystem: %+v", resp)
	}
	if f.opener.name != "notes.txt" || string(f.opener.content) != "hello" {
		t.Errorf("opener got %q %q", f.opener.name, f.opener.content)
	}

	bad := f.gw.OpenFileWithSystem(ctx, ports.OpenFileRequest{FileName: "x", FileData: "***"})
	if bad.Success || !strings.HasPrefix(*bad.Error, "Failed to decode file data: ") {
		t.Errorf("bad data: %+v", bad)
	}

	f.opener.err = &entities.StorageError{Op: "write", Path: "/tmp/x", Err: errors.New("disk full")}
	full := f.gw.OpenFileWithSystem(ctx, ports.OpenFileRequest{FileName: "x", FileData: "aGk="})
	if full.Success || !strings.HasPrefix(*full.Error, "Failed to write temporary file: ") {
		t.Errorf("write failure: %+v", full)
	}
}
