package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

// Response is the envelope every gateway operation returns. Data and Error are
// never both set.
type Response[T any] struct {
	Success bool    `json:"success"`
	Data    *T      `json:"data"`
	Error   *string `json:"error"`
}

// Ok wraps data in a successful envelope
func Ok[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: &data}
}

// Fail builds a failed envelope carrying msg
func Fail[T any](msg string) Response[T] {
	return Response[T]{Success: false, Error: &msg}
}

// Value returns the payload, or the zero value when there is none.
func (r Response[T]) Value() T {
	var zero T
	if r.Data == nil {
		return zero
	}
	return *r.Data
}

// Outcome labels recorded for operations that did not fail with an error kind.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
)

// Gateway exposes the services as request/response operations. No error
// crosses it: failures are logged with their kind and returned as a localized
// message inside the envelope.
type Gateway struct {
	tasks    ports.TaskService
	settings ports.SettingsService
	data     ports.DataService
	opener   ports.FileOpener
	observer ports.OperationObserver
	validate *validator.Validate
	messages Catalog
	logger   *logger.Logger
}

// Option configures a Gateway
type Option func(*Gateway)

// WithLocale selects the message catalog
func WithLocale(locale string) Option {
	return func(g *Gateway) { g.messages = Messages(locale) }
}

// WithObserver records every operation's outcome and latency
func WithObserver(o ports.OperationObserver) Option {
	return func(g *Gateway) { g.observer = o }
}

// WithFileOpener enables OpenFileWithSystem
func WithFileOpener(o ports.FileOpener) Option {
	return func(g *Gateway) { g.opener = o }
}

// WithLogger sets the logger failures are recorded on
func WithLogger(l *logger.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// New creates a gateway over the given services
func New(tasks ports.TaskService, settings ports.SettingsService, data ports.DataService, opts ...Option) *Gateway {
	g := &Gateway{
		tasks:    tasks,
		settings: settings,
		data:     data,
		validate: validator.New(),
		messages: Messages(DefaultLocale),
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.WithComponent("gateway")
	return g
}

// GetTasks returns every task in insertion order
func (g *Gateway) GetTasks(ctx context.Context) Response[[]entities.Task] {
	start := time.Now()
	tasks, err := g.tasks.ListTasks(ctx)
	if err != nil {
		return fail[[]entities.Task](g, "get_tasks", MsgLoadTasks, start, err)
	}
	g.observe("get_tasks", OutcomeSuccess, start)
	return Ok(tasks)
}

// QueryTasks returns the tasks matching query
func (g *Gateway) QueryTasks(ctx context.Context, query ports.TaskQuery) Response[[]entities.Task] {
	start := time.Now()
	tasks, err := g.tasks.QueryTasks(ctx, query)
	if err != nil {
		return fail[[]entities.Task](g, "query_tasks", MsgQueryTasks, start, err)
	}
	g.observe("query_tasks", OutcomeSuccess, start)
	return Ok(tasks)
}

// CreateTask validates req and stores a new task
func (g *Gateway) CreateTask(ctx context.Context, req ports.CreateTaskRequest) Response[entities.Task] {
	start := time.Now()
	if err := g.validateStruct(req); err != nil {
		return fail[entities.Task](g, "create_task", MsgCreateTask, start, err)
	}

	task, err := g.tasks.CreateTask(ctx, req)
	if err != nil {
		return fail[entities.Task](g, "create_task", MsgCreateTask, start, err)
	}
	g.observe("create_task", OutcomeSuccess, start)
	return Ok(*task)
}

// UpdateTask applies a partial update. An unknown id is a successful call with
// no data.
func (g *Gateway) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) Response[entities.Task] {
	start := time.Now()
	if err := g.validateStruct(req); err != nil {
		return fail[entities.Task](g, "update_task", MsgUpdateTask, start, err)
	}

	task, err := g.tasks.UpdateTask(ctx, id, req)
	if errors.Is(err, entities.ErrTaskNotFound) {
		g.observe("update_task", OutcomeNotFound, start)
		return Response[entities.Task]{Success: true}
	}
	if err != nil {
		return fail[entities.Task](g, "update_task", MsgUpdateTask, start, err)
	}
	g.observe("update_task", OutcomeSuccess, start)
	return Ok(*task)
}

// DeleteTask removes the task with id. An unknown id fails with a dedicated message.
func (g *Gateway) DeleteTask(ctx context.Context, id string) Response[bool] {
	start := time.Now()
	removed, err := g.tasks.DeleteTask(ctx, id)
	if err != nil {
		return fail[bool](g, "delete_task", MsgDeleteTask, start, err)
	}
	if !removed {
		g.observe("delete_task", OutcomeNotFound, start)
		return Fail[bool](g.messages.Text(MsgTaskNotExist))
	}
	g.observe("delete_task", OutcomeSuccess, start)
	return Ok(true)
}

// GetTaskStats aggregates the task collection
func (g *Gateway) GetTaskStats(ctx context.Context) Response[entities.TaskStats] {
	start := time.Now()
	stats, err := g.tasks.GetStats(ctx)
	if err != nil {
		return fail[entities.TaskStats](g, "get_task_stats", MsgTaskStats, start, err)
	}
	g.observe("get_task_stats", OutcomeSuccess, start)
	return Ok(*stats)
}

// GetSettings returns the settings document
func (g *Gateway) GetSettings(ctx context.Context) Response[entities.Settings] {
	start := time.Now()
	settings, err := g.settings.GetSettings(ctx)
	if err != nil {
		return fail[entities.Settings](g, "get_settings", MsgLoadSettings, start, err)
	}
	g.observe("get_settings", OutcomeSuccess, start)
	return Ok(*settings)
}

// UpdateSettings replaces the settings document
func (g *Gateway) UpdateSettings(ctx context.Context, settings entities.Settings) Response[entities.Settings] {
	start := time.Now()
	if err := g.validateStruct(settings); err != nil {
		return fail[entities.Settings](g, "update_settings", MsgSaveSettings, start, err)
	}

	saved, err := g.settings.UpdateSettings(ctx, settings)
	if err != nil {
		return fail[entities.Settings](g, "update_settings", MsgSaveSettings, start, err)
	}
	g.observe("update_settings", OutcomeSuccess, start)
	return Ok(*saved)
}

// ExportData returns all tasks as a JSON string
func (g *Gateway) ExportData(ctx context.Context) Response[string] {
	start := time.Now()
	data, err := g.data.Export(ctx)
	if err != nil {
		return fail[string](g, "export_data", MsgExportData, start, err)
	}
	g.observe("export_data", OutcomeSuccess, start)
	return Ok(data)
}

// ImportData replaces the task collection with the tasks encoded in data
func (g *Gateway) ImportData(ctx context.Context, data string) Response[bool] {
	start := time.Now()
	if err := g.validateStruct(ports.ImportRequest{Data: data}); err != nil {
		return fail[bool](g, "import_data", MsgParseData, start, err)
	}

	if _, err := g.data.Import(ctx, data); err != nil {
		key := MsgImportData
		if errors.Is(err, entities.ErrInvalidDocument) {
			key = MsgParseData
		}
		return fail[bool](g, "import_data", key, start, err)
	}
	g.observe("import_data", OutcomeSuccess, start)
	return Ok(true)
}

// ClearAllData empties the task collection
func (g *Gateway) ClearAllData(ctx context.Context) Response[bool] {
	start := time.Now()
	if err := g.data.Clear(ctx); err != nil {
		return fail[bool](g, "clear_all_data", MsgClearData, start, err)
	}
	g.observe("clear_all_data", OutcomeSuccess, start)
	return Ok(true)
}

// GetDataDirPath returns the absolute data directory
func (g *Gateway) GetDataDirPath(_ context.Context) Response[string] {
	start := time.Now()
	dir := g.data.DataDir()
	g.observe("get_data_dir_path", OutcomeSuccess, start)
	return Ok(dir)
}

// OpenFileWithSystem decodes the attachment in req to a temp file and hands it
// to the default application. It does not touch task storage.
func (g *Gateway) OpenFileWithSystem(ctx context.Context, req ports.OpenFileRequest) Response[bool] {
	start := time.Now()
	if err := g.validateStruct(req); err != nil {
		return fail[bool](g, "open_file_with_system", MsgOpenFile, start, err)
	}
	if g.opener == nil {
		return fail[bool](g, "open_file_with_system", MsgOpenFile, start, errors.New("no file opener configured"))
	}

	attachment := entities.Attachment{Name: req.FileName, FileType: req.FileType, Data: req.FileData}
	content, err := attachment.Decode()
	if err != nil {
		return fail[bool](g, "open_file_with_system", MsgDecodeFileData, start, fmt.Errorf("%w: %v", entities.ErrValidation, err))
	}

	if _, err := g.opener.Open(ctx, attachment.Name, content); err != nil {
		key := MsgOpenFile
		var storageErr *entities.StorageError
		if errors.As(err, &storageErr) {
			key = MsgWriteTempFile
		}
		return fail[bool](g, "open_file_with_system", key, start, err)
	}
	g.observe("open_file_with_system", OutcomeSuccess, start)
	return Ok(true)
}

// Reject builds the failure envelope for a request a transport could not decode.
func Reject[T any](g *Gateway, operation string, key MessageKey, err error) Response[T] {
	return fail[T](g, operation, key, time.Now(), fmt.Errorf("%w: %v", entities.ErrValidation, err))
}

func (g *Gateway) validateStruct(v interface{}) error {
	if err := g.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}
	return nil
}

func (g *Gateway) observe(operation, outcome string, start time.Time) {
	if g.observer != nil {
		g.observer.ObserveOperation(operation, outcome, time.Since(start))
	}
}

// fail captures the error kind before the error is flattened to text.
func fail[T any](g *Gateway, operation string, key MessageKey, start time.Time, err error) Response[T] {
	kind := string(entities.KindOf(err))
	g.logger.LogOperationFailure(operation, kind, err)
	g.observe(operation, kind, start)
	return Fail[T](fmt.Sprintf("%s: %v", g.messages.Text(key), err))
}
