package gateway

import "strings"

// MessageKey identifies a user-facing failure message.
type MessageKey string

const (
	MsgLoadTasks      MessageKey = "load_tasks"
	MsgQueryTasks     MessageKey = "query_tasks"
	MsgCreateTask     MessageKey = "create_task"
	MsgUpdateTask     MessageKey = "update_task"
	MsgDeleteTask     MessageKey = "delete_task"
	MsgTaskNotExist   MessageKey = "task_not_exist"
	MsgTaskStats      MessageKey = "task_stats"
	MsgLoadSettings   MessageKey = "load_settings"
	MsgSaveSettings   MessageKey = "save_settings"
	MsgExportData     MessageKey = "export_data"
	MsgImportData     MessageKey = "import_data"
	MsgParseData      MessageKey = "parse_data"
	MsgClearData      MessageKey = "clear_data"
	MsgOpenFile       MessageKey = "open_file"
	MsgWriteTempFile  MessageKey = "write_temp_file"
	MsgDecodeFileData MessageKey = "decode_file_data"
)

// Catalog maps message keys to text in one language.
type Catalog map[MessageKey]string

const DefaultLocale = "en"

var catalogs = map[string]Catalog{
	"en": {
		MsgLoadTasks:      "Failed to load tasks",
		MsgQueryTasks:     "Failed to query tasks",
		MsgCreateTask:     "Failed to create task",
		MsgUpdateTask:     "Failed to update task",
		MsgDeleteTask:     "Failed to delete task",
		MsgTaskNotExist:   "Task does not exist",
		MsgTaskStats:      "Failed to get task statistics",
		MsgLoadSettings:   "Failed to load settings",
		MsgSaveSettings:   "Failed to save settings",
		MsgExportData:     "Failed to export data",
		MsgImportData:     "Failed to import data",
		MsgParseData:      "Failed to parse data",
		MsgClearData:      "Failed to clear data",
		MsgOpenFile:       "Failed to open file",
		MsgWriteTempFile:  "Failed to write temporary file",
		MsgDecodeFileData: "Failed to decode file data",
	},
	"zh": {
		MsgLoadTasks:      "加载待办失败",
		MsgQueryTasks:     "查询待办失败",
		MsgCreateTask:     "创建待办失败",
		MsgUpdateTask:     "更新待办失败",
		MsgDeleteTask:     "删除待办失败",
		MsgTaskNotExist:   "待办不存在",
		MsgTaskStats:      "获取统计信息失败",
		MsgLoadSettings:   "加载设置失败",
		MsgSaveSettings:   "保存设置失败",
		MsgExportData:     "导出数据失败",
		MsgImportData:     "导入数据失败",
		MsgParseData:      "解析数据失败",
		MsgClearData:      "清空数据失败",
		MsgOpenFile:       "打开文件失败",
		MsgWriteTempFile:  "写入临时文件失败",
		MsgDecodeFileData: "解码文件数据失败",
	},
}

// Messages returns the catalog for locale. Region suffixes are ignored, so
// "zh-CN" and "zh_TW" both resolve to "zh"; unknown locales fall back to English.
func Messages(locale string) Catalog {
	lang := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if c, ok := catalogs[lang]; ok {
		return c
	}
	return catalogs[DefaultLocale]
}

// Text returns the message for key, or the key itself if it is missing.
func (c Catalog) Text(key MessageKey) string {
	if msg, ok := c[key]; ok {
		return msg
	}
	return string(key)
}
