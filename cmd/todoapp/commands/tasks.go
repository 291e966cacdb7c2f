package commands

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/ports"
)

// NewTasksCommand creates the tasks command group
func NewTasksCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and change tasks",
	}

	cmd.AddCommand(newTasksListCommand(st))
	cmd.AddCommand(newTasksAddCommand(st))
	cmd.AddCommand(newTasksDoneCommand(st))
	cmd.AddCommand(newTasksUpdateCommand(st))
	cmd.AddCommand(newTasksRemoveCommand(st))
	cmd.AddCommand(newTasksStatsCommand(st))

	return cmd
}

func newTasksListCommand(st *state) *cobra.Command {
	var query ports.TaskQuery
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered, searched and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw := st.App().Gateway
			if filter == "" && query.Search == "" && !query.Sorted {
				return printResponse(cmd, gw.GetTasks(cmd.Context()))
			}
			query.Filter = entities.ParseTaskFilter(filter)
			return printResponse(cmd, gw.QueryTasks(cmd.Context(), query))
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "all, pending, completed, today or overdue")
	cmd.Flags().StringVarP(&query.Search, "search", "q", "", "case-insensitive text in title or description")
	cmd.Flags().BoolVar(&query.Sorted, "sorted", false, "pending first, then priority, then due date")

	return cmd
}

func newTasksAddCommand(st *state) *cobra.Command {
	var description, priority, due string
	var attach []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ports.CreateTaskRequest{Title: args[0]}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				req.Priority = &priority
			}
			if cmd.Flags().Changed("due") {
				req.DueDate = &due
			}

			attachments, err := readAttachments(attach)
			if err != nil {
				return err
			}
			req.Attachments = attachments

			return printResponse(cmd, st.App().Gateway.CreateTask(cmd.Context(), req))
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD or RFC 3339")
	cmd.Flags().StringSliceVar(&attach, "attach", nil, "file to attach (repeatable)")

	return cmd
}

func newTasksDoneCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completed := true
			req := ports.UpdateTaskRequest{Completed: &completed}
			return printResponse(cmd, st.App().Gateway.UpdateTask(cmd.Context(), args[0], req))
		},
	}
}

func newTasksUpdateCommand(st *state) *cobra.Command {
	var title, description, priority, due string
	var completed bool
	var attach []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change selected fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req ports.UpdateTaskRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("priority") {
				req.Priority = &priority
			}
			if flags.Changed("due") {
				req.DueDate = &due
			}
			if flags.Changed("completed") {
				req.Completed = &completed
			}
			if flags.Changed("attach") {
				attachments, err := readAttachments(attach)
				if err != nil {
					return err
				}
				req.Attachments = attachments
			}

			return printResponse(cmd, st.App().Gateway.UpdateTask(cmd.Context(), args[0], req))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "new due date")
	cmd.Flags().BoolVar(&completed, "completed", false, "completion state")
	cmd.Flags().StringSliceVar(&attach, "attach", nil, "replace attachments with these files")

	return cmd
}

func newTasksRemoveCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResponse(cmd, st.App().Gateway.DeleteTask(cmd.Context(), args[0]))
		},
	}
}

func newTasksStatsCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResponse(cmd, st.App().Gateway.GetTaskStats(cmd.Context()))
		},
	}
}

// readAttachments loads files from disk as inline attachments
func readAttachments(paths []string) ([]entities.Attachment, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	attachments := make([]entities.Attachment, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment: %w", err)
		}
		name := filepath.Base(p)
		attachments = append(attachments, entities.NewAttachment(name, mime.TypeByExtension(filepath.Ext(name)), content))
	}
	return attachments, nil
}
