package commands

import (
	"github.com/spf13/cobra"

	"github.com/todoapp/core/internal/domain/entities"
)

// NewSettingsCommand creates the settings command group
func NewSettingsCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResponse(cmd, st.App().Gateway.GetSettings(cmd.Context()))
		},
	})
	cmd.AddCommand(newSettingsSetCommand(st))

	return cmd
}

func newSettingsSetCommand(st *state) *cobra.Command {
	var theme, username, avatar string
	var notifications, autoSave, isPinned, isCollapsed bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change selected settings and keep the rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw := st.App().Gateway
			current := gw.GetSettings(cmd.Context())
			if !current.Success {
				return printResponse(cmd, current)
			}

			settings := current.Value()
			flags := cmd.Flags()
			if flags.Changed("theme") {
				settings.Theme = entities.Theme(theme)
			}
			if flags.Changed("notifications") {
				settings.Notifications = notifications
			}
			if flags.Changed("auto-save") {
				settings.AutoSave = autoSave
			}
			if flags.Changed("pinned") {
				settings.IsPinned = isPinned
			}
			if flags.Changed("collapsed") {
				settings.IsCollapsed = isCollapsed
			}
			if flags.Changed("username") {
				settings.Username = &username
			}
			if flags.Changed("avatar") {
				settings.Avatar = &avatar
			}

			return printResponse(cmd, gw.UpdateSettings(cmd.Context(), settings))
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "light or pink")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "enable notifications")
	cmd.Flags().BoolVar(&autoSave, "auto-save", true, "save edits automatically")
	cmd.Flags().BoolVar(&isPinned, "pinned", false, "keep the window on top")
	cmd.Flags().BoolVar(&isCollapsed, "collapsed", false, "collapse the window")
	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar image as a data URL")

	return cmd
}
