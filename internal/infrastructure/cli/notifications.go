package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/pkg/application"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notify"},
	Short:   "View coaching notifications",
}

var (
	notificationsJSON   bool
	notificationsUnread bool
)

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications for the current goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if services.Workspace.Notifications == nil {
			return fmt.Errorf("notification store unavailable")
		}

		goal, err := services.Workspace.Repo.LoadGoal()
		if err != nil {
			return fmt.Errorf("failed to load goal: %w", err)
		}
		if goal == nil {
			return MapError(application.ErrNoGoal)
		}

		items, err := services.Workspace.Notifications.FindForGoal(cmd.Context(), goal.ID)
		if err != nil {
			return fmt.Errorf("failed to load notifications: %w", err)
		}

		if notificationsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}

		shown := 0
		fmt.Println("Notifications")
		fmt.Println(strings.Repeat("-", 24))
		for _, n := range items {
			if notificationsUnread && n.ReadAt != nil {
				continue
			}
			marker := "*"
			if n.ReadAt != nil {
				marker = " "
			}
			fmt.Printf("%s %s [%s] %s\n", marker, n.CreatedAt.Format("2006-01-02 15:04"), n.Kind, n.Title)
			fmt.Printf("    %s\n    id: %s\n", n.Body, n.ID)
			shown++
		}
		if shown == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if services.Workspace.Notifications == nil {
			return fmt.Errorf("notification store unavailable")
		}

		if err := services.Workspace.Notifications.MarkAsRead(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to mark notification as read: %w", err)
		}
		fmt.Println("Notification marked as read.")
		return nil
	},
}

func init() {
	notificationsListCmd.Flags().BoolVar(&notificationsJSON, "json", false, "Output in JSON format")
	notificationsListCmd.Flags().BoolVar(&notificationsUnread, "unread", false, "Show only unread notifications")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	RootCmd.AddCommand(notificationsCmd)
}
