package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/pkg/application"
	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a pacer workspace in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		repo := storage.NewFilesystemRepository(root)

		if repo.IsInitialized() {
			fmt.Println("Workspace already initialized.")
			return nil
		}

		if err := repo.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize workspace: %w", err)
		}
		if err := repo.SavePolicy(domain.DefaultPolicy()); err != nil {
			return fmt.Errorf("failed to write default policy: %w", err)
		}

		audit := application.NewAuditService(repo)
		if err := audit.Log("workspace.init", "human", nil); err != nil {
			return fmt.Errorf("failed to log init event: %w", err)
		}

		fmt.Println("Initialized pacer workspace in .pacer/")
		fmt.Println("Next: pacer goal set \"<what you want to achieve>\"")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
