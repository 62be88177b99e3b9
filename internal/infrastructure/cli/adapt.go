package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/pkg/application"
	"github.com/pacerhq/pacer/pkg/domain/adaptation"
)

var adaptCmd = &cobra.Command{
	Use:   "adapt",
	Short: "Propose and decide bounded plan adaptations",
}

var adaptProposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Ask the AI for one bounded plan adjustment",
	Long: `Propose runs a fresh evaluation first and refuses to call the AI when
behavior is on track. A validated proposal is stored for your decision; the
plan does not change until you accept and apply it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		record, err := services.Adaptation.Propose(cmd.Context())
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Proposal %s (%s)\n", record.ID, record.Proposal.Type)
		printProposalChanges(record.Proposal)
		fmt.Printf("\nReason: %s\n", record.Proposal.Reason)
		fmt.Printf("%s\n", record.Proposal.Explanation)
		fmt.Println("\nDecide with 'pacer adapt accept' or 'pacer adapt reject'.")
		return nil
	},
}

// createAdaptDecisionCommand builds accept/reject/apply. They share the id
// resolution and output; only the service call differs.
func createAdaptDecisionCommand(use, short, done string, decide func(svc *application.AdaptationService, ctx context.Context, id string) (*adaptation.Record, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [proposal-id]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := loadServicesForCurrentDir()
			if err != nil {
				return err
			}

			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			id, err = resolveProposalID(services.Adaptation, id)
			if err != nil {
				return MapError(err)
			}

			record, err := decide(services.Adaptation, cmd.Context(), id)
			if err != nil {
				return MapError(err)
			}

			fmt.Printf("Proposal %s is now %s.\n", record.ID, record.Status)
			if done != "" {
				fmt.Println(done)
			}
			return nil
		},
	}
}

var adaptListJSON bool

var adaptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List adaptation proposals and their lifecycle state",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		records, err := services.Adaptation.List()
		if err != nil {
			return MapError(err)
		}

		if adaptListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		fmt.Printf("Proposals (%d)\n", len(records))
		fmt.Println(strings.Repeat("-", 24))
		for _, r := range records {
			fmt.Printf("  %s [%-8s] %-17s %s\n", r.ID, r.Status, r.Proposal.Type, r.CreatedAt.Format("2006-01-02"))
		}
		if len(records) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

// resolveProposalID defaults to the single open proposal when no id is given.
func resolveProposalID(svc *application.AdaptationService, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	records, err := svc.List()
	if err != nil {
		return "", err
	}
	open := ""
	for _, r := range records {
		if r.Status == adaptation.StatusProposed || r.Status == adaptation.StatusAccepted {
			if open != "" {
				return "", fmt.Errorf("more than one open proposal, give an id from 'pacer adapt list'")
			}
			open = r.ID
		}
	}
	if open == "" {
		return "", application.ErrProposalNotFound
	}
	return open, nil
}

func printProposalChanges(p adaptation.Proposal) {
	switch p.Type {
	case adaptation.TypeDifficultyChange:
		c := p.SuggestedChanges.DifficultyChange
		fmt.Printf("  Difficulty %s -> %s for %d task(s)\n", c.FromDifficulty, c.ToDifficulty, len(c.AffectedTaskIDs))
	case adaptation.TypeReschedule:
		c := p.SuggestedChanges.Reschedule
		fmt.Printf("  Shift %d task(s) out by %d day(s)\n", len(c.AffectedTaskIDs), c.ShiftDays)
	case adaptation.TypeBufferAdd:
		c := p.SuggestedChanges.BufferAdd
		fmt.Printf("  Insert %d rest day(s) after task %s\n", c.BufferDays, c.AfterTaskID)
	}
}

func init() {
	adaptListCmd.Flags().BoolVar(&adaptListJSON, "json", false, "Output in JSON format")

	adaptCmd.AddCommand(adaptProposeCmd)
	adaptCmd.AddCommand(createAdaptDecisionCommand("accept", "Accept an open proposal", "Apply it with 'pacer adapt apply'.",
		func(svc *application.AdaptationService, ctx context.Context, id string) (*adaptation.Record, error) {
			return svc.Accept(ctx, id)
		}))
	adaptCmd.AddCommand(createAdaptDecisionCommand("reject", "Reject an open proposal", "",
		func(svc *application.AdaptationService, ctx context.Context, id string) (*adaptation.Record, error) {
			return svc.Reject(ctx, id)
		}))
	adaptCmd.AddCommand(createAdaptDecisionCommand("apply", "Apply an accepted proposal to the plan", "",
		func(svc *application.AdaptationService, ctx context.Context, id string) (*adaptation.Record, error) {
			return svc.Apply(ctx, id)
		}))
	adaptCmd.AddCommand(adaptListCmd)
	RootCmd.AddCommand(adaptCmd)
}
