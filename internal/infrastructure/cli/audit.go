package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the tamper-evident event log",
}

var auditJSON bool

var auditTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the chronological event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		events, err := services.Audit.GetTimeline()
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}

		if auditJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(events)
		}

		for _, e := range events {
			fmt.Printf("%s [%-6s] %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Actor, e.Action)
		}
		if len(events) == 0 {
			fmt.Println("(no events yet)")
		}
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the hash chain of the event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		violations, err := services.Audit.VerifyIntegrity()
		if err != nil {
			return fmt.Errorf("failed to verify event log: %w", err)
		}

		if len(violations) == 0 {
			fmt.Println("Event log integrity verified.")
			return nil
		}
		for _, v := range violations {
			fmt.Println(v)
		}
		return fmt.Errorf("event log integrity check failed with %d violation(s)", len(violations))
	},
}

var auditStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show proposal acceptance statistics from the event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		rate, err := services.Audit.AcceptanceRate()
		if err != nil {
			return fmt.Errorf("failed to compute acceptance rate: %w", err)
		}
		fmt.Printf("Proposal acceptance rate: %.0f%%\n", rate*100)
		return nil
	},
}

func init() {
	auditTimelineCmd.Flags().BoolVar(&auditJSON, "json", false, "Output in JSON format")

	auditCmd.AddCommand(auditTimelineCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditStatsCmd)
	RootCmd.AddCommand(auditCmd)
}
