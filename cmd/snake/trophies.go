package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/trophy"
)

var trophiesCmd = &cobra.Command{
	Use:   "trophies",
	Short: "List trophy definitions",
	Long:  `Shows every trophy and the threshold that unlocks it.`,
	Args:  cobra.NoArgs,
	RunE:  runTrophies,
}

func runTrophies(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defs := trophy.Definitions(cfg.Trophies)
	if len(defs) == 0 {
		fmt.Println("No trophies configured.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, d := range defs {
		maxIDLen = max(maxIDLen, len(d.ID))
	}

	fmt.Printf("  %-*s  %-14s  %-10s  %s\n", maxIDLen, "ID", "Name", "Unlock", "Description")
	fmt.Printf("  %-*s  %-14s  %-10s  %s\n", maxIDLen, "--", "----", "------", "-----------")
	for _, d := range defs {
		fmt.Printf("  %-*s  %-14s  %-10s  %s\n", maxIDLen, d.ID, d.Name, unlockRule(d), d.Description)
	}
	return nil
}

func unlockRule(d trophy.Definition) string {
	return fmt.Sprintf("%s>=%g", d.Metric, d.Threshold)
}
