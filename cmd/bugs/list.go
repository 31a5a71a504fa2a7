package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pickfire/bugs/internal/control"
	"github.com/pickfire/bugs/internal/games/bugs"
	"github.com/pickfire/bugs/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games and controller modes",
	Long:  `Shows the registered games and the controller modes that drive them.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Controller modes:")
	fmt.Println()
	for _, m := range control.Modes() {
		fmt.Printf("  %-10s  %-9s  %s\n", m, bugs.ForMode(m), m.Description())
	}

	fmt.Println()
	fmt.Println("Run 'bugs play --mode <mode>' to play.")
}
