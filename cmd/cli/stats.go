package cli

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartlink-app/smartlink/cmd"
	"github.com/smartlink-app/smartlink/internal/config"
	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/repository"
	"github.com/smartlink-app/smartlink/internal/services"
)

// StatsCmd represents the 'stats' command
var StatsCmd = &cobra.Command{
	Use:   "stats [short-code]",
	Short: "Get statistics for a short link",
	Long:  `Get click statistics for the provided short code.`,
	Args:  cobra.ExactArgs(1),
	Run:   runStats,
}

func init() {
	cmd.RootCmd.AddCommand(StatsCmd)
}

// runStats executes the logic for the stats command
func runStats(cobraCmd *cobra.Command, args []string) {
	shortCode := args[0]

	if shortCode == "" {
		fmt.Println("Error: short code is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := repository.OpenStore(cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	linkRepo := repository.NewLinkRepository(store.DB())
	clickRepo := repository.NewClickRepository(store.DB())
	linkService := services.NewLinkService(linkRepo, clickRepo)

	link, totalClicks, err := linkService.GetLinkStats(shortCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrLinkNotFound) {
			fmt.Printf("Error: Short code '%s' not found\n", shortCode)
		} else {
			fmt.Printf("Error retrieving statistics: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Statistics for short code: %s\n", shortCode)
	fmt.Printf("Destination URL: %s\n", link.OriginalURL)
	fmt.Printf("Total clicks: %d\n", totalClicks)
	fmt.Printf("Created at: %s\n", link.CreatedAt.Format("2006-01-02 15:04:05"))
}
