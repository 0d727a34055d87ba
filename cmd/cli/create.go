package cli

import (
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartlink-app/smartlink/cmd"
	"github.com/smartlink-app/smartlink/internal/config"
	"github.com/smartlink-app/smartlink/internal/repository"
	"github.com/smartlink-app/smartlink/internal/services"
)

var (
	originalURLFlag string
	customAliasFlag string
	ownerIDFlag     uint
)

// CreateCmd represents the 'create' command
var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a short link from a destination URL.",
	Long: `This command shortens the provided destination URL and prints the
generated short code.

Example:
  smartlink create --user=1 --url="https://www.google.com/search?q=go+lang"`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		if originalURLFlag == "" {
			fmt.Println("Error: --url flag is required")
			os.Exit(1)
		}

		// Basic URL format validation
		if _, err := url.ParseRequestURI(originalURLFlag); err != nil {
			fmt.Printf("Error: Invalid URL format: %v\n", err)
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

		link, err := linkService.CreateLink(ownerIDFlag, services.CreateLinkInput{
			OriginalURL: originalURLFlag,
			CustomAlias: customAliasFlag,
		})
		if err != nil {
			log.Fatalf("Failed to create short link: %v", err)
		}

		fullShortURL := fmt.Sprintf("%s/%s", cfg.Server.BaseURL, link.ShortCode)
		fmt.Printf("Short link created successfully:\n")
		fmt.Printf("Code: %s\n", link.ShortCode)
		fmt.Printf("Full URL: %s\n", fullShortURL)
	},
}

func init() {
	CreateCmd.Flags().StringVar(&originalURLFlag, "url", "", "The destination URL to shorten")
	CreateCmd.Flags().StringVar(&customAliasFlag, "alias", "", "Optional custom alias for the short link")
	CreateCmd.Flags().UintVar(&ownerIDFlag, "user", 0, "ID of the user owning the link")

	CreateCmd.MarkFlagRequired("url")
	CreateCmd.MarkFlagRequired("user")

	cmd.RootCmd.AddCommand(CreateCmd)
}
