package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dom/crowd-translate/internal/config"
	"github.com/dom/crowd-translate/internal/domain"
	"github.com/dom/crowd-translate/internal/repository/postgres"
	"github.com/dom/crowd-translate/internal/service"
	"gorm.io/gorm/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:3001"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		demoCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Seed - Development tool that fills a local backend with demo data

USAGE:
  seed <command> [options]

COMMANDS:
  demo      Create demo users, then books, translations and bookmarks through the API
  help      Show this help message

ENVIRONMENT:
  API_URL        Backend API URL (default: http://localhost:3001)
  DATABASE_URL   Database the demo users are written to (same as the server)
  JWT_SECRET     Secret used to mint session tokens (same as the server)

EXAMPLES:
  # Three users, two books each
  seed demo

  # Five users, each also calling /translate once
  seed demo --users=5 --machine`)
}

var sampleBooks = []NewBook{
	{Title: "Le Petit Prince", Author: "Antoine de Saint-Exupery", Language: "fr", Tags: []string{"classic", "children"}},
	{Title: "Siddhartha", Author: "Hermann Hesse", Language: "de", Tags: []string{"novel"}},
	{Title: "Cien anos de soledad", Author: "Gabriel Garcia Marquez", Language: "es", Tags: []string{"novel", "magical realism"}},
	{Title: "Kokoro", Author: "Natsume Soseki", Language: "ja", Tags: []string{"classic"}},
}

var sampleLines = map[string][2]string{
	"fr": {"On ne voit bien qu'avec le coeur.", "One sees clearly only with the heart."},
	"de": {"Weisheit ist nicht mitteilbar.", "Wisdom cannot be imparted."},
	"es": {"Muchos anos despues, frente al peloton de fusilamiento...", "Many years later, as he faced the firing squad..."},
	"ja": {"私はその人を常に先生と呼んでいた。", "I always called him Sensei."},
}

type demoUser struct {
	user  *domain.User
	token string
}

func demoCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	users := fs.Int("users", 3, "Number of demo users to create")
	booksPerUser := fs.Int("books", 2, "Number of books each user adds")
	machine := fs.Bool("machine", false, "Also call /translate for each translation")
	fs.Parse(args)

	if *users < 1 || *booksPerUser < 1 {
		fmt.Println("Error: --users and --books must be at least 1")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)
	if err := client.Health(); err != nil {
		fmt.Printf("Backend not reachable at %s: %v\n", apiURL, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL, logger.Warn)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	repos := postgres.NewRepositories(db)
	authService := service.NewAuthService(repos.User, nil, cfg)
	ctx := context.Background()

	fmt.Println("=== Seed: Demo Data ===")
	fmt.Println()

	// 1. Users go straight to the directory; Google sign-in is not scriptable.
	fmt.Printf("Creating %d users:\n", *users)
	people := make([]demoUser, 0, *users)
	for i := 1; i <= *users; i++ {
		email := fmt.Sprintf("demo%d@example.com", i)
		user, err := repos.User.Upsert(ctx, email, fmt.Sprintf("Demo Reader %d", i), "")
		if err != nil {
			fmt.Printf("  FAILED %s: %v\n", email, err)
			os.Exit(1)
		}
		token, err := authService.IssueSessionToken(user)
		if err != nil {
			fmt.Printf("  FAILED token for %s: %v\n", email, err)
			os.Exit(1)
		}
		people = append(people, demoUser{user: user, token: token})
		fmt.Printf("  %s (%s)\n", user.Email, user.ID)
	}

	// 2. Books and translations
	fmt.Println()
	fmt.Println("Adding books and translations:")
	var books []*Book
	var translations []*Translation
	for i, p := range people {
		for j := 0; j < *booksPerUser; j++ {
			sample := sampleBooks[(i**booksPerUser+j)%len(sampleBooks)]
			book, err := client.CreateBook(p.token, sample)
			if err != nil {
				fmt.Printf("  FAILED: %v\n", err)
				os.Exit(1)
			}
			books = append(books, book)

			line := sampleLines[sample.Language]
			translated := line[1]
			if *machine {
				if mt, err := client.Translate(line[0], "en"); err == nil {
					translated = mt
				} else {
					fmt.Printf("  Warning: machine translation failed, using sample text: %v\n", err)
				}
			}

			// The next user translates, so translations are not all self-authored.
			translator := people[(i+1)%len(people)]
			translation, err := client.CreateTranslation(translator.token, NewTranslation{
				BookID:         book.ID,
				OriginalText:   line[0],
				TranslatedText: translated,
				SourceLanguage: sample.Language,
				TargetLanguage: "en",
			})
			if err != nil {
				fmt.Printf("  FAILED: %v\n", err)
				os.Exit(1)
			}
			translations = append(translations, translation)
			fmt.Printf("  #%d %q by %s, translated by %s\n", book.ID, book.Title, p.user.Name, translator.user.Name)
		}
	}

	// 3. Everyone bookmarks every other book and translation
	fmt.Println()
	fmt.Print("Bookmarking... ")
	for _, p := range people {
		for _, book := range books {
			if book.Owner != nil && book.Owner.ID == p.user.ID.String() {
				continue
			}
			if err := client.BookmarkBook(p.token, book.ID); err != nil {
				fmt.Printf("FAILED\n  Error: %v\n", err)
				os.Exit(1)
			}
		}
		for _, translation := range translations {
			if translation.Translator != nil && translation.Translator.ID == p.user.ID.String() {
				continue
			}
			if err := client.BookmarkTranslation(p.token, translation.ID); err != nil {
				fmt.Printf("FAILED\n  Error: %v\n", err)
				os.Exit(1)
			}
		}
	}
	fmt.Println("OK")

	// 4. Summary
	fmt.Println()
	fmt.Println("Profiles:")
	for _, p := range people {
		profile, err := client.GetProfile(p.token)
		if err != nil {
			fmt.Printf("  %s: %v\n", p.user.Email, err)
			continue
		}
		fmt.Printf("  %-22s books=%d translations=%d bookmarks=%d\n",
			profile.User.Email,
			profile.Stats.BooksCount,
			profile.Stats.TranslationsCount,
			profile.Stats.BookmarksCount,
		)
	}

	fmt.Println()
	fmt.Println("Session token for the first user (paste into the frontend's storage to act as them):")
	fmt.Println(people[0].token)
}
