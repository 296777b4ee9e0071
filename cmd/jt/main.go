package main

import (
	"errors"
	"fmt"
	"os"

	"jt-go/internal/app"
	"jt-go/internal/config"
	"jt-go/internal/model"
	"jt-go/internal/track"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a JTApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "SetStatus", "GenerateDigest").
func newApp(operation string) (*app.JTApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewJTApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassphrase prompts on stdout and reads a passphrase without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(data), nil
}

// agoString formats days-since-posted the way the digest does.
func agoString(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jt",
	Short: "Personal job tracker",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Generate a new profile ID
		profileID := uuid.New().String()

		cfg := config.NewConfig(profileID, defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		wrote, err := app.WriteSampleCatalog(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("failed to write sample catalog: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Profile ID: %s\n", profileID)
		fmt.Printf("Base Dir:   %s\n", defaults["base_dir"])
		if wrote {
			fmt.Printf("Sample catalog written to %s\n", cfg.CatalogPath)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Profile ID: %s\n", cfg.ProfileID)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Catalog:    %s\n", cfg.CatalogPath)
		fmt.Printf("Store:      %s\n", cfg.Store.Type)
		return nil
	},
}

// crypt command
var cryptCmd = &cobra.Command{
	Use:   "crypt",
	Short: "Manage encryption keys",
}

var cryptInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CryptInit")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := a.CryptInit(passphrase); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}
		fmt.Println("Encryption keys generated.")
		return nil
	},
}

// prefs command
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage matching preferences",
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save matching preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SavePreferences")
		if err != nil {
			return err
		}
		defer a.Close()

		// Start from the saved record (or defaults on first save) and
		// overlay only the flags that were provided.
		prefs, err := a.PreferencesForEdit()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("roles") {
			prefs.RoleKeywords, _ = cmd.Flags().GetString("roles")
		}
		if cmd.Flags().Changed("locations") {
			prefs.PreferredLocations, _ = cmd.Flags().GetStringSlice("locations")
		}
		if cmd.Flags().Changed("modes") {
			prefs.PreferredModes, _ = cmd.Flags().GetStringSlice("modes")
		}
		if cmd.Flags().Changed("experience") {
			prefs.ExperienceLevel, _ = cmd.Flags().GetString("experience")
		}
		if cmd.Flags().Changed("skills") {
			prefs.Skills, _ = cmd.Flags().GetString("skills")
		}
		if cmd.Flags().Changed("min-score") {
			prefs.MinMatchScore, _ = cmd.Flags().GetInt("min-score")
		}

		if err := a.SavePreferences(prefs); err != nil {
			return err
		}
		fmt.Println("Preferences saved.")
		return nil
	},
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "View matching preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ShowPreferences")
		if err != nil {
			return err
		}
		defer a.Close()

		prefs, ok, err := a.Preferences()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No preferences set. Run `jt prefs set` to activate matching.")
			return nil
		}

		fmt.Printf("Role keywords: %s\n", prefs.RoleKeywords)
		fmt.Printf("Locations:     %v\n", prefs.PreferredLocations)
		fmt.Printf("Modes:         %v\n", prefs.PreferredModes)
		fmt.Printf("Experience:    %s\n", prefs.ExperienceLevel)
		fmt.Printf("Skills:        %s\n", prefs.Skills)
		fmt.Printf("Min match:     %d%%\n", prefs.MinMatchScore)
		return nil
	},
}

// jobs command
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List postings through the filter/sort pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListPostings")
		if err != nil {
			return err
		}
		defer a.Close()

		rawSort, _ := cmd.Flags().GetString("sort")
		sortKey, err := track.ParseSortKey(rawSort)
		if err != nil {
			return err
		}

		spec := track.FilterSpec{Sort: sortKey}
		spec.Keyword, _ = cmd.Flags().GetString("keyword")
		spec.Location, _ = cmd.Flags().GetString("location")
		spec.Mode, _ = cmd.Flags().GetString("mode")
		spec.Experience, _ = cmd.Flags().GetString("experience")
		spec.Source, _ = cmd.Flags().GetString("source")
		spec.Status, _ = cmd.Flags().GetString("status")
		spec.Threshold, _ = cmd.Flags().GetBool("threshold")

		result, err := a.ListPostings(spec)
		if err != nil {
			return err
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit >= 0 && len(result) > limit {
			result = result[:limit]
		}
		if len(result) == 0 {
			fmt.Println("No roles match your criteria.")
			return nil
		}

		statuses, err := a.AllStatuses()
		if err != nil {
			return err
		}
		savedIDs, err := a.SavedIDs()
		if err != nil {
			return err
		}
		saved := make(map[string]bool, len(savedIDs))
		for _, id := range savedIDs {
			saved[id] = true
		}

		for _, sp := range result {
			p := sp.Posting
			marker := " "
			if saved[p.ID] {
				marker = "*"
			}
			status := model.StatusNotApplied
			if entry, ok := statuses[p.ID]; ok {
				status = entry.Status
			}
			fmt.Printf("%s %3d%%  %-8s  %-28s  %-16s  %-10s  %-7s  %-11s  %s\n",
				marker, sp.Score, p.ID, p.Title, p.Company, p.Location, p.Mode, status, agoString(p.PostedDaysAgo))
		}
		return nil
	},
}

// save command
var saveCmd = &cobra.Command{
	Use:   "save POSTING_ID",
	Short: "Bookmark a posting (toggles)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ToggleSaved")
		if err != nil {
			return err
		}
		defer a.Close()

		nowSaved, err := a.ToggleSaved(args[0])
		if err != nil {
			return err
		}
		if nowSaved {
			fmt.Printf("Saved %s\n", args[0])
		} else {
			fmt.Printf("Removed %s from saved\n", args[0])
		}
		return nil
	},
}

// saved command
var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved postings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SavedPostings")
		if err != nil {
			return err
		}
		defer a.Close()

		postings, err := a.SavedPostings()
		if err != nil {
			return err
		}
		if len(postings) == 0 {
			fmt.Println("No saved postings.")
			return nil
		}

		prefs, prefsExist, err := a.Preferences()
		if err != nil {
			return err
		}

		for _, p := range postings {
			score := 0
			if prefsExist {
				score = track.MatchScore(p, prefs)
			}
			fmt.Printf("%3d%%  %-8s  %-28s  %-16s  %-10s  %s\n",
				score, p.ID, p.Title, p.Company, p.Location, agoString(p.PostedDaysAgo))
		}
		return nil
	},
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status POSTING_ID [STATUS]",
	Short: "View or set application status",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetStatus")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			status, err := a.GetStatus(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", args[0], status)
			return nil
		}

		status, err := a.SetStatus(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Status updated: %s -> %s\n", args[0], status)
		return nil
	},
}

// activity command
var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "View recent status updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("RecentUpdates")
		if err != nil {
			return err
		}
		defer a.Close()

		updates, err := a.RecentUpdates(limit)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			fmt.Println("No status updates.")
			return nil
		}

		for _, u := range updates {
			fmt.Printf("%s  %-11s  %-28s  %s\n",
				u.UpdatedAt.Format("2006-01-02 15:04"), u.Status, u.Posting.Title, u.Posting.Company)
		}
		return nil
	},
}

// digest command
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Manage the daily digest",
}

var digestGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's digest (idempotent per day)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GenerateDigest")
		if err != nil {
			return err
		}
		defer a.Close()

		snap, err := a.GenerateTodayDigest()
		if err != nil {
			if errors.Is(err, track.ErrNoPreferences) {
				fmt.Println("Set preferences first: run `jt prefs set`.")
				return nil
			}
			return err
		}

		entries := a.HydrateDigest(snap)
		if len(entries) == 0 {
			fmt.Println("No matching roles today. Check again tomorrow.")
			return nil
		}
		fmt.Printf("Digest for %s: %d entries\n", snap.Date, len(entries))
		for i, e := range entries {
			fmt.Printf("%2d. %3d%%  %-28s  %s\n", i+1, e.MatchScore, e.Posting.Title, e.Posting.Company)
		}
		return nil
	},
}

var digestShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print today's digest as plain text",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ShowDigest")
		if err != nil {
			return err
		}
		defer a.Close()

		text, ok, err := a.DigestText()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No digest generated today. Run `jt digest generate`.")
			return nil
		}
		fmt.Print(text)
		return nil
	},
}

var digestExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export today's digest to a file or mailto draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		encrypt, _ := cmd.Flags().GetBool("encrypt")
		mailto, _ := cmd.Flags().GetBool("mailto")

		a, err := newApp("ExportDigest")
		if err != nil {
			return err
		}
		defer a.Close()

		if mailto {
			draft, ok, err := a.DigestMailto()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("No digest generated today. Run `jt digest generate`.")
				return nil
			}
			fmt.Println(draft)
			return nil
		}

		if err := a.ExportDigest(out, encrypt); err != nil {
			return err
		}
		fmt.Printf("Digest exported to %s\n", out)
		return nil
	},
}

// backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a store snapshot to the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		a, err := newApp("Backup")
		if err != nil {
			return err
		}
		defer a.Close()

		version, err := a.Backup(encrypt)
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Printf("Snapshot uploaded (version %d)\n", version)
		return nil
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the store with the vault snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypted, _ := cmd.Flags().GetBool("encrypted")

		a, err := newApp("Restore")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase := ""
		if encrypted {
			passphrase, err = readPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
		}

		if err := a.Restore(passphrase); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		fmt.Println("Store restored from vault snapshot.")
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// crypt subcommands
	cryptCmd.AddCommand(cryptInitCmd)

	// prefs subcommands
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsSetCmd.Flags().String("roles", "", "Comma-separated role keywords")
	prefsSetCmd.Flags().StringSlice("locations", nil, "Preferred locations")
	prefsSetCmd.Flags().StringSlice("modes", nil, "Preferred work modes (Remote, Hybrid, Onsite)")
	prefsSetCmd.Flags().String("experience", "", "Experience bracket (Fresher, 0-1, 1-3, 3-5)")
	prefsSetCmd.Flags().String("skills", "", "Comma-separated skills")
	prefsSetCmd.Flags().Int("min-score", model.DefaultMinMatchScore, "Minimum match threshold (0-100)")

	// jobs flags
	jobsCmd.Flags().String("keyword", "", "Substring of title or company")
	jobsCmd.Flags().String("location", "all", "Location filter")
	jobsCmd.Flags().String("mode", "all", "Work mode filter")
	jobsCmd.Flags().String("experience", "all", "Experience filter")
	jobsCmd.Flags().String("source", "all", "Source platform filter")
	jobsCmd.Flags().String("status", "all", "Application status filter")
	jobsCmd.Flags().String("sort", "latest", "Sort key: latest, oldest, matchScore, salary")
	jobsCmd.Flags().Bool("threshold", false, "Only show postings above your match threshold")
	jobsCmd.Flags().IntP("limit", "n", -1, "Maximum number of postings to show (-1 for all)")

	// activity flags
	activityCmd.Flags().IntP("limit", "n", 10, "Maximum number of updates to show")

	// digest subcommands
	digestCmd.AddCommand(digestGenerateCmd)
	digestCmd.AddCommand(digestShowCmd)
	digestCmd.AddCommand(digestExportCmd)
	digestExportCmd.Flags().String("out", "digest.txt", "Output file")
	digestExportCmd.Flags().Bool("encrypt", false, "Encrypt the export with the public key")
	digestExportCmd.Flags().Bool("mailto", false, "Print a mailto draft URL instead of writing a file")

	// backup/restore flags
	backupCmd.Flags().Bool("encrypt", false, "Encrypt the snapshot with the public key")
	restoreCmd.Flags().Bool("encrypted", false, "Snapshot is encrypted; prompt for passphrase")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cryptCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
