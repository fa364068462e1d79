package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"runlog/internal/auth"
	"runlog/internal/service"
	"runlog/internal/store"
	"runlog/internal/strava"
)

var (
	flagAfter  string
	flagMax    int
	flagDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import run activities from Strava",
	Long: `Import fetches activities from the connected Strava account and adds
the runs among them to the log. Duplicates of existing entries are
skipped. Connect an account first via the API's /api/strava/connect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		stored, err := st.GetAuth()
		if err != nil {
			if errors.Is(err, store.ErrNoAuth) {
				return errors.New("no strava account connected; start the server and visit /api/strava/connect")
			}
			return err
		}

		oauthCfg := auth.NewOAuthConfig(auth.Config{
			ClientID:     cfg.Strava.ClientID,
			ClientSecret: cfg.Strava.ClientSecret,
		})
		ts := auth.NewTokenSource(oauthCfg, &oauth2.Token{
			AccessToken:  stored.AccessToken,
			RefreshToken: stored.RefreshToken,
			Expiry:       stored.ExpiresAt,
		}, func(t *oauth2.Token) error {
			return st.UpdateTokens(t.AccessToken, t.RefreshToken, t.Expiry)
		})

		var opts service.SyncOptions
		if flagAfter != "" {
			after, err := time.ParseInLocation("2006-01-02", flagAfter, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --after %q, expected YYYY-MM-DD", flagAfter)
			}
			opts.After = after
		}
		opts.Max = flagMax
		opts.DryRun = flagDryRun

		importer := service.NewImporter(st, strava.NewClient(ts), logger)
		result, err := importer.Sync(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if opts.DryRun {
			fmt.Printf("fetched %d activities: %d would be imported, %d skipped, %d non-runs\n",
				result.Fetched, result.WouldImport, result.Skipped, result.NonRuns)
		} else {
			fmt.Printf("fetched %d activities: %d imported, %d skipped, %d non-runs\n",
				result.Fetched, result.Imported, result.Skipped, result.NonRuns)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&flagAfter, "after", "", "Only fetch activities after this date (YYYY-MM-DD)")
	importCmd.Flags().IntVar(&flagMax, "max", 0, "Cap on imported runs (0 = no cap)")
	importCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}
