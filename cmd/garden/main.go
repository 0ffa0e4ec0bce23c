package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/balbriggan-gardens/garden/internal/api"
	"github.com/balbriggan-gardens/garden/internal/config"
	"github.com/balbriggan-gardens/garden/internal/content"
	"github.com/balbriggan-gardens/garden/internal/forms"
	"github.com/balbriggan-gardens/garden/internal/logger"
	"github.com/balbriggan-gardens/garden/internal/web"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

var (
	cfgPath string
	dataDir string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "garden",
		Short: "Balbriggan gardening community site",
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: built-in settings)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "content data directory (overrides config)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(tipsCmd())
	rootCmd.AddCommand(plantsCmd())
	rootCmd.AddCommand(videosCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// getLoader builds a loader for the CLI listing commands. Fallbacks are
// reported by the commands themselves, so the loader logs nowhere.
func getLoader() (*content.Loader, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return content.NewLoader(cfg.DataDir, nil), nil
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return err
			}
			defer log.Sync()

			views, err := web.NewRenderer(cfg.TemplatesDir)
			if err != nil {
				return err
			}

			server := api.New(
				content.NewLoader(cfg.DataDir, log),
				views,
				forms.NewRecorder(log),
				log,
				api.Options{
					Addr:         cfg.Addr,
					SiteTitle:    cfg.SiteTitle,
					HomeTips:     cfg.HomeTips,
					HomePlants:   cfg.HomePlants,
					ReadTimeout:  cfg.ReadTimeoutDuration(),
					WriteTimeout: cfg.WriteTimeoutDuration(),
				},
			)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (overrides config)")
	return cmd
}

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the data directory and default content files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			created, err := content.Setup(cfg.DataDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(created) == 0 {
				fmt.Fprintf(out, "Nothing to do: %s already has all content files.\n", cfg.DataDir)
				return nil
			}
			for _, path := range created {
				fmt.Fprintf(out, "Created %s\n", path)
			}
			fmt.Fprintln(out, "\nSetup complete! Start the site with: garden serve")
			return nil
		},
	}
}

func tipsCmd() *cobra.Command {
	var season string
	var seasonal bool

	cmd := &cobra.Command{
		Use:   "tips",
		Short: "List gardening tips",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := getLoader()
			if err != nil {
				return err
			}

			res := l.LoadTips()
			out := cmd.OutOrStdout()
			warnFallback(cmd.ErrOrStderr(), content.Tips, res.Fallback, res.Err)

			tips := res.Records
			if season != "" {
				tips = content.FilterBySeason(tips, season)
			}
			if seasonal {
				tips = content.FilterSeasonal(tips)
			}

			if len(tips) == 0 {
				fmt.Fprintln(out, "No matching tips.")
				return nil
			}
			for _, t := range tips {
				fmt.Fprintf(out, "%3d  %s %-28s %-10s %s\n", t.ID, t.Emoji, t.Title, content.SeasonTitle(t.Season), truncate(t.Description, 50))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&season, "season", "s", "", "only tips for this season (case-insensitive)")
	cmd.Flags().BoolVar(&seasonal, "seasonal", false, "only time-boxed tips")
	return cmd
}

func plantsCmd() *cobra.Command {
	var plantType string

	cmd := &cobra.Command{
		Use:   "plants",
		Short: "List plants",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := getLoader()
			if err != nil {
				return err
			}

			res := l.LoadPlants()
			out := cmd.OutOrStdout()
			warnFallback(cmd.ErrOrStderr(), content.Plants, res.Fallback, res.Err)

			plants := content.FilterPlantsByType(res.Records, plantType)
			if len(plants) == 0 {
				fmt.Fprintln(out, "No matching plants.")
				return nil
			}
			for _, p := range plants {
				fmt.Fprintf(out, "%3d  %s %-22s %-10s %-7s %s\n", p.ID, p.Emoji, p.Name, p.Type, p.Difficulty, p.PlantingTime)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&plantType, "type", "t", "", "only plants of this type (e.g. herb, fruit)")
	return cmd
}

func videosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "videos",
		Short: "List workshop videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := getLoader()
			if err != nil {
				return err
			}

			res := l.LoadVideos()
			out := cmd.OutOrStdout()
			warnFallback(cmd.ErrOrStderr(), content.Videos, res.Fallback, res.Err)

			for _, v := range res.Records {
				fmt.Fprintf(out, "%3d  %s  %-36s %6s  %s [%s]\n", v.ID, v.Date, truncate(v.Title, 36), v.Duration, v.Instructor, strings.Join(v.Tags, ", "))
			}
			return nil
		},
	}
}

func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List community events",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range content.Events() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %-22s %s\n", e.Emoji, e.Date, e.Event, e.Location)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "garden %s (commit: %s)\n", version, commit)
		},
	}
}

func warnFallback(w io.Writer, r content.Resource, fallback bool, err error) {
	if fallback {
		fmt.Fprintf(w, "(using built-in %s: %v)\n", r, err)
	}
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
