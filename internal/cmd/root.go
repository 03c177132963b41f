package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"versesabout/internal/api"
	"versesabout/internal/config"
	"versesabout/internal/logging"
	"versesabout/internal/render"
	"versesabout/internal/theme"
	"versesabout/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "versesabout",
	Short: "Browse Bible verses about thousands of topics",
	Long: `versesabout lists topics from Bible Verses About and shows the verses
for each one in the KJV and ESV translations.

Without a subcommand it starts the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/versesabout/config.yaml)")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(versesCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	config.SetDefaults()
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("VERSESABOUT")
	// VERSESABOUT_TUI_THEME for tui.theme
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.BaseURL())
}

// localeTag reads the user's language from the usual POSIX variables.
func localeTag() language.Tag {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err != nil || tag == language.Und {
			break
		}
		return tag
	}
	return language.English
}

func uiOptions(cfg *config.Config) ui.Options {
	tr, _ := api.ParseTranslation(cfg.TUI.Translation)
	return ui.Options{
		Theme:          theme.Get(cfg.TUI.Theme),
		Translation:    tr,
		ContentWidth:   cfg.TUI.ContentWidth,
		RenderMode:     render.Mode(cfg.Render.Mode),
		SettleInterval: time.Duration(cfg.Render.SettleIntervalMs) * time.Millisecond,
		MaxPolls:       cfg.Render.MaxPolls,
		PlainHeight:    cfg.Render.PlainHeight,
		Locale:         localeTag(),
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogDir(), cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Info("starting", "base_url", cfg.BaseURL(), "config", viper.ConfigFileUsed())

	p := tea.NewProgram(
		ui.NewModel(newClient(cfg), logger, uiOptions(cfg)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	watchTheme(p, cfg.TUI.Theme, logger)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// watchTheme pushes theme edits in the config file into the running program.
func watchTheme(p *tea.Program, current string, logger *logging.Logger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	w := &themeWatcher{
		current: current,
		send:    p.Send,
		logger:  logger.WithComponent("config-watch"),
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		w.changed(e, viper.GetString("tui.theme"))
	})
	viper.WatchConfig()
}

type themeWatcher struct {
	current string
	send    func(tea.Msg)
	logger  *logging.Logger
}

// changed sends a ThemeChangedMsg when a write to the config file names a
// different, known theme. It reports whether a message was sent.
func (w *themeWatcher) changed(e fsnotify.Event, key string) bool {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return false
	}
	if key == w.current {
		return false
	}
	if !theme.Exists(key) {
		w.logger.Warn("ignoring unknown theme", "theme", key, "file", e.Name)
		return false
	}
	w.current = key
	w.send(ui.ThemeChangedMsg{Theme: theme.Get(key)})
	return true
}
