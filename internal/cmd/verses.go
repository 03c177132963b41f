package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"versesabout/internal/api"
	"versesabout/internal/config"
	"versesabout/internal/logging"
	"versesabout/internal/render"
)

var versesCmd = &cobra.Command{
	Use:   "verses <slug>",
	Short: "Print the verses for a topic",
	Long: `Fetch one topic and print each verse reference followed by its text,
rendered and wrapped the same way the browser does.

Examples:
  versesabout verses love
  versesabout verses love --translation ESV --width 60
  versesabout verses love --plain`,
	Args: cobra.ExactArgs(1),
	RunE: runVerses,
}

func init() {
	versesCmd.Flags().StringP("translation", "t", "", "KJV or ESV (default from tui.translation)")
	versesCmd.Flags().IntP("width", "w", 0, "wrap width in columns (default from tui.content_width)")
	versesCmd.Flags().Bool("plain", false, "strip markup and clip each verse to render.plain_height lines")
}

func runVerses(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), cfg.Logging.Level).WithComponent("verses")

	name := cfg.TUI.Translation
	if flag, _ := cmd.Flags().GetString("translation"); flag != "" {
		name = flag
	}
	tr, err := api.ParseTranslation(name)
	if err != nil {
		return err
	}

	width := cfg.TUI.ContentWidth
	if w, _ := cmd.Flags().GetInt("width"); w > 0 {
		width = w
	}

	mode := render.Mode(cfg.Render.Mode)
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		mode = render.ModePlain
	}

	detail, err := newClient(cfg).GetTopicDetail(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch verses for %q: %w", args[0], err)
	}

	r := render.New(render.Options{
		Mode:        mode,
		Base:        lipgloss.NewStyle(),
		PlainHeight: cfg.Render.PlainHeight,
	})
	texts := make([]string, len(detail.Verses))
	for i, v := range detail.Verses {
		texts[i] = v.Text(tr)
	}

	out := cmd.OutOrStdout()
	for i, res := range r.LoadAll(texts) {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, detail.Verses[i].Reference)

		s := render.NewSurface(1)
		s.Load()
		if !s.LoadFinished(res.Doc, res.Err) {
			logger.Warn("verse markup rejected", "reference", detail.Verses[i].Reference, "error", res.Err)
			continue
		}
		s.BeginMeasure()
		s.Poll(r, width)
		if v := s.View(); v != "" {
			fmt.Fprintln(out, v)
		}
	}
	return nil
}
