package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"versesabout/internal/config"
	"versesabout/internal/topic"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List every topic",
	Long: `Fetch the topic list and print one "slug<TAB>name" line per topic.

Use --search to apply the same case-insensitive filter as the browser.`,
	Args: cobra.NoArgs,
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().StringP("search", "s", "", "only print topics whose name contains this text")
}

func runTopics(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	search, _ := cmd.Flags().GetString("search")

	topics, err := newClient(cfg).GetTopics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch topics: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, t := range topic.Filter(topic.NewMatcher(localeTag()), topics, search) {
		fmt.Fprintf(out, "%s\t%s\n", t.Slug, t.Name)
	}
	return nil
}
