package cli

import (
	"github.com/spf13/cobra"

	"github.com/thomas11/blogcal/internal/site"
)

func (a *app) newBuildCmd() *cobra.Command {
	var drafts bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the site into the public directory",
		Long: `The build command reads all posts below <source_dir>/_posts and writes
pages, the post calendar under json/calendar, JSON-LD documents and feeds
into the public directory. Feeds are skipped in development (NODE_ENV unset
or "development").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return site.NewBuilder(a.conf, drafts, a.logger).Build()
		},
	}

	cmd.Flags().BoolVar(&drafts, "drafts", false, "include posts marked as draft")
	return cmd
}
