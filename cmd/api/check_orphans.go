package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Lee_Blog/internal/event"
	"Lee_Blog/internal/service"
)

func newCheckOrphansCmd() *cobra.Command {
	var prune bool
	cmd := &cobra.Command{
		Use:   "check-orphans",
		Short: "Report comments whose post no longer exists",
		Long: "Deleting a post removes it first and its comments second; if the second write " +
			"fails the comments are left behind. This command lists them and, with --prune, removes them.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg.Storage, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := service.NewCommentService(service.Options{Store: store, Publisher: event.Nop{}, Logger: logger})
			report, err := svc.CheckOrphans(cmd.Context(), prune)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "posts: %d, comments: %d, orphans: %d\n", report.Posts, report.Comments, len(report.Orphans))
			for _, c := range report.Orphans {
				fmt.Fprintf(out, "  %s -> missing post %s\n", c.ID, c.PostID)
			}
			if report.Pruned {
				fmt.Fprintln(out, "orphans pruned")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&prune, "prune", false, "delete orphaned comments")
	return cmd
}
