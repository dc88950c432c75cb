package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brvagas/jobhub/internal/catalog"
	"github.com/brvagas/jobhub/internal/jobsource"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorited jobs",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorited jobs",
	RunE:  runFavoritesList,
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <number>",
	Short: "Favorite or unfavorite a job",
	Long:  "Toggle the favorite state of the job with the given number. Anonymous favorites live on this device; signed-in favorites follow the account.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesToggle,
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	list := a.favs.Favorites()
	if len(list) == 0 {
		fmt.Fprintln(os.Stdout, "Nenhuma vaga favoritada.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tTITLE\tREPOSITORY\tSAVED")
	for _, f := range list {
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\n",
			f.Number, truncate(f.Title, 60), f.Repository.FullName, f.CreatedAt.Format("02/01/2006"))
	}
	return w.Flush()
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid job number %q", args[0])
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.jobs.Refresh(ctx, jobsource.Query{}); err != nil {
		return fmt.Errorf("failed to fetch jobs: %w (try again)", err)
	}

	job, err := a.jobs.FindByNumber(number)
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("vaga #%d não encontrada", number)
	}
	if err != nil {
		return err
	}

	a.favs.Toggle(job)
	if a.favs.IsFavorite(job.ID) {
		fmt.Fprintf(os.Stdout, "Vaga #%d adicionada aos favoritos.\n", number)
	} else {
		fmt.Fprintf(os.Stdout, "Vaga #%d removida dos favoritos.\n", number)
	}
	return nil
}
