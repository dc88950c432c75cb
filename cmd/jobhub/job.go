package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brvagas/jobhub/internal/catalog"
	"github.com/brvagas/jobhub/internal/jobsource"
)

var jobCmd = &cobra.Command{
	Use:   "job <number>",
	Short: "Show one job posting",
	Long:  "Fetch the job list and print the posting with the given number, including its inferred tags. A signed-in user's view history records the visit.",
	Args:  cobra.ExactArgs(1),
	RunE:  runJob,
}

func init() {
	rootCmd.AddCommand(jobCmd)
}

func runJob(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintf(os.Stdout, "Vaga #%d não encontrada.\n", number)
		return nil
	}
	if err != nil {
		return err
	}

	printJob(a, job)
	recordView(ctx, a, job)
	return nil
}

func printJob(a *app, job jobsource.Job) {
	marker := ""
	if a.favs.IsFavorite(job.ID) {
		marker = " *"
	}
	fmt.Fprintf(os.Stdout, "#%d %s%s\n", job.Number, job.Title, marker)
	fmt.Fprintf(os.Stdout, "Empresa: %s\n", job.Repository.FullName)
	if job.User.Login != "" {
		fmt.Fprintf(os.Stdout, "Publicado por: %s\n", job.User.Login)
	}
	fmt.Fprintf(os.Stdout, "Criada em: %s | Comentários: %d | Estado: %s\n",
		job.CreatedAt.Format("02/01/2006"), job.Comments, job.State)

	tags := catalog.Classify(job.Labels)
	fmt.Fprintf(os.Stdout, "Modalidade: %s | Nível: %s\n", tags.Modality, tags.Level)
	if len(tags.Technologies) > 0 {
		fmt.Fprintf(os.Stdout, "Tecnologias: %s\n", strings.Join(tags.Technologies, ", "))
	}
	if job.HTMLURL != "" {
		fmt.Fprintf(os.Stdout, "Link: %s\n", job.HTMLURL)
	}
	if job.Body != "" {
		fmt.Fprintf(os.Stdout, "\n%s\n", job.Body)
	}
}

// recordView adds the job to the signed-in user's view history. Anonymous
// sessions keep no history.
func recordView(ctx context.Context, a *app, job jobsource.Job) {
	if _, ok := a.ids.CurrentUser(); !ok || a.docs == nil {
		return
	}
	if _, err := a.loadProfile(ctx); err != nil {
		a.logger.Warn("failed to load profile for view history: %v", err)
		return
	}
	if !a.prof.AddViewedJob(ctx, job.ID, job.Title) {
		a.logger.Warn("failed to record viewed job %d", job.ID)
	}
}
