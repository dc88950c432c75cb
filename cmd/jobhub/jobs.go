package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brvagas/jobhub/internal/catalog"
	"github.com/brvagas/jobhub/internal/jobsource"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List open job postings",
	Long:  "Fetch the current job list, apply filters, and print one page of results with aggregate statistics.",
	RunE:  runJobs,
}

var (
	jobsSearch     string
	jobsTech       string
	jobsModality   string
	jobsLevel      string
	jobsRepository string
	jobsPage       int
	jobsPerPage    int
	jobsLabel      string
	jobsOrg        string
)

func init() {
	jobsCmd.Flags().StringVarP(&jobsSearch, "search", "s", "", "Free-text search over title and repository name")
	jobsCmd.Flags().StringVar(&jobsTech, "tech", "", "Filter by technology label")
	jobsCmd.Flags().StringVar(&jobsModality, "modality", "", "Filter by modality label (remoto, presencial, híbrido)")
	jobsCmd.Flags().StringVar(&jobsLevel, "level", "", "Filter by seniority label")
	jobsCmd.Flags().StringVar(&jobsRepository, "repo", "", "Filter by repository name")
	jobsCmd.Flags().IntVarP(&jobsPage, "page", "p", 1, "Page to show")
	jobsCmd.Flags().IntVar(&jobsPerPage, "per-page", 0, "Page size (12, 24 or 48)")
	jobsCmd.Flags().StringVar(&jobsLabel, "label", "", "Server-side label query")
	jobsCmd.Flags().StringVar(&jobsOrg, "org", "", "Server-side organization query")

	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if jobsPerPage != 0 {
		if err := a.jobs.SetPageSize(jobsPerPage); err != nil {
			return err
		}
	}

	if err := a.jobs.Refresh(ctx, jobsource.Query{Label: jobsLabel, Org: jobsOrg}); err != nil {
		return fmt.Errorf("failed to fetch jobs: %w (try again)", err)
	}

	a.jobs.SetSearchTerm(jobsSearch)
	a.jobs.SetTechnology(jobsTech)
	a.jobs.SetModality(jobsModality)
	a.jobs.SetLevel(jobsLevel)
	a.jobs.SetRepository(jobsRepository)
	a.jobs.GoToPage(jobsPage)

	printStats(a.jobs.Stats())
	printPage(a, a.jobs.CurrentPage())
	return nil
}

func printStats(stats catalog.Stats) {
	fmt.Fprintf(os.Stdout, "%d vagas", stats.Total)
	parts := []string{}
	for _, p := range []struct {
		label string
		count int
	}{
		{"remoto", stats.Remote},
		{"presencial", stats.Onsite},
		{"híbrido", stats.Hybrid},
		{"júnior", stats.Junior},
		{"pleno", stats.Mid},
		{"sênior", stats.Senior},
	} {
		if p.count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", p.count, p.label))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(os.Stdout, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(os.Stdout)
}

func printPage(a *app, page catalog.PageView) {
	if len(page.Items) == 0 {
		fmt.Fprintln(os.Stdout, "Nenhuma vaga encontrada.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tNUMBER\tTITLE\tTAGS\tREPOSITORY")
	for _, job := range page.Items {
		marker := " "
		if a.favs.IsFavorite(job.ID) {
			marker = "*"
		}
		tags := catalog.Classify(job.Labels)
		fmt.Fprintf(w, "%s\t#%d\t%s\t%s\t%s\n",
			marker, job.Number, truncate(job.Title, 60),
			strings.Join(tagSummary(tags), ","), job.Repository.FullName)
	}
	w.Flush()
	fmt.Fprintf(os.Stdout, "Page %d/%d (items %d-%d)\n",
		page.Page, page.TotalPages, page.Start, page.End)
}

func tagSummary(tags catalog.Tags) []string {
	out := []string{}
	if tags.Modality != catalog.TagUnknown {
		out = append(out, tags.Modality)
	}
	if tags.Level != catalog.TagUnknown {
		out = append(out, tags.Level)
	}
	out = append(out, tags.DisplayTechnologies()...)
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
