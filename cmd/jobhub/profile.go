package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brvagas/jobhub/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
	Long:  "Show and edit the signed-in user's profile: bio, skills, technologies of interest, professional experience and work preferences.",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE:  runProfileShow,
}

var profileBioCmd = &cobra.Command{
	Use:   "bio <text>",
	Short: "Set the bio",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileBio,
}

var profileSkillCmd = &cobra.Command{
	Use:   "skill add|remove <name>",
	Short: "Add or remove a skill",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileSkill,
}

var profileTechCmd = &cobra.Command{
	Use:   "tech add|remove <name>",
	Short: "Add or remove a technology of interest",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileTech,
}

var profileExperienceCmd = &cobra.Command{
	Use:   "experience add|remove",
	Short: "Add or remove a professional experience",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runProfileExperience,
}

var profilePrefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Update work preferences",
	RunE:  runProfilePrefs,
}

var (
	expTitle       string
	expCompany     string
	expStart       string
	expEnd         string
	expCurrent     bool
	expDescription string

	prefsSalaryMin  int
	prefsSalaryMax  int
	prefsLocations  []string
	prefsModalities []string
	prefsJobTypes   []string
)

func init() {
	profileExperienceCmd.Flags().StringVar(&expTitle, "title", "", "Role title (required for add)")
	profileExperienceCmd.Flags().StringVar(&expCompany, "company", "", "Company name (required for add)")
	profileExperienceCmd.Flags().StringVar(&expStart, "start", "", "Start date, e.g. 2023-01")
	profileExperienceCmd.Flags().StringVar(&expEnd, "end", "", "End date, empty while current")
	profileExperienceCmd.Flags().BoolVar(&expCurrent, "current", false, "Mark as the current role")
	profileExperienceCmd.Flags().StringVar(&expDescription, "description", "", "Free-text description")

	profilePrefsCmd.Flags().IntVar(&prefsSalaryMin, "salary-min", 0, "Minimum salary")
	profilePrefsCmd.Flags().IntVar(&prefsSalaryMax, "salary-max", 0, "Maximum salary")
	profilePrefsCmd.Flags().StringSliceVar(&prefsLocations, "locations", nil, "Preferred locations")
	profilePrefsCmd.Flags().StringSliceVar(&prefsModalities, "modalities", nil, "Preferred modalities (remoto, presencial, híbrido)")
	profilePrefsCmd.Flags().StringSliceVar(&prefsJobTypes, "job-types", nil, "Preferred contract types (CLT, PJ, ...)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileBioCmd)
	profileCmd.AddCommand(profileSkillCmd)
	profileCmd.AddCommand(profileTechCmd)
	profileCmd.AddCommand(profileExperienceCmd)
	profileCmd.AddCommand(profilePrefsCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	u, err := a.loadProfile(ctx)
	if err != nil {
		return err
	}

	p := a.prof.Profile()
	name := p.DisplayName
	if name == "" {
		name = u.Email
	}
	fmt.Fprintf(os.Stdout, "%s <%s>\n", name, u.Email)
	if p.Bio != "" {
		fmt.Fprintf(os.Stdout, "Bio: %s\n", p.Bio)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(os.Stdout, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if len(p.Technologies) > 0 {
		fmt.Fprintf(os.Stdout, "Tecnologias: %s\n", strings.Join(p.Technologies, ", "))
	}
	for _, exp := range p.Experiences {
		period := exp.StartDate
		switch {
		case exp.Current:
			period += " - atual"
		case exp.EndDate != "":
			period += " - " + exp.EndDate
		}
		fmt.Fprintf(os.Stdout, "Experiência: %s @ %s (%s) [%s]\n", exp.Title, exp.Company, period, exp.ID)
	}
	prefs := p.WorkPreferences
	if prefs.SalaryRange.Min > 0 || prefs.SalaryRange.Max > 0 {
		fmt.Fprintf(os.Stdout, "Faixa salarial: %d - %d\n", prefs.SalaryRange.Min, prefs.SalaryRange.Max)
	}
	if len(prefs.Modalities) > 0 {
		fmt.Fprintf(os.Stdout, "Modalidades: %s\n", strings.Join(prefs.Modalities, ", "))
	}
	if len(p.ViewedJobs) > 0 {
		fmt.Fprintf(os.Stdout, "Últimas vagas vistas:\n")
		for _, v := range p.ViewedJobs {
			fmt.Fprintf(os.Stdout, "  %s (%s)\n", v.Title, v.ViewedAt.Format("02/01/2006 15:04"))
		}
	}
	fmt.Fprintf(os.Stdout, "Atualizado em: %s\n", p.LastUpdated.Format("02/01/2006 15:04"))
	return nil
}

func runProfileBio(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if _, err := a.loadProfile(ctx); err != nil {
		return err
	}
	bio := args[0]
	if !a.prof.Update(ctx, profile.Patch{Bio: &bio}) {
		return fmt.Errorf("failed to update profile")
	}
	fmt.Fprintln(os.Stdout, "Bio atualizada.")
	return nil
}

func runProfileSkill(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if _, err := a.loadProfile(ctx); err != nil {
		return err
	}

	action, name := args[0], args[1]
	switch action {
	case "add":
		if !a.prof.AddSkill(ctx, name) {
			return fmt.Errorf("failed to update profile")
		}
		fmt.Fprintf(os.Stdout, "Skill %q adicionada.\n", name)
	case "remove":
		if !a.prof.RemoveSkill(ctx, name) {
			return fmt.Errorf("failed to update profile")
		}
		fmt.Fprintf(os.Stdout, "Skill %q removida.\n", name)
	default:
		return fmt.Errorf("unknown action %q, use add or remove", action)
	}
	return nil
}

func runProfileTech(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if _, err := a.loadProfile(ctx); err != nil {
		return err
	}

	action, name := args[0], args[1]
	switch action {
	case "add":
		if !a.prof.AddTechnology(ctx, name) {
			return fmt.Errorf("failed to update profile")
		}
		fmt.Fprintf(os.Stdout, "Tecnologia %q adicionada.\n", name)
	case "remove":
		if !a.prof.RemoveTechnology(ctx, name) {
			return fmt.Errorf("failed to update profile")
		}
		fmt.Fprintf(os.Stdout, "Tecnologia %q removida.\n", name)
	default:
		return fmt.Errorf("unknown action %q, use add or remove", action)
	}
	return nil
}

func runProfileExperience(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if _, err := a.loadProfile(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		ok, err := a.prof.AddExperience(ctx, profile.Experience{
			Title:       expTitle,
			Company:     expCompany,
			StartDate:   expStart,
			EndDate:     expEnd,
			Current:     expCurrent,
			Description: expDescription,
		})
		if err != nil {
			return fmt.Errorf("invalid experience: --title and --company are required")
		}
		if !ok {
			return fmt.Errorf("failed to update profile")
		}
		fmt.Fprintln(os.Stdout, "Experiência adicionada.")
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: profile experience remove <id>")
		}
		if !a.prof.RemoveExperience(ctx, args[1]) {
			return fmt.Errorf("failed to update profile")
		}
		fmt.Fprintln(os.Stdout, "Experiência removida.")
	default:
		return fmt.Errorf("unknown action %q, use add or remove", args[0])
	}
	return nil
}

func runProfilePrefs(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if _, err := a.loadProfile(ctx); err != nil {
		return err
	}

	ok, err := a.prof.UpdateWorkPreferences(ctx, profile.WorkPreferences{
		SalaryRange: profile.SalaryRange{Min: prefsSalaryMin, Max: prefsSalaryMax},
		Locations:   prefsLocations,
		Modalities:  prefsModalities,
		JobTypes:    prefsJobTypes,
	})
	if err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to update profile")
	}
	fmt.Fprintln(os.Stdout, "Preferências atualizadas.")
	return nil
}
