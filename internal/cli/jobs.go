package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dan-yates1/job-tracker/api"
)

func newJobsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage tracked job applications",
	}

	cmd.AddCommand(
		newJobsListCmd(app),
		newJobsShowCmd(app),
		newJobsAddCmd(app),
		newJobsStatusCmd(app),
		newJobsDeleteCmd(app),
		newJobsInteractionsCmd(app),
	)
	return cmd
}

func newJobsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List job applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := app.api.ListJobs(cmd.Context())
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Info.Sprint("No applications yet"))
				return nil
			}

			f := app.jobtrack.Formatter()
			data := pterm.TableData{{"ID", "Company", "Position", "Status", "Salary", "Applied"}}
			for _, job := range jobs {
				data = append(data, []string{
					job.ID.String(),
					job.CompanyName,
					job.PositionTitle,
					string(job.Status.Display()),
					job.SalaryRange(f),
					f.FormatDate(job.AppliedDate),
				})
			}
			return renderTable(cmd.OutOrStdout(), data, true)
		},
	}
}

func newJobsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one job application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			job, err := app.api.GetJob(cmd.Context(), id)
			if err != nil {
				return err
			}

			f := app.jobtrack.Formatter()
			data := pterm.TableData{
				{"Company", job.CompanyName},
				{"Position", job.PositionTitle},
				{"Status", fmt.Sprintf("%s (%s)", job.Status.Display(), job.Status.Class())},
				{"Salary", job.SalaryRange(f)},
				{"Location", deref(job.Location)},
				{"Applied", f.FormatDate(job.AppliedDate)},
				{"URL", deref(job.JobURL)},
				{"Notes", deref(job.Notes)},
			}
			if job.RemoteType != nil {
				data = append(data, []string{"Remote", string(*job.RemoteType)})
			}
			return renderTable(cmd.OutOrStdout(), data, false)
		},
	}
}

func newJobsAddCmd(app *App) *cobra.Command {
	var (
		job       api.JobCreate
		status    string
		url       string
		location  string
		notes     string
		salaryMin int
		salaryMax int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a new job application",
		RunE: func(cmd *cobra.Command, args []string) error {
			job.Status = api.JobStatus(status)
			job.JobURL = optional(url)
			job.Location = optional(location)
			job.Notes = optional(notes)
			if cmd.Flags().Changed("salary-min") {
				job.SalaryMin = &salaryMin
			}
			if cmd.Flags().Changed("salary-max") {
				job.SalaryMax = &salaryMax
			}

			created, err := app.api.CreateJob(cmd.Context(), job)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Tracking %s at %s (%s)",
				created.PositionTitle, created.CompanyName, created.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&job.CompanyName, "company", "", "company name")
	cmd.Flags().StringVar(&job.PositionTitle, "position", "", "position title")
	cmd.Flags().StringVar(&status, "status", string(api.JobStatusApplied), "application status")
	cmd.Flags().StringVar(&job.AppliedDate, "applied", "", "applied date, YYYY-MM-DD")
	cmd.Flags().StringVar(&url, "url", "", "job posting URL")
	cmd.Flags().StringVar(&location, "location", "", "job location")
	cmd.Flags().StringVar(&notes, "notes", "", "free form notes")
	cmd.Flags().IntVar(&salaryMin, "salary-min", 0, "lower salary bound")
	cmd.Flags().IntVar(&salaryMax, "salary-max", 0, "upper salary bound")
	return cmd
}

func newJobsStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Move an application to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			status := api.JobStatus(args[1])
			job, err := app.api.UpdateJob(cmd.Context(), id, api.JobUpdate{Status: &status})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("%s at %s is now %s",
				job.PositionTitle, job.CompanyName, job.Status.Display()))
			return nil
		},
	}
}

func newJobsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Stop tracking an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.api.DeleteJob(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Deleted %s", id))
			return nil
		},
	}
}

func newJobsInteractionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "interactions <id>",
		Short: "List interactions recorded for an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			interactions, err := app.api.ListInteractions(cmd.Context(), id)
			if err != nil {
				return err
			}

			f := app.jobtrack.Formatter()
			data := pterm.TableData{{"#", "Type", "Date", "Notes"}}
			for i, in := range interactions {
				data = append(data, []string{
					strconv.Itoa(i + 1),
					string(in.InteractionType),
					f.FormatTime(in.InteractionDate),
					deref(in.Notes),
				})
			}
			return renderTable(cmd.OutOrStdout(), data, true)
		},
	}
}

func renderTable(w io.Writer, data pterm.TableData, header bool) error {
	table, err := pterm.DefaultTable.WithHasHeader(header).WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid job id %q: %w", raw, err)
	}
	return id, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
