package main

import (
	"errors"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"workdays/internal/application/orchestrators"
	"workdays/internal/application/projections"
	"workdays/internal/domain/workday"
)

// exitValidation is the exit code for requests rejected by validation.
const exitValidation = 2

var cliFuncs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format(workday.DateLayout) },
}

var resultTemplate = template.Must(template.New("result").Funcs(cliFuncs).Parse(
	"{{.WorkingDays}} working days in {{.Country.Name}} ({{.Country.Code}}) from {{date .Range.Start}} to {{date .Range.End}}\n",
))

var countriesTemplate = template.Must(template.New("countries").Parse(
	"{{range .}}{{.Code}}\t{{.Name}}\n{{end}}",
))

var holidaysTemplate = template.Must(template.New("holidays").Parse(
	"{{.Country.Name}} {{.Year}}\n{{range .Holidays}}{{.Date}}\t{{.Weekday}}\t{{.Name}}{{if ne .Observed .Date}} (observed {{.Observed}}){{end}}\n{{end}}",
))

func (c *cli) calcCmd() *cobra.Command {
	var start, end, country string
	cmd := &cobra.Command{
		Use:     "calc",
		Short:   "Count working days between two dates",
		Example: "workdays calc --start 2023-10-02 --end 2023-10-06 --country DE",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startDate, err := workday.ParseDate(strings.TrimSpace(start))
			if err != nil {
				return &exitError{code: exitValidation, err: errors.New("--start must use YYYY-MM-DD")}
			}
			endDate, err := workday.ParseDate(strings.TrimSpace(end))
			if err != nil {
				return &exitError{code: exitValidation, err: errors.New("--end must use YYYY-MM-DD")}
			}

			a, err := newApp(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := orchestrators.ExecuteCalculateWorkingDays(cmd.Context(), orchestrators.CalculateWorkingDaysInput{
				Start:       startDate,
				End:         endDate,
				CountryCode: country,
			}, a.calculateDeps())
			var verr *workday.ValidationError
			if errors.As(err, &verr) {
				return &exitError{code: exitValidation, err: verr}
			}
			if err != nil {
				return err
			}
			return resultTemplate.Execute(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&country, "country", "", "ISO 3166-1 alpha-2 country code")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("country")
	return cmd
}

func (c *cli) countriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List supported countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return countriesTemplate.Execute(cmd.OutOrStdout(), a.directory.ListAll())
		},
	}
	cmd.AddCommand(c.holidaysCmd())
	return cmd
}

func (c *cli) holidaysCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:     "holidays CODE",
		Short:   "List one country's public holidays for a year",
		Example: "workdays countries holidays DE --year 2023",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if year == 0 {
				year = time.Now().Year()
			}
			result, err := projections.QueryGetCountryHolidays(cmd.Context(), projections.GetCountryHolidaysQuery{
				CountryCode: args[0],
				Year:        year,
			}, projections.GetCountryHolidaysDeps{Countries: a.directory, Holidays: a.oracle})
			if err != nil {
				return err
			}
			return holidaysTemplate.Execute(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "calendar year, defaults to the current one")
	return cmd
}
