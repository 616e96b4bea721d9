package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pawprint/internal/search"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		yearFrom     int
		yearTo       int
		minRating    float64
		genresCSV    string
		includeCSV   string
		excludeCSV   string
		noAnimalHarm bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a discovery search from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, orchestrator, err := ctx.buildPipeline()
			if err != nil {
				return err
			}
			defer store.Close()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			criteria := search.Criteria{
				YearFrom:      yearFrom,
				YearTo:        yearTo,
				MinRating:     minRating,
				GenreIDs:      parseIDList(genresCSV),
				IncludeActors: parseNameList(includeCSV),
				ExcludeActors: parseNameList(excludeCSV),
				NoAnimalHarm:  noAnimalHarm,
			}

			out, err := orchestrator.Run(cmd.Context(), cfg.Search.DefaultUserID, criteria)
			if err != nil {
				return err
			}

			if out.Note != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Note: %s.\n\n", out.Note)
			}
			if len(out.Movies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No movies matched.")
				return nil
			}

			caser := cases.Title(language.English)
			rows := make([][]string, 0, len(out.Movies))
			for _, movie := range out.Movies {
				year := ""
				if y := movie.ReleaseYear(); y > 0 {
					year = strconv.Itoa(y)
				}
				rows = append(rows, []string{
					strconv.FormatInt(movie.ID, 10),
					movie.Title,
					year,
					fmt.Sprintf("%.1f", movie.VoteAverage),
					strconv.FormatInt(movie.VoteCount, 10),
					caser.String(string(movie.Safety)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Title", "Year", "Rating", "Votes", "Dog Safety"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&yearFrom, "year-from", 0, "Earliest release year")
	cmd.Flags().IntVar(&yearTo, "year-to", 0, "Latest release year")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "Minimum average rating (0-10)")
	cmd.Flags().StringVar(&genresCSV, "genres", "", "Comma-separated TMDB genre ids")
	cmd.Flags().StringVar(&includeCSV, "include-actors", "", "Comma-separated actor names to require")
	cmd.Flags().StringVar(&excludeCSV, "exclude-actors", "", "Comma-separated actor names to exclude")
	cmd.Flags().BoolVar(&noAnimalHarm, "no-animal-harm", false, "Drop movies where a dog is known to die")

	return cmd
}

func parseNameList(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

func parseIDList(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
