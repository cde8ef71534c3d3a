package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noah-isme/teamfit-api/internal/dto"
	"github.com/noah-isme/teamfit-api/internal/repository"
	"github.com/noah-isme/teamfit-api/internal/service"
)

var weekOffset int

var weekCmd = &cobra.Command{
	Use:   "week <athlete-id>",
	Short: "Print an athlete's resolved training week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		athleteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || athleteID <= 0 {
			return fmt.Errorf("invalid athlete id %q", args[0])
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		routines := service.NewRoutineService(
			repository.NewRoutineRepository(conn),
			repository.NewRoutineExerciseRepository(conn),
			repository.NewAthleteRepository(conn),
			repository.NewExerciseRepository(conn),
			nil, logr, cfg.Location(),
		)
		view, err := routines.AthleteWeek(cmd.Context(), athleteID, weekOffset)
		if err != nil {
			return err
		}
		printWeek(cmd.OutOrStdout(), view)
		return nil
	},
}

func init() {
	weekCmd.Flags().IntVarP(&weekOffset, "offset", "o", 0, "weeks relative to the current one")
}

func printWeek(out io.Writer, view *dto.WeekView) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	struck := color.New(color.CrossedOut, color.Faint)

	bold.Fprintf(out, "Week of %s (offset %d)\n", view.WeekStart, view.Offset)
	for _, day := range view.Days {
		fmt.Fprintf(out, "\n%s %s\n", bold.Sprint(day.Weekday), faint.Sprint(day.Date))
		if len(day.Occurrences) == 0 {
			faint.Fprintln(out, "  rest")
			continue
		}
		for _, occ := range day.Occurrences {
			line := fmt.Sprintf("  %s-%s  %s  [%s]", occ.Item.Start, occ.Item.End, occ.Item.ExerciseName, occ.Item.RoutineName)
			if occ.Excluded {
				struck.Fprintln(out, line+"  excluded")
				continue
			}
			fmt.Fprintln(out, line)
		}
	}
}
