package services

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/qianlnk/hotel/models"
)

// RenderBoard prints the snapshot as a table, one apartment per row.
func RenderBoard(w io.Writer, board models.BoardView) {
	fmt.Fprintf(w, "Hotel %s, day %d (%s), capital %.2f, %d pending suspicions\n",
		board.HotelID, board.DaysPassed, board.Phase, board.Capital, board.Suspicions)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "APT\tFLOOR\tROOM\tDOOR\tRESIDENT\tSTATUS\tBALANCE\tMAIL\tGUESTS")
	for _, apt := range board.Apartments {
		door := "open"
		if !apt.Open {
			door = "closed"
		}
		name, status, balance := "-", "-", "-"
		if r := apt.Resident; r != nil {
			name = fmt.Sprintf("%s (%s)", r.Name, r.Type)
			status = string(r.Status)
			if r.SuperStatus != models.None {
				status += ", " + string(r.SuperStatus)
			}
			balance = fmt.Sprintf("%.2f", r.Balance)
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\t%s\t%d\t%v\n",
			apt.Number, apt.Floor, apt.Position, door, name, status, balance, apt.Mail, apt.Guests)
	}
	tw.Flush()

	if board.Outcome != models.GameOngoing {
		fmt.Fprintf(w, "Game over: %s\n", outcomeText(board.Outcome))
	}
}

func outcomeText(outcome models.Outcome) string {
	switch outcome {
	case models.ResidentsWin:
		return "the residents caught every killer"
	case models.KillerWins:
		return "the killers took over the hotel"
	default:
		return "the game goes on"
	}
}
