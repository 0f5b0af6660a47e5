package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"sprintboard/internal/models"
	"sprintboard/internal/models/user"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func row(tw *tabwriter.Writer, cols ...any) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw)
}

func dateOrDash(d *models.Date) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return d.String()
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func userOrDash(u *user.User, id *int64) string {
	switch {
	case u != nil:
		return u.Name
	case id != nil:
		return "#" + strconv.FormatInt(*id, 10)
	default:
		return "-"
	}
}
