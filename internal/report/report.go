// Package report renders the end-of-run summary: field counts plus a
// bounded preview of the first and last few records.
package report

import (
	"fmt"
	"io"

	"leadgrab/internal/records"

	"github.com/jedib0t/go-pretty/v6/table"
)

const previewEdge = 5

// Summary writes record counts and a first/last preview table to w.
func Summary(w io.Writer, rs *records.ResultSet) {
	total := rs.Len()
	if total == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}

	withPhone := 0
	withEmail := 0
	for _, r := range rs.Records {
		if r.HasPhone() {
			withPhone++
		}
		if r.HasEmail() {
			withEmail++
		}
	}

	fmt.Fprintf(w, "Total records: %d\n", total)
	fmt.Fprintf(w, "  With phone number: %d / without: %d\n", withPhone, total-withPhone)
	if rs.HasEmailColumn {
		fmt.Fprintf(w, "  With email: %d / without: %d\n", withEmail, total-withEmail)
	}
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	header := table.Row{"#", records.ColBusinessName, records.ColPhoneNumber}
	if rs.HasEmailColumn {
		header = append(header, records.ColEmail)
	}
	t.AppendHeader(header)

	if total <= 2*previewEdge {
		for i, r := range rs.Records {
			t.AppendRow(previewRow(rs, i, r))
		}
	} else {
		for i := 0; i < previewEdge; i++ {
			t.AppendRow(previewRow(rs, i, rs.Records[i]))
		}
		t.AppendSeparator()
		t.AppendRow(table.Row{"...", fmt.Sprintf("(%d more records)", total-2*previewEdge)})
		t.AppendSeparator()
		for i := total - previewEdge; i < total; i++ {
			t.AppendRow(previewRow(rs, i, rs.Records[i]))
		}
	}
	t.Render()
}

func previewRow(rs *records.ResultSet, idx int, r records.Record) table.Row {
	row := table.Row{idx + 1, truncate(r.BusinessName, 50), r.PhoneNumber}
	if rs.HasEmailColumn {
		row = append(row, r.Email)
	}
	return row
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
