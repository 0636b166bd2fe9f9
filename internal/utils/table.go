package utils

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// RenderTable writes an indexed table to w. Rows print with a 1-based index
// column so the user can answer selection prompts by number.
func RenderTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "idx\t%s\n", strings.Join(header, "\t"))
	for i, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\n", i+1, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// ParseIndexList parses comma separated 1-based indexes ("1,3") against a
// list of length n and returns 0-based positions.
func ParseIndexList(input string, n int) ([]int, error) {
	var out []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := 0
		for _, c := range part {
			if c < '0' || c > '9' {
				return nil, fmt.Errorf("invalid index %q", part)
			}
			idx = idx*10 + int(c-'0')
		}
		if idx < 1 || idx > n {
			return nil, fmt.Errorf("index %d out of range 1..%d", idx, n)
		}
		out = append(out, idx-1)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no indexes given")
	}
	return out, nil
}
