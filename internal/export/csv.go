package export

import (
	"bufio"
	"io"
	"strings"
)

// WriteCSV writes the header row as is and every data value double-quoted,
// with embedded quotes doubled. Rows end in "\n".
func WriteCSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(t.Columns, ",") + "\n"); err != nil {
		return err
	}
	for _, row := range t.Rows {
		for i, v := range row {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quoteCSV(v)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quoteCSV(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
