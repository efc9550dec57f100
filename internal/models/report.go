package models

// Report is a static tabular series from the reports page.
type Report struct {
	Name    string     `json:"name" yaml:"name"`
	Title   string     `json:"title" yaml:"title"`
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}
