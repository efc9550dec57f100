package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"plant_monitor/internal/models"

	"github.com/matryer/is"
	"github.com/xuri/excelize/v2"
)

func testAlarms(n int) []models.Alarm {
	out := make([]models.Alarm, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Alarm{
			ID:       "ALM-" + string(rune('A'+i%26)),
			Title:    "Alarm",
			Severity: models.SeverityLow,
			Status:   models.AlarmActive,
			Machine:  "Packaging Press",
		})
	}
	return out
}

func TestFilename(t *testing.T) {
	is := is.New(t)
	day := time.Date(2024, 1, 5, 23, 59, 0, 0, time.UTC)
	is.Equal(Filename("alarms", FormatCSV, day), "alarms_export_2024-01-05.csv")
	is.Equal(Filename("performance", FormatXLSX, day), "performance_export_2024-01-05.xlsx")
}

func TestParseFormat(t *testing.T) {
	is := is.New(t)
	f, err := ParseFormat(" PPTX ")
	is.NoErr(err)
	is.Equal(f, FormatPPTX)
	is.Equal(f.ContentType(), "application/vnd.openxmlformats-officedocument.presentationml.presentation")

	_, err = ParseFormat("pdf")
	is.True(err != nil)
}

func TestWriteCSV_QuotesEveryValue(t *testing.T) {
	is := is.New(t)
	alarms := []models.Alarm{
		{
			ID: "ALM-002", Title: `Temp "high"`, Description: "Cooling, above 85°C",
			Severity: models.SeverityHigh, Status: models.AlarmAcknowledged,
			Machine: "Welding Robot 02", Location: "Assembly Line 3", Category: models.CategoryTemperature,
			Timestamp: "2024-01-15 14:15:00", AcknowledgedBy: "Vivek Valsang", AcknowledgedAt: "2024-01-15 14:18:00",
		},
		{ID: "ALM-005", Title: "Pressure Drop Warning", Severity: models.SeverityMedium, Status: models.AlarmActive},
	}

	var buf bytes.Buffer
	is.NoErr(WriteCSV(&buf, AlarmTable(alarms)))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	is.Equal(len(lines), 3)
	is.Equal(lines[0], "ID,Title,Description,Severity,Status,Machine,Location,Category,Timestamp,Acknowledged By,Acknowledged At")
	is.Equal(lines[1], `"ALM-002","Temp ""high""","Cooling, above 85°C","High","Acknowledged","Welding Robot 02","Assembly Line 3","Temperature","2024-01-15 14:15:00","Vivek Valsang","2024-01-15 14:18:00"`)
	is.Equal(lines[2], `"ALM-005","Pressure Drop Warning","","Medium","Active","","","","","",""`)
}

func TestWriteCSV_EmptyWritesHeaderOnly(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(WriteCSV(&buf, AlarmTable(nil)))
	is.Equal(strings.Count(buf.String(), "\n"), 1)
}

func TestWriteXLSX_SheetAndCells(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(WriteXLSX(&buf, AlarmTable(testAlarms(3))))

	f, err := excelize.OpenReader(&buf)
	is.NoErr(err)
	defer f.Close()

	is.Equal(f.GetSheetList(), []string{"Alarms"})
	rows, err := f.GetRows("Alarms")
	is.NoErr(err)
	is.Equal(len(rows), 4)
	is.Equal(rows[0][0], "ID")
	is.Equal(rows[0][10], "Acknowledged At")
	is.Equal(rows[1][5], "Packaging Press")
}

func TestWriteXLSX_LongSheetNameIsCut(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	tbl := Table{Sheet: strings.Repeat("x", 40), Columns: []string{"A"}, Rows: [][]string{{"1"}}}
	is.NoErr(WriteXLSX(&buf, tbl))

	f, err := excelize.OpenReader(&buf)
	is.NoErr(err)
	defer f.Close()
	is.Equal(len([]rune(f.GetSheetList()[0])), maxSheetName)
}

func TestAlarmDeck_SlideCount(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	cases := map[int]int{0: 2, 1: 3, 8: 3, 9: 4, 17: 5}
	for n, want := range cases {
		d := AlarmDeck(testAlarms(n), models.AlarmStats{}, now)
		is.Equal(len(d.Slides), want)
	}

	d := AlarmDeck(testAlarms(9), models.AlarmStats{}, now)
	is.Equal(d.Slides[2].Texts[0].Text, "Alarm Details (1/2)")
	is.Equal(len(d.Slides[2].Table.Rows), 8)
	is.Equal(d.Slides[3].Texts[0].Text, "Alarm Details (2/2)")
	is.Equal(len(d.Slides[3].Table.Rows), 1)
	is.Equal(d.Slides[0].Texts[1].Text, "Generated on 1/15/2024")
	is.Equal(d.Slides[0].Texts[2].Text, "Total Alarms: 9")
}

func TestAlarmDeck_SummaryUsesStats(t *testing.T) {
	is := is.New(t)
	stats := models.AlarmStats{Active: 3, Critical: 2, Acknowledged: 2, Resolved: 1, Total: 6}
	d := AlarmDeck(nil, stats, time.Now())
	is.Equal(d.Slides[1].Table.Rows, [][]string{
		{"Active", "3"}, {"Critical", "2"}, {"Acknowledged", "2"}, {"Resolved", "1"},
	})
}

func TestTruncate(t *testing.T) {
	is := is.New(t)
	is.Equal(truncate("Hydraulic System Failure", 30), "Hydraulic System Failure")
	exact := strings.Repeat("a", 30)
	is.Equal(truncate(exact, 30), exact)
	is.Equal(truncate(strings.Repeat("b", 31), 30), strings.Repeat("b", 30)+"...")
	is.Equal(truncate("Überhitzung Überhitzung Überhitzung", 30), "Überhitzung Überhitzung Überhi...")
}

func TestWritePPTX_Package(t *testing.T) {
	is := is.New(t)
	alarms := testAlarms(9)
	alarms[0].Title = `Pump <A> & "B"`

	var buf bytes.Buffer
	is.NoErr(WritePPTX(&buf, AlarmDeck(alarms, models.AlarmStats{Active: 9}, time.Now())))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	is.NoErr(err)

	files := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		is.NoErr(err)
		b, err := io.ReadAll(rc)
		is.NoErr(err)
		rc.Close()
		files[f.Name] = string(b)
	}

	for _, name := range []string{
		"[Content_Types].xml", "_rels/.rels", "ppt/presentation.xml",
		"ppt/slideMasters/slideMaster1.xml", "ppt/theme/theme1.xml",
		"ppt/slides/slide4.xml", "ppt/slides/_rels/slide4.xml.rels",
	} {
		_, ok := files[name]
		is.True(ok) // part present
	}
	_, extra := files["ppt/slides/slide5.xml"]
	is.True(!extra)

	is.True(strings.Contains(files["ppt/slides/slide3.xml"], "Pump &lt;A&gt; &amp; &#34;B&#34;"))
	is.True(strings.Contains(files["ppt/slides/slide4.xml"], "Alarm Details (2/2)"))
	is.Equal(strings.Count(files["ppt/presentation.xml"], "<p:sldId "), 4)
	is.True(strings.Contains(files["docProps/app.xml"], "<Slides>4</Slides>"))
}
