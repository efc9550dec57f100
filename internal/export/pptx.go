package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"
)

// emuPerInch converts slide coordinates given in inches.
const emuPerInch = 914400

// Deck is a presentation of absolutely positioned text boxes and tables on a
// 10in x 7.5in canvas.
type Deck struct {
	Title   string
	Created time.Time
	Slides  []Slide
}

type Slide struct {
	Texts []TextBox
	Table *SlideTable
}

type TextBox struct {
	Text       string
	X, Y, W, H float64 // inches
	Size       int     // pt
	Bold       bool
	Color      string // RRGGBB
}

type SlideTable struct {
	X, Y, W, H float64
	FontSize   int
	Header     []string
	Rows       [][]string
}

type pptxPart struct {
	name string
	tmpl *template.Template
	data any
}

// WritePPTX packages d as an Office Open XML presentation.
func WritePPTX(w io.Writer, d Deck) error {
	zw := zip.NewWriter(w)

	parts := []pptxPart{
		{"[Content_Types].xml", contentTypesTmpl, d},
		{"_rels/.rels", rootRelsTmpl, nil},
		{"docProps/core.xml", coreTmpl, d},
		{"docProps/app.xml", appTmpl, d},
		{"ppt/presentation.xml", presentationTmpl, d},
		{"ppt/_rels/presentation.xml.rels", presentationRelsTmpl, d},
		{"ppt/slideMasters/slideMaster1.xml", masterTmpl, nil},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRelsTmpl, nil},
		{"ppt/slideLayouts/slideLayout1.xml", layoutTmpl, nil},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", layoutRelsTmpl, nil},
		{"ppt/theme/theme1.xml", themeTmpl, nil},
	}
	for i, s := range d.Slides {
		parts = append(parts,
			pptxPart{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideTmpl, s},
			pptxPart{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRelsTmpl, nil},
		)
	}

	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := io.WriteString(f, xml.Header); err != nil {
			return err
		}
		if err := p.tmpl.Execute(f, p.data); err != nil {
			return fmt.Errorf("render %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

var pptxFuncs = template.FuncMap{
	"x": func(s string) string {
		var b bytes.Buffer
		_ = xml.EscapeText(&b, []byte(s))
		return b.String()
	},
	"emu": func(in float64) int64 { return int64(in * emuPerInch) },
	"add": func(a, b int) int { return a + b },
	"colw": func(t *SlideTable) int64 {
		if len(t.Header) == 0 {
			return 0
		}
		return int64(t.W*emuPerInch) / int64(len(t.Header))
	},
	"rowh": func(t *SlideTable) int64 {
		return int64(t.H*emuPerInch) / int64(len(t.Rows)+1)
	},
	"hpt":    func(pt int) int { return pt * 100 },
	"iso":    func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"fields": strings.Fields,
}

func mustTmpl(name, body string) *template.Template {
	return template.Must(template.New(name).Funcs(pptxFuncs).Parse(strings.TrimSpace(body)))
}

const (
	nsA = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	nsP = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

	relNS        = `http://schemas.openxmlformats.org/package/2006/relationships`
	relTypeBase  = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/`
	contentTypeP = `application/vnd.openxmlformats-officedocument.presentationml.`
)

var contentTypesTmpl = mustTmpl("types", `
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/ppt/presentation.xml" ContentType="`+contentTypeP+`presentation.main+xml"/>
<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="`+contentTypeP+`slideMaster+xml"/>
<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="`+contentTypeP+`slideLayout+xml"/>
<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>
{{range $i, $s := .Slides}}<Override PartName="/ppt/slides/slide{{add $i 1}}.xml" ContentType="`+contentTypeP+`slide+xml"/>
{{end}}<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>
</Types>`)

var rootRelsTmpl = mustTmpl("rels", `
<Relationships xmlns="`+relNS+`">
<Relationship Id="rId1" Type="`+relTypeBase+`officeDocument" Target="ppt/presentation.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
<Relationship Id="rId3" Type="`+relTypeBase+`extended-properties" Target="docProps/app.xml"/>
</Relationships>`)

var coreTmpl = mustTmpl("core", `
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<dc:title>{{x .Title}}</dc:title>
<dc:creator>plant_monitor</dc:creator>
<dcterms:created xsi:type="dcterms:W3CDTF">{{iso .Created}}</dcterms:created>
</cp:coreProperties>`)

var appTmpl = mustTmpl("app", `
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
<Application>plant_monitor</Application>
<Slides>{{len .Slides}}</Slides>
</Properties>`)

var presentationTmpl = mustTmpl("presentation", `
<p:presentation `+nsA+` `+nsR+` `+nsP+`>
<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>
<p:sldIdLst>{{range $i, $s := .Slides}}<p:sldId id="{{add $i 256}}" r:id="rId{{add $i 3}}"/>{{end}}</p:sldIdLst>
<p:sldSz cx="9144000" cy="6858000" type="screen4x3"/>
<p:notesSz cx="6858000" cy="9144000"/>
</p:presentation>`)

var presentationRelsTmpl = mustTmpl("presentation-rels", `
<Relationships xmlns="`+relNS+`">
<Relationship Id="rId1" Type="`+relTypeBase+`slideMaster" Target="slideMasters/slideMaster1.xml"/>
<Relationship Id="rId2" Type="`+relTypeBase+`theme" Target="theme/theme1.xml"/>
{{range $i, $s := .Slides}}<Relationship Id="rId{{add $i 3}}" Type="`+relTypeBase+`slide" Target="slides/slide{{add $i 1}}.xml"/>
{{end}}</Relationships>`)

const emptyTree = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

var masterTmpl = mustTmpl("master", `
<p:sldMaster `+nsA+` `+nsR+` `+nsP+`>
<p:cSld><p:spTree>`+emptyTree+`</p:spTree></p:cSld>
<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>
</p:sldMaster>`)

var masterRelsTmpl = mustTmpl("master-rels", `
<Relationships xmlns="`+relNS+`">
<Relationship Id="rId1" Type="`+relTypeBase+`slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
<Relationship Id="rId2" Type="`+relTypeBase+`theme" Target="../theme/theme1.xml"/>
</Relationships>`)

var layoutTmpl = mustTmpl("layout", `
<p:sldLayout `+nsA+` `+nsR+` `+nsP+` type="blank" preserve="1">
<p:cSld name="Blank"><p:spTree>`+emptyTree+`</p:spTree></p:cSld>
<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>
</p:sldLayout>`)

var layoutRelsTmpl = mustTmpl("layout-rels", `
<Relationships xmlns="`+relNS+`">
<Relationship Id="rId1" Type="`+relTypeBase+`slideMaster" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`)

var slideRelsTmpl = mustTmpl("slide-rels", `
<Relationships xmlns="`+relNS+`">
<Relationship Id="rId1" Type="`+relTypeBase+`slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
</Relationships>`)

var slideTmpl = mustTmpl("slide", `
<p:sld `+nsA+` `+nsR+` `+nsP+`>
<p:cSld><p:spTree>`+emptyTree+`
{{range $i, $t := .Texts}}<p:sp><p:nvSpPr><p:cNvPr id="{{add $i 2}}" name="Text {{add $i 1}}"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="{{emu $t.X}}" y="{{emu $t.Y}}"/><a:ext cx="{{emu $t.W}}" cy="{{emu $t.H}}"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>
<p:txBody><a:bodyPr wrap="square" rtlCol="0"/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" sz="{{hpt $t.Size}}"{{if $t.Bold}} b="1"{{end}} dirty="0">{{if $t.Color}}<a:solidFill><a:srgbClr val="{{$t.Color}}"/></a:solidFill>{{end}}</a:rPr><a:t>{{x $t.Text}}</a:t></a:r></a:p></p:txBody></p:sp>
{{end}}{{with .Table}}<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="{{add (len $.Texts) 2}}" name="Table 1"/><p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>
<p:xfrm><a:off x="{{emu .X}}" y="{{emu .Y}}"/><a:ext cx="{{emu .W}}" cy="{{emu .H}}"/></p:xfrm>
<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblPr firstRow="1"/>
<a:tblGrid>{{range .Header}}<a:gridCol w="{{colw $.Table}}"/>{{end}}</a:tblGrid>
<a:tr h="{{rowh $.Table}}">{{range .Header}}<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" sz="{{hpt $.Table.FontSize}}" b="1" dirty="0"/><a:t>{{x .}}</a:t></a:r></a:p></a:txBody>{{template "cell" .}}</a:tc>{{end}}</a:tr>
{{range .Rows}}<a:tr h="{{rowh $.Table}}">{{range .}}<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" sz="{{hpt $.Table.FontSize}}" dirty="0"/><a:t>{{x .}}</a:t></a:r></a:p></a:txBody>{{template "cell" .}}</a:tc>{{end}}</a:tr>
{{end}}</a:tbl></a:graphicData></a:graphic></p:graphicFrame>
{{end}}</p:spTree></p:cSld>
<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>
</p:sld>
{{define "cell"}}<a:tcPr>{{range $side := "lnL lnR lnT lnB" | fields}}<a:{{$side}} w="12700"><a:solidFill><a:srgbClr val="CFCFCF"/></a:solidFill></a:{{$side}}>{{end}}</a:tcPr>{{end}}`)

var themeTmpl = mustTmpl("theme", `
<a:theme `+nsA+` name="Plant">
<a:themeElements>
<a:clrScheme name="Plant">
<a:dk1><a:srgbClr val="000000"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>
<a:dk2><a:srgbClr val="363636"/></a:dk2><a:lt2><a:srgbClr val="EEEEEE"/></a:lt2>
<a:accent1><a:srgbClr val="1F4E79"/></a:accent1><a:accent2><a:srgbClr val="C0504D"/></a:accent2>
<a:accent3><a:srgbClr val="9BBB59"/></a:accent3><a:accent4><a:srgbClr val="F79646"/></a:accent4>
<a:accent5><a:srgbClr val="4BACC6"/></a:accent5><a:accent6><a:srgbClr val="8064A2"/></a:accent6>
<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>
</a:clrScheme>
<a:fontScheme name="Plant">
<a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>
<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>
</a:fontScheme>
<a:fmtScheme name="Plant">
<a:fillStyleLst>{{template "fill"}}{{template "fill"}}{{template "fill"}}</a:fillStyleLst>
<a:lnStyleLst>{{template "ln"}}{{template "ln"}}{{template "ln"}}</a:lnStyleLst>
<a:effectStyleLst>{{template "fx"}}{{template "fx"}}{{template "fx"}}</a:effectStyleLst>
<a:bgFillStyleLst>{{template "fill"}}{{template "fill"}}{{template "fill"}}</a:bgFillStyleLst>
</a:fmtScheme>
</a:themeElements>
</a:theme>
{{define "fill"}}<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>{{end}}
{{define "ln"}}<a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>{{end}}
{{define "fx"}}<a:effectStyle><a:effectLst/></a:effectStyle>{{end}}`)
