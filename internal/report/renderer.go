package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"qalib/internal/arabic"
	"qalib/internal/domain"
)

const fontFamily = "qalib-arabic"

// creationDate is pinned so that rendering the same record twice yields
// byte-identical PDFs.
var creationDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Renderer produces the Arabic job card PDF report.
type Renderer struct {
	fonts *FontSet
}

// NewRenderer builds a renderer around a validated font set.
func NewRenderer(fonts *FontSet) *Renderer {
	return &Renderer{fonts: fonts}
}

type section struct {
	Title string
	Lines []string
}

// Render lays out the job card record as a right-aligned A4 PDF. Empty
// sections are skipped entirely.
func (r *Renderer) Render(record *domain.JobDescriptionRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(creationDate)
	pdf.AddUTF8Font(fontFamily, "", r.fonts.RegularPath)
	pdf.AddUTF8Font(fontFamily, "B", r.fonts.BoldPath)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: loading fonts: %v", domain.ErrFontMissing, err)
	}

	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	title := record.JobTitle
	if title == "" {
		title = "بطاقة الوصف الوظيفي"
	}
	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 12, arabic.Shape(title), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	for _, sec := range sections(record) {
		pdf.SetFont(fontFamily, "B", 13)
		pdf.CellFormat(0, 9, arabic.Shape(sec.Title), "", 1, "R", false, 0, "")
		pdf.SetFont(fontFamily, "", 11)
		for _, line := range sec.Lines {
			pdf.MultiCell(0, 7, arabic.Shape(line), "", "R", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering job card pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// sections assembles the ordered report sections from a record, omitting
// sections with no content.
func sections(record *domain.JobDescriptionRecord) []section {
	var secs []section
	add := func(title string, lines []string) {
		var kept []string
		for _, l := range lines {
			if strings.TrimSpace(l) != "" {
				kept = append(kept, l)
			}
		}
		if len(kept) > 0 {
			secs = append(secs, section{Title: title, Lines: kept})
		}
	}

	add("البيانات المرجعية للمهنة", referenceLines(record.Reference))
	add("الملخص العام للمهنة", []string{record.Summary})
	add("قنوات التواصل الداخلية", channelLines(record.InternalChannels))
	add("قنوات التواصل الخارجية", channelLines(record.ExternalChannels))
	add("مستويات المهنة القياسية", levelLines(record.Levels))
	add("الجدارات السلوكية", competencyLines(record.Behavioral))
	add("الجدارات الأساسية", competencyLines(record.Core))
	add("الجدارات القيادية", competencyLines(record.Leadership))
	add("الجدارات الفنية", competencyLines(record.Technical))
	add("المهام القيادية والإشرافية", record.LeadershipTasks)
	add("المهام التخصصية", record.SpecializedTasks)
	add("مهام أخرى", record.OtherTasks)
	add("مؤشرات إدارة الأداء", kpiLines(record.KPIs))
	return secs
}

func referenceLines(ref domain.ReferenceData) []string {
	pairs := []struct{ label, value string }{
		{"المجموعة الرئيسية", ref.MainGroup},
		{"رمز المجموعة الرئيسية", ref.MainGroupCode},
		{"المجموعة الفرعية", ref.SubGroup},
		{"رمز المجموعة الفرعية", ref.SubGroupCode},
		{"المجموعة الثانوية", ref.SecondaryGroup},
		{"رمز المجموعة الثانوية", ref.SecondaryGroupCode},
		{"مجموعة الوحدات", ref.UnitGroup},
		{"رمز مجموعة الوحدات", ref.UnitGroupCode},
		{"المهنة", ref.Profession},
		{"رمز المهنة", ref.ProfessionCode},
		{"مقر العمل", ref.WorkLocation},
		{"المرتبة", ref.Grade},
	}
	var lines []string
	for _, p := range pairs {
		if p.value != "" {
			lines = append(lines, p.label+": "+p.value)
		}
	}
	return lines
}

func channelLines(channels []domain.CommChannel) []string {
	var lines []string
	for _, c := range channels {
		switch {
		case c.Entity != "" && c.Purpose != "":
			lines = append(lines, c.Entity+": "+c.Purpose)
		case c.Entity != "":
			lines = append(lines, c.Entity)
		case c.Purpose != "":
			lines = append(lines, c.Purpose)
		}
	}
	return lines
}

func levelLines(levels []domain.JobLevel) []string {
	var lines []string
	for _, l := range levels {
		parts := make([]string, 0, 4)
		if l.Level != "" {
			parts = append(parts, "المستوى: "+l.Level)
		}
		if l.Code != "" {
			parts = append(parts, "الرمز: "+l.Code)
		}
		if l.Role != "" {
			parts = append(parts, "الدور: "+l.Role)
		}
		if l.Progression != "" {
			parts = append(parts, "التدرج: "+l.Progression)
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, " | "))
		}
	}
	return lines
}

func competencyLines(comps []domain.Competency) []string {
	var lines []string
	for _, c := range comps {
		if c.Name == "" {
			continue
		}
		if c.Proficiency != "" {
			lines = append(lines, c.Name+" ("+c.Proficiency+")")
			continue
		}
		lines = append(lines, c.Name)
	}
	return lines
}

func kpiLines(kpis []domain.KPI) []string {
	var lines []string
	for _, k := range kpis {
		switch {
		case k.Metric != "" && k.Measurement != "":
			lines = append(lines, k.Metric+": "+k.Measurement)
		case k.Metric != "":
			lines = append(lines, k.Metric)
		case k.Measurement != "":
			lines = append(lines, k.Measurement)
		}
	}
	return lines
}
