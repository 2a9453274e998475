package report

import (
	"strconv"

	"qalib/internal/domain"
)

// blank marks a cell or line left for manual entry on the printed card.
const blank = "_________________"

func orBlank(s string) string {
	if s == "" {
		return blank
	}
	return s
}

// GenerateJobCardDOCX renders the two-part job description card as a DOCX:
// part A is the classification template with labeled tables, part B the
// actual description with task lists and competency/KPI tables. Fields the
// record does not carry become blank entry lines.
func GenerateJobCardDOCX(record *domain.JobDescriptionRecord) ([]byte, error) {
	b := newDocBuilder()

	b.heading(0, "نظام بطاقة الوصف المهني")
	if record.JobTitle != "" {
		b.paragraph("المهنة: " + record.JobTitle)
	}

	// Part A
	b.heading(1, "أ- نموذج بطاقة الوصف المهني")

	b.heading(2, "1. البيانات المرجعية للمهنة")
	ref := record.Reference
	b.table([][]string{
		{orBlank(ref.MainGroup), orBlank(ref.MainGroupCode), "المجموعة الرئيسية"},
		{orBlank(ref.SubGroup), orBlank(ref.SubGroupCode), "المجموعة الفرعية"},
		{orBlank(ref.SecondaryGroup), orBlank(ref.SecondaryGroupCode), "المجموعة الثانوية"},
		{orBlank(ref.UnitGroup), orBlank(ref.UnitGroupCode), "مجموعة الوحدات"},
		{orBlank(ref.Profession), orBlank(ref.ProfessionCode), "المهنة"},
		{orBlank(ref.WorkLocation), "", "موقع العمل"},
		{orBlank(ref.Grade), "", "المرتبة"},
	})

	b.heading(2, "2. الملخص العام للمهنة")
	if record.Summary != "" {
		b.paragraph(record.Summary)
	} else {
		for i := 0; i < 8; i++ {
			b.paragraph(blank)
		}
	}

	b.heading(2, "3. قنوات التواصل")
	b.table([][]string{
		{firstChannel(record.InternalChannels), "الغرض من التواصل", "جهات التواصل الداخلية"},
		{firstChannel(record.ExternalChannels), "الغرض من التواصل", "جهات التواصل الخارجية"},
		{blank, "", ""},
	})

	b.heading(2, "4. مستويات المهنة القياسية")
	var lvl domain.JobLevel
	if len(record.Levels) > 0 {
		lvl = record.Levels[0]
	}
	b.table([][]string{
		{orBlank(lvl.Level), "مستوى المهنة القياسي"},
		{orBlank(lvl.Code), "رمز المستوى المهني"},
		{orBlank(lvl.Role), "الدور المهني"},
		{orBlank(lvl.Progression), "التدرج المهني (المرتبة)"},
		{blank, ""},
	})

	b.heading(2, "5. الجدارات")
	b.table([][]string{
		{firstCompetency(record.Core), "الجدارات الأساسية", "الجدارات السلوكية"},
		{firstCompetency(record.Leadership), "الجدارات القيادية", ""},
		{firstCompetency(record.Technical), "الجدارات الفنية", ""},
		{blank, "", ""},
	})

	b.pageBreak()

	// Part B
	b.heading(1, "ب- نموذج الوصف الفعلي")

	b.heading(2, "1. المهام")
	b.heading(3, "المهام القيادية / الإشرافية")
	taskLines(b, record.LeadershipTasks)
	b.heading(3, "المهام التخصصية")
	taskLines(b, record.SpecializedTasks)
	b.heading(3, "مهام أخرى إضافية")
	taskLines(b, record.OtherTasks)

	b.heading(2, "2. الجدارات السلوكية والفنية")
	b.heading(3, "الجدارات السلوكية")
	competencyTable(b, "الجدارات السلوكية", record.Behavioral)
	b.heading(3, "الجدارات الفنية")
	competencyTable(b, "الجدارات الفنية", record.Technical)

	b.heading(2, "3. إدارة الأداء المهني")
	kpiRows := [][]string{{"الرقم", "مؤشرات الأداء الرئيسية", "طريقة القياس"}}
	n := 0
	for _, k := range record.KPIs {
		if k.Metric == "" && k.Measurement == "" {
			continue
		}
		n++
		kpiRows = append(kpiRows, []string{strconv.Itoa(n), orBlank(k.Metric), orBlank(k.Measurement)})
	}
	for i := 0; i < 4; i++ {
		n++
		kpiRows = append(kpiRows, []string{strconv.Itoa(n), blank, blank})
	}
	b.table(kpiRows)

	return b.bytes()
}

func taskLines(b *docBuilder, tasks []string) {
	wrote := false
	for _, t := range tasks {
		if t != "" {
			b.paragraph("• " + t)
			wrote = true
		}
	}
	if !wrote {
		for i := 0; i < 5; i++ {
			b.paragraph("• " + blank)
		}
	}
}

func competencyTable(b *docBuilder, label string, comps []domain.Competency) {
	rows := [][]string{{"الرقم", label, "مستوى الإتقان"}}
	n := 0
	for _, c := range comps {
		if c.Name == "" && c.Proficiency == "" {
			continue
		}
		n++
		rows = append(rows, []string{strconv.Itoa(n), orBlank(c.Name), orBlank(c.Proficiency)})
	}
	for i := 0; i < 5; i++ {
		n++
		rows = append(rows, []string{strconv.Itoa(n), blank, blank})
	}
	b.table(rows)
}

func firstChannel(channels []domain.CommChannel) string {
	for _, c := range channels {
		if c.Entity != "" {
			return c.Entity
		}
	}
	return blank
}

func firstCompetency(comps []domain.Competency) string {
	for _, c := range comps {
		if c.Name != "" {
			return c.Name
		}
	}
	return blank
}
