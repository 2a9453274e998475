package report

import "fmt"

// BuildJobCardTemplate generates the standard job card template DOCX with
// {{placeholder}} tokens in every field position. The output round-trips
// through the template filler since each token sits in its own run.
func BuildJobCardTemplate() ([]byte, error) {
	b := newDocBuilder()

	b.heading(0, "نموذج بطاقة الوصف المهني")
	b.paragraph("المهنة: {{job_title}}")

	// Each section carries its fine-grained field placeholders plus one
	// coarse block placeholder. The fine keys are filled from form-engine
	// data files; the coarse keys ({{ref}}, {{channels}}, ...) are filled by
	// the batch flow from sliced source blocks.
	type sectionDef struct {
		title string
		block string
		items []string
	}
	sections := []sectionDef{
		{"1- البيانات المرجعية للمهنة", "{{ref}}", []string{
			"المجموعة الرئيسية: {{main_group}}",
			"رمز المجموعة الرئيسية: {{main_group_code}}",
			"المجموعة الفرعية: {{sub_group}}",
			"رمز المجموعة الفرعية: {{sub_group_code}}",
			"المجموعة الثانوية: {{secondary_group}}",
			"رمز المجموعة الثانوية: {{secondary_group_code}}",
			"مجموعة الوحدات: {{units_group}}",
			"رمز الوحدات: {{units_code}}",
			"المهنة: {{profession}}",
			"رمز المهنة: {{profession_code}}",
			"موقع العمل: {{work_location}}",
			"المرتبة: {{rank}}",
		}},
		{"2- الملخص العام للمهنة", "", []string{"{{summary}}"}},
		{"3- قنوات التواصل", "{{channels}}", []string{
			"جهات التواصل الداخلية: {{internal_party_1}} - {{internal_purpose_1}}",
			"جهات التواصل الخارجية: {{external_party_1}} - {{external_purpose_1}}",
		}},
		{"4- مستويات المهنة القياسية", "{{levels}}", []string{
			"المستوى 1: {{level_1}} ({{level_code_1}}) - {{role_1}} - {{progression_1}}",
		}},
		{"5- الجدارات", "{{competencies}}", []string{
			"الجدارات السلوكية: {{behavioral_comp_1}}, {{behavioral_comp_2}}, {{behavioral_comp_3}}",
			"الجدارات الأساسية: {{core_comp_1}}, {{core_comp_2}}, {{core_comp_3}}",
			"الجدارات القيادية: {{leadership_comp_1}}, {{leadership_comp_2}}, {{leadership_comp_3}}",
			"الجدارات الفنية: {{technical_comp_1}}, {{technical_comp_2}}, {{technical_comp_3}}",
		}},
	}
	for _, sec := range sections {
		b.heading(1, sec.title)
		for _, item := range sec.items {
			b.paragraph(item)
		}
		if sec.block != "" {
			b.paragraph(sec.block)
		}
		b.paragraph("")
	}

	b.heading(0, "نموذج الوصف الفعلي")

	b.heading(1, "1- المهام")
	b.paragraph("المهام القيادية/الإشرافية: {{leadership_task_1}}, {{leadership_task_2}}, {{leadership_task_3}}")
	b.paragraph("المهام التخصصية: {{specialized_task_1}}, {{specialized_task_2}}, {{specialized_task_3}}")
	b.paragraph("مهام أخرى إضافية: {{additional_task_1}}, {{additional_task_2}}, {{additional_task_3}}")
	b.paragraph("{{tasks}}")

	b.heading(1, "2- الجدارات السلوكية والفنية")
	b.paragraph("الجدارات السلوكية:")
	for i := 1; i <= 5; i++ {
		b.paragraph(fmt.Sprintf("%d- {{behavioral_comp_%d}} - مستوى الإتقان: {{proficiency_%d}}", i, i, i))
	}
	b.paragraph("الجدارات الفنية:")
	for i := 1; i <= 5; i++ {
		b.paragraph(fmt.Sprintf("%d- {{technical_comp_%d}} - مستوى الإتقان: {{proficiency_%d}}", i, i, i))
	}

	b.heading(1, "3- إدارة الأداء المهني")
	for i := 1; i <= 4; i++ {
		b.paragraph(fmt.Sprintf("%d- {{kpi_%d}} - طريقة القياس: {{measurement_%d}}", i, i, i))
	}
	b.paragraph("{{kpis}}")

	return b.bytes()
}
