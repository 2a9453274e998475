package report_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyenthenguyen/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qalib/internal/config"
	"qalib/internal/docsource"
	"qalib/internal/domain"
	"qalib/internal/filler"
	"qalib/internal/report"
)

func TestLoadFontSetMissing(t *testing.T) {
	_, err := report.LoadFontSet(config.FontConfig{
		RegularPath: "no/such/regular.ttf",
		BoldPath:    "no/such/bold.ttf",
	})
	assert.ErrorIs(t, err, domain.ErrFontMissing)
}

func TestLoadFontSetDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := report.LoadFontSet(config.FontConfig{RegularPath: dir, BoldPath: dir})
	assert.ErrorIs(t, err, domain.ErrFontMissing)
}

func TestRenderUnloadableFont(t *testing.T) {
	dir := t.TempDir()
	r := report.NewRenderer(&report.FontSet{
		RegularPath: filepath.Join(dir, "gone-regular.ttf"),
		BoldPath:    filepath.Join(dir, "gone-bold.ttf"),
	})
	_, err := r.Render(&domain.JobDescriptionRecord{JobTitle: "مهندس"})
	assert.ErrorIs(t, err, domain.ErrFontMissing)
}

func TestGenerateJobCardDOCX(t *testing.T) {
	record := &domain.JobDescriptionRecord{
		JobTitle: "مهندس برمجيات",
		Summary:  "تطوير وصيانة الأنظمة",
		Reference: domain.ReferenceData{
			MainGroup:  "المجموعة الهندسية",
			Profession: "مهندس برمجيات",
		},
		SpecializedTasks: []string{"تصميم الخدمات"},
		KPIs:             []domain.KPI{{Metric: "نسبة الإنجاز", Measurement: "تقرير شهري"}},
	}

	out, err := report.GenerateJobCardDOCX(record)
	require.NoError(t, err)

	paras, err := docsource.Paragraphs(out)
	require.NoError(t, err)
	text := strings.Join(paras, "\n")

	assert.Contains(t, text, "نظام بطاقة الوصف المهني")
	assert.Contains(t, text, "أ- نموذج بطاقة الوصف المهني")
	assert.Contains(t, text, "ب- نموذج الوصف الفعلي")
	assert.Contains(t, text, "تطوير وصيانة الأنظمة")
	assert.Contains(t, text, "• تصميم الخدمات")
}

func TestGenerateJobCardDOCXEmptyRecordHasBlanks(t *testing.T) {
	out, err := report.GenerateJobCardDOCX(&domain.JobDescriptionRecord{})
	require.NoError(t, err)

	r, err := docx.ReadDocxFromMemory(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	defer r.Close()
	assert.Contains(t, r.Editable().GetContent(), "_________________")
}

func TestBuildJobCardTemplateIsFillable(t *testing.T) {
	tpl, err := report.BuildJobCardTemplate()
	require.NoError(t, err)

	format, err := filler.DetectFormat(tpl)
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateFormatDOCX, format)

	result, err := filler.Fill(tpl, domain.FlatRecord{
		"job_title": "مهندس برمجيات",
		"summary":   "ملخص الوظيفة",
	})
	require.NoError(t, err)

	r, err := docx.ReadDocxFromMemory(bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	require.NoError(t, err)
	defer r.Close()

	content := r.Editable().GetContent()
	assert.Contains(t, content, "مهندس برمجيات")
	assert.Contains(t, content, "ملخص الوظيفة")
	assert.NotContains(t, content, "{{job_title}}")
	// Unprovided keys stay as tokens for later passes.
	assert.Contains(t, content, "{{main_group}}")
}

func TestBuildJobCardTemplateFillsSlicedBlocks(t *testing.T) {
	tpl, err := report.BuildJobCardTemplate()
	require.NoError(t, err)

	block := domain.RawJobBlock{
		Title:        "مهندس برمجيات",
		Reference:    "المجموعة: تقنية المعلومات",
		Summary:      "ملخص الوظيفة",
		Channels:     "الجهة: الإدارة العليا",
		Levels:       "المستوى الخامس",
		Competencies: "التفكير التحليلي",
		KPIs:         "مؤشر الإنجاز",
		Tasks:        "إعداد التقارير الدورية",
	}
	result, err := filler.Fill(tpl, block.FlatRecord())
	require.NoError(t, err)

	r, err := docx.ReadDocxFromMemory(bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	require.NoError(t, err)
	defer r.Close()

	content := r.Editable().GetContent()
	for _, want := range []string{
		"مهندس برمجيات",
		"المجموعة: تقنية المعلومات",
		"ملخص الوظيفة",
		"الجهة: الإدارة العليا",
		"المستوى الخامس",
		"التفكير التحليلي",
		"مؤشر الإنجاز",
		"إعداد التقارير الدورية",
	} {
		assert.Contains(t, content, want)
	}
	for _, gone := range []string{"{{ref}}", "{{channels}}", "{{levels}}", "{{competencies}}", "{{kpis}}", "{{tasks}}"} {
		assert.NotContains(t, content, gone)
	}
}
