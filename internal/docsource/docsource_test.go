package docsource_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qalib/internal/docsource"
	"qalib/internal/domain"
)

func buildSourceDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		if err := xmlEscapeTo(&body, p); err != nil {
			t.Fatal(err)
		}
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func xmlEscapeTo(buf *bytes.Buffer, s string) error {
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return nil
}

func TestParagraphs(t *testing.T) {
	doc := buildSourceDocx(t, "first paragraph", "  ", "ثاني", "third")
	paras, err := docsource.Paragraphs(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"first paragraph", "ثاني", "third"}, paras)
}

func TestParagraphsNotZip(t *testing.T) {
	_, err := docsource.Paragraphs([]byte("plain text"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestParagraphsMissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = docsource.Paragraphs(buf.Bytes())
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func jobParagraphs(title string) []string {
	return []string{
		title,
		"1) البيانات المرجعية للمهنة",
		"المجموعة: تقنية المعلومات",
		"2) الملخص العام للمهنة",
		"ملخص الوظيفة هنا",
		"3) قنوات التواصل",
		"الجهة: الإدارة العليا",
		"4) مستويات المهنة القياسية",
		"المستوى الخامس",
		"5) الجدارات",
		"التفكير التحليلي",
		"6) إدارة الأداء",
		"مؤشر الإنجاز",
		"7) المهام",
		"إعداد التقارير الدورية",
	}
}

func TestSliceJobsTwoJobs(t *testing.T) {
	paras := append(jobParagraphs("مهندس برمجيات"), jobParagraphs("محلل نظم")...)

	blocks, err := docsource.SliceJobs(paras, false)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	first := blocks[0]
	assert.Equal(t, "مهندس برمجيات", first.Title)
	assert.Contains(t, first.Reference, "المجموعة: تقنية المعلومات")
	assert.Contains(t, first.Summary, "ملخص الوظيفة هنا")
	assert.Contains(t, first.Channels, "الجهة: الإدارة العليا")
	assert.Contains(t, first.Levels, "المستوى الخامس")
	assert.Contains(t, first.Competencies, "التفكير التحليلي")
	assert.Contains(t, first.KPIs, "مؤشر الإنجاز")
	assert.Contains(t, first.Tasks, "إعداد التقارير الدورية")

	assert.Equal(t, "محلل نظم", blocks[1].Title)
}

func TestSliceJobsLastTaskLineIsNotATitle(t *testing.T) {
	// The closing content line of one job sits right before the next job's
	// title and its "1)" opener. It must stay inside the first block instead
	// of being split off as a phantom job.
	paras := append(jobParagraphs("مهندس برمجيات"), jobParagraphs("محلل نظم")...)

	blocks, err := docsource.SliceJobs(paras, false)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0].Tasks, "إعداد التقارير الدورية")
	assert.Equal(t, "محلل نظم", blocks[1].Title)
}

func TestSliceJobsTitleWithDistantOpener(t *testing.T) {
	// Non-Arabic metadata lines between the title and the opening section
	// must not hide the title from the strict pass.
	paras := []string{
		"مهندس برمجيات",
		"Ref: ENG-221",
		"Rev 4",
		"HR / Talent",
		"Updated 2024",
		"1) البيانات المرجعية للمهنة",
		"المجموعة: تقنية المعلومات",
	}

	blocks, err := docsource.SliceJobs(paras, false)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "مهندس برمجيات", blocks[0].Title)
	assert.Contains(t, blocks[0].Reference, "المجموعة: تقنية المعلومات")
}

func TestSliceJobsSingleJobMode(t *testing.T) {
	paras := append(jobParagraphs("مهندس برمجيات"), jobParagraphs("محلل نظم")...)

	blocks, err := docsource.SliceJobs(paras, true)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "مهندس برمجيات", blocks[0].Title)
}

func TestSliceJobsRelaxedFallback(t *testing.T) {
	// No numbered sections or keywords, but Arabic lines with content
	// should still be picked up by the relaxed pass.
	paras := []string{
		"مشرف صيانة",
		"وصف مختصر للوظيفة",
	}
	blocks, err := docsource.SliceJobs(paras, false)
	require.NoError(t, err)
	require.NotEmpty(t, blocks)
	assert.Equal(t, "مشرف صيانة", blocks[0].Title)
}

func TestSliceJobsNoneFound(t *testing.T) {
	_, err := docsource.SliceJobs([]string{"English only", "1) numbers", "• bullet"}, false)
	assert.ErrorIs(t, err, domain.ErrNoJobsFound)
}
