package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qalib/internal/domain"
)

func TestSectionsSkipsEmpty(t *testing.T) {
	record := &domain.JobDescriptionRecord{
		JobTitle: "مهندس برمجيات",
		Summary:  "يطور الأنظمة",
		SpecializedTasks: []string{
			"تصميم الخدمات",
			"",
			"مراجعة الشيفرة",
		},
	}

	secs := sections(record)
	require.Len(t, secs, 2)

	assert.Equal(t, "الملخص العام للمهنة", secs[0].Title)
	assert.Equal(t, []string{"يطور الأنظمة"}, secs[0].Lines)

	assert.Equal(t, "المهام التخصصية", secs[1].Title)
	assert.Equal(t, []string{"تصميم الخدمات", "مراجعة الشيفرة"}, secs[1].Lines)
}

func TestSectionsReferencePairs(t *testing.T) {
	record := &domain.JobDescriptionRecord{
		Reference: domain.ReferenceData{
			MainGroup:  "المجموعة الهندسية",
			Profession: "مهندس",
		},
	}

	secs := sections(record)
	require.Len(t, secs, 1)
	assert.Equal(t, "البيانات المرجعية للمهنة", secs[0].Title)
	assert.Equal(t, []string{
		"المجموعة الرئيسية: المجموعة الهندسية",
		"المهنة: مهندس",
	}, secs[0].Lines)
}

func TestSectionsChannelAndKPIFormatting(t *testing.T) {
	record := &domain.JobDescriptionRecord{
		InternalChannels: []domain.CommChannel{
			{Entity: "الإدارة العليا", Purpose: "رفع التقارير"},
			{Entity: "قسم الجودة"},
		},
		KPIs: []domain.KPI{
			{Metric: "نسبة الإنجاز", Measurement: "تقرير شهري"},
		},
	}

	secs := sections(record)
	require.Len(t, secs, 2)
	assert.Equal(t, []string{
		"الإدارة العليا: رفع التقارير",
		"قسم الجودة",
	}, secs[0].Lines)
	assert.Equal(t, []string{"نسبة الإنجاز: تقرير شهري"}, secs[1].Lines)
}

func TestSectionsEmptyRecord(t *testing.T) {
	assert.Empty(t, sections(&domain.JobDescriptionRecord{}))
}
