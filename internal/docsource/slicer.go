package docsource

import (
	"fmt"
	"regexp"
	"strings"

	"qalib/internal/domain"
)

var (
	arabicRE          = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)
	leadingDigitRE    = regexp.MustCompile(`^\d`)
	leadingBulletRE   = regexp.MustCompile(`^[•\-\*]`)
	numberedSectionRE = regexp.MustCompile(`^\s*\d+\)`)
	firstSectionRE    = regexp.MustCompile(`^\s*1\)|^البيانات`)
	sectionKeywordRE  = regexp.MustCompile(`^(البيانات|الملخص|قنوات التواصل|مستويات|الجدارات|إدارة الأداء|المهام)`)
)

// titleLookahead bounds how far past a candidate line the strict pass scans
// for the opening section marker.
const titleLookahead = 10

// section capture patterns: numbered heading first, bare keyword as
// fallback. The capture runs to the next numbered heading or end of chunk.
var sectionPatterns = map[string][2]*regexp.Regexp{
	"ref":          sectionRE(`1`, `البيانات`),
	"summary":      sectionRE(`2`, `الملخص`),
	"channels":     sectionRE(`3`, `قنوات التواصل`),
	"levels":       sectionRE(`4`, `مستويات`),
	"competencies": sectionRE(`5`, `الجدارات`),
	"kpis":         sectionRE(`6`, `إدارة الأداء`),
	"tasks":        sectionRE(`7`, `المهام`),
}

func sectionRE(num, keyword string) [2]*regexp.Regexp {
	strict := regexp.MustCompile(`(?s)` + num + `\)\s*` + keyword + `.*?\n(.*?)(\n\d\)|\z)`)
	relaxed := regexp.MustCompile(`(?s)` + keyword + `.*?\n(.*?)(\n\d\)|\z)`)
	return [2]*regexp.Regexp{strict, relaxed}
}

// SliceJobs splits source paragraphs into per-job blocks. A job starts at a
// line that looks like an Arabic job title followed shortly by the opening
// numbered section. When the strict pass finds nothing, a relaxed pass
// accepts any Arabic line with trailing content. singleJob keeps only the
// first detected job.
func SliceJobs(paras []string, singleJob bool) ([]domain.RawJobBlock, error) {
	lines := make([]string, 0, len(paras))
	for _, p := range paras {
		if s := strings.TrimSpace(p); s != "" {
			lines = append(lines, s)
		}
	}

	starts := titleCandidates(lines, false)
	if len(starts) == 0 {
		starts = titleCandidates(lines, true)
	}
	if len(starts) == 0 {
		return nil, fmt.Errorf("%w: no job title lines detected", domain.ErrNoJobsFound)
	}
	if singleJob {
		starts = starts[:1]
	}

	blocks := make([]domain.RawJobBlock, 0, len(starts))
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		chunk := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		if chunk == "" {
			continue
		}
		blocks = append(blocks, domain.RawJobBlock{
			Title:        lines[start],
			Reference:    capture(chunk, "ref"),
			Summary:      capture(chunk, "summary"),
			Channels:     capture(chunk, "channels"),
			Levels:       capture(chunk, "levels"),
			Competencies: capture(chunk, "competencies"),
			KPIs:         capture(chunk, "kpis"),
			Tasks:        capture(chunk, "tasks"),
		})
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: detected titles had no content", domain.ErrNoJobsFound)
	}
	return blocks, nil
}

// titleCandidates returns indexes of lines that look like job titles. The
// strict pass accepts a candidate only when the first decisive line after it
// is the opening section marker; the relaxed pass only requires some
// following content.
func titleCandidates(lines []string, relaxed bool) []int {
	minLen := 3
	if relaxed {
		minLen = 2
	}

	var starts []int
	for i, line := range lines {
		if len([]rune(line)) <= minLen ||
			!arabicRE.MatchString(line) ||
			leadingDigitRE.MatchString(line) ||
			leadingBulletRE.MatchString(line) {
			continue
		}
		if relaxed {
			if i+1 < len(lines) {
				starts = append(starts, i)
			}
			continue
		}
		if numberedSectionRE.MatchString(line) {
			continue
		}
		if opensJob(lines, i) {
			starts = append(starts, i)
		}
	}
	return starts
}

// opensJob reports whether the candidate at index i is followed by the
// opening section of a job. The scan stops at the first decisive line: the
// "1)"/keyword opener confirms a title, while any later section marker or a
// closer title-looking line means the candidate sits inside a job body.
func opensJob(lines []string, i int) bool {
	for j := i + 1; j < min(i+1+titleLookahead, len(lines)); j++ {
		next := lines[j]
		if firstSectionRE.MatchString(next) {
			return true
		}
		if numberedSectionRE.MatchString(next) || sectionKeywordRE.MatchString(next) {
			return false
		}
		if titleLike(next) {
			return false
		}
	}
	return false
}

// titleLike mirrors the strict candidate eligibility check.
func titleLike(line string) bool {
	return len([]rune(line)) > 3 &&
		arabicRE.MatchString(line) &&
		!leadingDigitRE.MatchString(line) &&
		!leadingBulletRE.MatchString(line) &&
		!numberedSectionRE.MatchString(line)
}

func capture(chunk, section string) string {
	for _, re := range sectionPatterns[section] {
		if m := re.FindStringSubmatch(chunk); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
