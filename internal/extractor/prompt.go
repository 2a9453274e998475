package extractor

// BuildJobCardPrompt returns the extraction prompt for job description text.
// language hints at the dominant language of the source ("ar" or "en").
func BuildJobCardPrompt(language string) string {
	langNote := "The source text is primarily in Arabic; keep extracted values in their original language."
	if language == "en" {
		langNote = "The source text is primarily in English; keep extracted values in their original language."
	}
	return `You are a job description data extraction assistant. Analyze the provided job description text and extract ALL data into the following JSON structure.

IMPORTANT INSTRUCTIONS:
- ` + langNote + `
- Extract EVERY task, competency, communication channel, level and KPI you find. Do not skip, summarize, or omit any items.
- Leave fields you cannot find as empty strings or empty arrays. Never invent values.
- Classification codes must be copied exactly as written in the source.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation. Output just the raw JSON object.

The JSON object must follow this schema:
{
  "job_title": "",
  "reference": {
    "main_group": "", "main_group_code": "",
    "sub_group": "", "sub_group_code": "",
    "secondary_group": "", "secondary_group_code": "",
    "unit_group": "", "unit_group_code": "",
    "profession": "", "profession_code": "",
    "work_location": "", "grade": ""
  },
  "summary": "",
  "internal_channels": [
    { "entity": "", "purpose": "" }
  ],
  "external_channels": [
    { "entity": "", "purpose": "" }
  ],
  "levels": [
    { "level": "", "code": "", "role": "", "progression": "" }
  ],
  "behavioral_competencies": [
    { "name": "", "proficiency": "" }
  ],
  "core_competencies": [
    { "name": "", "proficiency": "" }
  ],
  "leadership_competencies": [
    { "name": "", "proficiency": "" }
  ],
  "technical_competencies": [
    { "name": "", "proficiency": "" }
  ],
  "leadership_tasks": [""],
  "specialized_tasks": [""],
  "other_tasks": [""],
  "kpis": [
    { "metric": "", "measurement": "" }
  ]
}`
}
