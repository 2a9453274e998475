package domain

// FlatRecord is a flat mapping from placeholder key to replacement value.
// Produced by the data loader or the form engine, consumed read-only by the
// template filler and the report renderer. Lifetime is a single request.
type FlatRecord map[string]string

// Merge returns a copy of r with entries from other layered on top.
// Neither input is mutated.
func (r FlatRecord) Merge(other FlatRecord) FlatRecord {
	out := make(FlatRecord, len(r)+len(other))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// ReferenceData holds the classification block of a job-card record.
type ReferenceData struct {
	MainGroup          string `json:"main_group"`
	MainGroupCode      string `json:"main_group_code"`
	SubGroup           string `json:"sub_group"`
	SubGroupCode       string `json:"sub_group_code"`
	SecondaryGroup     string `json:"secondary_group"`
	SecondaryGroupCode string `json:"secondary_group_code"`
	UnitGroup          string `json:"unit_group"`
	UnitGroupCode      string `json:"unit_group_code"`
	Profession         string `json:"profession"`
	ProfessionCode     string `json:"profession_code"`
	WorkLocation       string `json:"work_location"`
	Grade              string `json:"grade"`
}

// CommChannel is one communication-channel row (entity + purpose).
type CommChannel struct {
	Entity  string `json:"entity"`
	Purpose string `json:"purpose"`
}

// JobLevel is one standard job level row.
type JobLevel struct {
	Level       string `json:"level"`
	Code        string `json:"code"`
	Role        string `json:"role"`
	Progression string `json:"progression"`
}

// Competency is a named competency with an optional proficiency level.
type Competency struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// KPI is one performance-indicator row.
type KPI struct {
	Metric      string `json:"metric"`
	Measurement string `json:"measurement"`
}

// JobDescriptionRecord is the structured job-card form data. It is produced
// by manual entry merged with optional AI-extracted fields and consumed by
// the report renderers.
type JobDescriptionRecord struct {
	JobTitle         string        `json:"job_title"`
	Reference        ReferenceData `json:"reference"`
	Summary          string        `json:"summary"`
	InternalChannels []CommChannel `json:"internal_channels"`
	ExternalChannels []CommChannel `json:"external_channels"`
	Levels           []JobLevel    `json:"levels"`
	Behavioral       []Competency  `json:"behavioral_competencies"`
	Core             []Competency  `json:"core_competencies"`
	Leadership       []Competency  `json:"leadership_competencies"`
	Technical        []Competency  `json:"technical_competencies"`
	LeadershipTasks  []string      `json:"leadership_tasks"`
	SpecializedTasks []string      `json:"specialized_tasks"`
	OtherTasks       []string      `json:"other_tasks"`
	KPIs             []KPI         `json:"kpis"`
}

// IsEmpty reports whether the record carries no usable content at all.
func (r *JobDescriptionRecord) IsEmpty() bool {
	return r.JobTitle == "" &&
		r.Summary == "" &&
		r.Reference == (ReferenceData{}) &&
		len(r.InternalChannels) == 0 &&
		len(r.ExternalChannels) == 0 &&
		len(r.Levels) == 0 &&
		len(r.Behavioral) == 0 &&
		len(r.Core) == 0 &&
		len(r.Leadership) == 0 &&
		len(r.Technical) == 0 &&
		len(r.LeadershipTasks) == 0 &&
		len(r.SpecializedTasks) == 0 &&
		len(r.OtherTasks) == 0 &&
		len(r.KPIs) == 0
}

// RawJobBlock is one job section sliced out of a multi-job source document
// before extraction turns it into a JobDescriptionRecord.
type RawJobBlock struct {
	Title        string `json:"title"`
	Reference    string `json:"reference"`
	Summary      string `json:"summary"`
	Channels     string `json:"channels"`
	Levels       string `json:"levels"`
	Competencies string `json:"competencies"`
	KPIs         string `json:"kpis"`
	Tasks        string `json:"tasks"`
}

// FlatRecord flattens the block into placeholder keys matching the standard
// job-card template.
func (b *RawJobBlock) FlatRecord() FlatRecord {
	return FlatRecord{
		"job_title":    b.Title,
		"ref":          b.Reference,
		"summary":      b.Summary,
		"channels":     b.Channels,
		"levels":       b.Levels,
		"competencies": b.Competencies,
		"kpis":         b.KPIs,
		"tasks":        b.Tasks,
	}
}

// StoredArtifact describes a generated document persisted to object storage.
type StoredArtifact struct {
	Bucket      string `json:"bucket"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"download_url,omitempty"`
}
