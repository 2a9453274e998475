package domain

// DataFormat identifies the format of an uploaded data source.
type DataFormat string

const (
	DataFormatJSON DataFormat = "json"
	DataFormatYAML DataFormat = "yaml"
	DataFormatCSV  DataFormat = "csv"
)

// DataFormatExtensions maps file extensions (without dot) to DataFormat.
var DataFormatExtensions = map[string]DataFormat{
	"json": DataFormatJSON,
	"yaml": DataFormatYAML,
	"yml":  DataFormatYAML,
	"csv":  DataFormatCSV,
}

// TemplateFormat identifies the format of an uploaded template document.
type TemplateFormat string

const (
	TemplateFormatDOCX TemplateFormat = "docx"
	TemplateFormatXLSX TemplateFormat = "xlsx"
	TemplateFormatPDF  TemplateFormat = "pdf"
)

// TemplateContentTypes maps TemplateFormat to its MIME content type.
var TemplateContentTypes = map[TemplateFormat]string{
	TemplateFormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	TemplateFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	TemplateFormatPDF:  "application/pdf",
}

// ContentTypeZIP is the MIME type used for batch fill bundles.
const ContentTypeZIP = "application/zip"
