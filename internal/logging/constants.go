package logging

// Standardized field names for structured logging. These constants keep the
// application's log output consistent and easy to filter.
const (
	FieldFile        = "file_path"
	FieldParser      = "parser"
	FieldInstitution = "institution"
	FieldAccount     = "account_number"
	FieldSecurity    = "security"
	FieldCategory    = "category"
	FieldReason      = "reason"
	FieldCount       = "count"
	FieldPattern     = "pattern"
	FieldOutputFile  = "output_file"
)
