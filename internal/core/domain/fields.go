package domain

// Reserved field names recognised by the plugin. Downstream consumers
// of the host depend on these exact literals.
const (
	// FieldRole holds the document role.
	FieldRole = "__$role$__"

	// FieldExtendedRole receives the trimmed role.
	FieldExtendedRole = "__$xxrole$__"

	// FieldBusinessGroup holds the business group.
	FieldBusinessGroup = "__$businessgroup$__"

	// FieldExtendedBusinessGroup receives the trimmed business group.
	FieldExtendedBusinessGroup = "__$xxbgroup$__"

	// FieldLastUpdatedDate holds the last update time in epoch seconds.
	FieldLastUpdatedDate = "__$lastupdateddate$__"

	// FieldLastModified receives the formatted last update time.
	FieldLastModified = "__$last-modified$__"

	// FieldDate holds a free-text display date.
	FieldDate = "__$date$__"

	// FieldNewDate receives the normalised display date.
	FieldNewDate = "__$new-date$__"

	// FieldExtension holds the file extension, including the dot.
	FieldExtension = "__$Extension$__"

	// FieldContentURL holds a URL the content can be fetched from.
	FieldContentURL = "__$ContentURL$__"
)

// InvalidDate is the sentinel written for date fields that cannot be parsed.
const InvalidDate = "Invalid Date"
