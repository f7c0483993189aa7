package constants

// JobStatus is the canonical status for rows in extract_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued   JobStatus = "QUEUED"    // queued for processing
	JobStatusRunning  JobStatus = "RUNNING"   // in progress
	JobStatusDecodeOK JobStatus = "DECODE_OK" // stage 1 completed (text decoded)
	JobStatusParseOK  JobStatus = "PARSE_OK"  // stage 2 completed (record extracted)
	JobStatusFailed   JobStatus = "FAILED"    // terminal failure
)
