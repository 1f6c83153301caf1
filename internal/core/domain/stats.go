package domain

// RunStats aggregates counters for one generation run. The batch
// coordinator is the only writer; callers receive copies. Counters are
// initialised at run start and reported at run end, never persisted.
type RunStats struct {
	// Found is the number of chunk sets discovered.
	Found int `json:"chunks_found"`

	// AlreadyProcessed is the number skipped by the idempotency rule.
	AlreadyProcessed int `json:"already_processed"`

	// Processed is the number of documents persisted with pairs.
	Processed int `json:"successfully_processed"`

	// Failed is the number of documents that yielded nothing usable.
	Failed int `json:"failed"`

	// TotalPairs is the number of accepted pairs across the run.
	TotalPairs int `json:"total_qa_pairs"`

	// QualityFiltered is the number of candidate pairs the quality
	// gate rejected across the run.
	QualityFiltered int `json:"quality_filtered"`
}

// Pending returns the number of documents the run attempted.
func (s RunStats) Pending() int {
	return s.Found - s.AlreadyProcessed
}

// TotalFailure reports whether every attempted document failed.
// Used to harden the exit code: partial failures stay exit zero, a run
// that produced nothing at all does not.
func (s RunStats) TotalFailure() bool {
	return s.Pending() > 0 && s.Processed == 0
}

// ExtractionStats aggregates counters for one extraction run.
type ExtractionStats struct {
	FilesFound      int `json:"files_found"`
	FilesProcessed  int `json:"files_processed"`
	ChunksCreated   int `json:"chunks_created"`
	SkippedExisting int `json:"skipped_existing"`
	Errors          int `json:"errors"`
}

// AnalysisReport is the read-only dataset summary computed over the
// formatted output directory.
type AnalysisReport struct {
	// Documents is the number of formatted output files read.
	Documents int `json:"documents"`

	// TotalPairs is the pair count across all documents.
	TotalPairs int `json:"total_pairs"`

	// AvgQuestionLen is the mean question length in characters.
	AvgQuestionLen float64 `json:"avg_question_length"`

	// AvgAnswerLen is the mean answer length in characters.
	AvgAnswerLen float64 `json:"avg_answer_length"`

	// TypeDistribution maps document type to pair count.
	TypeDistribution map[string]int `json:"type_distribution"`

	// ShortPairs counts accepted pairs whose answer is still terse
	// enough to deserve review.
	ShortPairs int `json:"short_pairs"`

	// Duplicates counts pairs whose signature (first 50 characters of
	// question+answer) was already seen in the run.
	Duplicates int `json:"duplicates"`
}
