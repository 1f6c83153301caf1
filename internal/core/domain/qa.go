package domain

// QAPair is one question/answer pair extracted from generated text.
// Pairs are ephemeral until the quality gate promotes them into a
// persisted FormattedOutput.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// OutputStats summarises one document's generation outcome.
type OutputStats struct {
	// ChunksProcessed is the chunk count of the source chunk set.
	ChunksProcessed int `json:"chunks_processed"`

	// QAPairsGenerated is the number of accepted pairs.
	QAPairsGenerated int `json:"qa_pairs_generated"`
}

// FormattedOutput is the persisted, per-document result of the
// generation stage. One file per document, named by the same FileID as
// the chunk set it was produced from. Re-processing overwrites it.
type FormattedOutput struct {
	// SourceFile is the original source file location.
	SourceFile string `json:"source_file"`

	// Metadata is the extraction metadata, carried through unchanged.
	Metadata map[string]any `json:"metadata"`

	// QAPairs is the ordered list of accepted pairs.
	QAPairs []QAPair `json:"qa_pairs"`

	// Stats summarises the generation outcome.
	Stats OutputStats `json:"stats"`
}

// HasPairs reports whether the output contains at least one pair.
// Presence of a formatted output with pairs is the sole marker that a
// document is already processed; an empty or partial file is retried.
func (o *FormattedOutput) HasPairs() bool {
	return o != nil && len(o.QAPairs) > 0
}
