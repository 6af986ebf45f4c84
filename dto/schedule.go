package dto

import "time"

// ExtractionResult is what the extraction step hands to the reconstructor:
// one grid of cell texts per table page and the date printed in the plan.
type ExtractionResult struct {
	Pages        [][][]string
	CreationDate time.Time
}
