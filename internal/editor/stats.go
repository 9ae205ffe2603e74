package editor

import (
	"math"

	"github.com/rcliao/curate/internal/model"
)

// Stats summarizes the cached dataset.
type Stats struct {
	Total        int `json:"total"`
	Chat         int `json:"chat"`
	Instruction  int `json:"instruction"`
	Scored       int `json:"scored"`
	AverageScore int `json:"average_score"`
}

// ComputeStats derives counts and the rounded mean quality score from the
// full entry list. Entries without a score are left out of the mean.
func ComputeStats(entries []model.Entry) Stats {
	var st Stats
	var sum float64
	for _, e := range entries {
		st.Total++
		switch e.Type {
		case model.FormatChat:
			st.Chat++
		case model.FormatInstruction:
			st.Instruction++
		}
		if e.QualityScore != nil {
			st.Scored++
			sum += *e.QualityScore
		}
	}
	if st.Scored > 0 {
		st.AverageScore = int(math.Round(sum / float64(st.Scored)))
	}
	return st
}
