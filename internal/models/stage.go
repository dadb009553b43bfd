package models

// Stage is a candidate's position in the hiring pipeline.
type Stage string

const (
	StageNew       Stage = "new"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageTechnical Stage = "technical"
	StageFinal     Stage = "final"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
)

var stageLabels = map[Stage]string{
	StageNew:       "New",
	StageScreening: "Screening",
	StageInterview: "Interview",
	StageTechnical: "Technical Assessment",
	StageFinal:     "Final Interview",
	StageOffer:     "Offer",
	StageHired:     "Hired",
	StageRejected:  "Rejected",
}

// Stages returns the fixed pipeline enumeration in order. Rejected is
// reachable from any non-terminal stage and sits outside the forward path.
func Stages() []Stage {
	return []Stage{
		StageNew, StageScreening, StageInterview, StageTechnical,
		StageFinal, StageOffer, StageHired, StageRejected,
	}
}

// Valid reports whether s is a member of the enumeration.
func (s Stage) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

// Label returns the human-readable display name for the stage.
func (s Stage) Label() string {
	return stageLabels[s]
}

// Terminal reports whether the stage ends the pipeline.
func (s Stage) Terminal() bool {
	return s == StageHired || s == StageRejected
}

// Nudgeable reports whether scheduling an interview should advance the
// candidate to the interview stage. Candidates already past screening
// are never moved back.
func (s Stage) Nudgeable() bool {
	return s == StageNew || s == StageScreening
}
