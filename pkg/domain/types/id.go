package types

import "github.com/google/uuid"

// AssessmentID identifies one risk assessment run
type AssessmentID string

// NewAssessmentID generates a new random AssessmentID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.NewString())
}

func (x AssessmentID) String() string {
	return string(x)
}
