package object

import (
	"time"

	"github.com/sce-foundation/sce-portal/internal"
	objectDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/object"
)

// Classification is the containment class of an anomalous object.
type Classification string

const (
	ClassSafe        Classification = "safe"
	ClassEuclid      Classification = "euclid"
	ClassKeter       Classification = "keter"
	ClassThaumiel    Classification = "thaumiel"
	ClassNeutralized Classification = "neutralized"
)

func Classifications() []string {
	return []string{
		string(ClassSafe),
		string(ClassEuclid),
		string(ClassKeter),
		string(ClassThaumiel),
		string(ClassNeutralized),
	}
}

func (c Classification) Valid() bool {
	switch c {
	case ClassSafe, ClassEuclid, ClassKeter, ClassThaumiel, ClassNeutralized:
		return true
	}
	return false
}

type AnomalousObject struct {
	ID                    string         `json:"id"`
	Code                  string         `json:"code"`
	Name                  string         `json:"name"`
	Classification        Classification `json:"classification"`
	ContainmentProcedures string         `json:"containment_procedures"`
	Description           string         `json:"description"`
	CreatedBy             string         `json:"created_by"`
	RequiredClearance     int            `json:"required_clearance"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

func ToDataModel(o *AnomalousObject) *objectDatamodel.AnomalousObject {
	return &objectDatamodel.AnomalousObject{
		ID:                    o.ID,
		Code:                  o.Code,
		Name:                  o.Name,
		Classification:        string(o.Classification),
		ContainmentProcedures: o.ContainmentProcedures,
		Description:           o.Description,
		CreatedBy:             o.CreatedBy,
		RequiredClearance:     o.RequiredClearance,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

// FromDataModel validates the stored classification on every read.
func FromDataModel(o *objectDatamodel.AnomalousObject) (*AnomalousObject, error) {
	class := Classification(o.Classification)
	if !class.Valid() {
		return nil, internal.NewValidationError("stored object has unknown classification: "+o.Classification, internal.ErrCodeInvalidClassification)
	}
	return &AnomalousObject{
		ID:                    o.ID,
		Code:                  o.Code,
		Name:                  o.Name,
		Classification:        class,
		ContainmentProcedures: o.ContainmentProcedures,
		Description:           o.Description,
		CreatedBy:             o.CreatedBy,
		RequiredClearance:     o.RequiredClearance,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}, nil
}
