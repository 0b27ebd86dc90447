package handler

import (
	"github.com/shopspring/decimal"

	"propertyhub/internal/unit/models"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/strutil"
	"propertyhub/pkg/validation"
)

// UnitPayload is the shared body for creating and updating a unit.
type UnitPayload struct {
	UnitNumber  string          `json:"unit_number" validate:"required,notblank,max=20"`
	Floor       int             `json:"floor" validate:"gte=0,lte=200"`
	Bedrooms    int             `json:"bedrooms" validate:"gte=0,lte=20"`
	Bathrooms   int             `json:"bathrooms" validate:"gte=0,lte=20"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Status      string          `json:"status" validate:"omitempty,oneof=Occupied Vacant Maintenance"`
}

func (r *UnitPayload) Normalize() {
	strutil.TrimStrings(&r.UnitNumber, &r.Status)
}

func (r *UnitPayload) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.MonthlyRent.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "monthly_rent must not be negative")
	}
	return nil
}

// ModelStatus maps the payload status to the domain type. Empty stays empty
// so the service can apply its default.
func (r *UnitPayload) ModelStatus() models.Status {
	return models.Status(r.Status)
}
