package dto

import (
	"github.com/google/uuid"

	"pagespark/internal/domains/workhour/model"
	gModel "pagespark/shared/model"
	"pagespark/shared/timezone"
)

type WorkHourRuleRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time"  validate:"required,len=5"`
	EndTime   string `json:"end_time"    validate:"required,len=5"`
	IsEnabled bool   `json:"is_enabled"`
}

// UpsertWorkHoursRequest replaces a business's whole weekly schedule in one
// call, matching how the settings screen saves.
type UpsertWorkHoursRequest struct {
	Rules []WorkHourRuleRequest `json:"rules" validate:"required,min=1,max=7,dive"`
}

func (r *UpsertWorkHoursRequest) ToModels(businessID, user string) []model.WorkHour {
	models := make([]model.WorkHour, len(r.Rules))

	for i, rule := range r.Rules {
		models[i] = model.WorkHour{
			ID:         uuid.NewString(),
			BusinessID: businessID,
			DayOfWeek:  rule.DayOfWeek,
			StartTime:  rule.StartTime,
			EndTime:    rule.EndTime,
			IsEnabled:  rule.IsEnabled,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return models
}

type WorkHourRuleResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsEnabled bool   `json:"is_enabled"`
}

func (r *WorkHourRuleResponse) FromModel(model model.WorkHour) {
	r.ID = model.ID
	r.DayOfWeek = model.DayOfWeek
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.IsEnabled = model.IsEnabled
}

type GetWorkHoursResponse struct {
	BusinessID string                 `json:"business_id"`
	Rules      []WorkHourRuleResponse `json:"rules"`
}

func (r *GetWorkHoursResponse) FromModels(businessID string, models []model.WorkHour) {
	r.BusinessID = businessID

	r.Rules = make([]WorkHourRuleResponse, len(models))
	for i, mod := range models {
		r.Rules[i].FromModel(mod)
	}
}
