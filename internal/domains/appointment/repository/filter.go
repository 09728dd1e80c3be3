package repository

import (
	"time"

	"pagespark/internal/domains/appointment/model"
	gDto "pagespark/shared/dto"
)

// DayFilter selects a business's appointments starting in [dayStart, dayEnd).
// Cancelled appointments are excluded because they free their slots.
func DayFilter(businessID string, dayStart, dayEnd time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBusinessID,
				Table:    model.TableName,
				Value:    businessID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				ArgName:  "day_start",
				Field:    model.FieldStartTime,
				Table:    model.TableName,
				Value:    dayStart,
				Operator: gDto.FilterOperatorGreaterEq,
			},
			gDto.Filter{
				ArgName:  "day_end",
				Field:    model.FieldStartTime,
				Table:    model.TableName,
				Value:    dayEnd,
				Operator: gDto.FilterOperatorLess,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Table:    model.TableName,
				Value:    model.StatusCancelled,
				Operator: gDto.FilterOperatorNotEq,
			},
		},
	}
}
