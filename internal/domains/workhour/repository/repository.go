package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"pagespark/infras/otel"
	"pagespark/infras/postgres"
	"pagespark/internal/domains/workhour/model"
	gDto "pagespark/shared/dto"
	gRepo "pagespark/shared/repository"
)

type WorkHour interface {
	Insert(ctx context.Context, model model.WorkHour) error
	InsertBulk(ctx context.Context, models []model.WorkHour) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.WorkHour, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.WorkHour, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.WorkHour]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) WorkHour {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.WorkHour](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
