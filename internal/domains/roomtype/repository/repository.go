package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/internal/domains/roomtype/model"
	gDto "skynest/shared/dto"
	gRepo "skynest/shared/repository"

	"github.com/jmoiron/sqlx"
)

type RoomType interface {
	Insert(ctx context.Context, model model.RoomType) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.RoomType) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomType]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) RoomType {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomType](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type Amenity interface {
	Insert(ctx context.Context, model model.Amenity) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Amenity, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Amenity, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type amenityRepositoryImpl struct {
	gRepo.Repository[model.Amenity]
	db   *postgres.Connection
	otel otel.Otel
}

func NewAmenity(db *postgres.Connection, otel otel.Otel) Amenity {
	return &amenityRepositoryImpl{
		Repository: gRepo.NewRepository[model.Amenity](model.AmenityEntityName, model.AmenityTableName, model.AmenityFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type RoomTypeAmenity interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomTypeAmenity, error)
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.RoomTypeAmenity) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type roomTypeAmenityRepositoryImpl struct {
	gRepo.Repository[model.RoomTypeAmenity]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRoomTypeAmenity(db *postgres.Connection, otel otel.Otel) RoomTypeAmenity {
	return &roomTypeAmenityRepositoryImpl{
		Repository: gRepo.NewRepository[model.RoomTypeAmenity](model.RoomTypeAmenityEntityName, model.RoomTypeAmenityTableName, model.RoomTypeAmenityFieldRoomTypeID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type Image interface {
	Insert(ctx context.Context, model model.Image) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Image, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Image, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type imageRepositoryImpl struct {
	gRepo.Repository[model.Image]
	db   *postgres.Connection
	otel otel.Otel
}

func NewImage(db *postgres.Connection, otel otel.Otel) Image {
	return &imageRepositoryImpl{
		Repository: gRepo.NewRepository[model.Image](model.ImageEntityName, model.ImageTableName, model.ImageFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
