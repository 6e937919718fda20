package service

import (
	"context"
	"fmt"
	"path/filepath"

	"skynest/config"
	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/infras/s3"
	branchModel "skynest/internal/domains/branch/model"
	branchRepo "skynest/internal/domains/branch/repository"
	"skynest/internal/domains/roomtype/model"
	"skynest/internal/domains/roomtype/model/dto"
	"skynest/internal/domains/roomtype/repository"
	"skynest/shared"
	"skynest/shared/cache"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/failure"
	gModel "skynest/shared/model"
	"skynest/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoomType    = "room_type:get"
	cacheGetAllRoomType = "room_type:gets"
	cacheCountRoomType  = "room_type:count"
)

type RoomType interface {
	Create(ctx context.Context, req dto.CreateRoomTypeRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomTypesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomTypeResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id string) error
	Delete(ctx context.Context, id string) error
	SetAmenities(ctx context.Context, req dto.SetAmenitiesRequest, id string) error
	AddImage(ctx context.Context, req dto.UploadImageRequest, id string) (dto.UploadImageResponse, error)
	DeleteImage(ctx context.Context, roomTypeID, imageID string) error
	CreateAmenity(ctx context.Context, req dto.CreateAmenityRequest) error
	GetAmenities(ctx context.Context) (dto.GetAmenitiesResponse, error)
	DeleteAmenity(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.RoomType
	amenityRepo repository.Amenity
	linkRepo    repository.RoomTypeAmenity
	imageRepo   repository.Image
	branchRepo  branchRepo.Branch
	db          *postgres.Connection
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(
	repo repository.RoomType,
	amenityRepo repository.Amenity,
	linkRepo repository.RoomTypeAmenity,
	imageRepo repository.Image,
	branchRepo branchRepo.Branch,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) RoomType {
	return &serviceImpl{
		repo:        repo,
		amenityRepo: amenityRepo,
		linkRepo:    linkRepo,
		imageRepo:   imageRepo,
		branchRepo:  branchRepo,
		db:          db,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomTypeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	branchExists, err := s.branchRepo.Exist(ctx, shared.FilterByID(req.BranchID, branchModel.FieldID, branchModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if branch exists")

		return fmt.Errorf("failed to check if branch exists: %w", err)
	}

	if !branchExists {
		return failure.BadRequestFromString("branch does not exist") // nolint:wrapcheck
	}

	roomType := req.ToModel(user)

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, roomType); err != nil {
			return fmt.Errorf("failed to create room type: %w", err)
		}

		if len(req.AmenityIDs) == 0 {
			return nil
		}

		links := make([]model.RoomTypeAmenity, len(req.AmenityIDs))
		for i, amenityID := range req.AmenityIDs {
			links[i] = model.RoomTypeAmenity{RoomTypeID: roomType.ID, AmenityID: amenityID}
		}

		if err := s.linkRepo.InsertBulkTx(ctx, tx, links); err != nil {
			return fmt.Errorf("failed to link amenities: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create room type")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoomType)
		shared.InvalidateCaches(c, s.cache, cacheCountRoomType)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoomType, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room types")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room types to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoomType, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room type count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoomType, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room type")

		return res, nil
	}

	roomType, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	res.FromModel(roomType)

	amenities, err := s.amenitiesOf(ctx, id)
	if err != nil {
		return res, err
	}

	res.WithAmenities(amenities)

	images, err := s.imageRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.ImageFieldSortOrder, SortDir: gDto.SortDirAsc}, shared.FilterByID(id, model.ImageFieldRoomTypeID, model.ImageTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type images")

		return res, fmt.Errorf("failed to get room type images: %w", err)
	}

	res.WithImages(images)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room type to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) amenitiesOf(ctx context.Context, roomTypeID string) ([]model.Amenity, error) {
	links, err := s.linkRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(roomTypeID, model.RoomTypeAmenityFieldRoomTypeID, model.RoomTypeAmenityTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type amenities")

		return nil, fmt.Errorf("failed to get room type amenities: %w", err)
	}

	if len(links) == 0 {
		return nil, nil
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.AmenityID
	}

	amenities, err := s.amenityRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.AmenityFieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    model.AmenityTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get amenities")

		return nil, fmt.Errorf("failed to get amenities: %w", err)
	}

	return amenities, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room type exists")

		return fmt.Errorf("failed to check if room type exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room type not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room type")

		return fmt.Errorf("failed to update room type: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room type exists")

		return fmt.Errorf("failed to check if room type exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room type not found") // nolint:wrapcheck
	}

	images, err := s.imageRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(id, model.ImageFieldRoomTypeID, model.ImageTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type images")

		return fmt.Errorf("failed to get room type images: %w", err)
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room type")

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName

		for _, image := range images {
			objectName := s.s3.GetObjectNameFromURL(bucketName, image.URL)
			if objectName == constant.Empty {
				log.Warn().Str("url", image.URL).Msg("failed to extract object name from URL")

				continue
			}

			if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
				log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete image from S3")
			}
		}
	}()

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) SetAmenities(ctx context.Context, req dto.SetAmenitiesRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetAmenities")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room type exists")

		return fmt.Errorf("failed to check if room type exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room type not found") // nolint:wrapcheck
	}

	// Replace the whole set in one transaction so a partial write never leaks.
	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		linkFilter := shared.FilterByID(id, model.RoomTypeAmenityFieldRoomTypeID, model.RoomTypeAmenityTableName)
		if err := s.linkRepo.DeleteTx(ctx, tx, linkFilter); err != nil {
			return fmt.Errorf("failed to clear amenities: %w", err)
		}

		if len(req.AmenityIDs) == 0 {
			return nil
		}

		links := make([]model.RoomTypeAmenity, len(req.AmenityIDs))
		for i, amenityID := range req.AmenityIDs {
			links[i] = model.RoomTypeAmenity{RoomTypeID: id, AmenityID: amenityID}
		}

		if err := s.linkRepo.InsertBulkTx(ctx, tx, links); err != nil {
			return fmt.Errorf("failed to link amenities: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to set amenities")

		return err
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) AddImage(ctx context.Context, req dto.UploadImageRequest, id string) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room type exists")

		return res, fmt.Errorf("failed to check if room type exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName
	fileName := uuid.NewString() + filepath.Ext(req.Image.Filename)

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return res, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	image := model.Image{
		ID:         uuid.NewString(),
		RoomTypeID: id,
		URL:        url,
		SortOrder:  req.SortOrder,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.imageRepo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to save room type image")

		return res, fmt.Errorf("failed to save room type image: %w", err)
	}

	s.invalidate(ctx, id)

	res.ID = image.ID
	res.URL = url
	res.SortOrder = image.SortOrder

	return res, nil
}

func (s *serviceImpl) DeleteImage(ctx context.Context, roomTypeID, imageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(imageID, model.ImageFieldID, model.ImageTableName)

	image, err := s.imageRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type image")

		return fmt.Errorf("failed to get room type image: %w", err)
	}

	if image.ID == constant.Empty || image.RoomTypeID != roomTypeID {
		return failure.NotFound("image not found") // nolint:wrapcheck
	}

	if err := s.imageRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room type image")

		return fmt.Errorf("failed to delete room type image: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, image.URL)
		if objectName == constant.Empty {
			log.Warn().Str("url", image.URL).Msg("failed to extract object name from URL")

			return
		}

		if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete image from S3")
		}
	}()

	s.invalidate(ctx, roomTypeID)

	return nil
}

func (s *serviceImpl) CreateAmenity(ctx context.Context, req dto.CreateAmenityRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateAmenity")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	nameFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.AmenityFieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Name,
				Table:    model.AmenityTableName,
			},
		},
	}

	exists, err := s.amenityRepo.Exist(ctx, nameFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if amenity exists")

		return fmt.Errorf("failed to check if amenity exists: %w", err)
	}

	if exists {
		return failure.Conflict("amenity name already in use") // nolint:wrapcheck
	}

	if err = s.amenityRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create amenity")

		return fmt.Errorf("failed to create amenity: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAmenities(ctx context.Context) (res dto.GetAmenitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAmenities")
	defer scope.End()
	defer scope.TraceIfError(err)

	amenities, err := s.amenityRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.AmenityFieldName, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get amenities")

		return res, fmt.Errorf("failed to get amenities: %w", err)
	}

	res.FromModels(amenities)

	return res, nil
}

func (s *serviceImpl) DeleteAmenity(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteAmenity")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.AmenityFieldID, model.AmenityTableName)

	exist, err := s.amenityRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if amenity exists")

		return fmt.Errorf("failed to check if amenity exists: %w", err)
	}

	if !exist {
		return failure.NotFound("amenity not found") // nolint:wrapcheck
	}

	if err := s.amenityRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete amenity")

		return fmt.Errorf("failed to delete amenity: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetRoomType)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoomType, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room type from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoomType)
		shared.InvalidateCaches(c, s.cache, cacheCountRoomType)
	}()
}
