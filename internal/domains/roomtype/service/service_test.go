package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"skynest/config"
	"skynest/infras/otel/mocks"
	"skynest/infras/postgres"
	s3Mocks "skynest/infras/s3/mocks"
	branchMocks "skynest/internal/domains/branch/mocks"
	roomTypeMocks "skynest/internal/domains/roomtype/mocks"
	"skynest/internal/domains/roomtype/model"
	"skynest/internal/domains/roomtype/model/dto"
	"skynest/internal/domains/roomtype/service"
	cacheMocks "skynest/shared/cache/mocks"
	"skynest/shared/constant"
	"skynest/shared/failure"
)

type roomTypeFixture struct {
	svc         service.RoomType
	repo        *roomTypeMocks.MockRoomType
	amenityRepo *roomTypeMocks.MockAmenity
	linkRepo    *roomTypeMocks.MockRoomTypeAmenity
	imageRepo   *roomTypeMocks.MockImage
	branchRepo  *branchMocks.MockBranch
	s3          *s3Mocks.MockS3
	dbMock      sqlmock.Sqlmock
}

func newRoomTypeFixture(t *testing.T, ctrl *gomock.Controller) roomTypeFixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "sqlmock"),
		Write: sqlx.NewDb(db, "sqlmock"),
	}

	repo := roomTypeMocks.NewMockRoomType(ctrl)
	amenityRepo := roomTypeMocks.NewMockAmenity(ctrl)
	linkRepo := roomTypeMocks.NewMockRoomTypeAmenity(ctrl)
	imageRepo := roomTypeMocks.NewMockImage(ctrl)
	branchRepo := branchMocks.NewMockBranch(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockS3 := s3Mocks.NewMockS3(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "skynest-assets"

	svc := service.New(repo, amenityRepo, linkRepo, imageRepo, branchRepo, conn, cfg, mockCache, mockOtel, mockS3)

	return roomTypeFixture{
		svc:         svc,
		repo:        repo,
		amenityRepo: amenityRepo,
		linkRepo:    linkRepo,
		imageRepo:   imageRepo,
		branchRepo:  branchRepo,
		s3:          mockS3,
		dbMock:      dbMock,
	}
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestRoomTypeService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomTypeFixture(t, ctrl)

	t.Run("creation with amenities links them in the same transaction", func(t *testing.T) {
		req := dto.CreateRoomTypeRequest{
			BranchID:   "branch-id",
			Name:       "Deluxe",
			BasePrice:  150,
			Capacity:   2,
			AmenityIDs: []string{"amenity-1", "amenity-2"},
		}

		fixture.branchRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, roomType model.RoomType) error {
				assert.Equal(t, "Deluxe", roomType.Name)
				assert.True(t, roomType.Active)
				assert.Equal(t, "admin-id", roomType.CreatedBy)

				return nil
			})

		fixture.linkRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, links []model.RoomTypeAmenity) error {
				assert.Len(t, links, 2)
				assert.Equal(t, "amenity-1", links[0].AmenityID)

				return nil
			})

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.Create(adminContext(), req)

		assert.NoError(t, err)
	})

	t.Run("creation without amenities skips the link table", func(t *testing.T) {
		req := dto.CreateRoomTypeRequest{
			BranchID:  "branch-id",
			Name:      "Standard",
			BasePrice: 90,
			Capacity:  2,
		}

		fixture.branchRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.Create(adminContext(), req)

		assert.NoError(t, err)
	})

	t.Run("branch does not exist", func(t *testing.T) {
		fixture.branchRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := fixture.svc.Create(adminContext(), dto.CreateRoomTypeRequest{BranchID: "missing-branch", Name: "Suite", BasePrice: 300, Capacity: 4})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestRoomTypeService_SetAmenities(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomTypeFixture(t, ctrl)

	t.Run("replaces the whole set transactionally", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.dbMock.ExpectBegin()

		fixture.linkRepo.EXPECT().
			DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.linkRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, links []model.RoomTypeAmenity) error {
				assert.Len(t, links, 1)
				assert.Equal(t, "room-type-id", links[0].RoomTypeID)
				assert.Equal(t, "amenity-1", links[0].AmenityID)

				return nil
			})

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.SetAmenities(adminContext(), dto.SetAmenitiesRequest{AmenityIDs: []string{"amenity-1"}}, "room-type-id")

		assert.NoError(t, err)
	})

	t.Run("empty list clears all links", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.dbMock.ExpectBegin()

		fixture.linkRepo.EXPECT().
			DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.SetAmenities(adminContext(), dto.SetAmenitiesRequest{}, "room-type-id")

		assert.NoError(t, err)
	})

	t.Run("room type not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := fixture.svc.SetAmenities(adminContext(), dto.SetAmenitiesRequest{AmenityIDs: []string{"amenity-1"}}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomTypeService_AddImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomTypeFixture(t, ctrl)

	req := dto.UploadImageRequest{
		Image:     &multipart.FileHeader{Filename: "photo.png"},
		SortOrder: 2,
	}

	t.Run("uploads to S3 and persists the record", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.s3.EXPECT().
			UploadFile(gomock.Any(), "skynest-assets", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/room_type/photo.png", nil)

		fixture.imageRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, image model.Image) error {
				assert.Equal(t, "room-type-id", image.RoomTypeID)
				assert.Equal(t, "https://cdn.example.com/room_type/photo.png", image.URL)
				assert.Equal(t, 2, image.SortOrder)

				return nil
			})

		res, err := fixture.svc.AddImage(adminContext(), req, "room-type-id")

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "https://cdn.example.com/room_type/photo.png", res.URL)
		assert.Equal(t, 2, res.SortOrder)
	})

	t.Run("room type not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := fixture.svc.AddImage(adminContext(), req, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("upload failure surfaces the error", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket unreachable"))

		_, err := fixture.svc.AddImage(adminContext(), req, "room-type-id")

		assert.Error(t, err)
	})
}

func TestRoomTypeService_DeleteImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomTypeFixture(t, ctrl)

	t.Run("successful delete", func(t *testing.T) {
		fixture.imageRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Image{ID: "image-id", RoomTypeID: "room-type-id", URL: "https://cdn.example.com/room_type/photo.png"}, nil)

		fixture.imageRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		// The S3 object is removed on a detached goroutine after the row is gone.
		fixture.s3.EXPECT().
			GetObjectNameFromURL(gomock.Any(), gomock.Any()).
			Return("photo.png").
			AnyTimes()
		fixture.s3.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := fixture.svc.DeleteImage(adminContext(), "room-type-id", "image-id")

		assert.NoError(t, err)
	})

	t.Run("image belonging to another room type is hidden", func(t *testing.T) {
		fixture.imageRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Image{ID: "image-id", RoomTypeID: "other-room-type"}, nil)

		err := fixture.svc.DeleteImage(adminContext(), "room-type-id", "image-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("image not found", func(t *testing.T) {
		fixture.imageRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Image{}, nil)

		err := fixture.svc.DeleteImage(adminContext(), "room-type-id", "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomTypeService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomTypeFixture(t, ctrl)

	t.Run("successful delete cleans up images", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.imageRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Image{{ID: "image-id", URL: "https://cdn.example.com/room_type/photo.png"}}, nil)

		fixture.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.s3.EXPECT().
			GetObjectNameFromURL(gomock.Any(), gomock.Any()).
			Return("photo.png").
			AnyTimes()
		fixture.s3.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := fixture.svc.Delete(adminContext(), "room-type-id")

		assert.NoError(t, err)
	})

	t.Run("room type not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := fixture.svc.Delete(adminContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomTypeService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomTypeFixture(t, ctrl)

	t.Run("successful get hydrates amenities and images", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.RoomType{ID: "room-type-id", Name: "Deluxe", BasePrice: 150}, nil)

		fixture.linkRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.RoomTypeAmenity{{RoomTypeID: "room-type-id", AmenityID: "amenity-1"}}, nil)

		fixture.amenityRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Amenity{{ID: "amenity-1", Name: "Wi-Fi"}}, nil)

		fixture.imageRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Image{{ID: "image-id", URL: "https://cdn.example.com/room_type/photo.png", SortOrder: 1}}, nil)

		res, err := fixture.svc.Get(adminContext(), "room-type-id")

		assert.NoError(t, err)
		assert.Equal(t, "Deluxe", res.Name)
		assert.Len(t, res.Amenities, 1)
		assert.Equal(t, "Wi-Fi", res.Amenities[0].Name)
		assert.Len(t, res.Images, 1)
	})

	t.Run("room type not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.RoomType{}, nil)

		_, err := fixture.svc.Get(adminContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomTypeService_Amenities(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomTypeFixture(t, ctrl)

	t.Run("successful amenity creation", func(t *testing.T) {
		fixture.amenityRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		fixture.amenityRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, amenity model.Amenity) error {
				assert.Equal(t, "Wi-Fi", amenity.Name)
				assert.Equal(t, "admin-id", amenity.CreatedBy)

				return nil
			})

		err := fixture.svc.CreateAmenity(adminContext(), dto.CreateAmenityRequest{Name: "Wi-Fi", Icon: "wifi"})

		assert.NoError(t, err)
	})

	t.Run("duplicate amenity name", func(t *testing.T) {
		fixture.amenityRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := fixture.svc.CreateAmenity(adminContext(), dto.CreateAmenityRequest{Name: "Wi-Fi"})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("listing returns all amenities", func(t *testing.T) {
		fixture.amenityRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Amenity{
				{ID: "amenity-1", Name: "Minibar"},
				{ID: "amenity-2", Name: "Wi-Fi"},
			}, nil)

		res, err := fixture.svc.GetAmenities(adminContext())

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
	})

	t.Run("deleting a missing amenity", func(t *testing.T) {
		fixture.amenityRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := fixture.svc.DeleteAmenity(adminContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("successful amenity delete", func(t *testing.T) {
		fixture.amenityRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.amenityRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := fixture.svc.DeleteAmenity(adminContext(), "amenity-id")

		assert.NoError(t, err)
	})
}
