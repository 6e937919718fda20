package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"skynest/config"
	"skynest/infras/otel/mocks"
	branchMocks "skynest/internal/domains/branch/mocks"
	"skynest/internal/domains/branch/model"
	"skynest/internal/domains/branch/model/dto"
	"skynest/internal/domains/branch/service"
	cacheMocks "skynest/shared/cache/mocks"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/failure"
)

func newBranchService(ctrl *gomock.Controller) (service.Branch, *branchMocks.MockBranch) {
	repo := branchMocks.NewMockBranch(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}

	return service.New(repo, cfg, mockCache, mockOtel), repo
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestBranchService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newBranchService(ctrl)

	req := dto.CreateBranchRequest{
		Name:    "Sky Nest Downtown",
		Address: "1 Harbour Street",
		City:    "Jakarta",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func() {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, branch model.Branch) error {
						assert.Equal(t, "Sky Nest Downtown", branch.Name)
						assert.True(t, branch.Active)
						assert.Equal(t, "admin-id", branch.CreatedBy)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "duplicate name",
			setupMock: func() {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "exist check error",
			setupMock: func() {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(adminContext(), req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBranchService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newBranchService(ctrl)

	t.Run("successful get", func(t *testing.T) {
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Branch{ID: "branch-id", Name: "Sky Nest Downtown", Active: true}, nil)

		res, err := svc.Get(adminContext(), "branch-id")

		assert.NoError(t, err)
		assert.Equal(t, "branch-id", res.ID)
	})

	t.Run("branch not found", func(t *testing.T) {
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Branch{}, nil)

		_, err := svc.Get(adminContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBranchService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newBranchService(ctrl)

	t.Run("successful listing", func(t *testing.T) {
		repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(3, nil)

		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Branch{
				{ID: "branch-1", Name: "Downtown"},
				{ID: "branch-2", Name: "Airport"},
				{ID: "branch-3", Name: "Beachfront"},
			}, nil)

		res, err := svc.GetAll(adminContext(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
		assert.Len(t, res.Branches, 3)
	})

	t.Run("count error", func(t *testing.T) {
		repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("database error"))

		_, err := svc.GetAll(adminContext(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestBranchService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newBranchService(ctrl)

	req := dto.UpdateBranchRequest{Name: "Sky Nest Riverside"}

	t.Run("successful update", func(t *testing.T) {
		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Sky Nest Riverside", update[model.FieldName])
				assert.Equal(t, "admin-id", update[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(adminContext(), req, "branch-id")

		assert.NoError(t, err)
	})

	t.Run("branch not found", func(t *testing.T) {
		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(adminContext(), req, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBranchService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newBranchService(ctrl)

	t.Run("successful delete", func(t *testing.T) {
		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(adminContext(), "branch-id")

		assert.NoError(t, err)
	})

	t.Run("branch not found", func(t *testing.T) {
		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(adminContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
