package services_test

import (
	"context"
	"testing"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reviewMocks struct {
	reviews  *MockReviewRepository
	products *MockProductRepository
	orders   *MockOrderRepository
}

func newReviewService() (*services.ReviewService, reviewMocks) {
	m := reviewMocks{
		reviews:  new(MockReviewRepository),
		products: new(MockProductRepository),
		orders:   new(MockOrderRepository),
	}
	return services.NewReviewService(m.reviews, m.products, m.orders, zap.NewNop()), m
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	p := product("p1", "kettle")
	in := services.ReviewInput{Rating: 4, Text: "boils fast"}

	t.Run("ordered user can review once", func(t *testing.T) {
		service, m := newReviewService()
		m.products.On("GetBySlug", ctx, "kettle", repositories.ExcludeDeleted).Return(&p, nil).Once()
		m.orders.On("HasOrderedProduct", ctx, "u1", "p1").Return(true, nil).Once()
		m.reviews.On("Exists", ctx, "u1", "p1", repositories.ExcludeDeleted).Return(false, nil).Once()
		m.reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Review).ID = "r1"
		}).Return(nil).Once()
		m.reviews.On("GetByID", ctx, "r1", repositories.ExcludeDeleted).
			Return(&models.Review{Base: models.Base{ID: "r1"}, UserID: "u1", Rating: 4}, nil).Once()

		review, err := service.Create(ctx, "u1", "kettle", in)
		require.NoError(t, err)
		assert.Equal(t, "r1", review.ID)
		m.reviews.AssertExpectations(t)
	})

	t.Run("never ordered", func(t *testing.T) {
		service, m := newReviewService()
		m.products.On("GetBySlug", ctx, "kettle", repositories.ExcludeDeleted).Return(&p, nil).Once()
		m.orders.On("HasOrderedProduct", ctx, "u1", "p1").Return(false, nil).Once()

		_, err := service.Create(ctx, "u1", "kettle", in)
		assert.True(t, apperr.Is(err, apperr.KindForbidden))
		assert.EqualError(t, err, services.MsgProductNotOrdered)
		m.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("already reviewed", func(t *testing.T) {
		service, m := newReviewService()
		m.products.On("GetBySlug", ctx, "kettle", repositories.ExcludeDeleted).Return(&p, nil).Once()
		m.orders.On("HasOrderedProduct", ctx, "u1", "p1").Return(true, nil).Once()
		m.reviews.On("Exists", ctx, "u1", "p1", repositories.ExcludeDeleted).Return(true, nil).Once()

		_, err := service.Create(ctx, "u1", "kettle", in)
		assert.EqualError(t, err, services.MsgReviewExists)
		m.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		service, m := newReviewService()
		m.products.On("GetBySlug", ctx, "nope", repositories.ExcludeDeleted).Return(nil, notFound).Once()

		_, err := service.Create(ctx, "u1", "nope", in)
		assert.EqualError(t, err, services.MsgProductNotFound)
	})
}

func TestReviewService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	review := func() *models.Review {
		return &models.Review{Base: models.Base{ID: "r1"}, UserID: "u1", ProductID: "p1", Rating: 2, Text: "meh"}
	}
	in := services.ReviewInput{Rating: 5, Text: "grew on me"}

	t.Run("owner updates", func(t *testing.T) {
		service, m := newReviewService()
		m.reviews.On("GetByID", ctx, "r1", repositories.ExcludeDeleted).Return(review(), nil).Once()
		m.reviews.On("Update", ctx, mock.MatchedBy(func(r *models.Review) bool {
			return r.Rating == 5 && r.Text == "grew on me"
		})).Return(nil).Once()

		updated, err := service.Update(ctx, "u1", "r1", in)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		m.reviews.AssertExpectations(t)
	})

	t.Run("stranger cannot update or delete", func(t *testing.T) {
		service, m := newReviewService()
		m.reviews.On("GetByID", ctx, "r1", repositories.ExcludeDeleted).Return(review(), nil).Twice()

		_, err := service.Update(ctx, "u2", "r1", in)
		assert.EqualError(t, err, services.MsgPermissionDenied)
		err = service.Delete(ctx, "u2", "r1")
		assert.True(t, apperr.Is(err, apperr.KindForbidden))

		m.reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.reviews.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner soft deletes", func(t *testing.T) {
		service, m := newReviewService()
		m.reviews.On("GetByID", ctx, "r1", repositories.ExcludeDeleted).Return(review(), nil).Once()
		m.reviews.On("SoftDelete", ctx, "r1", mock.AnythingOfType("time.Time")).Return(nil).Once()

		assert.NoError(t, service.Delete(ctx, "u1", "r1"))
		m.reviews.AssertExpectations(t)
	})

	t.Run("missing review", func(t *testing.T) {
		service, m := newReviewService()
		m.reviews.On("GetByID", ctx, "gone", repositories.ExcludeDeleted).Return(nil, notFound).Once()

		_, err := service.Get(ctx, "gone")
		assert.EqualError(t, err, services.MsgReviewNotFound)
	})
}

func TestReviewService_ProductReviews(t *testing.T) {
	service, m := newReviewService()
	ctx := context.Background()
	p := product("p1", "kettle")

	m.products.On("GetBySlug", ctx, "kettle", repositories.ExcludeDeleted).Return(&p, nil).Once()
	m.reviews.On("ListByProduct", ctx, "p1", repositories.ExcludeDeleted).
		Return([]models.Review{{Rating: 3}, {Rating: 4}}, nil).Once()

	reviews, err := service.ProductReviews(ctx, "kettle")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	m.reviews.AssertExpectations(t)
}
