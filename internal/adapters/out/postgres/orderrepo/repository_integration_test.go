package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"eventrent/internal/adapters/out/postgres/orderrepo"
	"eventrent/internal/adapters/out/postgres/pgtest"
	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/domain/model/pricing"
	"eventrent/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

var submittedAt = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite verifies that orders, item snapshots and
// history survive a round trip through PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	userID     kernel.UUID
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
	suite.userID = kernel.NewUUID()
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TracksAggregate() {
	ctx := context.Background()
	tracker := new(MockAggregateTracker)
	repository := orderrepo.NewGormOrderRepository(suite.database.DB, tracker)
	o := suite.submittedOrder()
	tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(repository.Add(ctx, o))

	suite.assertRowCount(&orderrepo.OrderDTO{}, 1)
	suite.assertRowCount(&orderrepo.OrderItemDTO{}, 2)
	suite.assertRowCount(&orderrepo.StatusHistoryDTO{}, 2)
	tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RestoresAggregate() {
	ctx := context.Background()
	o := suite.submittedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
	suite.Equal(o.CompanyID(), got.CompanyID())
	suite.Equal("Layla Haddad", got.Contact().Name())
	suite.Equal("layla@example.com", got.Contact().Email())
	suite.Equal("Madinat Jumeirah", got.Venue().Name())
	suite.True(got.Venue().Location().IsEqual(o.Venue().Location()))
	suite.True(o.Event().From().Equal(got.Event().From()))
	suite.True(o.Event().Until().Equal(got.Event().Until()))
	suite.Equal(order.PricingReview, got.Status())
	suite.Equal(order.PendingQuote, got.FinancialStatus())
	suite.True(decimal.RequireFromString("7.5").Equal(got.CalculatedVolume()))

	suite.Require().Len(got.Items(), 2)
	suite.Equal("Chiavari chair", got.Items()[0].AssetName())
	suite.Equal(10, got.Items()[0].Quantity())
	suite.Equal(asset.Orange, got.Items()[1].Condition())
	suite.Require().NotNil(got.Items()[1].RefurbDaysEstimate())
	suite.Equal(3, *got.Items()[1].RefurbDaysEstimate())

	suite.Require().Len(got.History(), 2)
	suite.Equal(order.Submitted, got.History()[0].Status())
	suite.Equal(order.PricingReview, got.History()[1].Status())
	suite.Empty(got.Notifications())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_LockTimeoutIsConcurrentModification() {
	ctx := context.Background()
	o := suite.submittedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	holder := suite.database.DB.Begin()
	suite.Require().NoError(holder.Error)
	defer holder.Rollback()
	_, err := orderrepo.NewGormOrderRepository(holder, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	waiter := suite.database.DB.Begin()
	suite.Require().NoError(waiter.Error)
	defer waiter.Rollback()
	suite.Require().NoError(waiter.Exec("SET LOCAL lock_timeout = '100ms'").Error)
	_, err = orderrepo.NewGormOrderRepository(waiter, suite.tracker).GetForUpdate(ctx, o.ID())

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StoresAdjustingUser() {
	ctx := context.Background()
	o := suite.submittedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AdjustPricing(order.Adjustment{
		AdjustedPrice: decimal.RequireFromString("900"),
		Reason:        "Repeat client, long-term deal",
	}, suite.userID, submittedAt.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(got.A2AdjustedBy())
	suite.Equal(suite.userID, *got.A2AdjustedBy())

	err = got.ApprovePmgPricing(decimal.NewFromInt(20), suite.userID, submittedAt.Add(2*time.Hour))
	suite.Require().ErrorIs(err, order.ErrSameApprover)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsHistoryAndPricing() {
	ctx := context.Background()
	o := suite.submittedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	tierID := kernel.NewUUID()
	quote := pricing.ApplyMargin(decimal.RequireFromString("1000"), decimal.NewFromInt(25))
	suite.Require().NoError(loaded.ApproveStandardPricing(tierID, quote, suite.userID, submittedAt.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Quoted, got.Status())
	suite.Equal(order.QuoteSent, got.FinancialStatus())
	suite.Require().NotNil(got.PricingTierID())
	suite.Equal(tierID, *got.PricingTierID())
	suite.Require().NotNil(got.FinalTotalPrice())
	suite.True(decimal.RequireFromString("1250.00").Equal(*got.FinalTotalPrice()))
	suite.Require().NotNil(got.QuotedAt())
	suite.True(submittedAt.Add(time.Hour).Equal(*got.QuotedAt()))

	history := got.History()
	suite.Require().Len(history, 4)
	for i, entry := range o.History() {
		suite.Equal(entry.ID(), history[i].ID(), "stored entries keep their place")
	}
	suite.Equal(order.Quoted, history[2].Status())
	suite.Equal("Financial status PENDING_QUOTE -> QUOTE_SENT: Quote sent to client", history[3].Notes())
	suite.assertRowCount(&orderrepo.OrderItemDTO{}, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	err := suite.repository.Update(context.Background(), suite.submittedOrder())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListQuotedBefore() {
	ctx := context.Background()
	stale := suite.quotedOrder(submittedAt.Add(-72 * time.Hour))
	fresh := suite.quotedOrder(submittedAt.Add(-time.Hour))
	confirmed := suite.quotedOrder(submittedAt.Add(-96 * time.Hour))
	suite.Require().NoError(confirmed.ConfirmQuote(suite.userID, submittedAt))
	suite.Require().NoError(suite.repository.Update(ctx, confirmed))
	pending := suite.submittedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	got, err := suite.repository.ListQuotedBefore(ctx, submittedAt.Add(-48*time.Hour))

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(stale.ID(), got[0].ID())
	suite.NotEqual(fresh.ID(), got[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) submittedOrder() *order.Order {
	companyID := kernel.NewUUID()
	chair := suite.newAsset(companyID, "Chiavari chair", asset.Green, nil, "0.25")
	refurb := 3
	arch := suite.newAsset(companyID, "Floral arch", asset.Orange, &refurb, "2.5")

	chairs, err := order.NewItem(chair, 10)
	suite.Require().NoError(err)
	arches, err := order.NewItem(arch, 2)
	suite.Require().NoError(err)

	contact, err := order.NewContact("Layla Haddad", "layla@example.com", "+971 50 000 0000")
	suite.Require().NoError(err)
	loc, err := kernel.NewLocation("UAE", "Dubai")
	suite.Require().NoError(err)
	venue, err := order.NewVenue("Madinat Jumeirah", loc, "King Salman Bin Abdulaziz Al Saud St")
	suite.Require().NoError(err)
	event, err := kernel.NewDateRange(kernel.NewDate(2025, time.June, 10), kernel.NewDate(2025, time.June, 12))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), companyID, suite.userID, contact, venue, event,
		"Back entrance only", []*order.Item{chairs, arches}, submittedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Submit(suite.userID, submittedAt))
	o.ClearNotifications()
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) quotedOrder(quotedAt time.Time) *order.Order {
	o := suite.submittedOrder()
	quote := pricing.ApplyMargin(decimal.NewFromInt(1000), decimal.NewFromInt(25))
	suite.Require().NoError(o.ApproveStandardPricing(kernel.NewUUID(), quote, suite.userID, quotedAt))
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) newAsset(
	companyID kernel.UUID,
	name string,
	condition asset.Condition,
	refurb *int,
	volume string,
) *asset.Asset {
	a, err := asset.NewAsset(kernel.NewUUID(), companyID, name, 50, condition, refurb,
		decimal.RequireFromString(volume), decimal.NewFromInt(3))
	suite.Require().NoError(err)
	return a
}

func (suite *OrderRepositoryIntegrationTestSuite) assertRowCount(model any, expected int) {
	var count int64
	suite.Require().NoError(suite.database.DB.Model(model).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
