package tierrepo_test

import (
	"context"
	"testing"

	"eventrent/internal/adapters/out/postgres/pgtest"
	"eventrent/internal/adapters/out/postgres/tierrepo"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/pricing"
	"eventrent/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PricingTierRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *tierrepo.GormPricingTierRepository
}

func (suite *PricingTierRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *PricingTierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = tierrepo.NewGormPricingTierRepository(suite.database.DB)
}

func (suite *PricingTierRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *PricingTierRepositoryIntegrationTestSuite) TestGet_RestoresTier() {
	ctx := context.Background()
	tier := suite.addTier("UAE", "Dubai", "0", "10.5", "1250.00")

	got, err := suite.repository.Get(ctx, tier.ID())

	suite.Require().NoError(err)
	suite.True(got.Location().IsEqual(tier.Location()))
	suite.True(decimal.RequireFromString("10.5").Equal(got.VolumeMax()))
	suite.True(decimal.RequireFromString("1250").Equal(got.BasePrice()))
	suite.True(got.IsActive())
}

func (suite *PricingTierRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PricingTierRepositoryIntegrationTestSuite) TestListByCountry_IgnoresCase() {
	ctx := context.Background()
	dubai := suite.addTier("UAE", "Dubai", "0", "10", "1000")
	wildcard := suite.addTier("uae", kernel.WildcardCity, "0", "10", "1500")
	suite.addTier("Oman", "Muscat", "0", "10", "900")

	got, err := suite.repository.ListByCountry(ctx, " Uae ")

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.ElementsMatch([]kernel.UUID{dubai.ID(), wildcard.ID()}, []kernel.UUID{got[0].ID(), got[1].ID()})
}

func (suite *PricingTierRepositoryIntegrationTestSuite) TestListByCountry_RequiresCountry() {
	_, err := suite.repository.ListByCountry(context.Background(), "  ")

	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *PricingTierRepositoryIntegrationTestSuite) TestLockCountry() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.LockCountry(ctx, "UAE"))
	suite.Require().ErrorIs(suite.repository.LockCountry(ctx, " "), errs.ErrValueIsRequired)
}

func (suite *PricingTierRepositoryIntegrationTestSuite) TestUpdate_DeactivatesTier() {
	ctx := context.Background()
	tier := suite.addTier("UAE", "Dubai", "0", "10", "1000")

	suite.Require().NoError(tier.Update(
		decimal.NewFromInt(0), decimal.NewFromInt(20), decimal.NewFromInt(1100), false,
	))
	suite.Require().NoError(suite.repository.Update(ctx, tier))

	got, err := suite.repository.Get(ctx, tier.ID())
	suite.Require().NoError(err)
	suite.False(got.IsActive())
	suite.True(decimal.NewFromInt(20).Equal(got.VolumeMax()))
	suite.True(decimal.NewFromInt(1100).Equal(got.BasePrice()))
}

func (suite *PricingTierRepositoryIntegrationTestSuite) addTier(country, city, minVol, maxVol, price string) *pricing.Tier {
	loc, err := kernel.NewLocation(country, city)
	suite.Require().NoError(err)
	tier, err := pricing.NewTier(
		kernel.NewUUID(),
		loc,
		decimal.RequireFromString(minVol),
		decimal.RequireFromString(maxVol),
		decimal.RequireFromString(price),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), tier))
	return tier
}

func TestPricingTierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PricingTierRepositoryIntegrationTestSuite))
}
