package cartrepo_test

import (
	"context"
	"testing"

	"cafedelivery/internal/adapters/out/postgres/caferepo"
	"cafedelivery/internal/adapters/out/postgres/cartrepo"
	"cafedelivery/internal/adapters/out/postgres/pgtest"
	"cafedelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *cartrepo.GormCartRepository
}

func TestCartRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg

	suite.Require().NoError(pg.DB.AutoMigrate(&caferepo.MenuItemDTO{}, &cartrepo.CartItemDTO{}))
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("cart_items", "items"))
	suite.repository = cartrepo.NewGormCartRepository(suite.pg.DB)
}

func (suite *CartRepositoryIntegrationTestSuite) menuItem(cafeID kernel.UUID, price float64, calories int) kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.pg.DB.Create(&caferepo.MenuItemDTO{
		ID:       id.Bytes(),
		CafeID:   cafeID.Bytes(),
		Name:     "item",
		Price:    price,
		Calories: calories,
		Active:   true,
	}).Error)
	return id
}

func (suite *CartRepositoryIntegrationTestSuite) TestCurrentLines_JoinsMenuPricesInOrder() {
	ctx := context.Background()
	customer := kernel.NewUUID()
	cafe := kernel.NewUUID()
	friend := kernel.NewUUID().Bytes()

	latte := suite.menuItem(cafe, 10, 100)
	cake := suite.menuItem(cafe, 15, 200)

	suite.Require().NoError(suite.pg.DB.Create(&[]cartrepo.CartItemDTO{
		{CustomerID: customer.Bytes(), ItemID: latte.Bytes(), Quantity: 2},
		{CustomerID: customer.Bytes(), ItemID: cake.Bytes(), Quantity: 1, AssigneeID: &friend},
		{CustomerID: kernel.NewUUID().Bytes(), ItemID: cake.Bytes(), Quantity: 4},
	}).Error)

	lines, err := suite.repository.CurrentLines(ctx, customer)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 2)
	suite.Equal(latte, lines[0].ItemID)
	suite.Equal(cafe, lines[0].CafeID)
	suite.Equal(2, lines[0].Quantity)
	suite.InDelta(10.0, lines[0].UnitPrice, 1e-9)
	suite.Equal(100, lines[0].Calories)
	suite.Nil(lines[0].AssigneeID)

	suite.Equal(cake, lines[1].ItemID)
	suite.Require().NotNil(lines[1].AssigneeID)
	suite.Equal(friend, lines[1].AssigneeID.Bytes())
}

func (suite *CartRepositoryIntegrationTestSuite) TestCurrentLines_EmptyCart() {
	lines, err := suite.repository.CurrentLines(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Empty(lines)
}

func (suite *CartRepositoryIntegrationTestSuite) TestClear_OnlyThatCustomer() {
	ctx := context.Background()
	customer := kernel.NewUUID()
	other := kernel.NewUUID()
	item := suite.menuItem(kernel.NewUUID(), 5, 50)

	suite.Require().NoError(suite.pg.DB.Create(&[]cartrepo.CartItemDTO{
		{CustomerID: customer.Bytes(), ItemID: item.Bytes(), Quantity: 1},
		{CustomerID: other.Bytes(), ItemID: item.Bytes(), Quantity: 1},
	}).Error)

	suite.Require().NoError(suite.repository.Clear(ctx, customer))

	mine, err := suite.repository.CurrentLines(ctx, customer)
	suite.Require().NoError(err)
	suite.Empty(mine)

	theirs, err := suite.repository.CurrentLines(ctx, other)
	suite.Require().NoError(err)
	suite.Len(theirs, 1)
}
