package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/meterline/storefront-backend/pkg/db/models"
	"github.com/meterline/storefront-backend/pkg/enums"
	"github.com/meterline/storefront-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return conn
}

func seedOrder(t *testing.T, conn *gorm.DB, token, ip string) *models.Order {
	t.Helper()

	repo := NewRepository(conn)
	ctx := context.Background()

	order := &models.Order{
		ClientToken:   token,
		ClientIP:      ip,
		CustomerEmail: "buyer@example.com",
		Billing:       types.Address{Name: "Ana", Line1: "Str. Lunga 1", City: "Cluj", Postcode: "400001", Country: "RO"},
		Shipping:      types.Address{Name: "Ana", Line1: "Str. Lunga 1", City: "Cluj", Postcode: "400001", Country: "RO"},
		Subtotal:      decimal.NewFromInt(500),
		FinalTotal:    decimal.NewFromInt(500),
		Status:        enums.OrderStatusNew,
	}
	require.NoError(t, repo.CreateHeader(ctx, order))
	require.NotZero(t, order.ID)

	number := fmt.Sprintf("ORD-%06d", order.ID)
	require.NoError(t, repo.SetOrderNumber(ctx, order.ID, number))
	order.OrderNumber = &number

	require.NoError(t, repo.CreateItems(ctx, []models.OrderItem{{
		OrderID:     order.ID,
		ProductID:   uuid.New(),
		ProductName: "Smart Meter 100",
		SKU:         "MTR-100",
		Quantity:    2,
		UnitPrice:   decimal.NewFromInt(250),
		TotalPrice:  decimal.NewFromInt(500),
	}}))
	return order
}

func TestRepositoryCreateAndNumbering(t *testing.T) {
	conn := setupOrdersTestDB(t)

	first := seedOrder(t, conn, "tok-a", "198.51.100.7")
	second := seedOrder(t, conn, "tok-b", "203.0.113.9")

	assert.Equal(t, "ORD-000001", first.Number())
	assert.Equal(t, "ORD-000002", second.Number())
	assert.Greater(t, second.ID, first.ID)
}

func TestRepositoryHeadersInsertWithoutNumber(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	// Two unnumbered headers in the same transaction must not collide on
	// the unique index; the placeholder is NULL, never a shared value.
	err := conn.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		first := &models.Order{CustomerEmail: "a@example.com", Status: enums.OrderStatusNew}
		if err := txRepo.CreateHeader(ctx, first); err != nil {
			return err
		}
		second := &models.Order{CustomerEmail: "b@example.com", Status: enums.OrderStatusNew}
		if err := txRepo.CreateHeader(ctx, second); err != nil {
			return err
		}
		if err := txRepo.SetOrderNumber(ctx, first.ID, fmt.Sprintf("ORD-%06d", first.ID)); err != nil {
			return err
		}
		return txRepo.SetOrderNumber(ctx, second.ID, fmt.Sprintf("ORD-%06d", second.ID))
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var unnumbered int64
	require.NoError(t, conn.Model(&models.Order{}).Where("order_number IS NULL").Count(&unnumbered).Error)
	assert.Zero(t, unnumbered)
}

func TestRepositorySetOrderNumberMissingRow(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)

	err := repo.SetOrderNumber(context.Background(), 999, "ORD-000999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByOwner(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedOrder(t, conn, "tok-a", "198.51.100.7")
	seedOrder(t, conn, "tok-a", "198.51.100.7")
	seedOrder(t, conn, "", "203.0.113.9")

	byToken, err := repo.ListByOwner(ctx, "tok-a", "")
	require.NoError(t, err)
	require.Len(t, byToken, 2)
	// Newest first.
	assert.Equal(t, "ORD-000002", byToken[0].Number())
	assert.Equal(t, "ORD-000001", byToken[1].Number())

	byIP, err := repo.ListByOwner(ctx, "", "203.0.113.9")
	require.NoError(t, err)
	require.Len(t, byIP, 1)
	assert.Equal(t, "ORD-000003", byIP[0].Number())

	none, err := repo.ListByOwner(ctx, "tok-unknown", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryFindByNumberPreloadsItems(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seeded := seedOrder(t, conn, "tok-a", "198.51.100.7")

	loaded, err := repo.FindByNumber(ctx, seeded.Number())
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "MTR-100", loaded.Items[0].SKU)
	assert.True(t, loaded.Items[0].TotalPrice.Equal(decimal.NewFromInt(500)))

	_, err = repo.FindByNumber(ctx, "ORD-999999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
