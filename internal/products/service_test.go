package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/apexitsupply/apex-backend/pkg/db/models"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

type fakeRepo struct {
	products map[int64]*models.Product
	nextID   int64

	listRows  []models.Product
	listTotal int64
	listErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[int64]*models.Product{}, nextID: 1}
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateProduct(_ context.Context, product *models.Product) (*models.Product, error) {
	product.ID = f.nextID
	f.nextID++
	copied := *product
	f.products[product.ID] = &copied
	return product, nil
}

func (f *fakeRepo) UpdateProduct(_ context.Context, product *models.Product) (*models.Product, error) {
	copied := *product
	f.products[product.ID] = &copied
	return product, nil
}

func (f *fakeRepo) DeleteProduct(_ context.Context, id int64) error {
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) ListProducts(_ context.Context, _ ListProductsInput) ([]models.Product, int64, error) {
	return f.listRows, f.listTotal, f.listErr
}

func (f *fakeRepo) ListCategories(context.Context) ([]string, error) {
	return []string{"laptops", "networking"}, nil
}

func (f *fakeRepo) ListFeatured(_ context.Context, limit int) ([]models.Product, error) {
	if limit < len(f.listRows) {
		return f.listRows[:limit], nil
	}
	return f.listRows, nil
}

func TestCreateProductValidation(t *testing.T) {
	svc, err := NewService(newFakeRepo())
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{Description: "d", Category: "c"})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name:        "Switch",
		Description: "24-port managed switch",
		Category:    "networking",
		Price:       decimal.NewFromInt(-1),
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateAndGetProduct(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:         "  ThinkPad X1  ",
		Description:  "14-inch business laptop",
		Category:     "laptops",
		Brand:        "Lenovo",
		Price:        decimal.RequireFromString("1899.99"),
		Availability: true,
	})
	require.NoError(t, err)
	require.Equal(t, "ThinkPad X1", created.Name)
	require.True(t, created.Price.Equal(decimal.RequireFromString("1899.99")))
	require.NotNil(t, created.Specifications)

	got, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestGetProductNotFound(t *testing.T) {
	svc, err := NewService(newFakeRepo())
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), 99)
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.GetProduct(context.Background(), 0)
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateProductPartialFields(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:        "Router",
		Description: "Edge router",
		Category:    "networking",
		Price:       decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(250)
	featured := true
	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateProductInput{
		Price:      &newPrice,
		IsFeatured: &featured,
	})
	require.NoError(t, err)
	require.True(t, updated.Price.Equal(newPrice))
	require.True(t, updated.IsFeatured)
	require.Equal(t, "Router", updated.Name)

	empty := "  "
	_, err = svc.UpdateProduct(context.Background(), created.ID, UpdateProductInput{Name: &empty})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:        "Dock",
		Description: "USB-C dock",
		Category:    "accessories",
		Price:       decimal.NewFromInt(120),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))
	requireCode(t, svc.DeleteProduct(context.Background(), created.ID), pkgerrors.CodeNotFound)
}

func TestListProductsBuildsPageMetadata(t *testing.T) {
	repo := newFakeRepo()
	repo.listRows = []models.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	repo.listTotal = 25
	svc, err := NewService(repo)
	require.NoError(t, err)

	result, err := svc.ListProducts(context.Background(), ListProductsInput{
		Pagination: pagination.Params{Page: 2, PerPage: 10},
	})
	require.NoError(t, err)
	require.Len(t, result.Data, 2)
	require.EqualValues(t, 25, result.Total)
	require.Equal(t, 2, result.Page)
	require.Equal(t, 3, result.LastPage)
}

func TestSearchRequiresQuery(t *testing.T) {
	svc, err := NewService(newFakeRepo())
	require.NoError(t, err)

	_, err = svc.SearchProducts(context.Background(), "   ", pagination.Params{})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestListByCategoryRequiresCategory(t *testing.T) {
	svc, err := NewService(newFakeRepo())
	require.NoError(t, err)

	_, err = svc.ListByCategory(context.Background(), "", pagination.Params{})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}
