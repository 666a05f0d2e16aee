package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/entities"
	"catalog-service/internal/domain/repositories"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repositories.ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *entities.ValidatedProduct) (*entities.Product, error) {
	productModel := r.mapToModel(product.GetProduct())

	if err := r.db.WithContext(ctx).Create(&productModel).Error; err != nil {
		return nil, err
	}

	return r.FindById(ctx, productModel.Id)
}

func (r *ProductRepository) FindById(ctx context.Context, id uint) (*entities.Product, error) {
	var productModel ProductModel
	if err := r.db.WithContext(ctx).First(&productModel, id).Error; err != nil {
		return nil, notFound(err)
	}

	return r.mapToEntity(&productModel), nil
}

func (r *ProductRepository) List(ctx context.Context, filter repositories.ProductFilter, page repositories.Pagination) ([]*entities.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&ProductModel{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productModels []ProductModel
	if err := query.Order("id ASC").Offset(page.Offset()).Limit(page.Limit).Find(&productModels).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*entities.Product, 0, len(productModels))
	for i := range productModels {
		products = append(products, r.mapToEntity(&productModels[i]))
	}
	return products, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, id uint, product *entities.ValidatedProduct) (*entities.Product, error) {
	var updated *entities.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var productModel ProductModel
		if err := tx.First(&productModel, id).Error; err != nil {
			return notFound(err)
		}

		current := r.mapToEntity(&productModel)
		in := product.GetProduct()
		if err := current.Replace(in.Name, in.Qty, in.Price, in.Category); err != nil {
			return err
		}

		productModel = r.mapToModel(current)
		if err := tx.Save(&productModel).Error; err != nil {
			return err
		}
		updated = r.mapToEntity(&productModel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) (*entities.Product, error) {
	var deleted *entities.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var productModel ProductModel
		if err := tx.First(&productModel, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&productModel).Error; err != nil {
			return err
		}
		deleted = r.mapToEntity(&productModel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError("Product")
	}
	return err
}

func (r *ProductRepository) mapToModel(product *entities.Product) ProductModel {
	return ProductModel{
		Id:        product.Id,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
		Name:      product.Name,
		Qty:       product.Qty,
		Price:     product.Price,
		Category:  product.Category,
	}
}

func (r *ProductRepository) mapToEntity(productModel *ProductModel) *entities.Product {
	return &entities.Product{
		Id:        productModel.Id,
		CreatedAt: productModel.CreatedAt,
		UpdatedAt: productModel.UpdatedAt,
		Name:      productModel.Name,
		Qty:       productModel.Qty,
		Price:     productModel.Price,
		Category:  productModel.Category,
	}
}
