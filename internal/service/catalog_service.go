package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-catalog-admin/internal/config"
	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/internal/ws"
	"go-catalog-admin/pkg/validator"
)

// uploadPath is the public path segment stored images are served under.
const uploadPath = "/uploads/"

// Error definitions. Messages are sent to clients verbatim.
var (
	ErrMalformedQuery   = errors.New("Invalid search query.")
	ErrInvalidProductID = errors.New("Invalid productId value.")
	ErrInvalidStatus    = errors.New("Invalid status value.")
	ErrInvalidID        = errors.New("Invalid product id.")
	ErrProductNotFound  = errors.New("Product not found.")
	ErrInvalidPrice     = errors.New("Price must be a valid number.")
	ErrCategoryNotFound = errors.New("Category not found.")
	ErrCategoryDeleted  = errors.New("Category is deleted.")
	ErrCategoryExists   = errors.New("Category already exists.")
	ErrMissingImage     = errors.New("Image file is required.")
	ErrInvalidFileType  = errors.New("Only image files are allowed.")
)

// MissingFieldError reports a required create field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required."
}

// IsValidationError reports whether err is a client-input failure. Not-found
// and internal failures are excluded.
func IsValidationError(err error) bool {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return true
	}
	for _, sentinel := range []error{
		ErrMalformedQuery, ErrInvalidProductID, ErrInvalidStatus, ErrInvalidID,
		ErrInvalidPrice, ErrCategoryNotFound, ErrCategoryDeleted,
		ErrCategoryExists, ErrMissingImage, ErrInvalidFileType,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// ProductList is the paginated listing payload.
type ProductList struct {
	Products []model.ProductView `json:"products"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	Pages    int                 `json:"pages"`
}

// CreateProductRequest carries the multipart form fields of a create call.
// Price arrives as a form string and is parsed after the required checks.
type CreateProductRequest struct {
	Name         string `form:"name" validate:"required"`
	Price        string `form:"price" validate:"required"`
	Description  string `form:"description" validate:"required"`
	CategoryName string `form:"categoryName" validate:"required"`
}

type CatalogService interface {
	ListProducts(ctx context.Context, rawSearch, rawPage, rawLimit, origin string) (*ProductList, error)
	GetProduct(ctx context.Context, id, statusToken, origin string) (*model.ProductView, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest, image *multipart.FileHeader) (*model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	wsHub        *ws.Hub
	cfg          config.Config
}

func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, wsHub *ws.Hub, cfg config.Config) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		wsHub:        wsHub,
		cfg:          cfg,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, rawSearch, rawPage, rawLimit, origin string) (*ProductList, error) {
	// 1. Rebuild typed criteria from the request
	filter, page, err := parseSearch(rawSearch, rawPage, rawLimit)
	if err != nil {
		return nil, err
	}

	// 2. Single aggregation round trip: page of rows + total count
	items, total, err := s.productRepo.Search(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.ProductView{}
	}

	// 3. Shape the payload
	for i := range items {
		items[i].ImageURL = imageURL(origin, items[i].Image)
	}
	return &ProductList{
		Products: items,
		Total:    total,
		Page:     page.Page,
		Pages:    totalPages(total, page.Limit),
	}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id, statusToken, origin string) (*model.ProductView, error) {
	// 1. Reject malformed identifiers before touching the store
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	status, ok := model.ParseStatus(statusToken)
	if !ok {
		return nil, ErrInvalidStatus
	}

	// 2. Fetch with the category resolved
	view, err := s.productRepo.FindByID(ctx, objectID, status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	view.ImageURL = imageURL(origin, view.Image)
	return view, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req *CreateProductRequest, image *multipart.FileHeader) (*model.Product, error) {
	// 1. Validasi field wajib
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &MissingFieldError{Field: errs[0].Field}
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(req.Price), 64)
	if err != nil {
		return nil, ErrInvalidPrice
	}

	// 2. Resolve the category by name and check its lifecycle
	category, err := s.categoryRepo.FindByName(ctx, req.CategoryName)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	if category.Status == model.StatusDeleted {
		return nil, ErrCategoryDeleted
	}

	// 3. Validate the upload before any side effect
	if image == nil {
		return nil, ErrMissingImage
	}
	if !strings.HasPrefix(image.Header.Get("Content-Type"), "image/") {
		return nil, ErrInvalidFileType
	}

	// 4. Persist the file under a collision-resistant name
	filename := storedFilename(req.Name, filepath.Ext(image.Filename), time.Now())
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return nil, err
	}
	destination := filepath.Join(s.cfg.UploadDir, filename)
	if err := saveUpload(image, destination); err != nil {
		return nil, err
	}

	// 5. Simpan ke database; remove the file again on failure so no orphan
	// stays behind
	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       filename,
		ImageURL:    s.cfg.BaseURL + uploadPath + filename,
		Status:      model.StatusActive,
		CategoryID:  category.ID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		os.Remove(destination)
		return nil, err
	}

	// 6. Broadcast ke WebSocket
	go s.wsHub.Publish(ws.Event{
		Type:   "catalog_update",
		Action: "product_created",
		Product: map[string]interface{}{
			"id":        product.ID,
			"productId": product.ProductID,
			"name":      product.Name,
			"price":     product.Price,
			"category":  category.Name,
		},
		Message: fmt.Sprintf("Product '%s' created in %s", product.Name, category.Name),
	})

	return product, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &MissingFieldError{Field: "name"}
	}

	// Cek duplikasi nama
	if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	category := &model.Category{Name: name, Status: model.StatusActive}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// imageURL derives the public URL for a stored image filename, nil when the
// item has none.
func imageURL(origin, filename string) *string {
	if filename == "" {
		return nil
	}
	u := origin + uploadPath + filename
	return &u
}

// totalPages is ceil(total/limit), 0 for an empty result set.
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// storedFilename derives the on-disk name for an upload: a slug of the
// product name, a time-based uniqueness token and the original extension.
func storedFilename(name, ext string, now time.Time) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		slug = "product"
	}
	return fmt.Sprintf("%s-%d%s", slug, now.UnixNano(), strings.ToLower(ext))
}

// saveUpload copies the uploaded part to its destination on disk.
func saveUpload(file *multipart.FileHeader, destination string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
