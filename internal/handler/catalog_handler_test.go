package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/service"
)

type stubCatalogService struct {
	list      func(rawSearch, rawPage, rawLimit, origin string) (*service.ProductList, error)
	get       func(id, statusToken, origin string) (*model.ProductView, error)
	create    func(req *service.CreateProductRequest, image *multipart.FileHeader) (*model.Product, error)
	listCats  func() ([]model.Category, error)
	createCat func(name string) (*model.Category, error)
}

func (s *stubCatalogService) ListProducts(ctx context.Context, rawSearch, rawPage, rawLimit, origin string) (*service.ProductList, error) {
	return s.list(rawSearch, rawPage, rawLimit, origin)
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id, statusToken, origin string) (*model.ProductView, error) {
	return s.get(id, statusToken, origin)
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, req *service.CreateProductRequest, image *multipart.FileHeader) (*model.Product, error) {
	return s.create(req, image)
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.listCats()
}

func (s *stubCatalogService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	return s.createCat(name)
}

func newTestApp(svc service.CatalogService) *fiber.App {
	app := fiber.New()
	catalogHandler := NewCatalogHandler(svc)
	categoryHandler := NewCategoryHandler(svc)
	app.Get("/products", catalogHandler.GetProducts)
	app.Get("/products/:id", catalogHandler.GetProduct)
	app.Post("/products", catalogHandler.CreateProduct)
	app.Get("/categories", categoryHandler.GetCategories)
	app.Post("/categories", categoryHandler.CreateCategory)
	return app
}

func decodeBody(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	defer res.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestGetProductsPassesQueryAndOrigin(t *testing.T) {
	var gotSearch, gotPage, gotLimit, gotOrigin string
	svc := &stubCatalogService{
		list: func(rawSearch, rawPage, rawLimit, origin string) (*service.ProductList, error) {
			gotSearch, gotPage, gotLimit, gotOrigin = rawSearch, rawPage, rawLimit, origin
			return &service.ProductList{Products: []model.ProductView{}}, nil
		},
	}
	app := newTestApp(svc)

	target := "http://admin.local/products?search=" + url.QueryEscape(`{"name":"usb"}`) + "&page=2&limit=5"
	res, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, 200, res.StatusCode)

	require.Equal(t, `{"name":"usb"}`, gotSearch)
	require.Equal(t, "2", gotPage)
	require.Equal(t, "5", gotLimit)
	require.Equal(t, "http://admin.local", gotOrigin)

	body := decodeBody(t, res)
	for _, key := range []string{"products", "total", "page", "pages"} {
		require.Contains(t, body, key)
	}
}

func TestGetProductsDefaultsSearchToEmptyObject(t *testing.T) {
	var gotSearch string
	svc := &stubCatalogService{
		list: func(rawSearch, _, _, _ string) (*service.ProductList, error) {
			gotSearch = rawSearch
			return &service.ProductList{Products: []model.ProductView{}}, nil
		},
	}
	app := newTestApp(svc)

	res, err := app.Test(httptest.NewRequest("GET", "/products", nil))
	require.NoError(t, err)
	require.Equal(t, 200, res.StatusCode)
	require.Equal(t, "{}", gotSearch)
}

func TestGetProductsErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"malformed search", service.ErrMalformedQuery, 400, "Invalid search query."},
		{"invalid status", service.ErrInvalidStatus, 400, "Invalid status value."},
		{"internal", errors.New("boom"), 500, "Something went wrong."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCatalogService{
				list: func(_, _, _, _ string) (*service.ProductList, error) {
					return nil, tc.err
				},
			}
			app := newTestApp(svc)

			res, err := app.Test(httptest.NewRequest("GET", "/products", nil))
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, res.StatusCode)
			require.Equal(t, tc.wantMsg, decodeBody(t, res)["message"])
		})
	}
}

func TestGetProductByID(t *testing.T) {
	id := primitive.NewObjectID()
	imageURL := "http://admin.local/uploads/usb-hub-1.png"

	t.Run("found", func(t *testing.T) {
		svc := &stubCatalogService{
			get: func(gotID, statusToken, origin string) (*model.ProductView, error) {
				require.Equal(t, id.Hex(), gotID)
				require.Equal(t, "deleted", statusToken)
				require.Equal(t, "http://admin.local", origin)
				return &model.ProductView{ID: id, ProductID: 7, Name: "USB Hub", ImageURL: &imageURL}, nil
			},
		}
		app := newTestApp(svc)

		res, err := app.Test(httptest.NewRequest("GET", "http://admin.local/products/"+id.Hex()+"?status=deleted", nil))
		require.NoError(t, err)
		require.Equal(t, 200, res.StatusCode)

		body := decodeBody(t, res)
		require.Equal(t, "USB Hub", body["name"])
		require.Equal(t, float64(7), body["productId"])
		require.Equal(t, imageURL, body["imageUrl"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := &stubCatalogService{
			get: func(_, _, _ string) (*model.ProductView, error) {
				return nil, service.ErrProductNotFound
			},
		}
		app := newTestApp(svc)

		res, err := app.Test(httptest.NewRequest("GET", "/products/"+id.Hex(), nil))
		require.NoError(t, err)
		require.Equal(t, 404, res.StatusCode)
		require.Equal(t, "Product not found.", decodeBody(t, res)["message"])
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := &stubCatalogService{
			get: func(_, _, _ string) (*model.ProductView, error) {
				return nil, service.ErrInvalidID
			},
		}
		app := newTestApp(svc)

		res, err := app.Test(httptest.NewRequest("GET", "/products/oops", nil))
		require.NoError(t, err)
		require.Equal(t, 400, res.StatusCode)
		require.Equal(t, "Invalid product id.", decodeBody(t, res)["message"])
	})
}

func writeCreateForm(t *testing.T, w *multipart.Writer, withImage bool) {
	t.Helper()
	require.NoError(t, w.WriteField("name", "Wireless Mouse"))
	require.NoError(t, w.WriteField("price", "149.99"))
	require.NoError(t, w.WriteField("description", "2.4GHz mouse"))
	require.NoError(t, w.WriteField("categoryName", "Electronics"))
	if withImage {
		fw, err := w.CreateFormFile("image", "mouse.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestCreateProductMultipart(t *testing.T) {
	var gotReq *service.CreateProductRequest
	var gotImage *multipart.FileHeader
	svc := &stubCatalogService{
		create: func(req *service.CreateProductRequest, image *multipart.FileHeader) (*model.Product, error) {
			gotReq = req
			gotImage = image
			return &model.Product{ID: primitive.NewObjectID(), ProductID: 1, Name: req.Name, Status: model.StatusActive}, nil
		},
	}
	app := newTestApp(svc)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	writeCreateForm(t, w, true)

	req := httptest.NewRequest("POST", "/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, res.StatusCode)

	require.Equal(t, "Wireless Mouse", gotReq.Name)
	require.Equal(t, "149.99", gotReq.Price)
	require.Equal(t, "2.4GHz mouse", gotReq.Description)
	require.Equal(t, "Electronics", gotReq.CategoryName)
	require.NotNil(t, gotImage)
	require.Equal(t, "mouse.png", gotImage.Filename)

	body := decodeBody(t, res)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Product created successfully", body["message"])
	require.NotNil(t, body["data"])
}

func TestCreateProductWithoutImagePassesNil(t *testing.T) {
	sentinel := &multipart.FileHeader{}
	gotImage := sentinel
	svc := &stubCatalogService{
		create: func(_ *service.CreateProductRequest, image *multipart.FileHeader) (*model.Product, error) {
			gotImage = image
			return nil, service.ErrMissingImage
		},
	}
	app := newTestApp(svc)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	writeCreateForm(t, w, false)

	req := httptest.NewRequest("POST", "/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, res.StatusCode)
	require.Nil(t, gotImage)
	require.Equal(t, "Image file is required.", decodeBody(t, res)["message"])
}

func TestCreateProductErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing field", &service.MissingFieldError{Field: "name"}, 400, "name is required."},
		{"category missing", service.ErrCategoryNotFound, 400, "Category not found."},
		{"category deleted", service.ErrCategoryDeleted, 400, "Category is deleted."},
		{"bad file type", service.ErrInvalidFileType, 400, "Only image files are allowed."},
		{"internal", errors.New("disk full"), 500, "Something went wrong."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCatalogService{
				create: func(_ *service.CreateProductRequest, _ *multipart.FileHeader) (*model.Product, error) {
					return nil, tc.err
				},
			}
			app := newTestApp(svc)

			var buf bytes.Buffer
			w := multipart.NewWriter(&buf)
			writeCreateForm(t, w, true)

			req := httptest.NewRequest("POST", "/products", &buf)
			req.Header.Set("Content-Type", w.FormDataContentType())
			res, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, res.StatusCode)
			require.Equal(t, tc.wantMsg, decodeBody(t, res)["message"])
		})
	}
}

func TestCategoryRoutes(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		svc := &stubCatalogService{
			listCats: func() ([]model.Category, error) {
				return []model.Category{{Name: "Electronics", Status: model.StatusActive}}, nil
			},
		}
		app := newTestApp(svc)

		res, err := app.Test(httptest.NewRequest("GET", "/categories", nil))
		require.NoError(t, err)
		require.Equal(t, 200, res.StatusCode)
	})

	t.Run("create", func(t *testing.T) {
		svc := &stubCatalogService{
			createCat: func(name string) (*model.Category, error) {
				require.Equal(t, "Toys", name)
				return &model.Category{ID: primitive.NewObjectID(), Name: name, Status: model.StatusActive}, nil
			},
		}
		app := newTestApp(svc)

		req := httptest.NewRequest("POST", "/categories", bytes.NewReader([]byte(`{"name":"Toys"}`)))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 201, res.StatusCode)

		body := decodeBody(t, res)
		require.Equal(t, true, body["success"])
	})

	t.Run("duplicate", func(t *testing.T) {
		svc := &stubCatalogService{
			createCat: func(string) (*model.Category, error) {
				return nil, service.ErrCategoryExists
			},
		}
		app := newTestApp(svc)

		req := httptest.NewRequest("POST", "/categories", bytes.NewReader([]byte(`{"name":"Toys"}`)))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 400, res.StatusCode)
		require.Equal(t, "Category already exists.", decodeBody(t, res)["message"])
	})
}
