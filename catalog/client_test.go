package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/models"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second).WithToken("tok")
}

func memFile(name, body string) File {
	return File{
		Name:        name,
		ContentType: "image/png",
		Open: func(context.Context) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestListProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"data":[
			{"_id":"p1","title":"Red Shoe","sku":"SKURED100","category":{"_id":"c1","name":"Shoes"}},
			{"_id":"p2","title":"Blue Hat","sku":"SKUBLU200","category":"c2"},
			{"_id":"p3","title":"Bare","sku":"SKUBAR300","category":null}
		]}`)
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Equal(t, "Shoes", products[0].CategoryName())
	require.Equal(t, "c2", products[1].CategoryID())
	require.Empty(t, products[1].CategoryName())
	require.Nil(t, products[2].Category)
}

func TestErrorClassification(t *testing.T) {
	t.Run("APIErrorCarriesMessage", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"title is required"}`)
		})
		err := client.DeleteProduct(context.Background(), "p1")
		var ae *APIError
		require.True(t, errors.As(err, &ae))
		require.Equal(t, http.StatusBadRequest, ae.Status)
		require.Equal(t, "title is required", ae.Message)
	})

	t.Run("TeacherStyleErrorField", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"product not found"}`)
		})
		_, err := client.GetProduct(context.Background(), "missing")
		require.True(t, IsNotFound(err))
	})

	t.Run("NoResponseIsTransportError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewClient(url, time.Second).ListProducts(context.Background())
		var te *TransportError
		require.True(t, errors.As(err, &te))
	})

	t.Run("NeverSentIsRequestError", func(t *testing.T) {
		_, err := NewClient("ftp://catalog.local", time.Second).ListProducts(context.Background())
		var re *RequestError
		require.True(t, errors.As(err, &re), "got %T", err)
	})

	t.Run("UnreadableAttachmentIsRequestError", func(t *testing.T) {
		calls := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls++ })
		broken := File{Name: "x.png", Open: func(context.Context) (io.ReadCloser, error) {
			return nil, errors.New("gone")
		}}
		err := client.AddColor(context.Background(), "p1", dto.ColorDTO{ColorName: "Red"}, []File{broken})
		var re *RequestError
		require.True(t, errors.As(err, &re))
		require.Zero(t, calls)
	})
}

func TestIsDuplicateSKU(t *testing.T) {
	require.True(t, IsDuplicateSKU(&APIError{Status: http.StatusConflict}))
	require.True(t, IsDuplicateSKU(&APIError{Status: 400, Message: "E11000 duplicate key error"}))
	require.True(t, IsDuplicateSKU(&APIError{Status: 400, Message: "Product already exists"}))
	require.True(t, IsDuplicateSKU(&APIError{Status: 500, Message: "SKU taken"}))
	require.False(t, IsDuplicateSKU(&APIError{Status: 400, Message: "title is required"}))
	require.False(t, IsDuplicateSKU(&TransportError{Op: "POST /products", Err: io.EOF}))
}

func TestCreateProductMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Red Shoe", r.FormValue("title"))
		require.Equal(t, "SKURED482", r.FormValue("sku"))
		require.Equal(t, "true", r.FormValue("isDefault"))
		require.Equal(t, "false", r.FormValue("stock"))
		require.Equal(t, "Default", r.FormValue("colorName"))

		var specs []models.Specification
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("specifications")), &specs))
		require.Equal(t, []models.Specification{{Key: "Size", Value: "42"}}, specs)

		require.Len(t, r.MultipartForm.File["image"], 2)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateProduct(context.Background(), dto.CreateProductDTO{
		Title:          "Red Shoe",
		Sku:            "SKURED482",
		Category:       "c1",
		IsActive:       true,
		ColorName:      "Default",
		HexCode:        "#000000",
		Specifications: []models.Specification{{Key: "Size", Value: "42"}},
	}, []File{memFile("a.png", "aaa"), memFile("b.png", "bbb")})
	require.NoError(t, err)
}

func TestUpdateColorSendsRetainedAndNewImages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/products/p1/colors/c9", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Navy", r.FormValue("colorName"))
		require.Equal(t, []string{`{"_id":"i1","url":"https://cdn/1.png"}`, `{"url":"https://cdn/2.png"}`},
			r.MultipartForm.Value["existingImages"])
		require.Len(t, r.MultipartForm.File["image"], 1)
	})

	retained := []models.Image{{Id: "i1", Url: "https://cdn/1.png"}, {Url: "https://cdn/2.png"}}
	err := client.UpdateColor(context.Background(), "p1", "c9",
		dto.ColorDTO{ColorName: "Navy", HexCode: "#000080"}, retained, []File{memFile("n.png", "n")})
	require.NoError(t, err)
}

func TestRemoveColorImageSendsURLInBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/products/p1/colors/c1/image", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "https://cdn/1.png", body["imageUrl"])
	})
	require.NoError(t, client.RemoveColorImage(context.Background(), "p1", "c1", "https://cdn/1.png"))
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		_, _ = io.WriteString(w, `{"access_token":"abc"}`)
	})
	token, err := client.Login(context.Background(), "admin@saho.test", "secret")
	require.NoError(t, err)
	require.Equal(t, "abc", token)
}
