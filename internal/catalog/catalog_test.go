package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markethub_front_end/internal/models"
	"markethub_front_end/internal/remote"
)

const productsJSON = `[
	{"id":1,"name":"Minimal Chair","price":120,"gallery":["chair.jpg"],"category":"Furniture","stock":3,"vendor":"Nordic"},
	{"id":"2","name":"Ceramic Vase","price":65,"discountPrice":50,"image":"vase.jpg","category":"Decor","stock":0},
	{"name":"no id","price":1}
]`

func newClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(remote.New(srv.URL, nil))
}

func TestProducts(t *testing.T) {
	for name, body := range map[string]string{
		"bare list": productsJSON,
		"envelope":  `{"data":` + productsJSON + `}`,
	} {
		t.Run(name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			products, err := newClient(t, mux).Products(context.Background())
			require.NoError(t, err)
			require.Len(t, products, 2)

			chair := products[0]
			assert.Equal(t, "1", chair.ID)
			assert.Equal(t, []string{"chair.jpg"}, chair.Images)
			assert.Equal(t, models.StockStatusInStock, chair.StockStatus())
			assert.Equal(t, "Nordic", chair.Vendor)

			vase := products[1]
			assert.Equal(t, []string{"vase.jpg"}, vase.Images)
			assert.Equal(t, 50.0, vase.EffectivePrice())
			assert.Equal(t, models.StockStatusOutOfStock, vase.StockStatus())
		})
	}
}

func TestProduct(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":1,"name":"Minimal Chair","price":120,"shortDescription":"short","description":"long"}}`))
	})
	mux.HandleFunc("/products/2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":2,"name":"Ceramic Vase","price":65}`))
	})
	mux.HandleFunc("/products/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not found"}`))
	})
	c := newClient(t, mux)

	p, err := c.Product(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "short", p.Description)
	assert.Equal(t, "long", p.LongDescription)
	assert.Empty(t, p.Images)

	p, err = c.Product(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Ceramic Vase", p.Name)

	_, err = c.Product(context.Background(), "404")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSearch(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Minimal Chair", Category: "Furniture"},
		{ID: "2", Name: "Ceramic Vase", Category: "Decor"},
		{ID: "3", Name: "Wooden Side Table", Category: "Furniture"},
		{ID: "4", Name: "Linen Throw", Category: "Textiles"},
	}

	tests := []struct {
		term string
		want []string
	}{
		{term: "", want: []string{"1", "2", "3", "4"}},
		{term: "  ", want: []string{"1", "2", "3", "4"}},
		{term: "furn", want: []string{"1", "3"}},
		{term: "VASE", want: []string{"2"}},
		{term: "lamp", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			var ids []string
			for _, p := range Search(products, tc.term) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestQuantity(t *testing.T) {
	q := NewQuantity(0)
	assert.Equal(t, 1, q.Value())
	assert.Equal(t, 1, q.Decrement())
	assert.Equal(t, 2, q.Increment())
	assert.Equal(t, 3, q.Increment())
	assert.Equal(t, 2, q.Decrement())

	var zero Quantity
	assert.Equal(t, 1, zero.Value())
	assert.Equal(t, 2, zero.Increment())
}
