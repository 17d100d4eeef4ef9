package adapthttp

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Geovany-dotcom/Backend2/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadBytes = 10 << 20

type productJSON struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
	Image *string `json:"image"`
}

func toProductJSON(p domain.Product) productJSON {
	out := productJSON{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
	if p.Image != nil {
		url := "/imgs/" + *p.Image
		out.Image = &url
	}
	return out
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProductJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid multipart form"))
		return
	}

	name := r.FormValue("name")
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid price"))
		return
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid stock"))
		return
	}

	var image *string
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		filename, err := s.saveImage(file, header.Filename)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		image = &filename
	case errors.Is(err, http.ErrMissingFile):
		// Image is optional.
	default:
		writeError(w, http.StatusBadRequest, errors.New("invalid image upload"))
		return
	}

	p, err := s.catalog.Create(r.Context(), name, price, stock, image)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductJSON(*p))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Stock int     `json:"stock"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := s.catalog.Update(r.Context(), id, req.Name, req.Price, req.Stock)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductJSON(*p))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.catalog.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "product deleted"})
}

// saveImage stores an uploaded picture under a random name, keeping only the
// original extension.
func (s *Server) saveImage(src io.Reader, originalName string) (string, error) {
	filename := uuid.NewString() + filepath.Ext(originalName)
	dst, err := os.Create(filepath.Join(s.imagesDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
