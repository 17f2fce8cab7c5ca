package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/middleware"
	"ayana_shop/internal/models"
	"ayana_shop/internal/services"
)

const maxImageSize = 5 << 20

var errImageTooLarge = errors.New("image trop volumineuse")

type ProductHandler struct {
	view    *View
	catalog *services.CatalogService
	editor  *services.ProductEditor
	log     logrus.FieldLogger
}

func NewProductHandler(view *View, catalog *services.CatalogService, editor *services.ProductEditor, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{view: view, catalog: catalog, editor: editor, log: log}
}

func (h *ProductHandler) list(c *gin.Context, title string, products []models.Product, err error) {
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	h.view.HTML(c, http.StatusOK, "products_index.html", gin.H{
		"Title":       title,
		"Products":    products,
		"SortOptions": sortOptions,
	})
}

var sortOptions = []string{
	services.SortAscendingName,
	services.SortDescendingName,
	services.SortAscendingPrice,
	services.SortDescendingPrice,
}

func (h *ProductHandler) Index(c *gin.Context) {
	products, err := h.catalog.All(c.Request.Context())
	h.list(c, "Our flowers", products, err)
}

func (h *ProductHandler) Details(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.view.Error(c, http.StatusNotFound, "Product not found.")
		return
	}
	p, err := h.catalog.Details(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		h.view.Error(c, http.StatusNotFound, "Product not found.")
		return
	}
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	h.view.HTML(c, http.StatusOK, "products_details.html", gin.H{"Product": p})
}

func (h *ProductHandler) SearchResult(c *gin.Context) {
	term := c.Query("search")
	products, err := h.catalog.Search(c.Request.Context(), term)
	h.list(c, "Results for \""+term+"\"", products, err)
}

func (h *ProductHandler) PopularSearches(c *gin.Context) {
	term := c.Query("popularSearch")
	products, err := h.catalog.PopularSearches(c.Request.Context(), term)
	h.list(c, term, products, err)
}

// Sort sortOption + filtre optionnel String
func (h *ProductHandler) Sort(c *gin.Context) {
	products, err := h.catalog.Sort(c.Request.Context(), c.Query("sortOption"), c.Query("String"))
	h.list(c, "Our flowers", products, err)
}

// 🟢 Formulaire de création (employé)
func (h *ProductHandler) CreateForm(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "products_create.html", gin.H{"Product": models.Product{}})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBind(&p); err != nil {
		h.view.HTML(c, http.StatusBadRequest, "products_create.html", gin.H{"Product": p, "Error": "Name and a positive price are required."})
		return
	}

	upload, err := imageUpload(c)
	if errors.Is(err, errImageTooLarge) {
		h.view.HTML(c, http.StatusBadRequest, "products_create.html", gin.H{"Product": p, "Error": "Image must be smaller than 5 MB."})
		return
	}
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	if upload != nil {
		defer upload.close()
	}

	var image *services.Upload
	if upload != nil {
		image = &upload.Upload
	}
	if err := h.editor.Create(c.Request.Context(), middleware.Actor(c), &p, image); err != nil {
		h.view.Internal(c, err)
		return
	}
	h.log.WithField("product_id", p.ID).Info("🌷 Produit créé")
	c.Redirect(http.StatusFound, "/Products")
}

type openUpload struct {
	services.Upload
	close func() error
}

// imageUpload champ ImageFile facultatif
func imageUpload(c *gin.Context) (*openUpload, error) {
	fh, err := c.FormFile("ImageFile")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size > maxImageSize {
		return nil, errImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &openUpload{
		Upload: services.Upload{
			Filename:    fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		},
		close: f.Close,
	}, nil
}

func (h *ProductHandler) product(c *gin.Context) (*models.Product, bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.view.Error(c, http.StatusNotFound, "Product not found.")
		return nil, false
	}
	p, err := h.catalog.Details(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		h.view.Error(c, http.StatusNotFound, "Product not found.")
		return nil, false
	}
	if err != nil {
		h.view.Internal(c, err)
		return nil, false
	}
	return p, true
}

func (h *ProductHandler) EditForm(c *gin.Context) {
	p, ok := h.product(c)
	if !ok {
		return
	}
	h.view.HTML(c, http.StatusOK, "products_edit.html", gin.H{"Product": p})
}

func (h *ProductHandler) Edit(c *gin.Context) {
	existing, ok := h.product(c)
	if !ok {
		return
	}

	var p models.Product
	if err := c.ShouldBind(&p); err != nil {
		h.view.HTML(c, http.StatusBadRequest, "products_edit.html", gin.H{"Product": existing, "Error": "Name and a positive price are required."})
		return
	}
	p.ID = existing.ID
	if p.ImageURL == "" {
		p.ImageURL = existing.ImageURL
	}

	if err := h.editor.EditAll(c.Request.Context(), middleware.Actor(c), p); err != nil {
		h.view.Internal(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/Products")
}

func (h *ProductHandler) EditNameAndPrice(c *gin.Context) {
	existing, ok := h.product(c)
	if !ok {
		return
	}
	name := c.PostForm("Name")
	price, valid := parsePrice(c.PostForm("Price"))
	if name == "" || !valid {
		h.view.HTML(c, http.StatusBadRequest, "products_edit.html", gin.H{"Product": existing, "Error": "Name and a positive price are required."})
		return
	}

	if err := h.editor.EditNameAndPrice(c.Request.Context(), middleware.Actor(c), existing.ID, name, price); err != nil {
		h.view.Internal(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/Products")
}

func (h *ProductHandler) DeleteForm(c *gin.Context) {
	p, ok := h.product(c)
	if !ok {
		return
	}
	h.view.HTML(c, http.StatusOK, "products_delete.html", gin.H{"Product": p})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.view.Error(c, http.StatusNotFound, "Product not found.")
		return
	}
	err := h.editor.Delete(c.Request.Context(), middleware.Actor(c), id)
	if errors.Is(err, services.ErrNotFound) {
		h.view.Error(c, http.StatusNotFound, "Product not found.")
		return
	}
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/Products")
}
