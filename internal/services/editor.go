package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
)

// Actions d'audit
const (
	ActionProductCreate      = "product.create"
	ActionProductUpdate      = "product.update"
	ActionProductPriceChange = "product.price_change"
	ActionProductDelete      = "product.delete"
	ActionReportGenerate     = "report.generate"
	ResourceProduct          = "product"
	ResourceReport           = "report"
)

// Actor employé à l'origine d'une action
type Actor struct {
	UserID string
	Email  string
	IP     string
}

func (a Actor) audit(action, resource, resourceID, newValue string, success bool) models.AuditLog {
	return AuditEntry(a, action, resource, resourceID, newValue, success)
}

func AuditEntry(a Actor, action, resource, resourceID, newValue string, success bool) models.AuditLog {
	return models.AuditLog{
		UserID:     a.UserID,
		UserEmail:  a.Email,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		NewValue:   newValue,
		IPAddress:  a.IP,
		Success:    success,
		Timestamp:  time.Now(),
	}
}

// Upload fichier image joint à un produit
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

type ProductEditor struct {
	products    ProductStore
	index       ProductIndex
	storage     ObjectStorage
	imageBucket string
	auditor     Auditor
	log         logrus.FieldLogger
}

// NewProductEditor index et storage sont optionnels
func NewProductEditor(products ProductStore, index ProductIndex, storage ObjectStorage, imageBucket string,
	auditor Auditor, log logrus.FieldLogger) *ProductEditor {
	if auditor == nil {
		auditor = NopAuditor{}
	}
	return &ProductEditor{
		products:    products,
		index:       index,
		storage:     storage,
		imageBucket: imageBucket,
		auditor:     auditor,
		log:         log,
	}
}

func (e *ProductEditor) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return e.products.List(ctx)
}

func (e *ProductEditor) Create(ctx context.Context, actor Actor, p *models.Product, image *Upload) error {
	if image != nil && e.storage != nil {
		key := path.Join("products", uuid.NewString()+path.Ext(image.Filename))
		url, err := e.storage.Put(ctx, e.imageBucket, key, image.Body, image.Size, image.ContentType)
		if err != nil {
			return errors.Wrap(err, "upload image")
		}
		p.ImageURL = url
	}

	if err := e.products.Create(ctx, p); err != nil {
		e.auditor.Record(ctx, actor.audit(ActionProductCreate, ResourceProduct, "", p.Name, false))
		return err
	}
	e.reindex(ctx, *p)
	e.auditor.Record(ctx, actor.audit(ActionProductCreate, ResourceProduct, idString(p.ID), p.Name, true))
	return nil
}

// EditAll remplace tous les champs du produit
func (e *ProductEditor) EditAll(ctx context.Context, actor Actor, p models.Product) error {
	if err := e.products.Update(ctx, p); err != nil {
		return err
	}
	e.reindex(ctx, p)
	e.auditor.Record(ctx, actor.audit(ActionProductUpdate, ResourceProduct, idString(p.ID), p.Name, true))
	return nil
}

func (e *ProductEditor) EditNameAndPrice(ctx context.Context, actor Actor, id int64, name string, price float64) error {
	if err := e.products.UpdateNameAndPrice(ctx, id, name, price); err != nil {
		return err
	}
	if p, err := e.products.Get(ctx, id); err == nil {
		e.reindex(ctx, *p)
	}
	e.auditor.Record(ctx, actor.audit(ActionProductPriceChange, ResourceProduct, idString(id),
		fmt.Sprintf("%s %.2f", name, price), true))
	return nil
}

func (e *ProductEditor) Delete(ctx context.Context, actor Actor, id int64) error {
	if err := e.products.Delete(ctx, id); err != nil {
		return err
	}
	if e.index != nil {
		if err := e.index.Remove(ctx, id); err != nil {
			e.log.WithError(err).WithField("product_id", id).Warn("⚠️ Suppression de l'index impossible")
		}
	}
	e.auditor.Record(ctx, actor.audit(ActionProductDelete, ResourceProduct, idString(id), "", true))
	return nil
}

func (e *ProductEditor) reindex(ctx context.Context, p models.Product) {
	if e.index == nil {
		return
	}
	if err := e.index.Index(ctx, p); err != nil {
		e.log.WithError(err).WithField("product_id", p.ID).Warn("⚠️ Indexation Elasticsearch impossible")
	}
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
