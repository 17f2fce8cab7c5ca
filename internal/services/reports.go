package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"ayana_shop/internal/models"
)

const (
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
	ReportYearly  = "yearly"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	reportSheet = "Sales"
)

// Report export des ventes sur une période
type Report interface {
	Type() string
	Period() (from, to time.Time)
	GenerateReport(ctx context.Context) ([]byte, error)
}

type ReportFactory struct {
	sales SalesStore
	clock Clock
}

func NewReportFactory(sales SalesStore, clock Clock) *ReportFactory {
	return &ReportFactory{sales: sales, clock: clock}
}

// CreateReport la période remonte depuis maintenant
func (f *ReportFactory) CreateReport(reportType string) (Report, error) {
	to := f.clock.now()
	var from time.Time
	switch strings.ToLower(strings.TrimSpace(reportType)) {
	case ReportWeekly:
		from = to.AddDate(0, 0, -7)
	case ReportMonthly:
		from = to.AddDate(0, -1, 0)
	case ReportYearly:
		from = to.AddDate(-1, 0, 0)
	default:
		return nil, errors.Wrap(ErrUnknownReportType, reportType)
	}
	return &salesReport{kind: strings.ToLower(strings.TrimSpace(reportType)), from: from, to: to, sales: f.sales}, nil
}

type salesReport struct {
	kind     string
	from, to time.Time
	sales    SalesStore
}

func (r *salesReport) Type() string { return r.kind }

func (r *salesReport) Period() (time.Time, time.Time) { return r.from, r.to }

func (r *salesReport) GenerateReport(ctx context.Context) ([]byte, error) {
	rows, err := r.sales.Summary(ctx, r.from, r.to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Ayana %s sales report %s - %s", r.kind,
		r.from.Format("02.01.2006"), r.to.Format("02.01.2006"))
	if err := f.SetCellValue(reportSheet, "A1", title); err != nil {
		return nil, err
	}

	header := []any{"Product", "Units sold", "Unit price", "Revenue"}
	if err := f.SetSheetRow(reportSheet, "A3", &header); err != nil {
		return nil, err
	}

	var units int
	var revenue float64
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, 4+i)
		values := []any{row.Name, row.UnitsSold, row.UnitPrice, roundCents(row.Revenue())}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return nil, err
		}
		units += row.UnitsSold
		revenue += row.Revenue()
	}

	totalRow := 4 + len(rows)
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	total := []any{"Total", units, nil, roundCents(revenue)}
	if err := f.SetSheetRow(reportSheet, cell, &total); err != nil {
		return nil, err
	}

	last, _ := excelize.CoordinatesToCellName(4, totalRow)
	for _, rng := range [][2]string{{"A1", "A1"}, {"A3", "D3"}, {cell, last}} {
		if err := f.SetCellStyle(reportSheet, rng[0], rng[1], bold); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(reportSheet, "A", "A", 32)
	_ = f.SetColWidth(reportSheet, "B", "D", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "écriture xlsx")
	}
	return buf.Bytes(), nil
}

// GeneratedReport fichier prêt à être téléchargé
type GeneratedReport struct {
	Filename string
	Content  []byte
	Record   models.Report
}

type ReportService struct {
	factory *ReportFactory
	reports ReportStore
	storage ObjectStorage
	bucket  string
	auditor Auditor
	clock   Clock
	log     logrus.FieldLogger
}

// NewReportService storage optionnel
func NewReportService(factory *ReportFactory, reports ReportStore, storage ObjectStorage, bucket string,
	auditor Auditor, clock Clock, log logrus.FieldLogger) *ReportService {
	if auditor == nil {
		auditor = NopAuditor{}
	}
	return &ReportService{
		factory: factory,
		reports: reports,
		storage: storage,
		bucket:  bucket,
		auditor: auditor,
		clock:   clock,
		log:     log,
	}
}

func (s *ReportService) Generate(ctx context.Context, actor Actor, reportType string) (*GeneratedReport, error) {
	report, err := s.factory.CreateReport(reportType)
	if err != nil {
		return nil, err
	}
	content, err := report.GenerateReport(ctx)
	if err != nil {
		s.auditor.Record(ctx, actor.audit(ActionReportGenerate, ResourceReport, "", report.Type(), false))
		return nil, err
	}

	now := s.clock.now()
	record := models.Report{Type: report.Type(), Date: now, EmployeeID: actor.UserID}
	if s.storage != nil {
		key := path.Join("reports", report.Type(), now.Format("2006-01-02")+"-"+uuid.NewString()+".xlsx")
		if _, err := s.storage.Put(ctx, s.bucket, key, bytes.NewReader(content), int64(len(content)), XLSXContentType); err != nil {
			s.log.WithError(err).Warn("⚠️ Archivage du rapport impossible")
		} else {
			record.ObjectKey = key
		}
	}
	if err := s.reports.Create(ctx, &record); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, actor.audit(ActionReportGenerate, ResourceReport, idString(record.ID), report.Type(), true))
	s.log.WithFields(logrus.Fields{"type": report.Type(), "employee_id": actor.UserID}).Info("📊 Rapport généré")

	return &GeneratedReport{
		Filename: report.Type() + "_report.xlsx",
		Content:  content,
		Record:   record,
	}, nil
}

func (s *ReportService) Recent(ctx context.Context, limit int) ([]models.Report, error) {
	return s.reports.List(ctx, limit)
}

// ObjectLinker stockage capable de signer un lien temporaire
type ObjectLinker interface {
	SignedURL(ctx context.Context, bucket, key string, duration time.Duration) (string, error)
}

// ArchiveLinks liens signés vers les rapports archivés, indexés par id
func (s *ReportService) ArchiveLinks(ctx context.Context, reports []models.Report) map[int64]string {
	links := make(map[int64]string)
	linker, ok := s.storage.(ObjectLinker)
	if !ok {
		return links
	}
	for _, r := range reports {
		if r.ObjectKey == "" {
			continue
		}
		url, err := linker.SignedURL(ctx, s.bucket, r.ObjectKey, ReportLinkTTL)
		if err != nil {
			s.log.WithError(err).WithField("report_id", r.ID).Warn("⚠️ Lien de rapport non signé")
			continue
		}
		links[r.ID] = url
	}
	return links
}
