package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MalditoKM/Asistent-Restaurant/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportJob is the payload of a sales_report job. RestaurantID nil means the
// export spans every tenant; the scope was already authorized when the job
// was enqueued.
type ReportJob struct {
	FileName     string     `json:"file_name"`
	RestaurantID *uuid.UUID `json:"restaurant_id"`
	From         string     `json:"from"`
	To           string     `json:"to"`
}

// ReportWorker renders sales exports to xlsx files under storagePath.
type ReportWorker struct {
	db          *gorm.DB
	storagePath string
}

func NewReportWorker(db *gorm.DB, storagePath string) *ReportWorker {
	return &ReportWorker{db: db, storagePath: storagePath}
}

func (w *ReportWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var job ReportJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("report: decode payload: %w", err)
	}

	q := w.db.WithContext(ctx).Model(&model.Sale{}).
		Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("position asc") }).
		Order("sale_date asc")
	if job.RestaurantID != nil {
		q = q.Where("restaurant_id = ?", *job.RestaurantID)
	}
	if job.From != "" {
		q = q.Where("sale_date >= ?", job.From)
	}
	if job.To != "" {
		q = q.Where("sale_date <= ?", job.To)
	}

	var sales []model.Sale
	if err := q.Find(&sales).Error; err != nil {
		return fmt.Errorf("report: load sales: %w", err)
	}

	path, err := w.write(job.FileName, sales)
	if err != nil {
		return err
	}
	log.Info().Str("file", path).Int("sales", len(sales)).Msg("sales report written")
	return nil
}

func (w *ReportWorker) write(fileName string, sales []model.Sale) (string, error) {
	if err := os.MkdirAll(w.storagePath, 0o755); err != nil {
		return "", fmt.Errorf("report: create storage dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Customer", "Table", "Status", "Item", "Unit Price", "Qty", "Subtotal", "Sale Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	grandTotal := decimal.Zero
	for i := range sales {
		s := &sales[i]
		grandTotal = grandTotal.Add(s.TotalPrice)
		for _, item := range s.Items {
			subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			values := []interface{}{
				s.SaleDate.Format("2006-01-02"),
				s.CustomerName,
				s.TableNumber,
				s.Status,
				item.Name,
				item.UnitPrice.StringFixed(2),
				item.Quantity,
				subtotal.StringFixed(2),
				s.TotalPrice.StringFixed(2),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	totalCell, _ := excelize.CoordinatesToCellName(len(headers), row+1)
	f.SetCellValue(sheet, totalCell, grandTotal.StringFixed(2))

	path := filepath.Join(w.storagePath, fileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("report: save xlsx: %w", err)
	}
	return path, nil
}

// FileNameFor builds a collision-free export name; kept here so the service
// and the worker agree on the format.
func FileNameFor(restaurantID *uuid.UUID) string {
	scope := "all"
	if restaurantID != nil {
		scope = restaurantID.String()
	}
	return fmt.Sprintf("sales-%s-%d.xlsx", scope, time.Now().UnixNano())
}
