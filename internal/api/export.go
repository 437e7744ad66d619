package api

import (
	"encoding/csv" // CSV writer
	"fmt"          // Cell and file names
	"net/http"     // HTTP status codes
	"time"         // File name stamp

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain" // Importing domain models
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"  // User-scoped repository

	"github.com/gin-gonic/gin"    // Gin web framework
	"github.com/sirupsen/logrus"  // Logging library
	"github.com/xuri/excelize/v2" // XLSX writer
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{"Date", "Type", "State", "Amount", "Description", "Origin", "Destination", "Category"}

// exportRows resolves account and category names and flattens each transaction into a row
func exportRows(c *gin.Context, sc *store.Scope, txs []domain.Transaction) ([][]any, error) {
	ctx := c.Request.Context()
	accounts, err := sc.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := sc.ListCategories(ctx, "")
	if err != nil {
		return nil, err
	}
	accountNames := make(map[uint]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}
	categoryNames := make(map[uint]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}
	name := func(names map[uint]string, id *uint) string {
		if id == nil {
			return ""
		}
		return names[*id]
	}

	rows := make([][]any, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []any{
			t.Date.Format(domain.DateLayout),
			string(t.Type),
			string(t.State),
			t.Amount.InexactFloat64(), // Numeric cell in spreadsheets
			t.Description,
			name(accountNames, t.OriginAccountID),
			name(accountNames, t.DestinationAccountID),
			name(categoryNames, t.CategoryID),
		})
	}
	return rows, nil
}

// ExportTransactionsHandler downloads the filtered transactions as CSV or XLSX
func ExportTransactionsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.DefaultQuery("format", "csv")
		if format != "csv" && format != "xlsx" {
			badRequest(c, "Invalid format")
			return
		}
		filter, ok := filterOf(c)
		if !ok {
			return
		}
		sc := scopeOf(c, s)
		txs, err := sc.AllTransactions(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "Failed to fetch transactions", nil)
			return
		}
		rows, err := exportRows(c, sc, txs)
		if err != nil {
			respondError(c, err, "Failed to export transactions", nil)
			return
		}

		filename := fmt.Sprintf("transactions_%s.%s", time.Now().UTC().Format("20060102"), format)
		if format == "xlsx" {
			body, err := buildXLSX(rows)
			if err != nil {
				respondError(c, err, "Failed to export transactions", logrus.Fields{"format": format})
				return
			}
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
			c.Data(http.StatusOK, xlsxMIME, body)
			return
		}

		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Status(http.StatusOK)
		w := csv.NewWriter(c.Writer)
		_ = w.Write(exportHeaders)
		for n, r := range rows {
			rec := make([]string, len(r))
			for i, v := range r {
				rec[i] = fmt.Sprint(v)
			}
			rec[3] = txs[n].Amount.StringFixed(2) // Exact cents instead of the float cell value
			_ = w.Write(rec)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			logrus.WithError(err).Warn("CSV export interrupted")
		}
	}
}

// buildXLSX renders the rows into a single-sheet workbook
func buildXLSX(rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	_ = f.SetColWidth(sheet, "A", "D", 12)
	_ = f.SetColWidth(sheet, "E", "E", 30)
	_ = f.SetColWidth(sheet, "F", "H", 16)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
