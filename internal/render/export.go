package render

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"homeenergy/server/internal/aggregate"
)

const (
	consumptionSheet = "Consumption"
	billsSheet       = "Bills"
)

var (
	consumptionHeaders = []string{"Home", "Period", "kWh", "Bill", "Cost per kWh"}
	billHeaders        = []string{"Home", "Period", "Amount", "Due Date", "Paid", "Payment Date"}
)

// HistoryWorkbook writes one year of consumption and bills as an XLSX file.
// The consumption sheet ends with a totals row.
func HistoryWorkbook(consumption []aggregate.ConsumptionView, totals aggregate.HistoryTotals, bills []aggregate.BillView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", consumptionSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(billsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeHeader(f, consumptionSheet, consumptionHeaders, headerStyle); err != nil {
		return nil, err
	}
	for i, r := range consumption {
		row := []interface{}{r.Address, aggregate.PeriodLabel(r.Month, r.Year), r.KwhUsed, r.BillAmount, r.CostPerKwh}
		if err := writeRow(f, consumptionSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := writeTotals(f, len(consumption)+2, totals); err != nil {
		return nil, err
	}

	if err := writeHeader(f, billsSheet, billHeaders, headerStyle); err != nil {
		return nil, err
	}
	for i, b := range bills {
		paid := "No"
		paymentDate := ""
		if b.IsPaid {
			paid = "Yes"
		}
		if b.PaymentDate != nil {
			paymentDate = b.PaymentDate.Format("2006-01-02")
		}
		row := []interface{}{b.Address, aggregate.PeriodLabel(b.Month, b.Year), b.ActualBill, b.DueDate.Format("2006-01-02"), paid, paymentDate}
		if err := writeRow(f, billsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTotals stores the totals as numbers shown with two decimals, so the
// sheet can still sum and chart them.
func writeTotals(f *excelize.File, row int, totals aggregate.HistoryTotals) error {
	kwh, err := decimal.NewFromString(totals.TotalKwh)
	if err != nil {
		return fmt.Errorf("failed to parse total kWh %q: %w", totals.TotalKwh, err)
	}
	bill, err := decimal.NewFromString(totals.TotalBill)
	if err != nil {
		return fmt.Errorf("failed to parse total bill %q: %w", totals.TotalBill, err)
	}

	values := []interface{}{"Total", "", kwh.InexactFloat64(), bill.InexactFloat64(), ""}
	if err := writeRow(f, consumptionSheet, row, values); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 2, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create totals style: %w", err)
	}
	first, err := excelize.CoordinatesToCellName(3, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(4, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(consumptionSheet, first, last, style); err != nil {
		return fmt.Errorf("failed to set totals style: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
