package billing

import (
	"strings"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
)

func toModel(req Request) (Invoice, error) {
	req.InvoiceNo = strings.TrimSpace(req.InvoiceNo)
	req.InvoiceType = codes.Normalize(req.InvoiceType)
	req.Customer = strings.TrimSpace(req.Customer)
	req.BLNo = codes.NormalizePtr(req.BLNo)
	req.Currency = codes.Normalize(req.Currency)
	req.Status = codes.Normalize(req.Status)
	req.DueDate = codes.StringPtr(req.DueDate)
	req.Remarks = codes.StringPtr(req.Remarks)
	if err := codes.Check(req); err != nil {
		return Invoice{}, err
	}
	invoiceDate, err := codes.ParseDate("invoice_date", req.InvoiceDate)
	if err != nil {
		return Invoice{}, err
	}
	dueDate, err := codes.ParseOptionalDate("due_date", req.DueDate)
	if err != nil {
		return Invoice{}, err
	}
	if dueDate != nil && dueDate.Before(invoiceDate) {
		return Invoice{}, codes.Invalid("due_date", "must not be before invoice_date")
	}
	status := Status(req.Status)
	if status == "" || status == StatusOverdue {
		// overdue is derived from the due date, never stored
		status = StatusUnpaid
	}
	inv := Invoice{
		InvoiceNo:   req.InvoiceNo,
		InvoiceType: Type(req.InvoiceType),
		Customer:    req.Customer,
		BLNo:        req.BLNo,
		Currency:    req.Currency,
		Amount:      req.Amount,
		Status:      status,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Remarks:     req.Remarks,
	}
	if req.ExchangeRate != nil {
		inv.ExchangeRate = *req.ExchangeRate
	}
	return inv, nil
}
