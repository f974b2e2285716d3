package dto

import (
	"time"

	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
	"storekeeper/internal/domain/documents/transaction"
)

// --- Request DTOs ---

type CreateTransactionRequest struct {
	Kind    string                   `json:"kind" binding:"required,oneof=sale purchase"`
	PartyID string                   `json:"partyId" binding:"required,uuid"`
	Date    *time.Time               `json:"date,omitempty"`
	Comment string                   `json:"comment,omitempty"`
	Lines   []TransactionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type TransactionLineRequest struct {
	ProductID string  `json:"productId" binding:"required,uuid"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" binding:"gte=0"`
}

func (r *CreateTransactionRequest) ToEntity() *transaction.Transaction {
	partyID, _ := id.Parse(r.PartyID)

	doc := transaction.New(transaction.Kind(r.Kind), partyID)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		doc.AddLine(productID, types.Quantity(line.Quantity), types.NewMoney(line.UnitPrice))
	}

	return doc
}

// UpdateTransactionRequest replaces the party and the whole table part.
// The document is re-posted with the new lines; partial line patches are
// not supported.
type UpdateTransactionRequest struct {
	PartyID string                   `json:"partyId" binding:"required,uuid"`
	Lines   []TransactionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToLines converts the request lines to domain lines. Line numbers and
// amounts are normalized by the entity on replace.
func (r *UpdateTransactionRequest) ToLines() []transaction.Line {
	lines := make([]transaction.Line, 0, len(r.Lines))
	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		lines = append(lines, transaction.Line{
			ProductID: productID,
			Quantity:  types.Quantity(line.Quantity),
			UnitPrice: types.NewMoney(line.UnitPrice),
		})
	}
	return lines
}

// --- List Query ---

type TransactionListQuery struct {
	Kind     string     `form:"kind" binding:"omitempty,oneof=sale purchase"`
	PartyID  string     `form:"partyId" binding:"omitempty,uuid"`
	Status   []string   `form:"status"`
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Search   string     `form:"search"`
	OrderBy  string     `form:"orderBy"`
	Limit    int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset   int        `form:"offset" binding:"omitempty,min=0"`
}

func (q *TransactionListQuery) ToFilter() transaction.ListFilter {
	f := transaction.ListFilter{
		Statuses: q.Status,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	}
	f.Search = q.Search
	f.OrderBy = q.OrderBy
	f.Limit = q.Limit
	if f.Limit <= 0 {
		f.Limit = 50
	}
	f.Offset = q.Offset

	if q.Kind != "" {
		kind := transaction.Kind(q.Kind)
		f.Kind = &kind
	}
	if q.PartyID != "" {
		partyID, err := id.Parse(q.PartyID)
		if err == nil {
			f.PartyID = &partyID
		}
	}

	return f
}

// --- Response DTOs ---

type TransactionResponse struct {
	ID            string                    `json:"id"`
	Number        string                    `json:"number"`
	Kind          string                    `json:"kind"`
	Status        string                    `json:"status"`
	PartyID       string                    `json:"partyId"`
	Date          time.Time                 `json:"date"`
	PostedVersion int                       `json:"postedVersion"`
	TotalQuantity int64                     `json:"totalQuantity"`
	TotalAmount   types.Money               `json:"totalAmount"`
	Comment       string                    `json:"comment,omitempty"`
	Lines         []TransactionLineResponse `json:"lines,omitempty"`
	DeletionMark  bool                      `json:"deletionMark,omitempty"`
	Version       int                       `json:"version"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
	CreatedBy     string                    `json:"createdBy,omitempty"`
	UpdatedBy     string                    `json:"updatedBy,omitempty"`
}

type TransactionLineResponse struct {
	LineID    string      `json:"lineId"`
	LineNo    int         `json:"lineNo"`
	ProductID string      `json:"productId"`
	Quantity  int64       `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
	Amount    types.Money `json:"amount"`
}

func FromTransaction(doc *transaction.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Kind:          string(doc.Kind),
		Status:        string(doc.Status),
		PartyID:       doc.PartyID.String(),
		Date:          doc.Date,
		PostedVersion: doc.PostedVersion,
		TotalQuantity: doc.TotalQuantity.Int64(),
		TotalAmount:   doc.TotalAmount,
		Comment:       doc.Comment,
		DeletionMark:  doc.DeletionMark,
		Version:       doc.Version,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
		CreatedBy:     doc.CreatedBy,
		UpdatedBy:     doc.UpdatedBy,
	}

	for _, line := range doc.Lines {
		resp.Lines = append(resp.Lines, TransactionLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity.Int64(),
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount,
		})
	}

	return resp
}

// FromTransactionList maps documents without their lines (list views do
// not need table parts).
func FromTransactionList(docs []*transaction.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, FromTransaction(doc))
	}
	return out
}
