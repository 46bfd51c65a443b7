package service

import (
	"context"
	"strings"
	"time"

	"github.com/erazemk/wms/internal/model"
)

// PurchaseRequests manages purchase request records.
type PurchaseRequests struct {
	c *Collection[model.PurchaseRequest]
}

// NewPurchaseRequests creates the purchase request service.
func NewPurchaseRequests(d Deps) *PurchaseRequests {
	return &PurchaseRequests{c: NewCollection(d, Descriptor[model.PurchaseRequest]{
		Entity:  model.EntityPurchaseRequest,
		Prefix:  PrefixPurchaseRequest,
		History: func(pr *model.PurchaseRequest) *[]model.HistoryEntry { return &pr.History },
		Touch: func(pr *model.PurchaseRequest, now time.Time, user string) {
			pr.UpdatedAt = now
			pr.UpdatedBy = user
		},
	})}
}

// Create stores a new request in Submitted status.
func (s *PurchaseRequests) Create(ctx context.Context, in model.NewPurchaseRequest) *model.PurchaseRequest {
	prefix := YearPrefix("PR", s.c.Now())
	return s.c.Insert(ctx, prefix, func(id string, now time.Time) *model.PurchaseRequest {
		user := in.RequestedBy
		if user == "" {
			user = model.SystemUser
		}
		return &model.PurchaseRequest{
			ID:          id,
			PRNumber:    id,
			Date:        now,
			Department:  in.Department,
			RequestedBy: in.RequestedBy,
			Items:       requestLines(in.Items),
			Status:      model.PRStatusSubmitted,
			Notes:       in.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
			History: []model.HistoryEntry{{
				Action: model.ActionCreated,
				Date:   now,
				User:   user,
				Status: model.PRStatusSubmitted,
			}},
		}
	})
}

// requestLines copies lines, filling each total from quantity and estimated price.
func requestLines(lines []model.RequestLine) []model.RequestLine {
	out := make([]model.RequestLine, len(lines))
	for i, l := range lines {
		l.Total = model.LineTotal(l.Quantity, l.EstimatedPrice)
		out[i] = l
	}
	return out
}

// All returns every purchase request.
func (s *PurchaseRequests) All(ctx context.Context) []model.PurchaseRequest {
	return s.c.All(ctx)
}

// LoadAll is All that also reports whether the listing succeeded.
func (s *PurchaseRequests) LoadAll(ctx context.Context) ([]model.PurchaseRequest, bool) {
	return s.c.LoadAll(ctx)
}

// Get returns the request with id, or nil.
func (s *PurchaseRequests) Get(ctx context.Context, id string) *model.PurchaseRequest {
	return s.c.Get(ctx, id)
}

// Update merges patch over the stored request.
func (s *PurchaseRequests) Update(ctx context.Context, id string, patch model.PurchaseRequestPatch) *model.PurchaseRequest {
	return s.c.Mutate(ctx, "update", id, func(pr *model.PurchaseRequest, _ time.Time) (model.HistoryEntry, bool) {
		if patch.Items != nil {
			lines := requestLines(*patch.Items)
			patch.Items = &lines
		}
		patch.Apply(pr)
		entry := model.HistoryEntry{
			Action: model.ActionUpdated,
			User:   patch.UpdatedBy,
			Status: pr.Status,
		}
		if patch.Notes != nil {
			entry.Notes = *patch.Notes
		}
		return entry, true
	})
}

// UpdateStatus sets the request's status.
func (s *PurchaseRequests) UpdateStatus(ctx context.Context, id, status, user string) *model.PurchaseRequest {
	return s.Update(ctx, id, model.PurchaseRequestPatch{Status: &status, UpdatedBy: user})
}

// Delete removes the request with id.
func (s *PurchaseRequests) Delete(ctx context.Context, id string) bool {
	return s.c.Delete(ctx, id)
}

// ByStatus returns the requests in status.
func (s *PurchaseRequests) ByStatus(ctx context.Context, status string) []model.PurchaseRequest {
	return s.c.Filter(ctx, func(pr *model.PurchaseRequest) bool { return pr.Status == status })
}

// ByDepartment returns the requests raised by department, ignoring case.
func (s *PurchaseRequests) ByDepartment(ctx context.Context, department string) []model.PurchaseRequest {
	return s.c.Filter(ctx, func(pr *model.PurchaseRequest) bool {
		return strings.EqualFold(pr.Department, department)
	})
}
