package treatment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

type ListTreatmentsInput struct {
	ShopID uint

	// StartDate and EndDate are local YYYY-MM-DD dates, both inclusive.
	StartDate   string
	EndDate     string
	Status      string
	StaffUserID *uint
	Search      string
	SortBy      string
	SortOrder   string

	Offset int
	Limit  int
}

type ListTreatments struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListTreatments(repo domain.Repository, loc *time.Location) *ListTreatments {
	return &ListTreatments{repo: repo, loc: loc}
}

func (uc *ListTreatments) Execute(ctx context.Context, in ListTreatmentsInput) ([]View, int64, error) {
	f := domain.ListFilter{
		ShopID:      in.ShopID,
		StaffUserID: in.StaffUserID,
		Search:      in.Search,
		SortBy:      in.SortBy,
		SortDesc:    strings.EqualFold(in.SortOrder, "desc"),
		Offset:      in.Offset,
		Limit:       in.Limit,
	}

	if in.StartDate != "" || in.EndDate != "" {
		start, end := in.StartDate, in.EndDate
		if start == "" {
			start = end
		}
		if end == "" {
			end = start
		}

		a, err := timezone.ParseDate(start, uc.loc)
		if err != nil {
			return nil, 0, httperr.Validation(domainTag, "start_date must be YYYY-MM-DD.")
		}
		b, err := timezone.ParseDate(end, uc.loc)
		if err != nil {
			return nil, 0, httperr.Validation(domainTag, "end_date must be YYYY-MM-DD.")
		}

		from, to := timezone.DayRange(a, b, uc.loc)
		f.From, f.To = &from, &to
	}

	if in.Status != "" {
		s, err := parseStatus(in.Status)
		if err != nil {
			return nil, 0, err
		}
		f.Status = &s
	}

	rows, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, 0, usecase.StoreError(domainTag, err)
	}

	out := make([]View, 0, len(rows))
	for i := range rows {
		out = append(out, NewView(&rows[i]))
	}
	return out, total, nil
}

type GetTreatment struct {
	repo domain.Repository
}

func NewGetTreatment(repo domain.Repository) *GetTreatment {
	return &GetTreatment{repo: repo}
}

func (uc *GetTreatment) Execute(ctx context.Context, shopID, id uint) (*View, error) {
	t, err := uc.repo.Get(ctx, shopID, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	v := NewView(t)
	return &v, nil
}
