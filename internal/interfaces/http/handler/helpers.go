package handler

import (
	"strings"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// invalidQuery answers 400 for a malformed query parameter
func invalidQuery(name, message string) error {
	return shared.NewDomainError("INVALID_QUERY", name+": "+message)
}

// queryList splits a comma separated query value, also accepting the
// parameter repeated
func queryList(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := shared.ParseDate(raw)
	if err != nil {
		return nil, invalidQuery(name, "expected a date like 2026-01-31")
	}
	return &t, nil
}

func queryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, invalidQuery(name, "expected an ID")
	}
	return &id, nil
}

func queryDecimal(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, invalidQuery(name, "expected an amount")
	}
	return &d, nil
}

// dateRange reads from/to. A range whose start is after its end is rejected.
func dateRange(c *gin.Context) (report.DateRange, error) {
	from, err := queryDate(c, "from")
	if err != nil {
		return report.DateRange{}, err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return report.DateRange{}, err
	}
	if from != nil && to != nil && from.After(*to) {
		return report.DateRange{}, invalidQuery("from", "must not be after to")
	}
	return report.DateRange{Start: from, End: to}, nil
}

// pageQuery binds page and page_size
func pageQuery(c *gin.Context) (dto.ListRequest, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, invalidQuery("page", "page must be at least 1 and page_size between 1 and 100")
	}
	return req.Normalize(), nil
}

// reportFilter builds a report filter from the query string:
// from, to, kinds, categories, statuses, types, min_amount, max_amount
func reportFilter(c *gin.Context) (report.Filter, error) {
	r, err := dateRange(c)
	if err != nil {
		return report.Filter{}, err
	}
	minAmount, err := queryDecimal(c, "min_amount")
	if err != nil {
		return report.Filter{}, err
	}
	maxAmount, err := queryDecimal(c, "max_amount")
	if err != nil {
		return report.Filter{}, err
	}

	filter := report.Filter{
		Range:      r,
		Categories: queryList(c, "categories"),
		Statuses:   queryList(c, "statuses"),
		Types:      queryList(c, "types"),
		MinAmount:  minAmount,
		MaxAmount:  maxAmount,
	}
	for _, k := range queryList(c, "kinds") {
		kind := report.Kind(strings.ToLower(k))
		if !kind.IsValid() {
			return report.Filter{}, invalidQuery("kinds", "unknown kind "+k)
		}
		filter.Kinds = append(filter.Kinds, kind)
	}
	return filter, nil
}
