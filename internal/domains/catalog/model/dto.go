package model

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

// ListProductsRequest is bound from the query string of GET /products
type ListProductsRequest struct {
	Query string `form:"query"`
	After string `form:"after"`
	First int    `form:"first"`
}

func (req ListProductsRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Query, validation.Length(0, 200)),
		validation.Field(&req.After, validation.Length(0, 500)),
		validation.Field(&req.First, validation.Min(0), validation.Max(MaxPageSize)),
	)
}

// Normalize trims the query and fills the default page size
func (req ListProductsRequest) Normalize() ListProductsRequest {
	req.Query = strings.TrimSpace(req.Query)
	req.After = strings.TrimSpace(req.After)
	if req.First <= 0 {
		req.First = DefaultPageSize
	}
	return req
}

// CacheKey identifies one page of results
func (req ListProductsRequest) CacheKey() string {
	return fmt.Sprintf("catalog:products:%s:%s:%d", strings.ToLower(req.Query), req.After, req.First)
}
