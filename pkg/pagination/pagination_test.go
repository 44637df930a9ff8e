// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lethanhduc/bookwise/pkg/pagination"
)

/*
TestNewMeta verifies total page calculation and navigation flags.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first_of_four", 1, 32, 100, 4, true, false},
		{"last_of_four", 4, 32, 100, 4, false, true},
		{"middle_page", 2, 32, 100, 4, true, true},
		{"exact_division", 1, 20, 40, 2, true, false},
		{"empty_result", 1, 20, 0, 0, false, false},
		{"single_page", 1, 20, 5, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.hasNext, meta.HasNext)
			assert.Equal(t, tt.hasPrev, meta.HasPrev)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}

/*
TestFromRequest_Clamping checks that out-of-range query values are clamped.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=50", 3, 50},
		{"negative_page", "page=-2", 1, 20},
		{"zero_page", "page=0", 1, 20},
		{"excessive_limit", "limit=5000", 1, 20},
		{"garbage_values", "page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/v1/books?"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the offset derivation for element slicing.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 96, pagination.Params{Page: 4, Limit: 32}.Offset())
}
