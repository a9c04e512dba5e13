package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type TestStruct struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    TestStruct
		expectError bool
	}{
		{
			name:        "Nested Structure",
			key:         "credit",
			body:        `{"credit": {"name": "Ahmed", "amount": 400}}`,
			expected:    TestStruct{Name: "Ahmed", Amount: 400},
			expectError: false,
		},
		{
			name:        "Flat Structure",
			key:         "credit",
			body:        `{"name": "Mona", "amount": 250}`,
			expected:    TestStruct{Name: "Mona", Amount: 250},
			expectError: false,
		},
		{
			name:        "Nested Structure with Missing Key Fallback",
			key:         "credit",
			body:        `{"other": "value", "name": "Samir", "amount": 120}`,
			expected:    TestStruct{Name: "Samir", Amount: 120},
			expectError: false,
		},
		{
			name:        "Nested Structure with Different Key",
			key:         "sale",
			body:        `{"sale": {"name": "Rice 5kg", "amount": 500}}`,
			expected:    TestStruct{Name: "Rice 5kg", Amount: 500},
			expectError: false,
		},
		{
			name:        "Invalid JSON",
			key:         "credit",
			body:        `{"name": "Eve", "amount": "invalid"}`, // amount is a number
			expected:    TestStruct{},
			expectError: true,
		},
		{
			name:        "Nested but Invalid Content",
			key:         "credit",
			body:        `{"credit": {"name": "Frank", "amount": "invalid"}}`,
			expected:    TestStruct{},
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			key:         "credit",
			body:        `{"credit": "some string"}`,
			expected:    TestStruct{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result TestStruct
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestParseListQuery_Defaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	query := ParseListQuery(c)
	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 20, query.PerPage)
	assert.Equal(t, "", query.Search)
}

func TestParseListQuery_FromParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?page=3&per_page=50&search_term=rice&sort_by=name&sort_dir=desc", nil)

	query := ParseListQuery(c)
	assert.Equal(t, 3, query.Page)
	assert.Equal(t, 50, query.PerPage)
	assert.Equal(t, "rice", query.Search)
	assert.Equal(t, "name", query.SortBy)
	assert.Equal(t, "desc", query.SortDir)
}
