package api

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedExport(t *testing.T, e *testEnv) string {
	t.Helper()
	token := e.signup(t, "ana@example.com")
	acct := e.create(t, "/accounts", token, gin.H{"name": "Checking", "type": "bank"})
	food := e.create(t, "/categories", token, gin.H{"name": "Food", "type": "expense"})
	e.create(t, "/transactions", token, gin.H{"date": "2025-05-10", "amount": "40", "type": "expense",
		"description": "Groceries", "origin_account_id": idOf(acct), "category_id": idOf(food)})
	e.create(t, "/transactions", token, gin.H{"date": "2025-05-20", "amount": "12.5", "type": "expense",
		"origin_account_id": idOf(acct), "category_id": idOf(food)})
	e.create(t, "/transactions", token, gin.H{"date": "2025-06-01", "amount": "99", "type": "expense",
		"state": "planned", "category_id": idOf(food)})
	return token
}

func TestExportCSV(t *testing.T) {
	e := newTestEnv(t)
	token := seedExport(t, e)

	w := e.do(t, http.MethodGet, "/transactions/export?to=2025-05-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	records, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{"2025-05-10", "expense", "confirmed", "40.00", "Groceries", "Checking", "", "Food"}, records[1])
	assert.Equal(t, "12.50", records[2][3])
}

func TestExportXLSX(t *testing.T) {
	e := newTestEnv(t)
	token := seedExport(t, e)

	w := e.do(t, http.MethodGet, "/transactions/export?format=xlsx&state=planned", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, xlsxMIME, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2025-06-01", rows[1][0])
	assert.Equal(t, "planned", rows[1][2])
	assert.Equal(t, "99", rows[1][3])
}

func TestExportRejectsBadInput(t *testing.T) {
	e := newTestEnv(t)
	token := e.signup(t, "ana@example.com")

	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/transactions/export?format=pdf", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/transactions/export?from=2025-06-01&to=2025-05-01", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/transactions/export", "", nil).Code)
}
