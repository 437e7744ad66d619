package db

import (
	"testing"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver, port string) *config.Config {
	return &config.Config{DBDriver: driver, DBUser: "ledger", DBPassword: "secret", DBHost: "db", DBPort: port, DBName: "budget"}
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "ledger:secret@tcp(db:3306)/budget?parseTime=true&loc=UTC", DSN(testConfig("mysql", "3306")))
	assert.Equal(t, "host=db port=5432 user=ledger password=secret dbname=budget sslmode=disable TimeZone=UTC",
		DSN(testConfig("postgres", "5432")))
}

func TestDialector(t *testing.T) {
	d, err := dialector(testConfig("", "3306"))
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = dialector(testConfig("postgres", "5432"))
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = dialector(testConfig("oracle", "1521"))
	assert.ErrorContains(t, err, "unsupported")
}
