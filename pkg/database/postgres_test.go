package database

import (
	"testing"

	"homecare-booking/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	tests := []struct {
		name   string
		config utils.DatabaseConfig
		want   string
	}{
		{
			name: "all fields",
			config: utils.DatabaseConfig{
				Host: "db", Port: "5433", User: "app", Password: "secret", Name: "bookings", SSLMode: "require",
			},
			want: "host=db port=5433 user=app password=secret dbname=bookings sslmode=require",
		},
		{
			name:   "empty values omitted",
			config: utils.DatabaseConfig{Host: "localhost", Name: "bookings"},
			want:   "host=localhost dbname=bookings",
		},
		{
			name:   "password with space quote and backslash",
			config: utils.DatabaseConfig{Host: "db", User: "app", Password: `it's a \secret`},
			want:   `host=db user=app password='it\'s a \\secret'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConnString(tt.config))
		})
	}
}

func TestConnString_ParsesBack(t *testing.T) {
	passwords := []string{"plain", "two words", "it's", `back\slash`, `'\' mixed \'`}

	for _, password := range passwords {
		t.Run(password, func(t *testing.T) {
			config := utils.DatabaseConfig{Host: "db", Port: "5432", User: "app", Password: password, Name: "bookings"}

			parsed, err := pgconn.ParseConfig(ConnString(config))
			require.NoError(t, err)
			assert.Equal(t, password, parsed.Password)
			assert.Equal(t, "app", parsed.User)
			assert.Equal(t, "bookings", parsed.Database)
		})
	}
}
