package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
format_version = "1.0.0"
server_port = "8000"
request_timeout = "20s"
log_level = "info"
server_color = "blue"

[db]
driver = "postgresql"
host = "localhost"
port = 5432
dbname = "tyko"
user = "tyko"
password = "secret"
sslmode = "disable"
`

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig(validConfig)
	require.NoError(t, err)
	assert.Equal(t, "8000", c.ServerPort)
	assert.Equal(t, "/api", c.APIPrefix)
	assert.Equal(t, "blue", c.ServerColor)
	assert.Equal(t, 20*time.Second, c.GetRequestTimeout())
	assert.Equal(t, 5*time.Second, c.GetStatementTimeout())
	assert.Equal(t, "TYKO-OBJECT-ID", c.PBCore.ObjectIdentifierSource)
	assert.Equal(t, "host=localhost port=5432 user=tyko password=secret dbname=tyko sslmode=disable", c.DSN())
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing port", `
format_version = "1.0.0"
[db]
driver = "sqlite"
path = "tyko.db"
`},
		{"unknown driver", `
format_version = "1.0.0"
server_port = "8000"
[db]
driver = "mysql"
`},
		{"postgres without host", `
format_version = "1.0.0"
server_port = "8000"
[db]
driver = "postgresql"
port = 5432
dbname = "tyko"
user = "tyko"
`},
		{"sqlite without path", `
format_version = "1.0.0"
server_port = "8000"
[db]
driver = "sqlite"
`},
		{"newer format", `
format_version = "1.1.0"
server_port = "8000"
[db]
driver = "sqlite"
path = "tyko.db"
`},
		{"older major format", `
format_version = "0.9.0"
server_port = "8000"
[db]
driver = "sqlite"
path = "tyko.db"
`},
		{"bad timeout", `
format_version = "1.0.0"
server_port = "8000"
request_timeout = "soon"
[db]
driver = "sqlite"
path = "tyko.db"
`},
		{"unknown key", `
format_version = "1.0.0"
server_port = "8000"
serve_color = "red"
[db]
driver = "sqlite"
path = "tyko.db"
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.content)
			assert.Error(t, err)
		})
	}
}

func TestTestInit(t *testing.T) {
	TestInit()
	require.NotNil(t, Config())
	assert.True(t, IsTest())
	assert.Equal(t, DriverSqlite, Config().DB.Driver)
	assert.Equal(t, ":memory:", Config().DB.Path)
}
