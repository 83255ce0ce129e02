package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// DSN builds the MySQL DSN for the configured database.
func (c DatabaseConfig) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": c.Charset}
	for k, v := range c.Params {
		mc.Params[k] = v
	}
	return mc.FormatDSN()
}

// BaseURL is the OpenAI-compatible API root of the text-generation service.
func (c LLMConfig) BaseURL() string {
	return fmt.Sprintf("http://%s/v1", net.JoinHostPort(c.Host, strconv.Itoa(c.Port)))
}
