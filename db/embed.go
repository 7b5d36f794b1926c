// Package db provides the embedded database schema.
package db

import (
	_ "embed"
	"strings"
)

// Schema contains the DDL statements for all application tables.
//
//go:embed schema.sql
var Schema string

// Statements splits Schema into individual statements, dropping comments.
func Statements() []string {
	var lines []string
	for _, line := range strings.Split(Schema, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
