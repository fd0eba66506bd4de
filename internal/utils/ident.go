package utils

// Schema and table names arrive as URL parameters and end up interpolated
// into generated SQL, where they cannot be bound as values.  Every such name
// must pass ValidIdent before it is quoted, both in the catalog handlers and
// in the worker's reindex job.

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ErrBadIdent is returned for identifiers containing anything outside
// [A-Za-z0-9_].  Semicolons, quotes and whitespace are all rejected before
// the name gets anywhere near a statement.
var ErrBadIdent = errors.New("invalid identifier")

var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidIdent reports whether name is safe to use as a SQL identifier.
func ValidIdent(name string) bool {
	return identPattern.MatchString(name)
}

// QuoteIdent validates and double-quotes a single identifier.
func QuoteIdent(name string) (string, error) {
	if !ValidIdent(name) {
		return "", ErrBadIdent
	}
	return pgx.Identifier{name}.Sanitize(), nil
}

// QuoteQualified validates and quotes a schema-qualified relation name.
func QuoteQualified(schema, table string) (string, error) {
	if !ValidIdent(schema) || !ValidIdent(table) {
		return "", ErrBadIdent
	}
	return pgx.Identifier{schema, table}.Sanitize(), nil
}

// BuildCreateFunction composes a CREATE OR REPLACE FUNCTION statement from a
// descriptor's parts.  The function name is validated like any identifier;
// the body is untrusted text and is wrapped in a dollar-quote tag chosen so
// it cannot occur inside the body, which closes the delimiter-collision
// escape an edited body could otherwise use.
//
// The argument list, return type and language are restricted to a
// conservative character set rather than quoted: they are SQL fragments
// (e.g. "a integer, b text"), not single identifiers.
func BuildCreateFunction(name, args, returnType, language, body string) (string, error) {
	quoted, err := QuoteIdent(name)
	if err != nil {
		return "", err
	}
	if !validFragment(args) && args != "" {
		return "", fmt.Errorf("%w: argument list", ErrBadIdent)
	}
	if !validFragment(returnType) {
		return "", fmt.Errorf("%w: return type", ErrBadIdent)
	}
	if !ValidIdent(language) {
		return "", fmt.Errorf("%w: language", ErrBadIdent)
	}

	tag := dollarTag(body)
	return fmt.Sprintf("CREATE OR REPLACE FUNCTION %s(%s) RETURNS %s LANGUAGE %s AS %s\n%s\n%s",
		quoted, args, returnType, language, tag, body, tag), nil
}

// validFragment allows identifier characters plus the punctuation that
// argument lists and type names legitimately contain.
var fragmentPattern = regexp.MustCompile(`^[A-Za-z0-9_ ,.()\[\]]+$`)

func validFragment(s string) bool {
	return fragmentPattern.MatchString(s)
}

// dollarTag picks a dollar-quote delimiter that does not appear in body.
func dollarTag(body string) string {
	tag := "$fn$"
	for i := 0; strings.Contains(body, tag); i++ {
		tag = fmt.Sprintf("$fn%d$", i)
	}
	return tag
}
