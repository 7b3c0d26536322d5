package gstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLiteral(t *testing.T) {
	assert.Equal(t, `a\"b\'c\\d\ne\r`, EscapeLiteral("a\"b'c\\d\ne\r"))
	assert.Equal(t, "机器学习", EscapeLiteral("机器学习"))
}

func TestBuildEntityQuery(t *testing.T) {
	query := BuildEntityQuery(`say "hi"`)

	assert.NotContains(t, query, "{entity}")
	assert.Contains(t, query, `LCASE("say \"hi\"")`)
	for _, clause := range []string{
		`CONTAINS(LCASE(STR(?subjectLabel)), LCASE("say \"hi\""))`,
		`STR(?subjectLabel) = "say \"hi\""`,
		`CONTAINS(LCASE(STR(?objectLabel)), LCASE("say \"hi\""))`,
		`STR(?objectLabel) = "say \"hi\""`,
		`CONTAINS(LCASE(STR(?subject)), LCASE("say \"hi\""))`,
		`(isURI(?object) && CONTAINS(LCASE(STR(?object)), LCASE("say \"hi\"")))`,
		`CONTAINS(LCASE(STR(?object)), LCASE("say \"hi\"")) ||`,
		`STR(?object) = "say \"hi\""`,
	} {
		assert.Contains(t, query, clause)
	}
	assert.Equal(t, 8, strings.Count(query, `say \"hi\"`))
	assert.Contains(t, query, "LIMIT 100")
}
