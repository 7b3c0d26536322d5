package gstore

import "strings"

const pingQuery = "SELECT ?s ?p ?o WHERE { ?s ?p ?o } LIMIT 1"

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
)

// EscapeLiteral makes text safe inside a double-quoted SPARQL string.
func EscapeLiteral(text string) string {
	return literalEscaper.Replace(text)
}

// BuildEntityQuery selects up to 100 triples whose subject or object matches
// text, case-insensitively, by label, URI or literal value.
func BuildEntityQuery(text string) string {
	return strings.ReplaceAll(entityQueryTemplate, "{entity}", EscapeLiteral(text))
}

const entityQueryTemplate = `
SELECT DISTINCT ?subject ?predicate ?object ?subjectLabel ?objectLabel ?subjectType ?objectType
WHERE {
    ?subject ?predicate ?object .

    OPTIONAL {
        ?subject <http://www.w3.org/2000/01/rdf-schema#label> ?subjectLabel
    }
    OPTIONAL {
        ?subject <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> ?subjectType
    }

    OPTIONAL {
        ?object <http://www.w3.org/2000/01/rdf-schema#label> ?objectLabel
        FILTER(isURI(?object))
    }
    OPTIONAL {
        ?object <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> ?objectType
        FILTER(isURI(?object))
    }

    FILTER(
        (BOUND(?subjectLabel) && (
            CONTAINS(LCASE(STR(?subjectLabel)), LCASE("{entity}")) ||
            STR(?subjectLabel) = "{entity}"
        )) ||
        (BOUND(?objectLabel) && (
            CONTAINS(LCASE(STR(?objectLabel)), LCASE("{entity}")) ||
            STR(?objectLabel) = "{entity}"
        )) ||
        CONTAINS(LCASE(STR(?subject)), LCASE("{entity}")) ||
        (isURI(?object) && CONTAINS(LCASE(STR(?object)), LCASE("{entity}"))) ||
        (isLiteral(?object) && (
            CONTAINS(LCASE(STR(?object)), LCASE("{entity}")) ||
            STR(?object) = "{entity}"
        ))
    )
}
ORDER BY ?subject ?predicate ?object
LIMIT 100
`
