package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind is the closed set of node shapes the sorting rules understand.
// Every other tree-sitter node type maps to KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindProgram
	KindComment

	// Imports
	KindImportStatement
	KindImportClause
	KindNamespaceImport
	KindNamedImports
	KindImportSpecifier

	// Expressions used as keys
	KindIdentifier
	KindPropertyIdentifier
	KindPrivatePropertyIdentifier
	KindString
	KindNumber
	KindTemplateString
	KindTemplateSubstitution
	KindComputedPropertyName

	// Object literals
	KindObject
	KindPair
	KindShorthandProperty
	KindMethodDefinition
	KindSpreadElement

	// Destructuring patterns
	KindObjectPattern
	KindPairPattern
	KindShorthandPropertyPattern
	KindObjectAssignmentPattern
	KindRestPattern
)

var kindsByType = map[string]Kind{
	"program":                               KindProgram,
	"comment":                               KindComment,
	"import_statement":                      KindImportStatement,
	"import_clause":                         KindImportClause,
	"namespace_import":                      KindNamespaceImport,
	"named_imports":                         KindNamedImports,
	"import_specifier":                      KindImportSpecifier,
	"identifier":                            KindIdentifier,
	"property_identifier":                   KindPropertyIdentifier,
	"private_property_identifier":           KindPrivatePropertyIdentifier,
	"string":                                KindString,
	"number":                                KindNumber,
	"template_string":                       KindTemplateString,
	"template_substitution":                 KindTemplateSubstitution,
	"computed_property_name":                KindComputedPropertyName,
	"object":                                KindObject,
	"pair":                                  KindPair,
	"shorthand_property_identifier":         KindShorthandProperty,
	"method_definition":                     KindMethodDefinition,
	"spread_element":                        KindSpreadElement,
	"object_pattern":                        KindObjectPattern,
	"pair_pattern":                          KindPairPattern,
	"shorthand_property_identifier_pattern": KindShorthandPropertyPattern,
	"object_assignment_pattern":             KindObjectAssignmentPattern,
	"rest_pattern":                          KindRestPattern,
}

// KindOf classifies a tree-sitter node.
func KindOf(n *sitter.Node) Kind {
	if n == nil {
		return KindUnknown
	}
	if k, ok := kindsByType[n.Type()]; ok {
		return k
	}
	return KindUnknown
}

func (k Kind) String() string {
	for name, kind := range kindsByType {
		if kind == k {
			return name
		}
	}
	return "unknown"
}
