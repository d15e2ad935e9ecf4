// Package vocabulary provides the standard W3C IRIs and the mapping-target
// enumerations used by the vocabulary compiler.
//
// References:
// - RDF: https://www.w3.org/TR/rdf11-concepts/
// - RDFS: https://www.w3.org/TR/rdf-schema/
// - OWL: https://www.w3.org/TR/owl2-overview/
// - SKOS: https://www.w3.org/TR/skos-reference/
// - Dublin Core: https://www.dublincore.org/specifications/dublin-core/dcmi-terms/
package vocabulary

// RDF namespace IRIs.
const (
	RdfType  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RdfFirst = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	RdfRest  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	RdfNil   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"
)

// RDF Schema namespace IRIs.
const (
	RdfsLabel         = "http://www.w3.org/2000/01/rdf-schema#label"
	RdfsComment       = "http://www.w3.org/2000/01/rdf-schema#comment"
	RdfsDomain        = "http://www.w3.org/2000/01/rdf-schema#domain"
	RdfsRange         = "http://www.w3.org/2000/01/rdf-schema#range"
	RdfsSubClassOf    = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	RdfsSubPropertyOf = "http://www.w3.org/2000/01/rdf-schema#subPropertyOf"
	RdfsSeeAlso       = "http://www.w3.org/2000/01/rdf-schema#seeAlso"

	// RdfsResource is the default range for object properties that do not
	// declare one.
	RdfsResource = "http://www.w3.org/2000/01/rdf-schema#Resource"

	// RdfsLiteral is the only legal range for datatype properties.
	RdfsLiteral = "http://www.w3.org/2000/01/rdf-schema#Literal"
)

// OWL namespace IRIs.
const (
	OwlClass              = "http://www.w3.org/2002/07/owl#Class"
	OwlObjectProperty     = "http://www.w3.org/2002/07/owl#ObjectProperty"
	OwlDatatypeProperty   = "http://www.w3.org/2002/07/owl#DatatypeProperty"
	OwlAnnotationProperty = "http://www.w3.org/2002/07/owl#AnnotationProperty"
	OwlSymmetricProperty  = "http://www.w3.org/2002/07/owl#SymmetricProperty"
	OwlDeprecatedClass    = "http://www.w3.org/2002/07/owl#DeprecatedClass"
	OwlDeprecatedProperty = "http://www.w3.org/2002/07/owl#DeprecatedProperty"
	OwlDeprecated         = "http://www.w3.org/2002/07/owl#deprecated"
	OwlUnionOf            = "http://www.w3.org/2002/07/owl#unionOf"
	OwlInverseOf          = "http://www.w3.org/2002/07/owl#inverseOf"
	OwlVersionIRI         = "http://www.w3.org/2002/07/owl#versionIRI"
	OwlVersionInfo        = "http://www.w3.org/2002/07/owl#versionInfo"
	OwlPriorVersion       = "http://www.w3.org/2002/07/owl#priorVersion"
)

// SKOS namespace IRIs.
const (
	SkosExactMatch  = "http://www.w3.org/2004/02/skos/core#exactMatch"
	SkosCloseMatch  = "http://www.w3.org/2004/02/skos/core#closeMatch"
	SkosBroadMatch  = "http://www.w3.org/2004/02/skos/core#broadMatch"
	SkosNarrowMatch = "http://www.w3.org/2004/02/skos/core#narrowMatch"
	SkosChangeNote  = "http://www.w3.org/2004/02/skos/core#changeNote"
	SkosHistoryNote = "http://www.w3.org/2004/02/skos/core#historyNote"
	SkosPrefLabel   = "http://www.w3.org/2004/02/skos/core#prefLabel"
)

// Dublin Core terms namespace IRIs.
const (
	DctIssued       = "http://purl.org/dc/terms/issued"
	DctModified     = "http://purl.org/dc/terms/modified"
	DctDescription  = "http://purl.org/dc/terms/description"
	DctIsReplacedBy = "http://purl.org/dc/terms/isReplacedBy"
	DctIdentifier   = "http://purl.org/dc/terms/identifier"
)

// XSD datatype IRIs.
const (
	XsdDate     = "http://www.w3.org/2001/XMLSchema#date"
	XsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
	XsdBoolean  = "http://www.w3.org/2001/XMLSchema#boolean"
)

// External vocabulary namespaces used by the mapping columns.
const (
	// BibframeNamespace is the Library of Congress BIBFRAME ontology.
	BibframeNamespace = "http://id.loc.gov/ontologies/bibframe/"

	// BflcNamespace is the LC extension to BIBFRAME.
	BflcNamespace = "http://id.loc.gov/ontologies/bflc/"

	// RDARegistryNamespace is the RDA element and term registry.
	RDARegistryNamespace = "http://rdaregistry.info/"
)
