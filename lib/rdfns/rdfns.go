// Package rdfns is the table of RDF namespace prefixes commonly used with
// Research Objects and the evaluation service.
package rdfns

import (
	"fmt"
	"strings"
)

type Prefix struct {
	Name      string
	Namespace string
}

const (
	RDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	RO      = "http://purl.org/wf4ever/ro#"
	ORE     = "http://www.openarchives.org/ore/terms/"
	AO      = "http://purl.org/ao/"
	DCTERMS = "http://purl.org/dc/terms/"
	MINIM   = "http://purl.org/minim/minim#"
	// ROE is the namespace of the ROEvaluate service description.
	ROE = "http://purl.org/ro/service/evaluate/"
)

var prefixes = []Prefix{
	{"rdf", RDF},
	{"rdfs", RDFS},
	{"owl", "http://www.w3.org/2002/07/owl#"},
	{"xml", "http://www.w3.org/XML/1998/namespace"},
	{"xsd", "http://www.w3.org/2001/XMLSchema#"},
	{"rdfg", "http://www.w3.org/2004/03/trix/rdfg-1/"},
	{"ro", RO},
	{"roevo", "http://purl.org/wf4ever/roevo#"},
	{"roterms", "http://purl.org/wf4ever/roterms#"},
	{"wfprov", "http://purl.org/wf4ever/wfprov#"},
	{"wfdesc", "http://purl.org/wf4ever/wfdesc#"},
	{"wf4ever", "http://purl.org/wf4ever/wf4ever#"},
	{"ore", ORE},
	{"ao", AO},
	{"dcterms", DCTERMS},
	{"dc", "http://purl.org/dc/elements/1.1/"},
	{"foaf", "http://xmlns.com/foaf/0.1/"},
	{"minim", MINIM},
	{"result", "http://www.w3.org/2001/sw/DataAccess/tests/result-set#"},
	{"roes", "http://w3id.org/ro/earth-science#"},
	{"oa", "http://www.w3.org/ns/oa#"},
	{"pav", "http://purl.org/pav/"},
	{"swrc", "http://swrc.ontoware.org/ontology#"},
	{"cito", "http://purl.org/spar/cito/"},
	{"dbo", "http://dbpedia.org/ontology/"},
	{"ov", "http://open.vocab.org/terms/"},
	{"bibo", "http://purl.org/ontology/bibo/"},
	{"prov", "http://www.w3.org/ns/prov#"},
	{"geo", "http://www.opengis.net/ont/geosparql#"},
	{"sf", "http://www.opengis.net/ont/sf#"},
	{"gml", "http://www.opengis.net/ont/gml#"},
	{"odrs", "http://schema.theodi.org/odrs#"},
	{"cc", "http://creativecommons.org/ns#"},
	{"odrl", "http://www.w3.org/ns/odrl/2/"},
	{"geo-wgs84", "http://www.w3.org/2003/01/geo/wgs84_pos#"},
	{"voag", "http://voag.linkedmodel.org/schema/voag#"},
	{"sch", "https://schema.org/"},
	{"sch1", "http://schema.org/"},
	{"roe", ROE},
}

// Prefixes returns a copy of the prefix table.
func Prefixes() []Prefix {
	out := make([]Prefix, len(prefixes))
	copy(out, prefixes)
	return out
}

// Lookup returns the namespace bound to a prefix name.
func Lookup(name string) (string, bool) {
	for _, p := range prefixes {
		if p.Name == name {
			return p.Namespace, true
		}
	}
	return "", false
}

// Expand turns a CURIE like `minim:fullySatisfies` into an IRI.
func Expand(curie string) (string, bool) {
	name, local, ok := strings.Cut(curie, ":")
	if !ok {
		return "", false
	}
	ns, ok := Lookup(name)
	if !ok {
		return "", false
	}
	return ns + local, true
}

// Compact turns an IRI into a CURIE using the longest matching namespace,
// the IRI is returned unchanged if no namespace matches.
func Compact(iri string) string {
	best := Prefix{}
	for _, p := range prefixes {
		if strings.HasPrefix(iri, p.Namespace) && len(p.Namespace) > len(best.Namespace) {
			best = p
		}
	}
	if best.Namespace == "" {
		return iri
	}
	return best.Name + ":" + strings.TrimPrefix(iri, best.Namespace)
}

func render(format string, extra []Prefix) string {
	var out strings.Builder
	for _, p := range append(Prefixes(), extra...) {
		out.WriteString(fmt.Sprintf(format, p.Name, p.Namespace))
		out.WriteString("\n")
	}
	out.WriteString("\n")
	return out.String()
}

// TurtlePrefixes renders the table (and any extra prefixes) as Turtle @prefix lines.
func TurtlePrefixes(extra ...Prefix) string {
	return render("@prefix %s: <%s> .", extra)
}

// SparqlPrefixes renders the table (and any extra prefixes) as SPARQL PREFIX lines.
func SparqlPrefixes(extra ...Prefix) string {
	return render("PREFIX %s: <%s>", extra)
}
