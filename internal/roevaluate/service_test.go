package roevaluate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	evaluationTurtle = `@prefix minim: <http://purl.org/minim/minim#> .
<http://example.org/ROs/simple-requirements/> minim:nominallySatisfies <#runnable> .
`
	evaluationRDFXML = `<?xml version="1.0" encoding="utf-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:minim="http://purl.org/minim/minim#">
  <rdf:Description rdf:about="http://example.org/ROs/simple-requirements/">
    <minim:nominallySatisfies rdf:resource="#runnable"/>
  </rdf:Description>
</rdf:RDF>
`
)

// fakeService imitates the ROEvaluate service under /roevaluate/.
type fakeService struct {
	t      testing.TB
	server *httptest.Server

	mutex          sync.Mutex
	requests       []string
	expandRequests []map[string]any

	description       string
	descriptionStatus int
	descriptionType   string
	// expansion overrides the uri returned by the expansion endpoint
	expansion     *string
	expansionType string
	turtle        string
	turtleType    string
	rdfxml        string
	rdfxmlType    string
}

func newFakeService(t testing.TB) *fakeService {
	f := &fakeService{
		t:                 t,
		description:       serviceDescription,
		descriptionStatus: http.StatusOK,
		descriptionType:   "text/turtle; charset=utf-8",
		expansionType:     "text/plain",
		turtle:            evaluationTurtle,
		turtleType:        "text/turtle",
		rdfxml:            evaluationRDFXML,
		rdfxmlType:        "application/rdf+xml; charset=utf-8",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/roevaluate/", f.handleDescription)
	mux.HandleFunc("/roevaluate/uritemplate", f.handleExpand)
	mux.HandleFunc("/roevaluate/evaluate/checklist", f.handleEvaluate)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeService) serviceURI() string {
	return f.server.URL + "/roevaluate/"
}

func (f *fakeService) record(r *http.Request) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path+" "+r.Header.Get("Accept"))
}

func (f *fakeService) recorded() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeService) handleDescription(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	if r.URL.Path != "/roevaluate/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", f.descriptionType)
	w.WriteHeader(f.descriptionStatus)
	io.WriteString(w, f.description)
}

func (f *fakeService) handleExpand(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get("Content-Type") != MediaJSON {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		return
	}

	var body map[string]any
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mutex.Lock()
	f.expandRequests = append(f.expandRequests, body)
	f.mutex.Unlock()

	w.Header().Set("Content-Type", f.expansionType)
	if f.expansion != nil {
		io.WriteString(w, *f.expansion)
		return
	}

	params, _ := body["params"].(map[string]any)
	query := url.Values{}
	for _, key := range []string{"RO", "minim", "purpose"} {
		value, _ := params[key].(string)
		query.Set(key, value)
	}
	io.WriteString(w, "/evaluate/checklist?"+query.Encode()+"\n")
}

func (f *fakeService) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	w.Header().Add("Link", `<http://example.org/minim.rdf>; rel="http://purl.org/minim/minim#hasChecklist"`)
	switch r.Header.Get("Accept") {
	case MediaTurtle:
		w.Header().Set("Content-Type", f.turtleType)
		io.WriteString(w, f.turtle)
	case MediaRDFXML:
		w.Header().Set("Content-Type", f.rdfxmlType)
		io.WriteString(w, f.rdfxml)
	default:
		w.WriteHeader(http.StatusNotAcceptable)
	}
}
