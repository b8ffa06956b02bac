// Package roevaluate is a client for the ROEvaluate research object evaluation
// service. The evaluation itself happens on the server, this package only
// discovers the checklist template, has the server expand it and fetches the
// results.
package roevaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"roeval/lib/linkheader"
	"roeval/lib/restyutil"
	"roeval/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("roeval/internal/roevaluate")

const (
	report_client_service_description = "client.service-description"
	report_client_checklist_template  = "client.checklist-template"
	report_client_expand_template     = "client.expand-template"
	report_client_evaluation_result   = "client.evaluation-result"
)

const (
	MediaTurtle = "text/turtle"
	MediaRDFXML = "application/rdf+xml"
	MediaJSON   = "application/json"
)

// media types servers are known to answer with in place of the requested one
var mediaAliases = map[string][]string{
	MediaTurtle: {"application/x-turtle"},
}

// Step names a single request in an evaluation.
type Step string

const (
	StepServiceDescription Step = "service-description"
	StepExpandTemplate     Step = "expand-template"
	StepResultTurtle       Step = "result-turtle"
	StepResultRDFXML       Step = "result-rdfxml"
	StepResult             Step = "evaluation-result"
)

func resultStep(accept string) Step {
	switch accept {
	case MediaTurtle:
		return StepResultTurtle
	case MediaRDFXML:
		return StepResultRDFXML
	}
	return StepResult
}

// Params are the values substituted into the checklist template.
type Params struct {
	// RO is the uri of the research object to evaluate.
	RO string `json:"RO"`
	// Minim is the checklist (minim) file, relative to the research object.
	Minim   string `json:"minim"`
	Purpose string `json:"purpose"`
}

// ExpandRequest is the body posted to the template expansion endpoint.
type ExpandRequest struct {
	Template string `json:"template"`
	Params   Params `json:"params"`
}

// Response is a successful (or, alongside an error, the failed) response of a step.
type Response struct {
	Step        Step
	Method      string
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	// Links holds the response's Link headers keyed by relation type.
	Links map[string]string
}

type ClientOptions struct {
	// ServiceURI is the root of the evaluation service, a trailing slash is added if missing.
	ServiceURI string
	// AllowExternalHost permits expanded uris and redirects that leave the service host.
	AllowExternalHost bool
	// Output receives a dump of every http exchange, it can be nil.
	Output restyutil.InstrumentOutput
	// Telemetry defaults to telemetry.SlogAPI.
	Telemetry telemetry.API
}

type Client struct {
	ServiceURI *url.URL
	Http       *resty.Client

	allowExternalHost bool
	tel               telemetry.API
}

// ParseServiceURI validates an evaluation service root and normalizes it to end with a slash.
func ParseServiceURI(raw string) (*url.URL, error) {
	serviceUri, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse service uri: %w", err)
	}
	if serviceUri.Scheme != "http" && serviceUri.Scheme != "https" {
		return nil, fmt.Errorf("service uri %q must be an absolute http(s) uri", raw)
	}
	if serviceUri.Host == "" {
		return nil, fmt.Errorf("service uri %q has no host", raw)
	}
	if !strings.HasSuffix(serviceUri.Path, "/") {
		serviceUri.Path += "/"
	}
	serviceUri.Fragment = ""
	return serviceUri, nil
}

func NewClient(opts ClientOptions) (*Client, error) {
	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	tel = telemetry.NewScopedAPI("roevaluate", tel)

	serviceUri, err := ParseServiceURI(opts.ServiceURI)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetHeader("user-agent", "roeval/1.0")

	c := &Client{
		ServiceURI:        serviceUri,
		Http:              httpClient,
		allowExternalHost: opts.AllowExternalHost,
		tel:               tel,
	}
	// redirects are held to the same scheme and host:port as expanded uris
	httpClient.SetRedirectPolicy(
		resty.FlexibleRedirectPolicy(3),
		resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			return c.checkHost(req.URL)
		}),
	)

	telemetry.InstrumentResty(httpClient, "roeval/roevaluate/http", tel)
	restyutil.InstrumentClient(httpClient, opts.Output)

	return c, nil
}

// checkHost returns a HostMismatchError if u leaves the service and that is not allowed.
func (c *Client) checkHost(u *url.URL) error {
	if c.allowExternalHost {
		return nil
	}
	if !strings.EqualFold(u.Scheme, c.ServiceURI.Scheme) || !strings.EqualFold(u.Host, c.ServiceURI.Host) {
		return &HostMismatchError{URI: u.String(), Service: c.ServiceURI.Host}
	}
	return nil
}

func (c *Client) do(ctx context.Context, step Step, req *resty.Request, method, uri string) (Response, error) {
	res, err := req.SetContext(ctx).Execute(method, uri)
	if err != nil {
		return Response{}, fmt.Errorf("%s: %s %s: %w", step, method, uri, err)
	}

	finalUrl := uri
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		finalUrl = res.RawResponse.Request.URL.String()
	}
	out := Response{
		Step:        step,
		Method:      method,
		URL:         finalUrl,
		StatusCode:  res.StatusCode(),
		ContentType: res.Header().Get("Content-Type"),
		Body:        res.Body(),
		Links:       linkheader.Parse(res.Header()),
	}
	if !res.IsSuccess() {
		return out, &HTTPError{
			Step:       step,
			Method:     method,
			URL:        finalUrl,
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Summary:    summarizeBody(out.ContentType, out.Body),
		}
	}
	return out, nil
}

// ServiceDescription fetches the Turtle description of the service.
func (c *Client) ServiceDescription(ctx context.Context) (Response, error) {
	ctx, span := tracer.Start(ctx, "ServiceDescription")
	defer span.End()

	res, err := c.do(
		ctx, StepServiceDescription,
		c.Http.R().SetHeader("Accept", MediaTurtle),
		resty.MethodGet, c.ServiceURI.String(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch service description")
		c.tel.ReportBroken(report_client_service_description, err)
		return res, err
	}
	span.SetAttributes(attribute.Int("content_length", len(res.Body)))
	return res, nil
}

// ChecklistTemplate fetches the service description and extracts the
// checklist uri template from it.
func (c *Client) ChecklistTemplate(ctx context.Context) (string, Response, error) {
	ctx, span := tracer.Start(ctx, "ChecklistTemplate")
	defer span.End()

	res, err := c.ServiceDescription(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch service description")
		return "", res, err
	}

	template, err := ExtractChecklistTemplate(string(res.Body))
	if err != nil {
		err = fmt.Errorf("%s: %s: %w", StepServiceDescription, res.URL, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract checklist template")
		c.tel.ReportBroken(report_client_checklist_template, err)
		return "", res, err
	}

	span.SetAttributes(attribute.String("template", template))
	return template, res, nil
}

// parseExpansion reads the expansion endpoint's response body, tolerating a
// json encoded string.
func parseExpansion(contentType string, body []byte) string {
	raw := strings.TrimSpace(string(body))
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == MediaJSON && strings.HasPrefix(raw, `"`) {
		var decoded string
		if json.Unmarshal([]byte(raw), &decoded) == nil {
			return strings.TrimSpace(decoded)
		}
	}
	return raw
}

// resolveExpansion turns the expansion endpoint's response into the
// evaluation uri. relative results are appended to the service root.
func resolveExpansion(serviceUri *url.URL, raw string) (*url.URL, error) {
	if raw == "" {
		return nil, ErrEmptyExpansion
	}
	if strings.ContainsAny(raw, " \t\r\n") {
		return nil, &ExpansionError{Raw: raw, Err: fmt.Errorf("contains whitespace")}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, &ExpansionError{Raw: raw, Err: err}
	}
	if parsed.IsAbs() {
		if parsed.Host == "" {
			return nil, &ExpansionError{Raw: raw, Err: fmt.Errorf("missing host")}
		}
		return parsed, nil
	}

	joined := strings.TrimSuffix(serviceUri.String(), "/") + "/" + strings.TrimPrefix(raw, "/")
	resolved, err := url.Parse(joined)
	if err != nil {
		return nil, &ExpansionError{Raw: raw, Err: err}
	}
	return resolved, nil
}

// ExpandTemplate has the service expand the checklist template with params and
// returns the resulting evaluation uri.
func (c *Client) ExpandTemplate(ctx context.Context, template string, params Params) (string, Response, error) {
	ctx, span := tracer.Start(ctx, "ExpandTemplate")
	defer span.End()

	span.SetAttributes(
		attribute.String("template", template),
		attribute.String("params.ro", params.RO),
		attribute.String("params.minim", params.Minim),
		attribute.String("params.purpose", params.Purpose),
	)
	for name, value := range map[string]string{"RO": params.RO, "minim": params.Minim, "purpose": params.Purpose} {
		if value == "" {
			c.tel.ReportWarning(report_client_expand_template, "empty template parameter", name)
		}
	}

	expandUri := c.ServiceURI.ResolveReference(&url.URL{Path: "uritemplate"})
	res, err := c.do(
		ctx, StepExpandTemplate,
		c.Http.R().
			SetHeader("Content-Type", MediaJSON).
			SetHeader("Accept", "text/plain, "+MediaJSON).
			SetBody(ExpandRequest{Template: template, Params: params}),
		resty.MethodPost, expandUri.String(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to expand template")
		c.tel.ReportBroken(report_client_expand_template, err)
		return "", res, err
	}

	evaluationUri, err := resolveExpansion(c.ServiceURI, parseExpansion(res.ContentType, res.Body))
	if err == nil {
		err = c.checkHost(evaluationUri)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", StepExpandTemplate, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid template expansion")
		c.tel.ReportBroken(report_client_expand_template, err)
		return "", res, err
	}

	span.SetAttributes(attribute.String("evaluation_uri", evaluationUri.String()))
	return evaluationUri.String(), res, nil
}

func mediaTypeMatches(requested, contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if strings.EqualFold(mediaType, requested) {
		return true
	}
	for _, alias := range mediaAliases[requested] {
		if strings.EqualFold(mediaType, alias) {
			return true
		}
	}
	return false
}

// EvaluationResult fetches an evaluation uri in the media type given by accept.
// the response must be non-empty and in the requested media type.
func (c *Client) EvaluationResult(ctx context.Context, evaluationUri, accept string) (Response, error) {
	step := resultStep(accept)

	ctx, span := tracer.Start(ctx, "EvaluationResult")
	defer span.End()
	span.SetAttributes(
		attribute.String("evaluation_uri", evaluationUri),
		attribute.String("accept", accept),
	)

	fail := func(res Response, err error) (Response, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch evaluation result")
		c.tel.ReportBroken(report_client_evaluation_result, err)
		return res, err
	}

	parsed, err := url.Parse(evaluationUri)
	if err != nil {
		return fail(Response{}, fmt.Errorf("%s: parse evaluation uri: %w", step, err))
	}
	if !parsed.IsAbs() {
		// relative uris are resolved the same way as template expansions
		parsed, err = resolveExpansion(c.ServiceURI, evaluationUri)
		if err != nil {
			return fail(Response{}, fmt.Errorf("%s: %w", step, err))
		}
	}
	err = c.checkHost(parsed)
	if err != nil {
		return fail(Response{}, fmt.Errorf("%s: %w", step, err))
	}

	res, err := c.do(
		ctx, step,
		c.Http.R().SetHeader("Accept", accept),
		resty.MethodGet, parsed.String(),
	)
	if err != nil {
		return fail(res, err)
	}
	if len(res.Body) == 0 {
		return fail(res, fmt.Errorf("%s: %s: %w", step, res.URL, ErrEmptyBody))
	}
	if !mediaTypeMatches(accept, res.ContentType) {
		return fail(res, &ContentTypeError{Step: step, Requested: accept, Got: res.ContentType})
	}

	span.SetAttributes(attribute.Int("content_length", len(res.Body)))
	return res, nil
}
