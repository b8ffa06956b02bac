package roevaluate

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Observer is called with the response of every step as soon as it succeeds.
type Observer func(Response)

// Evaluation is the outcome of a full evaluation run.
type Evaluation struct {
	Params        Params
	Template      string
	EvaluationURI string

	Description Response
	Expansion   Response
	Turtle      Response
	RDFXML      Response
}

// Responses returns the responses of the steps that completed, in order.
func (e Evaluation) Responses() []Response {
	var out []Response
	for _, res := range []Response{e.Description, e.Expansion, e.Turtle, e.RDFXML} {
		if res.Step != "" {
			out = append(out, res)
		}
	}
	return out
}

// Evaluate runs the four requests of an evaluation one after the other:
// 1. fetch the service description and extract the checklist template
// 2. have the service expand the template with params
// 3. fetch the evaluation result as Turtle
// 4. fetch the evaluation result as RDF/XML
//
// it stops at the first step that fails, the returned Evaluation holds whatever
// was obtained up to that point.
func (c *Client) Evaluate(ctx context.Context, params Params, observe Observer) (Evaluation, error) {
	ctx, span := tracer.Start(ctx, "Evaluate")
	defer span.End()

	if observe == nil {
		observe = func(Response) {}
	}
	eval := Evaluation{Params: params}

	template, res, err := c.ChecklistTemplate(ctx)
	eval.Description = res
	if err != nil {
		span.SetStatus(codes.Error, "checklist template")
		return eval, err
	}
	eval.Template = template
	observe(res)

	evaluationUri, res, err := c.ExpandTemplate(ctx, template, params)
	eval.Expansion = res
	if err != nil {
		span.SetStatus(codes.Error, "expand template")
		return eval, err
	}
	eval.EvaluationURI = evaluationUri
	observe(res)

	res, err = c.EvaluationResult(ctx, evaluationUri, MediaTurtle)
	eval.Turtle = res
	if err != nil {
		span.SetStatus(codes.Error, "turtle result")
		return eval, err
	}
	observe(res)

	res, err = c.EvaluationResult(ctx, evaluationUri, MediaRDFXML)
	eval.RDFXML = res
	if err != nil {
		span.SetStatus(codes.Error, "rdf/xml result")
		return eval, err
	}
	observe(res)

	span.SetAttributes(
		attribute.String("evaluation_uri", evaluationUri),
		attribute.Int("turtle_length", len(eval.Turtle.Body)),
		attribute.Int("rdfxml_length", len(eval.RDFXML.Body)),
	)
	c.tel.ReportDebug("evaluation complete", evaluationUri)
	return eval, nil
}
