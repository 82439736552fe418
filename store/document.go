// Package store is the boundary client for the remote documentation
// service. It ships synthesized endpoint documents over HTTP and lists
// the service's folder/document hierarchy; it performs no synthesis of
// its own and assumes the service accepts the documented shapes
// unmodified.
package store

import (
	"github.com/apidock/apidock/hierarchy"
	"github.com/apidock/apidock/synth"
)

// ParameterLists carries the four request-side parameter projections of
// an endpoint document.
type ParameterLists struct {
	Header []synth.Parameter `json:"header"`
	Query  []synth.Parameter `json:"query"`
	Body   []synth.Parameter `json:"body"`
	Cookie []synth.Parameter `json:"cookie"`
}

// Document is one endpoint document as the service stores it. RawBody is
// the rendered request-body example; ResponseExamples are canonical
// responses (synth.NormalizeResponses output).
type Document struct {
	ID               string           `json:"id,omitempty"`
	FolderID         string           `json:"folderId,omitempty"`
	Title            string           `json:"title"`
	Method           string           `json:"method"`
	Path             string           `json:"path"`
	Description      string           `json:"description,omitempty"`
	ParameterLists   ParameterLists   `json:"parameterLists"`
	RawBody          string           `json:"rawBody,omitempty"`
	ResponseExamples []synth.Response `json:"responseExamples"`
}

// NodeList is the service's listing response: the flat parent-linked
// collection the hierarchy resolver operates on.
type NodeList struct {
	Nodes []hierarchy.Node `json:"nodes"`
}
