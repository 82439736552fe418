package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apidock/apidock/fieldset"
	"github.com/apidock/apidock/hierarchy"
	"github.com/apidock/apidock/search"
	"github.com/apidock/apidock/store"
	"github.com/apidock/apidock/synth"
)

// fieldListSchema is the JSON schema of one field-list argument.
var fieldListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"key":      map[string]any{"type": "string", "description": "dotted field path, [] suffix for array elements"},
			"type":     map[string]any{"type": "string", "enum": []string{"string", "integer", "number", "boolean", "array", "object", "null"}},
			"required": map[string]any{"type": "boolean"},
			"desc":     map[string]any{"type": "string"},
			"example":  map[string]any{},
		},
		"required": []string{"key", "desc"},
	},
}

var responseListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":   map[string]any{"type": "string"},
			"status": map[string]any{"type": "integer"},
			"fields": fieldListSchema,
			"raw":    map[string]any{"type": "string"},
		},
	},
}

func docSchema(requireID bool) map[string]any {
	required := []string{"title", "method", "path"}
	if requireID {
		required = append([]string{"id"}, required...)
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"title":       map[string]any{"type": "string"},
			"method":      map[string]any{"type": "string"},
			"path":        map[string]any{"type": "string"},
			"folderId":    map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"header":      fieldListSchema,
			"query":       fieldListSchema,
			"cookie":      fieldListSchema,
			"body":        fieldListSchema,
			"responses":   responseListSchema,
		},
		"required": required,
	}
}

func idSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{"type": "string"},
		},
		"required": []string{"id"},
	}
}

func (r *Registry) registerBuiltins() {
	register := func(name, description string, schema map[string]any, handler ToolHandler, opts ...ToolOption) {
		tool := mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: schema,
		}
		if len(opts) == 0 {
			tool.Annotations = &mcp.ToolAnnotations{ReadOnlyHint: true}
		}
		// Built-in names are unique; registration cannot fail.
		_ = r.Register(tool, handler, opts...)
	}

	register("apidoc_create",
		"Create an API endpoint document from flat field lists. Intermediate containers are synthesized automatically.",
		docSchema(false), r.handleCreate, WithMutating())
	register("apidoc_update",
		"Replace an existing API endpoint document.",
		docSchema(true), r.handleUpdate, WithMutating())
	register("apidoc_delete",
		"Delete an API endpoint document by id.",
		idSchema(), r.handleDelete, WithMutating())
	register("apidoc_get",
		"Fetch one API endpoint document by id.",
		idSchema(), r.handleGet)
	register("apidoc_list",
		"List documentation nodes, optionally under one folder to a bounded depth, grouped by parent folder.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"folderId": map[string]any{"type": "string"},
				"maxDepth": map[string]any{"type": "integer"},
			},
		}, r.handleList)
	register("apidoc_search",
		"Full-text search over endpoint document titles and folder paths.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string"},
				"limit": map[string]any{"type": "integer"},
			},
			"required": []string{"query"},
		}, r.handleSearch)
	register("apidoc_tree",
		"Resolve the full folder hierarchy: root-to-node paths for every documentation node.",
		map[string]any{"type": "object", "properties": map[string]any{}}, r.handleTree)
}

func (r *Registry) handleCreate(ctx context.Context, args map[string]any) (any, error) {
	doc, err := r.buildDocument(args)
	if err != nil {
		return nil, err
	}

	created, err := r.config.Store.CreateDoc(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	return map[string]any{
		"id":      created.ID,
		"title":   created.Title,
		"path":    created.Path,
		"rawBody": created.RawBody,
	}, nil
}

func (r *Registry) handleUpdate(ctx context.Context, args map[string]any) (any, error) {
	id, err := requiredString(args, "id")
	if err != nil {
		return nil, err
	}
	doc, err := r.buildDocument(args)
	if err != nil {
		return nil, err
	}
	doc.ID = id

	updated, err := r.config.Store.UpdateDoc(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	return map[string]any{"id": updated.ID, "title": updated.Title}, nil
}

func (r *Registry) handleDelete(ctx context.Context, args map[string]any) (any, error) {
	id, err := requiredString(args, "id")
	if err != nil {
		return nil, err
	}
	if err := r.config.Store.DeleteDoc(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	return map[string]any{"deleted": id}, nil
}

func (r *Registry) handleGet(ctx context.Context, args map[string]any) (any, error) {
	id, err := requiredString(args, "id")
	if err != nil {
		return nil, err
	}
	doc, err := r.config.Store.GetDoc(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	return doc, nil
}

func (r *Registry) handleList(ctx context.Context, args map[string]any) (any, error) {
	list, err := r.config.Store.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	resolver := hierarchy.NewResolver(list.Nodes)

	nodes := list.Nodes
	if folderID := stringArg(args, "folderId"); folderID != "" {
		nodes = resolver.Descendants(folderID, intArg(args, "maxDepth"))
	}

	groups := resolver.GroupByParent(nodes)
	out := make(map[string]any, len(groups))
	for parent, children := range groups {
		entries := make([]map[string]any, len(children))
		for i, n := range children {
			entries[i] = map[string]any{"id": n.ID, "name": n.Name, "kind": n.Kind}
		}
		out[parent] = entries
	}
	return map[string]any{"total": len(nodes), "groups": out}, nil
}

func (r *Registry) handleSearch(ctx context.Context, args map[string]any) (any, error) {
	if r.config.Index == nil {
		return nil, ErrSearchDisabled
	}
	query, err := requiredString(args, "query")
	if err != nil {
		return nil, err
	}

	list, err := r.config.Store.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	resolver := hierarchy.NewResolver(list.Nodes)

	byID := make(map[string]hierarchy.Node, len(list.Nodes))
	summaries := make([]search.DocSummary, 0, len(list.Nodes))
	for _, n := range list.Nodes {
		byID[n.ID] = n
		if n.Kind != hierarchy.KindDoc {
			continue
		}
		path := resolver.Path(n.ID)
		folder := ""
		if len(path) > 1 {
			folder = strings.Join(path[:len(path)-1], "/")
		}
		summaries = append(summaries, search.DocSummary{
			ID:         n.ID,
			Title:      n.Name,
			FolderPath: folder,
		})
	}
	if err := r.config.Index.Rebuild(summaries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}

	hits, err := r.config.Index.Search(query, intArg(args, "limit"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}

	results := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		entry := map[string]any{"id": h.ID, "score": h.Score}
		if n, ok := byID[h.ID]; ok {
			entry["title"] = n.Name
			entry["path"] = strings.Join(resolver.Path(n.ID), "/")
		}
		results = append(results, entry)
	}
	return map[string]any{"results": results}, nil
}

func (r *Registry) handleTree(ctx context.Context, args map[string]any) (any, error) {
	list, err := r.config.Store.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	resolver := hierarchy.NewResolver(list.Nodes)

	paths := make(map[string]any, len(list.Nodes))
	for id, path := range resolver.PathMap() {
		paths[id] = strings.Join(path, " / ")
	}
	out := map[string]any{"paths": paths}
	if diags := resolver.Diagnostics(); diags != nil {
		out["diagnostics"] = diags.Error()
	}
	return out, nil
}

// buildDocument assembles a store document from tool arguments: the four
// request-side field lists are expanded and projected, the body list is
// additionally synthesized into the raw body example, and the response
// specifications are normalized into canonical shape.
func (r *Registry) buildDocument(args map[string]any) (store.Document, error) {
	title, err := requiredString(args, "title")
	if err != nil {
		return store.Document{}, err
	}
	method, err := requiredString(args, "method")
	if err != nil {
		return store.Document{}, err
	}
	path, err := requiredString(args, "path")
	if err != nil {
		return store.Document{}, err
	}

	doc := store.Document{
		Title:       title,
		Method:      strings.ToUpper(method),
		Path:        path,
		FolderID:    stringArg(args, "folderId"),
		Description: stringArg(args, "description"),
	}

	lists := map[string]*[]synth.Parameter{
		"header": &doc.ParameterLists.Header,
		"query":  &doc.ParameterLists.Query,
		"cookie": &doc.ParameterLists.Cookie,
	}
	for key, target := range lists {
		fields, err := decodeFields(args[key])
		if err != nil {
			return store.Document{}, fmt.Errorf("%w: %s: %v", ErrInvalidArgs, key, err)
		}
		if fields != nil {
			*target = synth.Parameters(fieldset.ExpandParents(fields))
		}
	}

	bodyFields, err := decodeFields(args["body"])
	if err != nil {
		return store.Document{}, fmt.Errorf("%w: body: %v", ErrInvalidArgs, err)
	}
	if bodyFields != nil {
		expanded := fieldset.ExpandParents(bodyFields)
		doc.ParameterLists.Body = synth.Parameters(expanded)
		tree := synth.Build(expanded)
		if r.config.Annotate {
			doc.RawBody = synth.RenderAnnotated(tree, fieldset.DescriptionIndex(expanded))
		} else {
			doc.RawBody = synth.Render(tree)
		}
	}

	inputs, err := decodeResponses(args, "responses")
	if err != nil {
		return store.Document{}, err
	}
	responses, err := synth.NormalizeResponses(inputs, synth.NormalizeOptions{
		KeepEmpty:          r.config.KeepEmptyResponses,
		DefaultWhenMissing: true,
		Annotate:           r.config.Annotate,
	})
	if err != nil {
		return store.Document{}, fmt.Errorf("%w: responses: %v", ErrInvalidArgs, err)
	}
	doc.ResponseExamples = responses

	return doc, nil
}

// decodeFields converts an any-typed field-list argument through its JSON
// form into a validated field list. A nil argument yields nil.
func decodeFields(v any) ([]fieldset.Field, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return fieldset.DecodeList(data)
}

type wireResponse struct {
	Name    string            `json:"name"`
	Status  int               `json:"status"`
	Fields  json.RawMessage   `json:"fields"`
	RawBody string            `json:"raw"`
	Params  []synth.Parameter `json:"params"`
	Default bool              `json:"isDefault"`
}

// decodeResponses converts the responses argument into normalizer inputs.
// A missing key yields nil (no specification); an empty array yields an
// empty non-nil slice (explicit empty set).
func decodeResponses(args map[string]any, key string) ([]synth.ResponseInput, error) {
	v, present := args[key]
	if !present || v == nil {
		return nil, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgs, key, err)
	}
	var wire []wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgs, key, err)
	}

	inputs := make([]synth.ResponseInput, 0, len(wire))
	for _, w := range wire {
		in := synth.ResponseInput{
			Name:    w.Name,
			Status:  w.Status,
			RawBody: w.RawBody,
			Params:  w.Params,
			Default: w.Default,
		}
		if len(w.Fields) > 0 {
			fields, err := fieldset.DecodeList(w.Fields)
			if err != nil {
				return nil, fmt.Errorf("%w: response %q: %v", ErrInvalidArgs, w.Name, err)
			}
			in.Fields = fields
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func requiredString(args map[string]any, key string) (string, error) {
	s := stringArg(args, key)
	if s == "" {
		return "", fmt.Errorf("%w: %s required", ErrInvalidArgs, key)
	}
	return s, nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
