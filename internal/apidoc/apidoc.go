// Package apidoc builds the OpenAPI 3 document from the route declarations
// made in the router. Schemas are generated from the dto structs; the `doc`
// struct tag becomes the field description and enum fields list their codes.
package apidoc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"

	"github.com/raceboard/backend/internal/errs"
	"github.com/raceboard/backend/internal/lib/utils"
	"github.com/raceboard/backend/internal/model"
)

const bearerScheme = "bearerAuth"

// Route is the documentation of one endpoint.
type Route struct {
	Method  string
	Path    string
	Summary string
	Tag     string

	// Request is the request dto. Fields tagged `param` and `query` become
	// parameters; the json fields become the request body.
	Request any

	// Response is the 200 body. Error statuses always use errs.HTTPError.
	Response any

	// Statuses lists the declared error statuses.
	Statuses []int

	// Roles is empty for public routes.
	Roles []model.AppRole
}

// Registry collects routes into an OpenAPI document.
type Registry struct {
	mu  sync.Mutex
	doc *openapi3.T
}

func New(title, version string) *Registry {
	return &Registry{
		doc: &openapi3.T{
			OpenAPI: "3.0.3",
			Info: &openapi3.Info{
				Title:   title,
				Version: version,
			},
			Paths: openapi3.NewPaths(),
			Components: &openapi3.Components{
				Schemas: openapi3.Schemas{},
				SecuritySchemes: openapi3.SecuritySchemes{
					bearerScheme: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
				},
			},
		},
	}
}

// Add documents route.
func (r *Registry) Add(route Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	op := openapi3.NewOperation()
	op.Summary = route.Summary
	op.OperationID = operationID(route.Method, route.Path)
	if route.Tag != "" {
		op.Tags = []string{route.Tag}
	}

	if route.Request != nil {
		params, err := parameters(reflect.TypeOf(route.Request))
		if err != nil {
			return err
		}
		op.Parameters = params

		if hasBody(route.Method) {
			body, err := r.schema(route.Request)
			if err != nil {
				return err
			}
			if len(body.Value.Properties) > 0 {
				op.RequestBody = &openapi3.RequestBodyRef{
					Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(body),
				}
			}
		}
	}

	responseOpts := make([]openapi3.NewResponsesOption, 0, len(route.Statuses)+1)

	ok := openapi3.NewResponse().WithDescription(http.StatusText(http.StatusOK))
	if route.Response != nil {
		schema, err := r.schema(route.Response)
		if err != nil {
			return err
		}
		ok.WithJSONSchemaRef(schema)
	}
	responseOpts = append(responseOpts, openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: ok}))

	errSchema, err := r.schema(errs.HTTPError{})
	if err != nil {
		return err
	}
	for _, status := range route.Statuses {
		res := openapi3.NewResponse().WithDescription(http.StatusText(status)).WithJSONSchemaRef(errSchema)
		responseOpts = append(responseOpts, openapi3.WithStatus(status, &openapi3.ResponseRef{Value: res}))
	}
	op.Responses = openapi3.NewResponses(responseOpts...)

	if len(route.Roles) > 0 {
		op.Security = &openapi3.SecurityRequirements{openapi3.NewSecurityRequirement().Authenticate(bearerScheme)}
		roles := make([]string, 0, len(route.Roles))
		for _, role := range route.Roles {
			roles = append(roles, string(role))
		}
		op.Description = "Roles: " + strings.Join(roles, ", ")
	}

	r.doc.AddOperation(OpenAPIPath(route.Path), route.Method, op)
	return nil
}

// Document returns the collected document.
func (r *Registry) Document() *openapi3.T {
	return r.doc
}

func (r *Registry) MarshalJSON() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return json.Marshal(r.doc)
}

func (r *Registry) schema(v any) (*openapi3.SchemaRef, error) {
	ref, err := openapi3gen.NewSchemaRefForValue(v, r.doc.Components.Schemas, openapi3gen.SchemaCustomizer(customizeSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema for %T: %w", v, err)
	}
	return ref, nil
}

var echoParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// OpenAPIPath turns "/v1/drivers/:driver_id" into "/v1/drivers/{driver_id}".
func OpenAPIPath(echoPath string) string {
	return echoParam.ReplaceAllString(echoPath, "{$1}")
}

func operationID(method, path string) string {
	cleaned := strings.NewReplacer("/", "_", ":", "", "-", "_").Replace(strings.Trim(path, "/"))
	return strings.ToLower(method) + "_" + cleaned
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// parameters collects the `param` and `query` fields of t, including those
// of embedded structs.
func parameters(t reflect.Type) (openapi3.Parameters, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, nil
	}

	var params openapi3.Parameters
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			embedded, err := parameters(field.Type)
			if err != nil {
				return nil, err
			}
			params = append(params, embedded...)
			continue
		}

		var p *openapi3.Parameter
		if name := field.Tag.Get("param"); name != "" {
			p = openapi3.NewPathParameter(name)
		} else if name := field.Tag.Get("query"); name != "" {
			p = openapi3.NewQueryParameter(name).WithRequired(isRequired(field.Tag))
		} else {
			continue
		}

		schema := scalarSchema(field.Type)
		if err := customizeSchema(field.Name, field.Type, field.Tag, schema); err != nil {
			return nil, err
		}
		p.Description = schema.Description
		p.Schema = openapi3.NewSchemaRef("", schema)

		params = append(params, &openapi3.ParameterRef{Value: p})
	}

	sort.SliceStable(params, func(i, j int) bool {
		return params[i].Value.In == openapi3.ParameterInPath && params[j].Value.In != openapi3.ParameterInPath
	})
	return params, nil
}

func isRequired(tag reflect.StructTag) bool {
	for _, rule := range strings.Split(tag.Get("validate"), ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}

func scalarSchema(t reflect.Type) *openapi3.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return openapi3.NewIntegerSchema()
	case reflect.Float32, reflect.Float64:
		return openapi3.NewFloat64Schema()
	case reflect.Bool:
		return openapi3.NewBoolSchema()
	default:
		return openapi3.NewStringSchema()
	}
}

var enumDocs = map[reflect.Type]struct {
	codes       []int
	description string
}{
	reflect.TypeOf(model.RaceType(0)):     {utils.EnumCodes(model.RaceTypes()), utils.EnumToString(model.RaceTypes())},
	reflect.TypeOf(model.DocumentType(0)): {utils.EnumCodes(model.DocumentTypes()), utils.EnumToString(model.DocumentTypes())},
}

func customizeSchema(_ string, t reflect.Type, tag reflect.StructTag, schema *openapi3.Schema) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	description := tag.Get("doc")

	if enum, ok := enumDocs[t]; ok {
		schema.Type = &openapi3.Types{openapi3.TypeInteger}
		schema.Enum = make([]any, 0, len(enum.codes))
		for _, code := range enum.codes {
			schema.Enum = append(schema.Enum, code)
		}
		if description != "" {
			description += ": "
		}
		description += enum.description
	}

	if description != "" {
		schema.Description = description
	}
	return nil
}
