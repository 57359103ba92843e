package validator

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

// Schema ids of the request bodies accepted by the API.
const (
	JobRoleCreate = "https://careerboard.local/schemas/job_role_create.json"
	PostCreate    = "https://careerboard.local/schemas/post_create.json"
	PostUpdate    = "https://careerboard.local/schemas/post_update.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator checks JSON documents against schemas keyed by their $id.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// Error lists every violation found in a document.
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	return "the document is not valid: " + strings.Join(e.Violations, "; ")
}

// New builds a Validator from the schemas shipped with the binary.
func New() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("cannot read schemas: %w", err)
	}
	var docs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read schema %s: %w", e.Name(), err)
		}
		docs = append(docs, string(b))
	}
	return NewValidator(docs)
}

// NewValidator compiles the given schema documents. Each must carry an $id.
func NewValidator(docs []string) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(docs))}
	for _, doc := range docs {
		var head struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal([]byte(doc), &head); err != nil {
			return nil, fmt.Errorf("parse error in schema: %w", err)
		}
		if head.ID == "" {
			return nil, fmt.Errorf("schema does not contain $id: %q", doc)
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", head.ID, err)
		}
		v.schemas[head.ID] = s
	}
	return v, nil
}

// HasSchema reports whether schemaID is known.
func (v *Validator) HasSchema(schemaID string) bool {
	_, ok := v.schemas[schemaID]
	return ok
}

// Validate checks body against schemaID. Malformed JSON and schema
// violations are both reported as *Error.
func (v *Validator) Validate(body []byte, schemaID string) error {
	s, ok := v.schemas[schemaID]
	if !ok {
		return fmt.Errorf("there is no schema %s", schemaID)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &Error{Violations: []string{"malformed JSON body"}}
	}
	if result.Valid() {
		return nil
	}
	verr := &Error{}
	for _, e := range result.Errors() {
		verr.Violations = append(verr.Violations, e.String())
	}
	return verr
}
