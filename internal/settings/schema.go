package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	sjs "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalid marks settings rejected by schema validation.
var ErrInvalid = errors.New("invalid settings")

// cliOptions documents the well-known keys of a cli_settings entry. Unknown
// keys are allowed.
type cliOptions struct {
	Model          string `json:"model,omitempty" jsonschema:"description=Model identifier passed to the CLI"`
	PermissionMode string `json:"permission_mode,omitempty" jsonschema:"enum=acceptEdits,enum=bypassPermissions"`
}

// Schema returns the JSON Schema describing GlobalSettings.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true, Anonymous: true}
	sch := r.Reflect(&GlobalSettings{})
	sch.Title = "cliprobe global settings"

	opts := (&jsonschema.Reflector{ExpandedStruct: true, Anonymous: true, AllowAdditionalProperties: true}).Reflect(&cliOptions{})
	opts.Version = ""
	if cs, ok := sch.Properties.Get("cli_settings"); ok {
		cs.AdditionalProperties = opts
	}
	return sch
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}

var compiled = sync.OnceValues(func() (*sjs.Schema, error) {
	b, err := MarshalSchema(Schema())
	if err != nil {
		return nil, err
	}
	c := sjs.NewCompiler()
	if err := c.AddResource("settings.json", bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return c.Compile("settings.json")
})

// Validate checks a raw JSON document against the settings schema.
func Validate(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	sch, err := compiled()
	if err != nil {
		return fmt.Errorf("compile settings schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ValidateSettings validates an already decoded value.
func ValidateSettings(g GlobalSettings) error {
	b, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return Validate(b)
}
