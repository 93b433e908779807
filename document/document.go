// Package document converts tokens to and from a JSON form meant for people and
// tooling. Input documents are checked against an embedded JSON Schema before any
// token is built, and the token itself is then built through trnnut.FromSections, so
// a parsed document obeys exactly the rules of the binary codec.
package document

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MrEthical07/trnnut"
	"github.com/MrEthical07/trnnut/permission"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalidDocument is matched by every *SchemaError.
var ErrInvalidDocument = errors.New("invalid token document")

// SchemaError lists the schema violations of a document.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "invalid token document: " + strings.Join(e.Violations, "; ")
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// Document is the JSON form of a token.
type Document struct {
	Version   *uint32    `json:"version,omitempty"`
	Modules   []Module   `json:"modules"`
	Contracts []Contract `json:"contracts"`
}

type Module struct {
	Key           string   `json:"key"`
	Name          string   `json:"name,omitempty"`
	BlockCooldown uint32   `json:"block_cooldown"`
	Methods       []Method `json:"methods"`
}

// Method carries constraints as 0x-prefixed hex. Null or a missing field means no
// constraints; "0x" means present and empty.
type Method struct {
	Key           string         `json:"key"`
	Name          string         `json:"name"`
	BlockCooldown uint32         `json:"block_cooldown"`
	Constraints   *hexutil.Bytes `json:"constraints"`
}

type Contract struct {
	Address       permission.ContractAddress `json:"address"`
	BlockCooldown uint32                     `json:"block_cooldown"`
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Validate checks data against the document schema.
func Validate(data []byte) error {
	s, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return &SchemaError{Violations: violations}
	}
	return nil
}

// Parse validates data and builds the token it describes. A missing version selects
// trnnut.DefaultVersion.
func Parse(data []byte) (*trnnut.TRNNut, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc.Token()
}

// Render returns the indented JSON document of t.
func Render(t *trnnut.TRNNut) ([]byte, error) {
	if t == nil {
		return nil, trnnut.ErrNilToken
	}
	return json.MarshalIndent(FromToken(t), "", "  ")
}

// Token builds the token described by d.
func (d Document) Token() (*trnnut.TRNNut, error) {
	version := trnnut.DefaultVersion
	if d.Version != nil {
		version = *d.Version
	}

	modules := make([]trnnut.ModuleSection, 0, len(d.Modules))
	for _, m := range d.Modules {
		methods := make([]permission.MethodEntry, 0, len(m.Methods))
		for _, md := range m.Methods {
			method := permission.NewMethod(md.Name).WithBlockCooldown(md.BlockCooldown)
			if md.Constraints != nil {
				method = method.WithConstraints(*md.Constraints)
			}
			methods = append(methods, permission.MethodEntry{Key: md.Key, Method: method})
		}
		modules = append(modules, trnnut.ModuleSection{
			Key:           m.Key,
			Name:          m.Name,
			BlockCooldown: m.BlockCooldown,
			Methods:       methods,
		})
	}

	contracts := make([]trnnut.ContractSection, 0, len(d.Contracts))
	for _, c := range d.Contracts {
		contracts = append(contracts, trnnut.ContractSection{Address: c.Address, BlockCooldown: c.BlockCooldown})
	}

	return trnnut.FromSections(modules, contracts, trnnut.WithVersion(version))
}

// FromToken describes t as a document.
func FromToken(t *trnnut.TRNNut) Document {
	version := t.Version()
	doc := Document{
		Version:   &version,
		Modules:   []Module{},
		Contracts: []Contract{},
	}

	moduleSections, contractSections := t.Sections()
	for _, ms := range moduleSections {
		m := Module{
			Key:           ms.Key,
			Name:          ms.Name,
			BlockCooldown: ms.BlockCooldown,
			Methods:       make([]Method, 0, len(ms.Methods)),
		}
		for _, entry := range ms.Methods {
			md := Method{
				Key:           entry.Key,
				Name:          entry.Method.Name,
				BlockCooldown: entry.Method.BlockCooldown,
			}
			if payload, ok := entry.Method.Constraints.Bytes(); ok {
				b := hexutil.Bytes(payload)
				md.Constraints = &b
			}
			m.Methods = append(m.Methods, md)
		}
		doc.Modules = append(doc.Modules, m)
	}
	for _, cs := range contractSections {
		doc.Contracts = append(doc.Contracts, Contract{Address: cs.Address, BlockCooldown: cs.BlockCooldown})
	}
	return doc
}
